package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"brand-asset-api/internal/domain/repository"
	"brand-asset-api/pkg/metrics"
)

const backendLabel = "redis"

// SnapshotStore 把整个素材库快照序列化到单个 Redis 键
// 快照就是权威状态，不设过期时间。
type SnapshotStore struct {
	client *Client
	key    string
}

// NewSnapshotStore 创建 Redis 快照存储
func NewSnapshotStore(client *Client, key string) *SnapshotStore {
	return &SnapshotStore{client: client, key: key}
}

// LoadSnapshot 读取快照键
// 键不存在视为首次启动，返回空快照而非错误。
func (s *SnapshotStore) LoadSnapshot(ctx context.Context) (*repository.Snapshot, error) {
	ctx, span := tracer.Start(ctx, "redis.SnapshotStore.LoadSnapshot",
		trace.WithAttributes(attribute.String("snapshot.key", s.key)))
	defer span.End()

	data, err := s.client.Get(ctx, s.key)
	if err != nil {
		if IsNil(err) {
			return &repository.Snapshot{}, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to read snapshot key: %w", err)
	}

	var snapshot repository.Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snapshot, nil
}

// SaveSnapshot 整体覆盖快照键
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, snapshot *repository.Snapshot) error {
	ctx, span := tracer.Start(ctx, "redis.SnapshotStore.SaveSnapshot",
		trace.WithAttributes(
			attribute.String("snapshot.key", s.key),
			attribute.Int("snapshot.artifact_count", len(snapshot.Artifacts)),
		))
	defer span.End()

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	start := time.Now()
	err = s.client.Set(ctx, s.key, data, 0)
	metrics.SnapshotWriteDuration.WithLabelValues(backendLabel).Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		metrics.SnapshotWritesTotal.WithLabelValues(backendLabel, "error").Inc()
		return fmt.Errorf("failed to write snapshot key: %w", err)
	}
	metrics.SnapshotWritesTotal.WithLabelValues(backendLabel, "ok").Inc()
	return nil
}

// Package file 提供基于本地 JSON 文件的快照持久化实现
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"brand-asset-api/internal/domain/repository"
	"brand-asset-api/pkg/metrics"
)

var tracer = otel.Tracer("snapshot-file")

const backendLabel = "file"

// SnapshotStore 把整个素材库快照落到单个 JSON 文件
// 写入走临时文件加 rename，崩溃时磁盘上要么是旧快照要么是新
// 快照，不会出现半个文件。
type SnapshotStore struct {
	path string
}

// NewSnapshotStore 创建文件快照存储
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

// LoadSnapshot 读取快照文件
// 文件不存在视为首次启动，返回空快照而非错误。
func (s *SnapshotStore) LoadSnapshot(ctx context.Context) (*repository.Snapshot, error) {
	_, span := tracer.Start(ctx, "file.SnapshotStore.LoadSnapshot")
	span.SetAttributes(attribute.String("snapshot.path", s.path))
	defer span.End()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &repository.Snapshot{}, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var snapshot repository.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to decode snapshot file: %w", err)
	}
	return &snapshot, nil
}

// SaveSnapshot 原子写出快照文件
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, snapshot *repository.Snapshot) error {
	_, span := tracer.Start(ctx, "file.SnapshotStore.SaveSnapshot")
	span.SetAttributes(
		attribute.String("snapshot.path", s.path),
		attribute.Int("snapshot.artifact_count", len(snapshot.Artifacts)),
	)
	defer span.End()

	start := time.Now()
	err := s.write(snapshot)
	metrics.SnapshotWriteDuration.WithLabelValues(backendLabel).Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		metrics.SnapshotWritesTotal.WithLabelValues(backendLabel, "error").Inc()
		return err
	}
	metrics.SnapshotWritesTotal.WithLabelValues(backendLabel, "ok").Inc()
	return nil
}

func (s *SnapshotStore) write(snapshot *repository.Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp snapshot: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot file: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"brand-asset-api/internal/domain/entity"
	"brand-asset-api/internal/domain/repository"
	"brand-asset-api/pkg/metrics"
)

const backendLabel = "postgres"

// SnapshotStore 把素材库快照整体写入 artifacts/folders 两张表
// 快照语义是整体覆盖，写入在单个事务内先清表再插入：读到的永远
// 是某次完整快照，不会出现跨快照的混合行。
type SnapshotStore struct {
	client *Client
}

// NewSnapshotStore 创建 PostgreSQL 快照存储
func NewSnapshotStore(client *Client) *SnapshotStore {
	return &SnapshotStore{client: client}
}

// Migrate 建表，bootstrap 阶段调用一次
func (s *SnapshotStore) Migrate(ctx context.Context) error {
	return s.client.db.WithContext(ctx).AutoMigrate(&entity.Artifact{}, &entity.Folder{})
}

// LoadSnapshot 读取两张表还原快照
func (s *SnapshotStore) LoadSnapshot(ctx context.Context) (*repository.Snapshot, error) {
	ctx, span := tracer.Start(ctx, "postgres.SnapshotStore.LoadSnapshot")
	defer span.End()

	var artifacts []*entity.Artifact
	if err := s.client.db.WithContext(ctx).Find(&artifacts).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to load artifacts: %w", err)
	}

	var folders []*entity.Folder
	if err := s.client.db.WithContext(ctx).Find(&folders).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to load folders: %w", err)
	}

	span.SetAttributes(
		attribute.Int("snapshot.artifact_count", len(artifacts)),
		attribute.Int("snapshot.folder_count", len(folders)),
	)
	return &repository.Snapshot{Artifacts: artifacts, Folders: folders}, nil
}

// SaveSnapshot 事务内整体覆盖
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, snapshot *repository.Snapshot) error {
	ctx, span := tracer.Start(ctx, "postgres.SnapshotStore.SaveSnapshot")
	span.SetAttributes(attribute.Int("snapshot.artifact_count", len(snapshot.Artifacts)))
	defer span.End()

	start := time.Now()
	err := s.client.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entity.Artifact{}).Error; err != nil {
			return fmt.Errorf("failed to clear artifacts: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entity.Folder{}).Error; err != nil {
			return fmt.Errorf("failed to clear folders: %w", err)
		}
		if len(snapshot.Artifacts) > 0 {
			if err := tx.CreateInBatches(snapshot.Artifacts, 200).Error; err != nil {
				return fmt.Errorf("failed to insert artifacts: %w", err)
			}
		}
		if len(snapshot.Folders) > 0 {
			if err := tx.CreateInBatches(snapshot.Folders, 200).Error; err != nil {
				return fmt.Errorf("failed to insert folders: %w", err)
			}
		}
		return nil
	})
	metrics.SnapshotWriteDuration.WithLabelValues(backendLabel).Observe(time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		metrics.SnapshotWritesTotal.WithLabelValues(backendLabel, "error").Inc()
		return err
	}
	metrics.SnapshotWritesTotal.WithLabelValues(backendLabel, "ok").Inc()
	return nil
}

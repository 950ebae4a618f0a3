// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"brand-asset-api/internal/domain/entity"
)

// Snapshot 素材库的完整持久化快照
// 日期字段以 ISO-8601 序列化，加载时还原为 time.Time。
type Snapshot struct {
	Artifacts []*entity.Artifact `json:"artifacts"`
	Folders   []*entity.Folder   `json:"folders"`
}

// SnapshotStore 快照持久化接口
// LoadSnapshot 在仓库构造时调用一次；SaveSnapshot 在每次变更操作结束后调用。
// 内存状态先于持久化写入更新，崩溃窗口内的差异是接受的尽力而为一致性模型，
// 不提供事务级持久性。
type SnapshotStore interface {
	LoadSnapshot(ctx context.Context) (*Snapshot, error)
	SaveSnapshot(ctx context.Context, snapshot *Snapshot) error
}

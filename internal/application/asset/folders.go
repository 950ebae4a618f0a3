package asset

import (
	"sort"
	"time"

	"brand-asset-api/internal/domain/entity"
)

// 默认文件夹的种子 ID 与显示名
var defaultFolderNames = map[string]string{
	entity.FolderPreviousPosts: "Previous Posts",
	entity.FolderProducts:      "Products",
	entity.FolderDiscounts:     "Discounts",
	entity.FolderReferences:    "References",
}

// folderIndex 文件夹集合，维护素材成员关系的文件夹侧
type folderIndex struct {
	folders map[string]*entity.Folder
}

func newFolderIndex() *folderIndex {
	return &folderIndex{folders: make(map[string]*entity.Folder)}
}

// seedDefaults 种入默认文件夹，幂等：已存在的不重建
// 返回是否有新文件夹被创建。
func (idx *folderIndex) seedDefaults() bool {
	seeded := false
	for _, id := range entity.DefaultFolderIDs() {
		if _, ok := idx.folders[id]; ok {
			continue
		}
		idx.folders[id] = entity.NewDefaultFolder(id, defaultFolderNames[id])
		seeded = true
	}
	return seeded
}

// load 从快照还原文件夹集合
func (idx *folderIndex) load(folders []*entity.Folder) {
	for _, f := range folders {
		if f != nil && f.ID != "" {
			idx.folders[f.ID] = f
		}
	}
}

// get 查找文件夹
func (idx *folderIndex) get(id string) (*entity.Folder, bool) {
	f, ok := idx.folders[id]
	return f, ok
}

// list 返回全部文件夹，默认文件夹在前，其后按创建时间排序
func (idx *folderIndex) list() []*entity.Folder {
	out := make([]*entity.Folder, 0, len(idx.folders))
	for _, f := range idx.folders {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// create 创建自定义文件夹
func (idx *folderIndex) create(name, description, color string) *entity.Folder {
	f := entity.NewFolder(name, description, color)
	idx.folders[f.ID] = f
	return f
}

// update 更新文件夹的可编辑字段
func (idx *folderIndex) update(id string, name, description, color *string) (*entity.Folder, bool) {
	f, ok := idx.folders[id]
	if !ok {
		return nil, false
	}
	if name != nil {
		f.Name = *name
	}
	if description != nil {
		f.Description = *description
	}
	if color != nil {
		f.Color = *color
	}
	f.ModifiedAt = time.Now()
	return f, true
}

// delete 删除自定义文件夹，成员并入 references
// 默认文件夹或未知 ID 返回 false。调用方负责同步素材侧的 FolderID。
// 返回被迁移的成员 ID 列表。
func (idx *folderIndex) delete(id string) ([]string, bool) {
	f, ok := idx.folders[id]
	if !ok || f.IsDefault {
		return nil, false
	}

	refs := idx.folders[entity.FolderReferences]
	moved := make([]string, 0, len(f.ArtifactIDs))
	for _, artifactID := range f.ArtifactIDs {
		refs.AddArtifact(artifactID)
		moved = append(moved, artifactID)
	}

	delete(idx.folders, id)
	return moved, true
}

// addMember 将素材加入文件夹成员集合
func (idx *folderIndex) addMember(folderID, artifactID string) bool {
	f, ok := idx.folders[folderID]
	if !ok {
		return false
	}
	f.AddArtifact(artifactID)
	return true
}

// removeMember 将素材移出文件夹成员集合
func (idx *folderIndex) removeMember(folderID, artifactID string) {
	if f, ok := idx.folders[folderID]; ok {
		f.RemoveArtifact(artifactID)
	}
}

// move 在两个文件夹之间迁移素材
// 先校验目标存在再执行移除，调用方观察不到素材同时属于零个或
// 两个文件夹的中间态。
func (idx *folderIndex) move(artifactID, fromID, toID string) bool {
	if _, ok := idx.folders[toID]; !ok {
		return false
	}
	idx.removeMember(fromID, artifactID)
	idx.folders[toID].AddArtifact(artifactID)
	return true
}

// snapshot 导出全部文件夹
func (idx *folderIndex) snapshot() []*entity.Folder {
	return idx.list()
}

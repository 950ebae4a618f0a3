package dto

import (
	"time"

	"brand-asset-api/internal/domain/entity"
)

// FolderResponse 文件夹响应
type FolderResponse struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description,omitempty"`
	Color         string            `json:"color,omitempty"`
	Type          entity.FolderType `json:"type"`
	IsDefault     bool              `json:"is_default"`
	ArtifactIDs   []string          `json:"artifact_ids"`
	ArtifactCount int               `json:"artifact_count"`
	CreatedAt     time.Time         `json:"created_at"`
	ModifiedAt    time.Time         `json:"modified_at"`
}

// ToFolderResponse 转换文件夹实体为响应
func ToFolderResponse(f *entity.Folder) FolderResponse {
	ids := f.ArtifactIDs
	if ids == nil {
		ids = []string{}
	}
	return FolderResponse{
		ID:            f.ID,
		Name:          f.Name,
		Description:   f.Description,
		Color:         f.Color,
		Type:          f.Type,
		IsDefault:     f.IsDefault,
		ArtifactIDs:   ids,
		ArtifactCount: len(ids),
		CreatedAt:     f.CreatedAt,
		ModifiedAt:    f.ModifiedAt,
	}
}

// ToFolderResponses 批量转换
func ToFolderResponses(folders []*entity.Folder) []FolderResponse {
	out := make([]FolderResponse, 0, len(folders))
	for _, f := range folders {
		out = append(out, ToFolderResponse(f))
	}
	return out
}

// CreateFolderRequest 文件夹创建请求
type CreateFolderRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// UpdateFolderRequest 文件夹更新请求
type UpdateFolderRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

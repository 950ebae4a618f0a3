package dto

import (
	"time"

	"brand-asset-api/internal/application/asset"
	"brand-asset-api/internal/domain/entity"
)

// ArtifactResponse 素材响应
type ArtifactResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Description  string                `json:"description,omitempty"`
	Type         entity.ArtifactType   `json:"type"`
	Category     string                `json:"category"`
	UsageType    entity.UsageType      `json:"usage_type"`
	UploadType   entity.UploadType     `json:"upload_type"`
	FolderID     string                `json:"folder_id"`
	IsActive     bool                  `json:"is_active"`
	Instructions string                `json:"instructions,omitempty"`
	TextOverlay  *entity.TextOverlay   `json:"text_overlay,omitempty"`
	Metadata     *entity.FileMetadata  `json:"metadata,omitempty"`
	Directives   []entity.Directive    `json:"directives,omitempty"`
	Tags         []string              `json:"tags,omitempty"`
	Usage        entity.UsageStats     `json:"usage"`
	CreatedAt    time.Time             `json:"created_at"`
	ModifiedAt   time.Time             `json:"modified_at"`
	UploadedAt   time.Time             `json:"uploaded_at"`
}

// ToArtifactResponse 转换素材实体为响应
func ToArtifactResponse(a *entity.Artifact) ArtifactResponse {
	return ArtifactResponse{
		ID:           a.ID,
		Name:         a.Name,
		Description:  a.Description,
		Type:         a.Type,
		Category:     a.Category,
		UsageType:    a.UsageType,
		UploadType:   a.UploadType,
		FolderID:     a.FolderID,
		IsActive:     a.IsActive,
		Instructions: a.Instructions,
		TextOverlay:  a.TextOverlay,
		Metadata:     a.Metadata,
		Directives:   a.Directives,
		Tags:         a.Tags,
		Usage:        a.Usage,
		CreatedAt:    a.CreatedAt,
		ModifiedAt:   a.ModifiedAt,
		UploadedAt:   a.UploadedAt,
	}
}

// ToArtifactResponses 批量转换
func ToArtifactResponses(artifacts []*entity.Artifact) []ArtifactResponse {
	out := make([]ArtifactResponse, 0, len(artifacts))
	for _, a := range artifacts {
		out = append(out, ToArtifactResponse(a))
	}
	return out
}

// UploadItemResponse 批量上传中单个文件的结果
type UploadItemResponse struct {
	FileName string            `json:"file_name"`
	Artifact *ArtifactResponse `json:"artifact,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// UploadResponse 批量上传响应
type UploadResponse struct {
	Results  []UploadItemResponse `json:"results"`
	Created  int                  `json:"created"`
	Rejected int                  `json:"rejected"`
}

// ToUploadResponse 转换上传结果集
func ToUploadResponse(results []asset.UploadResult) UploadResponse {
	resp := UploadResponse{Results: make([]UploadItemResponse, 0, len(results))}
	for _, r := range results {
		item := UploadItemResponse{FileName: r.FileName}
		if r.Err != nil {
			item.Error = r.Err.Error()
			resp.Rejected++
		} else {
			a := ToArtifactResponse(r.Artifact)
			item.Artifact = &a
			resp.Created++
		}
		resp.Results = append(resp.Results, item)
	}
	return resp
}

// CreateTextArtifactRequest 文本素材创建请求
// Content 是原始字符串：JSON 且包含结构化字段的按结构化载荷处理，
// 其余按纯文本处理。
type CreateTextArtifactRequest struct {
	Name         string `json:"name" binding:"required"`
	Content      string `json:"content" binding:"required"`
	UsageType    string `json:"usage_type" binding:"omitempty,oneof=exact reference"`
	Category     string `json:"category"`
	FolderID     string `json:"folder_id"`
	Description  string `json:"description"`
	Instructions string `json:"instructions"`
	IsActive     bool   `json:"is_active"`
}

// ToInput 转换为应用层输入
func (r *CreateTextArtifactRequest) ToInput() asset.CreateTextArtifactInput {
	return asset.CreateTextArtifactInput{
		Name:         r.Name,
		Content:      asset.ParseTextContent(r.Content),
		UsageType:    entity.UsageType(r.UsageType),
		Category:     r.Category,
		FolderID:     r.FolderID,
		Description:  r.Description,
		Instructions: r.Instructions,
		IsActive:     r.IsActive,
	}
}

// UpdateArtifactRequest 素材部分更新请求
type UpdateArtifactRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Category     *string  `json:"category"`
	Instructions *string  `json:"instructions"`
	Tags         []string `json:"tags"`
}

// ToInput 转换为应用层输入
func (r *UpdateArtifactRequest) ToInput() asset.UpdateArtifactInput {
	return asset.UpdateArtifactInput{
		Name:         r.Name,
		Description:  r.Description,
		Category:     r.Category,
		Instructions: r.Instructions,
		Tags:         r.Tags,
	}
}

// TrackUsageRequest 使用记录请求
type TrackUsageRequest struct {
	Context string `json:"context" binding:"required"`
}

// SetActiveRequest 激活开关请求
type SetActiveRequest struct {
	IsActive bool `json:"is_active"`
}

// UpdateUsageTypeRequest 使用方式变更请求
type UpdateUsageTypeRequest struct {
	UsageType string `json:"usage_type" binding:"required,oneof=exact reference"`
}

// MoveArtifactRequest 文件夹迁移请求
type MoveArtifactRequest struct {
	FolderID string `json:"folder_id" binding:"required"`
}

// OperationResponse 软失败操作的结果
type OperationResponse struct {
	OK bool `json:"ok"`
}

// ToggleResponse 激活翻转结果
type ToggleResponse struct {
	OK       bool `json:"ok"`
	IsActive bool `json:"is_active"`
}

// ThumbnailResponse 缩略图响应
type ThumbnailResponse struct {
	DataURL string `json:"data_url"`
}

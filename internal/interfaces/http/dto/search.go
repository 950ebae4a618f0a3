package dto

import (
	"time"

	"brand-asset-api/internal/application/asset"
	"brand-asset-api/internal/domain/entity"
)

// SearchRequest 检索请求，所有条件可选，逐项取与
type SearchRequest struct {
	Types         []string `json:"types"`
	Categories    []string `json:"categories"`
	Tags          []string `json:"tags"`
	Query         string   `json:"query"`
	UsedInContext string   `json:"used_in_context"`

	CreatedAfter  *time.Time `json:"created_after"`
	CreatedBefore *time.Time `json:"created_before"`

	MinFileSize *int64 `json:"min_file_size"`
	MaxFileSize *int64 `json:"max_file_size"`

	MinWidth  *int `json:"min_width"`
	MaxWidth  *int `json:"max_width"`
	MinHeight *int `json:"min_height"`
	MaxHeight *int `json:"max_height"`

	FolderID       string  `json:"folder_id"`
	IsActive       *bool   `json:"is_active"`
	UsageType      *string `json:"usage_type" binding:"omitempty,oneof=exact reference"`
	UploadType     *string `json:"upload_type" binding:"omitempty,oneof=file text url"`
	HasTextOverlay *bool   `json:"has_text_overlay"`

	Limit  int `json:"limit" binding:"omitempty,min=0,max=500"`
	Offset int `json:"offset" binding:"omitempty,min=0"`
}

// ToFilters 转换为应用层检索条件
func (r *SearchRequest) ToFilters() asset.SearchFilters {
	filters := asset.SearchFilters{
		Categories:     r.Categories,
		Tags:           r.Tags,
		Query:          r.Query,
		UsedInContext:  r.UsedInContext,
		CreatedAfter:   r.CreatedAfter,
		CreatedBefore:  r.CreatedBefore,
		MinFileSize:    r.MinFileSize,
		MaxFileSize:    r.MaxFileSize,
		MinWidth:       r.MinWidth,
		MaxWidth:       r.MaxWidth,
		MinHeight:      r.MinHeight,
		MaxHeight:      r.MaxHeight,
		FolderID:       r.FolderID,
		IsActive:       r.IsActive,
		HasTextOverlay: r.HasTextOverlay,
		Limit:          r.Limit,
		Offset:         r.Offset,
	}
	for _, t := range r.Types {
		filters.Types = append(filters.Types, entity.ArtifactType(t))
	}
	if r.UsageType != nil {
		ut := entity.UsageType(*r.UsageType)
		filters.UsageType = &ut
	}
	if r.UploadType != nil {
		up := entity.UploadType(*r.UploadType)
		filters.UploadType = &up
	}
	return filters
}

// SearchResponse 检索响应
type SearchResponse struct {
	Artifacts       []ArtifactResponse `json:"artifacts"`
	TotalCount      int                `json:"total_count"`
	ExecutionTimeMs float64            `json:"execution_time_ms"`
	Suggestions     []string           `json:"suggestions,omitempty"`
}

// ToSearchResponse 转换检索结果
func ToSearchResponse(result *asset.SearchResult) SearchResponse {
	return SearchResponse{
		Artifacts:       ToArtifactResponses(result.Artifacts),
		TotalCount:      result.TotalCount,
		ExecutionTimeMs: result.ExecutionTimeMs,
		Suggestions:     result.Suggestions,
	}
}

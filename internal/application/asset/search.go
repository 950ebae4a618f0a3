package asset

import (
	"sort"
	"strings"
	"time"

	"brand-asset-api/internal/domain/entity"
)

// 建议启发式的结果数上限：超过则提示收窄条件
const broadResultThreshold = 50

// SearchFilters 检索条件，全部可选，逐项取与
type SearchFilters struct {
	Types         []entity.ArtifactType
	Categories    []string
	Tags          []string
	Query         string
	UsedInContext string

	CreatedAfter  *time.Time
	CreatedBefore *time.Time

	MinFileSize *int64
	MaxFileSize *int64

	MinWidth  *int
	MaxWidth  *int
	MinHeight *int
	MaxHeight *int

	FolderID       string
	IsActive       *bool
	UsageType      *entity.UsageType
	UploadType     *entity.UploadType
	HasTextOverlay *bool

	Limit  int
	Offset int
}

// SearchResult 检索结果
// TotalCount 反映分页截断前的命中总数。
type SearchResult struct {
	Artifacts       []*entity.Artifact
	TotalCount      int
	ExecutionTimeMs float64
	Suggestions     []string
}

// evaluateSearch 对当前素材集合执行检索
// 纯函数：不修改任何素材状态。
func evaluateSearch(artifacts []*entity.Artifact, filters SearchFilters) *SearchResult {
	start := time.Now()

	matched := make([]*entity.Artifact, 0, len(artifacts))
	for _, a := range artifacts {
		if matchesFilters(a, filters) {
			matched = append(matched, a)
		}
	}

	// 新建在前的稳定排序，保证分页可确定
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	total := len(matched)
	page := paginate(matched, filters.Limit, filters.Offset)

	return &SearchResult{
		Artifacts:       page,
		TotalCount:      total,
		ExecutionTimeMs: float64(time.Since(start).Microseconds()) / 1000.0,
		Suggestions:     suggestionsFor(total),
	}
}

// paginate 截断返回序列，不影响 TotalCount
func paginate(items []*entity.Artifact, limit, offset int) []*entity.Artifact {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []*entity.Artifact{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// suggestionsFor 朴素的建议启发式，仅作提示
func suggestionsFor(total int) []string {
	switch {
	case total == 0:
		return []string{"try removing filters"}
	case total > broadResultThreshold:
		return []string{"add more specific filters"}
	default:
		return nil
	}
}

func matchesFilters(a *entity.Artifact, f SearchFilters) bool {
	if len(f.Types) > 0 && !containsType(f.Types, a.Type) {
		return false
	}
	if len(f.Categories) > 0 && !containsString(f.Categories, a.Category) {
		return false
	}
	if len(f.Tags) > 0 && !tagsIntersect(a.Tags, f.Tags) {
		return false
	}
	if f.Query != "" && !matchesFreeText(a, f.Query) {
		return false
	}
	if f.UsedInContext != "" && !a.Usage.HasContext(f.UsedInContext) {
		return false
	}
	if f.CreatedAfter != nil && a.CreatedAt.Before(*f.CreatedAfter) {
		return false
	}
	if f.CreatedBefore != nil && a.CreatedAt.After(*f.CreatedBefore) {
		return false
	}
	if !matchesFileSize(a, f) {
		return false
	}
	if !matchesDimensions(a, f) {
		return false
	}
	if f.FolderID != "" && a.FolderID != f.FolderID {
		return false
	}
	if f.IsActive != nil && a.IsActive != *f.IsActive {
		return false
	}
	if f.UsageType != nil && a.UsageType != *f.UsageType {
		return false
	}
	if f.UploadType != nil && a.UploadType != *f.UploadType {
		return false
	}
	if f.HasTextOverlay != nil && (a.TextOverlay != nil) != *f.HasTextOverlay {
		return false
	}
	return true
}

// matchesFreeText 在名称、描述与标签上做大小写不敏感的子串匹配
func matchesFreeText(a *entity.Artifact, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(a.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(a.Description), q) {
		return true
	}
	for _, tag := range a.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func matchesFileSize(a *entity.Artifact, f SearchFilters) bool {
	if f.MinFileSize == nil && f.MaxFileSize == nil {
		return true
	}
	if a.Metadata == nil {
		return false
	}
	if f.MinFileSize != nil && a.Metadata.FileSize < *f.MinFileSize {
		return false
	}
	if f.MaxFileSize != nil && a.Metadata.FileSize > *f.MaxFileSize {
		return false
	}
	return true
}

// matchesDimensions 尺寸谓词仅在素材已知尺寸且给出边界时生效
func matchesDimensions(a *entity.Artifact, f SearchFilters) bool {
	bounded := f.MinWidth != nil || f.MaxWidth != nil || f.MinHeight != nil || f.MaxHeight != nil
	if !bounded {
		return true
	}
	if !a.HasDimensions() {
		return false
	}
	d := a.Metadata.Dimensions
	if f.MinWidth != nil && d.Width < *f.MinWidth {
		return false
	}
	if f.MaxWidth != nil && d.Width > *f.MaxWidth {
		return false
	}
	if f.MinHeight != nil && d.Height < *f.MinHeight {
		return false
	}
	if f.MaxHeight != nil && d.Height > *f.MaxHeight {
		return false
	}
	return true
}

func containsType(types []entity.ArtifactType, t entity.ArtifactType) bool {
	for _, v := range types {
		if v == t {
			return true
		}
	}
	return false
}

func containsString(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

func tagsIntersect(artifactTags, filterTags []string) bool {
	for _, ft := range filterTags {
		for _, at := range artifactTags {
			if at == ft {
				return true
			}
		}
	}
	return false
}

package asset

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brand-asset-api/internal/domain/entity"
)

func searchFixture() []*entity.Artifact {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	logo := &entity.Artifact{
		ID: "a-logo", Name: "Company Logo", Type: entity.ArtifactTypeLogo,
		Category: "branding", Tags: []string{"image", "square"},
		UsageType: entity.UsageTypeReference, UploadType: entity.UploadTypeFile,
		FolderID: entity.FolderReferences, IsActive: true,
		Metadata: &entity.FileMetadata{
			FileSize: 80 * 1024, MIMEType: "image/png",
			Dimensions: &entity.Dimensions{Width: 512, Height: 512},
		},
		CreatedAt: base, ModifiedAt: base,
	}
	banner := &entity.Artifact{
		ID: "b-banner", Name: "Spring Banner", Description: "hero image for the spring launch",
		Type: entity.ArtifactTypeImage, Category: "campaign",
		Tags:      []string{"image", "landscape", "large"},
		UsageType: entity.UsageTypeReference, UploadType: entity.UploadTypeFile,
		FolderID: entity.FolderProducts, IsActive: false,
		Metadata: &entity.FileMetadata{
			FileSize: 6 * 1024 * 1024, MIMEType: "image/jpeg",
			Dimensions: &entity.Dimensions{Width: 1920, Height: 1080},
		},
		Usage:     entity.UsageStats{UsageCount: 2, UsedInContexts: []string{"instagram-post"}},
		CreatedAt: base.Add(time.Hour), ModifiedAt: base.Add(time.Hour),
	}
	promo := &entity.Artifact{
		ID: "c-promo", Name: "Promo", Type: entity.ArtifactTypeText,
		Category: "uncategorized", Tags: []string{"text", "headline"},
		UsageType: entity.UsageTypeExact, UploadType: entity.UploadTypeText,
		FolderID: entity.FolderReferences, IsActive: true,
		TextOverlay: &entity.TextOverlay{Headline: "Sale"},
		Metadata:    &entity.FileMetadata{FileSize: 32, MIMEType: "text/plain"},
		CreatedAt:   base.Add(2 * time.Hour), ModifiedAt: base.Add(2 * time.Hour),
	}
	return []*entity.Artifact{logo, banner, promo}
}

func TestSearchNoFiltersReturnsAllNewestFirst(t *testing.T) {
	result := evaluateSearch(searchFixture(), SearchFilters{})

	assert.Equal(t, 3, result.TotalCount)
	require.Len(t, result.Artifacts, 3)
	assert.Equal(t, "c-promo", result.Artifacts[0].ID)
	assert.Equal(t, "b-banner", result.Artifacts[1].ID)
	assert.Equal(t, "a-logo", result.Artifacts[2].ID)
	assert.Nil(t, result.Suggestions)
}

func TestSearchFreeTextCoversNameDescriptionTags(t *testing.T) {
	fixture := searchFixture()

	byName := evaluateSearch(fixture, SearchFilters{Query: "LOGO"})
	require.Equal(t, 1, byName.TotalCount)
	assert.Equal(t, "a-logo", byName.Artifacts[0].ID)

	byDescription := evaluateSearch(fixture, SearchFilters{Query: "spring launch"})
	require.Equal(t, 1, byDescription.TotalCount)
	assert.Equal(t, "b-banner", byDescription.Artifacts[0].ID)

	byTag := evaluateSearch(fixture, SearchFilters{Query: "headline"})
	require.Equal(t, 1, byTag.TotalCount)
	assert.Equal(t, "c-promo", byTag.Artifacts[0].ID)
}

func TestSearchFiltersAreConjunctive(t *testing.T) {
	fixture := searchFixture()
	active := true

	result := evaluateSearch(fixture, SearchFilters{
		Types:    []entity.ArtifactType{entity.ArtifactTypeLogo, entity.ArtifactTypeImage},
		IsActive: &active,
	})
	require.Equal(t, 1, result.TotalCount)
	assert.Equal(t, "a-logo", result.Artifacts[0].ID)
}

func TestSearchByFolderUsageAndContext(t *testing.T) {
	fixture := searchFixture()

	byFolder := evaluateSearch(fixture, SearchFilters{FolderID: entity.FolderProducts})
	require.Equal(t, 1, byFolder.TotalCount)
	assert.Equal(t, "b-banner", byFolder.Artifacts[0].ID)

	exact := entity.UsageTypeExact
	byUsage := evaluateSearch(fixture, SearchFilters{UsageType: &exact})
	require.Equal(t, 1, byUsage.TotalCount)
	assert.Equal(t, "c-promo", byUsage.Artifacts[0].ID)

	byContext := evaluateSearch(fixture, SearchFilters{UsedInContext: "instagram-post"})
	require.Equal(t, 1, byContext.TotalCount)
	assert.Equal(t, "b-banner", byContext.Artifacts[0].ID)

	hasOverlay := true
	byOverlay := evaluateSearch(fixture, SearchFilters{HasTextOverlay: &hasOverlay})
	require.Equal(t, 1, byOverlay.TotalCount)
	assert.Equal(t, "c-promo", byOverlay.Artifacts[0].ID)
}

func TestSearchNumericRanges(t *testing.T) {
	fixture := searchFixture()

	minSize := int64(1024 * 1024)
	bySize := evaluateSearch(fixture, SearchFilters{MinFileSize: &minSize})
	require.Equal(t, 1, bySize.TotalCount)
	assert.Equal(t, "b-banner", bySize.Artifacts[0].ID)

	// 尺寸谓词只在素材有已知尺寸时命中：文本素材被排除
	minWidth := 100
	byWidth := evaluateSearch(fixture, SearchFilters{MinWidth: &minWidth})
	assert.Equal(t, 2, byWidth.TotalCount)

	maxWidth := 600
	byMaxWidth := evaluateSearch(fixture, SearchFilters{MaxWidth: &maxWidth})
	require.Equal(t, 1, byMaxWidth.TotalCount)
	assert.Equal(t, "a-logo", byMaxWidth.Artifacts[0].ID)
}

func TestSearchDateRange(t *testing.T) {
	fixture := searchFixture()
	cutoff := time.Date(2026, 3, 1, 13, 30, 0, 0, time.UTC)

	after := evaluateSearch(fixture, SearchFilters{CreatedAfter: &cutoff})
	assert.Equal(t, 1, after.TotalCount)

	before := evaluateSearch(fixture, SearchFilters{CreatedBefore: &cutoff})
	assert.Equal(t, 2, before.TotalCount)
}

func TestSearchPaginationKeepsTotalCount(t *testing.T) {
	fixture := searchFixture()

	page := evaluateSearch(fixture, SearchFilters{Limit: 2, Offset: 1})
	assert.Equal(t, 3, page.TotalCount)
	require.Len(t, page.Artifacts, 2)
	assert.Equal(t, "b-banner", page.Artifacts[0].ID)
	assert.Equal(t, "a-logo", page.Artifacts[1].ID)

	// 越界偏移：空页，总数不变
	empty := evaluateSearch(fixture, SearchFilters{Limit: 2, Offset: 10})
	assert.Equal(t, 3, empty.TotalCount)
	assert.Empty(t, empty.Artifacts)
}

func TestSearchSuggestions(t *testing.T) {
	none := evaluateSearch(searchFixture(), SearchFilters{Query: "nothing matches this"})
	assert.Equal(t, 0, none.TotalCount)
	assert.Equal(t, []string{"try removing filters"}, none.Suggestions)

	big := make([]*entity.Artifact, 0, broadResultThreshold+1)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i <= broadResultThreshold; i++ {
		big = append(big, &entity.Artifact{
			ID:        fmt.Sprintf("a-%03d", i),
			Name:      fmt.Sprintf("asset %d", i),
			Type:      entity.ArtifactTypeImage,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	broad := evaluateSearch(big, SearchFilters{})
	assert.Equal(t, broadResultThreshold+1, broad.TotalCount)
	assert.Equal(t, []string{"add more specific filters"}, broad.Suggestions)
}

package asset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brand-asset-api/internal/domain/entity"
	"brand-asset-api/internal/domain/repository"
)

func TestGenerateTagsOrientation(t *testing.T) {
	file := repository.FileInput{Name: "x.jpg", MIMEType: "image/jpeg"}

	cases := []struct {
		name   string
		dims   *entity.Dimensions
		expect string
	}{
		{"landscape", &entity.Dimensions{Width: 1920, Height: 1080}, "landscape"},
		{"portrait", &entity.Dimensions{Width: 1080, Height: 1920}, "portrait"},
		{"square", &entity.Dimensions{Width: 1000, Height: 1000}, "square"},
		{"near-square ratio stays square", &entity.Dimensions{Width: 1100, Height: 1000}, "square"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			meta := &entity.FileMetadata{MIMEType: "image/jpeg", FileSize: 1024, Dimensions: tc.dims}
			tags := GenerateTags(file, meta)

			assert.Contains(t, tags, "image")
			assert.Contains(t, tags, tc.expect)

			orientation := 0
			for _, tag := range tags {
				if tag == "landscape" || tag == "portrait" || tag == "square" {
					orientation++
				}
			}
			assert.Equal(t, 1, orientation, "exactly one orientation tag")
		})
	}
}

func TestGenerateTagsFileSize(t *testing.T) {
	file := repository.FileInput{Name: "x.jpg", MIMEType: "image/jpeg"}

	cases := []struct {
		size   int64
		expect string
	}{
		{6 * 1024 * 1024, "large"},
		{2 * 1024 * 1024, "medium"},
		{500 * 1024, "small"},
	}
	for _, tc := range cases {
		meta := &entity.FileMetadata{MIMEType: "image/jpeg", FileSize: tc.size}
		tags := GenerateTags(file, meta)

		assert.Contains(t, tags, tc.expect)

		sizeTags := 0
		for _, tag := range tags {
			if tag == "large" || tag == "medium" || tag == "small" {
				sizeTags++
			}
		}
		assert.Equal(t, 1, sizeTags, "exactly one size tag for %d bytes", tc.size)
	}
}

func TestGenerateTagsNonImageHasNoImageTag(t *testing.T) {
	file := repository.FileInput{Name: "doc.pdf", MIMEType: "application/pdf"}
	meta := &entity.FileMetadata{MIMEType: "application/pdf", FileSize: 2048}

	tags := GenerateTags(file, meta)
	assert.NotContains(t, tags, "image")
	assert.Contains(t, tags, "small")
}

func TestGenerateTextTags(t *testing.T) {
	structured := GenerateTextTags(StructuredOverlay{
		Headline: "Sale", CTA: "Buy Now", Discount: "20% off",
	})
	assert.Equal(t, []string{"text", "headline", "call-to-action", "discount"}, structured)

	plain := GenerateTextTags(PlainText("just words"))
	assert.Equal(t, []string{"text", "plain-text"}, plain)
}

func TestGenerateDirectives(t *testing.T) {
	imageFile := repository.FileInput{Name: "x.jpg", MIMEType: "image/jpeg"}
	imageMeta := &entity.FileMetadata{MIMEType: "image/jpeg"}

	directives := GenerateDirectives(imageFile, imageMeta)
	require.Len(t, directives, 1)
	assert.Equal(t, entity.DirectiveTypeStyleReference, directives[0].Type)
	assert.True(t, directives[0].Active)

	textFile := repository.FileInput{Name: "x.txt", MIMEType: "text/plain"}
	textMeta := &entity.FileMetadata{MIMEType: "text/plain", ExtractedText: "hello"}

	directives = GenerateDirectives(textFile, textMeta)
	require.Len(t, directives, 1)
	assert.Equal(t, entity.DirectiveTypeTextOverlay, directives[0].Type)
	assert.False(t, directives[0].Active)

	pdfMeta := &entity.FileMetadata{MIMEType: "application/pdf"}
	assert.Empty(t, GenerateDirectives(repository.FileInput{MIMEType: "application/pdf"}, pdfMeta))
}

func TestInferArtifactType(t *testing.T) {
	cases := []struct {
		name     string
		mimeType string
		expect   entity.ArtifactType
	}{
		{"company-logo.png", "image/png", entity.ArtifactTypeLogo},
		{"Screenshot 2026-03-01.png", "image/png", entity.ArtifactTypeScreenshot},
		{"photo.jpg", "image/jpeg", entity.ArtifactTypeImage},
		{"notes.txt", "text/plain", entity.ArtifactTypeText},
		{"brief.pdf", "application/pdf", entity.ArtifactTypeDocument},
	}
	for _, tc := range cases {
		got := InferArtifactType(repository.FileInput{Name: tc.name, MIMEType: tc.mimeType})
		assert.Equal(t, tc.expect, got, "file %s", tc.name)
	}
}

func TestInferFolderID(t *testing.T) {
	cases := []struct {
		name   string
		expect string
	}{
		{"product-shot.jpg", entity.FolderProducts},
		{"discount-banner.jpg", entity.FolderDiscounts},
		{"old-post.jpg", entity.FolderPreviousPosts},
		{"random.jpg", entity.FolderReferences},
	}
	for _, tc := range cases {
		got := InferFolderID(repository.FileInput{Name: tc.name})
		assert.Equal(t, tc.expect, got, "file %s", tc.name)
	}
}

package asset

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brand-asset-api/internal/domain/entity"
	"brand-asset-api/internal/domain/repository"
)

func TestExtractMetadataImage(t *testing.T) {
	source := &stubSource{dims: &entity.Dimensions{Width: 800, Height: 600}}
	file := repository.FileInput{Name: "banner.jpg", MIMEType: "image/jpeg", Size: 2048, Data: []byte("x")}

	meta := ExtractMetadata(context.Background(), source, file, true)

	assert.Equal(t, int64(2048), meta.FileSize)
	assert.Equal(t, "image/jpeg", meta.MIMEType)
	require.NotNil(t, meta.Dimensions)
	assert.Equal(t, 800, meta.Dimensions.Width)
	assert.Len(t, meta.ColorPalette, 5)
	require.NotNil(t, meta.ImageAnalysis)
	assert.NotEmpty(t, meta.ImageAnalysis.Style)
	assert.NotEmpty(t, meta.ImageAnalysis.Mood)
	// 图像 OCR 未接入，提取文本恒为空
	assert.Empty(t, meta.ExtractedText)
}

func TestExtractMetadataIsDeterministic(t *testing.T) {
	source := &stubSource{dims: &entity.Dimensions{Width: 800, Height: 600}}
	file := repository.FileInput{Name: "banner.jpg", MIMEType: "image/jpeg", Size: 2048, Data: []byte("x")}

	first := ExtractMetadata(context.Background(), source, file, true)
	second := ExtractMetadata(context.Background(), source, file, true)

	assert.Equal(t, first.ColorPalette, second.ColorPalette)
	assert.Equal(t, first.ImageAnalysis, second.ImageAnalysis)
}

func TestExtractMetadataAnalysisDisabled(t *testing.T) {
	source := &stubSource{dims: &entity.Dimensions{Width: 800, Height: 600}}
	file := repository.FileInput{Name: "banner.jpg", MIMEType: "image/jpeg", Size: 2048}

	meta := ExtractMetadata(context.Background(), source, file, false)

	require.NotNil(t, meta.Dimensions)
	assert.Nil(t, meta.ColorPalette)
	assert.Nil(t, meta.ImageAnalysis)
}

func TestExtractMetadataDecodeFailureDegrades(t *testing.T) {
	source := &stubSource{decodeErr: errors.New("not an image")}
	file := repository.FileInput{Name: "broken.png", MIMEType: "image/png", Size: 64}

	meta := ExtractMetadata(context.Background(), source, file, true)

	assert.Nil(t, meta.Dimensions)
	assert.Equal(t, int64(64), meta.FileSize)
	assert.Equal(t, "image/png", meta.MIMEType)
}

func TestExtractMetadataTextFile(t *testing.T) {
	file := repository.FileInput{Name: "notes.txt", MIMEType: "text/plain", Size: 5, Data: []byte("hello")}

	meta := ExtractMetadata(context.Background(), &stubSource{}, file, true)

	assert.Equal(t, "hello", meta.ExtractedText)
	assert.Nil(t, meta.Dimensions)
	assert.Nil(t, meta.ImageAnalysis)
}

func TestExtractMetadataUnknownType(t *testing.T) {
	file := repository.FileInput{Name: "brief.pdf", MIMEType: "application/pdf", Size: 4096}

	meta := ExtractMetadata(context.Background(), &stubSource{}, file, true)

	assert.Equal(t, int64(4096), meta.FileSize)
	assert.Equal(t, "application/pdf", meta.MIMEType)
	assert.Empty(t, meta.ExtractedText)
	assert.Nil(t, meta.Dimensions)
}

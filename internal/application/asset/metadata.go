package asset

import (
	"context"
	"hash/fnv"
	"strings"

	"brand-asset-api/internal/domain/entity"
	"brand-asset-api/internal/domain/repository"
	"brand-asset-api/pkg/logger"
)

// 占位调色板与内容标签的取值表
// 图像分析是文档化的桩实现：字段形状与消费方约定一致，取值由
// 文件名和大小确定性派生，不携带真实视觉信号，测试与下游不得
// 将其当作权威数据。
var (
	placeholderPalettes = [][]string{
		{"#1a1a2e", "#16213e", "#0f3460", "#e94560", "#f5f5f5"},
		{"#2d4059", "#ea5455", "#f07b3f", "#ffd460", "#ffffff"},
		{"#222831", "#393e46", "#00adb5", "#eeeeee", "#f8b500"},
		{"#f9ed69", "#f08a5d", "#b83b5e", "#6a2c70", "#fcfcfc"},
	}
	placeholderStyles = []string{"minimal", "bold", "organic", "geometric"}
	placeholderMoods  = []string{"energetic", "calm", "professional", "playful"}
)

// ExtractMetadata 从文件派生元数据
// 永不因不支持的类型失败：未知类型退化为仅含大小和 MIME 的记录；
// 图像尺寸解码失败时退化为无尺寸的元数据，不中断上传。
func ExtractMetadata(ctx context.Context, source repository.FileSource, file repository.FileInput, analysisEnabled bool) *entity.FileMetadata {
	meta := &entity.FileMetadata{
		FileSize: file.Size,
		MIMEType: file.MIMEType,
	}

	switch {
	case strings.HasPrefix(file.MIMEType, "image/"):
		dims, err := source.DecodeImageDimensions(ctx, file)
		if err != nil {
			logger.Warn(ctx, "image dimensions unavailable, keeping metadata without them",
				"file", file.Name, "error", err.Error())
		} else {
			meta.Dimensions = dims
		}

		if analysisEnabled {
			meta.ColorPalette = paletteFor(file)
			meta.ImageAnalysis = analyzeImage(file)
		}

		// 图像 OCR 是桩：没有真实后端时提取文本为空
		meta.ExtractedText = ""

	case strings.HasPrefix(file.MIMEType, "text/"):
		meta.ExtractedText = string(file.Data)
	}

	return meta
}

// contentHash 文件的确定性指纹，用于占位取值
func contentHash(file repository.FileInput) uint32 {
	h := fnv.New32a()
	h.Write([]byte(file.Name))
	h.Write([]byte{byte(file.Size), byte(file.Size >> 8), byte(file.Size >> 16), byte(file.Size >> 24)})
	return h.Sum32()
}

// paletteFor 返回固定长度的占位调色板
func paletteFor(file repository.FileInput) []string {
	idx := int(contentHash(file)) % len(placeholderPalettes)
	palette := make([]string, len(placeholderPalettes[idx]))
	copy(palette, placeholderPalettes[idx])
	return palette
}

// analyzeImage 粗粒度的内容启发式
func analyzeImage(file repository.FileInput) *entity.ImageAnalysis {
	h := contentHash(file)
	name := strings.ToLower(file.Name)
	return &entity.ImageAnalysis{
		HasText:     strings.Contains(name, "text") || h%3 == 0,
		HasPeople:   strings.Contains(name, "people") || strings.Contains(name, "team"),
		HasProducts: strings.Contains(name, "product"),
		Style:       placeholderStyles[h%uint32(len(placeholderStyles))],
		Mood:        placeholderMoods[(h>>8)%uint32(len(placeholderMoods))],
	}
}

package asset

import (
	"strings"

	"brand-asset-api/internal/domain/entity"
	"brand-asset-api/internal/domain/repository"
)

// 文件大小标签阈值
const (
	largeFileBytes  = 5 * 1024 * 1024
	mediumFileBytes = 1 * 1024 * 1024
)

// 宽高比阈值：超出区间判定为横版/竖版，区间内为方形
const (
	landscapeRatio = 1.2
	portraitRatio  = 0.8
)

// GenerateTags 从文件与元数据派生描述标签
// 规则是确定性的，与顺序无关。
func GenerateTags(file repository.FileInput, meta *entity.FileMetadata) []string {
	var tags []string

	if strings.HasPrefix(meta.MIMEType, "image/") {
		tags = append(tags, "image")
	}

	if meta.Dimensions != nil && meta.Dimensions.Height > 0 {
		ratio := float64(meta.Dimensions.Width) / float64(meta.Dimensions.Height)
		switch {
		case ratio > landscapeRatio:
			tags = append(tags, "landscape")
		case ratio < portraitRatio:
			tags = append(tags, "portrait")
		default:
			tags = append(tags, "square")
		}
	}

	switch {
	case meta.FileSize > largeFileBytes:
		tags = append(tags, "large")
	case meta.FileSize > mediumFileBytes:
		tags = append(tags, "medium")
	default:
		tags = append(tags, "small")
	}

	return tags
}

// GenerateTextTags 从文本内容变体派生标签
// 结构化字段逐个映射为标签；纯文本得到 plain-text；基础类型标签
// text 总是包含。
func GenerateTextTags(content TextContent) []string {
	tags := []string{"text"}

	switch c := content.(type) {
	case StructuredOverlay:
		if c.Headline != "" {
			tags = append(tags, "headline")
		}
		if c.Message != "" {
			tags = append(tags, "message")
		}
		if c.CTA != "" {
			tags = append(tags, "call-to-action")
		}
		if c.Contact != "" {
			tags = append(tags, "contact")
		}
		if c.Discount != "" {
			tags = append(tags, "discount")
		}
	default:
		tags = append(tags, "plain-text")
	}

	return tags
}

// GenerateDirectives 从文件与元数据派生生成指令
// 图像总是得到一条默认激活的风格参考指令；提取文本非空时额外
// 得到一条默认不激活的文字叠加指令。
func GenerateDirectives(file repository.FileInput, meta *entity.FileMetadata) []entity.Directive {
	var directives []entity.Directive

	if strings.HasPrefix(meta.MIMEType, "image/") {
		directives = append(directives, entity.NewStyleReferenceDirective())
	}

	if meta.ExtractedText != "" {
		directives = append(directives, entity.NewTextOverlayDirective(meta.ExtractedText))
	}

	return directives
}

// InferArtifactType 从文件名与 MIME 类型推断素材分类
func InferArtifactType(file repository.FileInput) entity.ArtifactType {
	name := strings.ToLower(file.Name)
	switch {
	case strings.Contains(name, "logo"):
		return entity.ArtifactTypeLogo
	case strings.Contains(name, "screenshot") || strings.Contains(name, "screen-shot"):
		return entity.ArtifactTypeScreenshot
	case strings.HasPrefix(file.MIMEType, "image/"):
		return entity.ArtifactTypeImage
	case strings.HasPrefix(file.MIMEType, "text/"):
		return entity.ArtifactTypeText
	default:
		return entity.ArtifactTypeDocument
	}
}

// InferFolderID 从文件名推断默认的文件夹归属
// 无法判定时落入 references。
func InferFolderID(file repository.FileInput) string {
	name := strings.ToLower(file.Name)
	switch {
	case strings.Contains(name, "product"):
		return entity.FolderProducts
	case strings.Contains(name, "discount"):
		return entity.FolderDiscounts
	case strings.Contains(name, "post"):
		return entity.FolderPreviousPosts
	default:
		return entity.FolderReferences
	}
}

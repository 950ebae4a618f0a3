package asset

import (
	"encoding/json"
	"fmt"
	"strings"

	"brand-asset-api/internal/domain/entity"
)

// TextContent 文本素材内容的显式变体类型
// 取代对原始字符串的 JSON 嗅探：API 边界负责把原始内容映射为
// PlainText 或 StructuredOverlay，核心只处理类型化分支。
type TextContent interface {
	isTextContent()
}

// PlainText 纯文本内容
type PlainText string

func (PlainText) isTextContent() {}

// StructuredOverlay 结构化文字载荷内容
type StructuredOverlay struct {
	Headline     string `json:"headline,omitempty"`
	Message      string `json:"message,omitempty"`
	CTA          string `json:"cta,omitempty"`
	Contact      string `json:"contact,omitempty"`
	Discount     string `json:"discount,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

func (StructuredOverlay) isTextContent() {}

// IsEmpty 检查是否没有任何结构化字段
func (o StructuredOverlay) IsEmpty() bool {
	return o.Headline == "" && o.Message == "" && o.CTA == "" &&
		o.Contact == "" && o.Discount == ""
}

// Overlay 转换为实体层的文字载荷
func (o StructuredOverlay) Overlay() *entity.TextOverlay {
	return &entity.TextOverlay{
		Headline:     o.Headline,
		Message:      o.Message,
		CTA:          o.CTA,
		Contact:      o.Contact,
		Discount:     o.Discount,
		Instructions: o.Instructions,
	}
}

// ParseTextContent 将原始内容解析为类型化变体
// 内容是 JSON 且包含任一结构化字段时返回 StructuredOverlay，
// 否则按纯文本处理。
func ParseTextContent(raw string) TextContent {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return PlainText(raw)
	}

	var overlay StructuredOverlay
	if err := json.Unmarshal([]byte(trimmed), &overlay); err != nil {
		return PlainText(raw)
	}
	if overlay.IsEmpty() {
		return PlainText(raw)
	}
	return overlay
}

// rawText 还原变体的原始文本表示，用于元数据与字节计量
func rawText(content TextContent) string {
	switch c := content.(type) {
	case PlainText:
		return string(c)
	case StructuredOverlay:
		data, err := json.Marshal(c)
		if err != nil {
			return ""
		}
		return string(data)
	default:
		return ""
	}
}

// 兜底指引：结构化字段全部缺失时使用
const defaultTextInstructions = "Use this text content in the design as appropriate"

// SynthesizeInstructions 按出现的字段逐条拼接使用指引
func SynthesizeInstructions(o StructuredOverlay) string {
	var clauses []string
	if o.Headline != "" {
		clauses = append(clauses, fmt.Sprintf("Use %q as the main headline with large, bold text", o.Headline))
	}
	if o.Message != "" {
		clauses = append(clauses, fmt.Sprintf("Include the message %q as supporting text", o.Message))
	}
	if o.CTA != "" {
		clauses = append(clauses, fmt.Sprintf("Add a prominent call-to-action button with %q", o.CTA))
	}
	if o.Contact != "" {
		clauses = append(clauses, fmt.Sprintf("Show the contact details %q", o.Contact))
	}
	if o.Discount != "" {
		clauses = append(clauses, fmt.Sprintf("Highlight the discount %q", o.Discount))
	}
	if len(clauses) == 0 {
		return defaultTextInstructions
	}
	return strings.Join(clauses, ", ")
}

// Package entity 定义领域实体
package entity

import (
	"github.com/google/uuid"
)

// DirectiveType 生成指令类型
type DirectiveType string

const (
	DirectiveTypeStyleReference DirectiveType = "style-reference"
	DirectiveTypeTextOverlay    DirectiveType = "text-overlay"
)

// StyleStrength 风格指令强度
type StyleStrength string

const (
	StyleStrengthSubtle   StyleStrength = "subtle"
	StyleStrengthModerate StyleStrength = "moderate"
	StyleStrengthStrong   StyleStrength = "strong"
)

// StyleAdaptation 风格指令要适配的维度
type StyleAdaptation struct {
	Layout      bool `json:"layout"`
	ColorScheme bool `json:"color_scheme"`
	Composition bool `json:"composition"`
	Mood        bool `json:"mood"`
}

// OverlayPosition 文字叠加定位
type OverlayPosition struct {
	Horizontal string `json:"horizontal"` // left | center | right
	Vertical   string `json:"vertical"`   // top | center | bottom
}

// OverlayStyling 文字叠加样式
type OverlayStyling struct {
	FontSize   string `json:"font_size"`   // small | medium | large
	FontWeight string `json:"font_weight"` // normal | bold
}

// Directive 附加在素材上的生成指令，告知下游生成器如何使用素材
type Directive struct {
	ID          string        `json:"id"`
	Type        DirectiveType `json:"type"`
	Label       string        `json:"label"`
	Instruction string        `json:"instruction"`
	Priority    int           `json:"priority"`
	Active      bool          `json:"active"`

	// style-reference 专有字段
	Strength   StyleStrength    `json:"strength,omitempty"`
	Adaptation *StyleAdaptation `json:"adaptation,omitempty"`

	// text-overlay 专有字段
	Text     string           `json:"text,omitempty"`
	Position *OverlayPosition `json:"position,omitempty"`
	Styling  *OverlayStyling  `json:"styling,omitempty"`
}

// NewStyleReferenceDirective 创建风格参考指令
// 风格指导总是可以安全施加，因此默认激活。
func NewStyleReferenceDirective() Directive {
	return Directive{
		ID:          uuid.New().String(),
		Type:        DirectiveTypeStyleReference,
		Label:       "Style Reference",
		Instruction: "Adapt the visual style of this artifact",
		Priority:    7,
		Active:      true,
		Strength:    StyleStrengthModerate,
		Adaptation: &StyleAdaptation{
			Layout:      true,
			ColorScheme: true,
			Composition: true,
			Mood:        true,
		},
	}
}

// NewTextOverlayDirective 创建文字叠加指令
// 逐字文本注入需要显式开启，因此默认不激活。
func NewTextOverlayDirective(text string) Directive {
	return Directive{
		ID:          uuid.New().String(),
		Type:        DirectiveTypeTextOverlay,
		Label:       "Text Overlay",
		Instruction: "Render this text verbatim on the output",
		Priority:    9,
		Active:      false,
		Text:        text,
		Position: &OverlayPosition{
			Horizontal: "center",
			Vertical:   "center",
		},
		Styling: &OverlayStyling{
			FontSize:   "large",
			FontWeight: "bold",
		},
	}
}

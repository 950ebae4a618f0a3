// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ArtifactType 素材载荷分类
type ArtifactType string

const (
	ArtifactTypeImage      ArtifactType = "image"
	ArtifactTypeLogo       ArtifactType = "logo"
	ArtifactTypeScreenshot ArtifactType = "screenshot"
	ArtifactTypeDocument   ArtifactType = "document"
	ArtifactTypeText       ArtifactType = "text"
)

// UsageType 素材使用方式
// exact 表示内容（尤其是 TextOverlay）必须被下游逐字复现；
// reference 表示素材仅提供风格/语气参考。
type UsageType string

const (
	UsageTypeExact     UsageType = "exact"
	UsageTypeReference UsageType = "reference"
)

// UploadType 素材来源介质
type UploadType string

const (
	UploadTypeFile UploadType = "file"
	UploadTypeText UploadType = "text"
	UploadTypeURL  UploadType = "url"
)

// Dimensions 图像像素尺寸
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ImageAnalysis 图像内容分析结果
// 占位实现：字段与消费方接口保持一致，但取值来自确定性启发式，
// 不携带真实的视觉信号。
type ImageAnalysis struct {
	HasText     bool   `json:"has_text"`
	HasPeople   bool   `json:"has_people"`
	HasProducts bool   `json:"has_products"`
	Style       string `json:"style,omitempty"`
	Mood        string `json:"mood,omitempty"`
}

// FileMetadata 创建时一次性派生的文件元数据，此后不再重算
type FileMetadata struct {
	FileSize      int64          `json:"file_size"`
	MIMEType      string         `json:"mime_type"`
	Dimensions    *Dimensions    `json:"dimensions,omitempty"`
	ColorPalette  []string       `json:"color_palette,omitempty"`
	ImageAnalysis *ImageAnalysis `json:"image_analysis,omitempty"`
	ExtractedText string         `json:"extracted_text,omitempty"`
}

// TextOverlay 逐字复现的结构化文字载荷
// 仅当 UsageType == exact 时存在。
type TextOverlay struct {
	Headline     string `json:"headline,omitempty"`
	Message      string `json:"message,omitempty"`
	CTA          string `json:"cta,omitempty"`
	Contact      string `json:"contact,omitempty"`
	Discount     string `json:"discount,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// IsEmpty 检查是否没有任何结构化字段
func (o *TextOverlay) IsEmpty() bool {
	if o == nil {
		return true
	}
	return o.Headline == "" && o.Message == "" && o.CTA == "" &&
		o.Contact == "" && o.Discount == ""
}

// UsageStats 使用统计，仅由 TrackUsage 操作修改
type UsageStats struct {
	UsageCount     int        `json:"usage_count"`
	UsedInContexts []string   `json:"used_in_contexts,omitempty"`
	LastUsedAt     *time.Time `json:"last_used_at,omitempty"`
}

// HasContext 检查上下文是否已被记录（集合语义）
func (u *UsageStats) HasContext(context string) bool {
	for _, c := range u.UsedInContexts {
		if c == context {
			return true
		}
	}
	return false
}

// Artifact 素材实体：可供内容生成流水线消费的带标签资产（上传文件或独立文本块）
type Artifact struct {
	ID           string        `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string        `json:"name" gorm:"type:varchar(255);not null"`
	Description  string        `json:"description,omitempty" gorm:"type:text"`
	Type         ArtifactType  `json:"type" gorm:"type:varchar(32);not null"`
	Category     string        `json:"category" gorm:"type:varchar(100)"`
	UsageType    UsageType     `json:"usage_type" gorm:"type:varchar(16);not null"`
	UploadType   UploadType    `json:"upload_type" gorm:"type:varchar(16);not null"`
	FolderID     string        `json:"folder_id" gorm:"type:varchar(64);index"`
	IsActive     bool          `json:"is_active" gorm:"default:false"`
	Instructions string        `json:"instructions,omitempty" gorm:"type:text"`
	TextOverlay  *TextOverlay  `json:"text_overlay,omitempty" gorm:"type:jsonb;serializer:json"`
	FilePath     string        `json:"file_path,omitempty" gorm:"type:text"`
	ThumbnailPath string       `json:"thumbnail_path,omitempty" gorm:"type:text"`
	Metadata     *FileMetadata `json:"metadata,omitempty" gorm:"type:jsonb;serializer:json"`
	Directives   []Directive   `json:"directives,omitempty" gorm:"type:jsonb;serializer:json"`
	Tags         []string      `json:"tags,omitempty" gorm:"type:jsonb;serializer:json"`
	Usage        UsageStats    `json:"usage" gorm:"type:jsonb;serializer:json"`
	CreatedAt    time.Time     `json:"created_at" gorm:"autoCreateTime"`
	ModifiedAt   time.Time     `json:"modified_at"`
	UploadedAt   time.Time     `json:"uploaded_at"`
}

// TableName 指定表名
func (Artifact) TableName() string {
	return "artifacts"
}

// NewArtifact 创建素材，CreatedAt/UploadedAt 仅在此处设置
func NewArtifact(name string, artifactType ArtifactType, usageType UsageType, uploadType UploadType) *Artifact {
	now := time.Now()
	return &Artifact{
		ID:         uuid.New().String(),
		Name:       name,
		Type:       artifactType,
		Category:   "uncategorized",
		UsageType:  usageType,
		UploadType: uploadType,
		IsActive:   false,
		Usage:      UsageStats{},
		CreatedAt:  now,
		ModifiedAt: now,
		UploadedAt: now,
	}
}

// Touch 更新修改时间戳
func (a *Artifact) Touch() {
	a.ModifiedAt = time.Now()
}

// HasTag 检查素材是否带有指定标签
func (a *Artifact) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasDimensions 检查素材是否已知像素尺寸
func (a *Artifact) HasDimensions() bool {
	return a.Metadata != nil && a.Metadata.Dimensions != nil
}

// ClearTextOverlay 清除逐字文字载荷
// reference 素材绝不携带 exact 文本，转换时数据丢失是预期行为。
func (a *Artifact) ClearTextOverlay() {
	a.TextOverlay = nil
}

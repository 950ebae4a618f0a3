// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/google/uuid"
)

// FolderType 文件夹类型
type FolderType string

const (
	FolderTypeDefault FolderType = "default"
	FolderTypeCustom  FolderType = "custom"
)

// 初始化时固定种入的默认文件夹 ID（同时作为名称 slug）
const (
	FolderPreviousPosts = "previous-posts"
	FolderProducts      = "products"
	FolderDiscounts     = "discounts"
	FolderReferences    = "references"
)

// DefaultFolderIDs 按种子顺序返回默认文件夹 ID
func DefaultFolderIDs() []string {
	return []string{FolderPreviousPosts, FolderProducts, FolderDiscounts, FolderReferences}
}

// Folder 文件夹实体：面向用户的素材分组，与 Category 标签维度正交
type Folder struct {
	ID          string     `json:"id" gorm:"type:varchar(64);primaryKey"`
	Name        string     `json:"name" gorm:"type:varchar(255);not null"`
	Description string     `json:"description,omitempty" gorm:"type:text"`
	Color       string     `json:"color,omitempty" gorm:"type:varchar(32)"`
	Type        FolderType `json:"type" gorm:"type:varchar(16);not null"`
	ArtifactIDs []string   `json:"artifact_ids,omitempty" gorm:"type:jsonb;serializer:json"`
	IsDefault   bool       `json:"is_default" gorm:"default:false"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	ModifiedAt  time.Time  `json:"modified_at"`
}

// TableName 指定表名
func (Folder) TableName() string {
	return "folders"
}

// NewFolder 创建自定义文件夹
func NewFolder(name, description, color string) *Folder {
	now := time.Now()
	return &Folder{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Color:       color,
		Type:        FolderTypeCustom,
		ArtifactIDs: []string{},
		IsDefault:   false,
		CreatedAt:   now,
		ModifiedAt:  now,
	}
}

// NewDefaultFolder 创建默认文件夹（固定 ID，初始化种子用）
func NewDefaultFolder(id, name string) *Folder {
	now := time.Now()
	return &Folder{
		ID:          id,
		Name:        name,
		Type:        FolderTypeDefault,
		ArtifactIDs: []string{},
		IsDefault:   true,
		CreatedAt:   now,
		ModifiedAt:  now,
	}
}

// Contains 检查成员集合是否包含指定素材
func (f *Folder) Contains(artifactID string) bool {
	for _, id := range f.ArtifactIDs {
		if id == artifactID {
			return true
		}
	}
	return false
}

// AddArtifact 将素材加入成员集合（集合语义，重复加入为空操作）
func (f *Folder) AddArtifact(artifactID string) {
	if f.Contains(artifactID) {
		return
	}
	f.ArtifactIDs = append(f.ArtifactIDs, artifactID)
	f.ModifiedAt = time.Now()
}

// RemoveArtifact 将素材移出成员集合
func (f *Folder) RemoveArtifact(artifactID string) {
	for i, id := range f.ArtifactIDs {
		if id == artifactID {
			f.ArtifactIDs = append(f.ArtifactIDs[:i], f.ArtifactIDs[i+1:]...)
			f.ModifiedAt = time.Now()
			return
		}
	}
}

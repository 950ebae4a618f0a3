// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"brand-asset-api/internal/domain/entity"
)

// FileInput 上传文件的字节来源
type FileInput struct {
	Name     string
	MIMEType string
	Size     int64
	Data     []byte
}

// FileSource 字节来源接口，仅供元数据提取使用
// 仓库不得在当前操作之外保留字节内容（不跨重启缓存）。
type FileSource interface {
	// ReadAsDataURL 将文件读取为 base64 data URL
	ReadAsDataURL(ctx context.Context, file FileInput) (string, error)
	// DecodeImageDimensions 解码图像的自然像素尺寸
	DecodeImageDimensions(ctx context.Context, file FileInput) (*entity.Dimensions, error)
}

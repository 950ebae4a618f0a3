// Package filesource 提供上传文件的字节读取与图像解码实现
package filesource

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"brand-asset-api/internal/domain/entity"
	"brand-asset-api/internal/domain/repository"
	pkgerrors "brand-asset-api/pkg/errors"
)

var tracer = otel.Tracer("filesource")

// Source 内存字节来源
type Source struct{}

// New 创建字节来源
func New() *Source {
	return &Source{}
}

var _ repository.FileSource = (*Source)(nil)

// ReadAsDataURL 将文件读取为 base64 data URL
func (s *Source) ReadAsDataURL(ctx context.Context, file repository.FileInput) (string, error) {
	_, span := tracer.Start(ctx, "filesource.ReadAsDataURL",
		// 仅记录大小，避免把文件内容带进追踪后端
	)
	span.SetAttributes(attribute.Int("file.size", len(file.Data)))
	defer span.End()

	if len(file.Data) == 0 {
		return "", pkgerrors.ErrEmptyContent
	}

	mime := file.MIMEType
	if mime == "" {
		mime = "application/octet-stream"
	}

	encoded := base64.StdEncoding.EncodeToString(file.Data)
	return fmt.Sprintf("data:%s;base64,%s", mime, encoded), nil
}

// DecodeImageDimensions 解码图像的自然像素尺寸
// 只读取图像头（DecodeConfig），不做完整解码。
func (s *Source) DecodeImageDimensions(ctx context.Context, file repository.FileInput) (*entity.Dimensions, error) {
	_, span := tracer.Start(ctx, "filesource.DecodeImageDimensions")
	defer span.End()

	cfg, format, err := image.DecodeConfig(bytes.NewReader(file.Data))
	if err != nil {
		span.RecordError(err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeImageDecodeFailed, "unreadable image source")
	}

	span.SetAttributes(
		attribute.String("image.format", format),
		attribute.Int("image.width", cfg.Width),
		attribute.Int("image.height", cfg.Height),
	)

	return &entity.Dimensions{Width: cfg.Width, Height: cfg.Height}, nil
}

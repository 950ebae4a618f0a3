// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"brand-asset-api/internal/interfaces/http/dto"
	pkgerrors "brand-asset-api/pkg/errors"
)

// respondError 按应用错误码映射 HTTP 响应
func respondError(c *gin.Context, err error) {
	appErr := pkgerrors.AsAppError(err)
	dto.ErrorWithDetail(c, appErr.HTTPStatus, appErr.Message, &dto.ErrorDetail{
		ErrorCode: string(appErr.Code),
		Details:   appErr.Detail,
	})
}

// Package errors 提供统一的错误定义
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode 错误码类型
type ErrorCode string

// 预定义错误码
const (
	// 通用错误 (1xxx)
	CodeSuccess            ErrorCode = "0"
	CodeUnknown            ErrorCode = "1000"
	CodeInvalidParam       ErrorCode = "1001"
	CodeNotFound           ErrorCode = "1002"
	CodeConflict           ErrorCode = "1003"
	CodeTooManyRequests    ErrorCode = "1004"
	CodeInternalError      ErrorCode = "1005"
	CodeServiceUnavailable ErrorCode = "1006"

	// 素材校验错误 (2xxx)
	CodeFileTooLarge         ErrorCode = "2001"
	CodeUnsupportedMediaType ErrorCode = "2002"
	CodeEmptyContent         ErrorCode = "2003"

	// 资源错误 (3xxx)
	CodeArtifactNotFound   ErrorCode = "3001"
	CodeFolderNotFound     ErrorCode = "3002"
	CodeFolderNotDeletable ErrorCode = "3003"

	// 解析/提取错误 (4xxx)
	CodeImageDecodeFailed ErrorCode = "4001"

	// 持久化错误 (5xxx)
	CodeSnapshotLoadFailed ErrorCode = "5001"
	CodeSnapshotSaveFailed ErrorCode = "5002"
	CodeCacheError         ErrorCode = "5003"
)

// AppError 应用错误
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 返回底层错误
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail 添加详细信息
func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail
	return e
}

// WithError 添加底层错误
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Err:        err,
	}
}

// codeToHTTPStatus 错误码转 HTTP 状态码
func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeSuccess:
		return http.StatusOK
	case CodeInvalidParam, CodeEmptyContent:
		return http.StatusBadRequest
	case CodeFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case CodeUnsupportedMediaType:
		return http.StatusUnsupportedMediaType
	case CodeNotFound, CodeArtifactNotFound, CodeFolderNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeFolderNotDeletable:
		return http.StatusConflict
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	case CodeImageDecodeFailed:
		return http.StatusUnprocessableEntity
	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// 预定义错误
var (
	ErrInvalidParam       = New(CodeInvalidParam, "invalid parameter")
	ErrNotFound           = New(CodeNotFound, "resource not found")
	ErrConflict           = New(CodeConflict, "resource conflict")
	ErrTooManyRequests    = New(CodeTooManyRequests, "too many requests")
	ErrInternalError      = New(CodeInternalError, "internal server error")
	ErrServiceUnavailable = New(CodeServiceUnavailable, "service unavailable")

	ErrFileTooLarge         = New(CodeFileTooLarge, "file exceeds maximum upload size")
	ErrUnsupportedMediaType = New(CodeUnsupportedMediaType, "unsupported media type")
	ErrEmptyContent         = New(CodeEmptyContent, "content is empty")

	ErrArtifactNotFound   = New(CodeArtifactNotFound, "artifact not found")
	ErrFolderNotFound     = New(CodeFolderNotFound, "folder not found")
	ErrFolderNotDeletable = New(CodeFolderNotDeletable, "default folder cannot be deleted")

	ErrImageDecodeFailed   = New(CodeImageDecodeFailed, "image decode failed")
	ErrSnapshotLoadFailed  = New(CodeSnapshotLoadFailed, "snapshot load failed")
	ErrSnapshotSaveFailed  = New(CodeSnapshotSaveFailed, "snapshot save failed")
)

// IsAppError 检查是否为 AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// AsAppError 将错误转换为 AppError
func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Wrap(err, CodeUnknown, "unknown error")
}

package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"brand-asset-api/internal/application/asset"
	"brand-asset-api/internal/domain/entity"
	"brand-asset-api/internal/domain/repository"
	"brand-asset-api/internal/interfaces/http/dto"
	"brand-asset-api/pkg/logger"
)

// ArtifactHandler 素材处理器
type ArtifactHandler struct {
	service *asset.Service
}

// NewArtifactHandler 创建素材处理器
func NewArtifactHandler(service *asset.Service) *ArtifactHandler {
	return &ArtifactHandler{service: service}
}

// Upload 批量上传文件素材
// @Summary 批量上传素材
// @Description 多文件上传，逐个校验并返回每个文件的结果
// @Tags Artifacts
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} dto.Response[dto.UploadResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/artifacts/upload [post]
func (h *ArtifactHandler) Upload(c *gin.Context) {
	ctx := c.Request.Context()

	form, err := c.MultipartForm()
	if err != nil {
		dto.BadRequest(c, "invalid multipart form: "+err.Error())
		return
	}
	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		dto.BadRequest(c, "no files provided")
		return
	}

	files := make([]repository.FileInput, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			dto.BadRequest(c, "failed to open uploaded file: "+err.Error())
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			dto.BadRequest(c, "failed to read uploaded file: "+err.Error())
			return
		}
		files = append(files, repository.FileInput{
			Name:     fh.Filename,
			MIMEType: fh.Header.Get("Content-Type"),
			Size:     fh.Size,
			Data:     data,
		})
	}

	opts := asset.UploadOptions{
		Category: c.PostForm("category"),
		FolderID: c.PostForm("folder_id"),
		IsActive: c.PostForm("is_active") == "true",
	}

	results, err := h.service.UploadArtifacts(ctx, files, opts)
	if err != nil {
		logger.Error(ctx, "failed to persist uploaded artifacts", err)
		respondError(c, err)
		return
	}
	dto.Success(c, dto.ToUploadResponse(results))
}

// CreateText 创建文本素材
// @Summary 创建文本素材
// @Description 从纯文本或结构化文字载荷创建素材
// @Tags Artifacts
// @Accept json
// @Produce json
// @Param body body dto.CreateTextArtifactRequest true "文本素材内容"
// @Success 201 {object} dto.Response[dto.ArtifactResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/artifacts/text [post]
func (h *ArtifactHandler) CreateText(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateTextArtifactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	artifact, err := h.service.CreateTextArtifact(ctx, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Created(c, dto.ToArtifactResponse(artifact))
}

// Get 获取单个素材
// @Summary 获取素材
// @Tags Artifacts
// @Produce json
// @Param id path string true "素材 ID"
// @Success 200 {object} dto.Response[dto.ArtifactResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/artifacts/{id} [get]
func (h *ArtifactHandler) Get(c *gin.Context) {
	artifact, err := h.service.GetArtifact(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, dto.ToArtifactResponse(artifact))
}

// List 列出全部素材
// @Summary 列出素材
// @Tags Artifacts
// @Produce json
// @Success 200 {object} dto.Response[[]dto.ArtifactResponse]
// @Router /v1/artifacts [get]
func (h *ArtifactHandler) List(c *gin.Context) {
	artifacts := h.service.ListArtifacts(c.Request.Context())
	dto.Success(c, dto.ToArtifactResponses(artifacts))
}

// ListActive 列出激活素材
// @Summary 列出激活素材
// @Description 可按 usage_type 进一步筛选
// @Tags Artifacts
// @Produce json
// @Param usage_type query string false "exact 或 reference"
// @Success 200 {object} dto.Response[[]dto.ArtifactResponse]
// @Router /v1/artifacts/active [get]
func (h *ArtifactHandler) ListActive(c *gin.Context) {
	ctx := c.Request.Context()

	if ut := c.Query("usage_type"); ut != "" {
		if ut != string(entity.UsageTypeExact) && ut != string(entity.UsageTypeReference) {
			dto.BadRequest(c, "usage_type must be exact or reference")
			return
		}
		artifacts := h.service.GetActiveArtifactsByUsageType(ctx, entity.UsageType(ut))
		dto.Success(c, dto.ToArtifactResponses(artifacts))
		return
	}
	dto.Success(c, dto.ToArtifactResponses(h.service.GetActiveArtifacts(ctx)))
}

// Update 部分更新素材
// @Summary 更新素材
// @Tags Artifacts
// @Accept json
// @Produce json
// @Param id path string true "素材 ID"
// @Param body body dto.UpdateArtifactRequest true "更新内容"
// @Success 200 {object} dto.Response[dto.ArtifactResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/artifacts/{id} [patch]
func (h *ArtifactHandler) Update(c *gin.Context) {
	var req dto.UpdateArtifactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	artifact, err := h.service.UpdateArtifact(c.Request.Context(), c.Param("id"), req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, dto.ToArtifactResponse(artifact))
}

// Delete 删除素材
// @Summary 删除素材
// @Tags Artifacts
// @Param id path string true "素材 ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/artifacts/{id} [delete]
func (h *ArtifactHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteArtifact(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	dto.NoContent(c)
}

// TrackUsage 记录素材使用
// @Summary 记录使用
// @Description 未知 ID 返回 ok=false 而非 404
// @Tags Artifacts
// @Accept json
// @Produce json
// @Param id path string true "素材 ID"
// @Param body body dto.TrackUsageRequest true "使用上下文"
// @Success 200 {object} dto.Response[dto.OperationResponse]
// @Router /v1/artifacts/{id}/usage [post]
func (h *ArtifactHandler) TrackUsage(c *gin.Context) {
	var req dto.TrackUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	ok := h.service.TrackUsage(c.Request.Context(), c.Param("id"), req.Context)
	dto.Success(c, dto.OperationResponse{OK: ok})
}

// SetActive 设置激活状态
// @Summary 设置激活状态
// @Tags Artifacts
// @Accept json
// @Produce json
// @Param id path string true "素材 ID"
// @Param body body dto.SetActiveRequest true "激活状态"
// @Success 200 {object} dto.Response[dto.OperationResponse]
// @Router /v1/artifacts/{id}/active [put]
func (h *ArtifactHandler) SetActive(c *gin.Context) {
	var req dto.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	ok := h.service.SetArtifactActive(c.Request.Context(), c.Param("id"), req.IsActive)
	dto.Success(c, dto.OperationResponse{OK: ok})
}

// ToggleActive 翻转激活状态
// @Summary 翻转激活状态
// @Tags Artifacts
// @Produce json
// @Param id path string true "素材 ID"
// @Success 200 {object} dto.Response[dto.ToggleResponse]
// @Router /v1/artifacts/{id}/toggle [post]
func (h *ArtifactHandler) ToggleActive(c *gin.Context) {
	state, ok := h.service.ToggleArtifactActivation(c.Request.Context(), c.Param("id"))
	dto.Success(c, dto.ToggleResponse{OK: ok, IsActive: state})
}

// DeactivateAll 批量取消全部激活
// @Summary 全部取消激活
// @Tags Artifacts
// @Produce json
// @Success 204
// @Router /v1/artifacts/deactivate-all [post]
func (h *ArtifactHandler) DeactivateAll(c *gin.Context) {
	if err := h.service.DeactivateAllArtifacts(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	dto.NoContent(c)
}

// UpdateUsageType 变更使用方式
// @Summary 变更使用方式
// @Description 切到 reference 会清除文字载荷
// @Tags Artifacts
// @Accept json
// @Produce json
// @Param id path string true "素材 ID"
// @Param body body dto.UpdateUsageTypeRequest true "目标使用方式"
// @Success 200 {object} dto.Response[dto.OperationResponse]
// @Router /v1/artifacts/{id}/usage-type [put]
func (h *ArtifactHandler) UpdateUsageType(c *gin.Context) {
	var req dto.UpdateUsageTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	ok := h.service.UpdateArtifactUsageType(c.Request.Context(), c.Param("id"), entity.UsageType(req.UsageType))
	dto.Success(c, dto.OperationResponse{OK: ok})
}

// Move 迁移素材到目标文件夹
// @Summary 迁移素材
// @Tags Artifacts
// @Accept json
// @Produce json
// @Param id path string true "素材 ID"
// @Param body body dto.MoveArtifactRequest true "目标文件夹"
// @Success 200 {object} dto.Response[dto.OperationResponse]
// @Router /v1/artifacts/{id}/move [put]
func (h *ArtifactHandler) Move(c *gin.Context) {
	var req dto.MoveArtifactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	ok := h.service.MoveArtifactToFolder(c.Request.Context(), c.Param("id"), req.FolderID)
	dto.Success(c, dto.OperationResponse{OK: ok})
}

// Thumbnail 获取缩略图 data URL
// @Summary 获取缩略图
// @Description 从会话内字节缓存按需重建，重启后不可用
// @Tags Artifacts
// @Produce json
// @Param id path string true "素材 ID"
// @Success 200 {object} dto.Response[dto.ThumbnailResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/artifacts/{id}/thumbnail [get]
func (h *ArtifactHandler) Thumbnail(c *gin.Context) {
	url, err := h.service.Thumbnail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, dto.ThumbnailResponse{DataURL: url})
}

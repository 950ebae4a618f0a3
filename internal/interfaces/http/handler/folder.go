package handler

import (
	"github.com/gin-gonic/gin"

	"brand-asset-api/internal/application/asset"
	"brand-asset-api/internal/interfaces/http/dto"
)

// FolderHandler 文件夹处理器
type FolderHandler struct {
	service *asset.Service
}

// NewFolderHandler 创建文件夹处理器
func NewFolderHandler(service *asset.Service) *FolderHandler {
	return &FolderHandler{service: service}
}

// List 列出全部文件夹
// @Summary 列出文件夹
// @Tags Folders
// @Produce json
// @Success 200 {object} dto.Response[[]dto.FolderResponse]
// @Router /v1/folders [get]
func (h *FolderHandler) List(c *gin.Context) {
	folders := h.service.ListFolders(c.Request.Context())
	dto.Success(c, dto.ToFolderResponses(folders))
}

// Get 获取单个文件夹
// @Summary 获取文件夹
// @Tags Folders
// @Produce json
// @Param id path string true "文件夹 ID"
// @Success 200 {object} dto.Response[dto.FolderResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/folders/{id} [get]
func (h *FolderHandler) Get(c *gin.Context) {
	folder, err := h.service.GetFolder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, dto.ToFolderResponse(folder))
}

// Create 创建自定义文件夹
// @Summary 创建文件夹
// @Tags Folders
// @Accept json
// @Produce json
// @Param body body dto.CreateFolderRequest true "文件夹属性"
// @Success 201 {object} dto.Response[dto.FolderResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/folders [post]
func (h *FolderHandler) Create(c *gin.Context) {
	var req dto.CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	folder, err := h.service.CreateFolder(c.Request.Context(), req.Name, req.Description, req.Color)
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Created(c, dto.ToFolderResponse(folder))
}

// Update 更新文件夹
// @Summary 更新文件夹
// @Tags Folders
// @Accept json
// @Produce json
// @Param id path string true "文件夹 ID"
// @Param body body dto.UpdateFolderRequest true "更新内容"
// @Success 200 {object} dto.Response[dto.FolderResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/folders/{id} [patch]
func (h *FolderHandler) Update(c *gin.Context) {
	var req dto.UpdateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	folder, err := h.service.UpdateFolder(c.Request.Context(), c.Param("id"), req.Name, req.Description, req.Color)
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, dto.ToFolderResponse(folder))
}

// Delete 删除自定义文件夹
// @Summary 删除文件夹
// @Description 默认文件夹或未知 ID 返回 ok=false；成员迁入 references
// @Tags Folders
// @Produce json
// @Param id path string true "文件夹 ID"
// @Success 200 {object} dto.Response[dto.OperationResponse]
// @Router /v1/folders/{id} [delete]
func (h *FolderHandler) Delete(c *gin.Context) {
	ok := h.service.DeleteFolder(c.Request.Context(), c.Param("id"))
	dto.Success(c, dto.OperationResponse{OK: ok})
}

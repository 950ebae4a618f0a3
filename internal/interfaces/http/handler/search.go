package handler

import (
	"github.com/gin-gonic/gin"

	"brand-asset-api/internal/application/asset"
	"brand-asset-api/internal/interfaces/http/dto"
)

// SearchHandler 检索处理器
type SearchHandler struct {
	service *asset.Service
}

// NewSearchHandler 创建检索处理器
func NewSearchHandler(service *asset.Service) *SearchHandler {
	return &SearchHandler{service: service}
}

// Search 多条件素材检索
// @Summary 检索素材
// @Description 所有条件可选，逐项取与；total_count 为分页前命中总数
// @Tags Search
// @Accept json
// @Produce json
// @Param body body dto.SearchRequest true "检索条件"
// @Success 200 {object} dto.Response[dto.SearchResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/search [post]
func (h *SearchHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	result := h.service.Search(c.Request.Context(), req.ToFilters())
	dto.Success(c, dto.ToSearchResponse(result))
}

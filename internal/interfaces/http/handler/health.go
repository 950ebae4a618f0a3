package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"brand-asset-api/internal/infrastructure/persistence/postgres"
	"brand-asset-api/internal/infrastructure/persistence/redis"
)

// HealthHandler 健康检查处理器
// pg 和 redis 只在对应快照后端启用时注入，nil 表示该依赖未配置。
type HealthHandler struct {
	pg    *postgres.Client
	redis *redis.Client
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(pg *postgres.Client, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		pg:    pg,
		redis: redisClient,
	}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type readinessCheck struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
}

type readinessResponse struct {
	Status string                     `json:"status"`
	Checks map[string]*readinessCheck `json:"checks,omitempty"`
}

// Health 健康检查接口
// @Summary 健康检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Live 存活检查接口
// @Summary 存活检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "alive"})
}

// Ready 就绪检查接口
// @Summary 就绪检查
// @Description 检查已配置的快照后端依赖是否可用
// @Tags System
// @Produce json
// @Success 200 {object} readinessResponse
// @Failure 503 {object} readinessResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]*readinessCheck{}
	ready := true

	if h.pg != nil {
		checks["postgres"] = h.check(ctx, h.pg.HealthCheck)
		if checks["postgres"].Status != "ok" {
			ready = false
		}
	}
	if h.redis != nil {
		checks["redis"] = h.check(ctx, h.redis.HealthCheck)
		if checks["redis"].Status != "ok" {
			ready = false
		}
	}

	status := http.StatusOK
	resp := readinessResponse{Status: "ready", Checks: checks}
	if !ready {
		status = http.StatusServiceUnavailable
		resp.Status = "not ready"
	}
	c.JSON(status, resp)
}

func (h *HealthHandler) check(ctx context.Context, fn func(context.Context) error) *readinessCheck {
	start := time.Now()
	if err := fn(ctx); err != nil {
		return &readinessCheck{Status: "error", Error: err.Error(), LatencyMs: time.Since(start).Milliseconds()}
	}
	return &readinessCheck{Status: "ok", LatencyMs: time.Since(start).Milliseconds()}
}

// Package router 提供 HTTP 路由配置
package router

import (
	"brand-asset-api/internal/config"
	"brand-asset-api/internal/interfaces/http/handler"
	"brand-asset-api/internal/interfaces/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers 路由依赖的处理器集合
type Handlers struct {
	Artifact *handler.ArtifactHandler
	Folder   *handler.FolderHandler
	Search   *handler.SearchHandler
	Health   *handler.HealthHandler
}

// Router HTTP 路由器
type Router struct {
	engine      *gin.Engine
	cfg         *config.Config
	handlers    Handlers
	rateLimiter middleware.RateLimiter
}

// New 创建新的路由器
func New(cfg *config.Config, handlers Handlers, rateLimiter middleware.RateLimiter) *Router {
	// 设置 Gin 模式
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := &Router{
		engine:      gin.New(),
		cfg:         cfg,
		handlers:    handlers,
		rateLimiter: rateLimiter,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// Engine 返回 Gin Engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// setupMiddleware 配置中间件
func (r *Router) setupMiddleware() {
	// 基础中间件
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())

	// CORS 中间件
	r.engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: r.cfg.Security.CORS.AllowedOrigins,
		AllowedMethods: r.cfg.Security.CORS.AllowedMethods,
		AllowedHeaders: r.cfg.Security.CORS.AllowedHeaders,
	}))

	// 追踪中间件
	if r.cfg.Observability.Tracing.Enabled {
		r.engine.Use(middleware.Trace(r.cfg.App.Name))
		r.engine.Use(middleware.TraceContext())
	}

	// 指标中间件
	if r.cfg.Observability.Metrics.Enabled {
		r.engine.Use(middleware.Metrics())
	}

	// 限流中间件
	r.engine.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Enabled:           r.cfg.Security.RateLimit.Enabled,
		RequestsPerSecond: r.cfg.Security.RateLimit.RequestsPerSecond,
		Burst:             r.cfg.Security.RateLimit.Burst,
	}, r.rateLimiter))
}

// setupRoutes 配置路由
func (r *Router) setupRoutes() {
	// 系统端点
	r.engine.GET("/health", r.handlers.Health.Health)
	r.engine.GET("/ready", r.handlers.Health.Ready)
	r.engine.GET("/live", r.handlers.Health.Live)

	// Prometheus 指标端点
	if r.cfg.Observability.Metrics.Enabled {
		r.engine.GET(r.cfg.Observability.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// API v1 路由组
	v1 := r.engine.Group("/v1")
	{
		artifacts := v1.Group("/artifacts")
		{
			artifacts.GET("", r.handlers.Artifact.List)
			artifacts.POST("/upload", r.handlers.Artifact.Upload)
			artifacts.POST("/text", r.handlers.Artifact.CreateText)
			artifacts.GET("/active", r.handlers.Artifact.ListActive)
			artifacts.POST("/deactivate-all", r.handlers.Artifact.DeactivateAll)
			artifacts.GET("/:id", r.handlers.Artifact.Get)
			artifacts.PATCH("/:id", r.handlers.Artifact.Update)
			artifacts.DELETE("/:id", r.handlers.Artifact.Delete)
			artifacts.POST("/:id/usage", r.handlers.Artifact.TrackUsage)
			artifacts.PUT("/:id/active", r.handlers.Artifact.SetActive)
			artifacts.POST("/:id/toggle", r.handlers.Artifact.ToggleActive)
			artifacts.PUT("/:id/usage-type", r.handlers.Artifact.UpdateUsageType)
			artifacts.PUT("/:id/move", r.handlers.Artifact.Move)
			artifacts.GET("/:id/thumbnail", r.handlers.Artifact.Thumbnail)
		}

		folders := v1.Group("/folders")
		{
			folders.GET("", r.handlers.Folder.List)
			folders.POST("", r.handlers.Folder.Create)
			folders.GET("/:id", r.handlers.Folder.Get)
			folders.PATCH("/:id", r.handlers.Folder.Update)
			folders.DELETE("/:id", r.handlers.Folder.Delete)
		}

		v1.POST("/search", r.handlers.Search.Search)
	}
}

// Package wire 提供依赖注入配置
package wire

import (
	"context"
	"fmt"

	"brand-asset-api/internal/application/asset"
	"brand-asset-api/internal/config"
	"brand-asset-api/internal/domain/repository"
	"brand-asset-api/internal/infrastructure/filesource"
	"brand-asset-api/internal/infrastructure/persistence/file"
	"brand-asset-api/internal/infrastructure/persistence/postgres"
	"brand-asset-api/internal/infrastructure/persistence/redis"
	"brand-asset-api/internal/interfaces/http/handler"
	"brand-asset-api/internal/interfaces/http/middleware"
	"brand-asset-api/internal/interfaces/http/router"
	"brand-asset-api/pkg/logger"
)

// Backends 后端连接容器
// 只建立配置实际需要的连接：文件后端且未启用限流时两者皆 nil。
type Backends struct {
	Pg    *postgres.Client
	Redis *redis.Client
}

// ProvideBackends 按快照后端与限流配置建立外部连接
func ProvideBackends(ctx context.Context, cfg *config.Config) (*Backends, func(), error) {
	b := &Backends{}
	cleanup := func() {
		if b.Redis != nil {
			if err := b.Redis.Close(); err != nil {
				logger.Error(ctx, "failed to close redis client", err)
			}
		}
		if b.Pg != nil {
			if err := b.Pg.Close(); err != nil {
				logger.Error(ctx, "failed to close postgres client", err)
			}
		}
	}

	if cfg.Snapshot.Backend == "postgres" {
		pg, err := postgres.NewClient(&cfg.Database.Postgres)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect postgres: %w", err)
		}
		b.Pg = pg
	}

	if cfg.Snapshot.Backend == "redis" || cfg.Security.RateLimit.Enabled {
		rdb, err := redis.NewClient(&cfg.Cache.Redis)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to connect redis: %w", err)
		}
		b.Redis = rdb
	}

	return b, cleanup, nil
}

// ProvideSnapshotStore 按配置选择快照后端
func ProvideSnapshotStore(cfg *config.Config, b *Backends) (repository.SnapshotStore, error) {
	switch cfg.Snapshot.Backend {
	case "", "file":
		return file.NewSnapshotStore(cfg.Snapshot.File.Path), nil
	case "redis":
		return redis.NewSnapshotStore(b.Redis, cfg.Snapshot.RedisKey), nil
	case "postgres":
		return postgres.NewSnapshotStore(b.Pg), nil
	default:
		return nil, fmt.Errorf("unknown snapshot backend: %s", cfg.Snapshot.Backend)
	}
}

// ProvideFileSource 文件字节源
func ProvideFileSource() repository.FileSource {
	return filesource.New()
}

// ProvideAssetService 素材库服务
func ProvideAssetService(ctx context.Context, store repository.SnapshotStore, source repository.FileSource, cfg *config.Config) *asset.Service {
	return asset.NewService(ctx, store, source, cfg.Artifacts)
}

// ProvideRateLimiter Redis 限流器，未连接 Redis 时为 nil（中间件降级为直通）
func ProvideRateLimiter(b *Backends) middleware.RateLimiter {
	if b.Redis == nil {
		return nil
	}
	return redis.NewRateLimiter(b.Redis)
}

// ProvideHandlers 处理器集合
func ProvideHandlers(service *asset.Service, b *Backends) router.Handlers {
	return router.Handlers{
		Artifact: handler.NewArtifactHandler(service),
		Folder:   handler.NewFolderHandler(service),
		Search:   handler.NewSearchHandler(service),
		Health:   handler.NewHealthHandler(b.Pg, b.Redis),
	}
}

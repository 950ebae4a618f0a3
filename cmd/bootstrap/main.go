// Package main 初始化快照后端：建表并播种默认文件夹
package main

import (
	"context"
	"fmt"
	"os"

	"brand-asset-api/internal/application/asset"
	"brand-asset-api/internal/config"
	"brand-asset-api/internal/domain/repository"
	"brand-asset-api/internal/infrastructure/filesource"
	"brand-asset-api/internal/infrastructure/persistence/file"
	"brand-asset-api/internal/infrastructure/persistence/postgres"
	"brand-asset-api/internal/infrastructure/persistence/redis"
	"brand-asset-api/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(
		cfg.Observability.Logging.Level,
		cfg.Observability.Logging.Format,
	)

	ctx := context.Background()
	log := logger.FromContext(ctx)
	log.Info("bootstrapping snapshot backend", "backend", cfg.Snapshot.Backend)

	var store repository.SnapshotStore

	switch cfg.Snapshot.Backend {
	case "", "file":
		store = file.NewSnapshotStore(cfg.Snapshot.File.Path)

	case "redis":
		client, err := redis.NewClient(&cfg.Cache.Redis)
		if err != nil {
			logger.Fatal(ctx, "failed to connect redis", err)
		}
		defer client.Close()
		store = redis.NewSnapshotStore(client, cfg.Snapshot.RedisKey)

	case "postgres":
		client, err := postgres.NewClient(&cfg.Database.Postgres)
		if err != nil {
			logger.Fatal(ctx, "failed to connect postgres", err)
		}
		defer client.Close()

		pgStore := postgres.NewSnapshotStore(client)
		if err := pgStore.Migrate(ctx); err != nil {
			logger.Fatal(ctx, "failed to migrate tables", err)
		}
		log.Info("tables migrated")
		store = pgStore

	default:
		logger.Fatal(ctx, "unknown snapshot backend", fmt.Errorf("backend: %s", cfg.Snapshot.Backend))
	}

	// 构造服务会加载快照、播种默认文件夹并在需要时写回
	svc := asset.NewService(ctx, store, filesource.New(), cfg.Artifacts)

	folders := svc.ListFolders(ctx)
	for _, f := range folders {
		log.Info("folder ready", "id", f.ID, "name", f.Name, "type", string(f.Type))
	}
	log.Info("bootstrap complete", "folders", len(folders))
}

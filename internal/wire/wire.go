//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"brand-asset-api/internal/config"
	"brand-asset-api/internal/interfaces/http/router"
)

// AppSet 应用提供者集合
var AppSet = wire.NewSet(
	ProvideBackends,
	ProvideSnapshotStore,
	ProvideFileSource,
	ProvideAssetService,
	ProvideRateLimiter,
	ProvideHandlers,
	router.New,
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(AppSet)
	return nil, nil, nil
}

package bootstrap

import (
	"context"
	"log/slog"

	"experience-booking/internal/infra/cache"
	"experience-booking/internal/pkg/config"
	"experience-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

// CacheModule decorates at the root scope so every consumer of the Catalog Store sees the cache.
var CacheModule = fx.Options(
	fx.Decorate(NewCachedCatalog),
)

// NewCachedCatalog leaves the store undecorated when REDIS_ADDR is unset or Redis is unreachable at start-up.
func NewCachedCatalog(lc fx.Lifecycle, cfg config.Config, store shared.CatalogStore, logger *slog.Logger) shared.CatalogStore {
	if cfg.Redis.Addr == "" {
		return store
	}

	client, err := cache.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		logger.Warn("catalog cache disabled", slog.String("error", err.Error()))
		return store
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	logger.Info("catalog cache enabled", slog.String("addr", cfg.Redis.Addr), slog.Duration("ttl", cfg.Redis.CacheTTL))
	return cache.NewCatalogCache(store, client, cfg.Redis.CacheTTL, cfg.Redis.Prefix, logger)
}

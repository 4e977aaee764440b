package cache

import (
	"context"
	"log/slog"
	"time"

	"experience-booking/internal/pkg/config"
	"experience-booking/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.Wrap(err, "failed to ping redis at "+cfg.Addr)
	}
	return client, nil
}

// InvalidateCatalog clears the catalog cache after an out-of-process catalog rewrite.
// It is a no-op when the cache is not configured.
func InvalidateCatalog(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) error {
	if cfg.Addr == "" {
		return nil
	}

	client, err := NewRedisClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	return NewCatalogCache(nil, client, cfg.CacheTTL, cfg.Prefix, logger).Invalidate(ctx)
}

package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"experience-booking/cmd/bootstrap/components"
	"experience-booking/internal/handler/middleware"
	"experience-booking/internal/infra/cache"
	"experience-booking/internal/infra/db"
	"experience-booking/internal/infra/memstore"
	"experience-booking/internal/infra/readstore"
	"experience-booking/internal/pkg/clock"
	"experience-booking/internal/pkg/config"
	"experience-booking/migrations"
)

// Seeds the Postgres catalog with the sample experiences and clears the Redis catalog cache.
// Open slots are stored without a capacity. Existing bookings are never touched.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

	if err := run(cfg, logger); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, cleanup, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := migrations.Apply(ctx, pool); err != nil {
		return err
	}

	store := readstore.NewCatalogReadStore(pool, components.NewCapacityPolicy(cfg), logger)
	records := memstore.ScriptExperiences(clock.NewRealClock())
	if err := memstore.Seed(ctx, store, records); err != nil {
		return err
	}

	logger.Info("catalog seeded", slog.Int("experiences", len(records)))

	if err := cache.InvalidateCatalog(ctx, cfg.Redis, logger); err != nil {
		logger.Warn("catalog cache not cleared; entries expire after CACHE_TTL",
			slog.String("error", err.Error()),
			slog.Duration("ttl", cfg.Redis.CacheTTL),
		)
	}
	return nil
}

package components

import (
	"context"
	"log/slog"
	"strings"

	"experience-booking/internal/domain/experience"
	"experience-booking/internal/infra/memstore"
	"experience-booking/internal/infra/readstore"
	"experience-booking/internal/infra/repository"
	"experience-booking/internal/pkg/clock"
	"experience-booking/internal/pkg/config"
	"experience-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewCapacityPolicy,
		NewStores,
	),
)

// Stores is the storage implementation selected once at start-up.
type Stores struct {
	fx.Out

	Catalog shared.CatalogStore
	Writer  shared.CatalogWriter
	Ledger  shared.BookingLedger
}

func NewCapacityPolicy(cfg config.Config) experience.CapacityPolicy {
	if strings.EqualFold(cfg.Catalog.CapacityPolicy, config.CapacityPolicyFixed) {
		return experience.NewFixedCapacity(cfg.Catalog.DefaultCapacity)
	}
	return experience.NewHashedCapacity(cfg.Catalog.CapacityMin, cfg.Catalog.CapacityMax)
}

func NewStores(
	cfg config.Config,
	pool *pgxpool.Pool,
	policy experience.CapacityPolicy,
	clk clock.Clock,
	logger *slog.Logger,
) (Stores, error) {
	if strings.EqualFold(cfg.Store.Driver, config.StoreDriverPostgres) {
		catalog := readstore.NewCatalogReadStore(pool, policy, logger)
		logger.Info("storage driver selected", slog.String("driver", config.StoreDriverPostgres))
		return Stores{
			Catalog: catalog,
			Writer:  catalog,
			Ledger:  repository.NewBookingRepository(pool, logger),
		}, nil
	}

	catalog := memstore.NewCatalog(policy, logger)
	if err := memstore.Seed(context.Background(), catalog, memstore.SampleExperiences(clk)); err != nil {
		return Stores{}, err
	}
	logger.Info("storage driver selected", slog.String("driver", config.StoreDriverMemory))
	return Stores{
		Catalog: catalog,
		Writer:  catalog,
		Ledger:  memstore.NewLedger(logger),
	}, nil
}

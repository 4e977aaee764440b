//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"experience-booking/internal/domain/experience"
	"experience-booking/internal/infra/memstore"
	"experience-booking/internal/infra/readstore"
	"experience-booking/internal/pkg/clock"
	"experience-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// SeedCatalog writes the sample catalog dated from clk.
func SeedCatalog(pool *pgxpool.Pool, policy experience.CapacityPolicy, clk clock.Clock) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store := readstore.NewCatalogReadStore(pool, policy, slog.New(slog.DiscardHandler))
	return memstore.Seed(ctx, store, memstore.SampleExperiences(clk))
}

func UpsertExperience(t *testing.T, pool *pgxpool.Pool, policy experience.CapacityPolicy, rec shared.ExperienceRecord) {
	t.Helper()

	store := readstore.NewCatalogReadStore(pool, policy, slog.New(slog.DiscardHandler))
	require.NoError(t, store.UpsertExperience(context.Background(), rec))
}

func CountBookings(t *testing.T, db DBLike, experienceID, date, slotTime string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM bookings WHERE experience_id = $1 AND date = $2 AND time = $3",
		experienceID, date, slotTime).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables except the migration ledger
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}

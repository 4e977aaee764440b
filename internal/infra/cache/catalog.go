package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"experience-booking/internal/domain/experience"
	"experience-booking/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
)

// CatalogCache is a read-through cache in front of a Catalog Store. Entries hold resolved
// capacities, so a hit never consults the capacity policy. Redis failures fall through to
// the store.
type CatalogCache struct {
	next   shared.CatalogStore
	client redis.Cmdable
	ttl    time.Duration
	prefix string
	logger *slog.Logger
}

func NewCatalogCache(next shared.CatalogStore, client redis.Cmdable, ttl time.Duration, prefix string, logger *slog.Logger) *CatalogCache {
	return &CatalogCache{
		next:   next,
		client: client,
		ttl:    ttl,
		prefix: prefix,
		logger: logger,
	}
}

func (c *CatalogCache) ListExperiences(ctx context.Context) ([]*experience.Experience, error) {
	key := c.prefix + ":experiences"

	var cached []shared.ExperienceRecord
	if c.get(ctx, key, &cached) {
		out := make([]*experience.Experience, 0, len(cached))
		for _, rec := range cached {
			exp, err := rec.ToDomain(explicitOnly)
			if err != nil {
				c.logger.Warn("discarding undecodable cache entry", slog.String("key", key), slog.String("error", err.Error()))
				return c.listAndStore(ctx, key)
			}
			out = append(out, exp)
		}
		return out, nil
	}
	return c.listAndStore(ctx, key)
}

func (c *CatalogCache) listAndStore(ctx context.Context, key string) ([]*experience.Experience, error) {
	exps, err := c.next.ListExperiences(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]shared.ExperienceRecord, 0, len(exps))
	for _, e := range exps {
		records = append(records, shared.NewExperienceRecord(e))
	}
	c.set(ctx, key, records)
	return exps, nil
}

func (c *CatalogCache) GetExperience(ctx context.Context, id string) (*experience.Experience, error) {
	key := c.prefix + ":experience:" + id

	var cached shared.ExperienceRecord
	if c.get(ctx, key, &cached) {
		exp, err := cached.ToDomain(explicitOnly)
		if err == nil {
			return exp, nil
		}
		c.logger.Warn("discarding undecodable cache entry", slog.String("key", key), slog.String("error", err.Error()))
	}

	exp, err := c.next.GetExperience(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, shared.NewExperienceRecord(exp))
	return exp, nil
}

// Invalidate drops every cached catalog entry under the prefix.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.prefix+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *CatalogCache) get(ctx context.Context, key string, dst any) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("catalog cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.logger.Warn("catalog cache entry corrupt", slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	return true
}

func (c *CatalogCache) set(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("catalog cache encode failed", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

// explicitOnly backs cached records, which always carry explicit capacities.
var explicitOnly = experience.NewFixedCapacity(0)

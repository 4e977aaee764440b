package memstore

import (
	"context"
	"log/slog"
	"sync"

	"experience-booking/internal/domain/experience"
	"experience-booking/internal/infra"
	"experience-booking/internal/usecase/shared"

	"github.com/jinzhu/copier"
)

// Catalog keeps experience records in insertion order. Capacities are resolved on every
// read, so legacy slots stay legacy in storage.
type Catalog struct {
	mu      sync.RWMutex
	order   []string
	records map[string]shared.ExperienceRecord
	policy  experience.CapacityPolicy
	logger  *slog.Logger
}

func NewCatalog(policy experience.CapacityPolicy, logger *slog.Logger) *Catalog {
	return &Catalog{
		records: make(map[string]shared.ExperienceRecord),
		policy:  policy,
		logger:  logger,
	}
}

func (c *Catalog) ListExperiences(_ context.Context) ([]*experience.Experience, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*experience.Experience, 0, len(c.order))
	for _, id := range c.order {
		exp, err := c.records[id].ToDomain(c.policy)
		if err != nil {
			return nil, infra.WrapRepoErr(c.logger, infra.KindDBFailure, "failed to decode experience", err)
		}
		out = append(out, exp)
	}
	return out, nil
}

func (c *Catalog) GetExperience(_ context.Context, id string) (*experience.Experience, error) {
	c.mu.RLock()
	rec, ok := c.records[id]
	c.mu.RUnlock()

	if !ok {
		return nil, infra.WrapRepoErr(c.logger, infra.KindNotFound, "experience not found", nil)
	}
	exp, err := rec.ToDomain(c.policy)
	if err != nil {
		return nil, infra.WrapRepoErr(c.logger, infra.KindDBFailure, "failed to decode experience", err)
	}
	return exp, nil
}

// UpsertExperience rejects records that would not decode and keeps the original position
// of a replaced experience.
func (c *Catalog) UpsertExperience(_ context.Context, rec shared.ExperienceRecord) error {
	if _, err := rec.ToDomain(c.policy); err != nil {
		return err
	}

	var stored shared.ExperienceRecord
	if err := copier.CopyWithOption(&stored, &rec, copier.Option{DeepCopy: true}); err != nil {
		return infra.WrapRepoErr(c.logger, infra.KindDBFailure, "failed to copy experience", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.records[stored.ID]; !exists {
		c.order = append(c.order, stored.ID)
	}
	c.records[stored.ID] = stored
	return nil
}

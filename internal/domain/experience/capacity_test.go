//go:build unit

package experience_test

import (
	"fmt"
	"testing"

	"experience-booking/internal/domain/experience"

	"github.com/stretchr/testify/assert"
)

func TestHashedCapacity(t *testing.T) {
	policy := experience.NewHashedCapacity(1, 10)

	t.Run("stays within bounds", func(t *testing.T) {
		for i := range 200 {
			key := experience.NewSlotKey(fmt.Sprintf("exp-%d", i), "2025-10-22", "07:00 am")
			c := policy.DefaultCapacity(key)
			assert.GreaterOrEqual(t, c, 1)
			assert.LessOrEqual(t, c, 10)
		}
	})

	t.Run("deterministic per key", func(t *testing.T) {
		key := experience.NewSlotKey("exp-kayak", "2025-10-22", "09:00 am")
		first := policy.DefaultCapacity(key)
		for range 10 {
			assert.Equal(t, first, policy.DefaultCapacity(key))
		}
	})

	t.Run("degenerate range", func(t *testing.T) {
		p := experience.NewHashedCapacity(3, 1)
		assert.Equal(t, 3, p.DefaultCapacity(experience.NewSlotKey("a", "b", "c")))
	})

	t.Run("inverted range built without the constructor", func(t *testing.T) {
		key := experience.NewSlotKey("exp-kayak", "2025-10-22", "07:00 am")
		for _, p := range []*experience.HashedCapacity{
			{Min: 5, Max: 3},
			{Min: 5, Max: 4},
			{Min: 5, Max: 5},
		} {
			assert.NotPanics(t, func() {
				assert.Equal(t, 5, p.DefaultCapacity(key))
			})
		}
	})

	t.Run("negative minimum resolves to sold out", func(t *testing.T) {
		key := experience.NewSlotKey("exp-kayak", "2025-10-22", "07:00 am")
		p := &experience.HashedCapacity{Min: -2, Max: -4}
		assert.Equal(t, 0, experience.ResolveCapacity(p, key, nil))
	})
}

func TestResolveCapacity(t *testing.T) {
	key := experience.NewSlotKey("exp-kayak", "2025-10-22", "07:00 am")
	fixed := experience.NewFixedCapacity(5)
	stored := func(v int) *int { return &v }

	tests := []struct {
		name   string
		stored *int
		want   int
	}{
		{name: "legacy record uses policy", stored: nil, want: 5},
		{name: "stored value wins", stored: stored(2), want: 2},
		{name: "stored zero means sold out", stored: stored(0), want: 0},
		{name: "negative clamps to zero", stored: stored(-3), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, experience.ResolveCapacity(fixed, key, tt.stored))
		})
	}
}

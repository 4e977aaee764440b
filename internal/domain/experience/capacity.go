package experience

import (
	"github.com/cespare/xxhash/v2"
)

// CapacityPolicy supplies the capacity of slot records stored without one.
// Implementations must be pure functions of the slot key so reads stay deterministic.
type CapacityPolicy interface {
	DefaultCapacity(key SlotKey) int
}

type FixedCapacity struct {
	Capacity int
}

func NewFixedCapacity(capacity int) *FixedCapacity {
	if capacity < 0 {
		capacity = 0
	}
	return &FixedCapacity{Capacity: capacity}
}

func (p *FixedCapacity) DefaultCapacity(_ SlotKey) int {
	return p.Capacity
}

// HashedCapacity spreads legacy slots over [Min, Max] by hashing the slot key.
type HashedCapacity struct {
	Min int
	Max int
}

func NewHashedCapacity(minCapacity, maxCapacity int) *HashedCapacity {
	if minCapacity < 0 {
		minCapacity = 0
	}
	if maxCapacity < minCapacity {
		maxCapacity = minCapacity
	}
	return &HashedCapacity{Min: minCapacity, Max: maxCapacity}
}

// DefaultCapacity treats an inverted range as the single value Min.
func (p *HashedCapacity) DefaultCapacity(key SlotKey) int {
	if p.Max <= p.Min {
		return p.Min
	}
	span := uint64(p.Max - p.Min + 1)
	// #nosec G115 -- span is bounded by Max-Min+1, the remainder always fits in int
	return p.Min + int(xxhash.Sum64String(key.String())%span)
}

// ResolveCapacity turns a stored capacity (nil for legacy records) into a valid one.
// Negative stored values clamp to zero.
func ResolveCapacity(policy CapacityPolicy, key SlotKey, stored *int) int {
	if stored == nil {
		c := policy.DefaultCapacity(key)
		if c < 0 {
			return 0
		}
		return c
	}
	if *stored < 0 {
		return 0
	}
	return *stored
}

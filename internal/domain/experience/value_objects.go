package experience

import (
	"errors"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var (
	ErrEmptyDate         = errors.New("date cannot be empty")
	ErrInvalidDate       = errors.New("date must be an ISO calendar date (YYYY-MM-DD)")
	ErrEmptyTime         = errors.New("slot time cannot be empty")
	ErrNegativeCapacity  = errors.New("capacity cannot be negative")
	ErrDuplicateSlotTime = errors.New("duplicate slot time in day")
)

// SlotKey uniquely identifies a slot across the catalog.
type SlotKey struct {
	ExperienceID string
	Date         string
	Time         string
}

func NewSlotKey(experienceID, date, slotTime string) SlotKey {
	return SlotKey{
		ExperienceID: strings.TrimSpace(experienceID),
		Date:         strings.TrimSpace(date),
		Time:         strings.TrimSpace(slotTime),
	}
}

func (k SlotKey) IsComplete() bool {
	return k.ExperienceID != "" && k.Date != "" && k.Time != ""
}

func (k SlotKey) String() string {
	return k.ExperienceID + "|" + k.Date + "|" + k.Time
}

// Slot's sold-out state is derived from its remaining capacity and never stored.
type Slot struct {
	time              string
	capacityRemaining int
}

func NewSlot(slotTime string, capacityRemaining int) (Slot, error) {
	slotTime = strings.TrimSpace(slotTime)
	if slotTime == "" {
		return Slot{}, ErrEmptyTime
	}
	if capacityRemaining < 0 {
		return Slot{}, ErrNegativeCapacity
	}
	return Slot{time: slotTime, capacityRemaining: capacityRemaining}, nil
}

func (s Slot) Time() string           { return s.time }
func (s Slot) CapacityRemaining() int { return s.capacityRemaining }
func (s Slot) SoldOut() bool          { return s.capacityRemaining == 0 }

// Day keeps slots in time-of-day order as given.
type Day struct {
	date  string
	slots []Slot
}

func NewDay(date string, slots []Slot) (Day, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return Day{}, ErrEmptyDate
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return Day{}, ErrInvalidDate
	}

	seen := make(map[string]struct{}, len(slots))
	for _, s := range slots {
		if _, dup := seen[s.time]; dup {
			return Day{}, ErrDuplicateSlotTime
		}
		seen[s.time] = struct{}{}
	}

	out := make([]Slot, len(slots))
	copy(out, slots)
	return Day{date: date, slots: out}, nil
}

func (d Day) Date() string { return d.date }

func (d Day) Slots() []Slot {
	out := make([]Slot, len(d.slots))
	copy(out, d.slots)
	return out
}

func (d Day) Slot(slotTime string) (Slot, bool) {
	for _, s := range d.slots {
		if s.time == slotTime {
			return s, true
		}
	}
	return Slot{}, false
}

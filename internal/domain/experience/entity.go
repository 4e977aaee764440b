package experience

import (
	"errors"
	"strings"
)

var (
	ErrEmptyExperienceID  = errors.New("experience id cannot be empty")
	ErrEmptyTitle         = errors.New("experience title cannot be empty")
	ErrNegativeBasePrice  = errors.New("base price cannot be negative")
	ErrDuplicateDate      = errors.New("duplicate day in experience")
	ErrSlotNotFound       = errors.New("slot not found")
	ErrExperienceNotFound = errors.New("experience not found")
)

type Params struct {
	ID               string
	Title            string
	City             string
	BasePrice        int64
	ImageURL         string
	ShortDescription string
	Description      string
	Days             []Day
}

// Experience owns its days in insertion order; insertion order is chronological.
type Experience struct {
	id               string
	title            string
	city             string
	basePrice        int64
	imageURL         string
	shortDescription string
	description      string
	days             []Day
}

// Summary is the list view of an experience, without slot detail.
type Summary struct {
	ID               string
	Title            string
	City             string
	BasePrice        int64
	ImageURL         string
	ShortDescription string
}

func NewExperience(p Params) (*Experience, error) {
	id := strings.TrimSpace(p.ID)
	if id == "" {
		return nil, ErrEmptyExperienceID
	}
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if p.BasePrice < 0 {
		return nil, ErrNegativeBasePrice
	}

	seen := make(map[string]struct{}, len(p.Days))
	for _, d := range p.Days {
		if _, dup := seen[d.Date()]; dup {
			return nil, ErrDuplicateDate
		}
		seen[d.Date()] = struct{}{}
	}

	days := make([]Day, len(p.Days))
	copy(days, p.Days)

	return &Experience{
		id:               id,
		title:            title,
		city:             strings.TrimSpace(p.City),
		basePrice:        p.BasePrice,
		imageURL:         p.ImageURL,
		shortDescription: p.ShortDescription,
		description:      p.Description,
		days:             days,
	}, nil
}

func (e *Experience) Summary() Summary {
	return Summary{
		ID:               e.id,
		Title:            e.title,
		City:             e.city,
		BasePrice:        e.basePrice,
		ImageURL:         e.imageURL,
		ShortDescription: e.shortDescription,
	}
}

// FindSlot resolves (date, time) to a slot of this experience.
func (e *Experience) FindSlot(date, time string) (Slot, error) {
	for _, d := range e.days {
		if d.Date() != date {
			continue
		}
		if s, ok := d.Slot(time); ok {
			return s, nil
		}
		return Slot{}, ErrSlotNotFound
	}
	return Slot{}, ErrSlotNotFound
}

func (e *Experience) SlotCount() int {
	n := 0
	for _, d := range e.days {
		n += len(d.slots)
	}
	return n
}

func (e *Experience) ID() string               { return e.id }
func (e *Experience) Title() string            { return e.title }
func (e *Experience) City() string             { return e.city }
func (e *Experience) BasePrice() int64         { return e.basePrice }
func (e *Experience) ImageURL() string         { return e.imageURL }
func (e *Experience) ShortDescription() string { return e.shortDescription }
func (e *Experience) Description() string      { return e.description }

func (e *Experience) Days() []Day {
	out := make([]Day, len(e.days))
	copy(out, e.days)
	return out
}

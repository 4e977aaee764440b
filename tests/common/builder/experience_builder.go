//go:build unit || e2e

package builder

import (
	"experience-booking/internal/domain/experience"
)

type SlotSpec struct {
	Time     string
	Capacity int
}

type DaySpec struct {
	Date  string
	Slots []SlotSpec
}

type ExperienceBuilder struct {
	ID               string
	Title            string
	City             string
	BasePrice        int64
	ImageURL         string
	ShortDescription string
	Description      string
	Days             []DaySpec
}

func NewExperienceBuilder() *ExperienceBuilder {
	return &ExperienceBuilder{
		ID:               "exp-kayak",
		Title:            "Kayaking",
		City:             "Udupi",
		BasePrice:        999,
		ImageURL:         "https://images.example.com/kayak.jpg",
		ShortDescription: "Curated small-group experience.",
		Description:      "Guided kayaking with certified instructors.",
		Days: []DaySpec{
			{
				Date: "2025-10-22",
				Slots: []SlotSpec{
					{Time: "07:00 am", Capacity: 4},
					{Time: "09:00 am", Capacity: 2},
					{Time: "11:00 am", Capacity: 0},
				},
			},
			{
				Date: "2025-10-23",
				Slots: []SlotSpec{
					{Time: "07:00 am", Capacity: 5},
				},
			},
		},
	}
}

func (b *ExperienceBuilder) With(mutate func(*ExperienceBuilder)) *ExperienceBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *ExperienceBuilder) BuildDomain() (*experience.Experience, error) {
	days := make([]experience.Day, 0, len(b.Days))
	for _, ds := range b.Days {
		slots := make([]experience.Slot, 0, len(ds.Slots))
		for _, ss := range ds.Slots {
			s, err := experience.NewSlot(ss.Time, ss.Capacity)
			if err != nil {
				return nil, err
			}
			slots = append(slots, s)
		}
		d, err := experience.NewDay(ds.Date, slots)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return experience.NewExperience(experience.Params{
		ID:               b.ID,
		Title:            b.Title,
		City:             b.City,
		BasePrice:        b.BasePrice,
		ImageURL:         b.ImageURL,
		ShortDescription: b.ShortDescription,
		Description:      b.Description,
		Days:             days,
	})
}

// MustBuildDomain panics on invalid builder state; only for fixtures known to be valid.
func (b *ExperienceBuilder) MustBuildDomain() *experience.Experience {
	e, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return e
}

// Fluent builder methods
func (b *ExperienceBuilder) WithID(id string) *ExperienceBuilder {
	b.ID = id
	return b
}

func (b *ExperienceBuilder) WithTitle(title string) *ExperienceBuilder {
	b.Title = title
	return b
}

func (b *ExperienceBuilder) WithCity(city string) *ExperienceBuilder {
	b.City = city
	return b
}

func (b *ExperienceBuilder) WithBasePrice(price int64) *ExperienceBuilder {
	b.BasePrice = price
	return b
}

func (b *ExperienceBuilder) WithDays(days ...DaySpec) *ExperienceBuilder {
	b.Days = days
	return b
}

func (b *ExperienceBuilder) WithoutDays() *ExperienceBuilder {
	b.Days = nil
	return b
}

func NewHashedPolicy() experience.CapacityPolicy {
	return experience.NewHashedCapacity(1, 10)
}

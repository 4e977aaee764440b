package memstore

import (
	"context"

	"experience-booking/internal/pkg/clock"
	"experience-booking/internal/pkg/errs"
	"experience-booking/internal/usecase/shared"
)

const seedDays = 4

type sampleExperience struct {
	id               string
	title            string
	city             string
	price            int64
	imageURL         string
	shortDescription string
	description      string
	times            []string
	// soldOut reports whether the slot at index i on day d starts sold out
	soldOut func(d, i int) bool
}

var (
	kayaking = sampleExperience{
		id:               "1",
		title:            "Kayaking",
		city:             "Udupi",
		price:            999,
		imageURL:         "https://images.unsplash.com/photo-1443980995706-8d107e98e707?q=80&w=1400&auto=format&fit=crop",
		shortDescription: "Curated small-group experience. Certified guide.",
		description:      "Curated small-group experience. Certified guide. Safety first with gear included. Helmet and life jackets along with an expert will accompany in kayaking.",
	}
	nandiHills = sampleExperience{
		id:               "2",
		title:            "Nandi Hills Sunrise",
		city:             "Bangalore",
		price:            899,
		imageURL:         "https://images.unsplash.com/photo-1501785888041-af3ef285b470?q=80&w=1400&auto=format&fit=crop",
		shortDescription: "Certified guide. Safety first with gear included.",
		description:      "Scenic routes, trained guides, and safety briefing. Minimum age 10.",
	}
	coffeeTrail = sampleExperience{
		id:               "3",
		title:            "Coffee Trail",
		city:             "Coorg",
		price:            1299,
		imageURL:         "https://images.unsplash.com/photo-1465101162946-4377e57745c3?q=80&w=1400&auto=format&fit=crop",
		shortDescription: "Curated small-group experience. Certified guide.",
		description:      "Visit lush estates and taste fresh brews among the hills.",
	}
)

var defaultTimes = []string{"07:00 am", "09:00 am", "11:00 am", "01:00 pm"}

// SampleExperiences is the in-memory catalog: every experience shares one timetable.
// Open slots are stored without a capacity and resolved by the capacity policy.
func SampleExperiences(c clock.Clock) []shared.ExperienceRecord {
	pattern := func(d, i int) bool {
		return (i == 0 && d == 1) || (i == 2 && d == 2) || (i == 3 && d == 0)
	}
	out := make([]shared.ExperienceRecord, 0, 3)
	for _, s := range []sampleExperience{kayaking, nandiHills, coffeeTrail} {
		s.times = defaultTimes
		s.soldOut = pattern
		out = append(out, s.record(c))
	}
	return out
}

// ScriptExperiences is the catalog written by cmd/seed, with a timetable per experience.
func ScriptExperiences(c clock.Clock) []shared.ExperienceRecord {
	k := kayaking
	k.times = defaultTimes
	k.soldOut = func(d, i int) bool {
		return (i == 0 && d == 1) || (i == 2 && d == 2) || i == 3
	}

	n := nandiHills
	n.times = []string{"06:00 am", "08:00 am", "10:00 am"}
	n.soldOut = func(d, i int) bool { return i == 1 && d == 0 }

	ct := coffeeTrail
	ct.times = []string{"09:00 am", "11:00 am", "01:00 pm"}
	ct.soldOut = func(int, int) bool { return false }

	return []shared.ExperienceRecord{k.record(c), n.record(c), ct.record(c)}
}

func (s sampleExperience) record(c clock.Clock) shared.ExperienceRecord {
	rec := shared.ExperienceRecord{
		ID:               s.id,
		Title:            s.title,
		City:             s.city,
		BasePrice:        s.price,
		ImageURL:         s.imageURL,
		ShortDescription: s.shortDescription,
		Description:      s.description,
		Days:             make([]shared.DayRecord, 0, seedDays),
	}
	for d := range seedDays {
		day := shared.DayRecord{Date: clock.DateAfter(c, d), Slots: make([]shared.SlotRecord, 0, len(s.times))}
		for i, t := range s.times {
			slot := shared.SlotRecord{Time: t}
			if s.soldOut(d, i) {
				zero := 0
				slot.Capacity = &zero
			}
			day.Slots = append(day.Slots, slot)
		}
		rec.Days = append(rec.Days, day)
	}
	return rec
}

func Seed(ctx context.Context, w shared.CatalogWriter, records []shared.ExperienceRecord) error {
	for _, rec := range records {
		if err := w.UpsertExperience(ctx, rec); err != nil {
			return errs.Wrap(err, "failed to seed experience "+rec.ID)
		}
	}
	return nil
}

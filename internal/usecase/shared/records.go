package shared

import (
	"experience-booking/internal/domain/experience"
)

// ExperienceRecord is the stored shape of an experience. Days and slots keep their
// stored order.
type ExperienceRecord struct {
	ID               string      `json:"id"`
	Title            string      `json:"title"`
	City             string      `json:"city"`
	BasePrice        int64       `json:"basePrice"`
	ImageURL         string      `json:"imageUrl"`
	ShortDescription string      `json:"shortDescription"`
	Description      string      `json:"description"`
	Days             []DayRecord `json:"days"`
}

type DayRecord struct {
	Date  string       `json:"date"`
	Slots []SlotRecord `json:"slots"`
}

// SlotRecord.Capacity is nil for legacy slots stored without one.
type SlotRecord struct {
	Time     string `json:"time"`
	Capacity *int   `json:"capacity,omitempty"`
}

// ToDomain resolves every legacy capacity through policy.
func (r ExperienceRecord) ToDomain(policy experience.CapacityPolicy) (*experience.Experience, error) {
	days := make([]experience.Day, 0, len(r.Days))
	for _, dr := range r.Days {
		slots := make([]experience.Slot, 0, len(dr.Slots))
		for _, sr := range dr.Slots {
			key := experience.NewSlotKey(r.ID, dr.Date, sr.Time)
			slot, err := experience.NewSlot(sr.Time, experience.ResolveCapacity(policy, key, sr.Capacity))
			if err != nil {
				return nil, err
			}
			slots = append(slots, slot)
		}
		day, err := experience.NewDay(dr.Date, slots)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}

	return experience.NewExperience(experience.Params{
		ID:               r.ID,
		Title:            r.Title,
		City:             r.City,
		BasePrice:        r.BasePrice,
		ImageURL:         r.ImageURL,
		ShortDescription: r.ShortDescription,
		Description:      r.Description,
		Days:             days,
	})
}

// NewExperienceRecord stores every capacity explicitly.
func NewExperienceRecord(exp *experience.Experience) ExperienceRecord {
	days := exp.Days()
	rec := ExperienceRecord{
		ID:               exp.ID(),
		Title:            exp.Title(),
		City:             exp.City(),
		BasePrice:        exp.BasePrice(),
		ImageURL:         exp.ImageURL(),
		ShortDescription: exp.ShortDescription(),
		Description:      exp.Description(),
		Days:             make([]DayRecord, 0, len(days)),
	}
	for _, d := range days {
		slots := d.Slots()
		dr := DayRecord{Date: d.Date(), Slots: make([]SlotRecord, 0, len(slots))}
		for _, s := range slots {
			capacity := s.CapacityRemaining()
			dr.Slots = append(dr.Slots, SlotRecord{Time: s.Time(), Capacity: &capacity})
		}
		rec.Days = append(rec.Days, dr)
	}
	return rec
}

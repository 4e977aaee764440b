package response

import (
	"experience-booking/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type ExperienceSummaryResponse struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	City             string `json:"city"`
	BasePrice        int64  `json:"basePrice"`
	ImageURL         string `json:"imageUrl"`
	ShortDescription string `json:"shortDescription"`
}

type ExperienceResponse struct {
	ExperienceSummaryResponse
	Description string        `json:"description"`
	Days        []DayResponse `json:"days"`
}

type DayResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

type SlotResponse struct {
	Time              string `json:"time"`
	CapacityRemaining int    `json:"capacityRemaining"`
	SoldOut           bool   `json:"soldOut"`
}

func FromExperienceSummaries(views []*queries.ExperienceSummaryView) ([]ExperienceSummaryResponse, error) {
	res := make([]ExperienceSummaryResponse, 0, len(views))
	if err := copier.Copy(&res, views); err != nil {
		return nil, err
	}
	return res, nil
}

func FromExperienceView(v *queries.ExperienceView) *ExperienceResponse {
	days := make([]DayResponse, len(v.Days))
	for i, d := range v.Days {
		slots := make([]SlotResponse, len(d.Slots))
		for j, s := range d.Slots {
			slots[j] = SlotResponse{
				Time:              s.Time,
				CapacityRemaining: s.CapacityRemaining,
				SoldOut:           s.SoldOut,
			}
		}
		days[i] = DayResponse{Date: d.Date, Slots: slots}
	}

	return &ExperienceResponse{
		ExperienceSummaryResponse: ExperienceSummaryResponse{
			ID:               v.ID,
			Title:            v.Title,
			City:             v.City,
			BasePrice:        v.BasePrice,
			ImageURL:         v.ImageURL,
			ShortDescription: v.ShortDescription,
		},
		Description: v.Description,
		Days:        days,
	}
}

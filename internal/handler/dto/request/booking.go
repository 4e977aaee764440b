package request

import (
	"experience-booking/internal/pkg/patch"
	"experience-booking/internal/usecase/commands"
)

type CreateBookingRequest struct {
	ExperienceID string `json:"experienceId" example:"1"`
	Date         string `json:"date" example:"2025-10-22"`
	Time         string `json:"time" example:"07:00 am"`
	Name         string `json:"name" example:"Asha Rao"`
	Email        string `json:"email" example:"asha@example.com"`
	Quantity     *int   `json:"quantity" binding:"omitempty,gte=1,lte=100" example:"1"`
	Discount     *int64 `json:"discount" example:"0"`
	PromoCode    string `json:"promoCode" example:"SAVE10"`
}

// ToInput leaves field validation to the reservation use case.
func (r *CreateBookingRequest) ToInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		ExperienceID: r.ExperienceID,
		Date:         r.Date,
		Time:         r.Time,
		Name:         r.Name,
		Email:        r.Email,
		Quantity:     patch.Coalesce(r.Quantity, 0),
		Discount:     patch.Coalesce(r.Discount, 0),
		PromoCode:    r.PromoCode,
	}
}

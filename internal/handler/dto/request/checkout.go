package request

import (
	"experience-booking/internal/pkg/patch"
	"experience-booking/internal/usecase/commands"
)

type ValidatePromoRequest struct {
	Code     *string `json:"code" binding:"required" example:"SAVE10"`
	Subtotal *int64  `json:"subtotal" binding:"required" example:"999"`
}

type QuoteRequest struct {
	ExperienceID string `json:"experienceId" binding:"required" example:"1"`
	Quantity     *int   `json:"quantity" binding:"omitempty,gte=1,lte=100" example:"2"`
	Code         string `json:"code" example:"FLAT100"`
}

func (r *QuoteRequest) ToInput() commands.QuoteInput {
	return commands.QuoteInput{
		ExperienceID: r.ExperienceID,
		Quantity:     patch.Coalesce(r.Quantity, 0),
		Code:         r.Code,
	}
}

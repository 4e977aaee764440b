package response

import (
	"experience-booking/internal/usecase/commands"
	"experience-booking/internal/usecase/queries"
)

type CreateBookingResponse struct {
	OK        bool   `json:"ok"`
	Reference string `json:"reference"`
}

func FromCreateBookingResult(r *commands.CreateBookingResult) *CreateBookingResponse {
	return &CreateBookingResponse{OK: true, Reference: r.Reference}
}

type BookingResponse struct {
	Reference    string `json:"reference"`
	ExperienceID string `json:"experienceId"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Quantity     int    `json:"quantity"`
	Subtotal     int64  `json:"subtotal"`
	Taxes        int64  `json:"taxes"`
	Discount     int64  `json:"discount"`
	Total        int64  `json:"total"`
	PromoCode    string `json:"promoCode,omitempty"`
	CreatedAt    int64  `json:"createdAt"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		Reference:    v.Reference,
		ExperienceID: v.ExperienceID,
		Date:         v.Date,
		Time:         v.Time,
		Name:         v.Name,
		Email:        v.Email,
		Quantity:     v.Quantity,
		Subtotal:     v.Subtotal,
		Taxes:        v.Taxes,
		Discount:     v.Discount,
		Total:        v.Total,
		PromoCode:    v.PromoCode,
		CreatedAt:    v.CreatedAt.Unix(),
	}
}

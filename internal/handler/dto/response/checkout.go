package response

import (
	"experience-booking/internal/usecase/commands"
)

type PromoResponse struct {
	Valid    bool  `json:"valid"`
	Discount int64 `json:"discount"`
}

func FromPromoResult(r commands.PromoResult) *PromoResponse {
	return &PromoResponse{Valid: r.Valid, Discount: r.Discount}
}

type QuoteResponse struct {
	Subtotal        int64  `json:"subtotal"`
	Taxes           int64  `json:"taxes"`
	Discount        int64  `json:"discount"`
	Total           int64  `json:"total"`
	DiscountClamped bool   `json:"discountClamped"`
	PromoCode       string `json:"promoCode,omitempty"`
	PromoValid      bool   `json:"promoValid"`
}

func FromQuoteResult(r *commands.QuoteResult) *QuoteResponse {
	return &QuoteResponse{
		Subtotal:        r.Quote.Subtotal,
		Taxes:           r.Quote.Taxes,
		Discount:        r.Quote.Discount,
		Total:           r.Quote.Total,
		DiscountClamped: r.Quote.DiscountClamped,
		PromoCode:       r.Promo.Code,
		PromoValid:      r.Promo.Valid,
	}
}

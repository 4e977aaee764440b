package commands

import (
	"context"
	"strings"

	"experience-booking/internal/domain/pricing"
	"experience-booking/internal/domain/promo"
	"experience-booking/internal/infra"
	"experience-booking/internal/usecase/shared"
)

type PromoResult struct {
	Code     string
	Valid    bool
	Discount int64
}

// QuoteInput prices an experience server-side. Quantity 0 means absent.
type QuoteInput struct {
	ExperienceID string `json:"experienceId" validate:"required"`
	Quantity     int    `json:"quantity" validate:"gte=0,lte=100"`
	Code         string `json:"code"`
}

type QuoteResult struct {
	Quote pricing.Quote
	Promo PromoResult
}

type CheckoutCommands interface {
	ValidatePromo(code string, subtotal int64) PromoResult
	Quote(ctx context.Context, in QuoteInput) (*QuoteResult, error)
}

type checkoutCommandsImpl struct {
	catalog    shared.CatalogStore
	calculator pricing.Calculator
	promos     *promo.Validator
}

func NewCheckoutCommands(
	catalog shared.CatalogStore,
	calculator pricing.Calculator,
	promos *promo.Validator,
) CheckoutCommands {
	return &checkoutCommandsImpl{
		catalog:    catalog,
		calculator: calculator,
		promos:     promos,
	}
}

func (u *checkoutCommandsImpl) ValidatePromo(code string, subtotal int64) PromoResult {
	r := u.promos.Validate(code, subtotal)
	return PromoResult{
		Code:     r.Code.String(),
		Valid:    r.Valid(),
		Discount: r.Discount,
	}
}

func (u *checkoutCommandsImpl) Quote(ctx context.Context, in QuoteInput) (*QuoteResult, error) {
	in.ExperienceID = strings.TrimSpace(in.ExperienceID)
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if err := validate.Struct(in); err != nil {
		return nil, invalid(err)
	}

	exp, err := u.catalog.GetExperience(ctx, in.ExperienceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, notFound(ErrExperienceNotFound)
		}
		return nil, unavailable(err)
	}

	subtotal, err := pricing.Subtotal(exp.BasePrice(), in.Quantity)
	if err != nil {
		return nil, invalid(err)
	}
	promoResult := u.ValidatePromo(in.Code, subtotal)
	quote, err := u.calculator.Quote(exp.BasePrice(), in.Quantity, promoResult.Discount)
	if err != nil {
		return nil, invalid(err)
	}

	return &QuoteResult{Quote: quote, Promo: promoResult}, nil
}

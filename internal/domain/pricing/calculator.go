package pricing

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrNegativeDiscount = errors.New("discount cannot be negative")
	ErrNegativePrice    = errors.New("base price cannot be negative")
	ErrQuantityTooLarge = errors.New("quantity must be at most 100")
	ErrSubtotalTooLarge = errors.New("subtotal is out of range")
)

// MaxQuantity bounds seats per booking; request validation uses the same limit.
const MaxQuantity = 100

// maxSubtotal leaves room for taxes below the rate of 100%.
const maxSubtotal = math.MaxInt64 / 2

// DefaultTaxRate is 5.9%.
var DefaultTaxRate = decimal.RequireFromString("0.059")

type Calculator interface {
	Quote(basePrice int64, quantity int, discount int64) (Quote, error)
}

type DefaultCalculator struct {
	TaxRate decimal.Decimal
}

func NewDefaultCalculator() *DefaultCalculator {
	return &DefaultCalculator{
		TaxRate: DefaultTaxRate,
	}
}

func (c *DefaultCalculator) Quote(basePrice int64, quantity int, discount int64) (Quote, error) {
	if basePrice < 0 {
		return Quote{}, ErrNegativePrice
	}
	if quantity < 1 {
		return Quote{}, ErrInvalidQuantity
	}
	if quantity > MaxQuantity {
		return Quote{}, ErrQuantityTooLarge
	}
	if discount < 0 {
		return Quote{}, ErrNegativeDiscount
	}

	subtotal, err := Subtotal(basePrice, quantity)
	if err != nil {
		return Quote{}, err
	}
	taxes := taxesAt(subtotal, c.TaxRate)
	total, clamped := ComputeTotal(subtotal, taxes, discount)

	return Quote{
		BasePrice:       basePrice,
		Quantity:        quantity,
		Subtotal:        subtotal,
		Taxes:           taxes,
		Discount:        discount,
		Total:           total,
		DiscountClamped: clamped,
	}, nil
}

// Subtotal is basePrice × quantity. Products that would not fit with taxes added are rejected.
func Subtotal(basePrice int64, quantity int) (int64, error) {
	if basePrice < 0 {
		return 0, ErrNegativePrice
	}
	if quantity < 1 {
		return 0, ErrInvalidQuantity
	}
	if basePrice > maxSubtotal/int64(quantity) {
		return 0, ErrSubtotalTooLarge
	}
	return basePrice * int64(quantity), nil
}

// ComputeTaxes rounds half up: 999 * 0.059 = 58.941 -> 59, 500 * 0.059 = 29.5 -> 30.
func ComputeTaxes(subtotal int64) int64 {
	return taxesAt(subtotal, DefaultTaxRate)
}

// ComputeTotal never returns a negative total; clamped reports that the discount exceeded
// subtotal+taxes.
func ComputeTotal(subtotal, taxes, discount int64) (total int64, clamped bool) {
	if discount < 0 {
		discount = 0
	}
	total = subtotal + taxes - discount
	if total < 0 {
		return 0, true
	}
	return total, false
}

// RoundHalfUp rounds a non-negative amount to whole currency units.
func RoundHalfUp(d decimal.Decimal) int64 {
	if d.IsNegative() {
		return 0
	}
	// decimal rounds half away from zero, which is half up for non-negative values
	return d.Round(0).IntPart()
}

func taxesAt(subtotal int64, rate decimal.Decimal) int64 {
	if subtotal <= 0 {
		return 0
	}
	return RoundHalfUp(decimal.NewFromInt(subtotal).Mul(rate))
}

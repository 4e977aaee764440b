package promo

import (
	"strings"

	"experience-booking/internal/domain/pricing"

	"github.com/shopspring/decimal"
)

const (
	CodeSave10  Code = "SAVE10"
	CodeFlat100 Code = "FLAT100"
)

// Code is a trimmed, upper-cased promo code.
type Code string

func NormalizeCode(code string) Code {
	return Code(strings.ToUpper(strings.TrimSpace(code)))
}

func (c Code) String() string {
	return string(c)
}

// Rule computes a discount for a non-negative subtotal.
type Rule func(subtotal int64) int64

func PercentOff(percent string) Rule {
	rate := decimal.RequireFromString(percent).Div(decimal.NewFromInt(100))
	return func(subtotal int64) int64 {
		return pricing.RoundHalfUp(decimal.NewFromInt(subtotal).Mul(rate))
	}
}

// AmountOff never discounts more than the subtotal.
func AmountOff(amount int64) Rule {
	return func(subtotal int64) int64 {
		return min(amount, subtotal)
	}
}

type Result struct {
	Code     Code
	Discount int64
}

func (r Result) Valid() bool {
	return r.Discount > 0
}

// Validator is a stateless rule lookup. Codes are reusable without limit.
type Validator struct {
	rules map[Code]Rule
}

func NewValidator(rules map[Code]Rule) *Validator {
	normalized := make(map[Code]Rule, len(rules))
	for code, rule := range rules {
		normalized[NormalizeCode(code.String())] = rule
	}
	return &Validator{rules: normalized}
}

func NewDefaultValidator() *Validator {
	return NewValidator(map[Code]Rule{
		CodeSave10:  PercentOff("10"),
		CodeFlat100: AmountOff(100),
	})
}

// Validate is total: unknown codes and non-positive subtotals yield a zero discount.
func (v *Validator) Validate(code string, subtotal int64) Result {
	normalized := NormalizeCode(code)
	result := Result{Code: normalized}
	if subtotal <= 0 {
		return result
	}
	rule, ok := v.rules[normalized]
	if !ok {
		return result
	}
	discount := rule(subtotal)
	if discount < 0 {
		discount = 0
	}
	result.Discount = discount
	return result
}

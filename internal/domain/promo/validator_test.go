//go:build unit

package promo_test

import (
	"testing"

	"experience-booking/internal/domain/promo"

	"github.com/stretchr/testify/assert"
)

func TestValidator_Validate(t *testing.T) {
	v := promo.NewDefaultValidator()

	tests := []struct {
		name     string
		code     string
		subtotal int64
		want     int64
	}{
		{name: "percent code", code: "SAVE10", subtotal: 1000, want: 100},
		{name: "case and whitespace insensitive", code: "  save10 ", subtotal: 1000, want: 100},
		{name: "percent rounds half up", code: "SAVE10", subtotal: 995, want: 100},
		{name: "percent rounds down below half", code: "SAVE10", subtotal: 994, want: 99},
		{name: "flat code", code: "FLAT100", subtotal: 999, want: 100},
		{name: "flat capped at subtotal", code: "flat100", subtotal: 50, want: 50},
		{name: "unknown code", code: "BOGUS", subtotal: 1000, want: 0},
		{name: "empty code", code: "", subtotal: 1000, want: 0},
		{name: "zero subtotal", code: "SAVE10", subtotal: 0, want: 0},
		{name: "negative subtotal", code: "FLAT100", subtotal: -5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Validate(tt.code, tt.subtotal)
			assert.Equal(t, tt.want, got.Discount)
			assert.Equal(t, tt.want > 0, got.Valid())
		})
	}
}

func TestValidator_Deterministic(t *testing.T) {
	v := promo.NewDefaultValidator()

	first := v.Validate("SAVE10", 999)
	for range 5 {
		assert.Equal(t, first, v.Validate("SAVE10", 999))
	}
	assert.Equal(t, promo.CodeSave10, first.Code)
}

func TestNewValidator_CustomRules(t *testing.T) {
	v := promo.NewValidator(map[promo.Code]promo.Rule{
		"welcome": promo.AmountOff(250),
	})

	assert.Equal(t, int64(250), v.Validate("WELCOME", 1000).Discount)
	assert.Equal(t, int64(0), v.Validate("SAVE10", 1000).Discount)
}

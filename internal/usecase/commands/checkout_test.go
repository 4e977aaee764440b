//go:build unit

package commands_test

import (
	"context"
	"math"
	"testing"

	"experience-booking/internal/domain/pricing"
	"experience-booking/internal/domain/promo"
	"experience-booking/internal/infra"
	"experience-booking/internal/pkg/errs"
	"experience-booking/internal/usecase/commands"
	"experience-booking/tests/common/builder"
	sharedmock "experience-booking/tests/mock/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newCheckout(t *testing.T) (commands.CheckoutCommands, *sharedmock.MockCatalogStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	catalog := sharedmock.NewMockCatalogStore(ctrl)
	return commands.NewCheckoutCommands(catalog, pricing.NewDefaultCalculator(), promo.NewDefaultValidator()), catalog
}

func TestCheckoutCommands_ValidatePromo(t *testing.T) {
	uc, _ := newCheckout(t)

	assert.Equal(t, commands.PromoResult{Code: "SAVE10", Valid: true, Discount: 100}, uc.ValidatePromo("save10", 1000))
	assert.Equal(t, commands.PromoResult{Code: "FLAT100", Valid: true, Discount: 50}, uc.ValidatePromo("flat100", 50))
	assert.Equal(t, commands.PromoResult{Code: "BOGUS", Valid: false, Discount: 0}, uc.ValidatePromo("bogus", 1000))
}

func TestCheckoutCommands_Quote(t *testing.T) {
	t.Run("default quantity with promo", func(t *testing.T) {
		uc, catalog := newCheckout(t)
		catalog.EXPECT().GetExperience(gomock.Any(), "exp-kayak").
			Return(builder.NewExperienceBuilder().MustBuildDomain(), nil).Times(1)

		result, err := uc.Quote(context.Background(), commands.QuoteInput{ExperienceID: "exp-kayak", Code: "SAVE10"})
		require.NoError(t, err)
		assert.Equal(t, pricing.Quote{BasePrice: 999, Quantity: 1, Subtotal: 999, Taxes: 59, Discount: 100, Total: 958}, result.Quote)
		assert.True(t, result.Promo.Valid)
	})

	t.Run("unknown code quotes without discount", func(t *testing.T) {
		uc, catalog := newCheckout(t)
		catalog.EXPECT().GetExperience(gomock.Any(), "exp-kayak").
			Return(builder.NewExperienceBuilder().MustBuildDomain(), nil).Times(1)

		result, err := uc.Quote(context.Background(), commands.QuoteInput{ExperienceID: "exp-kayak", Quantity: 3, Code: "NOPE"})
		require.NoError(t, err)
		assert.Equal(t, int64(2997), result.Quote.Subtotal)
		assert.Equal(t, int64(0), result.Quote.Discount)
		assert.False(t, result.Promo.Valid)
	})

	t.Run("unknown experience", func(t *testing.T) {
		uc, catalog := newCheckout(t)
		catalog.EXPECT().GetExperience(gomock.Any(), "missing").
			Return(nil, infra.WrapRepoErr(discard, infra.KindNotFound, "experience not found", nil)).Times(1)

		_, err := uc.Quote(context.Background(), commands.QuoteInput{ExperienceID: "missing"})
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})

	t.Run("invalid input", func(t *testing.T) {
		uc, _ := newCheckout(t)

		_, err := uc.Quote(context.Background(), commands.QuoteInput{ExperienceID: ""})
		assert.True(t, errs.Is(err, errs.ErrValidation))

		_, err = uc.Quote(context.Background(), commands.QuoteInput{ExperienceID: "exp-kayak", Quantity: -1})
		assert.True(t, errs.Is(err, errs.ErrValidation))

		_, err = uc.Quote(context.Background(), commands.QuoteInput{ExperienceID: "exp-kayak", Quantity: pricing.MaxQuantity + 1})
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("subtotal out of range is invalid", func(t *testing.T) {
		uc, catalog := newCheckout(t)
		catalog.EXPECT().GetExperience(gomock.Any(), "exp-kayak").
			Return(builder.NewExperienceBuilder().WithBasePrice(math.MaxInt64/2).MustBuildDomain(), nil).Times(1)

		_, err := uc.Quote(context.Background(), commands.QuoteInput{ExperienceID: "exp-kayak", Quantity: 3, Code: "SAVE10"})
		assert.True(t, errs.Is(err, errs.ErrValidation))
		assert.True(t, errs.Is(err, pricing.ErrSubtotalTooLarge))
	})
}

//go:build unit

package commands_test

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"
	"testing"

	"experience-booking/internal/domain/booking"
	"experience-booking/internal/domain/pricing"
	"experience-booking/internal/domain/promo"
	"experience-booking/internal/infra"
	"experience-booking/internal/infra/memstore"
	"experience-booking/internal/pkg/clock"
	"experience-booking/internal/pkg/errs"
	"experience-booking/internal/usecase/commands"
	"experience-booking/internal/usecase/shared"
	"experience-booking/tests/common/builder"
	sharedmock "experience-booking/tests/mock/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var discard = slog.New(slog.DiscardHandler)

type BookingCommandsTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockCatalog   *sharedmock.MockCatalogStore
	mockLedger    *sharedmock.MockBookingLedger
	mockPublisher *sharedmock.MockEventPublisher
	refs          *builder.FixedReferences
	useCase       commands.BookingCommands
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCatalog = sharedmock.NewMockCatalogStore(s.mockCtrl)
	s.mockLedger = sharedmock.NewMockBookingLedger(s.mockCtrl)
	s.mockPublisher = sharedmock.NewMockEventPublisher(s.mockCtrl)
	s.refs = builder.NewFixedReferences("AB12CD34")
	s.useCase = s.newUseCase(s.refs)
}

func (s *BookingCommandsTestSuite) newUseCase(refs booking.ReferenceGenerator) commands.BookingCommands {
	services := &booking.Services{
		Clock:      clock.NewMockClock(builder.NewBookingBuilder().Now),
		References: refs,
	}
	return commands.NewBookingCommands(
		s.mockCatalog,
		s.mockLedger,
		s.mockPublisher,
		pricing.NewDefaultCalculator(),
		promo.NewDefaultValidator(),
		services,
		discard,
	)
}

func (s *BookingCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func validInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		ExperienceID: "exp-kayak",
		Date:         "2025-10-22",
		Time:         "07:00 am",
		Name:         "Asha Rao",
		Email:        "asha@example.com",
		Discount:     100,
	}
}

func (s *BookingCommandsTestSuite) expectExperience() {
	exp := builder.NewExperienceBuilder().MustBuildDomain()
	s.mockCatalog.EXPECT().GetExperience(gomock.Any(), "exp-kayak").Return(exp, nil).Times(1)
}

func (s *BookingCommandsTestSuite) TestCreateBooking() {
	s.Run("success: commits booking and publishes event", func() {
		s.expectExperience()

		var inserted *booking.Booking
		s.mockLedger.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b *booking.Booking) error {
				inserted = b
				return nil
			}).Times(1)
		s.mockPublisher.EXPECT().PublishBookingCreated(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, event shared.BookingCreatedEvent) error {
				s.Equal("AB12CD34", event.Reference)
				s.Equal("exp-kayak", event.ExperienceID)
				s.Equal(int64(958), event.Total)
				return nil
			}).Times(1)

		result, err := s.useCase.CreateBooking(context.Background(), validInput())
		s.Require().NoError(err)
		s.Equal("AB12CD34", result.Reference)
		s.Equal(pricing.Quote{BasePrice: 999, Quantity: 1, Subtotal: 999, Taxes: 59, Discount: 100, Total: 958}, result.Quote)

		s.Require().NotNil(inserted)
		s.Equal("07:00 am", inserted.Slot().Time)
		s.Equal(1, inserted.Quantity())
	})

	s.Run("success: promo code replaces client discount", func() {
		s.expectExperience()
		s.mockLedger.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(1)
		s.mockPublisher.EXPECT().PublishBookingCreated(gomock.Any(), gomock.Any()).Return(nil).Times(1)

		in := validInput()
		in.Discount = 5
		in.PromoCode = " save10 "
		in.Quantity = 2

		result, err := s.useCase.CreateBooking(context.Background(), in)
		s.Require().NoError(err)
		s.Equal(int64(1998), result.Quote.Subtotal)
		s.Equal(int64(200), result.Quote.Discount)
		s.Equal(int64(1998+118-200), result.Quote.Total)
	})

	s.Run("success: publish failure does not fail the booking", func() {
		s.expectExperience()
		s.mockLedger.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(1)
		s.mockPublisher.EXPECT().PublishBookingCreated(gomock.Any(), gomock.Any()).
			Return(errors.New("broker down")).Times(1)

		result, err := s.useCase.CreateBooking(context.Background(), validInput())
		s.Require().NoError(err)
		s.NotEmpty(result.Reference)
	})
}

func (s *BookingCommandsTestSuite) TestCreateBooking_Validation() {
	tests := []struct {
		name   string
		mutate func(in *commands.CreateBookingInput)
	}{
		{name: "name too short", mutate: func(in *commands.CreateBookingInput) { in.Name = "A" }},
		{name: "malformed email", mutate: func(in *commands.CreateBookingInput) { in.Email = "asha.example.com" }},
		{name: "missing experience id", mutate: func(in *commands.CreateBookingInput) { in.ExperienceID = "  " }},
		{name: "missing date", mutate: func(in *commands.CreateBookingInput) { in.Date = "" }},
		{name: "missing time", mutate: func(in *commands.CreateBookingInput) { in.Time = "" }},
		{name: "negative discount", mutate: func(in *commands.CreateBookingInput) { in.Discount = -1 }},
		{name: "negative quantity", mutate: func(in *commands.CreateBookingInput) { in.Quantity = -2 }},
		{name: "quantity above limit", mutate: func(in *commands.CreateBookingInput) { in.Quantity = pricing.MaxQuantity + 1 }},
		{name: "quantity that would wrap the subtotal", mutate: func(in *commands.CreateBookingInput) { in.Quantity = int(math.MaxInt64/999 + 1) }},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			in := validInput()
			tt.mutate(&in)

			result, err := s.useCase.CreateBooking(context.Background(), in)
			s.Nil(result)
			s.True(errs.Is(err, errs.ErrValidation), "got %v", err)
			s.True(errs.Is(err, commands.ErrInvalidInput))
		})
	}

	s.Run("message names the field", func() {
		in := validInput()
		in.ExperienceID = ""
		_, err := s.useCase.CreateBooking(context.Background(), in)
		s.Require().Error(err)
		s.Contains(err.Error(), "experienceId is required")
	})
}

func (s *BookingCommandsTestSuite) TestCreateBooking_SubtotalOutOfRange() {
	for _, code := range []string{"", "SAVE10"} {
		s.Run("promo "+code, func() {
			exp := builder.NewExperienceBuilder().WithBasePrice(math.MaxInt64 / 2).MustBuildDomain()
			s.mockCatalog.EXPECT().GetExperience(gomock.Any(), "exp-kayak").Return(exp, nil).Times(1)

			in := validInput()
			in.Quantity = 3
			in.PromoCode = code

			result, err := s.useCase.CreateBooking(context.Background(), in)
			s.Nil(result)
			s.True(errs.Is(err, errs.ErrValidation), "got %v", err)
			s.True(errs.Is(err, pricing.ErrSubtotalTooLarge))
		})
	}
}

func (s *BookingCommandsTestSuite) TestCreateBooking_NotFound() {
	s.Run("unknown experience", func() {
		s.mockCatalog.EXPECT().GetExperience(gomock.Any(), "missing").
			Return(nil, infra.WrapRepoErr(discard, infra.KindNotFound, "experience not found", nil)).Times(1)

		in := validInput()
		in.ExperienceID = "missing"
		_, err := s.useCase.CreateBooking(context.Background(), in)
		s.True(errs.Is(err, errs.ErrNotFound))
		s.True(errs.Is(err, commands.ErrExperienceNotFound))
	})

	s.Run("unknown slot", func() {
		s.expectExperience()

		in := validInput()
		in.Time = "05:00 pm"
		_, err := s.useCase.CreateBooking(context.Background(), in)
		s.True(errs.Is(err, errs.ErrNotFound))
		s.True(errs.Is(err, commands.ErrSlotNotFound))
	})

	s.Run("catalog failure is unavailable", func() {
		s.mockCatalog.EXPECT().GetExperience(gomock.Any(), gomock.Any()).
			Return(nil, infra.WrapRepoErr(discard, infra.KindDBFailure, "query failed", errors.New("conn refused"))).Times(1)

		_, err := s.useCase.CreateBooking(context.Background(), validInput())
		s.True(errs.Is(err, errs.ErrUnavailable))
		s.False(errs.Is(err, errs.ErrNotFound))
	})
}

func (s *BookingCommandsTestSuite) TestCreateBooking_Ledger() {
	slotTaken := infra.WrapConstraintErr(discard, infra.ConstraintBookingSlot, "slot already booked", nil)
	refTaken := infra.WrapConstraintErr(discard, infra.ConstraintBookingReference, "reference already used", nil)

	s.Run("slot already booked is a conflict", func() {
		s.expectExperience()
		s.mockLedger.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(slotTaken).Times(1)

		result, err := s.useCase.CreateBooking(context.Background(), validInput())
		s.Nil(result)
		s.True(errs.Is(err, errs.ErrConflict))
		s.True(errs.Is(err, commands.ErrSlotAlreadyBooked))
		s.Equal("Slot already booked", err.Error())
	})

	s.Run("reference collision regenerates the reference", func() {
		uc := s.newUseCase(builder.NewFixedReferences("AAAAAAAA", "AAAAAAAA", "BBBBBBBB"))
		s.expectExperience()

		var seen []booking.Reference
		s.mockLedger.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b *booking.Booking) error {
				seen = append(seen, b.Reference())
				if b.Reference() == "AAAAAAAA" {
					return refTaken
				}
				return nil
			}).Times(3)
		s.mockPublisher.EXPECT().PublishBookingCreated(gomock.Any(), gomock.Any()).Return(nil).Times(1)

		result, err := uc.CreateBooking(context.Background(), validInput())
		s.Require().NoError(err)
		s.Equal("BBBBBBBB", result.Reference)
		s.Equal([]booking.Reference{"AAAAAAAA", "AAAAAAAA", "BBBBBBBB"}, seen)
	})

	s.Run("reference collisions give up after three attempts", func() {
		uc := s.newUseCase(builder.NewFixedReferences("AAAAAAAA"))
		s.expectExperience()
		s.mockLedger.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(refTaken).Times(3)

		_, err := uc.CreateBooking(context.Background(), validInput())
		s.True(errs.Is(err, errs.ErrUnavailable))
		s.True(errs.Is(err, commands.ErrReferenceExhausted))
	})

	s.Run("storage failure is unavailable", func() {
		s.expectExperience()
		s.mockLedger.EXPECT().Insert(gomock.Any(), gomock.Any()).
			Return(infra.WrapRepoErr(discard, infra.KindDBFailure, "insert failed", errors.New("timeout"))).Times(1)

		_, err := s.useCase.CreateBooking(context.Background(), validInput())
		s.True(errs.Is(err, errs.ErrUnavailable))
		s.True(errs.Is(err, commands.ErrStoreUnavailable))
	})
}

type nopPublisher struct{}

func (nopPublisher) PublishBookingCreated(context.Context, shared.BookingCreatedEvent) error {
	return nil
}

func TestCreateBooking_ConcurrentAttemptsOnOneSlot(t *testing.T) {
	const attempts = 50

	catalog := memstore.NewCatalog(builder.NewHashedPolicy(), discard)
	exp := builder.NewExperienceBuilder().MustBuildDomain()
	require.NoError(t, catalog.UpsertExperience(context.Background(), shared.NewExperienceRecord(exp)))
	ledger := memstore.NewLedger(discard)

	uc := commands.NewBookingCommands(
		catalog,
		ledger,
		nopPublisher{},
		pricing.NewDefaultCalculator(),
		promo.NewDefaultValidator(),
		&booking.Services{Clock: clock.NewRealClock(), References: booking.NewUUIDReferenceGenerator()},
		discard,
	)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes []string
		conflicts int
		others    []error
	)
	start := make(chan struct{})
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			result, err := uc.CreateBooking(context.Background(), validInput())
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes = append(successes, result.Reference)
			case errs.Is(err, errs.ErrConflict):
				conflicts++
			default:
				others = append(others, err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Len(t, successes, 1)
	assert.Equal(t, attempts-1, conflicts)
	assert.Empty(t, others)
	assert.Equal(t, 1, ledger.Len())

	committed, err := ledger.FindByReference(context.Background(), booking.Reference(successes[0]))
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", committed.Customer().Name())
}

func TestCreateBooking_OversizedQuantityCommitsNothing(t *testing.T) {
	catalog := memstore.NewCatalog(builder.NewHashedPolicy(), discard)
	exp := builder.NewExperienceBuilder().MustBuildDomain()
	require.NoError(t, catalog.UpsertExperience(context.Background(), shared.NewExperienceRecord(exp)))
	ledger := memstore.NewLedger(discard)

	uc := commands.NewBookingCommands(
		catalog,
		ledger,
		nopPublisher{},
		pricing.NewDefaultCalculator(),
		promo.NewDefaultValidator(),
		&booking.Services{Clock: clock.NewRealClock(), References: booking.NewUUIDReferenceGenerator()},
		discard,
	)

	in := validInput()
	in.Quantity = int(math.MaxInt64/999 + 1)

	result, err := uc.CreateBooking(context.Background(), in)
	assert.Nil(t, result)
	assert.True(t, errs.Is(err, errs.ErrValidation), "got %v", err)
	assert.Contains(t, err.Error(), "quantity must be at most 100")
	assert.Equal(t, 0, ledger.Len())
}

package commands

import (
	"context"
	"log/slog"
	"strings"

	"experience-booking/internal/domain/booking"
	"experience-booking/internal/domain/experience"
	"experience-booking/internal/domain/pricing"
	"experience-booking/internal/domain/promo"
	"experience-booking/internal/infra"
	"experience-booking/internal/pkg/errs"
	"experience-booking/internal/usecase/shared"
)

const maxReferenceAttempts = 3

// CreateBookingInput is a booking request before validation. Quantity 0 means absent.
type CreateBookingInput struct {
	ExperienceID string `json:"experienceId" validate:"required"`
	Date         string `json:"date" validate:"required"`
	Time         string `json:"time" validate:"required"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Quantity     int    `json:"quantity" validate:"gte=0,lte=100"`
	Discount     int64  `json:"discount" validate:"gte=0"`
	PromoCode    string `json:"promoCode"`
}

func (in CreateBookingInput) normalized() CreateBookingInput {
	in.ExperienceID = strings.TrimSpace(in.ExperienceID)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	in.PromoCode = strings.TrimSpace(in.PromoCode)
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	return in
}

type CreateBookingResult struct {
	Reference string
	Quote     pricing.Quote
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*CreateBookingResult, error)
}

type bookingCommandsImpl struct {
	catalog    shared.CatalogStore
	ledger     shared.BookingLedger
	publisher  shared.EventPublisher
	calculator pricing.Calculator
	promos     *promo.Validator
	services   *booking.Services
	logger     *slog.Logger
}

func NewBookingCommands(
	catalog shared.CatalogStore,
	ledger shared.BookingLedger,
	publisher shared.EventPublisher,
	calculator pricing.Calculator,
	promos *promo.Validator,
	services *booking.Services,
	logger *slog.Logger,
) BookingCommands {
	return &bookingCommandsImpl{
		catalog:    catalog,
		ledger:     ledger,
		publisher:  publisher,
		calculator: calculator,
		promos:     promos,
		services:   services,
		logger:     logger,
	}
}

// CreateBooking validates the request, resolves the slot, prices it and commits the booking.
// The ledger insert is the only step that decides between concurrent attempts on one slot.
func (u *bookingCommandsImpl) CreateBooking(ctx context.Context, in CreateBookingInput) (*CreateBookingResult, error) {
	in = in.normalized()
	if err := validate.Struct(in); err != nil {
		return nil, invalid(err)
	}
	customer, err := booking.NewCustomer(in.Name, in.Email)
	if err != nil {
		return nil, invalid(err)
	}

	slot := experience.NewSlotKey(in.ExperienceID, in.Date, in.Time)
	exp, err := u.resolveSlot(ctx, slot)
	if err != nil {
		return nil, err
	}

	discount := in.Discount
	if in.PromoCode != "" {
		subtotal, err := pricing.Subtotal(exp.BasePrice(), in.Quantity)
		if err != nil {
			return nil, invalid(err)
		}
		discount = u.promos.Validate(in.PromoCode, subtotal).Discount
	}
	quote, err := u.calculator.Quote(exp.BasePrice(), in.Quantity, discount)
	if err != nil {
		return nil, invalid(err)
	}

	created, err := u.commit(ctx, slot, customer, quote, in.PromoCode)
	if err != nil {
		return nil, err
	}

	u.publish(ctx, created)

	return &CreateBookingResult{
		Reference: created.Reference().String(),
		Quote:     quote,
	}, nil
}

func (u *bookingCommandsImpl) resolveSlot(ctx context.Context, slot experience.SlotKey) (*experience.Experience, error) {
	exp, err := u.catalog.GetExperience(ctx, slot.ExperienceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, notFound(ErrExperienceNotFound)
		}
		return nil, unavailable(err)
	}
	if _, err := exp.FindSlot(slot.Date, slot.Time); err != nil {
		return nil, notFound(ErrSlotNotFound)
	}
	return exp, nil
}

func (u *bookingCommandsImpl) commit(
	ctx context.Context,
	slot experience.SlotKey,
	customer booking.Customer,
	quote pricing.Quote,
	promoCode string,
) (*booking.Booking, error) {
	for attempt := 1; attempt <= maxReferenceAttempts; attempt++ {
		candidate, err := booking.NewBooking(u.services, slot, customer, quote, promoCode)
		if err != nil {
			return nil, invalid(err)
		}

		err = u.ledger.Insert(ctx, candidate)
		switch {
		case err == nil:
			u.logger.Info("booking committed",
				slog.String("reference", candidate.Reference().String()),
				slog.String("experience_id", slot.ExperienceID),
				slog.String("date", slot.Date),
				slog.String("time", slot.Time),
				slog.Int64("total", quote.Total))
			return candidate, nil

		case infra.IsConstraint(err, infra.ConstraintBookingSlot):
			u.logger.Warn("slot already booked",
				slog.String("experience_id", slot.ExperienceID),
				slog.String("date", slot.Date),
				slog.String("time", slot.Time))
			return nil, errs.Mark(ErrSlotAlreadyBooked, errs.ErrConflict)

		case infra.IsConstraint(err, infra.ConstraintBookingReference):
			u.logger.Warn("booking reference collision",
				slog.String("reference", candidate.Reference().String()),
				slog.Int("attempt", attempt))

		default:
			return nil, unavailable(err)
		}
	}

	return nil, errs.Mark(ErrReferenceExhausted, errs.ErrUnavailable)
}

// publish runs after commit; a failed publish never fails the booking.
func (u *bookingCommandsImpl) publish(ctx context.Context, b *booking.Booking) {
	event := shared.NewBookingCreatedEvent(b)
	if err := u.publisher.PublishBookingCreated(context.WithoutCancel(ctx), event); err != nil {
		u.logger.Error("failed to publish booking event",
			slog.String("reference", event.Reference),
			slog.String("error", err.Error()))
	}
}

package queries

import (
	"context"

	"experience-booking/internal/domain/booking"
	"experience-booking/internal/infra"
	"experience-booking/internal/pkg/errs"
	"experience-booking/internal/usecase/shared"
)

var (
	ErrBookingNotFound   = errs.New("booking not found")
	ErrInvalidReference  = errs.New("invalid booking reference")
	ErrLedgerUnavailable = errs.New("booking ledger unavailable")
)

type BookingQueries interface {
	GetByReference(ctx context.Context, reference string) (*BookingView, error)
}

type bookingQueriesImpl struct {
	ledger shared.BookingLedger
}

func NewBookingQueries(ledger shared.BookingLedger) BookingQueries {
	return &bookingQueriesImpl{ledger: ledger}
}

func (q *bookingQueriesImpl) GetByReference(ctx context.Context, reference string) (*BookingView, error) {
	ref, err := booking.ParseReference(reference)
	if err != nil {
		return nil, errs.Mark(errs.Mark(err, ErrInvalidReference), errs.ErrValidation)
	}

	b, err := q.ledger.FindByReference(ctx, ref)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(ErrBookingNotFound, errs.ErrNotFound)
		}
		return nil, errs.Mark(errs.Mark(err, ErrLedgerUnavailable), errs.ErrUnavailable)
	}
	return ToBookingView(b), nil
}

func ToBookingView(b *booking.Booking) *BookingView {
	slot := b.Slot()
	quote := b.Quote()
	return &BookingView{
		Reference:    b.Reference().String(),
		ExperienceID: slot.ExperienceID,
		Date:         slot.Date,
		Time:         slot.Time,
		Name:         b.Customer().Name(),
		Email:        b.Customer().Email(),
		Quantity:     b.Quantity(),
		Subtotal:     quote.Subtotal,
		Taxes:        quote.Taxes,
		Discount:     quote.Discount,
		Total:        quote.Total,
		PromoCode:    b.PromoCode(),
		CreatedAt:    b.CreatedAt(),
	}
}

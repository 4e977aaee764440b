package memstore

import (
	"context"
	"log/slog"
	"sync"

	"experience-booking/internal/domain/booking"
	"experience-booking/internal/domain/experience"
	"experience-booking/internal/infra"
)

// Ledger is the in-process booking ledger. One mutex covers the check and the write,
// which is enough within a single process.
type Ledger struct {
	mu     sync.Mutex
	bySlot map[experience.SlotKey]booking.Reference
	byRef  map[booking.Reference]*booking.Booking
	logger *slog.Logger
}

func NewLedger(logger *slog.Logger) *Ledger {
	return &Ledger{
		bySlot: make(map[experience.SlotKey]booking.Reference),
		byRef:  make(map[booking.Reference]*booking.Booking),
		logger: logger,
	}
}

func (l *Ledger) Insert(_ context.Context, b *booking.Booking) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, taken := l.bySlot[b.Slot()]; taken {
		return infra.WrapConstraintErr(l.logger, infra.ConstraintBookingSlot, "slot already booked", nil)
	}
	if _, taken := l.byRef[b.Reference()]; taken {
		return infra.WrapConstraintErr(l.logger, infra.ConstraintBookingReference, "booking reference already used", nil)
	}

	l.bySlot[b.Slot()] = b.Reference()
	l.byRef[b.Reference()] = b
	return nil
}

func (l *Ledger) FindByReference(_ context.Context, ref booking.Reference) (*booking.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.byRef[ref]
	if !ok {
		return nil, infra.WrapRepoErr(l.logger, infra.KindNotFound, "booking not found", nil)
	}
	return b, nil
}

func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.byRef)
}

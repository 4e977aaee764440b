package booking

import (
	"errors"
	"strings"
	"time"

	"experience-booking/internal/domain/experience"
	"experience-booking/internal/domain/pricing"
	"experience-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrIncompleteSlot   = errors.New("experienceId, date and time are required")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrNegativeDiscount = errors.New("discount cannot be negative")
)

type Services struct {
	Clock      clock.Clock
	References ReferenceGenerator
}

// Booking is created once by the reservation coordinator and never changes afterwards.
type Booking struct {
	id        uuid.UUID
	reference Reference
	slot      experience.SlotKey
	customer  Customer
	quantity  int
	quote     pricing.Quote
	promoCode string
	createdAt time.Time
}

func NewBooking(
	services *Services,
	slot experience.SlotKey,
	customer Customer,
	quote pricing.Quote,
	promoCode string,
) (*Booking, error) {
	if !slot.IsComplete() {
		return nil, ErrIncompleteSlot
	}
	if quote.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if quote.Discount < 0 {
		return nil, ErrNegativeDiscount
	}

	return &Booking{
		id:        uuid.New(),
		reference: services.References.NewReference(),
		slot:      slot,
		customer:  customer,
		quantity:  quote.Quantity,
		quote:     quote,
		promoCode: strings.ToUpper(strings.TrimSpace(promoCode)),
		createdAt: services.Clock.Now().UTC(),
	}, nil
}

func ReconstructBooking(
	id uuid.UUID,
	reference Reference,
	slot experience.SlotKey,
	customer Customer,
	quote pricing.Quote,
	promoCode string,
	createdAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		reference: reference,
		slot:      slot,
		customer:  customer,
		quantity:  quote.Quantity,
		quote:     quote,
		promoCode: promoCode,
		createdAt: createdAt,
	}
}

// ReconstructCustomer skips validation for rows already accepted by the ledger.
func ReconstructCustomer(name, email string) Customer {
	return Customer{name: name, email: email}
}

func (b *Booking) ID() uuid.UUID            { return b.id }
func (b *Booking) Reference() Reference     { return b.reference }
func (b *Booking) Slot() experience.SlotKey { return b.slot }
func (b *Booking) Customer() Customer       { return b.customer }
func (b *Booking) Quantity() int            { return b.quantity }
func (b *Booking) Quote() pricing.Quote     { return b.quote }
func (b *Booking) Discount() int64          { return b.quote.Discount }
func (b *Booking) PromoCode() string        { return b.promoCode }
func (b *Booking) CreatedAt() time.Time     { return b.createdAt }

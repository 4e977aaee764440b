//go:build unit || e2e

package builder

import (
	"time"

	"experience-booking/internal/domain/booking"
	"experience-booking/internal/domain/experience"
	"experience-booking/internal/domain/pricing"
	reqdto "experience-booking/internal/handler/dto/request"
	"experience-booking/internal/pkg/clock"
)

// FixedReferences hands out the given references in order, then repeats the last one.
type FixedReferences struct {
	refs []booking.Reference
	next int
}

func NewFixedReferences(refs ...string) *FixedReferences {
	out := make([]booking.Reference, len(refs))
	for i, r := range refs {
		out[i] = booking.Reference(r)
	}
	return &FixedReferences{refs: out}
}

func (f *FixedReferences) NewReference() booking.Reference {
	if len(f.refs) == 0 {
		return ""
	}
	i := min(f.next, len(f.refs)-1)
	f.next++
	return f.refs[i]
}

type BookingBuilder struct {
	ExperienceID string
	Date         string
	Time         string
	Name         string
	Email        string
	Quantity     int
	BasePrice    int64
	Discount     int64
	PromoCode    string
	Reference    string
	Now          time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ExperienceID: "exp-kayak",
		Date:         "2025-10-22",
		Time:         "07:00 am",
		Name:         "Asha Rao",
		Email:        "asha@example.com",
		Quantity:     1,
		BasePrice:    999,
		Discount:     0,
		Reference:    "AB12CD34",
		Now:          time.Date(2025, 10, 21, 9, 30, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildServices() *booking.Services {
	return &booking.Services{
		Clock:      clock.NewMockClock(b.Now),
		References: NewFixedReferences(b.Reference),
	}
}

func (b *BookingBuilder) BuildSlotKey() experience.SlotKey {
	return experience.NewSlotKey(b.ExperienceID, b.Date, b.Time)
}

func (b *BookingBuilder) BuildQuote() (pricing.Quote, error) {
	return pricing.NewDefaultCalculator().Quote(b.BasePrice, b.Quantity, b.Discount)
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	customer, err := booking.NewCustomer(b.Name, b.Email)
	if err != nil {
		return nil, err
	}
	quote := pricing.Quote{Quantity: b.Quantity, Discount: b.Discount, BasePrice: b.BasePrice}
	if q, qerr := b.BuildQuote(); qerr == nil {
		quote = q
	}
	return booking.NewBooking(b.BuildServices(), b.BuildSlotKey(), customer, quote, b.PromoCode)
}

// Fluent builder methods
func (b *BookingBuilder) BuildRequestDTO() reqdto.CreateBookingRequest {
	quantity := b.Quantity
	discount := b.Discount
	return reqdto.CreateBookingRequest{
		ExperienceID: b.ExperienceID,
		Date:         b.Date,
		Time:         b.Time,
		Name:         b.Name,
		Email:        b.Email,
		Quantity:     &quantity,
		Discount:     &discount,
		PromoCode:    b.PromoCode,
	}
}

func (b *BookingBuilder) WithSlot(experienceID, date, slotTime string) *BookingBuilder {
	b.ExperienceID = experienceID
	b.Date = date
	b.Time = slotTime
	return b
}

func (b *BookingBuilder) WithCustomer(name, email string) *BookingBuilder {
	b.Name = name
	b.Email = email
	return b
}

func (b *BookingBuilder) WithQuantity(quantity int) *BookingBuilder {
	b.Quantity = quantity
	return b
}

func (b *BookingBuilder) WithDiscount(discount int64) *BookingBuilder {
	b.Discount = discount
	return b
}

func (b *BookingBuilder) WithPromoCode(code string) *BookingBuilder {
	b.PromoCode = code
	return b
}

func (b *BookingBuilder) WithReference(ref string) *BookingBuilder {
	b.Reference = ref
	return b
}

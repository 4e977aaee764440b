package shared

import (
	"context"
	"time"

	"experience-booking/internal/domain/booking"
	"experience-booking/internal/domain/experience"
)

// CatalogStore returns experiences with every slot capacity already resolved.
// GetExperience fails with an infra NOT_FOUND error for unknown ids.
type CatalogStore interface {
	ListExperiences(ctx context.Context) ([]*experience.Experience, error)
	GetExperience(ctx context.Context, id string) (*experience.Experience, error)
}

// CatalogWriter replaces whole experiences; used by seeding only.
type CatalogWriter interface {
	UpsertExperience(ctx context.Context, rec ExperienceRecord) error
}

// BookingLedger is insertion-only. Insert must check and write atomically: a second booking
// for the same slot fails with infra.ConstraintBookingSlot, a reused reference with
// infra.ConstraintBookingReference.
type BookingLedger interface {
	Insert(ctx context.Context, b *booking.Booking) error
	FindByReference(ctx context.Context, ref booking.Reference) (*booking.Booking, error)
}

type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, event BookingCreatedEvent) error
}

type BookingCreatedEvent struct {
	Reference    string    `json:"reference"`
	ExperienceID string    `json:"experienceId"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Email        string    `json:"email"`
	Quantity     int       `json:"quantity"`
	Discount     int64     `json:"discount"`
	Total        int64     `json:"total"`
	CreatedAt    time.Time `json:"createdAt"`
}

func NewBookingCreatedEvent(b *booking.Booking) BookingCreatedEvent {
	slot := b.Slot()
	return BookingCreatedEvent{
		Reference:    b.Reference().String(),
		ExperienceID: slot.ExperienceID,
		Date:         slot.Date,
		Time:         slot.Time,
		Email:        b.Customer().Email(),
		Quantity:     b.Quantity(),
		Discount:     b.Discount(),
		Total:        b.Quote().Total,
		CreatedAt:    b.CreatedAt(),
	}
}

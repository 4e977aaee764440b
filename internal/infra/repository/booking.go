package repository

import (
	"context"
	"log/slog"

	"experience-booking/internal/domain/booking"
	"experience-booking/internal/domain/experience"
	"experience-booking/internal/domain/pricing"
	"experience-booking/internal/infra"
	"experience-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	insertBookingSQL = `
INSERT INTO bookings (
    id, reference, experience_id, date, time, name, email,
    quantity, base_price, subtotal, taxes, discount, total, promo_code, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	findBookingByReferenceSQL = `
SELECT id, reference, experience_id, date, time, name, email,
       quantity, base_price, subtotal, taxes, discount, total, promo_code, created_at
FROM bookings
WHERE reference = $1`
)

// BookingRepository is the Postgres Booking Ledger. Slot uniqueness is enforced by the
// bookings_slot_key constraint, so concurrent inserts across processes are safe.
type BookingRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewBookingRepository(pool *pgxpool.Pool, logger *slog.Logger) *BookingRepository {
	return &BookingRepository{
		pool:   pool,
		logger: logger,
	}
}

func (r *BookingRepository) Insert(ctx context.Context, b *booking.Booking) error {
	slot := b.Slot()
	quote := b.Quote()

	_, err := r.pool.Exec(ctx, insertBookingSQL,
		pgconv.UUIDToPgtype(b.ID()),
		b.Reference().String(),
		slot.ExperienceID,
		slot.Date,
		slot.Time,
		b.Customer().Name(),
		b.Customer().Email(),
		b.Quantity(),
		quote.BasePrice,
		quote.Subtotal,
		quote.Taxes,
		quote.Discount,
		quote.Total,
		pgconv.NullableString(b.PromoCode()),
		pgconv.TimeToPgtype(b.CreatedAt()),
	)
	if err != nil {
		if constraint, ok := pgconv.UniqueViolation(err); ok {
			return infra.WrapConstraintErr(r.logger, constraint, "booking violates "+constraint, err)
		}
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to insert booking", err)
	}
	return nil
}

func (r *BookingRepository) FindByReference(ctx context.Context, ref booking.Reference) (*booking.Booking, error) {
	var (
		id           pgtype.UUID
		reference    string
		experienceID string
		date         string
		slotTime     string
		name         string
		email        string
		quote        pricing.Quote
		quantity     int32
		promoCode    pgtype.Text
		createdAt    pgtype.Timestamptz
	)

	err := r.pool.QueryRow(ctx, findBookingByReferenceSQL, ref.String()).Scan(
		&id, &reference, &experienceID, &date, &slotTime, &name, &email,
		&quantity, &quote.BasePrice, &quote.Subtotal, &quote.Taxes, &quote.Discount, &quote.Total,
		&promoCode, &createdAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "booking not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to find booking by reference", err)
	}
	quote.Quantity = int(quantity)

	return booking.ReconstructBooking(
		pgconv.UUIDFromPgtype(id),
		booking.Reference(reference),
		experience.NewSlotKey(experienceID, date, slotTime),
		booking.ReconstructCustomer(name, email),
		quote,
		pgconv.StringFromPgtype(promoCode),
		pgconv.TimeFromPgtype(createdAt).UTC(),
	), nil
}

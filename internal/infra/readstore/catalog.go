package readstore

import (
	"context"
	"log/slog"

	"experience-booking/internal/domain/experience"
	"experience-booking/internal/infra"
	"experience-booking/internal/infra/db"
	"experience-booking/internal/pkg/pgconv"
	"experience-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	listExperiencesSQL = `
SELECT id, title, city, base_price, image_url, short_description, description
FROM experiences
ORDER BY position, id`

	getExperienceSQL = `
SELECT id, title, city, base_price, image_url, short_description, description
FROM experiences
WHERE id = $1`

	// LEFT JOIN keeps days that have no slots
	listSlotsSQL = `
SELECT d.experience_id, d.date, s.time, s.capacity_remaining
FROM experience_days d
JOIN experiences e ON e.id = d.experience_id
LEFT JOIN experience_slots s ON s.experience_id = d.experience_id AND s.date = d.date
WHERE ($1::text IS NULL OR d.experience_id = $1)
ORDER BY e.position, d.experience_id, d.position, s.position`

	upsertExperienceSQL = `
INSERT INTO experiences (id, title, city, base_price, image_url, short_description, description, position)
VALUES ($1, $2, $3, $4, $5, $6, $7, (SELECT COALESCE(MAX(position) + 1, 0) FROM experiences))
ON CONFLICT (id) DO UPDATE SET
    title = EXCLUDED.title,
    city = EXCLUDED.city,
    base_price = EXCLUDED.base_price,
    image_url = EXCLUDED.image_url,
    short_description = EXCLUDED.short_description,
    description = EXCLUDED.description,
    updated_at = NOW()`

	deleteDaysSQL = `DELETE FROM experience_days WHERE experience_id = $1`

	insertDaySQL = `
INSERT INTO experience_days (experience_id, date, position)
VALUES ($1, $2, $3)`

	insertSlotSQL = `
INSERT INTO experience_slots (experience_id, date, time, position, capacity_remaining)
VALUES ($1, $2, $3, $4, $5)`
)

// CatalogReadStore is the Postgres Catalog Store. Day and slot order is kept in position
// columns; NULL capacities are resolved through the capacity policy on every read.
type CatalogReadStore struct {
	pool   *pgxpool.Pool
	policy experience.CapacityPolicy
	logger *slog.Logger
}

func NewCatalogReadStore(pool *pgxpool.Pool, policy experience.CapacityPolicy, logger *slog.Logger) *CatalogReadStore {
	return &CatalogReadStore{
		pool:   pool,
		policy: policy,
		logger: logger,
	}
}

func (r *CatalogReadStore) ListExperiences(ctx context.Context) ([]*experience.Experience, error) {
	rows, err := r.pool.Query(ctx, listExperiencesSQL)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list experiences", err)
	}
	records, err := pgx.CollectRows(rows, scanExperience)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan experiences", err)
	}

	if err := r.attachDays(ctx, r.pool, records, pgtype.Text{}); err != nil {
		return nil, err
	}

	out := make([]*experience.Experience, 0, len(records))
	for _, rec := range records {
		exp, err := rec.ToDomain(r.policy)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to decode experience "+rec.ID, err)
		}
		out = append(out, exp)
	}
	return out, nil
}

func (r *CatalogReadStore) GetExperience(ctx context.Context, id string) (*experience.Experience, error) {
	rec, err := shared.RunInTx(ctx, r.pool, func(tx pgx.Tx) (*shared.ExperienceRecord, error) {
		rows, err := tx.Query(ctx, getExperienceSQL, id)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to get experience", err)
		}
		rec, err := pgx.CollectExactlyOneRow(rows, scanExperience)
		if err != nil {
			if pgconv.IsNoRows(err) {
				return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "experience not found", err)
			}
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan experience", err)
		}

		records := []*shared.ExperienceRecord{rec}
		if err := r.attachDays(ctx, tx, records, pgtype.Text{String: id, Valid: true}); err != nil {
			return nil, err
		}
		return rec, nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) || infra.IsKind(err, infra.KindDBFailure) {
			return nil, err
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to read experience", err)
	}

	exp, err := rec.ToDomain(r.policy)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to decode experience "+id, err)
	}
	return exp, nil
}

// UpsertExperience replaces an experience and all of its days and slots. A replaced
// experience keeps its list position.
func (r *CatalogReadStore) UpsertExperience(ctx context.Context, rec shared.ExperienceRecord) error {
	if _, err := rec.ToDomain(r.policy); err != nil {
		return err
	}

	_, err := shared.WithDefaultRetry(ctx, r.pool, func(tx pgx.Tx) (struct{}, error) {
		if _, err := tx.Exec(ctx, upsertExperienceSQL,
			rec.ID, rec.Title, rec.City, rec.BasePrice, rec.ImageURL, rec.ShortDescription, rec.Description,
		); err != nil {
			return struct{}{}, err
		}
		if _, err := tx.Exec(ctx, deleteDaysSQL, rec.ID); err != nil {
			return struct{}{}, err
		}

		batch := &pgx.Batch{}
		for dayPos, day := range rec.Days {
			date, err := pgconv.DateToPgtype(day.Date)
			if err != nil {
				return struct{}{}, err
			}
			batch.Queue(insertDaySQL, rec.ID, date, dayPos)
			for slotPos, slot := range day.Slots {
				batch.Queue(insertSlotSQL, rec.ID, date, slot.Time, slotPos, pgconv.IntPtrToPgtype(slot.Capacity))
			}
		}
		return struct{}{}, tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to upsert experience "+rec.ID, err)
	}
	return nil
}

func (r *CatalogReadStore) attachDays(ctx context.Context, q db.DBTX, records []*shared.ExperienceRecord, onlyID pgtype.Text) error {
	byID := make(map[string]*shared.ExperienceRecord, len(records))
	for _, rec := range records {
		byID[rec.ID] = rec
	}

	rows, err := q.Query(ctx, listSlotsSQL, onlyID)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list slots", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			experienceID string
			date         pgtype.Date
			slotTime     pgtype.Text
			capacity     pgtype.Int4
		)
		if err := rows.Scan(&experienceID, &date, &slotTime, &capacity); err != nil {
			return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan slot", err)
		}
		rec, ok := byID[experienceID]
		if !ok {
			continue
		}

		dateStr := pgconv.DateFromPgtype(date)
		if n := len(rec.Days); n == 0 || rec.Days[n-1].Date != dateStr {
			rec.Days = append(rec.Days, shared.DayRecord{Date: dateStr, Slots: []shared.SlotRecord{}})
		}
		if !slotTime.Valid {
			continue
		}
		day := &rec.Days[len(rec.Days)-1]
		day.Slots = append(day.Slots, shared.SlotRecord{
			Time:     slotTime.String,
			Capacity: pgconv.IntPtrFromPgtype(capacity),
		})
	}
	if err := rows.Err(); err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate slots", err)
	}
	return nil
}

func scanExperience(row pgx.CollectableRow) (*shared.ExperienceRecord, error) {
	rec := &shared.ExperienceRecord{Days: []shared.DayRecord{}}
	err := row.Scan(&rec.ID, &rec.Title, &rec.City, &rec.BasePrice, &rec.ImageURL, &rec.ShortDescription, &rec.Description)
	return rec, err
}

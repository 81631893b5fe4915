package repository

import (
	"context"
	"time"

	"venuebook/internal/domain/booking"
	"venuebook/internal/infra/db"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const historyTable = "booking_status_history"

var historyColumns = []any{
	"id",
	"booking_id",
	"from_status",
	"to_status",
	"actor",
	"note",
	"recorded_at",
}

type HistoryRepository struct{}

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{}
}

func (r *HistoryRepository) Append(ctx context.Context, dbtx db.DBTX, rec booking.HistoryRecord) error {
	ds := dialect.Insert(historyTable).Rows(goqu.Record{
		"id":          rec.ID,
		"booking_id":  rec.BookingID,
		"from_status": rec.FromStatus.String(),
		"to_status":   rec.ToStatus.String(),
		"actor":       rec.Actor,
		"note":        rec.Note,
		"recorded_at": rec.RecordedAt,
	})

	query, _, err := ds.ToSQL()
	if err != nil {
		return wrapDBErr("failed to build history insert query", err)
	}

	if _, err := dbtx.Exec(ctx, query); err != nil {
		return wrapDBErr("failed to append status history", err)
	}
	return nil
}

func (r *HistoryRepository) ListByBooking(ctx context.Context, dbtx db.DBTX, bookingID uuid.UUID) ([]booking.HistoryRecord, error) {
	ds := dialect.From(historyTable).
		Select(historyColumns...).
		Where(goqu.Ex{"booking_id": bookingID}).
		Order(goqu.I("recorded_at").Asc())

	query, _, err := ds.ToSQL()
	if err != nil {
		return nil, wrapDBErr("failed to build history select query", err)
	}

	rows, err := dbtx.Query(ctx, query)
	if err != nil {
		return nil, wrapDBErr("failed to list status history", err)
	}
	defer rows.Close()

	var records []booking.HistoryRecord
	for rows.Next() {
		var (
			id         uuid.UUID
			bkID       uuid.UUID
			fromStatus string
			toStatus   string
			actor      string
			note       *string
			recordedAt time.Time
		)
		if err := rows.Scan(&id, &bkID, &fromStatus, &toStatus, &actor, &note, &recordedAt); err != nil {
			return nil, wrapDBErr("failed to scan status history row", err)
		}
		records = append(records, booking.HistoryRecord{
			ID:         id,
			BookingID:  bkID,
			FromStatus: booking.Status(fromStatus),
			ToStatus:   booking.Status(toStatus),
			Actor:      actor,
			Note:       note,
			RecordedAt: recordedAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr("failed to iterate status history rows", err)
	}
	return records, nil
}

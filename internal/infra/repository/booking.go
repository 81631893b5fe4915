package repository

import (
	"context"
	"time"

	"venuebook/internal/domain/booking"
	"venuebook/internal/infra/db"
	"venuebook/internal/pkg/pgconv"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const bookingsTable = "bookings"

var bookingColumns = []any{
	"id",
	"customer_email",
	"status",
	"response_token",
	"token_expires_at",
	"deposit_evidence_url",
	"created_at",
	"updated_at",
}

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (r *BookingRepository) Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error {
	ds := dialect.Insert(bookingsTable).Rows(goqu.Record{
		"id":                   b.ID(),
		"customer_email":       b.CustomerEmail(),
		"status":               b.Status().String(),
		"response_token":       textOrNil(b.ResponseToken()),
		"token_expires_at":     epochOrNil(b.TokenExpiresAt()),
		"deposit_evidence_url": b.DepositEvidenceURL(),
		"created_at":           b.CreatedAt(),
		"updated_at":           b.UpdatedAt(),
	})

	query, _, err := ds.ToSQL()
	if err != nil {
		return wrapDBErr("failed to build booking insert query", err)
	}

	if _, err := dbtx.Exec(ctx, query); err != nil {
		return wrapDBErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	ds := dialect.From(bookingsTable).
		Select(bookingColumns...).
		Where(goqu.Ex{"id": id})

	query, _, err := ds.ToSQL()
	if err != nil {
		return nil, wrapDBErr("failed to build booking select query", err)
	}

	var (
		rowID          uuid.UUID
		customerEmail  string
		status         string
		responseToken  *string
		tokenExpiresAt *int64
		evidenceURL    *string
		createdAt      int64
		updatedAt      int64
	)
	err = dbtx.QueryRow(ctx, query).Scan(
		&rowID, &customerEmail, &status, &responseToken,
		&tokenExpiresAt, &evidenceURL, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, notFoundErr("booking not found")
		}
		return nil, wrapDBErr("failed to find booking", err)
	}

	return booking.ReconstructBooking(
		rowID,
		customerEmail,
		booking.Status(status),
		textOrEmpty(responseToken),
		epochOrZero(tokenExpiresAt),
		evidenceURL,
		createdAt,
		updatedAt,
	), nil
}

// UpdateGuarded is the optimistic version guard: the row is written only
// when updated_at still equals the stamp the caller read. The new stamp is
// GREATEST(now, updated_at+1) so it moves strictly forward even when two
// writes land within the same second. Zero rows means either the row is
// gone or someone else won the race; a follow-up existence probe decides
// which, because callers must be able to tell Conflict from NotFound.
func (r *BookingRepository) UpdateGuarded(ctx context.Context, dbtx db.DBTX, b *booking.Booking, expectedUpdatedAt int64, now time.Time) (int64, error) {
	ds := dialect.Update(bookingsTable).
		Set(goqu.Record{
			"status":               b.Status().String(),
			"response_token":       textOrNil(b.ResponseToken()),
			"token_expires_at":     epochOrNil(b.TokenExpiresAt()),
			"deposit_evidence_url": b.DepositEvidenceURL(),
			"updated_at":           goqu.L("GREATEST(?, updated_at + 1)", now.Unix()),
		}).
		Where(goqu.Ex{"id": b.ID(), "updated_at": expectedUpdatedAt}).
		Returning("updated_at")

	query, _, err := ds.ToSQL()
	if err != nil {
		return 0, wrapDBErr("failed to build booking update query", err)
	}

	var stamp int64
	err = dbtx.QueryRow(ctx, query).Scan(&stamp)
	if err != nil {
		if pgconv.IsNoRows(err) {
			exists, probeErr := r.exists(ctx, dbtx, b.ID())
			if probeErr != nil {
				return 0, probeErr
			}
			if !exists {
				return 0, notFoundErr("booking not found")
			}
			return 0, conflictErr("booking was modified concurrently")
		}
		return 0, wrapDBErr("failed to update booking", err)
	}
	return stamp, nil
}

// DeleteGuarded removes the row under the same version guard as updates.
func (r *BookingRepository) DeleteGuarded(ctx context.Context, dbtx db.DBTX, id uuid.UUID, expectedUpdatedAt int64) error {
	ds := dialect.Delete(bookingsTable).
		Where(goqu.Ex{"id": id, "updated_at": expectedUpdatedAt})

	query, _, err := ds.ToSQL()
	if err != nil {
		return wrapDBErr("failed to build booking delete query", err)
	}

	tag, err := dbtx.Exec(ctx, query)
	if err != nil {
		return wrapDBErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		exists, probeErr := r.exists(ctx, dbtx, id)
		if probeErr != nil {
			return probeErr
		}
		if !exists {
			return notFoundErr("booking not found")
		}
		return conflictErr("booking was modified concurrently")
	}
	return nil
}

func (r *BookingRepository) exists(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (bool, error) {
	ds := dialect.From(bookingsTable).
		Select(goqu.L("1")).
		Where(goqu.Ex{"id": id})

	query, _, err := ds.ToSQL()
	if err != nil {
		return false, wrapDBErr("failed to build booking exists query", err)
	}

	var one int
	err = dbtx.QueryRow(ctx, query).Scan(&one)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return false, nil
		}
		return false, wrapDBErr("failed to probe booking existence", err)
	}
	return true, nil
}

func textOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func textOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func epochOrNil(v int64) *int64 {
	if v == 0 {
		return nil
	}
	return &v
}

func epochOrZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

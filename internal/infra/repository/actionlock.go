package repository

import (
	"context"
	"time"

	"venuebook/internal/domain/actionlock"
	"venuebook/internal/infra/db"
	"venuebook/internal/pkg/pgconv"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const locksTable = "action_locks"

var lockColumns = []any{
	"id",
	"resource_type",
	"resource_id",
	"action",
	"admin_email",
	"admin_name",
	"locked_at",
	"expires_at",
}

// LockRepository persists lease rows. None of these statements run inside a
// shared transaction: the acquire flow is deliberately a sequence of
// independent atomic steps whose races are resolved by the UNIQUE tuple
// constraint plus the verify re-select, not by transaction isolation.
type LockRepository struct{}

func NewLockRepository() *LockRepository {
	return &LockRepository{}
}

// DeleteExpired clears dead rows for one tuple so a fresh insert can land.
func (r *LockRepository) DeleteExpired(ctx context.Context, dbtx db.DBTX, key actionlock.Key, now time.Time) (int64, error) {
	ds := dialect.Delete(locksTable).Where(goqu.Ex{
		"resource_type": key.ResourceType.String(),
		"resource_id":   key.ResourceID,
		"action":        key.Action,
		"expires_at":    goqu.Op{"lte": now},
	})

	query, _, err := ds.ToSQL()
	if err != nil {
		return 0, wrapDBErr("failed to build expired lock delete query", err)
	}

	tag, err := dbtx.Exec(ctx, query)
	if err != nil {
		return 0, wrapDBErr("failed to delete expired locks", err)
	}
	return tag.RowsAffected(), nil
}

// Find returns the row currently occupying the tuple, expired or not.
func (r *LockRepository) Find(ctx context.Context, dbtx db.DBTX, key actionlock.Key) (*actionlock.Lock, error) {
	ds := dialect.From(locksTable).
		Select(lockColumns...).
		Where(goqu.Ex{
			"resource_type": key.ResourceType.String(),
			"resource_id":   key.ResourceID,
			"action":        key.Action,
		})

	query, _, err := ds.ToSQL()
	if err != nil {
		return nil, wrapDBErr("failed to build lock select query", err)
	}

	return scanLock(dbtx.QueryRow(ctx, query))
}

func (r *LockRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*actionlock.Lock, error) {
	ds := dialect.From(locksTable).
		Select(lockColumns...).
		Where(goqu.Ex{"id": id})

	query, _, err := ds.ToSQL()
	if err != nil {
		return nil, wrapDBErr("failed to build lock select query", err)
	}

	return scanLock(dbtx.QueryRow(ctx, query))
}

// Insert lands the row only when the tuple is free; the UNIQUE constraint
// swallows the race and reports it as zero rows affected.
func (r *LockRepository) Insert(ctx context.Context, dbtx db.DBTX, lock *actionlock.Lock) (bool, error) {
	key := lock.Key()
	holder := lock.Holder()

	ds := dialect.Insert(locksTable).
		Rows(goqu.Record{
			"id":            lock.ID(),
			"resource_type": key.ResourceType.String(),
			"resource_id":   key.ResourceID,
			"action":        key.Action,
			"admin_email":   holder.Email,
			"admin_name":    holder.Name,
			"locked_at":     lock.LockedAt(),
			"expires_at":    lock.ExpiresAt(),
		}).
		OnConflict(goqu.DoNothing())

	query, _, err := ds.ToSQL()
	if err != nil {
		return false, wrapDBErr("failed to build lock insert query", err)
	}

	tag, err := dbtx.Exec(ctx, query)
	if err != nil {
		return false, wrapDBErr("failed to insert lock", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ExtendByHolder bumps the expiry only while the lease is both still owned
// by this identity and not yet expired. An expired lease must not be
// resurrected: someone else may have already acquired the tuple.
func (r *LockRepository) ExtendByHolder(ctx context.Context, dbtx db.DBTX, id uuid.UUID, holderEmail string, newExpiresAt, now time.Time) (bool, error) {
	ds := dialect.Update(locksTable).
		Set(goqu.Record{"expires_at": newExpiresAt}).
		Where(goqu.Ex{
			"id":          id,
			"admin_email": holderEmail,
			"expires_at":  goqu.Op{"gt": now},
		})

	query, _, err := ds.ToSQL()
	if err != nil {
		return false, wrapDBErr("failed to build lock extend query", err)
	}

	tag, err := dbtx.Exec(ctx, query)
	if err != nil {
		return false, wrapDBErr("failed to extend lock", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteByHolder releases the holder's own row. Deleting an already
// released or stolen lease affects zero rows, which is fine: release is
// idempotent.
func (r *LockRepository) DeleteByHolder(ctx context.Context, dbtx db.DBTX, id uuid.UUID, holderEmail string) (int64, error) {
	ds := dialect.Delete(locksTable).Where(goqu.Ex{
		"id":          id,
		"admin_email": holderEmail,
	})

	query, _, err := ds.ToSQL()
	if err != nil {
		return 0, wrapDBErr("failed to build lock release query", err)
	}

	tag, err := dbtx.Exec(ctx, query)
	if err != nil {
		return 0, wrapDBErr("failed to release lock", err)
	}
	return tag.RowsAffected(), nil
}

// SweepExpired clears dead rows installation-wide, bounded per invocation.
func (r *LockRepository) SweepExpired(ctx context.Context, dbtx db.DBTX, now time.Time, limit int) (int64, error) {
	sub := dialect.From(locksTable).
		Select("id").
		Where(goqu.Ex{"expires_at": goqu.Op{"lte": now}}).
		Order(goqu.I("expires_at").Asc()).
		Limit(uint(limit))

	ds := dialect.Delete(locksTable).Where(goqu.C("id").In(sub))

	query, _, err := ds.ToSQL()
	if err != nil {
		return 0, wrapDBErr("failed to build lock sweep query", err)
	}

	tag, err := dbtx.Exec(ctx, query)
	if err != nil {
		return 0, wrapDBErr("failed to sweep expired locks", err)
	}
	return tag.RowsAffected(), nil
}

// ListLive returns every unexpired lease for the admin dashboard.
func (r *LockRepository) ListLive(ctx context.Context, dbtx db.DBTX, now time.Time) ([]*actionlock.Lock, error) {
	ds := dialect.From(locksTable).
		Select(lockColumns...).
		Where(goqu.Ex{"expires_at": goqu.Op{"gt": now}}).
		Order(goqu.I("locked_at").Asc())

	query, _, err := ds.ToSQL()
	if err != nil {
		return nil, wrapDBErr("failed to build live lock list query", err)
	}

	rows, err := dbtx.Query(ctx, query)
	if err != nil {
		return nil, wrapDBErr("failed to list live locks", err)
	}
	defer rows.Close()

	var locks []*actionlock.Lock
	for rows.Next() {
		lock, err := scanLock(rows)
		if err != nil {
			return nil, err
		}
		locks = append(locks, lock)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr("failed to iterate live lock rows", err)
	}
	return locks, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLock(row rowScanner) (*actionlock.Lock, error) {
	var (
		id           uuid.UUID
		resourceType string
		resourceID   string
		action       string
		adminEmail   string
		adminName    string
		lockedAt     time.Time
		expiresAt    time.Time
	)
	err := row.Scan(&id, &resourceType, &resourceID, &action, &adminEmail, &adminName, &lockedAt, &expiresAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, notFoundErr("lock not found")
		}
		return nil, wrapDBErr("failed to scan lock row", err)
	}

	key := actionlock.Key{
		ResourceType: actionlock.ResourceType(resourceType),
		ResourceID:   resourceID,
		Action:       action,
	}
	holder := actionlock.Holder{Email: adminEmail, Name: adminName}
	return actionlock.ReconstructLock(id, key, holder, lockedAt, expiresAt), nil
}

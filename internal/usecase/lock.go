package usecase

import (
	"context"
	"log/slog"
	"time"

	"venuebook/internal/domain/actionlock"
	"venuebook/internal/infra/broadcast"
	"venuebook/internal/infra/db"
	"venuebook/internal/pkg/clock"
	"venuebook/internal/pkg/config"
	"venuebook/internal/pkg/errs"
	"venuebook/internal/usecase/shared"

	"github.com/google/uuid"
)

// Broadcaster fans lock and booking events out to live admin sessions.
// Delivery is best-effort; pollers re-derive state from the database.
type Broadcaster interface {
	Publish(topic, kind string, payload any)
}

// LockUseCase is the lease-based mutual exclusion primitive for admin
// operations. Contention is a value (nil lease / false), never an error;
// only storage faults propagate.
type LockUseCase interface {
	Acquire(ctx context.Context, key actionlock.Key, holder actionlock.Holder) (*actionlock.Lock, error)
	Release(ctx context.Context, lockID uuid.UUID, holder actionlock.Holder) (bool, error)
	Extend(ctx context.Context, lockID uuid.UUID, holder actionlock.Holder) (bool, error)
	Status(ctx context.Context, key actionlock.Key) (*shared.LockStatusView, error)
	ListLive(ctx context.Context) ([]*actionlock.Lock, error)
	SweepExpired(ctx context.Context) (int64, error)
}

// acquireState makes the acquire race windows explicit. Each step is an
// independent atomic statement; correctness comes from the UNIQUE tuple
// constraint plus the final verifying re-select, not from a transaction.
type acquireState int

const (
	stateIdle acquireState = iota
	stateExtending
	stateInserting
	stateVerifying
)

type lockEvent struct {
	ResourceType string    `json:"resource_type"`
	ResourceID   string    `json:"resource_id"`
	Action       string    `json:"action"`
	HolderEmail  string    `json:"holder_email,omitempty"`
	HolderName   string    `json:"holder_name,omitempty"`
	ExpiresAt    time.Time `json:"expires_at,omitempty"`
}

type lockUseCaseImpl struct {
	uow   shared.UnitOfWork
	locks shared.LockRepository
	hub   Broadcaster
	clock clock.Clock
	cfg   config.LockConfig
}

func NewLockUseCase(
	uow shared.UnitOfWork,
	locks shared.LockRepository,
	hub Broadcaster,
	clk clock.Clock,
	cfg config.LockConfig,
) LockUseCase {
	return &lockUseCaseImpl{
		uow:   uow,
		locks: locks,
		hub:   hub,
		clock: clk,
		cfg:   cfg,
	}
}

// Acquire claims the tuple for holder or reports contention with a nil
// lease. A live lock held by the same identity is extended in place; an
// extend that loses the expiry race falls through to fresh insertion, and
// every insertion is verified by re-select because two requests with the
// same identity can race the same tuple.
func (l *lockUseCaseImpl) Acquire(ctx context.Context, key actionlock.Key, holder actionlock.Holder) (*actionlock.Lock, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	var acquired *actionlock.Lock
	err := l.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		now := l.clock.Now()
		state := stateIdle
		for {
			switch state {
			case stateIdle:
				if _, err := l.locks.DeleteExpired(ctx, dbtx, key, now); err != nil {
					return err
				}
				existing, err := l.locks.Find(ctx, dbtx, key)
				switch {
				case err != nil && errs.IsKind(err, errs.KindNotFound):
					state = stateInserting
				case err != nil:
					return err
				case existing.Expired(now):
					// DeleteExpired raced a concurrent re-insert; treat as free.
					state = stateInserting
				case !existing.HeldBy(holder.Email):
					return nil // contention
				default:
					acquired = existing
					state = stateExtending
				}

			case stateExtending:
				newExpiry := now.Add(l.cfg.LeaseDuration)
				ok, err := l.locks.ExtendByHolder(ctx, dbtx, acquired.ID(), holder.Email, newExpiry, now)
				if err != nil {
					return err
				}
				if ok {
					acquired = actionlock.ReconstructLock(acquired.ID(), key, holder, acquired.LockedAt(), newExpiry)
					return nil
				}
				// Lease lapsed between Find and the extend; start over fresh.
				acquired = nil
				state = stateInserting

			case stateInserting:
				fresh, err := actionlock.NewLock(key, holder, now, l.cfg.LeaseDuration)
				if err != nil {
					return err
				}
				if _, err := l.locks.Insert(ctx, dbtx, fresh); err != nil {
					return err
				}
				state = stateVerifying

			case stateVerifying:
				// Whoever's insert landed the row owns the tuple, including
				// the duplicate-submit case where both requests carry the
				// same identity.
				winner, err := l.locks.Find(ctx, dbtx, key)
				if err != nil {
					if errs.IsKind(err, errs.KindNotFound) {
						return nil // swept between insert and verify
					}
					return err
				}
				if winner.HeldBy(holder.Email) && !winner.Expired(now) {
					acquired = winner
				}
				return nil
			}
		}
	})
	if err != nil {
		return nil, err
	}
	if acquired != nil {
		l.publish("lock_acquired", acquired.Key(), acquired)
	}
	return acquired, nil
}

// Release deletes the lock only when holder still owns it. Releasing a
// lock that expired or changed hands is an idempotent no-op.
func (l *lockUseCaseImpl) Release(ctx context.Context, lockID uuid.UUID, holder actionlock.Holder) (bool, error) {
	var lock *actionlock.Lock
	var released bool
	err := l.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		found, err := l.locks.FindByID(ctx, dbtx, lockID)
		if err != nil {
			if errs.IsKind(err, errs.KindNotFound) {
				return nil
			}
			return err
		}
		lock = found
		deleted, err := l.locks.DeleteByHolder(ctx, dbtx, lockID, holder.Email)
		if err != nil {
			return err
		}
		released = deleted > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	if released {
		l.publish("lock_released", lock.Key(), nil)
	}
	return released, nil
}

// Extend bumps the lease expiry if holder still owns a live lock. A false
// result means the lease is gone and the caller must stop treating itself
// as the holder.
func (l *lockUseCaseImpl) Extend(ctx context.Context, lockID uuid.UUID, holder actionlock.Holder) (bool, error) {
	var lock *actionlock.Lock
	var extended bool
	var newExpiry time.Time
	err := l.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		now := l.clock.Now()
		newExpiry = now.Add(l.cfg.LeaseDuration)
		ok, err := l.locks.ExtendByHolder(ctx, dbtx, lockID, holder.Email, newExpiry, now)
		if err != nil {
			return err
		}
		extended = ok
		if !ok {
			return nil
		}
		found, err := l.locks.FindByID(ctx, dbtx, lockID)
		if err != nil {
			if errs.IsKind(err, errs.KindNotFound) {
				extended = false
				return nil
			}
			return err
		}
		lock = found
		return nil
	})
	if err != nil {
		return false, err
	}
	if extended && lock != nil {
		l.publish("lock_extended", lock.Key(), lock)
	}
	return extended, nil
}

// Status projects the tuple's lock state for UI polling.
func (l *lockUseCaseImpl) Status(ctx context.Context, key actionlock.Key) (*shared.LockStatusView, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	view := &shared.LockStatusView{
		ResourceType: key.ResourceType.String(),
		ResourceID:   key.ResourceID,
		Action:       key.Action,
	}
	err := l.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		lock, err := l.locks.Find(ctx, dbtx, key)
		if err != nil {
			if errs.IsKind(err, errs.KindNotFound) {
				return nil
			}
			return err
		}
		if lock.Expired(l.clock.Now()) {
			return nil
		}
		expiresAt := lock.ExpiresAt()
		view.Locked = true
		view.HolderEmail = lock.Holder().Email
		view.HolderName = lock.Holder().Name
		view.ExpiresAt = &expiresAt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// ListLive returns every non-expired lock, oldest first.
func (l *lockUseCaseImpl) ListLive(ctx context.Context) ([]*actionlock.Lock, error) {
	var live []*actionlock.Lock
	err := l.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		locks, err := l.locks.ListLive(ctx, dbtx, l.clock.Now())
		if err != nil {
			return err
		}
		live = locks
		return nil
	})
	if err != nil {
		return nil, err
	}
	return live, nil
}

// SweepExpired reclaims expired lock rows in bounded batches. Meant to be
// triggered periodically; acquire also reclaims lazily per tuple.
func (l *lockUseCaseImpl) SweepExpired(ctx context.Context) (int64, error) {
	var removed int64
	err := l.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		n, err := l.locks.SweepExpired(ctx, dbtx, l.clock.Now(), l.cfg.SweepBatch)
		if err != nil {
			return err
		}
		removed = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		slog.Info("swept expired action locks", "removed", removed)
		l.hub.Publish(broadcast.TopicLocks, "locks_swept", map[string]int64{"removed": removed})
	}
	return removed, nil
}

func (l *lockUseCaseImpl) publish(kind string, key actionlock.Key, lock *actionlock.Lock) {
	ev := lockEvent{
		ResourceType: key.ResourceType.String(),
		ResourceID:   key.ResourceID,
		Action:       key.Action,
	}
	if lock != nil {
		ev.HolderEmail = lock.Holder().Email
		ev.HolderName = lock.Holder().Name
		ev.ExpiresAt = lock.ExpiresAt()
	}
	l.hub.Publish(broadcast.TopicLocks, kind, ev)
}

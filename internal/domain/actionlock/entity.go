package actionlock

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidResourceType = errors.New("invalid lock resource type")
	ErrEmptyResourceID     = errors.New("lock resource id is required")
	ErrEmptyAction         = errors.New("lock action is required")
	ErrEmptyHolderEmail    = errors.New("lock holder email is required")
	ErrNonPositiveLease    = errors.New("lease duration must be positive")
)

// Lock is one lease row. A row past expiresAt is dead weight waiting for
// cleanup; expiry alone releases the claim, holding the row does not.
type Lock struct {
	id        uuid.UUID
	key       Key
	holder    Holder
	lockedAt  time.Time
	expiresAt time.Time
}

func NewLock(key Key, holder Holder, now time.Time, lease time.Duration) (*Lock, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	if holder.Email == "" {
		return nil, ErrEmptyHolderEmail
	}
	if lease <= 0 {
		return nil, ErrNonPositiveLease
	}

	return &Lock{
		id:        uuid.New(),
		key:       key,
		holder:    holder,
		lockedAt:  now,
		expiresAt: now.Add(lease),
	}, nil
}

func ReconstructLock(id uuid.UUID, key Key, holder Holder, lockedAt, expiresAt time.Time) *Lock {
	return &Lock{
		id:        id,
		key:       key,
		holder:    holder,
		lockedAt:  lockedAt,
		expiresAt: expiresAt,
	}
}

func (l *Lock) Expired(now time.Time) bool {
	return !now.Before(l.expiresAt)
}

// HeldBy compares holder identity by email only.
func (l *Lock) HeldBy(email string) bool {
	return l.holder.Email == email
}

// Remaining reports how much lease is left, zero when already expired.
func (l *Lock) Remaining(now time.Time) time.Duration {
	if l.Expired(now) {
		return 0
	}
	return l.expiresAt.Sub(now)
}

func (l *Lock) ID() uuid.UUID        { return l.id }
func (l *Lock) Key() Key             { return l.key }
func (l *Lock) Holder() Holder       { return l.holder }
func (l *Lock) LockedAt() time.Time  { return l.lockedAt }
func (l *Lock) ExpiresAt() time.Time { return l.expiresAt }

//go:build unit || e2e

package builder

import (
	"time"

	"venuebook/internal/domain/actionlock"

	"github.com/google/uuid"
)

type LockBuilder struct {
	ID           uuid.UUID
	ResourceType actionlock.ResourceType
	ResourceID   string
	Action       string
	AdminEmail   string
	AdminName    string
	LockedAt     time.Time
	ExpiresAt    time.Time
}

func NewLockBuilder() *LockBuilder {
	now := time.Now().UTC()
	return &LockBuilder{
		ID:           uuid.New(),
		ResourceType: actionlock.ResourceBooking,
		ResourceID:   uuid.NewString(),
		Action:       "respond",
		AdminEmail:   "admin@example.com",
		AdminName:    "Admin One",
		LockedAt:     now,
		ExpiresAt:    now.Add(30 * time.Second),
	}
}

func (l *LockBuilder) With(mutate func(*LockBuilder)) *LockBuilder {
	mutate(l)
	return l
}

// Build methods
func (l *LockBuilder) BuildDomain() *actionlock.Lock {
	return actionlock.ReconstructLock(l.ID, l.BuildKey(), l.BuildHolder(), l.LockedAt, l.ExpiresAt)
}

func (l *LockBuilder) BuildKey() actionlock.Key {
	return actionlock.Key{
		ResourceType: l.ResourceType,
		ResourceID:   l.ResourceID,
		Action:       l.Action,
	}
}

func (l *LockBuilder) BuildHolder() actionlock.Holder {
	return actionlock.Holder{
		Email: l.AdminEmail,
		Name:  l.AdminName,
	}
}

// Fluent builder methods
func (l *LockBuilder) WithResourceType(rt actionlock.ResourceType) *LockBuilder {
	l.ResourceType = rt
	return l
}

func (l *LockBuilder) WithResourceID(id string) *LockBuilder {
	l.ResourceID = id
	return l
}

func (l *LockBuilder) WithAction(action string) *LockBuilder {
	l.Action = action
	return l
}

func (l *LockBuilder) WithHolder(email, name string) *LockBuilder {
	l.AdminEmail = email
	l.AdminName = name
	return l
}

func (l *LockBuilder) WithExpiresAt(at time.Time) *LockBuilder {
	l.ExpiresAt = at
	return l
}

func (l *LockBuilder) AsExpired(now time.Time) *LockBuilder {
	l.LockedAt = now.Add(-time.Minute)
	l.ExpiresAt = now.Add(-time.Second)
	return l
}

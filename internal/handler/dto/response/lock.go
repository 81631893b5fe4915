package response

import (
	"time"

	"venuebook/internal/domain/actionlock"
	"venuebook/internal/usecase/shared"

	"github.com/google/uuid"
)

type LockResponse struct {
	ID           uuid.UUID `json:"id"`
	ResourceType string    `json:"resourceType"`
	ResourceID   string    `json:"resourceId"`
	Action       string    `json:"action"`
	HolderEmail  string    `json:"holderEmail"`
	HolderName   string    `json:"holderName"`
	LockedAt     time.Time `json:"lockedAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

type LockStatusResponse struct {
	ResourceType string     `json:"resourceType"`
	ResourceID   string     `json:"resourceId"`
	Action       string     `json:"action"`
	Locked       bool       `json:"locked"`
	HolderEmail  string     `json:"holderEmail,omitempty"`
	HolderName   string     `json:"holderName,omitempty"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
}

func FromLock(l *actionlock.Lock) *LockResponse {
	return &LockResponse{
		ID:           l.ID(),
		ResourceType: l.Key().ResourceType.String(),
		ResourceID:   l.Key().ResourceID,
		Action:       l.Key().Action,
		HolderEmail:  l.Holder().Email,
		HolderName:   l.Holder().Name,
		LockedAt:     l.LockedAt(),
		ExpiresAt:    l.ExpiresAt(),
	}
}

func FromLocks(locks []*actionlock.Lock) []*LockResponse {
	resp := make([]*LockResponse, len(locks))
	for i, l := range locks {
		resp[i] = FromLock(l)
	}
	return resp
}

func FromLockStatusView(v *shared.LockStatusView) *LockStatusResponse {
	return &LockStatusResponse{
		ResourceType: v.ResourceType,
		ResourceID:   v.ResourceID,
		Action:       v.Action,
		Locked:       v.Locked,
		HolderEmail:  v.HolderEmail,
		HolderName:   v.HolderName,
		ExpiresAt:    v.ExpiresAt,
	}
}

package shared

import (
	"time"

	"github.com/google/uuid"
)

// AdminIdentity is the authenticated actor handed in by the gateway. The
// core never authenticates anyone; it only consumes this identity for lock
// ownership and audit attribution.
type AdminIdentity struct {
	Email string
	Name  string
}

type LockStatusView struct {
	ResourceType string
	ResourceID   string
	Action       string
	Locked       bool
	HolderEmail  string
	HolderName   string
	ExpiresAt    *time.Time
}

type BookingView struct {
	ID                 uuid.UUID
	CustomerEmail      string
	Status             string
	DepositEvidenceURL *string
	TokenExpiresAt     int64
	CreatedAt          int64
	UpdatedAt          int64
	History            []HistoryView
}

type HistoryView struct {
	FromStatus string
	ToStatus   string
	Actor      string
	Note       *string
	RecordedAt time.Time
}

type QueueRunReport struct {
	Claimed   int
	Succeeded int
	Retried   int
	Failed    int
	Remaining int64
}

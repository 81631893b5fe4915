package booking

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActorCustomer = "customer"
	ActorSystem   = "system"
)

// HistoryRecord is one append-only audit row. Records are written in the
// same transaction as the status change they describe and never updated.
type HistoryRecord struct {
	ID         uuid.UUID
	BookingID  uuid.UUID
	FromStatus Status
	ToStatus   Status
	Actor      string
	Note       *string
	RecordedAt time.Time
}

func NewHistoryRecord(bookingID uuid.UUID, from, to Status, actor string, note *string, recordedAt time.Time) HistoryRecord {
	return HistoryRecord{
		ID:         uuid.New(),
		BookingID:  bookingID,
		FromStatus: from,
		ToStatus:   to,
		Actor:      actor,
		Note:       note,
		RecordedAt: recordedAt,
	}
}

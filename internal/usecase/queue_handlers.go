package usecase

import (
	"context"

	"venuebook/internal/domain/retryjob"
)

// Mailer delivers the response-link email. Template rendering and SMTP
// transport live outside this service.
type Mailer interface {
	SendResponseLink(ctx context.Context, to string, bookingID string, token string) error
}

// NewHandlerRegistry wires every known job type to its handler.
func NewHandlerRegistry(blob BlobStore, mailer Mailer) HandlerRegistry {
	return HandlerRegistry{
		retryjob.JobTypeCleanupOrphanedBlob: NewCleanupOrphanedBlobHandler(blob),
		retryjob.JobTypeSendResponseEmail:   NewSendResponseEmailHandler(mailer),
	}
}

// NewCleanupOrphanedBlobHandler deletes an orphaned artifact. The blob
// store treats a missing object as success, so replays and earlier inline
// deletes make this a no-op rather than an error.
func NewCleanupOrphanedBlobHandler(blob BlobStore) Handler {
	return func(ctx context.Context, payload []byte) error {
		var p retryjob.CleanupOrphanedBlobPayload
		if err := retryjob.DecodePayload(payload, &p); err != nil {
			return err
		}
		return blob.Delete(ctx, p.URL)
	}
}

// NewSendResponseEmailHandler mails the magic link for a booking. Safe to
// replay: the worst case is a duplicate email carrying the same link.
func NewSendResponseEmailHandler(mailer Mailer) Handler {
	return func(ctx context.Context, payload []byte) error {
		var p retryjob.SendResponseEmailPayload
		if err := retryjob.DecodePayload(payload, &p); err != nil {
			return err
		}
		return mailer.SendResponseLink(ctx, p.CustomerEmail, p.BookingID, p.ResponseToken)
	}
}

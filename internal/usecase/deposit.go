package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"venuebook/internal/domain/booking"
	"venuebook/internal/domain/retryjob"
	"venuebook/internal/infra/broadcast"
	"venuebook/internal/infra/db"
	"venuebook/internal/pkg/clock"
	"venuebook/internal/pkg/config"
	"venuebook/internal/pkg/errs"
	"venuebook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/rs/xid"
)

var (
	ErrEvidenceTokenMissing = errs.New("response token is required for deposit upload")
	ErrEvidenceTooLarge     = errs.New("deposit evidence exceeds the size limit")
)

// BlobStore is the object-storage collaborator. Delete of an already
// deleted object must succeed, which is what makes the cleanup job
// idempotent.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}

// DepositUseCase is the orphan-safe two-phase write: upload the evidence
// artifact, then record its reference under full re-validation. A failure
// after the upload either deletes the artifact inline or durably queues
// its cleanup before the caller sees the error.
type DepositUseCase interface {
	UploadDeposit(ctx context.Context, bookingID uuid.UUID, token string, data []byte, contentType string) (*shared.BookingView, error)
}

// cleanupBudget bounds the orphan-reclaim work that runs detached from the
// request context after a failed second phase.
const cleanupBudget = 10 * time.Second

type depositUseCaseImpl struct {
	uow      shared.UnitOfWork
	jobs     shared.JobRepository
	blob     BlobStore
	hub      Broadcaster
	clock    clock.Clock
	tokenCfg config.TokenConfig
	queueCfg config.QueueConfig
}

func NewDepositUseCase(
	uow shared.UnitOfWork,
	jobs shared.JobRepository,
	blob BlobStore,
	hub Broadcaster,
	clk clock.Clock,
	tokenCfg config.TokenConfig,
	queueCfg config.QueueConfig,
) DepositUseCase {
	return &depositUseCaseImpl{
		uow:      uow,
		jobs:     jobs,
		blob:     blob,
		hub:      hub,
		clock:    clk,
		tokenCfg: tokenCfg,
		queueCfg: queueCfg,
	}
}

// UploadDeposit stores the deposit evidence and attaches it to the booking.
//
// The token and state are checked before the upload to fail cheap, and
// checked again on a fresh read immediately before the guarded write,
// because the upload can take long enough for the token to rotate, the
// status to move, or another writer to bump the version. The extended
// grace window absorbs upload latency against a token that was valid at
// entry.
func (u *depositUseCaseImpl) UploadDeposit(ctx context.Context, bookingID uuid.UUID, token string, data []byte, contentType string) (*shared.BookingView, error) {
	if err := u.precheck(ctx, bookingID, token); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("deposits/%s/%s", bookingID, xid.New().String())
	url, err := u.blob.Put(ctx, key, data, contentType)
	if err != nil {
		return nil, err
	}

	view, err := u.attachEvidence(ctx, bookingID, token, url)
	if err != nil {
		// The artifact is orphaned from this point on; reclaim it before
		// surfacing the original failure.
		u.cleanupOrphan(ctx, url)
		return nil, err
	}

	u.hub.Publish(broadcast.TopicBookings, "deposit_uploaded", bookingEvent{
		BookingID: bookingID.String(),
		Status:    booking.StatusPaidDeposit.String(),
	})
	return view, nil
}

// precheck rejects obviously dead requests before paying for the upload.
func (u *depositUseCaseImpl) precheck(ctx context.Context, bookingID uuid.UUID, token string) error {
	return u.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, tx.DB(), bookingID)
		if err != nil {
			return err
		}
		if err := b.VerifyToken(token, u.clock.Now(), u.tokenCfg.ExtendedGrace); err != nil {
			return err
		}
		if !b.CanAttachDeposit() {
			return booking.ErrDepositNotAllowed
		}
		return nil
	})
}

// attachEvidence is the second phase: re-fetch, re-validate everything
// against the fresh row, then CAS the reference in and append the audit
// record, all in one transaction.
func (u *depositUseCaseImpl) attachEvidence(ctx context.Context, bookingID uuid.UUID, token string, url string) (*shared.BookingView, error) {
	var updated *booking.Booking
	var stamp int64
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, tx.DB(), bookingID)
		if err != nil {
			return err
		}
		if err := b.VerifyToken(token, u.clock.Now(), u.tokenCfg.ExtendedGrace); err != nil {
			return err
		}
		prev := b.Status()
		if err := b.AttachDepositEvidence(url); err != nil {
			return err
		}
		stamp, err = tx.Bookings().UpdateGuarded(ctx, tx.DB(), b, b.UpdatedAt(), u.clock.Now())
		if err != nil {
			return err
		}
		rec := booking.NewHistoryRecord(bookingID, prev, booking.StatusPaidDeposit, booking.ActorCustomer, nil, u.clock.Now())
		if err := tx.History().Append(ctx, tx.DB(), rec); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	view := newBookingView(updated, nil)
	view.UpdatedAt = stamp
	return view, nil
}

// cleanupOrphan deletes the uploaded artifact, falling back to a durable
// cleanup job when the inline delete fails. The fallback must land before
// the caller's error is returned; only a failure of the enqueue itself
// degrades to a log line, and that is the last resort on this path.
//
// Runs detached from the request context: the second phase may have failed
// precisely because the request was cancelled, and the reclaim must not
// die with it.
func (u *depositUseCaseImpl) cleanupOrphan(ctx context.Context, url string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupBudget)
	defer cancel()

	delErr := u.blob.Delete(ctx, url)
	if delErr == nil {
		return
	}
	slog.Warn("inline orphan delete failed, enqueueing cleanup job", "url", url, "error", delErr.Error())

	payload, err := retryjob.EncodePayload(retryjob.CleanupOrphanedBlobPayload{URL: url})
	if err != nil {
		slog.Error("orphaned blob left unreclaimed: payload encode failed", "url", url, "error", err.Error())
		return
	}
	job, err := retryjob.NewJob(u.clock.Now(), retryjob.JobTypeCleanupOrphanedBlob, payload, retryjob.PriorityHigh, u.queueCfg.DefaultMaxRetries)
	if err != nil {
		slog.Error("orphaned blob left unreclaimed: job build failed", "url", url, "error", err.Error())
		return
	}
	err = u.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		return u.jobs.Enqueue(ctx, dbtx, job)
	})
	if err != nil {
		slog.Error("orphaned blob left unreclaimed: cleanup enqueue failed", "url", url, "error", err.Error())
	}
}

package usecase

import (
	"context"
	"log/slog"

	"venuebook/internal/domain/actionlock"
	"venuebook/internal/domain/booking"
	"venuebook/internal/domain/retryjob"
	"venuebook/internal/infra/broadcast"
	"venuebook/internal/pkg/clock"
	"venuebook/internal/pkg/config"
	"venuebook/internal/pkg/errs"
	"venuebook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	// ErrLockContended maps to HTTP 423 at the boundary: another admin
	// holds the action lock on this booking.
	ErrLockContended = errs.NewKind(errs.KindLockContention, "another admin is working on this booking")
)

// Action lock names used by admin booking operations. Status mutations
// share one action so conflicting admin edits serialize; delete gets its
// own because it also tears down stored artifacts.
const (
	actionStatusUpdate = "status_update"
	actionDelete       = "delete"
)

type bookingEvent struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status,omitempty"`
}

// BookingUseCase drives the booking lifecycle. Admin mutations run under
// an action lock plus the version guard; customer mutations authenticate
// with the response token and rely on the version guard alone.
type BookingUseCase interface {
	Submit(ctx context.Context, customerEmail string) (*shared.BookingView, error)
	GetWithHistory(ctx context.Context, id uuid.UUID) (*shared.BookingView, error)

	RequestDeposit(ctx context.Context, id uuid.UUID, admin shared.AdminIdentity, note *string) (*shared.BookingView, error)
	Confirm(ctx context.Context, id uuid.UUID, admin shared.AdminIdentity, note *string) (*shared.BookingView, error)
	Reject(ctx context.Context, id uuid.UUID, admin shared.AdminIdentity, note *string) (*shared.BookingView, error)
	Postpone(ctx context.Context, id uuid.UUID, admin shared.AdminIdentity, note *string) (*shared.BookingView, error)
	Finish(ctx context.Context, id uuid.UUID, admin shared.AdminIdentity, note *string) (*shared.BookingView, error)
	Cancel(ctx context.Context, id uuid.UUID, admin shared.AdminIdentity, note *string) (*shared.BookingView, error)
	Delete(ctx context.Context, id uuid.UUID, admin shared.AdminIdentity) error
	ResendResponseEmail(ctx context.Context, id uuid.UUID, admin shared.AdminIdentity) error

	GetByToken(ctx context.Context, id uuid.UUID, token string) (*shared.BookingView, error)
	CancelByToken(ctx context.Context, id uuid.UUID, token string) (*shared.BookingView, error)
}

type bookingUseCaseImpl struct {
	uow      shared.UnitOfWork
	locks    LockUseCase
	blob     BlobStore
	hub      Broadcaster
	clock    clock.Clock
	lockCfg  config.LockConfig
	tokenCfg config.TokenConfig
	queueCfg config.QueueConfig
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	locks LockUseCase,
	blob BlobStore,
	hub Broadcaster,
	clk clock.Clock,
	lockCfg config.LockConfig,
	tokenCfg config.TokenConfig,
	queueCfg config.QueueConfig,
) BookingUseCase {
	return &bookingUseCaseImpl{
		uow:      uow,
		locks:    locks,
		blob:     blob,
		hub:      hub,
		clock:    clk,
		lockCfg:  lockCfg,
		tokenCfg: tokenCfg,
		queueCfg: queueCfg,
	}
}

// Submit creates a booking in pending state, mints its response token and
// queues the email that carries the magic link. Row and job land in one
// transaction so a crash cannot produce a booking nobody was mailed about.
func (u *bookingUseCaseImpl) Submit(ctx context.Context, customerEmail string) (*shared.BookingView, error) {
	b, err := booking.NewBooking(u.clock.Now(), customerEmail, u.tokenCfg.TTL)
	if err != nil {
		return nil, err
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Bookings().Create(ctx, tx.DB(), b); err != nil {
			return err
		}
		return u.enqueueResponseEmail(ctx, tx, b)
	})
	if err != nil {
		return nil, err
	}

	u.hub.Publish(broadcast.TopicBookings, "booking_submitted", bookingEvent{
		BookingID: b.ID().String(),
		Status:    b.Status().String(),
	})
	return newBookingView(b, nil), nil
}

// GetWithHistory returns the admin view of a booking including its full
// audit trail, read in one consistent snapshot.
func (u *bookingUseCaseImpl) GetWithHistory(ctx context.Context, id uuid.UUID) (*shared.BookingView, error) {
	var view *shared.BookingView
	err := u.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, tx.DB(), id)
		if err != nil {
			return err
		}
		history, err := tx.History().ListByBooking(ctx, tx.DB(), id)
		if err != nil {
			return err
		}
		view = newBookingView(b, history)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// RequestDeposit moves the booking to pending_deposit, rotates the
// response token so the customer gets a fresh window, and queues the
// notification email.
func (u *bookingUseCaseImpl) RequestDeposit(ctx context.Context, id uuid.UUID, admin shared.AdminIdentity, note *string) (*shared.BookingView, error) {
	return u.adminTransition(ctx, id, booking.StatusPendingDeposit, admin, note, func(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
		if _, err := b.RotateToken(u.clock.Now(), u.tokenCfg.TTL); err != nil {
			return err
		}
		return u.enqueueResponseEmail(ctx, tx, b)
	})
}

func (u *bookingUseCaseImpl) Confirm(ctx context.Context, id uuid.UUID, admin shared.AdminIdentity, note *string) (*shared.BookingView, error) {
	return u.adminTransition(ctx, id, booking.StatusConfirmed, admin, note, nil)
}

func (u *bookingUseCaseImpl) Reject(ctx context.Context, id uuid.UUID, admin shared.AdminIdentity, note *string) (*shared.BookingView, error) {
	return u.adminTransition(ctx, id, booking.StatusRejected, admin, note, nil)
}

func (u *bookingUseCaseImpl) Postpone(ctx context.Context, id uuid.UUID, admin shared.AdminIdentity, note *string) (*shared.BookingView, error) {
	return u.adminTransition(ctx, id, booking.StatusPostponed, admin, note, nil)
}

func (u *bookingUseCaseImpl) Finish(ctx context.Context, id uuid.UUID, admin shared.AdminIdentity, note *string) (*shared.BookingView, error) {
	return u.adminTransition(ctx, id, booking.StatusFinished, admin, note, nil)
}

func (u *bookingUseCaseImpl) Cancel(ctx context.Context, id uuid.UUID, admin shared.AdminIdentity, note *string) (*shared.BookingView, error) {
	return u.adminTransition(ctx, id, booking.StatusCancelled, admin, note, nil)
}

// adminTransition is the shared shape of every admin status mutation:
// acquire the action lock, then atomically re-read, validate the
// transition, CAS the row and append the audit record.
func (u *bookingUseCaseImpl) adminTransition(
	ctx context.Context,
	id uuid.UUID,
	next booking.Status,
	admin shared.AdminIdentity,
	note *string,
	inTx func(ctx context.Context, tx shared.Tx, b *booking.Booking) error,
) (*shared.BookingView, error) {
	ctx, release, err := u.requireLock(ctx, id, actionStatusUpdate, admin)
	if err != nil {
		return nil, err
	}
	defer release()

	var updated *booking.Booking
	var stamp int64
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, tx.DB(), id)
		if err != nil {
			return err
		}
		prev := b.Status()
		if err := b.TransitionTo(next); err != nil {
			return err
		}
		if inTx != nil {
			if err := inTx(ctx, tx, b); err != nil {
				return err
			}
		}
		stamp, err = tx.Bookings().UpdateGuarded(ctx, tx.DB(), b, b.UpdatedAt(), u.clock.Now())
		if err != nil {
			return err
		}
		rec := booking.NewHistoryRecord(id, prev, next, admin.Email, note, u.clock.Now())
		if err := tx.History().Append(ctx, tx.DB(), rec); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.hub.Publish(broadcast.TopicBookings, "booking_status_changed", bookingEvent{
		BookingID: id.String(),
		Status:    next.String(),
	})
	view := newBookingView(updated, nil)
	view.UpdatedAt = stamp
	return view, nil
}

// Delete removes the booking under its own action lock. The cleanup job
// for any stored evidence is enqueued inside the delete transaction, so
// even a crash right after commit cannot orphan the blob; the inline
// delete afterwards just shortens the artifact's lifetime.
func (u *bookingUseCaseImpl) Delete(ctx context.Context, id uuid.UUID, admin shared.AdminIdentity) error {
	ctx, release, err := u.requireLock(ctx, id, actionDelete, admin)
	if err != nil {
		return err
	}
	defer release()

	var evidenceURL *string
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, tx.DB(), id)
		if err != nil {
			return err
		}
		evidenceURL = b.DepositEvidenceURL()
		if evidenceURL != nil {
			payload, err := retryjob.EncodePayload(retryjob.CleanupOrphanedBlobPayload{URL: *evidenceURL})
			if err != nil {
				return err
			}
			job, err := retryjob.NewJob(u.clock.Now(), retryjob.JobTypeCleanupOrphanedBlob, payload, retryjob.PriorityNormal, u.queueCfg.DefaultMaxRetries)
			if err != nil {
				return err
			}
			if err := tx.Jobs().Enqueue(ctx, tx.DB(), job); err != nil {
				return err
			}
		}
		return tx.Bookings().DeleteGuarded(ctx, tx.DB(), id, b.UpdatedAt())
	})
	if err != nil {
		return err
	}

	if evidenceURL != nil {
		if delErr := u.blob.Delete(ctx, *evidenceURL); delErr != nil {
			slog.Warn("inline evidence cleanup failed, queued job will retry",
				"booking_id", id, "url", *evidenceURL, "error", delErr.Error())
		}
	}
	u.hub.Publish(broadcast.TopicBookings, "booking_deleted", bookingEvent{BookingID: id.String()})
	return nil
}

// ResendResponseEmail rotates the token and queues a fresh magic link.
// The rotation invalidates every previously mailed link. No action lock:
// the version guard alone is enough for a single-row rotate.
func (u *bookingUseCaseImpl) ResendResponseEmail(ctx context.Context, id uuid.UUID, admin shared.AdminIdentity) error {
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, tx.DB(), id)
		if err != nil {
			return err
		}
		if _, err := b.RotateToken(u.clock.Now(), u.tokenCfg.TTL); err != nil {
			return err
		}
		if _, err := tx.Bookings().UpdateGuarded(ctx, tx.DB(), b, b.UpdatedAt(), u.clock.Now()); err != nil {
			return err
		}
		return u.enqueueResponseEmail(ctx, tx, b)
	})
	if err != nil {
		return err
	}
	slog.Info("response email re-queued", "booking_id", id, "admin", admin.Email)
	return nil
}

// GetByToken is the anonymous read behind the magic link. Uses the short
// grace window since nothing slow happens between check and response.
func (u *bookingUseCaseImpl) GetByToken(ctx context.Context, id uuid.UUID, token string) (*shared.BookingView, error) {
	var view *shared.BookingView
	err := u.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, tx.DB(), id)
		if err != nil {
			return err
		}
		if err := b.VerifyToken(token, u.clock.Now(), u.tokenCfg.ShortGrace); err != nil {
			return err
		}
		history, err := tx.History().ListByBooking(ctx, tx.DB(), id)
		if err != nil {
			return err
		}
		view = newBookingView(b, history)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// CancelByToken lets the anonymous customer cancel their own booking. The
// token is verified against the same transactional read the CAS write
// uses, so a rotate or admin edit racing this call loses cleanly.
func (u *bookingUseCaseImpl) CancelByToken(ctx context.Context, id uuid.UUID, token string) (*shared.BookingView, error) {
	var updated *booking.Booking
	var stamp int64
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, tx.DB(), id)
		if err != nil {
			return err
		}
		if err := b.VerifyToken(token, u.clock.Now(), u.tokenCfg.ShortGrace); err != nil {
			return err
		}
		prev := b.Status()
		if err := b.TransitionTo(booking.StatusCancelled); err != nil {
			return err
		}
		stamp, err = tx.Bookings().UpdateGuarded(ctx, tx.DB(), b, b.UpdatedAt(), u.clock.Now())
		if err != nil {
			return err
		}
		rec := booking.NewHistoryRecord(id, prev, booking.StatusCancelled, booking.ActorCustomer, nil, u.clock.Now())
		if err := tx.History().Append(ctx, tx.DB(), rec); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.hub.Publish(broadcast.TopicBookings, "booking_status_changed", bookingEvent{
		BookingID: id.String(),
		Status:    booking.StatusCancelled.String(),
	})
	view := newBookingView(updated, nil)
	view.UpdatedAt = stamp
	return view, nil
}

// requireLock acquires the action lock for an admin mutation and returns
// a context scoped to the lease plus the release closure. A keeper holds
// the lease alive for however long the mutation takes; losing it cancels
// the returned context so the write aborts instead of landing without
// exclusivity. Contention surfaces as ErrLockContended.
func (u *bookingUseCaseImpl) requireLock(ctx context.Context, id uuid.UUID, action string, admin shared.AdminIdentity) (context.Context, func(), error) {
	key := actionlock.Key{
		ResourceType: actionlock.ResourceBooking,
		ResourceID:   id.String(),
		Action:       action,
	}
	holder := actionlock.Holder{Email: admin.Email, Name: admin.Name}
	lease, err := u.locks.Acquire(ctx, key, holder)
	if err != nil {
		return nil, nil, err
	}
	if lease == nil {
		return nil, nil, ErrLockContended
	}

	opCtx, cancel := context.WithCancel(ctx)
	keeper := NewLeaseKeeper(u.locks, u.lockCfg)
	keeper.Start(lease.ID(), holder, cancel)

	release := func() {
		keeper.Stop()
		cancel()
		if _, err := u.locks.Release(ctx, lease.ID(), holder); err != nil {
			slog.Warn("action lock release failed, sweep will reclaim",
				"lock_id", lease.ID(), "holder", holder.Email, "error", err.Error())
		}
	}
	return opCtx, release, nil
}

func (u *bookingUseCaseImpl) enqueueResponseEmail(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
	payload, err := retryjob.EncodePayload(retryjob.SendResponseEmailPayload{
		BookingID:     b.ID().String(),
		CustomerEmail: b.CustomerEmail(),
		ResponseToken: b.ResponseToken(),
	})
	if err != nil {
		return err
	}
	job, err := retryjob.NewJob(u.clock.Now(), retryjob.JobTypeSendResponseEmail, payload, retryjob.PriorityHigh, u.queueCfg.DefaultMaxRetries)
	if err != nil {
		return err
	}
	return tx.Jobs().Enqueue(ctx, tx.DB(), job)
}

func newBookingView(b *booking.Booking, history []booking.HistoryRecord) *shared.BookingView {
	view := &shared.BookingView{
		ID:                 b.ID(),
		CustomerEmail:      b.CustomerEmail(),
		Status:             b.Status().String(),
		DepositEvidenceURL: b.DepositEvidenceURL(),
		TokenExpiresAt:     b.TokenExpiresAt(),
		CreatedAt:          b.CreatedAt(),
		UpdatedAt:          b.UpdatedAt(),
	}
	for _, rec := range history {
		view.History = append(view.History, shared.HistoryView{
			FromStatus: rec.FromStatus.String(),
			ToStatus:   rec.ToStatus.String(),
			Actor:      rec.Actor,
			Note:       rec.Note,
			RecordedAt: rec.RecordedAt,
		})
	}
	return view
}

//go:build unit

package usecase_test

import (
	"context"
	"testing"
	"time"

	"venuebook/internal/domain/actionlock"
	"venuebook/internal/domain/booking"
	"venuebook/internal/domain/retryjob"
	"venuebook/internal/infra/broadcast"
	"venuebook/internal/infra/db"
	"venuebook/internal/pkg/clock"
	"venuebook/internal/pkg/config"
	"venuebook/internal/pkg/errs"
	"venuebook/internal/usecase"
	"venuebook/internal/usecase/shared"
	"venuebook/tests/common/builder"
	"venuebook/tests/common/uowtest"
	sharedmock "venuebook/tests/mock/shared"
	usecasemock "venuebook/tests/mock/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingUseCaseTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockBookings *sharedmock.MockBookingRepository
	mockHistory  *sharedmock.MockHistoryRepository
	mockJobs     *sharedmock.MockJobRepository
	mockLocks    *usecasemock.MockLockUseCase
	mockBlob     *usecasemock.MockBlobStore
	mockHub      *usecasemock.MockBroadcaster
	clk          *clock.Manual
	now          time.Time
	admin        shared.AdminIdentity
	holder       actionlock.Holder
	uc           usecase.BookingUseCase
}

func (s *BookingUseCaseTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockBookings = sharedmock.NewMockBookingRepository(s.mockCtrl)
	s.mockHistory = sharedmock.NewMockHistoryRepository(s.mockCtrl)
	s.mockJobs = sharedmock.NewMockJobRepository(s.mockCtrl)
	s.mockLocks = usecasemock.NewMockLockUseCase(s.mockCtrl)
	s.mockBlob = usecasemock.NewMockBlobStore(s.mockCtrl)
	s.mockHub = usecasemock.NewMockBroadcaster(s.mockCtrl)
	s.now = time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	s.clk = clock.NewManual(s.now)
	s.admin = shared.AdminIdentity{Email: "admin@example.com", Name: "Admin One"}
	s.holder = actionlock.Holder{Email: s.admin.Email, Name: s.admin.Name}

	uow := &uowtest.FakeUoW{
		BookingRepo: s.mockBookings,
		HistoryRepo: s.mockHistory,
		JobRepo:     s.mockJobs,
	}
	s.uc = usecase.NewBookingUseCase(uow, s.mockLocks, s.mockBlob, s.mockHub, s.clk,
		config.LockConfig{LeaseDuration: 30 * time.Second, ExtendInterval: 20 * time.Second, SafetyBuffer: 5 * time.Second, FailureLimit: 3},
		config.TokenConfig{TTL: 168 * time.Hour, ShortGrace: 5 * time.Minute, ExtendedGrace: 15 * time.Minute},
		config.QueueConfig{DefaultMaxRetries: 5},
	)
}

func (s *BookingUseCaseTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingUseCaseSuite(t *testing.T) {
	suite.Run(t, new(BookingUseCaseTestSuite))
}

// expectLockRoundTrip wires a successful acquire and the deferred release
// for one admin mutation on id.
func (s *BookingUseCaseTestSuite) expectLockRoundTrip(id uuid.UUID, action string) {
	key := actionlock.Key{
		ResourceType: actionlock.ResourceBooking,
		ResourceID:   id.String(),
		Action:       action,
	}
	lease := builder.NewLockBuilder().
		WithResourceID(id.String()).
		WithAction(action).
		BuildDomain()
	s.mockLocks.EXPECT().Acquire(gomock.Any(), key, s.holder).Return(lease, nil).Times(1)
	s.mockLocks.EXPECT().Release(gomock.Any(), lease.ID(), s.holder).Return(true, nil).Times(1)
	// The lease keeper's first extend runs on its own goroutine and may or
	// may not land before the mutation finishes.
	s.mockLocks.EXPECT().Extend(gomock.Any(), lease.ID(), s.holder).Return(true, nil).AnyTimes()
}

func (s *BookingUseCaseTestSuite) TestSubmit() {
	s.Run("success: creates the booking and queues the magic link together", func() {
		var created *booking.Booking
		var job *retryjob.Job
		s.mockBookings.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, b *booking.Booking) error {
				created = b
				return nil
			}).Times(1)
		s.mockJobs.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, j *retryjob.Job) error {
				job = j
				return nil
			}).Times(1)
		s.mockHub.EXPECT().Publish(broadcast.TopicBookings, "booking_submitted", gomock.Any()).Times(1)

		view, err := s.uc.Submit(context.Background(), "customer@example.com")

		s.NoError(err)
		s.Require().NotNil(view)
		s.Equal(booking.StatusPending.String(), view.Status)
		s.Equal("customer@example.com", view.CustomerEmail)

		s.Require().NotNil(job)
		s.Equal(retryjob.JobTypeSendResponseEmail, job.JobType())
		s.Equal(retryjob.PriorityHigh, job.Priority())
		s.Equal(5, job.MaxRetries())
		var payload retryjob.SendResponseEmailPayload
		s.Require().NoError(retryjob.DecodePayload(job.Payload(), &payload))
		s.Equal(created.ID().String(), payload.BookingID)
		s.Equal(created.ResponseToken(), payload.ResponseToken)
		s.Equal("customer@example.com", payload.CustomerEmail)
	})

	s.Run("error: blank email is rejected before any write", func() {
		view, err := s.uc.Submit(context.Background(), "   ")

		s.Nil(view)
		s.ErrorIs(err, booking.ErrEmptyCustomerEmail)
	})
}

func (s *BookingUseCaseTestSuite) TestConfirm() {
	id := uuid.New()

	s.Run("success: transitions under lock, bumps the stamp and appends history", func() {
		b := builder.NewBookingBuilder().
			WithID(id).
			WithStatus(booking.StatusPaidDeposit).
			WithUpdatedAt(1000).
			BuildDomain()
		s.expectLockRoundTrip(id, "status_update")
		s.mockBookings.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).Return(b, nil).Times(1)
		s.mockBookings.EXPECT().UpdateGuarded(gomock.Any(), gomock.Any(), b, int64(1000), s.now).
			Return(int64(2000), nil).Times(1)
		var rec booking.HistoryRecord
		s.mockHistory.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, r booking.HistoryRecord) error {
				rec = r
				return nil
			}).Times(1)
		s.mockHub.EXPECT().Publish(broadcast.TopicBookings, "booking_status_changed", gomock.Any()).Times(1)

		view, err := s.uc.Confirm(context.Background(), id, s.admin, nil)

		s.NoError(err)
		s.Require().NotNil(view)
		s.Equal(booking.StatusConfirmed.String(), view.Status)
		s.Equal(int64(2000), view.UpdatedAt)

		s.Equal(id, rec.BookingID)
		s.Equal(booking.StatusPaidDeposit, rec.FromStatus)
		s.Equal(booking.StatusConfirmed, rec.ToStatus)
		s.Equal(s.admin.Email, rec.Actor)
		s.Nil(rec.Note)
		s.True(rec.RecordedAt.Equal(s.now))
	})

	s.Run("conflict: concurrent edit surfaces as conflict without event", func() {
		b := builder.NewBookingBuilder().
			WithID(id).
			WithStatus(booking.StatusPaidDeposit).
			WithUpdatedAt(1000).
			BuildDomain()
		s.expectLockRoundTrip(id, "status_update")
		s.mockBookings.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).Return(b, nil).Times(1)
		s.mockBookings.EXPECT().UpdateGuarded(gomock.Any(), gomock.Any(), b, int64(1000), s.now).
			Return(int64(0), errs.NewKind(errs.KindConflict, "booking was modified concurrently")).Times(1)

		view, err := s.uc.Confirm(context.Background(), id, s.admin, nil)

		s.Nil(view)
		s.True(errs.IsKind(err, errs.KindConflict))
	})

	s.Run("contention: lock held elsewhere maps to the contended sentinel", func() {
		key := actionlock.Key{
			ResourceType: actionlock.ResourceBooking,
			ResourceID:   id.String(),
			Action:       "status_update",
		}
		s.mockLocks.EXPECT().Acquire(gomock.Any(), key, s.holder).Return(nil, nil).Times(1)

		view, err := s.uc.Confirm(context.Background(), id, s.admin, nil)

		s.Nil(view)
		s.ErrorIs(err, usecase.ErrLockContended)
	})

	s.Run("invalid: illegal transition aborts before any write", func() {
		b := builder.NewBookingBuilder().
			WithID(id).
			WithStatus(booking.StatusPending).
			BuildDomain()
		s.expectLockRoundTrip(id, "status_update")
		s.mockBookings.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).Return(b, nil).Times(1)

		view, err := s.uc.Confirm(context.Background(), id, s.admin, nil)

		s.Nil(view)
		s.True(errs.IsKind(err, errs.KindInvalidTransition))
	})
}

func (s *BookingUseCaseTestSuite) TestRequestDeposit() {
	id := uuid.New()

	s.Run("success: rotates the token and queues the notification before the guarded write", func() {
		b := builder.NewBookingBuilder().
			WithID(id).
			WithStatus(booking.StatusPending).
			WithUpdatedAt(1000).
			BuildDomain()
		oldToken := b.ResponseToken()
		note := "deposit due in 7 days"

		s.expectLockRoundTrip(id, "status_update")
		s.mockBookings.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).Return(b, nil).Times(1)
		var job *retryjob.Job
		s.mockJobs.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, j *retryjob.Job) error {
				job = j
				return nil
			}).Times(1)
		s.mockBookings.EXPECT().UpdateGuarded(gomock.Any(), gomock.Any(), b, int64(1000), s.now).
			Return(int64(2000), nil).Times(1)
		s.mockHistory.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)
		s.mockHub.EXPECT().Publish(broadcast.TopicBookings, "booking_status_changed", gomock.Any()).Times(1)

		view, err := s.uc.RequestDeposit(context.Background(), id, s.admin, &note)

		s.NoError(err)
		s.Require().NotNil(view)
		s.Equal(booking.StatusPendingDeposit.String(), view.Status)
		s.Equal(int64(2000), view.UpdatedAt)

		s.NotEqual(oldToken, b.ResponseToken())
		s.Equal(s.now.Add(168*time.Hour).Unix(), b.TokenExpiresAt())
		s.Require().NotNil(job)
		var payload retryjob.SendResponseEmailPayload
		s.Require().NoError(retryjob.DecodePayload(job.Payload(), &payload))
		s.Equal(b.ResponseToken(), payload.ResponseToken)
	})
}

func (s *BookingUseCaseTestSuite) TestDelete() {
	id := uuid.New()
	evidenceURL := "https://blob.example.com/deposits/" + id.String() + "/evidence"

	s.Run("success: queues blob cleanup inside the delete transaction", func() {
		b := builder.NewBookingBuilder().
			WithID(id).
			WithStatus(booking.StatusPaidDeposit).
			WithDepositEvidence(evidenceURL).
			WithUpdatedAt(1000).
			BuildDomain()
		s.expectLockRoundTrip(id, "delete")
		s.mockBookings.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).Return(b, nil).Times(1)
		var job *retryjob.Job
		enqueue := s.mockJobs.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, j *retryjob.Job) error {
				job = j
				return nil
			}).Times(1)
		del := s.mockBookings.EXPECT().DeleteGuarded(gomock.Any(), gomock.Any(), id, int64(1000)).Return(nil).Times(1)
		gomock.InOrder(enqueue, del)
		s.mockBlob.EXPECT().Delete(gomock.Any(), evidenceURL).Return(nil).Times(1)
		s.mockHub.EXPECT().Publish(broadcast.TopicBookings, "booking_deleted", gomock.Any()).Times(1)

		err := s.uc.Delete(context.Background(), id, s.admin)

		s.NoError(err)
		s.Require().NotNil(job)
		s.Equal(retryjob.JobTypeCleanupOrphanedBlob, job.JobType())
		s.Equal(retryjob.PriorityNormal, job.Priority())
		var payload retryjob.CleanupOrphanedBlobPayload
		s.Require().NoError(retryjob.DecodePayload(job.Payload(), &payload))
		s.Equal(evidenceURL, payload.URL)
	})

	s.Run("success: inline blob delete failure leaves the queued job to retry", func() {
		b := builder.NewBookingBuilder().
			WithID(id).
			WithStatus(booking.StatusPaidDeposit).
			WithDepositEvidence(evidenceURL).
			WithUpdatedAt(1000).
			BuildDomain()
		s.expectLockRoundTrip(id, "delete")
		s.mockBookings.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).Return(b, nil).Times(1)
		s.mockJobs.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)
		s.mockBookings.EXPECT().DeleteGuarded(gomock.Any(), gomock.Any(), id, int64(1000)).Return(nil).Times(1)
		s.mockBlob.EXPECT().Delete(gomock.Any(), evidenceURL).
			Return(errs.NewKind(errs.KindStorageFault, "bucket unavailable")).Times(1)
		s.mockHub.EXPECT().Publish(broadcast.TopicBookings, "booking_deleted", gomock.Any()).Times(1)

		err := s.uc.Delete(context.Background(), id, s.admin)

		s.NoError(err)
	})

	s.Run("success: booking without evidence skips blob work entirely", func() {
		b := builder.NewBookingBuilder().
			WithID(id).
			WithStatus(booking.StatusPending).
			WithUpdatedAt(1000).
			BuildDomain()
		s.expectLockRoundTrip(id, "delete")
		s.mockBookings.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).Return(b, nil).Times(1)
		s.mockBookings.EXPECT().DeleteGuarded(gomock.Any(), gomock.Any(), id, int64(1000)).Return(nil).Times(1)
		s.mockHub.EXPECT().Publish(broadcast.TopicBookings, "booking_deleted", gomock.Any()).Times(1)

		err := s.uc.Delete(context.Background(), id, s.admin)

		s.NoError(err)
	})

	s.Run("conflict: version guard failure aborts the delete", func() {
		b := builder.NewBookingBuilder().
			WithID(id).
			WithStatus(booking.StatusPending).
			WithUpdatedAt(1000).
			BuildDomain()
		s.expectLockRoundTrip(id, "delete")
		s.mockBookings.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).Return(b, nil).Times(1)
		s.mockBookings.EXPECT().DeleteGuarded(gomock.Any(), gomock.Any(), id, int64(1000)).
			Return(errs.NewKind(errs.KindConflict, "booking was modified concurrently")).Times(1)

		err := s.uc.Delete(context.Background(), id, s.admin)

		s.True(errs.IsKind(err, errs.KindConflict))
	})
}

func (s *BookingUseCaseTestSuite) TestResendResponseEmail() {
	id := uuid.New()

	s.Run("success: rotates the token and queues a fresh link without a lock", func() {
		b := builder.NewBookingBuilder().
			WithID(id).
			WithStatus(booking.StatusPendingDeposit).
			WithUpdatedAt(1000).
			BuildDomain()
		oldToken := b.ResponseToken()
		s.mockBookings.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).Return(b, nil).Times(1)
		s.mockBookings.EXPECT().UpdateGuarded(gomock.Any(), gomock.Any(), b, int64(1000), s.now).
			Return(int64(2000), nil).Times(1)
		var job *retryjob.Job
		s.mockJobs.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, j *retryjob.Job) error {
				job = j
				return nil
			}).Times(1)

		err := s.uc.ResendResponseEmail(context.Background(), id, s.admin)

		s.NoError(err)
		s.NotEqual(oldToken, b.ResponseToken())
		s.Require().NotNil(job)
		var payload retryjob.SendResponseEmailPayload
		s.Require().NoError(retryjob.DecodePayload(job.Payload(), &payload))
		s.Equal(b.ResponseToken(), payload.ResponseToken)
	})

	s.Run("error: missing booking passes through", func() {
		s.mockBookings.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).
			Return(nil, errs.NewKind(errs.KindNotFound, "booking not found")).Times(1)

		err := s.uc.ResendResponseEmail(context.Background(), id, s.admin)

		s.True(errs.IsKind(err, errs.KindNotFound))
	})
}

func (s *BookingUseCaseTestSuite) TestGetWithHistory() {
	id := uuid.New()

	s.Run("success: returns the booking with its audit trail", func() {
		b := builder.NewBookingBuilder().WithID(id).BuildDomain()
		note := "called the customer"
		records := []booking.HistoryRecord{
			booking.NewHistoryRecord(id, booking.StatusPending, booking.StatusPendingDeposit, s.admin.Email, nil, s.now.Add(-time.Hour)),
			booking.NewHistoryRecord(id, booking.StatusPendingDeposit, booking.StatusPaidDeposit, booking.ActorCustomer, &note, s.now),
		}
		s.mockBookings.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).Return(b, nil).Times(1)
		s.mockHistory.EXPECT().ListByBooking(gomock.Any(), gomock.Any(), id).Return(records, nil).Times(1)

		view, err := s.uc.GetWithHistory(context.Background(), id)

		s.NoError(err)
		s.Require().NotNil(view)
		s.Require().Len(view.History, 2)
		s.Equal(booking.StatusPending.String(), view.History[0].FromStatus)
		s.Equal(booking.ActorCustomer, view.History[1].Actor)
		s.Equal(&note, view.History[1].Note)
	})
}

func (s *BookingUseCaseTestSuite) TestGetByToken() {
	id := uuid.New()

	s.Run("success: valid token returns the customer view", func() {
		b := builder.NewBookingBuilder().
			WithID(id).
			WithTokenExpiresAt(s.now.Add(time.Hour).Unix()).
			BuildDomain()
		s.mockBookings.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).Return(b, nil).Times(1)
		s.mockHistory.EXPECT().ListByBooking(gomock.Any(), gomock.Any(), id).Return(nil, nil).Times(1)

		view, err := s.uc.GetByToken(context.Background(), id, b.ResponseToken())

		s.NoError(err)
		s.Require().NotNil(view)
		s.Equal(id, view.ID)
	})

	s.Run("success: expiry inside the grace window still passes", func() {
		b := builder.NewBookingBuilder().
			WithID(id).
			WithTokenExpiresAt(s.now.Add(-5 * time.Minute).Unix()).
			BuildDomain()
		s.mockBookings.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).Return(b, nil).Times(1)
		s.mockHistory.EXPECT().ListByBooking(gomock.Any(), gomock.Any(), id).Return(nil, nil).Times(1)

		view, err := s.uc.GetByToken(context.Background(), id, b.ResponseToken())

		s.NoError(err)
		s.NotNil(view)
	})

	s.Run("expired: past the grace window reports token expiry, not absence", func() {
		b := builder.NewBookingBuilder().
			WithID(id).
			WithTokenExpiresAt(s.now.Add(-5*time.Minute - time.Second).Unix()).
			BuildDomain()
		s.mockBookings.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).Return(b, nil).Times(1)

		view, err := s.uc.GetByToken(context.Background(), id, b.ResponseToken())

		s.Nil(view)
		s.True(errs.IsKind(err, errs.KindTokenExpired))
	})

	s.Run("mismatch: wrong token is indistinguishable from a missing booking", func() {
		b := builder.NewBookingBuilder().WithID(id).BuildDomain()
		s.mockBookings.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).Return(b, nil).Times(1)

		view, err := s.uc.GetByToken(context.Background(), id, "deadbeef")

		s.Nil(view)
		s.True(errs.IsKind(err, errs.KindNotFound))
	})
}

func (s *BookingUseCaseTestSuite) TestCancelByToken() {
	id := uuid.New()

	s.Run("success: customer cancel writes history with the customer actor", func() {
		b := builder.NewBookingBuilder().
			WithID(id).
			WithStatus(booking.StatusPendingDeposit).
			WithTokenExpiresAt(s.now.Add(time.Hour).Unix()).
			WithUpdatedAt(1000).
			BuildDomain()
		s.mockBookings.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).Return(b, nil).Times(1)
		s.mockBookings.EXPECT().UpdateGuarded(gomock.Any(), gomock.Any(), b, int64(1000), s.now).
			Return(int64(2000), nil).Times(1)
		var rec booking.HistoryRecord
		s.mockHistory.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, r booking.HistoryRecord) error {
				rec = r
				return nil
			}).Times(1)
		s.mockHub.EXPECT().Publish(broadcast.TopicBookings, "booking_status_changed", gomock.Any()).Times(1)

		view, err := s.uc.CancelByToken(context.Background(), id, b.ResponseToken())

		s.NoError(err)
		s.Require().NotNil(view)
		s.Equal(booking.StatusCancelled.String(), view.Status)
		s.Equal(int64(2000), view.UpdatedAt)
		s.Equal(booking.ActorCustomer, rec.Actor)
		s.Equal(booking.StatusPendingDeposit, rec.FromStatus)
		s.Equal(booking.StatusCancelled, rec.ToStatus)
	})

	s.Run("invalid: a finished booking cannot be cancelled", func() {
		b := builder.NewBookingBuilder().
			WithID(id).
			WithStatus(booking.StatusFinished).
			WithTokenExpiresAt(s.now.Add(time.Hour).Unix()).
			BuildDomain()
		s.mockBookings.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).Return(b, nil).Times(1)

		view, err := s.uc.CancelByToken(context.Background(), id, b.ResponseToken())

		s.Nil(view)
		s.True(errs.IsKind(err, errs.KindInvalidTransition))
	})
}

//go:build unit

package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"venuebook/internal/domain/booking"
	"venuebook/internal/domain/retryjob"
	"venuebook/internal/infra/broadcast"
	"venuebook/internal/infra/db"
	"venuebook/internal/pkg/clock"
	"venuebook/internal/pkg/config"
	"venuebook/internal/pkg/errs"
	"venuebook/internal/usecase"
	"venuebook/tests/common/builder"
	"venuebook/tests/common/uowtest"
	sharedmock "venuebook/tests/mock/shared"
	usecasemock "venuebook/tests/mock/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DepositUseCaseTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockBookings *sharedmock.MockBookingRepository
	mockHistory  *sharedmock.MockHistoryRepository
	mockJobs     *sharedmock.MockJobRepository
	mockBlob     *usecasemock.MockBlobStore
	mockHub      *usecasemock.MockBroadcaster
	clk          *clock.Manual
	now          time.Time
	uc           usecase.DepositUseCase
}

func (s *DepositUseCaseTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockBookings = sharedmock.NewMockBookingRepository(s.mockCtrl)
	s.mockHistory = sharedmock.NewMockHistoryRepository(s.mockCtrl)
	s.mockJobs = sharedmock.NewMockJobRepository(s.mockCtrl)
	s.mockBlob = usecasemock.NewMockBlobStore(s.mockCtrl)
	s.mockHub = usecasemock.NewMockBroadcaster(s.mockCtrl)
	s.now = time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	s.clk = clock.NewManual(s.now)

	uow := &uowtest.FakeUoW{
		BookingRepo: s.mockBookings,
		HistoryRepo: s.mockHistory,
		JobRepo:     s.mockJobs,
	}
	s.uc = usecase.NewDepositUseCase(uow, s.mockJobs, s.mockBlob, s.mockHub, s.clk,
		config.TokenConfig{TTL: 168 * time.Hour, ShortGrace: 5 * time.Minute, ExtendedGrace: 15 * time.Minute},
		config.QueueConfig{DefaultMaxRetries: 5},
	)
}

func (s *DepositUseCaseTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestDepositUseCaseSuite(t *testing.T) {
	suite.Run(t, new(DepositUseCaseTestSuite))
}

func (s *DepositUseCaseTestSuite) freshBooking(id uuid.UUID) *builder.BookingBuilder {
	return builder.NewBookingBuilder().
		WithID(id).
		WithStatus(booking.StatusPendingDeposit).
		WithTokenExpiresAt(s.now.Add(time.Hour).Unix()).
		WithUpdatedAt(1000)
}

func (s *DepositUseCaseTestSuite) expectUpload(id uuid.UUID, data []byte, url string) {
	s.mockBlob.EXPECT().Put(gomock.Any(), gomock.Any(), data, "image/png").
		DoAndReturn(func(_ context.Context, key string, _ []byte, _ string) (string, error) {
			s.True(strings.HasPrefix(key, "deposits/"+id.String()+"/"))
			return url, nil
		}).Times(1)
}

func (s *DepositUseCaseTestSuite) TestUploadDeposit() {
	id := uuid.New()
	data := []byte("receipt-bytes")
	url := "https://blob.example.com/deposits/" + id.String() + "/abc123"

	s.Run("success: two-phase upload attaches evidence under re-validation", func() {
		first := s.freshBooking(id).BuildDomain()
		second := s.freshBooking(id).BuildDomain()
		token := first.ResponseToken()

		s.mockBookings.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).Return(first, nil).Times(1)
		s.expectUpload(id, data, url)
		s.mockBookings.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).Return(second, nil).Times(1)
		s.mockBookings.EXPECT().UpdateGuarded(gomock.Any(), gomock.Any(), second, int64(1000), s.now).
			Return(int64(2000), nil).Times(1)
		var rec booking.HistoryRecord
		s.mockHistory.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, r booking.HistoryRecord) error {
				rec = r
				return nil
			}).Times(1)
		s.mockHub.EXPECT().Publish(broadcast.TopicBookings, "deposit_uploaded", gomock.Any()).Times(1)

		view, err := s.uc.UploadDeposit(context.Background(), id, token, data, "image/png")

		s.NoError(err)
		s.Require().NotNil(view)
		s.Equal(booking.StatusPaidDeposit.String(), view.Status)
		s.Equal(int64(2000), view.UpdatedAt)
		s.Require().NotNil(view.DepositEvidenceURL)
		s.Equal(url, *view.DepositEvidenceURL)

		s.Equal(booking.StatusPendingDeposit, rec.FromStatus)
		s.Equal(booking.StatusPaidDeposit, rec.ToStatus)
		s.Equal(booking.ActorCustomer, rec.Actor)
	})

	s.Run("precheck: wrong state fails before any blob traffic", func() {
		b := s.freshBooking(id).WithStatus(booking.StatusConfirmed).BuildDomain()
		s.mockBookings.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).Return(b, nil).Times(1)

		view, err := s.uc.UploadDeposit(context.Background(), id, b.ResponseToken(), data, "image/png")

		s.Nil(view)
		s.ErrorIs(err, booking.ErrDepositNotAllowed)
	})

	s.Run("precheck: token past the extended grace fails with the expiry kind", func() {
		b := s.freshBooking(id).
			WithTokenExpiresAt(s.now.Add(-15*time.Minute - time.Second).Unix()).
			BuildDomain()
		s.mockBookings.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).Return(b, nil).Times(1)

		view, err := s.uc.UploadDeposit(context.Background(), id, b.ResponseToken(), data, "image/png")

		s.Nil(view)
		s.True(errs.IsKind(err, errs.KindTokenExpired))
	})

	s.Run("error: failed upload needs no cleanup", func() {
		b := s.freshBooking(id).BuildDomain()
		s.mockBookings.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).Return(b, nil).Times(1)
		s.mockBlob.EXPECT().Put(gomock.Any(), gomock.Any(), data, "image/png").
			Return("", errs.NewKind(errs.KindStorageFault, "bucket unavailable")).Times(1)

		view, err := s.uc.UploadDeposit(context.Background(), id, b.ResponseToken(), data, "image/png")

		s.Nil(view)
		s.True(errs.IsKind(err, errs.KindStorageFault))
	})

	s.Run("orphan: attach failure deletes the artifact inline", func() {
		first := s.freshBooking(id).BuildDomain()
		second := s.freshBooking(id).BuildDomain()
		token := first.ResponseToken()

		s.mockBookings.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).Return(first, nil).Times(1)
		s.expectUpload(id, data, url)
		s.mockBookings.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).Return(second, nil).Times(1)
		s.mockBookings.EXPECT().UpdateGuarded(gomock.Any(), gomock.Any(), second, int64(1000), s.now).
			Return(int64(0), errs.NewKind(errs.KindConflict, "booking was modified concurrently")).Times(1)
		s.mockBlob.EXPECT().Delete(gomock.Any(), url).Return(nil).Times(1)

		view, err := s.uc.UploadDeposit(context.Background(), id, token, data, "image/png")

		s.Nil(view)
		s.True(errs.IsKind(err, errs.KindConflict))
	})

	s.Run("orphan: failed inline delete queues durable cleanup before returning", func() {
		first := s.freshBooking(id).BuildDomain()
		second := s.freshBooking(id).BuildDomain()
		token := first.ResponseToken()

		s.mockBookings.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).Return(first, nil).Times(1)
		s.expectUpload(id, data, url)
		s.mockBookings.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).Return(second, nil).Times(1)
		s.mockBookings.EXPECT().UpdateGuarded(gomock.Any(), gomock.Any(), second, int64(1000), s.now).
			Return(int64(0), errs.NewKind(errs.KindConflict, "booking was modified concurrently")).Times(1)
		s.mockBlob.EXPECT().Delete(gomock.Any(), url).
			Return(errs.NewKind(errs.KindStorageFault, "bucket unavailable")).Times(1)
		var job *retryjob.Job
		s.mockJobs.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, j *retryjob.Job) error {
				job = j
				return nil
			}).Times(1)

		view, err := s.uc.UploadDeposit(context.Background(), id, token, data, "image/png")

		s.Nil(view)
		s.True(errs.IsKind(err, errs.KindConflict))
		s.Require().NotNil(job)
		s.Equal(retryjob.JobTypeCleanupOrphanedBlob, job.JobType())
		s.Equal(retryjob.PriorityHigh, job.Priority())
		var payload retryjob.CleanupOrphanedBlobPayload
		s.Require().NoError(retryjob.DecodePayload(job.Payload(), &payload))
		s.Equal(url, payload.URL)
	})

	s.Run("orphan: token rotated mid-upload still reclaims the artifact", func() {
		first := s.freshBooking(id).BuildDomain()
		rotated := s.freshBooking(id).
			WithResponseToken("0000000000000000000000000000000000000000000000000000000000000000").
			BuildDomain()
		token := first.ResponseToken()

		s.mockBookings.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).Return(first, nil).Times(1)
		s.expectUpload(id, data, url)
		s.mockBookings.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).Return(rotated, nil).Times(1)
		s.mockBlob.EXPECT().Delete(gomock.Any(), url).Return(nil).Times(1)

		view, err := s.uc.UploadDeposit(context.Background(), id, token, data, "image/png")

		s.Nil(view)
		s.True(errs.IsKind(err, errs.KindNotFound))
	})

	s.Run("orphan: cleanup enqueue failure still surfaces the original error", func() {
		first := s.freshBooking(id).BuildDomain()
		second := s.freshBooking(id).BuildDomain()
		token := first.ResponseToken()

		s.mockBookings.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).Return(first, nil).Times(1)
		s.expectUpload(id, data, url)
		s.mockBookings.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).Return(second, nil).Times(1)
		s.mockBookings.EXPECT().UpdateGuarded(gomock.Any(), gomock.Any(), second, int64(1000), s.now).
			Return(int64(0), errs.NewKind(errs.KindConflict, "booking was modified concurrently")).Times(1)
		s.mockBlob.EXPECT().Delete(gomock.Any(), url).
			Return(errs.NewKind(errs.KindStorageFault, "bucket unavailable")).Times(1)
		s.mockJobs.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errs.NewKind(errs.KindStorageFault, "insert failed")).Times(1)

		view, err := s.uc.UploadDeposit(context.Background(), id, token, data, "image/png")

		s.Nil(view)
		s.True(errs.IsKind(err, errs.KindConflict))
	})
}

//go:build unit

package api_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"venuebook/internal/domain/booking"
	"venuebook/internal/handler/api"
	resdto "venuebook/internal/handler/dto/response"
	"venuebook/internal/pkg/errs"
	"venuebook/internal/usecase/shared"
	"venuebook/tests/common/httptest"
	usecasemock "venuebook/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DepositHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockDeposit *usecasemock.MockDepositUseCase
	handler     *api.DepositHandler
}

func (s *DepositHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockDeposit = usecasemock.NewMockDepositUseCase(s.mockCtrl)
	s.handler = api.NewDepositHandler(s.mockDeposit)

	s.router.POST("/response/:id/deposit", s.handler.Upload)
}

func (s *DepositHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestDepositHandlerSuite(t *testing.T) {
	suite.Run(t, new(DepositHandlerTestSuite))
}

func (s *DepositHandlerTestSuite) TestUpload() {
	bookingID := uuid.New()
	url := "/response/" + bookingID.String() + "/deposit"
	token := strings.Repeat("ef", 32)
	imageBytes := []byte("png-画像-bytes")

	s.Run("success: forwards token, bytes and content type", func() {
		var gotData []byte
		s.mockDeposit.EXPECT().
			UploadDeposit(gomock.Any(), bookingID, token, gomock.Any(), "image/png").
			DoAndReturn(func(_ context.Context, id uuid.UUID, _ string, data []byte, _ string) (*shared.BookingView, error) {
				gotData = data
				return sampleView(id, "paid_deposit"), nil
			}).Times(1)

		rec := httptest.PerformUploadRequest(s.T(), s.router, url, token, "receipt.png", "image/png", imageBytes)

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("paid_deposit", response.Status)
		s.Equal(imageBytes, gotData)
	})

	s.Run("error: 400 Bad Request without a token field", func() {
		rec := httptest.PerformUploadRequest(s.T(), s.router, url, "", "receipt.png", "image/png", imageBytes)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Response token is required")
	})

	s.Run("error: 400 Bad Request without a file part", func() {
		rec := httptest.PerformUploadRequest(s.T(), s.router, url, token, "", "", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Evidence file is required")
	})

	s.Run("error: 400 Bad Request for an invalid booking ID", func() {
		rec := httptest.PerformUploadRequest(s.T(), s.router, "/response/not-a-uuid/deposit", token, "receipt.png", "image/png", imageBytes)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID format")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			usecaseError   error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "token expired past the extended grace",
				usecaseError:   booking.ErrTokenExpired,
				expectedStatus: http.StatusGone,
				expectedMsg:    "Response link has expired",
			},
			{
				name:           "token rotated mid-upload",
				usecaseError:   booking.ErrTokenMismatch,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Not found",
			},
			{
				name:           "version conflict on attach",
				usecaseError:   errs.NewKind(errs.KindConflict, "booking was updated concurrently"),
				expectedStatus: http.StatusConflict,
				expectedMsg:    "changed by someone else",
			},
			{
				name:           "deposit not accepted in this status",
				usecaseError:   booking.ErrDepositNotAllowed,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "not allowed in the current status",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockDeposit.EXPECT().
					UploadDeposit(gomock.Any(), bookingID, token, gomock.Any(), "image/png").
					Return(nil, tc.usecaseError).Times(1)

				rec := httptest.PerformUploadRequest(s.T(), s.router, url, token, "receipt.png", "image/png", imageBytes)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"venuebook/internal/domain/actionlock"
	"venuebook/internal/handler/api"
	resdto "venuebook/internal/handler/dto/response"
	"venuebook/internal/usecase/shared"
	"venuebook/tests/common/builder"
	"venuebook/tests/common/httptest"
	usecasemock "venuebook/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type LockHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	mockLock *usecasemock.MockLockUseCase
	handler  *api.LockHandler
}

func (s *LockHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockLock = usecasemock.NewMockLockUseCase(s.mockCtrl)
	s.handler = api.NewLockHandler(s.mockLock)

	identityMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Admin identity required"}})
			return
		}
		c.Set("admin_email", testAdminEmail)
		c.Set("admin_name", testAdminName)
		c.Next()
	}

	s.router.GET("/locks", identityMiddleware, s.handler.List)
	s.router.GET("/locks/status", identityMiddleware, s.handler.Status)
}

func (s *LockHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestLockHandlerSuite(t *testing.T) {
	suite.Run(t, new(LockHandlerTestSuite))
}

func (s *LockHandlerTestSuite) TestList() {
	s.Run("success: returns every live lock", func() {
		locks := []*actionlock.Lock{
			builder.NewLockBuilder().WithResourceID("101").WithAction("confirm").BuildDomain(),
			builder.NewLockBuilder().WithResourceID("202").WithAction("delete").WithHolder("second@example.com", "Second Admin").BuildDomain(),
		}
		s.mockLock.EXPECT().ListLive(gomock.Any()).Return(locks, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/locks", nil, "bearer-token")

		var response struct {
			Locks []resdto.LockResponse `json:"locks"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response.Locks, 2)
		s.Equal("101", response.Locks[0].ResourceID)
		s.Equal("confirm", response.Locks[0].Action)
		s.Equal("second@example.com", response.Locks[1].HolderEmail)
	})

	s.Run("success: empty list serializes as an empty array", func() {
		s.mockLock.EXPECT().ListLive(gomock.Any()).Return([]*actionlock.Lock{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/locks", nil, "bearer-token")

		var response struct {
			Locks []resdto.LockResponse `json:"locks"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.NotNil(response.Locks)
		s.Len(response.Locks, 0)
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/locks", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Admin identity required")
	})
}

func (s *LockHandlerTestSuite) TestStatus() {
	url := "/locks/status?resource_type=booking&resource_id=42&action=confirm"
	key := actionlock.Key{ResourceType: actionlock.ResourceBooking, ResourceID: "42", Action: "confirm"}

	s.Run("success: reports a held tuple with its holder", func() {
		expiry := time.Date(2025, 7, 1, 9, 0, 30, 0, time.UTC)
		s.mockLock.EXPECT().Status(gomock.Any(), key).Return(&shared.LockStatusView{
			ResourceType: "booking",
			ResourceID:   "42",
			Action:       "confirm",
			Locked:       true,
			HolderEmail:  "holder@example.com",
			HolderName:   "Holder Admin",
			ExpiresAt:    &expiry,
		}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.LockStatusResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Locked)
		s.Equal("holder@example.com", response.HolderEmail)
		s.Require().NotNil(response.ExpiresAt)
		s.True(response.ExpiresAt.Equal(expiry))
	})

	s.Run("success: reports a free tuple without holder fields", func() {
		s.mockLock.EXPECT().Status(gomock.Any(), key).Return(&shared.LockStatusView{
			ResourceType: "booking",
			ResourceID:   "42",
			Action:       "confirm",
			Locked:       false,
		}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.LockStatusResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.False(response.Locked)
		s.Empty(response.HolderEmail)
		s.Nil(response.ExpiresAt)
	})

	s.Run("error: 400 Bad Request when query params are missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/locks/status?resource_type=booking", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid lock status query")
	})

	s.Run("error: 400 Bad Request for an unknown resource type", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/locks/status?resource_type=starship&resource_id=42&action=confirm", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid lock key")
	})
}

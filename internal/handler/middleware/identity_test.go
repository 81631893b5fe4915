//go:build unit

package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"venuebook/internal/handler/middleware"
	"venuebook/internal/pkg/identity"
	"venuebook/internal/usecase/shared"
	"venuebook/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

const identitySecret = "test-identity-secret"

type IdentityMiddlewareTestSuite struct {
	suite.Suite
	router *gin.Engine
	svc    *identity.Service
}

func (s *IdentityMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.svc = identity.NewService(identitySecret)

	mw := middleware.NewIdentityMiddleware(s.svc)
	s.router.GET("/probe", mw.RequireAdmin(), func(c *gin.Context) {
		admin, ok := middleware.GetAdminIdentity(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "identity missing"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": admin.Email, "name": admin.Name})
	})
}

func TestIdentityMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(IdentityMiddlewareTestSuite))
}

func (s *IdentityMiddlewareTestSuite) TestRequireAdmin() {
	s.Run("success: valid token yields the admin identity", func() {
		token, err := s.svc.Mint("admin@example.com", "Admin One", time.Hour)
		s.Require().NoError(err)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/probe", nil, token)

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("admin@example.com", body["email"])
		s.Equal("Admin One", body["name"])
	})

	s.Run("error: 401 without an Authorization header", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/probe", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Admin identity required")
	})

	s.Run("error: 401 for a garbage token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/probe", nil, "not.a.jwt")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired identity token")
	})

	s.Run("error: 401 for an expired token", func() {
		token, err := s.svc.Mint("admin@example.com", "Admin One", -time.Hour)
		s.Require().NoError(err)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/probe", nil, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired identity token")
	})

	s.Run("error: 401 for a token signed with another secret", func() {
		rogue := identity.NewService("some-other-secret")
		token, err := rogue.Mint("admin@example.com", "Admin One", time.Hour)
		s.Require().NoError(err)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/probe", nil, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired identity token")
	})

	s.Run("error: 401 for a token without an email claim", func() {
		token, err := s.svc.Mint("", "Nameless", time.Hour)
		s.Require().NoError(err)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/probe", nil, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired identity token")
	})
}

func (s *IdentityMiddlewareTestSuite) TestGetAdminIdentity() {
	s.Run("missing: context without identity reports not ok", func() {
		c, _ := gin.CreateTestContext(nil)
		admin, ok := middleware.GetAdminIdentity(c)
		s.False(ok)
		s.Equal(shared.AdminIdentity{}, admin)
	})
}

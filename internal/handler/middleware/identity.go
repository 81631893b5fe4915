package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"venuebook/internal/pkg/identity"
	"venuebook/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

// IdentityMiddleware pulls the gateway-minted admin identity out of the
// Authorization header. Authentication itself happened upstream; a request
// that reaches this service with a valid signature is already an admin.
type IdentityMiddleware struct {
	svc *identity.Service
}

const (
	ctxAdminEmailKey = "admin_email"
	ctxAdminNameKey  = "admin_name"
)

func NewIdentityMiddleware(svc *identity.Service) *IdentityMiddleware {
	return &IdentityMiddleware{svc: svc}
}

func (m *IdentityMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Admin identity required"},
			})
			c.Abort()
			return
		}

		claims, err := m.svc.Parse(token)
		if err != nil {
			slog.Warn("identity token rejected", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Invalid or expired identity token"},
			})
			c.Abort()
			return
		}

		c.Set(ctxAdminEmailKey, claims.Email)
		c.Set(ctxAdminNameKey, claims.Name)
		c.Set("admin_claims", map[string]any{
			"email": claims.Email,
			"name":  claims.Name,
		})
		c.Next()
	}
}

// NewCronGuard protects worker trigger routes. Schedulers present a static
// shared secret instead of an identity token.
func NewCronGuard(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader("X-Cron-Secret")
		if presented == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Cron secret required"},
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func GetAdminIdentity(c *gin.Context) (shared.AdminIdentity, bool) {
	email, exists := c.Get(ctxAdminEmailKey)
	if !exists {
		return shared.AdminIdentity{}, false
	}

	emailStr, ok := email.(string)
	if !ok || emailStr == "" {
		return shared.AdminIdentity{}, false
	}

	name, _ := c.Get(ctxAdminNameKey)
	nameStr, _ := name.(string)

	return shared.AdminIdentity{Email: emailStr, Name: nameStr}, true
}

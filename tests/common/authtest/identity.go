//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"venuebook/internal/pkg/identity"

	"github.com/stretchr/testify/require"
)

// MintAdminToken produces a token equivalent to what the gateway would
// attach for an authenticated admin.
func MintAdminToken(t *testing.T, secret, email, name string) string {
	t.Helper()

	token, err := identity.NewService(secret).Mint(email, name, time.Hour)
	require.NoError(t, err)
	return token
}

// MintExpiredAdminToken produces a structurally valid token whose expiry
// is already in the past.
func MintExpiredAdminToken(t *testing.T, secret, email, name string) string {
	t.Helper()

	token, err := identity.NewService(secret).Mint(email, name, -time.Hour)
	require.NoError(t, err)
	return token
}

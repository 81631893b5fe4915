package bootstrap

import (
	"venuebook/internal/pkg/config"
	"venuebook/internal/pkg/identity"

	"go.uber.org/fx"
)

var IdentityModule = fx.Module("identity",
	fx.Provide(
		NewIdentityService,
	),
)

// NewIdentityService verifies gateway-minted admin tokens. The gateway owns
// authentication; this service only reads the claims.
func NewIdentityService(cfg config.Config) *identity.Service {
	return identity.NewService(cfg.Admin.IdentitySecret)
}

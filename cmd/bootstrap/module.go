package bootstrap

import (
	"venuebook/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	IdentityModule,
	components.InfraModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)

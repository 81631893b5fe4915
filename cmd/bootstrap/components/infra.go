package components

import (
	"venuebook/internal/infra/blob"
	"venuebook/internal/infra/broadcast"
	"venuebook/internal/infra/mail"
	"venuebook/internal/usecase"

	"go.uber.org/fx"
)

var InfraModule = fx.Module("infra",
	fx.Provide(
		// Object storage for deposit evidence
		fx.Annotate(
			blob.New,
			fx.As(new(usecase.BlobStore)),
		),
		// In-process event hub
		fx.Annotate(
			broadcast.NewHub,
			fx.As(new(usecase.Broadcaster)),
		),
		// Outbound email; swapped for the gateway client in deployments
		fx.Annotate(
			mail.NewLogMailer,
			fx.As(new(usecase.Mailer)),
		),
	),
)

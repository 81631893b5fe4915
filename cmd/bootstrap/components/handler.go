package components

import (
	"venuebook/internal/handler"
	"venuebook/internal/handler/api"
	"venuebook/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewDepositHandler,
		api.NewLockHandler,
		api.NewOpsHandler,
		middleware.NewIdentityMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

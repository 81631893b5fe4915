package components

import (
	"venuebook/internal/pkg/clock"
	"venuebook/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		usecase.NewLockUseCase,
		usecase.NewBookingUseCase,
		usecase.NewDepositUseCase,
		usecase.NewHandlerRegistry,
		usecase.NewQueueUseCase,
	),
)

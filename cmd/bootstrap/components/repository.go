package components

import (
	"venuebook/internal/infra/repository"
	"venuebook/internal/infra/uow"
	"venuebook/internal/usecase/shared"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		// UnitOfWork
		uow.NewPostgresUoW,
		// Booking
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(shared.BookingRepository)),
		),
		// History
		fx.Annotate(
			repository.NewHistoryRepository,
			fx.As(new(shared.HistoryRepository)),
		),
		// ActionLock
		fx.Annotate(
			repository.NewLockRepository,
			fx.As(new(shared.LockRepository)),
		),
		// RetryJob
		fx.Annotate(
			repository.NewJobRepository,
			fx.As(new(shared.JobRepository)),
		),
	),
)

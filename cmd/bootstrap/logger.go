package bootstrap

import (
	"log/slog"

	"venuebook/internal/handler/middleware"
	"venuebook/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

// NewLogger builds the process-wide slog logger from the same handler the
// request logging middleware installs, so startup logs and request logs
// share one format.
func NewLogger(cfg config.Config) *slog.Logger {
	logger := middleware.NewLogger(cfg.Log)
	return logger.GetSlogLogger()
}

package bootstrap

import (
	"venuebook/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	SubConfigOption,
)

// SubConfigOption derives per-concern config types from the root Config so
// constructors declare exactly the slice they depend on. Test harnesses
// that inject a synthetic Config reuse this option unchanged.
var SubConfigOption = fx.Options(
	fx.Provide(
		func(cfg config.Config) config.LockConfig { return cfg.Lock },
		func(cfg config.Config) config.TokenConfig { return cfg.Token },
		func(cfg config.Config) config.QueueConfig { return cfg.Queue },
		func(cfg config.Config) config.BlobConfig { return cfg.Blob },
	),
)

package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (lease timing, grace windows, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server ServerConfig
	DB     DBConfig
	CORS   CORSConfig
	Log    LogConfig
	Lock   LockConfig
	Token  TokenConfig
	Queue  QueueConfig
	Blob   BlobConfig
	Admin  AdminConfig
}

type ServerConfig struct {
	Port       string `envconfig:"PORT" required:"true"`
	CronSecret string `envconfig:"CRON_SECRET" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

// LockConfig drives the action-lock lease lifecycle. The extension cadence
// must leave room for one failed attempt plus network latency before the
// lease lapses, hence the SafetyBuffer check in Validate.
type LockConfig struct {
	LeaseDuration  time.Duration `envconfig:"LOCK_LEASE_DURATION" default:"30s"`
	ExtendInterval time.Duration `envconfig:"LOCK_EXTEND_INTERVAL" default:"20s"`
	SafetyBuffer   time.Duration `envconfig:"LOCK_SAFETY_BUFFER" default:"5s"`
	FailureLimit   int           `envconfig:"LOCK_FAILURE_LIMIT" default:"3"`
	SweepBatch     int           `envconfig:"LOCK_SWEEP_BATCH" default:"100"`
}

type TokenConfig struct {
	TTL           time.Duration `envconfig:"TOKEN_TTL" default:"168h"`
	ShortGrace    time.Duration `envconfig:"TOKEN_SHORT_GRACE" default:"5m"`
	ExtendedGrace time.Duration `envconfig:"TOKEN_EXTENDED_GRACE" default:"15m"`
}

type QueueConfig struct {
	BatchSize         int           `envconfig:"QUEUE_BATCH_SIZE" default:"10"`
	DefaultMaxRetries int           `envconfig:"QUEUE_DEFAULT_MAX_RETRIES" default:"5"`
	InitialBackoff    time.Duration `envconfig:"QUEUE_INITIAL_BACKOFF" default:"30s"`
	MaxBackoff        time.Duration `envconfig:"QUEUE_MAX_BACKOFF" default:"1h"`
	VisibilityTimeout time.Duration `envconfig:"QUEUE_VISIBILITY_TIMEOUT" default:"10m"`
}

type BlobConfig struct {
	Endpoint  string `envconfig:"BLOB_ENDPOINT" required:"true"`
	Region    string `envconfig:"BLOB_REGION" default:""`
	Bucket    string `envconfig:"BLOB_BUCKET" required:"true"`
	AccessKey string `envconfig:"BLOB_ACCESS_KEY" required:"true"`
	SecretKey string `envconfig:"BLOB_SECRET_KEY" required:"true"`
	UseSSL    bool   `envconfig:"BLOB_USE_SSL" default:"true"`
}

// AdminConfig covers consumption of the gateway-minted admin identity token.
// The gateway performs authentication; this service only reads the claims.
type AdminConfig struct {
	IdentitySecret string `envconfig:"ADMIN_IDENTITY_SECRET" required:"true"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c *LockConfig) Validate() error {
	if c.LeaseDuration <= 0 {
		return fmt.Errorf("lock lease duration must be positive, got %s", c.LeaseDuration)
	}
	if c.ExtendInterval <= 0 {
		return fmt.Errorf("lock extend interval must be positive, got %s", c.ExtendInterval)
	}
	if c.ExtendInterval >= c.LeaseDuration-c.SafetyBuffer {
		return fmt.Errorf(
			"lock extend interval %s must be shorter than lease duration %s minus safety buffer %s",
			c.ExtendInterval, c.LeaseDuration, c.SafetyBuffer,
		)
	}
	return nil
}

func (c *QueueConfig) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("queue batch size must be positive, got %d", c.BatchSize)
	}
	if c.InitialBackoff <= 0 || c.MaxBackoff < c.InitialBackoff {
		return fmt.Errorf("queue backoff window invalid: initial %s, max %s", c.InitialBackoff, c.MaxBackoff)
	}
	return nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Lock.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid lock config: %w", err)
	}
	if err := cfg.Queue.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid queue config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:       "8889", // Test port
			CronSecret: "test-cron-secret",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
		},
		CORS: CORSConfig{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Lock: LockConfig{
			LeaseDuration:  30 * time.Second,
			ExtendInterval: 20 * time.Second,
			SafetyBuffer:   5 * time.Second,
			FailureLimit:   3,
			SweepBatch:     100,
		},
		Token: TokenConfig{
			TTL:           168 * time.Hour,
			ShortGrace:    5 * time.Minute,
			ExtendedGrace: 15 * time.Minute,
		},
		Queue: QueueConfig{
			BatchSize:         10,
			DefaultMaxRetries: 5,
			InitialBackoff:    30 * time.Second,
			MaxBackoff:        time.Hour,
			VisibilityTimeout: 10 * time.Minute,
		},
		Admin: AdminConfig{
			IdentitySecret: "test-identity-secret",
		},
	}
}

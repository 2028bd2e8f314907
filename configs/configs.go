// Package configs parses application configuration from the environment.
package configs

import (
	"time"

	"github.com/caarlos0/env/v6"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "A11Y_API_"

type Config struct {
	// -- Server --

	Host                 string        `env:"HOST"`
	Port                 int           `env:"PORT" envDefault:"3000"`
	ServerRequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" envDefault:"60s"`

	// -- Database --

	DatabaseDSN  string `env:"DATABASE_DSN" envDefault:"a11y.db"`
	DatabaseType string `env:"DATABASE_TYPE" envDefault:"sqlite"`

	// -- Notifications --

	// If set, user facing notifications (save success/failure) are POSTed
	// to this URL as JSON in addition to being logged.
	NotificationWebhookUrl     string        `env:"NOTIFICATION_WEBHOOK_URL"`
	NotificationWebhookTimeout time.Duration `env:"NOTIFICATION_WEBHOOK_TIMEOUT" envDefault:"30s"`
	NotificationMaxSendRate    int           `env:"NOTIFICATION_MAX_SEND_RATE" envDefault:"10"`
	NotificationQueueCapacity  uint          `env:"NOTIFICATION_QUEUE_CAPACITY" envDefault:"100"`
	NotificationWorkerCount    uint          `env:"NOTIFICATION_WORKER_COUNT" envDefault:"1"`

	// -- Idempotency middleware --

	DisableIdempotencyMiddleware      bool   `env:"DISABLE_IDEMPOTENCY_MIDDLEWARE" envDefault:"false"`
	IdempotencyMiddlewareDatabaseType string `env:"IDEMPOTENCY_MIDDLEWARE_DATABASE_TYPE" envDefault:"local"`
	IdempotencyMiddlewareRedisURL     string `env:"IDEMPOTENCY_MIDDLEWARE_REDIS_URL"`

	// -- Misc --

	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	EnableTracing  bool   `env:"ENABLE_TRACING" envDefault:"false"`
	TraceProjectID string `env:"TRACE_PROJECT_ID"`
}

// Parse parses environment variables to a valid Config.
func Parse() (*Config, error) {
	cfg := Config{}
	err := env.Parse(&cfg, env.Options{Prefix: envPrefix})
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ConfigureLogger sets the log level for the global logrus instance.
func ConfigureLogger(logLevel string) {
	lvl, err := log.ParseLevel(logLevel)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}

// internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ServiceVersion  string        `env:"SERVICE_VERSION" envDefault:"dev"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
	TimeZone        string        `env:"APP_TIMEZONE" envDefault:"Asia/Seoul"`

	DatabaseURL  string `env:"DATABASE_URL"`
	DBAutoCreate bool   `env:"DB_AUTO_CREATE" envDefault:"false"`
	PSQLHost     string `env:"PSQL_HOST" envDefault:"localhost"`
	PSQLPort     string `env:"PSQL_PORT" envDefault:"5432"`
	PSQLUser     string `env:"PSQL_USER" envDefault:"postgres"`
	PSQLPass     string `env:"PSQL_PASSWORD" envDefault:"postgres"`
	PSQLDBName   string `env:"PSQL_DB_NAME" envDefault:"campaignhub"`
	PSQLSSLMode  string `env:"PSQL_SSLMODE" envDefault:"disable"`

	JWTSecret           string `env:"JWT_SECRET" envDefault:"dev"`
	JWTExpiresInSeconds int64  `env:"JWT_EXPIRES_IN_SECONDS" envDefault:"86400"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"60s"`

	AMQPURL   string `env:"AMQP_URL"`
	AMQPQueue string `env:"AMQP_QUEUE" envDefault:"campaign_events"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM" envDefault:"no-reply@campaignhub.local"`
	SMTPUseTLS   bool   `env:"SMTP_USE_TLS" envDefault:"false"`

	AWSRegion          string `env:"AWS_REGION" envDefault:"ap-northeast-2"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	S3Bucket           string `env:"S3_BUCKET_NAME"`
	S3PublicBaseURL    string `env:"S3_PUBLIC_BASE_URL"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = cfg.buildDatabaseURL()
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) buildDatabaseURL() string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.PSQLUser, c.PSQLPass),
		Host:   c.PSQLHost + ":" + c.PSQLPort,
		Path:   c.PSQLDBName,
	}
	q := u.Query()
	q.Set("sslmode", c.PSQLSSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Location is the zone used to decide what "today" means for visit dates and ages.
func (c *Config) Location() (*time.Location, error) {
	if strings.TrimSpace(c.TimeZone) == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

func (c *Config) CacheEnabled() bool   { return c.RedisAddr != "" }
func (c *Config) EventsEnabled() bool  { return c.AMQPURL != "" }
func (c *Config) MailEnabled() bool    { return c.SMTPHost != "" }
func (c *Config) StorageEnabled() bool { return c.S3Bucket != "" }

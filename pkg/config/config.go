package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix is passed to envconfig; every field carries an explicit RAILPARTS_ tag.
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Cart         CartConfig
	Catalog      CatalogConfig
	Quote        QuoteConfig
	Sendgrid     SendgridConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"RAILPARTS_APP_ENV" default:"development"`
	Port         string `envconfig:"RAILPARTS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"RAILPARTS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RAILPARTS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"RAILPARTS_DB_DSN"`
	Driver string `envconfig:"RAILPARTS_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"RAILPARTS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"RAILPARTS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"RAILPARTS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"RAILPARTS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"RAILPARTS_REDIS_URL"`
	Address      string        `envconfig:"RAILPARTS_REDIS_ADDR"`
	Password     string        `envconfig:"RAILPARTS_REDIS_PASSWORD"`
	DB           int           `envconfig:"RAILPARTS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RAILPARTS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RAILPARTS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RAILPARTS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RAILPARTS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RAILPARTS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CartConfig struct {
	TTL               time.Duration `envconfig:"RAILPARTS_CART_TTL" default:"720h"`
	ImageBaseURL      string        `envconfig:"RAILPARTS_CART_IMAGE_BASE_URL" default:"/images/products"`
	FallbackImagePath string        `envconfig:"RAILPARTS_CART_FALLBACK_IMAGE" default:"/images/products/placeholder.webp"`
}

type CatalogConfig struct {
	BaseURL string        `envconfig:"RAILPARTS_CATALOG_BASE_URL"`
	APIKey  string        `envconfig:"RAILPARTS_CATALOG_API_KEY"`
	Timeout time.Duration `envconfig:"RAILPARTS_CATALOG_TIMEOUT" default:"10s"`
}

type QuoteConfig struct {
	OperatorEmail string `envconfig:"RAILPARTS_QUOTE_OPERATOR_EMAIL"`
	BCCEmail      string `envconfig:"RAILPARTS_QUOTE_BCC_EMAIL"`
}

type SendgridConfig struct {
	APIKey      string `envconfig:"RAILPARTS_SENDGRID_API_KEY"`
	DefaultFrom string `envconfig:"RAILPARTS_SENDGRID_FROM_EMAIL"`
}

type RateLimitConfig struct {
	QuoteWindow       time.Duration `envconfig:"RAILPARTS_RATE_LIMIT_QUOTE_WINDOW" default:"1m"`
	QuoteIPLimit      int           `envconfig:"RAILPARTS_RATE_LIMIT_QUOTE_IP_LIMIT" default:"5"`
	NewsletterWindow  time.Duration `envconfig:"RAILPARTS_RATE_LIMIT_NEWSLETTER_WINDOW" default:"1m"`
	NewsletterIPLimit int           `envconfig:"RAILPARTS_RATE_LIMIT_NEWSLETTER_IP_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"RAILPARTS_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"RAILPARTS_AUTO_MIGRATE" default:"false"`
}

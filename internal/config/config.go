// Package config provides unified configuration loading for the parts engine.
// Supports YAML files, environment variables, and programmatic overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fgauto/parts-engine/internal/tier"
)

// Config holds all configuration for the parts engine.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Cache         CacheConfig         `yaml:"cache"`
	Catalog       CatalogConfig       `yaml:"catalog"`
	Business      BusinessConfig      `yaml:"business"`
	Payments      PaymentsConfig      `yaml:"payments"`
	Notifications NotificationsConfig `yaml:"notifications"`
	VinDecoder    VinDecoderConfig    `yaml:"vin_decoder"`
	Defaults      DefaultsConfig      `yaml:"defaults"`
	Tiers         TiersConfig         `yaml:"tiers"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	RequestTimeout   time.Duration `yaml:"request_timeout"`
	IdleTimeout      time.Duration `yaml:"idle_timeout"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
}

// DatabaseConfig holds blob-store connection settings.
type DatabaseConfig struct {
	Driver   string         `yaml:"driver"` // sqlite or postgres
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// SQLiteConfig holds SQLite-specific settings.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// PostgresConfig holds Postgres-specific settings.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// CacheConfig holds decoded-VIN cache settings.
type CacheConfig struct {
	Driver     string        `yaml:"driver"` // memory or redis
	TTL        time.Duration `yaml:"ttl"`
	MaxEntries int           `yaml:"max_entries"`
	Redis      RedisConfig   `yaml:"redis"`
}

// RedisConfig holds Redis-specific settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// CatalogConfig points at the catalog dataset file.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// BusinessConfig identifies the shop behind the storefront.
type BusinessConfig struct {
	Name           string `yaml:"name"`
	WhatsAppNumber string `yaml:"whatsapp_number"`
	Email          string `yaml:"email"`
}

// PaymentsConfig holds hosted payment page links.
type PaymentsConfig struct {
	PaystackPaymentPage string `yaml:"paystack_payment_page"`
	StripePaymentLink   string `yaml:"stripe_payment_link"`
}

// NotificationsConfig holds outbound webhook settings. The webhook only fires
// for Business-tier sessions.
type NotificationsConfig struct {
	WebhookURL string        `yaml:"webhook_url"`
	Timeout    time.Duration `yaml:"timeout"`
}

// VinDecoderConfig holds vPIC client settings.
type VinDecoderConfig struct {
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// DefaultsConfig holds new-session defaults.
type DefaultsConfig struct {
	Currency string `yaml:"currency"`
	Language string `yaml:"language"`
}

// TiersConfig holds plan descriptions and activation codes.
type TiersConfig struct {
	Plans       map[tier.Tier]tier.Plan `yaml:"plans"`
	AccessCodes map[string]tier.Tier    `yaml:"access_codes"`
}

// Catalog converts the section into the tier package's catalog type.
func (t TiersConfig) Catalog() tier.Catalog {
	return tier.Catalog{Plans: t.Plans, AccessCodes: t.AccessCodes}
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	ServiceName string `yaml:"service_name"`
}

// Load reads configuration from a YAML file and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// DefaultConfig returns a configuration with sensible defaults for development.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             8090,
			ReadTimeout:      30 * time.Second,
			WriteTimeout:     30 * time.Second,
			RequestTimeout:   30 * time.Second,
			IdleTimeout:      120 * time.Second,
			GracefulShutdown: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			SQLite: SQLiteConfig{
				Path: "/tmp/parts-engine.db",
			},
		},
		Cache: CacheConfig{
			Driver:     "memory",
			TTL:        24 * time.Hour,
			MaxEntries: 10000,
			Redis: RedisConfig{
				Addr:     "localhost:6379",
				DB:       0,
				PoolSize: 10,
			},
		},
		Catalog: CatalogConfig{
			Path: "data/catalog.yaml",
		},
		Business: BusinessConfig{
			Name:           "F&G Auto Troubleshooter",
			WhatsAppNumber: "2348000000000",
			Email:          "orders@fgauto.example.com",
		},
		Notifications: NotificationsConfig{
			Timeout: 10 * time.Second,
		},
		VinDecoder: VinDecoderConfig{
			BaseURL:  "https://vpic.nhtsa.dot.gov/api/vehicles",
			Timeout:  15 * time.Second,
			CacheTTL: 24 * time.Hour,
		},
		Defaults: DefaultsConfig{
			Currency: "NGN",
			Language: "en",
		},
		Tiers: TiersConfig{
			Plans: map[tier.Tier]tier.Plan{
				tier.Free: {
					Name:     "Free",
					Features: []string{"Troubleshooter", "Parts catalog", "Cart & orders"},
				},
				tier.Pro: {
					Name:     "Pro",
					Features: []string{"Everything in Free", "Fitment-only filter", "Invoices"},
				},
				tier.Business: {
					Name:     "Business",
					Features: []string{"Everything in Pro", "Inventory editor", "Fitment builder", "Webhook notifications", "Partner onboarding"},
				},
			},
			AccessCodes: map[string]tier.Tier{},
		},
		Observability: ObservabilityConfig{
			LogLevel:    "debug",
			LogFormat:   "json",
			ServiceName: "parts-engine",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("invalid database driver: %s", c.Database.Driver)
	}
	if c.Cache.Driver != "memory" && c.Cache.Driver != "redis" {
		return fmt.Errorf("invalid cache driver: %s", c.Cache.Driver)
	}
	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog path is required")
	}
	return nil
}

// DatabaseDriverName returns the database/sql driver name for the configured
// blob store.
func (c *Config) DatabaseDriverName() string {
	if c.Database.Driver == "postgres" {
		return "postgres"
	}
	return "sqlite3"
}

// DatabaseDSN returns the appropriate database connection string.
func (c *Config) DatabaseDSN() string {
	if c.Database.Driver == "postgres" {
		return c.Database.Postgres.DSN
	}
	return c.Database.SQLite.Path
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SERVER_PORT"); v != "" {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err == nil {
			cfg.Server.Port = port
		}
	}

	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		if strings.HasPrefix(v, "sqlite:") {
			cfg.Database.Driver = "sqlite"
			cfg.Database.SQLite.Path = strings.TrimPrefix(v, "sqlite:")
		} else if strings.HasPrefix(v, "postgres") {
			cfg.Database.Driver = "postgres"
			cfg.Database.Postgres.DSN = v
		}
	}

	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Cache.Driver = "redis"
		cfg.Cache.Redis.Addr = strings.TrimPrefix(v, "redis://")
	}

	if v := os.Getenv("CATALOG_PATH"); v != "" {
		cfg.Catalog.Path = v
	}

	if v := os.Getenv("WEBHOOK_URL"); v != "" {
		cfg.Notifications.WebhookURL = v
	}

	if v := os.Getenv("WHATSAPP_NUMBER"); v != "" {
		cfg.Business.WhatsAppNumber = v
	}

	if v := os.Getenv("PAYSTACK_PAYMENT_PAGE"); v != "" {
		cfg.Payments.PaystackPaymentPage = v
	}

	if v := os.Getenv("STRIPE_PAYMENT_LINK"); v != "" {
		cfg.Payments.StripePaymentLink = v
	}

	if v := os.Getenv("VPIC_BASE_URL"); v != "" {
		cfg.VinDecoder.BaseURL = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
}

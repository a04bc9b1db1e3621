package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	pkgconfig "github.com/Mohahamed99-by/shoe-store-morocco/pkg/config"
)

// Relay drivers.
const (
	RelayLog     = "log"
	RelayEmailJS = "emailjs"
	RelayKafka   = "kafka"
)

// Catalog holds all configuration for the catalog service.
type Catalog struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"PORT" envDefault:"3001"`

	// Catalog seed file; empty uses the embedded seed.
	SeedFile string `env:"CATALOG_SEED_FILE"`

	// Deadline for all readiness checks together.
	ReadinessTimeoutSeconds int `env:"READINESS_TIMEOUT_SECONDS" envDefault:"5"`

	// Cache-Control max-age for catalog responses, in seconds.
	CacheMaxAge int `env:"CACHE_MAX_AGE_SECONDS" envDefault:"60"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Per-client rate limit; 0 disables it.
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"40"`

	// Key the rate limit on forwarded headers. Set only behind a proxy that
	// overwrites X-Forwarded-For.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// Pprof debug endpoints (IP allowlist in CIDR notation)
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"10.0.0.0/8,172.16.0.0/12,192.168.0.0/16,127.0.0.0/8,::1/128" envSeparator:","`
}

// LoadCatalog reads catalog service configuration from environment variables.
func LoadCatalog() (*Catalog, error) {
	cfg := &Catalog{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load catalog config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}
	if cfg.ReadinessTimeoutSeconds < 1 {
		return nil, fmt.Errorf("READINESS_TIMEOUT_SECONDS must be positive, got %d", cfg.ReadinessTimeoutSeconds)
	}
	if cfg.CacheMaxAge < 0 {
		return nil, fmt.Errorf("CACHE_MAX_AGE_SECONDS must not be negative, got %d", cfg.CacheMaxAge)
	}
	if cfg.RateLimitRPS < 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS must not be negative, got %g", cfg.RateLimitRPS)
	}
	if cfg.OTELSampleRate < 0 || cfg.OTELSampleRate > 1.0 {
		return nil, fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", cfg.OTELSampleRate)
	}
	return cfg, nil
}

// Storefront holds all configuration for the storefront session.
type Storefront struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"warn"`

	// Catalog service base URL.
	CatalogURL string `env:"CATALOG_URL" envDefault:"http://localhost:3001"`

	// Timeout for catalog and relay HTTP calls.
	HTTPTimeoutSeconds int `env:"HTTP_TIMEOUT_SECONDS" envDefault:"10"`

	// Order relay
	RelayDriver string `env:"RELAY_DRIVER" envDefault:"log"`

	EmailJSEndpoint   string `env:"EMAILJS_ENDPOINT" envDefault:"https://api.emailjs.com/api/v1.0/email/send"`
	EmailJSServiceID  string `env:"EMAILJS_SERVICE_ID"`
	EmailJSTemplateID string `env:"EMAILJS_TEMPLATE_ID"`
	EmailJSUserID     string `env:"EMAILJS_USER_ID"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	OrderTopic   string   `env:"ORDER_TOPIC" envDefault:"shoestore.order.submitted"`
}

// LoadStorefront reads storefront configuration from environment variables.
func LoadStorefront() (*Storefront, error) {
	cfg := &Storefront{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// HTTPTimeout returns the configured timeout as a duration.
func (c *Storefront) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// validate checks configuration invariants.
func (c *Storefront) validate() error {
	u, err := url.Parse(c.CatalogURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid CATALOG_URL: %q", c.CatalogURL)
	}
	c.CatalogURL = strings.TrimRight(c.CatalogURL, "/")

	if c.HTTPTimeoutSeconds < 1 {
		return fmt.Errorf("HTTP_TIMEOUT_SECONDS must be positive, got %d", c.HTTPTimeoutSeconds)
	}

	switch c.RelayDriver {
	case RelayLog:
	case RelayEmailJS:
		var missing []string
		if c.EmailJSServiceID == "" {
			missing = append(missing, "EMAILJS_SERVICE_ID")
		}
		if c.EmailJSTemplateID == "" {
			missing = append(missing, "EMAILJS_TEMPLATE_ID")
		}
		if c.EmailJSUserID == "" {
			missing = append(missing, "EMAILJS_USER_ID")
		}
		if len(missing) > 0 {
			return fmt.Errorf("%s required for the emailjs relay", strings.Join(missing, ", "))
		}
	case RelayKafka:
		if len(c.KafkaBrokers) == 0 {
			return fmt.Errorf("KAFKA_BROKERS is required for the kafka relay")
		}
		if c.OrderTopic == "" {
			return fmt.Errorf("ORDER_TOPIC is required for the kafka relay")
		}
	default:
		return fmt.Errorf("unknown RELAY_DRIVER %q (want log, emailjs or kafka)", c.RelayDriver)
	}
	return nil
}

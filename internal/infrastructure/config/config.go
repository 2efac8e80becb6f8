package config

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// DevJWTSecret is used only when JWT_SECRET is unset. It is public and must
// never sign production tokens; Validate rejects it when ENV=production.
const DevJWTSecret = "dev-local-key-change-me-please-change-this-default-to-a-secure-value-01234567"

const minSecretLength = 32

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

var (
	ErrDevSecretInProduction = errors.New("config: JWT_SECRET must be set explicitly in production")
	ErrShortSecret           = errors.New("config: JWT_SECRET must be at least 32 bytes")
)

type Config struct {
	Port            string        `env:"PORT, default=8080"`
	Env             string        `env:"ENV, default=development"`
	LogLevel        string        `env:"LOG_LEVEL, default=info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`
	EnableSeeding   bool          `env:"ENABLE_SEEDING, default=false"`
	// TrustedProxies lists CIDRs whose X-Forwarded-For is believed. Empty means
	// the client IP is always the TCP peer.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	JWT       JWTConfig
	Store     StoreConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type JWTConfig struct {
	Secret   string `env:"JWT_SECRET"`
	Issuer   string `env:"JWT_ISSUER, default=fleet-local"`
	Audience string `env:"JWT_AUDIENCE, default=fleet-local-audience"`

	// UsingDevSecret is set by Load when Secret fell back to DevJWTSecret.
	UsingDevSecret bool
}

type StoreConfig struct {
	Driver      string `env:"STORE_DRIVER, default=sqlite"`
	SQLitePath  string `env:"SQLITE_PATH, default=fleet.db"`
	DatabaseURL string `env:"DATABASE_URL"`
	MongoURI    string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	MongoDB     string `env:"MONGO_DB, default=fleet"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type RateLimitConfig struct {
	Enabled   bool `env:"RATE_LIMIT_ENABLED, default=false"`
	PerMinute int  `env:"RATE_LIMIT_PER_MINUTE, default=100"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS, default=http://127.0.0.1:4200,http://localhost:4200"`
}

// Load reads configuration from environment variables using go-envconfig.
// It is called once at startup; the result is passed to the components that
// need it.
func Load() *Config {
	cfg, err := LoadContext(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadContext reads configuration through the given lookuper and applies the
// development secret fallback.
func LoadContext(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, err
	}
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = DevJWTSecret
		cfg.JWT.UsingDevSecret = true
	}
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// SeedingEnabled mirrors the rule that sample data is only written in
// development or when explicitly requested.
func (c *Config) SeedingEnabled() bool {
	return c.EnableSeeding || strings.EqualFold(c.Env, "development")
}

// TrustedProxyNets parses TrustedProxies.
func (c *Config) TrustedProxyNets() ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(c.TrustedProxies))
	for _, raw := range c.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		_, n, err := net.ParseCIDR(raw)
		if err != nil {
			return nil, fmt.Errorf("config: invalid TRUSTED_PROXIES entry %q: %w", raw, err)
		}
		nets = append(nets, n)
	}
	return nets, nil
}

// Validate rejects configurations that must not start.
func (c *Config) Validate() error {
	if c.IsProduction() && c.JWT.UsingDevSecret {
		return ErrDevSecretInProduction
	}
	if len(c.JWT.Secret) < minSecretLength {
		return ErrShortSecret
	}
	switch c.Store.Driver {
	case DriverSQLite, DriverMongo:
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			return errors.New("config: DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if c.RateLimit.Enabled && c.RateLimit.PerMinute <= 0 {
		return errors.New("config: RATE_LIMIT_PER_MINUTE must be positive")
	}
	if _, err := c.TrustedProxyNets(); err != nil {
		return err
	}
	return nil
}

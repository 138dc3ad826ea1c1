package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

var knownWeakSecrets = []string{
	"change-me", "dev-secret-change-me", "secret", "admin", "password",
}

type Config struct {
	Port               int    `env:"PORT" envDefault:"8080"`
	DatabaseURL        string `env:"DATABASE_URL,required"`
	RedisURL           string `env:"REDIS_URL,required"`
	JWTSecret          string `env:"JWT_SECRET,required"`
	AccessTokenTTLMins int    `env:"ACCESS_TOKEN_TTL_MINS" envDefault:"15"`
	RefreshTokenTTLHrs int    `env:"REFRESH_TOKEN_TTL_HOURS" envDefault:"168"`
	SessionTTLMins     int    `env:"QR_SESSION_TTL_MINS" envDefault:"5"`
	HandshakeTTLMins   int    `env:"WA_HANDSHAKE_TTL_MINS" envDefault:"5"`
	WhatsappStoreDSN   string `env:"WA_STORE_DSN"`
	LogLevel           string `env:"LOG_LEVEL" envDefault:"info"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenTTLMins) * time.Minute
}

func (c *Config) RefreshTokenTTL() time.Duration {
	return time.Duration(c.RefreshTokenTTLHrs) * time.Hour
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMins) * time.Minute
}

func (c *Config) HandshakeTTL() time.Duration {
	return time.Duration(c.HandshakeTTLMins) * time.Minute
}

// WhatsappDSN falls back to the main database when no dedicated
// device-store DSN is configured.
func (c *Config) WhatsappDSN() string {
	if c.WhatsappStoreDSN != "" {
		return c.WhatsappStoreDSN
	}
	return c.DatabaseURL
}

func (c *Config) Validate(isProduction bool) error {
	if isProduction {
		if err := validateSecret("JWT_SECRET", c.JWTSecret); err != nil {
			return err
		}
		if strings.HasPrefix(c.RedisURL, "redis://") {
			log.Warn().Msg("REDIS_URL uses redis:// (not TLS) in production: consider using rediss://")
		}
	}
	if c.SessionTTLMins <= 0 {
		return fmt.Errorf("QR_SESSION_TTL_MINS must be positive")
	}
	return nil
}

func validateSecret(name, value string) error {
	if len(value) < 32 {
		return fmt.Errorf("%s must be at least 32 characters in production (generate with: openssl rand -base64 32)", name)
	}
	for _, weak := range knownWeakSecrets {
		if value == weak {
			return fmt.Errorf("%s is a known weak default; set a strong secret in production", name)
		}
	}
	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

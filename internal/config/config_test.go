package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigMethods(t *testing.T) {
	t.Run("Addr returns formatted port", func(t *testing.T) {
		cfg := &Config{Port: 3000}
		assert.Equal(t, ":3000", cfg.Addr())
	})

	t.Run("AccessTokenTTL converts minutes to duration", func(t *testing.T) {
		cfg := &Config{AccessTokenTTLMins: 15}
		assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL())
	})

	t.Run("RefreshTokenTTL converts hours to duration", func(t *testing.T) {
		cfg := &Config{RefreshTokenTTLHrs: 168}
		assert.Equal(t, 168*time.Hour, cfg.RefreshTokenTTL())
	})

	t.Run("SessionTTL converts minutes to duration", func(t *testing.T) {
		cfg := &Config{SessionTTLMins: 5}
		assert.Equal(t, 5*time.Minute, cfg.SessionTTL())
	})

	t.Run("WhatsappDSN falls back to the main database", func(t *testing.T) {
		cfg := &Config{DatabaseURL: "postgres://localhost/hrmate"}
		assert.Equal(t, "postgres://localhost/hrmate", cfg.WhatsappDSN())

		cfg.WhatsappStoreDSN = "postgres://localhost/wa"
		assert.Equal(t, "postgres://localhost/wa", cfg.WhatsappDSN())
	})
}

func TestLoad(t *testing.T) {
	originalEnv := map[string]string{
		"PORT":                    os.Getenv("PORT"),
		"DATABASE_URL":            os.Getenv("DATABASE_URL"),
		"REDIS_URL":               os.Getenv("REDIS_URL"),
		"JWT_SECRET":              os.Getenv("JWT_SECRET"),
		"ACCESS_TOKEN_TTL_MINS":   os.Getenv("ACCESS_TOKEN_TTL_MINS"),
		"REFRESH_TOKEN_TTL_HOURS": os.Getenv("REFRESH_TOKEN_TTL_HOURS"),
		"QR_SESSION_TTL_MINS":     os.Getenv("QR_SESSION_TTL_MINS"),
		"WA_HANDSHAKE_TTL_MINS":   os.Getenv("WA_HANDSHAKE_TTL_MINS"),
		"LOG_LEVEL":               os.Getenv("LOG_LEVEL"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	t.Run("loads config with defaults", func(t *testing.T) {
		os.Setenv("DATABASE_URL", "postgres://localhost/test")
		os.Setenv("REDIS_URL", "redis://localhost:6379")
		os.Setenv("JWT_SECRET", "test-secret")
		os.Unsetenv("PORT")
		os.Unsetenv("ACCESS_TOKEN_TTL_MINS")
		os.Unsetenv("QR_SESSION_TTL_MINS")
		os.Unsetenv("LOG_LEVEL")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "postgres://localhost/test", cfg.DatabaseURL)
		assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
		assert.Equal(t, 15, cfg.AccessTokenTTLMins)
		assert.Equal(t, 5, cfg.SessionTTLMins)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("loads custom values", func(t *testing.T) {
		os.Setenv("DATABASE_URL", "postgres://localhost/test")
		os.Setenv("REDIS_URL", "redis://localhost:6379")
		os.Setenv("JWT_SECRET", "test-secret")
		os.Setenv("PORT", "3000")
		os.Setenv("QR_SESSION_TTL_MINS", "10")
		os.Setenv("LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, 10, cfg.SessionTTLMins)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("fails without required DATABASE_URL", func(t *testing.T) {
		os.Unsetenv("DATABASE_URL")
		os.Setenv("REDIS_URL", "redis://localhost:6379")
		os.Setenv("JWT_SECRET", "test-secret")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("fails without required JWT_SECRET", func(t *testing.T) {
		os.Setenv("DATABASE_URL", "postgres://localhost/test")
		os.Setenv("REDIS_URL", "redis://localhost:6379")
		os.Unsetenv("JWT_SECRET")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			JWTSecret:      "0123456789abcdef0123456789abcdef",
			RedisURL:       "rediss://localhost:6380",
			SessionTTLMins: 5,
		}
	}

	t.Run("passes outside production with weak secret", func(t *testing.T) {
		cfg := base()
		cfg.JWTSecret = "change-me"
		assert.NoError(t, cfg.Validate(false))
	})

	t.Run("rejects short secret in production", func(t *testing.T) {
		cfg := base()
		cfg.JWTSecret = "short"
		assert.Error(t, cfg.Validate(true))
	})

	t.Run("rejects known weak secret in production", func(t *testing.T) {
		cfg := base()
		cfg.JWTSecret = "change-me-change-me-change-me-me"
		assert.NoError(t, cfg.Validate(true))

		cfg.JWTSecret = "change-me"
		assert.Error(t, cfg.Validate(true))
	})

	t.Run("rejects non-positive session TTL", func(t *testing.T) {
		cfg := base()
		cfg.SessionTTLMins = 0
		assert.Error(t, cfg.Validate(false))
	})
}

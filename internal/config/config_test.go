package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	base := Config{
		Port:      "3017",
		JWTSecret: "test-secret-key-12345678901234567890123456789012",
		Env:       "development",
	}

	t.Run("valid development config", func(t *testing.T) {
		cfg := base
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing JWT secret", func(t *testing.T) {
		cfg := base
		cfg.JWTSecret = ""
		err := cfg.Validate()
		assert.ErrorContains(t, err, "JWT_SECRET")
	})

	t.Run("missing port", func(t *testing.T) {
		cfg := base
		cfg.Port = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("production requires long secret", func(t *testing.T) {
		cfg := base
		cfg.Env = "production"
		cfg.JWTSecret = "short"
		cfg.DBPassword = "s0me-strong-password"
		err := cfg.Validate()
		assert.ErrorContains(t, err, "32 characters")
	})

	t.Run("production rejects default db password", func(t *testing.T) {
		cfg := base
		cfg.Env = "production"
		cfg.DBPassword = "password"
		err := cfg.Validate()
		assert.ErrorContains(t, err, "DB_PASSWORD")
	})
}

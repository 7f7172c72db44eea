package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("PORT", "")
		t.Setenv("RATE_LIMIT_RPS", "")
		t.Setenv("RATE_LIMIT_BURST", "")
		t.Setenv("JWT_REFRESH_SECRET", "")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "s3cret", cfg.JWTRefreshSecret)
		assert.Equal(t, 10.0, cfg.RateLimitRPS)
		assert.Equal(t, 20, cfg.RateLimitBurst)
		assert.Equal(t, 25, cfg.DBMaxOpenConns)
		assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
	})

	t.Run("pool overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("DB_MAX_OPEN_CONNS", "50")
		t.Setenv("DB_MAX_IDLE_CONNS", "10")
		t.Setenv("DB_CONN_MAX_LIFETIME", "90s")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 50, cfg.DBMaxOpenConns)
		assert.Equal(t, 10, cfg.DBMaxIdleConns)
		assert.Equal(t, 90*time.Second, cfg.DBConnMaxLifetime)
	})

	t.Run("malformed lifetime", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("DB_CONN_MAX_LIFETIME", "forever")

		_, err := Load()
		assert.ErrorContains(t, err, "DB_CONN_MAX_LIFETIME")
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		cfg, err := Load()
		assert.ErrorIs(t, err, ErrEmptyJWTSecret)
		assert.Nil(t, cfg)
	})

	t.Run("malformed burst", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("RATE_LIMIT_BURST", "many")

		_, err := Load()
		assert.Error(t, err)
	})
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("ORDER_STATUS_STRICT", "")
	t.Setenv("PUBLIC_DROPDOWNS", "")

	cfg, err := Load("procurement-service")
	require.NoError(t, err)

	assert.Equal(t, "procurement-service", cfg.ServiceName)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.False(t, cfg.Orders.StrictStatus)
	assert.True(t, cfg.Session.PublicDropdowns)
	assert.Contains(t, cfg.DB.GetDSN(), "host=db.internal")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ORDER_STATUS_STRICT", "true")
	t.Setenv("PUBLIC_DROPDOWNS", "false")
	t.Setenv("DB_CONN_MAX_LIFETIME", "90s")
	t.Setenv("DB_LOG_LEVEL", "silent")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("RATE_LIMIT", "")

	cfg, err := Load("procurement-service")
	require.NoError(t, err)

	assert.True(t, cfg.Orders.StrictStatus)
	assert.False(t, cfg.Session.PublicDropdowns)
	assert.Equal(t, 90*time.Second, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, logger.Silent, cfg.DB.LogLevel)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Empty(t, cfg.RateLimit.Rate)
}

func TestLoad_RejectsEmptySigningKey(t *testing.T) {
	t.Setenv("SESSION_SIGNING_KEY", "")

	_, err := Load("procurement-service")
	assert.Error(t, err)
}

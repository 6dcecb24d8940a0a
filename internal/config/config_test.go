package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("SOURCE_MODE", "rest")
	t.Setenv("BACKEND_BASE_URL", "http://backend.local/api/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://backend.local/api", cfg.BackendBaseURL)
	assert.Equal(t, 12*time.Hour, cfg.JWTTTL)
	assert.Equal(t, int32(0), cfg.CurrencyDecimals)
	assert.Equal(t, "Asia/Jakarta", cfg.HotelLocation.String())
	assert.Equal(t, 5*time.Minute, cfg.Notify.PollInterval)
	assert.Equal(t, 2, cfg.Notify.OverdueHighDays)
	assert.Equal(t, 7, cfg.Notify.OverdueUrgentDays)
	assert.Equal(t, 4.0, cfg.Notify.StaleHighHours)
	assert.Equal(t, 24.0, cfg.Notify.StaleUrgentHours)
}

func TestLoad_RESTModeRequiresBackendURL(t *testing.T) {
	t.Setenv("SOURCE_MODE", "rest")
	t.Setenv("BACKEND_BASE_URL", "")

	_, err := Load()
	assert.ErrorContains(t, err, "BACKEND_BASE_URL")
}

func TestLoad_DBModeRequiresDatabaseURL(t *testing.T) {
	t.Setenv("SOURCE_MODE", "db")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoad_ProdRejectsDefaultSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SOURCE_MODE", "db")
	t.Setenv("DATABASE_URL", "hotel.db")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoad_InvertedThresholds(t *testing.T) {
	t.Setenv("SOURCE_MODE", "db")
	t.Setenv("DATABASE_URL", "hotel.db")
	t.Setenv("NOTIFY_OVERDUE_HIGH_DAYS", "10")
	t.Setenv("NOTIFY_OVERDUE_URGENT_DAYS", "3")

	_, err := Load()
	assert.ErrorContains(t, err, "NOTIFY_OVERDUE_URGENT_DAYS")
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("SOURCE_MODE", "db")
	t.Setenv("DATABASE_URL", "hotel.db")
	t.Setenv("BACKEND_TIMEOUT", "soon")

	_, err := Load()
	assert.ErrorContains(t, err, "BACKEND_TIMEOUT")
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/scheduling_test")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.IsProduction)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessTokenTTL)
	assert.Equal(t, "America/Chicago", cfg.BusinessTimezone)
	assert.Equal(t, 18, cfg.LeadTimeHours)
	assert.Equal(t, 12, cfg.BookingCutoffHour)
	assert.Equal(t, 2*time.Hour, cfg.DeliveryGrace)
	assert.Equal(t, 4*time.Hour, cfg.PickupGrace)
	assert.Equal(t, time.Duration(0), cfg.AutomationInterval)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("BUSINESS_TZ", "America/New_York")
	t.Setenv("LEAD_TIME_HOURS", "24")
	t.Setenv("BOOKING_CUTOFF_HOUR", "10")
	t.Setenv("DELIVERY_GRACE", "30m")
	t.Setenv("AUTOMATION_INTERVAL", "5m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction)
	assert.Equal(t, "America/New_York", cfg.BusinessTimezone)
	assert.Equal(t, 24, cfg.LeadTimeHours)
	assert.Equal(t, 10, cfg.BookingCutoffHour)
	assert.Equal(t, 30*time.Minute, cfg.DeliveryGrace)
	assert.Equal(t, 5*time.Minute, cfg.AutomationInterval)
}

func TestLoadValidation(t *testing.T) {
	t.Run("missing DSN", func(t *testing.T) {
		t.Setenv("DB_DSN", "")
		t.Setenv("JWT_SECRET", "test-secret")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("missing JWT secret", func(t *testing.T) {
		t.Setenv("DB_DSN", "postgres://localhost/scheduling_test")
		t.Setenv("JWT_SECRET", "")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad timezone", func(t *testing.T) {
		setRequired(t)
		t.Setenv("BUSINESS_TZ", "Mars/Olympus")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("cutoff hour out of range", func(t *testing.T) {
		setRequired(t)
		t.Setenv("BOOKING_CUTOFF_HOUR", "24")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		setRequired(t)
		t.Setenv("PICKUP_GRACE", "four hours")
		_, err := Load()
		assert.Error(t, err)
	})
}

package config_test

import (
	"testing"
	"time"

	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "minishop-marketplace", cfg.Service.Name)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, config.PaymentModeWallet, cfg.Payment.Mode)
	assert.False(t, cfg.Market.StrictListing)
	assert.Equal(t, 1024, cfg.Bus.QueueSize)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("STRICT_LISTING", "true")
	t.Setenv("PAYMENT_MODE", "simulated")
	t.Setenv("PAYMENT_SUCCESS_RATE", "0.25")
	t.Setenv("HTTP_ADDR", ":9090")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.Market.StrictListing)
	assert.Equal(t, config.PaymentModeSimulated, cfg.Payment.Mode)
	assert.InDelta(t, 0.25, cfg.Payment.SuccessRate, 1e-9)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	t.Run("unknown payment mode", func(t *testing.T) {
		t.Setenv("PAYMENT_MODE", "cash")
		_, err := config.LoadConfig()
		assert.Error(t, err)
	})

	t.Run("success rate out of range", func(t *testing.T) {
		t.Setenv("PAYMENT_SUCCESS_RATE", "1.5")
		_, err := config.LoadConfig()
		assert.Error(t, err)
	})
}

func TestNewTestConfigIsValid(t *testing.T) {
	assert.NoError(t, config.NewTestConfig().Validate())
}

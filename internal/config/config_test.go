package config

import (
	"testing"
	"time"

	ierr "github.com/flexprice/cryptapi/internal/errors"
	"github.com/flexprice/cryptapi/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaultConfig_IsValid(t *testing.T) {
	cfg := GetDefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "https://api.cryptapi.io/", cfg.CryptAPI.BaseURL)
	assert.Equal(t, "api.cryptapi.io", cfg.CryptAPI.Host)
	assert.Equal(t, 32, cfg.CryptAPI.MaxConnections)
	assert.Equal(t, 180*time.Second, cfg.CryptAPI.Timeout)
}

func TestConfiguration_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Configuration)
	}{
		{name: "base url is not a url", mutate: func(c *Configuration) { c.CryptAPI.BaseURL = "api.cryptapi.io" }},
		{name: "empty host", mutate: func(c *Configuration) { c.CryptAPI.Host = "" }},
		{name: "no connections", mutate: func(c *Configuration) { c.CryptAPI.MaxConnections = 0 }},
		{name: "no timeout", mutate: func(c *Configuration) { c.CryptAPI.Timeout = 0 }},
		{name: "no log level", mutate: func(c *Configuration) { c.Logging.Level = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, ierr.IsValidation(err))
		})
	}
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CRYPTAPI_CRYPTAPI_MAX_CONNECTIONS", "8")
	t.Setenv("CRYPTAPI_CRYPTAPI_TIMEOUT", "30s")
	t.Setenv("CRYPTAPI_PAYMENT_COIN", "trc20_usdt")
	t.Setenv("CRYPTAPI_LOGGING_LEVEL", "debug")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.CryptAPI.MaxConnections)
	assert.Equal(t, 30*time.Second, cfg.CryptAPI.Timeout)
	assert.Equal(t, "trc20_usdt", cfg.Payment.Coin)
	assert.Equal(t, types.LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, DefaultBaseURL, cfg.CryptAPI.BaseURL)
}

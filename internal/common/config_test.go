package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "surrealdb", config.Storage.Driver)
	assert.Equal(t, "info", config.Logging.Level)
	assert.NotEmpty(t, config.Clients.ExchangeRate.BaseURL)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig("does-not-exist.toml")
	require.NoError(t, err)
	assert.Equal(t, 8080, config.Server.Port)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "expensemanager.toml")
	content := `
environment = "production"

[server]
port = 9090

[storage]
driver = "memory"

[clients.exchange_rate]
base_url = "http://rates.internal/v4/latest"
timeout = "5s"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.True(t, config.IsProduction())
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, "memory", config.Storage.Driver)
	assert.Equal(t, "http://rates.internal/v4/latest", config.Clients.ExchangeRate.BaseURL)
	assert.Equal(t, "5s", config.Clients.ExchangeRate.Timeout)

	// Unset sections keep defaults.
	assert.Equal(t, "0.0.0.0", config.Server.Host)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("EXPMAN_PORT", "7070")
	t.Setenv("EXPMAN_LOG_LEVEL", "debug")
	t.Setenv("EXPMAN_STORAGE_DRIVER", "memory")
	t.Setenv("EXPMAN_RATES_BASE_URL", "http://localhost:9999/v4/latest")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 7070, config.Server.Port)
	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, "memory", config.Storage.Driver)
	assert.Equal(t, "http://localhost:9999/v4/latest", config.Clients.ExchangeRate.BaseURL)
}

func TestExchangeRateConfig_GetTimeout(t *testing.T) {
	cfg := ExchangeRateConfig{Timeout: "3s"}
	assert.Equal(t, "3s", cfg.GetTimeout().String())

	bad := ExchangeRateConfig{Timeout: "not-a-duration"}
	assert.Equal(t, "10s", bad.GetTimeout().String())
}

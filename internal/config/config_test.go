package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"DATA_PROVIDER", "HTTPS_PROXY", "REDIS_ADDR", "TELEGRAM_BOT_TOKEN",
		"TELEGRAM_CHAT_ID", "SQLITE_PATH", "METRICS_ADDR", "LOG_LEVEL", "WATCH_CRON"} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "yahoo", cfg.DataSource.Provider)
	assert.Equal(t, 60, cfg.Cache.TTLSeconds)
	assert.Equal(t, "1h", cfg.Analysis.DefaultTimeframe)
	assert.Equal(t, []Target{{Symbol: "BTC-USD", Timeframe: "1h"}}, cfg.Watch.Targets)
	assert.Empty(t, cfg.Database.SQLitePath)
	assert.False(t, cfg.TelegramEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_source:
  provider: binance
cache:
  ttl_seconds: 30
watch:
  cron: "0 0 * * * *"
  targets:
    - symbol: ETH-USD
      timeframe: 1d
telegram:
  bot_token: file-token
  chat_id: "1"
`), 0o600))
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "binance", cfg.DataSource.Provider)
	assert.Equal(t, 30, cfg.Cache.TTLSeconds)
	assert.Equal(t, "env-token", cfg.Telegram.BotToken)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []Target{{Symbol: "ETH-USD", Timeframe: "1d"}}, cfg.Watch.Targets)
	assert.True(t, cfg.TelegramEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_source: [unclosed"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"provider", func(c *Config) { c.DataSource.Provider = "ftx" }},
		{"default timeframe", func(c *Config) { c.Analysis.DefaultTimeframe = "4h" }},
		{"target timeframe", func(c *Config) { c.Watch.Targets = []Target{{Symbol: "BTC-USD", Timeframe: "1w"}} }},
		{"target symbol", func(c *Config) { c.Watch.Targets = []Target{{Timeframe: "1h"}} }},
		{"cron", func(c *Config) { c.Watch.Cron = "every minute" }},
		{"telegram half set", func(c *Config) { c.Telegram.BotToken = "x" }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
		{"negative ttl", func(c *Config) { c.Cache.TTLSeconds = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveToFile_RoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.DataSource.Provider = "mock"
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"CryptoPulse/internal/model"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when neither --config nor CONFIG_PATH is given.
const DefaultPath = "configs/config.yaml"

// Target is a watched (symbol, timeframe) pair.
type Target struct {
	Symbol    string `yaml:"symbol"`
	Timeframe string `yaml:"timeframe"`
}

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Provider            string `yaml:"provider"` // yahoo | binance | mock
		Proxy               string `yaml:"proxy"`
		FetchTimeoutSeconds int    `yaml:"fetch_timeout_seconds"`
	} `yaml:"data_source"`
	Cache struct {
		TTLSeconds    int    `yaml:"ttl_seconds"`
		RedisAddr     string `yaml:"redis_addr"`
		RedisPassword string `yaml:"redis_password"`
		RedisDB       int    `yaml:"redis_db"`
	} `yaml:"cache"`
	Analysis struct {
		DefaultSymbol    string   `yaml:"default_symbol"`
		DefaultTimeframe string   `yaml:"default_timeframe"`
		Symbols          []string `yaml:"symbols"`
	} `yaml:"analysis"`
	Sentiment struct {
		Enabled bool   `yaml:"enabled"`
		URL     string `yaml:"url"`
	} `yaml:"sentiment"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
		Polling  bool   `yaml:"polling"`
	} `yaml:"telegram"`
	Watch struct {
		Cron          string   `yaml:"cron"`
		Targets       []Target `yaml:"targets"`
		NotifyNeutral bool     `yaml:"notify_neutral"`
		RunOnStart    bool     `yaml:"run_on_start"`
	} `yaml:"watch"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // text | json
	} `yaml:"log"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		c.DataSource.Provider = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.DataSource.Proxy = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.RedisAddr = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		c.Metrics.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("WATCH_CRON"); v != "" {
		c.Watch.Cron = v
	}
}

func (c *Config) applyDefaults() {
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = "yahoo"
	}
	if c.DataSource.FetchTimeoutSeconds == 0 {
		c.DataSource.FetchTimeoutSeconds = 30
	}
	if c.Cache.TTLSeconds == 0 {
		c.Cache.TTLSeconds = 60
	}
	if c.Analysis.DefaultSymbol == "" {
		c.Analysis.DefaultSymbol = "BTC-USD"
	}
	if c.Analysis.DefaultTimeframe == "" {
		c.Analysis.DefaultTimeframe = string(model.Timeframe1h)
	}
	if len(c.Analysis.Symbols) == 0 {
		c.Analysis.Symbols = []string{"BTC-USD", "ETH-USD"}
	}
	if c.Sentiment.URL == "" {
		c.Sentiment.URL = "https://api.alternative.me/fng/?limit=1"
	}
	if c.Watch.Cron == "" {
		c.Watch.Cron = "0 */15 * * * *"
	}
	if len(c.Watch.Targets) == 0 {
		c.Watch.Targets = []Target{{Symbol: c.Analysis.DefaultSymbol, Timeframe: c.Analysis.DefaultTimeframe}}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case "yahoo", "binance", "mock":
	default:
		return fmt.Errorf("data_source.provider %q must be yahoo, binance or mock", c.DataSource.Provider)
	}
	if c.DataSource.FetchTimeoutSeconds < 0 {
		return fmt.Errorf("data_source.fetch_timeout_seconds must not be negative")
	}
	if c.Cache.TTLSeconds < 0 {
		return fmt.Errorf("cache.ttl_seconds must not be negative")
	}
	if _, err := model.ParseTimeframe(c.Analysis.DefaultTimeframe); err != nil {
		return fmt.Errorf("analysis.default_timeframe: %w", err)
	}
	for i, t := range c.Watch.Targets {
		if strings.TrimSpace(t.Symbol) == "" {
			return fmt.Errorf("watch.targets[%d].symbol is required", i)
		}
		if _, err := model.ParseTimeframe(t.Timeframe); err != nil {
			return fmt.Errorf("watch.targets[%d]: %w", i, err)
		}
	}
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(c.Watch.Cron); err != nil {
		return fmt.Errorf("watch.cron %q: %w", c.Watch.Cron, err)
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q must be text or json", c.Log.Format)
	}
	return nil
}

// TelegramEnabled reports whether notifications can be delivered.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// SaveToFile writes the configuration as YAML, creating parent directories.
func (c *Config) SaveToFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

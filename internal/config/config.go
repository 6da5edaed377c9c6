package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"B3Radar/internal/model"

	"gopkg.in/yaml.v3"
)

// Data providers.
const (
	ProviderYahoo = "yahoo"
	ProviderBrapi = "brapi"
	ProviderDemo  = "demo"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		Provider       string        `yaml:"provider"`
		BaseURL        string        `yaml:"base_url"`
		APIKey         string        `yaml:"api_key"`
		Range          string        `yaml:"range"`
		Interval       string        `yaml:"interval"`
		CacheTTL       time.Duration `yaml:"cache_ttl"`
		RequestPacing  time.Duration `yaml:"request_pacing"`
		RequestTimeout time.Duration `yaml:"request_timeout"`
		Concurrency    int           `yaml:"concurrency"`
		MaxRetries     int           `yaml:"max_retries"`
	} `yaml:"data_source"`
	Engine struct {
		Timeframe string `yaml:"timeframe"`
	} `yaml:"engine"`
	Schedule struct {
		RefreshCron     string `yaml:"refresh_cron"`
		SummaryCron     string `yaml:"summary_cron"`
		MarketHoursOnly bool   `yaml:"market_hours_only"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides and defaults.
// A missing file is not an error.
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

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"TELEGRAM_BOT_TOKEN": &c.Telegram.BotToken,
		"TELEGRAM_CHAT_ID":   &c.Telegram.ChatID,
		"DATA_PROVIDER":      &c.DataSource.Provider,
		"DATA_BASE_URL":      &c.DataSource.BaseURL,
		"BRAPI_TOKEN":        &c.DataSource.APIKey,
		"ENGINE_TIMEFRAME":   &c.Engine.Timeframe,
		"CRON_REFRESH":       &c.Schedule.RefreshCron,
		"CRON_SUMMARY":       &c.Schedule.SummaryCron,
		"SQLITE_PATH":        &c.Database.SQLitePath,
		"SERVER_ADDR":        &c.Server.Addr,
		"LOG_LEVEL":          &c.Log.Level,
		"HTTPS_PROXY":        &c.Proxy,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CACHE_TTL: %w", err)
		}
		c.DataSource.CacheTTL = d
	}
	if v := os.Getenv("FETCH_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FETCH_CONCURRENCY: %w", err)
		}
		c.DataSource.Concurrency = n
	}
	if v := os.Getenv("MARKET_HOURS_ONLY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MARKET_HOURS_ONLY: %w", err)
		}
		c.Schedule.MarketHoursOnly = b
	}
	return nil
}

func (c *Config) applyDefaults() {
	ds := &c.DataSource
	if ds.Provider == "" {
		ds.Provider = ProviderYahoo
	}
	if ds.BaseURL == "" {
		switch ds.Provider {
		case ProviderBrapi:
			ds.BaseURL = "https://brapi.dev"
		default:
			ds.BaseURL = "https://query1.finance.yahoo.com"
		}
	}
	if ds.Range == "" {
		ds.Range = "6mo"
	}
	if ds.Interval == "" {
		ds.Interval = "1d"
	}
	if ds.CacheTTL == 0 {
		ds.CacheTTL = 60 * time.Second
	}
	if ds.RequestPacing == 0 {
		ds.RequestPacing = 200 * time.Millisecond
	}
	if ds.RequestTimeout == 0 {
		ds.RequestTimeout = 15 * time.Second
	}
	if ds.Concurrency == 0 {
		ds.Concurrency = 4
	}
	if ds.MaxRetries == 0 {
		ds.MaxRetries = 3
	}
	if c.Engine.Timeframe == "" {
		c.Engine.Timeframe = model.Daily.String()
	}
	if c.Schedule.RefreshCron == "" {
		c.Schedule.RefreshCron = "0 */5 * * * 1-5"
	}
	if c.Schedule.SummaryCron == "" {
		c.Schedule.SummaryCron = "0 30 18 * * 1-5"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/b3radar.db"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Timeframe returns the parsed engine timeframe.
func (c *Config) Timeframe() (model.Timeframe, error) {
	return model.ParseTimeframe(c.Engine.Timeframe)
}

// TelegramEnabled reports whether both Telegram credentials are set.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// Validate checks that all fields are usable.
func (c *Config) Validate() error {
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	switch c.DataSource.Provider {
	case ProviderYahoo, ProviderBrapi, ProviderDemo:
	default:
		return fmt.Errorf("data_source.provider %q is not one of yahoo, brapi, demo", c.DataSource.Provider)
	}
	if c.DataSource.Concurrency < 1 {
		return fmt.Errorf("data_source.concurrency must be positive")
	}
	if c.DataSource.MaxRetries < 0 {
		return fmt.Errorf("data_source.max_retries must not be negative")
	}
	if c.DataSource.CacheTTL < 0 || c.DataSource.RequestPacing < 0 || c.DataSource.RequestTimeout < 0 {
		return fmt.Errorf("data_source durations must not be negative")
	}
	if _, err := c.Timeframe(); err != nil {
		return fmt.Errorf("engine.timeframe: %w", err)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}

package config

import (
	"time"

	"golang-stock-dashboard/pkg/cache"
	"golang-stock-dashboard/pkg/config"
)

// Data holds the CSV data source configuration.
type Data struct {
	BaseURL string `mapstructure:"base_url"`
	// CacheMinutes distinguishes "unset" (nil, default TTL applies) from an
	// explicit 0, which disables caching outright.
	CacheMinutes        *float64 `mapstructure:"cache_minutes"`
	DefaultLimit        int      `mapstructure:"default_limit"`
	DefaultStatsDays    int      `mapstructure:"default_stats_days"`
	FetchTimeout        string   `mapstructure:"fetch_timeout"`
	MaxRequestPerMinute int      `mapstructure:"max_request_per_minute"`
}

// Notes holds notes subsystem configuration.
type Notes struct {
	StorageKey             string  `mapstructure:"storage_key"`
	PremarketMinConfidence float64 `mapstructure:"premarket_min_confidence"`
}

// Refresher holds cache-refresher configuration.
type Refresher struct {
	Enabled   bool     `mapstructure:"enabled"`
	CronSpec  string   `mapstructure:"cron_spec"`
	Watchlist []string `mapstructure:"watchlist"`
}

// Config holds the full configuration for the dashboard service.
type Config struct {
	App       config.App      `mapstructure:"app"`
	Logger    config.Logger   `mapstructure:"logger"`
	Redis     config.Redis    `mapstructure:"redis"`
	API       config.API      `mapstructure:"api"`
	Telegram  config.Telegram `mapstructure:"telegram"`
	Data      Data            `mapstructure:"data"`
	Notes     Notes           `mapstructure:"notes"`
	Refresher Refresher       `mapstructure:"refresher"`
}

// Load loads the dashboard configuration from the given path and applies
// static defaults for values the file leaves unset.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}

	if cfg.Data.DefaultLimit <= 0 {
		cfg.Data.DefaultLimit = 30
	}
	if cfg.Data.DefaultStatsDays <= 0 {
		cfg.Data.DefaultStatsDays = 20
	}
	if cfg.Data.FetchTimeout == "" {
		cfg.Data.FetchTimeout = "10s"
	}
	if cfg.Data.MaxRequestPerMinute <= 0 {
		cfg.Data.MaxRequestPerMinute = 120
	}
	if cfg.Notes.PremarketMinConfidence <= 0 {
		cfg.Notes.PremarketMinConfidence = 6
	}
	if cfg.Refresher.CronSpec == "" {
		cfg.Refresher.CronSpec = "30 8 * * 1-5"
	}
	return &cfg, nil
}

// CacheTTL resolves the configured cache duration. Unset or negative values
// fall back to the 5-minute default; an explicit zero disables caching.
func (d Data) CacheTTL() time.Duration {
	if d.CacheMinutes == nil {
		return cache.DefaultTTL
	}
	return cache.TTLFromMinutes(*d.CacheMinutes)
}

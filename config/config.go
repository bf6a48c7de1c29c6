package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log        Logger           `mapstructure:"logger"`
	DB         Database         `mapstructure:"database"`
	API        API              `mapstructure:"api"`
	Cache      Cache            `mapstructure:"cache"`
	MarketData MarketDataConfig `mapstructure:"market_data"`
	Scheduler  Scheduler        `mapstructure:"scheduler"`
	Backtest   Backtest         `mapstructure:"backtest"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port int `mapstructure:"port"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

type MarketDataConfig struct {
	BaseURL             string        `mapstructure:"base_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	LookbackDays        int           `mapstructure:"lookback_days"`
}

type Scheduler struct {
	SyncSpec       string `mapstructure:"sync_spec"`
	MaxConcurrency int    `mapstructure:"max_concurrency"`
}

type Backtest struct {
	SeriesCacheExpiration time.Duration `mapstructure:"series_cache_expiration"`
	HistoryLimit          int           `mapstructure:"history_limit"`
}

func Load() (*Config, error) {
	// .env is optional, environment variables win either way.
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetConfigName("config")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.MarketData.MaxRequestPerMinute <= 0 {
		cfg.MarketData.MaxRequestPerMinute = 30
	}
	if cfg.MarketData.LookbackDays <= 0 {
		cfg.MarketData.LookbackDays = 365
	}
	if cfg.Scheduler.MaxConcurrency <= 0 {
		cfg.Scheduler.MaxConcurrency = 4
	}
	if cfg.Backtest.HistoryLimit <= 0 {
		cfg.Backtest.HistoryLimit = 50
	}

	return &cfg, nil
}

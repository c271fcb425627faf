package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AllowedWindows are the supported analysis windows in trading days (6, 12 and 24 months).
var AllowedWindows = []int{126, 252, 504}

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		BaseURL    string `yaml:"base_url"`
		APIKey     string `yaml:"api_key"`
		RateSymbol string `yaml:"rate_symbol"`
		DXYSymbol  string `yaml:"dxy_symbol"`
	} `yaml:"data_source"`
	Analysis struct {
		Window  int     `yaml:"window"`
		Amount  float64 `yaml:"amount"`
		FeeRate float64 `yaml:"fee_rate"`
	} `yaml:"analysis"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Cache struct {
		SQLitePath string        `yaml:"sqlite_path"`
		MaxAge     time.Duration `yaml:"max_age"`
	} `yaml:"cache"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads an optional .env file and the YAML config, then applies
// environment variable overrides and defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	feeRateSet := false

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
		// an explicit fee_rate, including 0 or a bad negative value, must survive defaults
		var presence struct {
			Analysis struct {
				FeeRate *float64 `yaml:"fee_rate"`
			} `yaml:"analysis"`
		}
		if err := yaml.Unmarshal(data, &presence); err == nil && presence.Analysis.FeeRate != nil {
			feeRateSet = true
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("DATA_SOURCE_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_SOURCE_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("ANALYSIS_AMOUNT"); v != "" {
		if amount, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Analysis.Amount = amount
		}
	}
	if v := os.Getenv("ANALYSIS_WINDOW"); v != "" {
		if w, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.Window = w
		}
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Cache.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	// Defaults
	if cfg.DataSource.RateSymbol == "" {
		cfg.DataSource.RateSymbol = "KRW=X"
	}
	if cfg.DataSource.DXYSymbol == "" {
		cfg.DataSource.DXYSymbol = "DX-Y.NYB"
	}
	if cfg.Analysis.Window == 0 {
		cfg.Analysis.Window = 252
	}
	if cfg.Analysis.Amount == 0 {
		cfg.Analysis.Amount = 1_000_000
	}
	if !feeRateSet {
		cfg.Analysis.FeeRate = 0.002
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 9 * * 1-5"
	}
	if cfg.Cache.MaxAge == 0 {
		cfg.Cache.MaxAge = 72 * time.Hour
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}

	return cfg, nil
}

// ValidWindow reports whether w is one of AllowedWindows.
func ValidWindow(w int) bool {
	for _, a := range AllowedWindows {
		if a == w {
			return true
		}
	}
	return false
}

// Validate checks the analysis settings.
func (c *Config) Validate() error {
	if !ValidWindow(c.Analysis.Window) {
		return fmt.Errorf("analysis.window must be one of %v, got %d", AllowedWindows, c.Analysis.Window)
	}
	if !(c.Analysis.Amount > 0) || math.IsInf(c.Analysis.Amount, 0) {
		return fmt.Errorf("analysis.amount must be positive")
	}
	if !(c.Analysis.FeeRate >= 0 && c.Analysis.FeeRate < 1) {
		return fmt.Errorf("analysis.fee_rate must be in [0, 1), got %v", c.Analysis.FeeRate)
	}
	return nil
}

// ValidateTelegram checks the settings required by the serve mode.
func (c *Config) ValidateTelegram() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	return nil
}

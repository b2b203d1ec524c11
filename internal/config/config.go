package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML scalars like "60s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	td, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", value.Value, err)
	}
	*d = Duration(td)
	return nil
}

// Config holds all application configuration.
type Config struct {
	Upbit struct {
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
	} `yaml:"upbit"`
	Notifier struct {
		Backend        string `yaml:"backend"` // slack, telegram, or none
		SlackToken     string `yaml:"slack_token"`
		SlackChannel   string `yaml:"slack_channel"`
		TelegramToken  string `yaml:"telegram_token"`
		TelegramChatID int64  `yaml:"telegram_chat_id"`
	} `yaml:"notifier"`
	Trading struct {
		QuoteCurrency   string   `yaml:"quote_currency"`
		BidAmount       float64  `yaml:"bid_amount"`
		FeeRate         float64  `yaml:"fee_rate"` // informational, not applied to PnL
		MinOrderValue   float64  `yaml:"min_order_value"`
		RSIPeriod       int      `yaml:"rsi_period"`
		CandleInterval  string   `yaml:"candle_interval"`
		CandleCount     int      `yaml:"candle_count"`
		ExcludedMarkets []string `yaml:"excluded_markets"`
		TrackPositions  bool     `yaml:"track_positions"`
	} `yaml:"trading"`
	Schedule struct {
		ReferenceMarket string   `yaml:"reference_market"`
		CycleDelay      Duration `yaml:"cycle_delay"`
		MarketDelay     Duration `yaml:"market_delay"`
		WindowOffset    Duration `yaml:"window_offset"`
		WindowLength    Duration `yaml:"window_length"`
		ReportCron      string   `yaml:"report_cron"` // empty disables the report
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides, then fills defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

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

	// Environment variable overrides
	if v := os.Getenv("ACCESS_KEY"); v != "" {
		cfg.Upbit.AccessKey = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		cfg.Upbit.SecretKey = v
	}
	if v := os.Getenv("SLACK_TOKEN"); v != "" {
		cfg.Notifier.SlackToken = v
	}
	if v := os.Getenv("SLACK_CHANNEL"); v != "" {
		cfg.Notifier.SlackChannel = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Notifier.TelegramToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Notifier.TelegramChatID = id
		}
	}
	if v := os.Getenv("BID_AMOUNT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Trading.BidAmount = f
		}
	}
	if v := os.Getenv("RSI_PERIOD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Trading.RSIPeriod = n
		}
	}
	if v := os.Getenv("CANDLE_INTERVAL"); v != "" {
		cfg.Trading.CandleInterval = v
	}
	if v := os.Getenv("EXCLUDED_MARKETS"); v != "" {
		cfg.Trading.ExcludedMarkets = splitList(v)
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Notifier.Backend == "" {
		cfg.Notifier.Backend = "slack"
	}
	if cfg.Trading.QuoteCurrency == "" {
		cfg.Trading.QuoteCurrency = "KRW"
	}
	if cfg.Trading.BidAmount == 0 {
		cfg.Trading.BidAmount = 5000
	}
	if cfg.Trading.FeeRate == 0 {
		cfg.Trading.FeeRate = 0.0005
	}
	if cfg.Trading.MinOrderValue == 0 {
		cfg.Trading.MinOrderValue = 5000
	}
	if cfg.Trading.RSIPeriod == 0 {
		cfg.Trading.RSIPeriod = 14
	}
	if cfg.Trading.CandleInterval == "" {
		cfg.Trading.CandleInterval = "day"
	}
	if cfg.Trading.CandleCount == 0 {
		cfg.Trading.CandleCount = 200
	}
	if cfg.Trading.ExcludedMarkets == nil {
		cfg.Trading.ExcludedMarkets = []string{"KRW-SSX", "KRW-PLA"}
	}
	if cfg.Schedule.ReferenceMarket == "" {
		cfg.Schedule.ReferenceMarket = "KRW-BTC"
	}
	if cfg.Schedule.CycleDelay == 0 {
		cfg.Schedule.CycleDelay = Duration(60 * time.Second)
	}
	if cfg.Schedule.MarketDelay == 0 {
		cfg.Schedule.MarketDelay = Duration(time.Second)
	}
	if cfg.Schedule.WindowOffset == 0 {
		cfg.Schedule.WindowOffset = Duration(10 * time.Second)
	}
	if cfg.Schedule.WindowLength == 0 {
		cfg.Schedule.WindowLength = Duration(60 * time.Second)
	}

	return cfg, nil
}

// Validate checks that all required fields are set and sane.
func (c *Config) Validate() error {
	if c.Upbit.AccessKey == "" {
		return fmt.Errorf("upbit.access_key is required")
	}
	if c.Upbit.SecretKey == "" {
		return fmt.Errorf("upbit.secret_key is required")
	}
	switch c.Notifier.Backend {
	case "slack":
		if c.Notifier.SlackToken == "" || c.Notifier.SlackChannel == "" {
			return fmt.Errorf("notifier.slack_token and notifier.slack_channel are required for the slack backend")
		}
	case "telegram":
		if c.Notifier.TelegramToken == "" || c.Notifier.TelegramChatID == 0 {
			return fmt.Errorf("notifier.telegram_token and notifier.telegram_chat_id are required for the telegram backend")
		}
	case "none":
	default:
		return fmt.Errorf("notifier.backend must be slack, telegram, or none")
	}
	if c.Trading.RSIPeriod < 1 {
		return fmt.Errorf("trading.rsi_period must be >= 1")
	}
	if c.Trading.BidAmount <= 0 {
		return fmt.Errorf("trading.bid_amount must be positive")
	}
	if c.Trading.CandleCount < c.Trading.RSIPeriod+1 {
		return fmt.Errorf("trading.candle_count must exceed trading.rsi_period")
	}
	switch c.Trading.CandleInterval {
	case "day", "week", "month":
	default:
		return fmt.Errorf("trading.candle_interval must be day, week, or month")
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"strat_bot/internal/strategy"
	"strat_bot/pkg/tracing"
)

const (
	configFilePathENV = "CONFIG_FILE"
	configDirENV      = "CONFIG_DIR"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	chatTelegramENV   = "TELEGRAM_CHAT_ID"
	databaseDSN       = "DATABASE_DSN"
	okxAPIKeyENV      = "OKX_API_KEY"
	okxAPISecretENV   = "OKX_API_SECRET"
	okxPassphraseENV  = "OKX_PASSPHRASE"
	redisAddrENV      = "REDIS_ADDR"
)

// Trigger values for Pipeline.Trigger.
const (
	TriggerInterval    = "interval"
	TriggerCandleClose = "candle_close"
)

// Config ...
type Config struct {
	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
	DB string `yaml:"db_dsn"`

	Exchange struct {
		BaseURL     string        `yaml:"base_url" default:"https://www.okx.com"`
		WSURL       string        `yaml:"ws_url" default:"wss://ws.okx.com:8443/ws/v5/business"`
		APIKey      string        `yaml:"api_key"`
		APISecret   string        `yaml:"api_secret"`
		Passphrase  string        `yaml:"passphrase"`
		Simulated   bool          `yaml:"simulated"`
		CandleLimit int           `yaml:"candle_limit" default:"300"`
		RateLimit   float64       `yaml:"rate_limit" default:"10"` // requests per second
		Timeout     time.Duration `yaml:"timeout" default:"10s"`
	} `yaml:"exchange"`

	Redis struct {
		Addr      string        `yaml:"addr"`
		Password  string        `yaml:"password"`
		DB        int           `yaml:"db"`
		Prefix    string        `yaml:"prefix" default:"stratbot"`
		CandleTTL time.Duration `yaml:"candle_ttl" default:"30s"`
	} `yaml:"redis"`

	Pipeline struct {
		Trading      bool   `yaml:"trading"`
		PrintContext bool   `yaml:"print_context" default:"true"`
		Trigger      string `yaml:"trigger" default:"interval"` // interval | candle_close
	} `yaml:"pipeline"`

	Rules strategy.Rules `yaml:"rules"`

	Chart struct {
		Dir    string `yaml:"dir" default:"output"`
		Width  int    `yaml:"width" default:"1200"`
		Height int    `yaml:"height" default:"800"`
	} `yaml:"chart"`

	Service struct {
		Name       string `yaml:"name" default:"strat_bot"`
		HealthAddr string `yaml:"health_addr" default:":8080"`
	} `yaml:"service"`

	Log struct {
		Level string `yaml:"level" default:"info"`
		Dev   bool   `yaml:"dev"`
	} `yaml:"log"`

	Tracing tracing.Config `yaml:"tracing"`
}

func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	configFileName := getenvDefault(configFilePathENV, "values_local.yaml")
	path := filepath.Join(getenvDefault(configDirENV, "configs"), configFileName)
	return Load(path)
}

// Load reads the YAML file at path on top of defaults and applies env overrides.
// A missing file is not an error: defaults and env are enough to run.
func Load(path string) (*Config, error) {
	config := Config{}
	if err := defaults.Set(&config); err != nil {
		return nil, fmt.Errorf("set config defaults: %w", err)
	}
	config.Rules = strategy.DefaultRules()

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer func() {
			_ = file.Close()
		}()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return nil, fmt.Errorf("decode config file %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("open config file %s: %w", path, err)
	}

	config.applyEnv()

	if config.Pipeline.Trigger != TriggerInterval && config.Pipeline.Trigger != TriggerCandleClose {
		return nil, fmt.Errorf("unknown pipeline.trigger %q", config.Pipeline.Trigger)
	}
	return &config, nil
}

func (c *Config) applyEnv() {
	if token := os.Getenv(tokenTelegramENV); token != "" {
		c.Telegram.Token = token
	}
	c.Telegram.ChatID = int64FromEnv(chatTelegramENV, c.Telegram.ChatID)
	if dsn := os.Getenv(databaseDSN); dsn != "" {
		c.DB = dsn
	}
	c.Exchange.APIKey = getenvDefault(okxAPIKeyENV, c.Exchange.APIKey)
	c.Exchange.APISecret = getenvDefault(okxAPISecretENV, c.Exchange.APISecret)
	c.Exchange.Passphrase = getenvDefault(okxPassphraseENV, c.Exchange.Passphrase)
	c.Exchange.Simulated = boolFromEnv("OKX_SIMULATED", c.Exchange.Simulated)
	c.Exchange.CandleLimit = intFromEnv("CANDLE_LIMIT", c.Exchange.CandleLimit)
	c.Exchange.RateLimit = floatFromEnv("OKX_RATE_LIMIT", c.Exchange.RateLimit)
	c.Exchange.Timeout = durationFromEnv("OKX_TIMEOUT", c.Exchange.Timeout)
	c.Redis.Addr = getenvDefault(redisAddrENV, c.Redis.Addr)
	c.Pipeline.Trading = boolFromEnv("PIPELINE_TRADING", c.Pipeline.Trading)
	c.Pipeline.Trigger = getenvDefault("PIPELINE_TRIGGER", c.Pipeline.Trigger)
	c.Chart.Dir = getenvDefault("CHART_DIR", c.Chart.Dir)
	c.Log.Level = getenvDefault("LOG_LEVEL", c.Log.Level)
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func int64FromEnv(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func floatFromEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func boolFromEnv(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if v == "1" || v == "true" || v == "TRUE" {
			return true
		}
		if v == "0" || v == "false" || v == "FALSE" {
			return false
		}
	}
	return def
}

func durationFromEnv(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

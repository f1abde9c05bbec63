package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/pokerlog/journal"
	"github.com/rustyeddy/pokerlog/ledger"
	"github.com/rustyeddy/pokerlog/session"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "POKERLOG_"

// Config represents the complete tracker configuration
type Config struct {
	Ledger   LedgerConfig   `json:"ledger" yaml:"ledger"`
	Store    StoreConfig    `json:"store" yaml:"store"`
	Currency CurrencyConfig `json:"currency" yaml:"currency"`
	Output   OutputConfig   `json:"output" yaml:"output"`
	Log      LogConfig      `json:"log" yaml:"log"`
}

// LedgerConfig controls how sessions are interpreted
type LedgerConfig struct {
	Mode  string `json:"mode" yaml:"mode"`   // "bb" or "chips"
	Hands string `json:"hands" yaml:"hands"` // "impute" or "exclude"
}

// StoreConfig selects where the session table lives
type StoreConfig struct {
	Type    string `json:"type" yaml:"type"` // "csv" or "sqlite"
	CSVPath string `json:"csv_path,omitempty" yaml:"csv_path,omitempty"`
	DBPath  string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// CurrencyConfig holds USD conversion rates per currency code
type CurrencyConfig struct {
	Rates map[string]float64 `json:"rates" yaml:"rates"`
}

// OutputConfig controls chart rendering
type OutputConfig struct {
	Dir        string `json:"dir" yaml:"dir"`
	Histograms bool   `json:"histograms" yaml:"histograms"`
	Width      int    `json:"width" yaml:"width"`   // points
	Height     int    `json:"height" yaml:"height"` // points
	Style      string `json:"style" yaml:"style"`   // glamour style: auto, dark, light, notty
}

// LogConfig contains logging parameters
type LogConfig struct {
	Level string `json:"level" yaml:"level"` // debug, info, warn, error
}

// LoadFromFile loads configuration from a file (YAML or JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (YAML for .yaml/.yml, JSON otherwise)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides fields from POKERLOG_* variables. A .env file in the
// working directory is read first when present.
func (c *Config) ApplyEnv() {
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded .env file")
	}

	c.Ledger.Mode = getEnvDefault("LEDGER_MODE", c.Ledger.Mode)
	c.Ledger.Hands = getEnvDefault("LEDGER_HANDS", c.Ledger.Hands)
	c.Store.Type = getEnvDefault("STORE_TYPE", c.Store.Type)
	c.Store.CSVPath = getEnvDefault("CSV_PATH", c.Store.CSVPath)
	c.Store.DBPath = getEnvDefault("DB_PATH", c.Store.DBPath)
	c.Output.Dir = getEnvDefault("OUTPUT_DIR", c.Output.Dir)
	c.Output.Histograms = getEnvBool("HISTOGRAMS", c.Output.Histograms)
	c.Output.Style = getEnvDefault("STYLE", c.Output.Style)
	c.Log.Level = getEnvDefault("LOG_LEVEL", c.Log.Level)

	if v := os.Getenv(EnvPrefix + "CNY_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			if c.Currency.Rates == nil {
				c.Currency.Rates = map[string]float64{}
			}
			c.Currency.Rates["CNY"] = f
		}
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := session.ParseMode(c.Ledger.Mode); err != nil {
		return fmt.Errorf("ledger.mode: %w", err)
	}
	if _, err := ledger.ParseHandPolicy(c.Ledger.Hands); err != nil {
		return fmt.Errorf("ledger.hands: %w", err)
	}
	if c.Store.Type != "csv" && c.Store.Type != "sqlite" {
		return fmt.Errorf("store.type must be 'csv' or 'sqlite'")
	}
	if c.Store.Type == "csv" && c.Store.CSVPath == "" {
		return fmt.Errorf("store.csv_path required for CSV type")
	}
	if c.Store.Type == "sqlite" && c.Store.DBPath == "" {
		return fmt.Errorf("store.db_path required for SQLite type")
	}
	if _, err := session.RatesFromFloats(c.Currency.Rates); err != nil {
		return fmt.Errorf("currency.rates: %w", err)
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	if c.Output.Width <= 0 || c.Output.Height <= 0 {
		return fmt.Errorf("output width and height must be positive")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// StorePath returns the path of the configured store.
func (c *Config) StorePath() string {
	if c.Store.Type == "sqlite" {
		return c.Store.DBPath
	}
	return c.Store.CSVPath
}

// OpenStore opens the configured session store.
func (c *Config) OpenStore() (journal.Store, error) {
	mode, err := session.ParseMode(c.Ledger.Mode)
	if err != nil {
		return nil, err
	}
	return journal.Open(c.Store.Type, c.StorePath(), mode)
}

// LedgerOptions converts the ledger and currency sections into ledger options.
func (c *Config) LedgerOptions() (ledger.Options, error) {
	mode, err := session.ParseMode(c.Ledger.Mode)
	if err != nil {
		return ledger.Options{}, err
	}
	hands, err := ledger.ParseHandPolicy(c.Ledger.Hands)
	if err != nil {
		return ledger.Options{}, err
	}
	rates, err := session.RatesFromFloats(c.Currency.Rates)
	if err != nil {
		return ledger.Options{}, err
	}
	return ledger.Options{Mode: mode, Rates: rates, Hands: hands}, nil
}

// Default returns the default configuration: bb mode, CSV store in the working directory
func Default() *Config {
	return &Config{
		Ledger: LedgerConfig{
			Mode:  "bb",
			Hands: "impute",
		},
		Store: StoreConfig{
			Type:    "csv",
			CSVPath: "./data.csv",
			DBPath:  "./pokerlog.sqlite",
		},
		Currency: CurrencyConfig{
			Rates: map[string]float64{
				"CNY": session.CNYToUSD,
			},
		},
		Output: OutputConfig{
			Dir:    "summary",
			Width:  576,
			Height: 432,
			Style:  "auto",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(EnvPrefix + key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/pokerlog/journal"
	"github.com/rustyeddy/pokerlog/ledger"
	"github.com/rustyeddy/pokerlog/session"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "bb", cfg.Ledger.Mode)
	assert.Equal(t, "csv", cfg.Store.Type)
	assert.Equal(t, "summary", cfg.Output.Dir)
	assert.Equal(t, session.CNYToUSD, cfg.Currency.Rates["CNY"])
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "unknown mode",
			mutate:  func(c *Config) { c.Ledger.Mode = "cents" },
			wantErr: true,
			errMsg:  "ledger.mode",
		},
		{
			name:    "unknown hands policy",
			mutate:  func(c *Config) { c.Ledger.Hands = "drop" },
			wantErr: true,
			errMsg:  "ledger.hands",
		},
		{
			name:    "unknown store",
			mutate:  func(c *Config) { c.Store.Type = "parquet" },
			wantErr: true,
			errMsg:  "store.type must be 'csv' or 'sqlite'",
		},
		{
			name:    "csv without path",
			mutate:  func(c *Config) { c.Store.CSVPath = "" },
			wantErr: true,
			errMsg:  "store.csv_path required",
		},
		{
			name: "sqlite without path",
			mutate: func(c *Config) {
				c.Store.Type = "sqlite"
				c.Store.DBPath = ""
			},
			wantErr: true,
			errMsg:  "store.db_path required",
		},
		{
			name:    "negative rate",
			mutate:  func(c *Config) { c.Currency.Rates["CNY"] = -1 },
			wantErr: true,
			errMsg:  "currency.rates",
		},
		{
			name:    "unknown currency",
			mutate:  func(c *Config) { c.Currency.Rates["QQQ"] = 2 },
			wantErr: true,
			errMsg:  "unknown currency",
		},
		{
			name:    "zero width",
			mutate:  func(c *Config) { c.Output.Width = 0 },
			wantErr: true,
			errMsg:  "output width and height must be positive",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: true,
			errMsg:  "log.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Ledger.Mode = "chips"
			cfg.Store.Type = "sqlite"
			cfg.Output.Histograms = true
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, cfg.Ledger.Mode, loaded.Ledger.Mode)
			assert.Equal(t, cfg.Store.Type, loaded.Store.Type)
			assert.Equal(t, cfg.Store.DBPath, loaded.Store.DBPath)
			assert.Equal(t, cfg.Currency.Rates, loaded.Currency.Rates)
			assert.True(t, loaded.Output.Histograms)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ledger:\n  mode: chips\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "chips", cfg.Ledger.Mode)
	assert.Equal(t, "impute", cfg.Ledger.Hands)
	assert.Equal(t, "./data.csv", cfg.Store.CSVPath)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  type: parquet\n"), 0644))
	_, err = LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("POKERLOG_STORE_TYPE", "sqlite")
	t.Setenv("POKERLOG_DB_PATH", "/tmp/poker.db")
	t.Setenv("POKERLOG_LOG_LEVEL", "debug")
	t.Setenv("POKERLOG_HISTOGRAMS", "true")
	t.Setenv("POKERLOG_CNY_RATE", "0.14")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "sqlite", cfg.Store.Type)
	assert.Equal(t, "/tmp/poker.db", cfg.StorePath())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Output.Histograms)
	assert.Equal(t, 0.14, cfg.Currency.Rates["CNY"])
	assert.NoError(t, cfg.Validate())
}

func TestLedgerOptionsAndStore(t *testing.T) {
	cfg := Default()
	cfg.Ledger.Mode = "chips"
	cfg.Ledger.Hands = "exclude"

	opts, err := cfg.LedgerOptions()
	require.NoError(t, err)
	assert.Equal(t, session.Chips, opts.Mode)
	assert.Equal(t, ledger.ExcludeHands, opts.Hands)
	assert.Equal(t, "0.13837", opts.Rates[session.CNY].String())

	store, err := cfg.OpenStore()
	require.NoError(t, err)
	assert.IsType(t, &journal.CSVStore{}, store)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseLevel("trace")
	assert.Error(t, err)
}

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/pokerlog/config"
	"github.com/rustyeddy/pokerlog/journal"
	"github.com/rustyeddy/pokerlog/ledger"
)

var rootCmd = &cobra.Command{
	Use:   "pokerlog",
	Short: "Track poker sessions and summarize results",
	Long: `Pokerlog keeps a table of poker sessions and reports how they went.

It provides tools for:
  - Recording sessions with stakes, currency, location and hand count
  - Converting results to USD with configurable rates
  - Summaries by location, year or stake
  - Cumulative PnL and Win/bb charts
  - Org-mode journal entries per session

Sessions are kept in a CSV file or a SQLite database.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	cfgFile   string
	dataPath  string
	storeType string
	logLevel  string

	cfg *config.Config
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "session store path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&storeType, "store", "", "store type: csv or sqlite (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// setup loads the configuration, applies environment and flag overrides and
// installs the logger.
func setup(cmd *cobra.Command, args []string) error {
	c := config.Default()
	if cfgFile != "" {
		loaded, err := config.LoadFromFile(cfgFile)
		if err != nil {
			return err
		}
		c = loaded
	}
	c.ApplyEnv()

	if storeType != "" {
		c.Store.Type = storeType
	}
	if dataPath != "" {
		if c.Store.Type == "sqlite" {
			c.Store.DBPath = dataPath
		} else {
			c.Store.CSVPath = dataPath
		}
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	level, err := config.ParseLevel(c.Log.Level)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg = c
	slog.Debug("config loaded", "store", c.Store.Type, "path", c.StorePath(), "mode", c.Ledger.Mode)
	return nil
}

// openLedger opens the configured store and loads its table. The caller
// closes the returned store.
func openLedger() (*ledger.Ledger, journal.Store, error) {
	store, err := cfg.OpenStore()
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	opts, err := cfg.LedgerOptions()
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	l, err := ledger.Open(store, opts)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return l, store, nil
}

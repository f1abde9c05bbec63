package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/pokerlog/journal"
	"github.com/rustyeddy/pokerlog/session"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy the session table to another store",
	Long: `Copy every session from the configured store into a new CSV file or
SQLite database. Derived columns are recomputed before writing.

Examples:
  pokerlog migrate --to sqlite --out pokerlog.sqlite
  pokerlog --store sqlite --data pokerlog.sqlite migrate --to csv --out data.csv`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

var (
	migrateTo  string
	migrateOut string
)

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().StringVar(&migrateTo, "to", "sqlite", "destination store type: csv or sqlite")
	migrateCmd.Flags().StringVarP(&migrateOut, "out", "o", "", "destination path (required)")
	migrateCmd.MarkFlagRequired("out")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if migrateOut == cfg.StorePath() {
		return fmt.Errorf("destination %s is the source store", migrateOut)
	}

	l, src, err := openLedger()
	if err != nil {
		return err
	}
	defer src.Close()

	mode, err := session.ParseMode(cfg.Ledger.Mode)
	if err != nil {
		return err
	}
	dst, err := journal.Open(migrateTo, migrateOut, mode)
	if err != nil {
		return err
	}
	defer dst.Close()

	recs := l.Records()
	if err := dst.Save(recs); err != nil {
		return fmt.Errorf("save to %s: %w", migrateOut, err)
	}

	slog.Info("sessions migrated", "from", cfg.StorePath(), "to", migrateOut, "count", len(recs))
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Copied %d sessions to %s (%s)\n", len(recs), migrateOut, migrateTo)
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/pokerlog/journal"
	"github.com/rustyeddy/pokerlog/ledger"
	"github.com/rustyeddy/pokerlog/report"
	"github.com/rustyeddy/pokerlog/session"
)

var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Print one session as an Org-mode entry",
	Long: `Look up a session by ID and print it as an Org-mode entry with
its derived columns in the PROPERTIES drawer.

Example:
  pokerlog show 01J9ZC4M6Q3X8V2N7K5T1R0B9D >> journal.org`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	store, err := cfg.OpenStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	rec, err := lookup(store, args[0])
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.FormatSessionOrg(rec))
	return nil
}

// lookup asks the store directly when it supports single-row queries and
// falls back to loading the whole table.
func lookup(store journal.Store, sessionID string) (session.Record, error) {
	if finder, ok := store.(journal.Finder); ok {
		return finder.GetSession(sessionID)
	}

	opts, err := cfg.LedgerOptions()
	if err != nil {
		return session.Record{}, err
	}
	l, err := ledger.Open(store, opts)
	if err != nil {
		return session.Record{}, err
	}
	return l.Find(sessionID)
}

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/pokerlog/journal"
	"github.com/rustyeddy/pokerlog/ledger"
	"github.com/rustyeddy/pokerlog/report"
	"github.com/rustyeddy/pokerlog/session"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions with derived columns",
	Long: `Print the session table in table order with Win/bb, PnL and
cumulative PnL.

Examples:
  pokerlog list
  pokerlog list -l macau --plain
  pokerlog list --from 2024-01-01 --to 2024-07-01
  pokerlog list --org`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listLocation string
	listYear     int
	listFrom     string
	listTo       string
	listPlain    bool
	listOrg      bool
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listLocation, "location", "l", "", "only sessions at this location")
	listCmd.Flags().IntVarP(&listYear, "year", "y", 0, "only sessions in this year")
	listCmd.Flags().StringVar(&listFrom, "from", "", "first date YYYY-MM-DD (inclusive)")
	listCmd.Flags().StringVar(&listTo, "to", "", "last date YYYY-MM-DD (exclusive)")
	listCmd.Flags().BoolVar(&listPlain, "plain", false, "plain text output instead of rendered markdown")
	listCmd.Flags().BoolVar(&listOrg, "org", false, "print Org-mode entries")
}

func runList(cmd *cobra.Command, args []string) error {
	l, store, err := openLedger()
	if err != nil {
		return err
	}
	defer store.Close()

	recs := ledger.Filter{Location: listLocation, Year: listYear}.Apply(l.Records())
	if listFrom != "" || listTo != "" {
		start, end, err := dateRange(listFrom, listTo)
		if err != nil {
			return err
		}
		recs, err = between(store, recs, start, end)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	switch {
	case listOrg:
		fmt.Fprintln(out, report.FormatSessionsOrg(recs))
	case listPlain:
		report.PrintSessions(out, recs)
	default:
		return render(out, report.SessionsMarkdown(recs))
	}
	return nil
}

// between narrows recs to sessions dated within [start, end). Stores that
// answer range queries are asked directly and their rows are matched back
// to the ledger by ID so derived columns are filled in. Rows without an ID,
// as in files written before IDs existed, are matched by date.
func between(store journal.Store, recs []session.Record, start, end time.Time) ([]session.Record, error) {
	inRange := func(r session.Record) bool {
		return !r.Date.Before(start) && r.Date.Before(end)
	}

	var ids map[string]bool
	if rl, ok := store.(journal.RangeLister); ok {
		rows, err := rl.ListSessionsBetween(start, end)
		if err != nil {
			return nil, fmt.Errorf("query sessions: %w", err)
		}
		ids = make(map[string]bool, len(rows))
		for _, r := range rows {
			if r.ID != "" {
				ids[r.ID] = true
			}
		}
	}

	var out []session.Record
	for _, r := range recs {
		keep := inRange(r)
		if ids != nil && r.ID != "" {
			keep = ids[r.ID]
		}
		if keep {
			out = append(out, r)
		}
	}
	return out, nil
}

// dateRange parses optional YYYY-MM-DD bounds. Open bounds extend to the
// far past or future.
func dateRange(from, to string) (time.Time, time.Time, error) {
	start := time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

	var err error
	if from != "" {
		if start, err = session.ParseDate(from); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("from: %w", err)
		}
	}
	if to != "" {
		if end, err = session.ParseDate(to); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("to: %w", err)
		}
	}
	return start, end, nil
}

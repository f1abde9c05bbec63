package report

import (
	"fmt"
	"io"

	"github.com/rustyeddy/pokerlog/ledger"
	"github.com/rustyeddy/pokerlog/session"
)

const rule = "--------------------------------------------------"

// PrintSummary writes a plain text summary block.
func PrintSummary(w io.Writer, title string, s ledger.Summary) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, " %s\n", title)
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Sessions:        %d\n", s.Sessions)
	fmt.Fprintf(w, "Win Rate:        %.2f%%\n", s.WinRate*100)
	fmt.Fprintf(w, "Longest Streak:  %d\n", s.LongestStreak)
	fmt.Fprintf(w, "Longest Slump:   %d\n", s.LongestLosingStreak)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Profit and Loss (USD)")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total:           %s\n", USD(s.TotalPnL))
	fmt.Fprintf(w, "Average:         %s\n", USD(s.AveragePnL))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Big Blinds")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total:           %.2f bb\n", s.TotalWinBB)
	fmt.Fprintf(w, "Average:         %.2f bb\n", s.AverageWinBB)

	if s.HasPerHand {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Per Hand")
		fmt.Fprintln(w, rule)
		fmt.Fprintf(w, "Win/bb per hand: %.4f\n", s.WinBBPerHand)
		fmt.Fprintf(w, "PnL per hand:    %.4f\n", s.PnLPerHand)
	}
	fmt.Fprintln(w)
}

// PrintGroups writes one line per group.
func PrintGroups(w io.Writer, key ledger.GroupKey, rows []ledger.GroupRow) {
	fmt.Fprintf(w, "%-16s %8s %8s %12s %12s %10s %10s %7s\n",
		key, "sessions", "win%", "total_pnl", "avg_pnl", "total_bb", "avg_bb", "streak")
	fmt.Fprintln(w, rule+rule[:40])
	for _, row := range rows {
		s := row.Summary
		fmt.Fprintf(w, "%-16s %8d %7.2f%% %12.2f %12.2f %10.2f %10.2f %7d\n",
			row.Key, s.Sessions, s.WinRate*100, s.TotalPnL, s.AveragePnL,
			s.TotalWinBB, s.AverageWinBB, s.LongestStreak)
	}
}

// PrintSessions writes the session table with its derived columns.
func PrintSessions(w io.Writer, recs []session.Record) {
	fmt.Fprintf(w, "%-4s %-10s %-16s %-10s %10s %8s %10s %10s %6s\n",
		"#", "date", "location", "stake", "win", "win_bb", "pnl", "cum_pnl", "hands")
	for i, r := range recs {
		hands := "-"
		if r.HasHands() {
			hands = fmt.Sprintf("%d", r.Hands())
		}
		fmt.Fprintf(w, "%-4d %-10s %-16s %-10s %10.2f %8.2f %10.2f %10.2f %6s\n",
			i, r.Date.Format(session.DateLayout), r.Location, r.Stake(),
			r.WinAmount, r.WinBB, r.PnL, r.CumulativePnL, hands)
	}
}

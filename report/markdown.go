package report

import (
	"bytes"
	"fmt"
	"strconv"

	md "github.com/nao1215/markdown"

	"github.com/rustyeddy/pokerlog/ledger"
	"github.com/rustyeddy/pokerlog/session"
)

// SummaryMarkdown renders a summary as a markdown document.
func SummaryMarkdown(title string, s ledger.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title)
	doc.PlainText(fmt.Sprintf("%d sessions, total %s", s.Sessions, USD(s.TotalPnL)))
	doc.H2("Statistics")

	rows := [][]string{
		{"Sessions", strconv.Itoa(s.Sessions)},
		{"Win rate", fmt.Sprintf("%.2f%%", s.WinRate*100)},
		{"Total PnL", USD(s.TotalPnL)},
		{"Average PnL", USD(s.AveragePnL)},
		{"Total win (bb)", fmt.Sprintf("%.2f", s.TotalWinBB)},
		{"Average win (bb)", fmt.Sprintf("%.2f", s.AverageWinBB)},
	}
	if s.HasPerHand {
		rows = append(rows,
			[]string{"Win/bb per hand", fmt.Sprintf("%.4f", s.WinBBPerHand)},
			[]string{"PnL per hand", fmt.Sprintf("%.4f", s.PnLPerHand)},
		)
	}
	rows = append(rows,
		[]string{"Longest winning streak", strconv.Itoa(s.LongestStreak)},
		[]string{"Longest losing streak", strconv.Itoa(s.LongestLosingStreak)},
	)

	doc.Table(md.TableSet{
		Header: []string{"Statistic", "Value"},
		Rows:   rows,
	})

	return doc.String()
}

// GroupsMarkdown renders a grouped summary as one markdown table.
func GroupsMarkdown(key ledger.GroupKey, rows []ledger.GroupRow) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2(fmt.Sprintf("Summary by %s", key))

	table := md.TableSet{
		Header: []string{key.String(), "Sessions", "Win rate", "Total PnL", "Average PnL", "Total bb", "Average bb", "bb/hand", "Streak"},
	}
	for _, row := range rows {
		s := row.Summary
		perHand := "-"
		if s.HasPerHand {
			perHand = fmt.Sprintf("%.4f", s.WinBBPerHand)
		}
		table.Rows = append(table.Rows, []string{
			row.Key,
			strconv.Itoa(s.Sessions),
			fmt.Sprintf("%.2f%%", s.WinRate*100),
			USD(s.TotalPnL),
			USD(s.AveragePnL),
			fmt.Sprintf("%.2f", s.TotalWinBB),
			fmt.Sprintf("%.2f", s.AverageWinBB),
			perHand,
			strconv.Itoa(s.LongestStreak),
		})
	}
	doc.Table(table)

	return doc.String()
}

// SessionsMarkdown renders the session table.
func SessionsMarkdown(recs []session.Record) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Sessions")

	table := md.TableSet{
		Header: []string{"#", "Date", "Location", "Stake", "Win", "Win (bb)", "PnL", "Cumulative", "Hands"},
	}
	for i, r := range recs {
		hands := "-"
		if r.HasHands() {
			hands = strconv.Itoa(r.Hands())
		}
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(i),
			r.Date.Format(session.DateLayout),
			r.Location,
			r.Stake(),
			strconv.FormatFloat(r.WinAmount, 'f', -1, 64),
			fmt.Sprintf("%.2f", r.WinBB),
			USD(r.PnL),
			USD(r.CumulativePnL),
			hands,
		})
	}
	doc.Table(table)

	return doc.String()
}

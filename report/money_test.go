package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/pokerlog/ledger"
	"github.com/rustyeddy/pokerlog/session"
)

func TestUSD(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{50, "$50.00"},
		{1234.56, "$1,234.56"},
		{-13.837, "-$13.84"},
		{0.005, "$0.01"},
		{1000000, "$1,000,000.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, USD(tt.in), "USD(%v)", tt.in)
	}
}

func TestMoneyOtherCurrencies(t *testing.T) {
	t.Parallel()

	assert.Contains(t, Money(600, "CNY"), "600.00")
	assert.Equal(t, "12.50 XYZ", Money(12.5, "XYZ"))
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintSummary(&buf, "home", ledger.Summary{
		Sessions:      2,
		WinRate:       0.5,
		TotalPnL:      -20,
		HasPerHand:    true,
		WinBBPerHand:  -0.05,
		LongestStreak: 1,
	})

	out := buf.String()
	assert.Contains(t, out, " home\n")
	assert.Contains(t, out, "Win Rate:        50.00%")
	assert.Contains(t, out, "Total:           -$20.00")
	assert.Contains(t, out, "Win/bb per hand: -0.0500")
}

func TestPrintGroupsAndSessions(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintGroups(&buf, ledger.ByYear, []ledger.GroupRow{
		{Key: "2023", Summary: ledger.Summary{Sessions: 3}},
		{Key: "2024", Summary: ledger.Summary{Sessions: 1}},
	})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "year"))
	assert.True(t, strings.HasPrefix(lines[2], "2023"))

	buf.Reset()
	r := sampleRecord()
	r.NumHands = nil
	PrintSessions(&buf, []session.Record{sampleRecord(), r})
	lines = strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[1], "vegas")
	assert.True(t, strings.HasSuffix(lines[1], "180"))
	assert.True(t, strings.HasSuffix(lines[2], "-"))
}

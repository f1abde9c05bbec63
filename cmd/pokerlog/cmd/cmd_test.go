package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/pokerlog/session"
)

// resetFlags restores every flag to its default so commands can be run
// repeatedly in one process.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// addedID extracts the session ID from the output of add.
func addedID(t *testing.T, out string) string {
	t.Helper()

	fields := strings.Fields(out)
	require.GreaterOrEqual(t, len(fields), 4, out)
	return strings.TrimSuffix(fields[3], ":")
}

func TestAddSummaryList(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "data.csv")
	t.Setenv("POKERLOG_OUTPUT_DIR", filepath.Join(dir, "charts"))

	out, err := run(t, "--data", data, "add", "--win", "25", "--sb", "1", "--bb", "2", "-l", "vegas", "--date", "2024-03-01", "--hands", "150")
	require.NoError(t, err)
	assert.Contains(t, out, "PnL 50.00 USD")

	_, err = run(t, "--data", data, "add", "--win", "-10", "--sb", "5", "--bb", "10", "--currency", "cny", "-l", "macau", "--date", "2024-04-01")
	require.NoError(t, err)

	out, err = run(t, "--data", data, "summary", "--plain", "-t", "--by", "location")
	require.NoError(t, err)
	assert.Contains(t, out, "Sessions:        2")
	assert.Contains(t, out, "Win Rate:        50.00%")
	assert.Contains(t, out, "Total:           $36.16")
	assert.Contains(t, out, "macau")

	out, err = run(t, "--data", data, "summary", "-l", "vegas", "-y", "2024", "--plot", "--hist")
	require.NoError(t, err)
	assert.Contains(t, out, "vegas 2024")
	_, err = os.Stat(filepath.Join(dir, "charts", "2024_vegas_summary.png"))
	assert.NoError(t, err)

	out, err = run(t, "--data", data, "list", "--plain")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "vegas")
	assert.Contains(t, lines[2], "5/10CNY")

	out, err = run(t, "--data", data, "list", "--plain", "--from", "2024-03-15")
	require.NoError(t, err)
	assert.NotContains(t, out, "vegas")
	assert.Contains(t, out, "macau")
}

func TestSummaryOrgReport(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "data.csv")
	org := filepath.Join(dir, "summary.org")

	_, err := run(t, "--data", data, "add", "--win", "3", "--sb", "1", "--bb", "2", "-l", "home", "--date", "2023-01-01")
	require.NoError(t, err)

	_, err = run(t, "--data", data, "summary", "-t", "--by", "year", "--org", org)
	require.NoError(t, err)

	b, err := os.ReadFile(org)
	require.NoError(t, err)
	assert.Contains(t, string(b), "* POKER SUMMARY: all sessions")
	assert.Contains(t, string(b), "** By year")
	assert.Contains(t, string(b), "| 2023 | 1 |")
}

func TestSQLiteShowAndMigrate(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "poker.sqlite")

	out, err := run(t, "--store", "sqlite", "--data", db, "add", "--win", "40", "--sb", "1", "--bb", "2", "-l", "home", "--date", "2023-05-05")
	require.NoError(t, err)
	first := addedID(t, out)

	out, err = run(t, "--store", "sqlite", "--data", db, "add", "--win", "-5", "--sb", "1", "--bb", "2", "-l", "club", "--date", "2023-06-06", "--hands", "90")
	require.NoError(t, err)
	second := addedID(t, out)
	assert.NotEqual(t, first, second)

	out, err = run(t, "--store", "sqlite", "--data", db, "show", second)
	require.NoError(t, err)
	assert.Contains(t, out, ":ID: "+second)
	assert.Contains(t, out, ":PNL: -10.00")
	assert.Contains(t, out, ":CUM_PNL: 70.00")
	assert.Contains(t, out, ":HANDS: 90")

	_, err = run(t, "--store", "sqlite", "--data", db, "show", "missing")
	assert.Error(t, err)

	csvPath := filepath.Join(dir, "export.csv")
	out, err = run(t, "--store", "sqlite", "--data", db, "migrate", "--to", "csv", "--out", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Copied 2 sessions")

	out, err = run(t, "--data", csvPath, "show", first)
	require.NoError(t, err)
	assert.Contains(t, out, ":PNL: 80.00")

	out, err = run(t, "--store", "sqlite", "--data", db, "list", "--org", "--from", "2023-06-01", "--to", "2023-07-01")
	require.NoError(t, err)
	assert.Contains(t, out, "** Session: club 2023-06-06")
	assert.NotContains(t, out, "** Session: home")
	assert.Contains(t, out, ":CUM_PNL: 70.00")
}

func TestListDateRangeLegacyRows(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "data.csv")
	legacy := `,win_bb,sb_val,bb_val,currency,location,pnl,date,num_hands
0,10,1,2,USD,home,20.0,2023-01-01 00:00:00,
1,5,1,2,USD,club,10.0,2024-06-01 00:00:00,120.0
`
	require.NoError(t, os.WriteFile(data, []byte(legacy), 0644))

	out, err := run(t, "--data", data, "list", "--plain", "--from", "2024-01-01", "--to", "2025-01-01")
	require.NoError(t, err)
	assert.Contains(t, out, "club")
	assert.NotContains(t, out, "home")

	out, err = run(t, "--data", data, "list", "--plain", "--from", "2025-01-01")
	require.NoError(t, err)
	assert.NotContains(t, out, "club")
	assert.NotContains(t, out, "home")

	db := filepath.Join(dir, "legacy.sqlite")
	_, err = run(t, "--data", data, "migrate", "--to", "sqlite", "--out", db)
	require.NoError(t, err)

	out, err = run(t, "--store", "sqlite", "--data", db, "list", "--plain", "--from", "2022-01-01", "--to", "2024-01-01")
	require.NoError(t, err)
	assert.Contains(t, out, "home")
	assert.NotContains(t, out, "club")
}

func TestAddErrors(t *testing.T) {
	data := filepath.Join(t.TempDir(), "data.csv")

	_, err := run(t, "--data", data, "add", "--win", "1", "--bb", "2", "-l", "paris", "--currency", "ZZZ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, session.ErrUnknownCurrency))

	_, err = run(t, "--data", data, "add", "--win", "1", "--bb", "2", "-l", "home", "--date", "yesterday")
	assert.Error(t, err)

	_, err = run(t, "--data", data, "add", "--win", "1", "-l", "home")
	assert.Error(t, err)

	_, err = run(t, "--data", data, "--store", "parquet", "list")
	assert.Error(t, err)
}

func TestConfigInitValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pokerlog.yaml")

	out, err := run(t, "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")

	out, err = run(t, "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Ledger: bb mode, impute missing hands")

	_, err = run(t, "--config", path, "version")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("ledger:\n  mode: euros\n"), 0644))
	_, err = run(t, "config", "validate", "-f", path)
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pokerlog version "+version)
}

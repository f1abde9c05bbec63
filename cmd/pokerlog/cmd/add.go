package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/pokerlog/session"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a session",
	Long: `Append a session to the table and recompute PnL.

In bb mode --win is the result in big blinds, in chips mode it is the
result in the session currency.

Examples:
  pokerlog add --win 25 --sb 1 --bb 2 --location vegas
  pokerlog add --win -40 --sb 5 --bb 10 --currency CNY --location macau --date 2024-04-02 --hands 210`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

var (
	addWin      float64
	addSB       float64
	addBB       float64
	addCurrency string
	addLocation string
	addDate     string
	addHands    int
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().Float64Var(&addWin, "win", 0, "session result (big blinds or chips, see ledger mode)")
	addCmd.Flags().Float64Var(&addSB, "sb", 0, "small blind")
	addCmd.Flags().Float64Var(&addBB, "bb", 0, "big blind")
	addCmd.Flags().StringVar(&addCurrency, "currency", "USD", "stake currency")
	addCmd.Flags().StringVarP(&addLocation, "location", "l", "", "where the session was played")
	addCmd.Flags().StringVar(&addDate, "date", "", "session date YYYY-MM-DD (default today)")
	addCmd.Flags().IntVar(&addHands, "hands", -1, "number of hands played (negative if unknown)")
	addCmd.MarkFlagRequired("win")
	addCmd.MarkFlagRequired("bb")
	addCmd.MarkFlagRequired("location")
}

func runAdd(cmd *cobra.Command, args []string) error {
	cur, err := session.ParseCurrency(addCurrency)
	if err != nil {
		return err
	}

	now := time.Now()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if addDate != "" {
		if date, err = session.ParseDate(addDate); err != nil {
			return err
		}
	}

	l, store, err := openLedger()
	if err != nil {
		return err
	}
	defer store.Close()

	err = l.AddFields(
		session.WithWin(addWin),
		session.WithStakes(addSB, addBB),
		session.WithCurrency(cur),
		session.WithLocation(addLocation),
		session.WithDate(date),
		session.WithHands(addHands),
	)
	if err != nil {
		return fmt.Errorf("add session: %w", err)
	}

	recs := l.Records()
	r := recs[len(recs)-1]
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Added session %s: %s %s, %.2f bb, PnL %.2f USD (total %.2f)\n",
		r.ID, r.Location, r.Stake(), r.WinBB, r.PnL, r.CumulativePnL)
	return nil
}

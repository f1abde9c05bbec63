package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/pokerlog/chart"
	"github.com/rustyeddy/pokerlog/ledger"
	"github.com/rustyeddy/pokerlog/report"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize sessions",
	Long: `Print summary statistics for all sessions or for one location and/or year.

With --table a summary per group (--by location, year or stake) follows.
With --plot the cumulative PnL and Win/bb chart is written to the output
directory as [<year>_][<location>_]summary.png.

Examples:
  pokerlog summary
  pokerlog summary -l vegas -y 2024 --plot
  pokerlog summary -t --by stake
  pokerlog summary --plot --hist --org summary.org`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

var (
	summaryLocation string
	summaryYear     int
	summaryTable    bool
	summaryBy       string
	summaryPlot     bool
	summaryHist     bool
	summaryPlain    bool
	summaryOrg      string
)

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().StringVarP(&summaryLocation, "location", "l", "", "only sessions at this location")
	summaryCmd.Flags().IntVarP(&summaryYear, "year", "y", 0, "only sessions in this year")
	summaryCmd.Flags().BoolVarP(&summaryTable, "table", "t", false, "also print a summary per group")
	summaryCmd.Flags().StringVar(&summaryBy, "by", "location", "group key for --table: location, year or stake")
	summaryCmd.Flags().BoolVar(&summaryPlot, "plot", false, "write the summary chart")
	summaryCmd.Flags().BoolVar(&summaryHist, "hist", false, "add PnL and Win/bb histograms to the chart")
	summaryCmd.Flags().BoolVar(&summaryPlain, "plain", false, "plain text output instead of rendered markdown")
	summaryCmd.Flags().StringVar(&summaryOrg, "org", "", "also write an Org-mode report to this file")
}

func runSummary(cmd *cobra.Command, args []string) error {
	key, err := ledger.ParseGroupKey(summaryBy)
	if err != nil {
		return err
	}

	l, store, err := openLedger()
	if err != nil {
		return err
	}
	defer store.Close()

	f := ledger.Filter{Location: summaryLocation, Year: summaryYear}
	rep := l.Report(f)

	var groups []ledger.GroupRow
	if summaryTable {
		groups = l.GroupSummary(key)
	}

	out := cmd.OutOrStdout()
	if summaryPlain {
		report.PrintSummary(out, f.String(), rep.Summary)
		if summaryTable {
			report.PrintGroups(out, key, groups)
		}
	} else {
		doc := report.SummaryMarkdown(f.String(), rep.Summary)
		if summaryTable {
			doc += "\n" + report.GroupsMarkdown(key, groups)
		}
		if err := render(out, doc); err != nil {
			return err
		}
	}

	var png string
	if summaryPlot || summaryHist {
		png = chart.Path(cfg.Output.Dir, f)
		opts := chart.DefaultOptions()
		opts.Width = cfg.Output.Width
		opts.Height = cfg.Output.Height
		opts.Histograms = summaryHist || cfg.Output.Histograms
		if err := chart.Render(png, rep.Series, opts); err != nil {
			return fmt.Errorf("plot: %w", err)
		}
		slog.Info("chart written", "path", png, "sessions", rep.Series.Len())
	}

	if summaryOrg != "" {
		v := &report.SummaryOrg{
			Filter:   f,
			Created:  time.Now(),
			Summary:  rep.Summary,
			GroupKey: key,
			Groups:   groups,
			ChartPNG: png,
		}
		if err := v.WriteFile(summaryOrg); err != nil {
			return fmt.Errorf("write org report: %w", err)
		}
		slog.Info("org report written", "path", summaryOrg)
	}
	return nil
}

// render prints markdown through the configured terminal style.
func render(w io.Writer, doc string) error {
	s, err := report.Render(doc, cfg.Output.Style)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	_, err = io.WriteString(w, s)
	return err
}

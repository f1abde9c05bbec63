package report

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/rustyeddy/pokerlog/internal/id"
	"github.com/rustyeddy/pokerlog/ledger"
	"github.com/rustyeddy/pokerlog/session"
)

// FormatSessionOrg renders a session as an Org-mode block suitable for pasting
// into a poker journal. Facts go into a PROPERTIES drawer; the headings below it
// are left for notes.
func FormatSessionOrg(r session.Record) string {
	heading := fmt.Sprintf("** Session: %s %s (%s)", r.Location, r.Date.Format(session.DateLayout), shortID(r.ID))

	hands := ""
	if r.HasHands() {
		hands = fmt.Sprintf("%d", r.Hands())
	}

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":ID: %s\n", r.ID))
	if created, err := id.Time(r.ID); err == nil {
		b.WriteString(fmt.Sprintf(":CREATED: [%s]\n", created.UTC().Format("2006-01-02 Mon 15:04")))
	}
	b.WriteString(fmt.Sprintf(":DATE: %s\n", r.Date.Format(session.DateLayout)))
	b.WriteString(fmt.Sprintf(":LOCATION: %s\n", r.Location))
	b.WriteString(fmt.Sprintf(":STAKE: %s\n", r.Stake()))
	b.WriteString(fmt.Sprintf(":CURRENCY: %s\n", r.Currency))
	b.WriteString(fmt.Sprintf(":WIN: %s\n", f(r.WinAmount)))
	b.WriteString(fmt.Sprintf(":WIN_BB: %.2f\n", r.WinBB))
	b.WriteString(fmt.Sprintf(":PNL: %.2f\n", r.PnL))
	b.WriteString(fmt.Sprintf(":CUM_PNL: %.2f\n", r.CumulativePnL))
	b.WriteString(fmt.Sprintf(":HANDS: %s\n", hands))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Key hands\n- \n\n")
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatSessionsOrg renders multiple sessions separated by blank lines.
func FormatSessionsOrg(recs []session.Record) string {
	var b strings.Builder
	for i, r := range recs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatSessionOrg(r))
	}
	return b.String()
}

func shortID(full string) string {
	if full == "" {
		return "no id"
	}
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// SummaryOrg is the data of an Org-mode summary report.
type SummaryOrg struct {
	Title    string
	Filter   ledger.Filter
	Created  time.Time
	Summary  ledger.Summary
	GroupKey ledger.GroupKey
	Groups   []ledger.GroupRow
	ChartPNG string
	Notes    []string
}

var summaryOrgFuncs = template.FuncMap{
	"mul100": func(x float64) float64 { return x * 100.0 },
	"usd":    USD,
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
}

// Render executes the Org template.
func (v *SummaryOrg) Render() (string, error) {
	t, err := template.New("summary").Funcs(summaryOrgFuncs).Parse(SummaryOrgTemplate)
	if err != nil {
		return "", err
	}

	buf := new(bytes.Buffer)
	if err := t.Execute(buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteFile renders the report and writes it to path.
func (v *SummaryOrg) WriteFile(path string) error {
	s, err := v.Render()
	if err != nil {
		return fmt.Errorf("render org summary: %w", err)
	}
	return os.WriteFile(path, []byte(s), 0644)
}

const SummaryOrgTemplate = `
* POKER SUMMARY: {{if .Title}}{{.Title}}{{else}}{{.Filter}}{{end}}
:PROPERTIES:
:FILTER:      {{.Filter}}
:SESSIONS:    {{.Summary.Sessions}}
:WIN_RATE:    {{printf "%.2f" (mul100 .Summary.WinRate)}}
:TOTAL_PNL:   {{printf "%.2f" .Summary.TotalPnL}}
:AVG_PNL:     {{printf "%.2f" .Summary.AveragePnL}}
:TOTAL_BB:    {{printf "%.2f" .Summary.TotalWinBB}}
:AVG_BB:      {{printf "%.2f" .Summary.AverageWinBB}}
:STREAK:      {{.Summary.LongestStreak}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Results
- Total PnL:        *{{usd .Summary.TotalPnL}}*
- Average PnL:      *{{usd .Summary.AveragePnL}}*
- Win Rate:         *{{printf "%.2f" (mul100 .Summary.WinRate)}}%*
- Longest Streak:   *{{.Summary.LongestStreak}}*
- Longest Slump:    *{{.Summary.LongestLosingStreak}}*
{{- if .Summary.HasPerHand }}
- Win/bb per Hand:  *{{printf "%.4f" .Summary.WinBBPerHand}}*
- PnL per Hand:     *{{printf "%.4f" .Summary.PnLPerHand}}*
{{- end }}

** Cumulative PnL
{{- if .ChartPNG }}
[[file:{{.ChartPNG}}]]
{{- else }}
# (optional) run with --plot to link the chart here
{{- end }}

{{- if .Groups }}

** By {{.GroupKey}}
| {{.GroupKey}} | Sessions | Win % | Total PnL | Avg PnL | Total bb | Streak |
|---+---+---+---+---+---+---|
{{- range .Groups }}
| {{.Key}} | {{.Summary.Sessions}} | {{printf "%.2f" (mul100 .Summary.WinRate)}} | {{printf "%.2f" .Summary.TotalPnL}} | {{printf "%.2f" .Summary.AveragePnL}} | {{printf "%.2f" .Summary.TotalWinBB}} | {{.Summary.LongestStreak}} |
{{- end }}
{{- end }}

{{- if .Notes }}

** Notes
{{- range .Notes }}
- {{.}}
{{- end }}
{{- end }}
`

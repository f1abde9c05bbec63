// Package ledger holds the session table and derives profit and loss and
// summary statistics from it.
//
// A Ledger owns its table. Records are only ever appended; every append
// recomputes the derived columns over the whole table and rewrites the
// store. Table order is insertion order and is treated as chronological
// order for running totals and streaks, regardless of session dates.
package ledger

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/pokerlog/internal/id"
	"github.com/rustyeddy/pokerlog/journal"
	"github.com/rustyeddy/pokerlog/session"
)

// Options controls how a Ledger derives its columns.
type Options struct {
	Mode  session.Mode
	Rates session.Rates
	Hands HandPolicy
}

// DefaultOptions reads win amounts in big blinds and imputes missing hand
// counts.
func DefaultOptions() Options {
	return Options{
		Mode:  session.BigBlinds,
		Rates: session.DefaultRates(),
		Hands: ImputeHands,
	}
}

// Ledger is an ordered table of poker sessions backed by a store.
type Ledger struct {
	store   journal.Store
	opts    Options
	records []session.Record
}

// New returns an empty ledger. Call Load to read the persisted table.
func New(store journal.Store, opts Options) *Ledger {
	if opts.Rates == nil {
		opts.Rates = session.DefaultRates()
	}
	return &Ledger{store: store, opts: opts}
}

// Open creates a ledger and loads its table.
func Open(store journal.Store, opts Options) (*Ledger, error) {
	l := New(store, opts)
	if err := l.Load(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Ledger) Options() Options { return l.opts }

// Load reads the persisted table and recomputes the derived columns.
// A store that does not exist yet yields an empty table.
func (l *Ledger) Load() error {
	recs, err := l.store.Load()
	if errors.Is(err, journal.ErrNotExist) {
		slog.Info("no session table found, starting empty", "err", err)
		l.records = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}
	l.records = recs
	return l.ComputePnL()
}

// ComputePnL derives WinBB, PnL and CumulativePnL for every record.
// Values are rounded to cents after the conversion, and the running total
// is the sum of the rounded PnL values.
func (l *Ledger) ComputePnL() error {
	running := decimal.Zero
	for i := range l.records {
		r := &l.records[i]

		if !finite(r.WinAmount) || !finite(r.BigBlind) {
			return fmt.Errorf("session %d: win %v and big blind %v must be finite", i, r.WinAmount, r.BigBlind)
		}
		r.WinBB = l.opts.Mode.WinBB(*r)
		if !finite(r.WinBB) {
			return fmt.Errorf("session %d: win in big blinds is not finite (big blind %v)", i, r.BigBlind)
		}

		native := decimal.NewFromFloat(r.WinAmount)
		if l.opts.Mode == session.BigBlinds {
			native = native.Mul(decimal.NewFromFloat(r.BigBlind))
		}
		usd, err := l.opts.Rates.ToUSD(native, r.Currency)
		if err != nil {
			return fmt.Errorf("session %d: %w", i, err)
		}

		pnl := usd.Round(2)
		running = running.Add(pnl)
		r.PnL = pnl.InexactFloat64()
		r.CumulativePnL = running.InexactFloat64()
	}
	return nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Add appends a session, recomputes the table and persists it. Sessions
// without an ID get a new one. On error the table is left unchanged.
func (l *Ledger) Add(r session.Record) error {
	if r.ID == "" {
		r.ID = id.New()
	}

	n := len(l.records)
	l.records = append(l.records, r)
	if err := l.ComputePnL(); err != nil {
		l.records = l.records[:n]
		return err
	}

	if err := l.store.Save(l.records); err != nil {
		return fmt.Errorf("save sessions: %w", err)
	}
	slog.Debug("session added", "id", r.ID, "location", r.Location, "pnl", l.records[n].PnL)
	return nil
}

// AddFields builds a session from field options and adds it.
func (l *Ledger) AddFields(opts ...session.Option) error {
	return l.Add(session.New(opts...))
}

// Records returns a copy of the table in table order.
func (l *Ledger) Records() []session.Record {
	return slices.Clone(l.records)
}

func (l *Ledger) Len() int { return len(l.records) }

// Find returns the session with the given ID.
func (l *Ledger) Find(sessionID string) (session.Record, error) {
	for _, r := range l.records {
		if r.ID == sessionID {
			return r, nil
		}
	}
	return session.Record{}, fmt.Errorf("%w: %q", journal.ErrNotFound, sessionID)
}

// Locations returns the distinct locations in order of first appearance.
func (l *Ledger) Locations() []string {
	var out []string
	seen := make(map[string]bool)
	for _, r := range l.records {
		if !seen[r.Location] {
			seen[r.Location] = true
			out = append(out, r.Location)
		}
	}
	return out
}

// Years returns the distinct calendar years in order of first appearance.
func (l *Ledger) Years() []int {
	var out []int
	seen := make(map[int]bool)
	for _, r := range l.records {
		y := r.Year()
		if !seen[y] {
			seen[y] = true
			out = append(out, y)
		}
	}
	return out
}

// Summary summarizes the sessions matching f.
func (l *Ledger) Summary(f Filter) Summary {
	return Summarize(f.Apply(l.records), l.opts.Hands)
}

// GroupSummary summarizes every partition of the table by key.
func (l *Ledger) GroupSummary(key GroupKey) []GroupRow {
	return GroupSummary(l.records, key, l.opts.Hands)
}

// Report returns the summary of the sessions matching f together with the
// series needed to plot them.
func (l *Ledger) Report(f Filter) Report {
	recs := f.Apply(l.records)
	return Report{
		Filter:  f,
		Summary: Summarize(recs, l.opts.Hands),
		Series:  NewSeries(recs),
	}
}

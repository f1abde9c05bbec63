package ledger

import "github.com/rustyeddy/pokerlog/session"

// Series holds the plottable values of a set of sessions. The cumulative
// slices start with a zero point so a chart begins at the origin.
type Series struct {
	CumPnL   []float64
	CumWinBB []float64
	PnL      []float64
	WinBB    []float64
}

// NewSeries builds the series of recs in table order.
func NewSeries(recs []session.Record) Series {
	s := Series{
		CumPnL:   make([]float64, 1, len(recs)+1),
		CumWinBB: make([]float64, 1, len(recs)+1),
		PnL:      make([]float64, 0, len(recs)),
		WinBB:    make([]float64, 0, len(recs)),
	}
	var pnl, winBB float64
	for _, r := range recs {
		pnl += r.PnL
		winBB += r.WinBB
		s.CumPnL = append(s.CumPnL, pnl)
		s.CumWinBB = append(s.CumWinBB, winBB)
		s.PnL = append(s.PnL, r.PnL)
		s.WinBB = append(s.WinBB, r.WinBB)
	}
	return s
}

// Len is the number of sessions in the series.
func (s Series) Len() int { return len(s.PnL) }

// Report is a summary together with the series it was computed from.
type Report struct {
	Filter  Filter
	Summary Summary
	Series  Series
}

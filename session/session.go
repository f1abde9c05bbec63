// session/session.go
package session

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is how session dates are written to and read from storage.
const DateLayout = "2006-01-02"

// Record is one played poker session.
//
// WinAmount is in the units of the ledger Mode. WinBB, PnL and
// CumulativePnL are derived by the ledger and are never taken as input.
type Record struct {
	ID         string
	WinAmount  float64
	SmallBlind float64
	BigBlind   float64
	Currency   Currency
	Location   string
	Date       time.Time
	NumHands   *int

	// Derived
	WinBB         float64
	PnL           float64
	CumulativePnL float64
}

// HasHands reports whether the hand count of the session is known.
func (r Record) HasHands() bool {
	return r.NumHands != nil
}

// Hands returns the hand count, or 0 when it is missing.
func (r Record) Hands() int {
	if r.NumHands == nil {
		return 0
	}
	return *r.NumHands
}

// Year is the calendar year the session was played in.
func (r Record) Year() int {
	return r.Date.Year()
}

// Stake returns the stake label of the session, e.g. "1/2USD".
func (r Record) Stake() string {
	return StakeLabel(r.SmallBlind, r.BigBlind, r.Currency)
}

// Mode tells how the WinAmount of a record is denominated.
type Mode int

const (
	// BigBlinds means WinAmount is already expressed in big blinds.
	BigBlinds Mode = iota
	// Chips means WinAmount is expressed in currency units.
	Chips
)

func (m Mode) String() string {
	switch m {
	case BigBlinds:
		return "bb"
	case Chips:
		return "chips"
	default:
		return "unknown"
	}
}

// ParseMode parses "bb" or "chips" into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bb", "":
		return BigBlinds, nil
	case "chips":
		return Chips, nil
	default:
		return 0, fmt.Errorf("unknown ledger mode %q (supported: bb, chips)", s)
	}
}

// WinBB returns the session result in big blinds for the given mode.
func (m Mode) WinBB(r Record) float64 {
	if m == Chips {
		return r.WinAmount / r.BigBlind
	}
	return r.WinAmount
}

// ParseDate parses a session date in DateLayout.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

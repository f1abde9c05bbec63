package ledger

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/pokerlog/session"
)

// HandPolicy decides how sessions without a hand count enter the per-hand
// statistics.
type HandPolicy int

const (
	// ImputeHands fills missing hand counts with the mean of the known ones.
	ImputeHands HandPolicy = iota
	// ExcludeHands leaves sessions without a hand count out of the per-hand
	// statistics entirely.
	ExcludeHands
)

func (p HandPolicy) String() string {
	switch p {
	case ImputeHands:
		return "impute"
	case ExcludeHands:
		return "exclude"
	default:
		return "unknown"
	}
}

// ParseHandPolicy parses "impute" or "exclude".
func ParseHandPolicy(s string) (HandPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "impute", "":
		return ImputeHands, nil
	case "exclude":
		return ExcludeHands, nil
	default:
		return 0, fmt.Errorf("unknown hands policy %q (supported: impute, exclude)", s)
	}
}

// Summary holds the aggregate statistics of a set of sessions.
type Summary struct {
	Sessions     int     `json:"sessions" yaml:"sessions"`
	WinRate      float64 `json:"win_rate" yaml:"win_rate"`
	TotalPnL     float64 `json:"total_pnl" yaml:"total_pnl"`
	AveragePnL   float64 `json:"average_pnl" yaml:"average_pnl"`
	TotalWinBB   float64 `json:"total_win_bb" yaml:"total_win_bb"`
	AverageWinBB float64 `json:"average_win_bb" yaml:"average_win_bb"`

	// Per-hand figures are only set when at least one session has a hand count.
	HasPerHand   bool    `json:"has_per_hand" yaml:"has_per_hand"`
	WinBBPerHand float64 `json:"win_bb_per_hand,omitempty" yaml:"win_bb_per_hand,omitempty"`
	PnLPerHand   float64 `json:"pnl_per_hand,omitempty" yaml:"pnl_per_hand,omitempty"`

	LongestStreak       int `json:"longest_streak" yaml:"longest_streak"`
	LongestLosingStreak int `json:"longest_losing_streak" yaml:"longest_losing_streak"`
}

// Summarize computes the statistics of recs, taken in the given order.
func Summarize(recs []session.Record, hands HandPolicy) Summary {
	var s Summary
	s.Sessions = len(recs)
	if s.Sessions == 0 {
		return s
	}

	wins := 0
	for _, r := range recs {
		if r.PnL > 0 {
			wins++
		}
		s.TotalPnL += r.PnL
		s.TotalWinBB += r.WinBB
	}
	n := float64(s.Sessions)
	s.WinRate = float64(wins) / n
	s.AveragePnL = s.TotalPnL / n
	s.AverageWinBB = s.TotalWinBB / n

	perHand(&s, recs, hands)

	s.LongestStreak = LongestStreak(recs, func(r session.Record) bool { return r.PnL > 0 })
	s.LongestLosingStreak = LongestStreak(recs, func(r session.Record) bool { return r.PnL < 0 })
	return s
}

func perHand(s *Summary, recs []session.Record, policy HandPolicy) {
	var (
		known      int
		knownHands float64
		knownWinBB float64
		knownPnL   float64
	)
	for _, r := range recs {
		if !r.HasHands() {
			continue
		}
		known++
		knownHands += float64(r.Hands())
		knownWinBB += r.WinBB
		knownPnL += r.PnL
	}
	if known == 0 {
		return
	}

	hands, winBB, pnl := knownHands, knownWinBB, knownPnL
	if policy == ImputeHands {
		mean := knownHands / float64(known)
		hands += mean * float64(len(recs)-known)
		winBB, pnl = s.TotalWinBB, s.TotalPnL
	}
	if hands == 0 {
		return
	}

	s.HasPerHand = true
	s.WinBBPerHand = winBB / hands
	s.PnLPerHand = pnl / hands
}

// LongestStreak returns the length of the longest run of consecutive
// sessions for which match holds.
func LongestStreak(recs []session.Record, match func(session.Record) bool) int {
	longest, run := 0, 0
	for _, r := range recs {
		if !match(r) {
			run = 0
			continue
		}
		run++
		if run > longest {
			longest = run
		}
	}
	return longest
}

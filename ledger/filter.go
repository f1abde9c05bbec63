package ledger

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rustyeddy/pokerlog/session"
)

// Filter restricts a table to one location and/or one calendar year.
// Zero values do not restrict.
type Filter struct {
	Location string
	Year     int
}

func (f Filter) IsZero() bool {
	return f.Location == "" && f.Year == 0
}

// Match reports whether r passes the filter. Locations match exactly.
func (f Filter) Match(r session.Record) bool {
	if f.Location != "" && r.Location != f.Location {
		return false
	}
	if f.Year != 0 && r.Year() != f.Year {
		return false
	}
	return true
}

// Apply returns the records passing the filter, in table order.
func (f Filter) Apply(recs []session.Record) []session.Record {
	if f.IsZero() {
		return recs
	}
	var out []session.Record
	for _, r := range recs {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

func (f Filter) String() string {
	var parts []string
	if f.Location != "" {
		parts = append(parts, f.Location)
	}
	if f.Year != 0 {
		parts = append(parts, strconv.Itoa(f.Year))
	}
	if len(parts) == 0 {
		return "all sessions"
	}
	return strings.Join(parts, " ")
}

// GroupKey selects how GroupSummary partitions a table.
type GroupKey int

const (
	ByLocation GroupKey = iota
	ByYear
	ByStake
)

func (k GroupKey) String() string {
	switch k {
	case ByLocation:
		return "location"
	case ByYear:
		return "year"
	case ByStake:
		return "stake"
	default:
		return "unknown"
	}
}

// ParseGroupKey parses "location", "year" or "stake".
func ParseGroupKey(s string) (GroupKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "location", "loc":
		return ByLocation, nil
	case "year":
		return ByYear, nil
	case "stake", "stakes":
		return ByStake, nil
	default:
		return 0, fmt.Errorf("unknown group key %q (supported: location, year, stake)", s)
	}
}

// Of returns the group value of r.
func (k GroupKey) Of(r session.Record) string {
	switch k {
	case ByYear:
		return strconv.Itoa(r.Year())
	case ByStake:
		return r.Stake()
	default:
		return r.Location
	}
}

// GroupRow is the summary of one partition.
type GroupRow struct {
	Key     string
	Summary Summary
}

// GroupSummary partitions recs by key and summarizes each partition.
// Rows are sorted by key; records keep their table order inside a group.
func GroupSummary(recs []session.Record, key GroupKey, hands HandPolicy) []GroupRow {
	groups := make(map[string][]session.Record)
	for _, r := range recs {
		k := key.Of(r)
		groups[k] = append(groups[k], r)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]GroupRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, GroupRow{Key: k, Summary: Summarize(groups[k], hands)})
	}
	return rows
}

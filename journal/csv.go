package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rustyeddy/pokerlog/session"
)

// Column names of the session table.
const (
	ColID        = "id"
	ColWinBB     = "win_bb"
	ColWinAmount = "win_amount"
	ColSB        = "sb_val"
	ColBB        = "bb_val"
	ColCurrency  = "currency"
	ColLocation  = "location"
	ColPnL       = "pnl"
	ColDate      = "date"
	ColNumHands  = "num_hands"
)

// Columns returns the canonical header for a ledger mode.
func Columns(mode session.Mode) []string {
	return []string{ColID, winColumn(mode), ColSB, ColBB, ColCurrency, ColLocation, ColPnL, ColDate, ColNumHands}
}

func winColumn(mode session.Mode) string {
	if mode == session.Chips {
		return ColWinAmount
	}
	return ColWinBB
}

// CSVStore keeps the session table in a single CSV file.
type CSVStore struct {
	path string
	mode session.Mode
}

func NewCSV(path string, mode session.Mode) *CSVStore {
	return &CSVStore{path: path, mode: mode}
}

func (s *CSVStore) Path() string { return s.path }

// Load reads every row of the table. Columns are matched by header name so
// files carrying an extra unnamed index column still load.
func (s *CSVStore) Load() ([]session.Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrNotExist, err)
		}
		return nil, err
	}
	defer f.Close()

	return readCSV(f, s.mode)
}

// Save rewrites the table file.
func (s *CSVStore) Save(recs []session.Record) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	if err := writeCSV(f, s.mode, recs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *CSVStore) Close() error { return nil }

func writeCSV(w io.Writer, mode session.Mode, recs []session.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns(mode)); err != nil {
		return err
	}
	for _, r := range recs {
		hands := ""
		if r.HasHands() {
			hands = strconv.Itoa(r.Hands())
		}
		err := cw.Write([]string{
			r.ID,
			f(r.WinAmount),
			f(r.SmallBlind),
			f(r.BigBlind),
			string(r.Currency),
			r.Location,
			strconv.FormatFloat(r.PnL, 'f', 2, 64),
			r.Date.Format(session.DateLayout),
			hands,
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func readCSV(r io.Reader, mode session.Mode) ([]session.Record, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}

	winCol := winColumn(mode)
	if _, ok := idx[winCol]; !ok {
		other := ColWinAmount
		if mode == session.Chips {
			other = ColWinBB
		}
		if _, ok := idx[other]; ok {
			return nil, fmt.Errorf("%w: table has %q, ledger mode %s expects %q", ErrModeMismatch, other, mode, winCol)
		}
	}
	for _, col := range []string{winCol, ColSB, ColBB, ColCurrency, ColLocation, ColDate} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var out []session.Record
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, err
		}
		rec, err := parseRow(row, idx, winCol)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func parseRow(row []string, idx map[string]int, winCol string) (session.Record, error) {
	var rec session.Record
	var err error

	raw := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}
	get := func(col string) string {
		return strings.TrimSpace(raw(col))
	}
	num := func(col string) (float64, error) {
		v, err := strconv.ParseFloat(get(col), 64)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", col, err)
		}
		return v, nil
	}

	rec.ID = get(ColID)
	if rec.WinAmount, err = num(winCol); err != nil {
		return rec, err
	}
	if rec.SmallBlind, err = num(ColSB); err != nil {
		return rec, err
	}
	if rec.BigBlind, err = num(ColBB); err != nil {
		return rec, err
	}
	if rec.Currency, err = session.ParseCurrency(get(ColCurrency)); err != nil {
		return rec, err
	}
	// locations are free text and filtered by exact match
	rec.Location = raw(ColLocation)

	// pandas writes datetimes as "2006-01-02 00:00:00"
	date := get(ColDate)
	if len(date) > len(session.DateLayout) {
		date = date[:len(session.DateLayout)]
	}
	if rec.Date, err = session.ParseDate(date); err != nil {
		return rec, err
	}

	if h := get(ColNumHands); h != "" && !strings.EqualFold(h, "nan") {
		v, err := strconv.ParseFloat(h, 64)
		if err != nil {
			return rec, fmt.Errorf("%s: %w", ColNumHands, err)
		}
		n := int(math.Round(v))
		rec.NumHands = &n
	}
	return rec, nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

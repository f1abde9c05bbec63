package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/pokerlog/session"
)

// SQLiteStore keeps the session table in a SQLite database. The row order
// of the sessions table (seq) is the table order of the ledger.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

// NewSQLite returns a store for the database at path. The database is
// opened on first use so that Load can report a missing file.
func NewSQLite(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (j *SQLiteStore) Path() string { return j.path }

func (j *SQLiteStore) open() error {
	if j.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite3", j.path)
	if err != nil {
		return err
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return err
	}
	j.db = db
	return nil
}

func (j *SQLiteStore) Load() ([]session.Record, error) {
	if j.db == nil {
		if _, err := os.Stat(j.path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %w", ErrNotExist, err)
			}
			return nil, err
		}
	}
	if err := j.open(); err != nil {
		return nil, err
	}

	rows, err := j.db.Query(`SELECT ` + selectColumns + ` FROM ` + sessionsWithTotals + ` ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSessions(rows)
}

// Save replaces the whole sessions table in a single transaction.
func (j *SQLiteStore) Save(recs []session.Record) error {
	if err := j.open(); err != nil {
		return err
	}

	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM sessions`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO sessions
		(id, win_amount, sb_val, bb_val, currency, location, pnl, win_bb, date, num_hands)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range recs {
		var hands sql.NullInt64
		if r.HasHands() {
			hands = sql.NullInt64{Int64: int64(r.Hands()), Valid: true}
		}
		_, err := stmt.Exec(
			r.ID, r.WinAmount, r.SmallBlind, r.BigBlind, string(r.Currency),
			r.Location, r.PnL, r.WinBB, r.Date.Format(session.DateLayout), hands,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (j *SQLiteStore) Close() error {
	if j.db == nil {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}

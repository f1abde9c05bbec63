package journal

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rustyeddy/pokerlog/session"
)

const selectColumns = `id, win_amount, sb_val, bb_val, currency, location, pnl, win_bb, cum_pnl, date, num_hands`

// sessionsWithTotals adds the running PnL total over table order, so
// single rows carry their cumulative PnL.
const sessionsWithTotals = `(SELECT *, SUM(pnl) OVER (ORDER BY seq) AS cum_pnl FROM sessions)`

// GetSession returns a single session by ID with its stored PnL, Win/bb
// and running total.
func (j *SQLiteStore) GetSession(id string) (session.Record, error) {
	if err := j.open(); err != nil {
		return session.Record{}, err
	}

	rows, err := j.db.Query(`SELECT `+selectColumns+` FROM `+sessionsWithTotals+` WHERE id = ? ORDER BY seq ASC LIMIT 1`, id)
	if err != nil {
		return session.Record{}, err
	}
	defer rows.Close()

	recs, err := scanSessions(rows)
	if err != nil {
		return session.Record{}, err
	}
	if len(recs) == 0 {
		return session.Record{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return recs[0], nil
}

// ListSessionsBetween returns sessions whose date is within [start, end),
// in table order.
func (j *SQLiteStore) ListSessionsBetween(start, end time.Time) ([]session.Record, error) {
	if err := j.open(); err != nil {
		return nil, err
	}

	rows, err := j.db.Query(`
		SELECT `+selectColumns+`
		FROM `+sessionsWithTotals+`
		WHERE date >= ? AND date < ?
		ORDER BY seq ASC`,
		start.Format(session.DateLayout), end.Format(session.DateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSessions(rows)
}

func scanSessions(rows *sql.Rows) ([]session.Record, error) {
	var out []session.Record
	for rows.Next() {
		var (
			rec      session.Record
			currency string
			date     string
			hands    sql.NullInt64
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.WinAmount,
			&rec.SmallBlind,
			&rec.BigBlind,
			&currency,
			&rec.Location,
			&rec.PnL,
			&rec.WinBB,
			&rec.CumulativePnL,
			&date,
			&hands,
		); err != nil {
			return nil, err
		}

		var err error
		if rec.Currency, err = session.ParseCurrency(currency); err != nil {
			return nil, err
		}
		if rec.Date, err = session.ParseDate(date); err != nil {
			return nil, err
		}
		if hands.Valid {
			n := int(hands.Int64)
			rec.NumHands = &n
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS sessions (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL,
	win_amount REAL NOT NULL,
	sb_val REAL NOT NULL,
	bb_val REAL NOT NULL,
	currency TEXT NOT NULL,
	location TEXT NOT NULL,
	pnl REAL NOT NULL,
	win_bb REAL NOT NULL DEFAULT 0,
	date TEXT NOT NULL,
	num_hands INTEGER
);

CREATE INDEX IF NOT EXISTS idx_sessions_id ON sessions(id);
CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions(date);
`

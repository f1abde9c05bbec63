// journal/journal.go
package journal

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/pokerlog/session"
)

var (
	// ErrNotExist is returned by Load when the backing file has not been
	// created yet. It also matches fs.ErrNotExist.
	ErrNotExist = errors.New("store does not exist")

	// ErrModeMismatch is returned when a table was written in another ledger mode.
	ErrModeMismatch = errors.New("ledger mode mismatch")

	// ErrNotFound is returned by lookups for unknown session IDs.
	ErrNotFound = errors.New("session not found")
)

// Store persists the whole session table. Save always rewrites the table.
type Store interface {
	Load() ([]session.Record, error)
	Save([]session.Record) error
	Close() error
}

// Finder is implemented by stores that can look up a single session.
type Finder interface {
	GetSession(id string) (session.Record, error)
}

// RangeLister is implemented by stores that can answer date range queries.
type RangeLister interface {
	ListSessionsBetween(start, end time.Time) ([]session.Record, error)
}

// Open returns the store of the given type ("csv" or "sqlite").
func Open(kind, path string, mode session.Mode) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "csv", "":
		return NewCSV(path, mode), nil
	case "sqlite", "sqlite3":
		return NewSQLite(path), nil
	default:
		return nil, fmt.Errorf("unknown store type %q (supported: csv, sqlite)", kind)
	}
}

package journal

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/pokerlog/session"
)

func newTestSQLite(t *testing.T) (*SQLiteStore, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	return NewSQLite(path), path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	require.NoError(t, j.Save(nil))
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='sessions'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "sessions", name)
}

func TestSQLiteMissingDatabase(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	recs, err := j.Load()
	assert.Nil(t, recs)
	assert.True(t, errors.Is(err, ErrNotExist))
}

func TestSQLiteRoundTrip(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)

	recs := testRecords()
	recs[0].PnL = 51
	recs[1].PnL = -55.35
	require.NoError(t, j.Save(recs))
	require.NoError(t, j.Close())

	// reopen from disk
	j2 := NewSQLite(path)
	defer j2.Close()

	loaded, err := j2.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, "S1", loaded[0].ID)
	assert.InDelta(t, 25.5, loaded[0].WinAmount, 1e-9)
	assert.InDelta(t, 51.0, loaded[0].PnL, 1e-9)
	assert.Equal(t, 180, loaded[0].Hands())
	assert.Equal(t, "S2", loaded[1].ID)
	assert.Equal(t, session.CNY, loaded[1].Currency)
	assert.False(t, loaded[1].HasHands())
	assert.True(t, loaded[1].Date.Equal(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)))
}

func TestSQLiteSaveRewritesTable(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	recs := testRecords()
	require.NoError(t, j.Save(recs))
	require.NoError(t, j.Save(recs[:1]))

	loaded, err := j.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "S1", loaded[0].ID)
}

func TestSQLiteKeepsTableOrder(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	// later date first: table order is insertion order, not date order
	recs := testRecords()
	recs[0], recs[1] = recs[1], recs[0]
	require.NoError(t, j.Save(recs))

	loaded, err := j.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "S2", loaded[0].ID)
	assert.Equal(t, "S1", loaded[1].ID)
}

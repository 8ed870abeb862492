// Package store provides a SQLite-backed history of cursor positions, so a
// file reopens where it was last viewed.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // register sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS positions (
	path     TEXT PRIMARY KEY,
	row      INTEGER NOT NULL,
	col      INTEGER NOT NULL,
	updated  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_positions_updated ON positions(updated);
`

// Position is a saved cursor location.
type Position struct {
	Row int
	Col int
}

// History is a SQLite-backed map from absolute file path to the last
// cursor position. All methods are safe on a nil receiver, which behaves as
// an always-empty history.
type History struct {
	mu        sync.Mutex
	db        *sql.DB
	retention time.Duration
}

// Open creates or opens a history database at the given path.
// Entries not updated within retention are purged on open.
func Open(dbPath string, retention time.Duration) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	// SQLite pragmas for performance.
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	h := &History{db: db, retention: retention}
	h.purgeStale()
	return h, nil
}

// Close closes the database.
func (h *History) Close() error {
	if h == nil {
		return nil
	}
	return h.db.Close()
}

// Get returns the saved position for path.
func (h *History) Get(path string) (Position, bool) {
	if h == nil || path == "" {
		return Position{}, false
	}
	key, err := filepath.Abs(path)
	if err != nil {
		return Position{}, false
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	var p Position
	err = h.db.QueryRow(
		"SELECT row, col FROM positions WHERE path = ?",
		key,
	).Scan(&p.Row, &p.Col)
	if err != nil {
		return Position{}, false
	}
	return p, true
}

// Put stores the position for path. Failures are logged, not returned.
func (h *History) Put(path string, p Position) {
	if h == nil || path == "" {
		return
	}
	key, err := filepath.Abs(path)
	if err != nil {
		log.Warn().Err(err).Str("file", path).Msg("failed to resolve history path")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	_, err = h.db.Exec(
		"INSERT OR REPLACE INTO positions (path, row, col, updated) VALUES (?, ?, ?, ?)",
		key, p.Row, p.Col, time.Now().Unix(),
	)
	if err != nil {
		log.Warn().Err(err).Str("file", key).Msg("failed to save cursor position")
	}
}

// purgeStale removes entries older than the retention window.
func (h *History) purgeStale() {
	if h.retention <= 0 {
		return
	}
	cutoff := time.Now().Add(-h.retention).Unix()
	res, err := h.db.Exec("DELETE FROM positions WHERE updated <= ?", cutoff)
	if err != nil {
		log.Warn().Err(err).Msg("failed to purge stale positions")
		return
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Info().Int64("deleted", n).Msg("purged stale positions")
	}
}

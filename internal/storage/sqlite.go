// SQLite-backed implementation of the Store interface.
//
// WHY SQLITE FOR A KEY-VALUE STORE?
// SQLite is an embedded database — it lives inside the Go binary as a single
// file. No separate server to install, configure, or manage. One two-column
// table gives us exactly the localStorage shape we are emulating: a string
// key and a JSON text value, with durable writes and `:memory:` databases
// for tests.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo (calls C code from Go), which means you need a C
// compiler installed and cross-compilation becomes painful. modernc.org/sqlite
// is a pure Go translation of the SQLite C code — no C compiler needed,
// works everywhere Go works.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	// BLANK IMPORT:
	// The underscore import `_ "modernc.org/sqlite"` is a "side-effect only"
	// import. The sqlite package's init() function registers itself with
	// database/sql as a driver named "sqlite"; after this import,
	// sql.Open("sqlite", ...) knows how to talk to SQLite.
	_ "modernc.org/sqlite"
)

// SQLiteStore persists each key as one row in a kv table.
type SQLiteStore struct {
	conn   *sql.DB
	logger *slog.Logger
}

// compile-time check that *SQLiteStore implements Store
var _ Store = (*SQLiteStore)(nil)

// NewSQLite opens (or creates) the backing database and its kv table.
//
// dbPath examples:
//   - "data/tracker.db" → file-based database (persistent)
//   - ":memory:"        → in-memory database (great for tests, lost on close)
//
// Opening is the ONE place storage errors are surfaced: if the backend
// cannot be created at all, the application should refuse to start rather
// than silently run with no persistence. After New succeeds, the
// fire-and-forget policy applies.
func NewSQLite(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: opening database: %w", err)
	}

	// Ping verifies the connection actually works. Without this, a bad path
	// or permissions issue would only surface on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("storage: pinging database: %w", err)
	}

	// WAL mode allows reads while a write is in flight. The application is
	// single-process by assumption, but WAL also gives cheaper commits.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("storage: setting WAL mode: %w", err)
	}

	_, err = conn.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("storage: creating kv table: %w", err)
	}

	return &SQLiteStore{conn: conn, logger: logger}, nil
}

// Close closes the database connection pool. Wherever you call NewSQLite(),
// immediately defer Close() — this flushes the WAL and releases the file lock.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// Get reads and unmarshals the JSON document at key into out.
//
// Every failure mode leaves out untouched:
//   - key absent          → caller's default stands
//   - query error         → logged, caller's default stands
//   - value not valid JSON→ logged, caller's default stands
//
// The corrupt-value case matters in practice: a half-written region (say the
// process died mid-Set before WAL committed) must degrade to "empty table",
// not crash every subsequent read of that table.
func (s *SQLiteStore) Get(ctx context.Context, key string, out any) {
	var raw string
	err := s.conn.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE key = ?`, key,
	).Scan(&raw)
	if err != nil {
		if err != sql.ErrNoRows {
			s.logger.Warn("storage read failed, using default",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
		return
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.logger.Warn("storage value is not valid JSON, using default",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

// Set marshals value to JSON and writes it under key, replacing any
// previous value. Failures are logged and swallowed — from the caller's
// perspective the mutation always succeeds.
func (s *SQLiteStore) Set(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		// Only unmarshalable Go types end up here (channels, funcs) —
		// a programming error, but still not one we propagate.
		s.logger.Error("storage value cannot be marshalled",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return
	}

	_, err = s.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO kv (key, value) VALUES (?, ?)`,
		key, string(raw),
	)
	if err != nil {
		s.logger.Error("storage write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

// Remove deletes the key. Missing keys are a no-op; failures are logged.
func (s *SQLiteStore) Remove(ctx context.Context, key string) {
	_, err := s.conn.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		s.logger.Error("storage delete failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

// corruptForTest overwrites a key with text that is not valid JSON.
// Unexported helper used by the tests in this package.
func (s *SQLiteStore) corruptForTest(ctx context.Context, key, raw string) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO kv (key, value) VALUES (?, ?)`, key, raw)
	return err
}

// Package sqlite contains embedded SQLite implementations of repository
// interfaces, used for local development and integration tests.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"time"

	"github.com/pressly/goose/v3"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/and161185/medtrack/internal/errs"
	"github.com/and161185/medtrack/internal/migrate"
)

// DB wraps the database/sql handle shared by the repositories.
type DB struct{ SQL *sql.DB }

// Open opens (creating if needed) the database file at path and migrates it.
func Open(ctx context.Context, path string) (*DB, error) {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	dsn := "file:" + path + "?" + q.Encode()

	handle, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// single writer; extra connections only queue on the write lock
	handle.SetMaxOpenConns(4)
	if err := handle.PingContext(ctx); err != nil {
		_ = handle.Close()
		return nil, err
	}
	if err := migrate.UpDB(ctx, handle, goose.DialectSQLite3); err != nil {
		_ = handle.Close()
		return nil, err
	}
	return &DB{SQL: handle}, nil
}

// Ping checks that the database is reachable.
func (db *DB) Ping(ctx context.Context) error { return db.SQL.PingContext(ctx) }

// Close closes the underlying handle.
func (db *DB) Close() { _ = db.SQL.Close() }

func sqliteCode(err error) int {
	var se *msqlite.Error
	if errors.As(err, &se) {
		return se.Code()
	}
	return 0
}

func isUniqueViolation(err error) bool {
	return sqliteCode(err) == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

func isForeignKeyViolation(err error) bool {
	return sqliteCode(err) == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
}

// notFound maps sql.ErrNoRows to errs.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return errs.ErrNotFound
	}
	return err
}

// Timestamps are stored as unix nanoseconds.
func toUnix(t time.Time) int64 { return t.UnixNano() }

func fromUnix(n int64) time.Time { return time.Unix(0, n).UTC() }

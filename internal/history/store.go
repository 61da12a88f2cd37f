// Package history provides a SQLite-backed log of evaluated expressions.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/govalues/bigint"
)

// Record is one evaluated expression.
// Result is null when the evaluation failed, in which case Error holds
// the failure message.
type Record struct {
	ID        int64                 `msgpack:"id"`
	Expr      string                `msgpack:"expr"`
	Result    bigint.NullBigInteger `msgpack:"result"`
	Error     string                `msgpack:"error,omitempty"`
	CreatedAt time.Time             `msgpack:"created_at"`
}

// Store persists history in SQLite.
type Store struct {
	sqlDB *sql.DB
	log   logrus.FieldLogger
}

const schema = `
CREATE TABLE IF NOT EXISTS history (
  id         INTEGER PRIMARY KEY AUTOINCREMENT,
  expr       TEXT    NOT NULL,
  result     TEXT,
  error      TEXT    NOT NULL DEFAULT '',
  created_at INTEGER NOT NULL
)`

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the history database at path, creating it if needed.
// A nil logger means the standard logger.
func Open(path string, log logrus.FieldLogger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	log.WithField("path", path).Debug("history opened")
	return &Store{sqlDB: sqlDB, log: log}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Add inserts one record and returns its id.
// A zero CreatedAt is replaced with the current time.
func (s *Store) Add(ctx context.Context, rec Record) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	return insert(ctx, s.sqlDB, rec)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insert(ctx context.Context, db execer, rec Record) (int64, error) {
	expr := strings.TrimSpace(rec.Expr)
	if expr == "" {
		return 0, fmt.Errorf("expression is required")
	}
	if !rec.Result.Valid && rec.Error == "" {
		return 0, fmt.Errorf("record for %q has neither result nor error", expr)
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	res, err := db.ExecContext(
		ctx,
		`INSERT INTO history (expr, result, error, created_at) VALUES (?, ?, ?, ?)`,
		expr,
		rec.Result,
		rec.Error,
		toMillis(createdAt),
	)
	if err != nil {
		return 0, fmt.Errorf("insert history: %w", err)
	}
	return res.LastInsertId()
}

// List returns the most recent limit records, oldest first.
// A limit of 0 or less returns every record.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, expr, result, error, created_at FROM history ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec     Record
			created int64
		)
		if err := rows.Scan(&rec.ID, &rec.Expr, &rec.Result, &rec.Error, &created); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		rec.CreatedAt = fromMillis(created)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// Clear deletes every record and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM history`)
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	s.log.WithField("records", n).Debug("history cleared")
	return n, nil
}

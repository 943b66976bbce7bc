package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite" // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// DB is the process-wide connection pool. Handlers receive it through the
// report store; nothing reaches it before Open returns.
type DB struct {
	SQL    *sql.DB
	Driver Driver

	pool *pgxpool.Pool // postgres only
}

// ParseDriver maps common aliases to a Driver.
func ParseDriver(s string) (Driver, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sqlite", "sqlite3":
		return DriverSQLite, nil
	case "postgres", "postgresql", "pg", "pgx":
		return DriverPostgres, nil
	default:
		return "", fmt.Errorf("unsupported driver: %q", s)
	}
}

// Open connects and verifies connectivity. Postgres goes through a pgx pool
// exposed as *sql.DB; the exam schema there is external and never touched.
// SQLite (offline mode) gets the local schema created if missing.
func Open(ctx context.Context, driver Driver, dsn string, maxConns int) (*DB, error) {
	switch driver {
	case DriverPostgres:
		return openPostgres(ctx, dsn, maxConns)
	case DriverSQLite:
		return openSQLite(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}
}

func openPostgres(ctx context.Context, dsn string, maxConns int) (*DB, error) {
	if dsn == "" {
		dsn = "postgres://localhost:5432/aedgar?sslmode=disable"
	}
	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("db: parse dsn: %w", err)
	}
	if maxConns > 0 {
		pcfg.MaxConns = int32(maxConns)
	}
	pcfg.MaxConnLifetime = 45 * time.Minute
	pcfg.MaxConnIdleTime = 15 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("db: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db: ping: %w", err)
	}
	return &DB{SQL: stdlib.OpenDBFromPool(pool), Driver: DriverPostgres, pool: pool}, nil
}

func openSQLite(ctx context.Context, dsn string) (*DB, error) {
	if dsn == "" {
		dsn = "file:edgar.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
	}
	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("db: open: %w", err)
	}
	// single writer; one long-lived connection also keeps :memory: databases alive
	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)
	sqldb.SetConnMaxLifetime(0)
	sqldb.SetConnMaxIdleTime(0)

	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("db: ping: %w", err)
	}
	if err := applySQLitePragmas(ctx, sqldb); err != nil {
		_ = sqldb.Close()
		return nil, err
	}
	if _, err := sqldb.ExecContext(ctx, schemaSQLite); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("db: ensure schema: %w", err)
	}
	return &DB{SQL: sqldb, Driver: DriverSQLite}, nil
}

// Ping checks connectivity using PingContext on the underlying DB.
func (d *DB) Ping(ctx context.Context) error {
	if d == nil || d.SQL == nil {
		return errors.New("db: DB is nil")
	}
	return d.SQL.PingContext(ctx)
}

// Close closes the *sql.DB and, for postgres, the pool behind it.
func (d *DB) Close() error {
	if d == nil || d.SQL == nil {
		return nil
	}
	err := d.SQL.Close()
	if d.pool != nil {
		d.pool.Close()
	}
	return err
}

func applySQLitePragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
		"PRAGMA temp_store = MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("db: sqlite pragma %q: %w", p, err)
		}
	}
	return nil
}

// Offline copy of the Edgar tables the reports read. Integer arrays
// (student_answers, answers_permutation) are stored as JSON text.
const schemaSQLite = `
CREATE TABLE IF NOT EXISTS course (
  id INTEGER PRIMARY KEY,
  course_name TEXT NOT NULL,
  course_acronym TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS academic_year (
  id INTEGER PRIMARY KEY,
  title TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS test (
  id INTEGER PRIMARY KEY,
  id_course INTEGER NOT NULL REFERENCES course(id),
  id_academic_year INTEGER NOT NULL REFERENCES academic_year(id),
  title TEXT NOT NULL,
  title_abbrev TEXT,
  test_ordinal INTEGER NOT NULL DEFAULT 0,
  ts_available_from TIMESTAMP,
  ts_available_to TIMESTAMP,
  test_score_ignored INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS test_instance (
  id INTEGER PRIMARY KEY,
  id_test INTEGER NOT NULL REFERENCES test(id),
  id_student INTEGER NOT NULL,
  ts_started TIMESTAMP,
  ts_submitted TIMESTAMP,
  score REAL,
  score_perc REAL,
  passed INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS question_type (
  id INTEGER PRIMARY KEY,
  type_name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS question (
  id INTEGER PRIMARY KEY,
  id_question_type INTEGER NOT NULL REFERENCES question_type(id)
);

CREATE TABLE IF NOT EXISTS question_answer (
  id INTEGER PRIMARY KEY,
  id_question INTEGER NOT NULL REFERENCES question(id),
  ordinal INTEGER NOT NULL,
  is_correct INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS test_instance_question (
  id INTEGER PRIMARY KEY,
  id_test_instance INTEGER NOT NULL REFERENCES test_instance(id),
  id_question INTEGER NOT NULL REFERENCES question(id),
  score REAL,
  is_correct INTEGER NOT NULL DEFAULT 0,
  is_incorrect INTEGER NOT NULL DEFAULT 0,
  is_partial INTEGER NOT NULL DEFAULT 0,
  is_unanswered INTEGER NOT NULL DEFAULT 0,
  student_answers TEXT NOT NULL DEFAULT '[]',
  answers_permutation TEXT NOT NULL DEFAULT '[]'
);
`

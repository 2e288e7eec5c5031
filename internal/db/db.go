package db

import (
	"context"
	"ctchen222/Exercise-Tracker/internal/config"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/glebarez/go-sqlite"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

func init() {
	// The pure-Go SQLite driver registers as "sqlite", which sqlx does not know.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS exercises (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		description TEXT NOT NULL,
		duration INTEGER NOT NULL,
		performed_on TEXT NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_exercises_user_date ON exercises (user_id, performed_on, created_at)`,
}

// driverName maps a configured store driver to its database/sql name.
func driverName(storeDriver string) (string, error) {
	switch storeDriver {
	case config.DriverSQLite, "":
		return "sqlite", nil
	case config.DriverPostgres:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported store driver %q", storeDriver)
	}
}

// Open connects to the configured store, verifies the connection and makes
// sure the schema exists. The returned pool is meant to live for the whole
// process.
func Open(ctx context.Context, storeDriver, dsn string) (*sqlx.DB, error) {
	name, err := driverName(storeDriver)
	if err != nil {
		return nil, err
	}

	if name == "sqlite" {
		dsn = sqliteDSN(dsn)
	}

	pool, err := sqlx.ConnectContext(ctx, name, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database connection: %w", storeDriver, err)
	}

	if name == "sqlite" {
		// SQLite allows a single writer; serialise through one connection so
		// in-memory databases are shared and writes never hit SQLITE_BUSY.
		pool.SetMaxOpenConns(1)
	}

	if err := InitializeSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	slog.InfoContext(ctx, "DB connection initialized and schema verified.", "store.driver", name)
	return pool, nil
}

// sqliteDSN turns on foreign key enforcement for every connection the driver
// opens, not just the first one.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// InitializeSchema creates the users and exercises tables if they do not exist.
func InitializeSchema(ctx context.Context, pool *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := pool.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// Package store is the relational persistence layer, built on sqlx. It owns
// the schema, the per-entity repositories, and the listing descriptors that
// describe each admin table to the query engine.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound reports a lookup by id (or unique key) that matched no row.
	ErrNotFound = errors.New("record not found")
	// ErrConflict reports a uniqueness violation (duplicate SKU or email).
	ErrConflict = errors.New("record already exists")
)

// Config holds database connection parameters. Pool sizing belongs here,
// not to callers; the engine and handlers never touch pool state.
type Config struct {
	Driver          string // mysql, postgres, sqlite
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConfig returns pool defaults suitable for a small deployment.
func DefaultConfig() Config {
	return Config{
		Driver:          "sqlite",
		DSN:             ":memory:",
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 1 * time.Minute,
	}
}

// Store wraps the shared database handle and exposes the entity
// repositories.
type Store struct {
	db     *sqlx.DB
	driver string
}

// Open connects to the configured database, applies pool settings, and runs
// migrations. The returned store is ready for use.
func Open(cfg Config) (*Store, error) {
	driverName, err := sqlDriverName(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Connect(driverName, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}

	if cfg.Driver == "sqlite" {
		// SQLite does not support concurrent writers.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	s := &Store{db: db, driver: cfg.Driver}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// sqlDriverName maps the configured driver to the registered sql driver.
func sqlDriverName(driver string) (string, error) {
	switch driver {
	case "mysql":
		return "mysql", nil
	case "postgres":
		return "pgx", nil
	case "sqlite", "":
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unsupported driver %q (mysql, postgres, sqlite)", driver)
	}
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies database connectivity, honoring ctx cancellation.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// DB exposes the sqlx handle for the listing engine.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// isDuplicateErr recognizes uniqueness violations across the supported
// drivers by message, the same way the API layer classifies them.
func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}

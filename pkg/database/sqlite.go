package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// FileDriver returns the name of the SQLite driver compiled in: "sqlite" for
// the pure Go modernc.org/sqlite (default), "sqlite3" for mattn/go-sqlite3
// when built with -tags cgo_sqlite.
func FileDriver() string {
	return fileDriver
}

// ConnectFile opens the SQLite database at path and makes it the active
// handle, closing any previous one. ":memory:" opens a private in-memory
// database.
//
// The handle is limited to one open connection so every statement sees the
// same database, in-memory ones included.
func (d *DB) ConnectFile(ctx context.Context, path string) error {
	if path == "" {
		return fmt.Errorf("failed to open %s database: empty path", fileDriver)
	}
	return d.connect(ctx, fileDriver, path, 1)
}

func (d *DB) connect(ctx context.Context, driver, dsn string, maxOpen int) error {
	conn, err := sqlx.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if maxOpen > 0 {
		conn.SetMaxOpenConns(maxOpen)
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	d.replace(conn.Unsafe(), driver)
	d.logger.Info().Str("driver", driver).Msg("connected to database")
	return nil
}

// Package database holds the connection a program issues its statements
// through. A DB owns at most one handle at a time, applies an optional
// interceptor to every statement, records how long each statement took and
// maps results either into generic rows or into typed destinations.
//
//	db := database.New(database.WithLogger(logger))
//	if err := db.ConnectFile(ctx, "app.db"); err != nil {
//	    return err
//	}
//	defer db.Close()
//
// Statements use "?" positional placeholders, or ":name" placeholders with
// the *Named variants.
package database

import (
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/asaidimu/sqlrecord/internal/errors"
	"github.com/asaidimu/sqlrecord/pkg/core"
)

// Interceptor rewrites the text of a statement before it is prepared.
type Interceptor func(query string) string

// Statement is one entry of the statement log.
type Statement struct {
	SQL     string
	Elapsed time.Duration
}

// Milliseconds returns the elapsed time in fractional milliseconds.
func (s Statement) Milliseconds() float64 {
	return float64(s.Elapsed) / float64(time.Millisecond)
}

// Option configures a DB.
type Option func(*DB)

// WithLogger sets the logger statements are reported to at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(d *DB) {
		d.logger = logger
	}
}

// WithInterceptor sets the function applied to every statement's text.
func WithInterceptor(fn Interceptor) Option {
	return func(d *DB) {
		d.intercept = fn
	}
}

// DB is the connection holder. Its methods are safe for concurrent use, but
// it keeps a single handle: a later Connect call replaces the earlier one.
type DB struct {
	mu        sync.RWMutex
	conn      *sqlx.DB
	driver    string
	logger    zerolog.Logger
	intercept Interceptor

	logMu sync.Mutex
	log   []Statement
}

var _ core.Executor = (*DB)(nil)

// New creates a DB without a connection.
func New(opts ...Option) *DB {
	d := &DB{
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Connection returns the active handle, or core.ErrNoConnection.
func (d *DB) Connection() (*sqlx.DB, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.conn == nil {
		return nil, core.ErrNoConnection
	}
	return d.conn, nil
}

// Driver returns the name of the driver behind the active handle.
func (d *DB) Driver() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.driver
}

// Close closes the active handle, if any.
func (d *DB) Close() error {
	d.mu.Lock()
	conn := d.conn
	d.conn = nil
	d.driver = ""
	d.mu.Unlock()

	if conn == nil {
		return nil
	}
	return conn.Close()
}

// Log returns a copy of the statement log.
func (d *DB) Log() []Statement {
	d.logMu.Lock()
	defer d.logMu.Unlock()
	out := make([]Statement, len(d.log))
	copy(out, d.log)
	return out
}

// replace installs conn as the active handle and closes the previous one.
func (d *DB) replace(conn *sqlx.DB, driver string) {
	d.mu.Lock()
	old := d.conn
	d.conn = conn
	d.driver = driver
	d.mu.Unlock()

	if old != nil {
		errors.DeferClose(d.logger, old, "failed to close replaced connection")
	}
}

// record appends text to the statement log. bound is the positional form
// actually sent to the driver, used for the debug line.
func (d *DB) record(text, bound string, args []any, elapsed time.Duration) {
	d.logMu.Lock()
	d.log = append(d.log, Statement{SQL: text, Elapsed: elapsed})
	d.logMu.Unlock()

	d.logger.Debug().
		Str("sql", InterpolateQuery(bound, args)).
		Dur("elapsed", elapsed).
		Msg("executed statement")
}

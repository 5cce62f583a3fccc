// Package sqlite provides a thin wrapper over an sqlite3 database connection.
// It runs statement scripts, materialises query results as text grids and
// lets Go code register locale-aware collation sequences with the engine.
package sqlite

import (
	"context"
	"database/sql"
	"io"
	"sort"
	"unsafe"

	"github.com/mattn/go-pointer"
	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// DriverName is the database/sql driver used by Open.
const DriverName = "sqlite3"

// Conn is an open connection to an sqlite3 database.
// It pins exactly one underlying connection so that collations
// registered on it are visible to every statement run through it.
//
// A Conn can only be used by one goroutine at a time.
type Conn struct {
	db         *sql.DB
	conn       *sql.Conn
	progress   io.Writer                 // receives the echo of every statement and query
	log        *zap.Logger               // diagnostics
	collations map[string]unsafe.Pointer // go-pointer handles of registered comparators, by collation name
	closed     bool
}

// Option configures a Conn.
type Option func(*Conn)

// WithProgress sets the writer that receives the echo of each statement and query.
func WithProgress(w io.Writer) Option {
	return func(c *Conn) {
		if w != nil {
			c.progress = w
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(c *Conn) {
		if log != nil {
			c.log = log
		}
	}
}

// Open opens (creating if absent) the database at path and pins a single connection to it.
// see: https://www.sqlite.org/c3ref/open.html
func Open(ctx context.Context, path string, opts ...Option) (*Conn, error) {
	var db, err = sql.Open(DriverName, path)
	if err != nil {
		return nil, wrapError(ConnectionOpen, "", err)
	}
	return wrap(ctx, db, opts...)
}

// wrap wraps the provided database handle, yielding Conn
func wrap(ctx context.Context, db *sql.DB, opts ...Option) (*Conn, error) {
	db.SetMaxOpenConns(1)

	var conn, err = db.Conn(ctx)
	if err != nil {
		_ = db.Close()
		return nil, wrapError(ConnectionOpen, "", err)
	}

	if err = conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		_ = db.Close()
		return nil, wrapError(ConnectionOpen, "", err)
	}

	var c = &Conn{
		db:         db,
		conn:       conn,
		progress:   io.Discard,
		log:        zap.NewNop(),
		collations: make(map[string]unsafe.Pointer),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.log.Debug("database opened", zap.Int("sqlite_version", Version()))
	return c, nil
}

// Version returns the sqlite3 library version number, e.g. 3045001.
func Version() int {
	var _, number, _ = sqlite3.Version()
	return number
}

// Collations returns the names of the collations registered through this Conn.
func (c *Conn) Collations() []string {
	var names = make([]string, 0, len(c.collations))
	for name := range c.collations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close closes the connection and then releases every comparator
// registered on it. It is safe to call Close more than once.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	var err = c.conn.Close()
	if e := c.db.Close(); err == nil {
		err = e
	}

	// comparators must outlive the engine handle that calls into them
	for name, pApp := range c.collations {
		pointer.Unref(pApp)
		delete(c.collations, name)
	}

	c.log.Info("db closed", zap.Error(err))
	return err
}

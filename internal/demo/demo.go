// Package demo implements the two demonstration flows: a plain table
// bootstrap, and the same bootstrap queried through a locale-aware collation.
package demo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"go.uber.org/zap"

	sqlite "go.riyazali.net/sqlite-collate"
	"go.riyazali.net/sqlite-collate/internal/config"
)

// Runner runs the demo flows against the database named by Config.
type Runner struct {
	Out    io.Writer      // progress lines and result tables; nil discards them
	Log    *zap.Logger    // diagnostics
	Config *config.Config // zero value means config.Default()
}

func (r *Runner) settings() *config.Config {
	if r.Config == nil {
		return config.Default()
	}
	return r.Config
}

func (r *Runner) output() io.Writer {
	if r.Out == nil {
		return io.Discard
	}
	return r.Out
}

func (r *Runner) logger() *zap.Logger {
	if r.Log == nil {
		return zap.NewNop()
	}
	return r.Log
}

// Bootstrap creates and fills the example table, then prints it in default order.
func (r *Runner) Bootstrap(ctx context.Context) (err error) {
	var conn *sqlite.Conn
	if conn, err = r.start(ctx); err != nil {
		return err
	}
	defer r.close(conn)

	if err = conn.Exec(ctx, BootstrapStatements...); err != nil {
		return err
	}
	return r.show(ctx, conn, BootstrapQuery)
}

// Collate registers a collator built from the configuration, fills the example
// table with variant spellings and prints the lookups and the ordering that use it.
func (r *Runner) Collate(ctx context.Context) (err error) {
	var cfg = r.settings()

	// the collator must outlive conn, which is closed by the deferred call below
	var coll *sqlite.Collator
	if coll, err = sqlite.NewCollator(cfg.CollatorOptions()); err != nil {
		r.logger().Error("error creating collator", zap.String("locale", cfg.Locale), zap.Error(err))
		return err
	}

	var conn *sqlite.Conn
	if conn, err = r.start(ctx); err != nil {
		return err
	}
	defer r.close(conn)

	if err = conn.RegisterCollation(ctx, cfg.Collation, coll); err != nil {
		return err
	}

	if err = conn.Exec(ctx, CollationStatements...); err != nil {
		return err
	}

	for _, query := range CollationQueries(cfg.Collation) {
		if err = r.show(ctx, conn, query); err != nil {
			return err
		}
	}
	return nil
}

// start removes any database left by a previous run and opens a fresh one.
func (r *Runner) start(ctx context.Context) (*sqlite.Conn, error) {
	var cfg = r.settings()
	_, _ = fmt.Fprintln(r.output(), "starting application...")

	if err := os.Remove(cfg.Database); err != nil && !errors.Is(err, fs.ErrNotExist) {
		r.logger().Warn("could not remove previous database", zap.String("path", cfg.Database), zap.Error(err))
	}

	var conn, err = sqlite.Open(ctx, cfg.Database, sqlite.WithProgress(r.output()), sqlite.WithLogger(r.logger()))
	if err != nil {
		r.logger().Error("error opening database", zap.String("path", cfg.Database), zap.Error(err))
		return nil, err
	}
	return conn, nil
}

func (r *Runner) close(conn *sqlite.Conn) {
	if err := conn.Close(); err != nil {
		r.logger().Warn("error closing database", zap.Error(err))
	}
}

func (r *Runner) show(ctx context.Context, conn *sqlite.Conn, query string) error {
	var grid, err = conn.Query(ctx, query)
	if err != nil {
		return err
	}

	var cfg = r.settings()
	var printer = sqlite.NewPrinter(r.output(), cfg.Width)
	if cfg.Output == config.OutputPretty {
		return printer.PrintPretty(grid)
	}
	return printer.Print(grid)
}

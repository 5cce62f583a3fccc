// Package sqlitetest opens throwaway databases for unit tests.
package sqlitetest

import (
	"context"
	"path/filepath"
	"testing"

	sqlite "go.riyazali.net/sqlite-collate"
)

// Path returns the path of a database file inside a per-test temporary directory.
// The file does not exist yet.
func Path(t testing.TB) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "testing.db")
}

// Connect opens a fresh database for the test and closes it during cleanup.
func Connect(t testing.TB, opts ...sqlite.Option) *sqlite.Conn {
	t.Helper()

	var conn, err = sqlite.Open(context.Background(), Path(t), opts...)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// Collator builds a collator or fails the test.
func Collator(t testing.TB, opts sqlite.CollatorOptions) *sqlite.Collator {
	t.Helper()

	var coll, err = sqlite.NewCollator(opts)
	if err != nil {
		t.Fatal(err)
	}
	return coll
}

package sqlite

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// Kind classifies the operation that produced an Error.
type Kind int

const (
	ConnectionOpen Kind = iota + 1
	StatementExecution
	QueryExecution
	CollatorInit
	CollationRegistration
)

func (k Kind) String() string {
	switch k {
	case ConnectionOpen:
		return "connection open"
	case StatementExecution:
		return "statement execution"
	case QueryExecution:
		return "query execution"
	case CollatorInit:
		return "collator init"
	case CollationRegistration:
		return "collation registration"
	default:
		return "<unknown error kind>"
	}
}

// Error is returned by every failing operation in this package.
// It carries the diagnostic reported by the engine (or the collation library) in Err.
type Error struct {
	Kind  Kind
	Query string // statement or query text, when the failure relates to one
	Err   error
}

func (e *Error) Error() string {
	if e.Query != "" {
		return fmt.Sprintf("sqlite: %s failed for [%s]: %v", e.Kind, e.Query, e.Err)
	}
	return fmt.Sprintf("sqlite: %s failed: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Code reports the primary sqlite3 result code behind the error,
// or sqlite3.ErrError when the failure did not originate in the engine.
func (e *Error) Code() sqlite3.ErrNo {
	var se sqlite3.Error
	if errors.As(e.Err, &se) {
		return se.Code
	}
	return sqlite3.ErrError
}

// KindOf returns the Kind of the first Error in err's chain, or 0 when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func wrapError(kind Kind, query string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Query: query, Err: err}
}

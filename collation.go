package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"
	"unsafe"

	"github.com/mattn/go-pointer"
	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// CollationName is the name under which the locale-aware collation is registered.
const CollationName = "CUSTOM"

// Comparator is a three-way comparison over UTF-8 text.
// Compare must be deterministic and must not retain a or b after it returns.
type Comparator interface {
	Compare(a, b []byte) int
}

// Strength is the level at which a Collator distinguishes two strings.
type Strength int

const (
	Primary    Strength = iota + 1 // base letters only
	Secondary                      // plus accents
	Tertiary                       // plus case and width variants
	Quaternary                     // plus kana type and punctuation
	Identical                      // plus code point order
)

var strengthNames = map[Strength]string{
	Primary:    "primary",
	Secondary:  "secondary",
	Tertiary:   "tertiary",
	Quaternary: "quaternary",
	Identical:  "identical",
}

func (s Strength) String() string {
	if name, ok := strengthNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strength(%d)", int(s))
}

// ParseStrength parses a strength name such as "primary".
func ParseStrength(s string) (Strength, error) {
	for strength, name := range strengthNames {
		if strings.EqualFold(s, name) {
			return strength, nil
		}
	}
	return 0, fmt.Errorf("sqlite: unknown collation strength %q", s)
}

// CollatorOptions configures NewCollator.
type CollatorOptions struct {
	Locale           string   // BCP 47 tag, e.g. "ja" or "de-u-co-phonebk"
	Strength         Strength // zero means Tertiary
	IgnoreWhitespace bool     // white space does not take part in comparisons
	Numeric          bool     // digit runs compare by numeric value
}

// whitespace removes every White_Space rune, including U+3000 IDEOGRAPHIC SPACE.
var whitespace = runes.Remove(runes.In(unicode.White_Space))

// Collator is a locale-configured Comparator backed by golang.org/x/text/collate.
// It is safe for concurrent use.
type Collator struct {
	mu          sync.Mutex
	tag         language.Tag
	opts        CollatorOptions
	coll        *collate.Collator
	ignoreSpace bool
}

// NewCollator builds a Collator for the given locale and options.
func NewCollator(opts CollatorOptions) (*Collator, error) {
	if opts.Locale == "" {
		return nil, wrapError(CollatorInit, "", errors.New("empty locale"))
	}

	var tag, err = language.Parse(opts.Locale)
	if err != nil {
		return nil, wrapError(CollatorInit, "", fmt.Errorf("locale %q: %w", opts.Locale, err))
	}

	var options []collate.Option
	switch opts.Strength {
	case Primary:
		options = append(options, collate.IgnoreDiacritics, collate.IgnoreCase, collate.IgnoreWidth)
	case Secondary:
		options = append(options, collate.IgnoreCase, collate.IgnoreWidth)
	case Tertiary, 0:
		opts.Strength = Tertiary
	case Quaternary:
		tag, err = tag.SetTypeForKey("ks", "level4")
	case Identical:
		tag, err = tag.SetTypeForKey("ks", "identic")
	default:
		err = fmt.Errorf("unknown strength %s", opts.Strength)
	}
	if err != nil {
		return nil, wrapError(CollatorInit, "", err)
	}

	if opts.Numeric {
		options = append(options, collate.Numeric)
	}

	return &Collator{
		tag:         tag,
		opts:        opts,
		coll:        collate.New(tag, options...),
		ignoreSpace: opts.IgnoreWhitespace,
	}, nil
}

// Tag returns the language tag the collator was built for.
func (c *Collator) Tag() language.Tag { return c.tag }

// Options returns the options the collator was built with.
func (c *Collator) Options() CollatorOptions { return c.opts }

// Compare returns -1, 0 or 1 according to the collator's locale rules.
func (c *Collator) Compare(a, b []byte) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ignoreSpace {
		a, b = stripSpace(a), stripSpace(b)
	}
	return c.coll.Compare(a, b)
}

// CompareString is like Compare for strings.
func (c *Collator) CompareString(a, b string) int { return c.Compare([]byte(a), []byte(b)) }

func stripSpace(b []byte) []byte {
	if out, _, err := transform.Bytes(whitespace, b); err == nil {
		return out
	}
	return b
}

// RegisterCollation registers cmp with the engine as the collation sequence name,
// using UTF-8 as the text encoding. The comparator is borrowed: the caller keeps
// it alive, and the Conn only releases its own handle to it on Close or when
// name is registered again, which replaces the active comparator for every
// subsequent statement.
//
// see: https://www.sqlite.org/c3ref/create_collation.html
func (c *Conn) RegisterCollation(ctx context.Context, name string, cmp Comparator) error {
	if err := ctx.Err(); err != nil {
		return wrapError(CollationRegistration, "", err)
	}
	if cmp == nil {
		return wrapError(CollationRegistration, "", errors.New("nil comparator"))
	}

	var pApp = pointer.Save(cmp)
	var err = c.conn.Raw(func(driverConn interface{}) error {
		var conn, ok = driverConn.(*sqlite3.SQLiteConn)
		if !ok {
			return fmt.Errorf("unsupported driver connection %T", driverConn)
		}
		return conn.RegisterCollation(name, func(a, b string) int {
			return collationCompare(pApp, a, b)
		})
	})
	if err != nil {
		// the engine never saw pApp, so nothing else will release it
		pointer.Unref(pApp)
		c.log.Error("error registering collation", zap.String("collation", name), zap.Error(err))
		return wrapError(CollationRegistration, "", err)
	}

	if prev, ok := c.collations[name]; ok {
		pointer.Unref(prev)
	}
	c.collations[name] = pApp
	c.log.Debug("registered collation", zap.String("collation", name), zap.String("comparator", fmt.Sprintf("%T", cmp)))
	return nil
}

// collationCompare is the comparison callback invoked by the engine.
// a and b hold exactly the bytes the engine passed (embedded NULs included).
// A failing comparator falls back to byte order so that nothing unwinds into the engine.
func collationCompare(pApp unsafe.Pointer, a, b string) (res int) {
	defer func() {
		if r := recover(); r != nil {
			res = strings.Compare(a, b)
		}
	}()

	var cmp = pointer.Restore(pApp).(Comparator)
	return cmp.Compare([]byte(a), []byte(b))
}

package sqlite

import (
	"fmt"
	"strconv"
	"time"

	"github.com/mattn/go-sqlite3"
)

// ColumnType are codes for each of the SQLite fundamental data types:
// https://www.sqlite.org/c3ref/c_blob.html
type ColumnType int

const (
	SQLITE_INTEGER = ColumnType(1)
	SQLITE_FLOAT   = ColumnType(2)
	SQLITE_TEXT    = ColumnType(3)
	SQLITE_BLOB    = ColumnType(4)
	SQLITE_NULL    = ColumnType(5)
)

func (t ColumnType) String() string {
	switch t {
	case SQLITE_INTEGER:
		return "SQLITE_INTEGER"
	case SQLITE_FLOAT:
		return "SQLITE_FLOAT"
	case SQLITE_TEXT:
		return "SQLITE_TEXT"
	case SQLITE_BLOB:
		return "SQLITE_BLOB"
	case SQLITE_NULL:
		return "SQLITE_NULL"
	default:
		return "<unknown sqlite datatype>"
	}
}

// Numeric reports whether values of this type are numbers.
func (t ColumnType) Numeric() bool { return t == SQLITE_INTEGER || t == SQLITE_FLOAT }

// cellText renders a value scanned from the driver the way sqlite3_column_text would,
// reporting the fundamental type it came from. NULL renders as the empty string.
func cellText(v interface{}) (string, ColumnType) {
	switch v := v.(type) {
	case nil:
		return "", SQLITE_NULL
	case int64:
		return strconv.FormatInt(v, 10), SQLITE_INTEGER
	case int:
		return strconv.Itoa(v), SQLITE_INTEGER
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), SQLITE_FLOAT
	case bool:
		if v {
			return "1", SQLITE_INTEGER
		}
		return "0", SQLITE_INTEGER
	case string:
		return v, SQLITE_TEXT
	case []byte:
		return string(v), SQLITE_BLOB
	case time.Time:
		return v.Format(sqlite3.SQLiteTimestampFormats[0]), SQLITE_TEXT
	default:
		return fmt.Sprint(v), SQLITE_TEXT
	}
}

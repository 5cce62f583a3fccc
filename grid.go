package sqlite

import "database/sql"

// Grid is an immutable, fully materialised query result.
//
// Row 0 holds the column names; rows 1..Rows() hold the data. Every row has
// exactly Columns() cells, all rendered as text.
type Grid struct {
	rows, columns int
	cells         []string
	types         []ColumnType
}

// NewGrid builds a Grid from a header and data rows.
// Data rows are truncated or padded with empty cells to the header's width.
func NewGrid(header []string, data ...[]string) *Grid {
	var g = &Grid{columns: len(header)}
	g.cells = append(g.cells, header...)
	for range header {
		g.types = append(g.types, SQLITE_TEXT)
	}

	for _, row := range data {
		for col := 0; col < g.columns; col++ {
			if col < len(row) {
				g.cells = append(g.cells, row[col])
				g.types = append(g.types, SQLITE_TEXT)
			} else {
				g.cells = append(g.cells, "")
				g.types = append(g.types, SQLITE_NULL)
			}
		}
		g.rows++
	}
	return g
}

// Rows returns the number of data rows, not counting the header.
func (g *Grid) Rows() int { return g.rows }

// Columns returns the number of columns.
func (g *Grid) Columns() int { return g.columns }

// Header returns a copy of the column names.
func (g *Grid) Header() []string { return append([]string(nil), g.cells[:g.columns]...) }

// Cell returns the text at the given position; row 0 is the header.
func (g *Grid) Cell(row, col int) string { return g.cells[row*g.columns+col] }

// Type returns the fundamental type of the value at the given position.
// Header cells are always SQLITE_TEXT.
func (g *Grid) Type(row, col int) ColumnType { return g.types[row*g.columns+col] }

// Row returns a copy of the given row; row 0 is the header.
func (g *Grid) Row(row int) []string {
	var start = row * g.columns
	return append([]string(nil), g.cells[start:start+g.columns]...)
}

// Column returns the data values (header excluded) of the named column.
func (g *Grid) Column(name string) ([]string, bool) {
	for col := 0; col < g.columns; col++ {
		if g.cells[col] != name {
			continue
		}
		var values = make([]string, 0, g.rows)
		for row := 1; row <= g.rows; row++ {
			values = append(values, g.Cell(row, col))
		}
		return values, true
	}
	return nil, false
}

// scanGrid drains rows into a new Grid. It does not close rows.
func scanGrid(rows *sql.Rows) (*Grid, error) {
	var cols, err = rows.Columns()
	if err != nil {
		return nil, err
	}

	var g = NewGrid(cols)
	var values = make([]interface{}, len(cols))
	var dest = make([]interface{}, len(cols))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err = rows.Scan(dest...); err != nil {
			return nil, err
		}
		for _, v := range values {
			var s, t = cellText(v)
			g.cells = append(g.cells, s)
			g.types = append(g.types, t)
		}
		g.rows++
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return g, nil
}

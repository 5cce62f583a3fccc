package sqlite

import (
	"bufio"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-runewidth"
)

// DefaultColumnWidth is the column width used when none is configured.
const DefaultColumnWidth = 12

// cellWidth measures text in terminal cells. Ambiguous-width runes count
// as narrow regardless of the process locale so output is reproducible.
var cellWidth = func() *runewidth.Condition {
	var c = runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// Printer renders grids as text tables.
type Printer struct {
	w     io.Writer
	width int
}

// NewPrinter returns a Printer writing to w with fixed-width columns.
// A width below 1 selects DefaultColumnWidth.
func NewPrinter(w io.Writer, width int) *Printer {
	if width < 1 {
		width = DefaultColumnWidth
	}
	return &Printer{w: w, width: width}
}

// Width returns the configured column width.
func (p *Printer) Width() int { return p.width }

// Print writes the header, a tilde separator line and every data row.
// Each cell is left-aligned, padded to the column width and followed by one space.
// Cells wider than the column are written in full.
func (p *Printer) Print(g *Grid) error {
	var buf = bufio.NewWriter(p.w)
	var sep = strings.Repeat("~", p.width) + " "

	for row := 0; row <= g.Rows(); row++ {
		for col := 0; col < g.Columns(); col++ {
			_, _ = buf.WriteString(cellWidth.FillRight(g.Cell(row, col), p.width))
			_ = buf.WriteByte(' ')
		}
		_ = buf.WriteByte('\n')

		if row == 0 {
			for col := 0; col < g.Columns(); col++ {
				_, _ = buf.WriteString(sep)
			}
			_ = buf.WriteByte('\n')
		}
	}

	return buf.Flush()
}

// PrintPretty writes the grid as a boxed table. Numeric columns are right-aligned.
func (p *Printer) PrintPretty(g *Grid) error {
	var t = table.NewWriter()
	t.SetStyle(table.StyleLight)

	var header = make(table.Row, g.Columns())
	for col := range header {
		header[col] = g.Cell(0, col)
	}
	t.AppendHeader(header)

	for row := 1; row <= g.Rows(); row++ {
		var r = make(table.Row, g.Columns())
		for col := range r {
			r[col] = g.Cell(row, col)
		}
		t.AppendRow(r)
	}

	var configs []table.ColumnConfig
	for col := 0; col < g.Columns(); col++ {
		if numericColumn(g, col) {
			configs = append(configs, table.ColumnConfig{Number: col + 1, Align: text.AlignRight})
		}
	}
	t.SetColumnConfigs(configs)

	_, err := io.WriteString(p.w, t.Render()+"\n")
	return err
}

// numericColumn reports whether every non-NULL data cell of col is a number.
func numericColumn(g *Grid, col int) bool {
	var seen bool
	for row := 1; row <= g.Rows(); row++ {
		switch t := g.Type(row, col); {
		case t == SQLITE_NULL:
		case t.Numeric():
			seen = true
		default:
			return false
		}
	}
	return seen
}

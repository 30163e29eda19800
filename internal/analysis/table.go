package analysis

import (
	"github.com/KaramelBytes/tabcheck/internal/parser"
)

// Table is a parsed CSV input: one header row plus data rows. It is immutable
// once loaded; every accessor hands out copies.
type Table struct {
	header []string
	rows   [][]string
	raw    []string // original lines, header included
}

// Load parses text into a fresh Table. Every line is kept, blank ones included;
// the first becomes the header. Input with no lines at all has no header and
// yields an *EmptyInputError.
func Load(text string) (*Table, error) {
	lines := parser.SplitLines(text)
	if len(lines) == 0 {
		return nil, &EmptyInputError{}
	}
	parsed := make([][]string, len(lines))
	for i, l := range lines {
		parsed[i] = parser.ParseLine(l)
	}
	return &Table{
		header: parsed[0],
		rows:   parsed[1:],
		raw:    lines,
	}, nil
}

// Header returns a copy of the column names.
func (t *Table) Header() []string {
	return append([]string(nil), t.header...)
}

// Rows returns a copy of the data rows.
func (t *Table) Rows() [][]string {
	out := make([][]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}

// NumRows is the number of data rows (header excluded).
func (t *Table) NumRows() int { return len(t.rows) }

// NumColumns is the header width.
func (t *Table) NumColumns() int { return len(t.header) }

// column collects the cleaned, non-empty values at position col. Rows too
// short to have the position are skipped.
func (t *Table) column(col int) []string {
	vals := make([]string, 0, len(t.rows))
	for _, row := range t.rows {
		if col >= len(row) {
			continue
		}
		if v := cleanValue(row[col]); v != "" {
			vals = append(vals, v)
		}
	}
	return vals
}

package analysis

import (
	"strings"

	"github.com/KaramelBytes/tabcheck/internal/parser"
)

// emptyQuoted is the two-character literal "" that some producers use for an
// explicit null. The line parser already reduces it to an empty field, but a
// row built elsewhere may still carry it.
const emptyQuoted = `""`

// RowShape describes a data row whose width differs from the header.
// Line is 1-based and counts the header as line 1.
type RowShape struct {
	Line   int `json:"line"`
	Fields int `json:"fields"`
}

// NullPosition locates one null field. Row is the 1-based input line number
// (first data row is 2); Column is the header name at that position.
type NullPosition struct {
	Row    int    `json:"row"`
	Column string `json:"column"`
}

// ValidateColumnCount reports whether every data row has exactly as many
// fields as the header.
func (t *Table) ValidateColumnCount() bool {
	want := len(t.header)
	for _, row := range t.rows {
		if len(row) != want {
			return false
		}
	}
	return true
}

// RaggedRows lists the data rows whose field count differs from the header, in
// input order.
func (t *Table) RaggedRows() []RowShape {
	out := []RowShape{}
	want := len(t.header)
	for i, row := range t.rows {
		if len(row) != want {
			out = append(out, RowShape{Line: i + 2, Fields: len(row)})
		}
	}
	return out
}

// FindNullPositions returns every blank or "" field, ordered by row then
// column. Only positions present in both the row and the header are examined,
// so ragged rows never index past either.
func (t *Table) FindNullPositions() []NullPosition {
	out := []NullPosition{}
	for i, row := range t.rows {
		n := min(len(row), len(t.header))
		for j := 0; j < n; j++ {
			if isNull(row[j]) {
				out = append(out, NullPosition{Row: i + 2, Column: t.header[j]})
			}
		}
	}
	return out
}

// UnbalancedQuoteLines returns the 1-based line numbers (header is line 1)
// whose raw text leaves a quoted span open.
func (t *Table) UnbalancedQuoteLines() []int {
	out := []int{}
	for i, line := range t.raw {
		if parser.QuoteCount(line)%2 != 0 {
			out = append(out, i+1)
		}
	}
	return out
}

func isNull(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || v == emptyQuoted
}

// cleanValue strips every quote character and surrounding whitespace.
func cleanValue(v string) string {
	return strings.TrimSpace(strings.ReplaceAll(v, `"`, ""))
}

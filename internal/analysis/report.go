package analysis

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Report bundles the results of every analysis over one input.
type Report struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Columns          []string        `json:"columns"`
	Rows             int             `json:"rows"`
	ColumnsValid     bool            `json:"columns_valid"`
	Ragged           []RowShape      `json:"ragged_rows"`
	Nulls            []NullPosition  `json:"nulls"`
	Types            []ColumnType    `json:"types"`
	Summaries        []ColumnSummary `json:"summaries"`
	UnbalancedQuotes []int           `json:"unbalanced_quote_lines"`
}

// Inspect loads text and runs every analysis on the resulting table.
func Inspect(name, text string) (*Report, error) {
	t, err := Load(text)
	if err != nil {
		var empty *EmptyInputError
		if errors.As(err, &empty) {
			empty.Source = name
		}
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return t.Report(name), nil
}

// Report runs every analysis on t. The table is only read, so calling it more
// than once yields the same findings under a new ID.
func (t *Table) Report(name string) *Report {
	return &Report{
		ID:               uuid.NewString(),
		Name:             name,
		Columns:          t.Header(),
		Rows:             t.NumRows(),
		ColumnsValid:     t.ValidateColumnCount(),
		Ragged:           t.RaggedRows(),
		Nulls:            t.FindNullPositions(),
		Types:            t.InferTypes(),
		Summaries:        t.Summarize(),
		UnbalancedQuotes: t.UnbalancedQuoteLines(),
	}
}

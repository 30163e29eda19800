package analysis

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat indicates a report format name that Render does not know.
var ErrUnsupportedFormat = errors.New("unsupported format")

// EmptyInputError indicates the input had no lines, so there is no header to
// build a table from.
type EmptyInputError struct {
	Source string
}

func (e *EmptyInputError) Error() string {
	if e == nil || e.Source == "" {
		return "empty input: no header line"
	}
	return fmt.Sprintf("empty input %s: no header line", e.Source)
}

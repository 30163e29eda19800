package parser

import "strings"

const (
	fieldSep = ','
	quote    = '"'
)

// scanState tracks whether the scanner is inside a quoted span.
type scanState int

const (
	stateOutside scanState = iota
	stateInside
)

// ParseLine splits one line into trimmed fields. Quote characters toggle the
// quoted state and are dropped; commas inside a quoted span are kept literally.
// An unterminated quote is not an error: the rest of the line is simply read in
// the quoted state.
func ParseLine(line string) []string {
	fields := make([]string, 0, strings.Count(line, string(fieldSep))+1)
	var cur strings.Builder
	state := stateOutside

	for _, r := range line {
		switch {
		case r == quote:
			if state == stateOutside {
				state = stateInside
			} else {
				state = stateOutside
			}
		case r == fieldSep && state == stateOutside:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	// last value, whatever state we ended in
	fields = append(fields, strings.TrimSpace(cur.String()))
	return fields
}

// QuoteCount returns the number of quote characters in line. An odd count means
// a quoted span was left open.
func QuoteCount(line string) int {
	return strings.Count(line, string(quote))
}

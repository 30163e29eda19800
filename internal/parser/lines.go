package parser

import (
	"bufio"
	"bytes"
	"strings"
)

// SplitLines breaks text into lines on "\n", "\r\n" or a lone "\r". A trailing
// terminator does not open an extra empty line; blank lines elsewhere are kept.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	sc := bufio.NewScanner(strings.NewReader(text))
	// one line may be as long as the whole input
	sc.Buffer(make([]byte, 0, 64*1024), len(text)+1)
	sc.Split(scanAnyEOL)

	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines
}

// scanAnyEOL is bufio.ScanLines extended to treat a lone '\r' as a terminator.
func scanAnyEOL(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// '\r': need one more byte to tell "\r\n" from a lone '\r'
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

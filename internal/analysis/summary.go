package analysis

import (
	"regexp"
	"strconv"

	"github.com/montanaflynn/stats"
)

var integerPattern = regexp.MustCompile(`^-?[0-9]+$`)

// ValueCount is one distinct value and how often it occurs.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ColumnSummary captures per-column statistics. Min, Max, Mean and Median are
// set only when every non-null value is an integer.
type ColumnSummary struct {
	Name         string       `json:"name"`
	NonNullCount int          `json:"non_null_count"`
	Min          *int64       `json:"min,omitempty"`
	Max          *int64       `json:"max,omitempty"`
	Mean         *float64     `json:"mean,omitempty"`
	Median       *float64     `json:"median,omitempty"`
	Mode         []ValueCount `json:"mode"`
}

// Numeric reports whether integer statistics were computed.
func (s ColumnSummary) Numeric() bool { return s.Min != nil }

// Summarize computes a ColumnSummary for each column in header order.
func (t *Table) Summarize() []ColumnSummary {
	out := make([]ColumnSummary, len(t.header))
	for col, name := range t.header {
		out[col] = summarizeColumn(name, t.column(col))
	}
	return out
}

// SummaryMap indexes summaries by column name; the rightmost duplicate wins.
func SummaryMap(s []ColumnSummary) map[string]ColumnSummary {
	m := make(map[string]ColumnSummary, len(s))
	for _, cs := range s {
		m[cs.Name] = cs
	}
	return m
}

func summarizeColumn(name string, vals []string) ColumnSummary {
	s := ColumnSummary{Name: name, NonNullCount: len(vals), Mode: []ValueCount{}}
	if len(vals) == 0 {
		return s
	}
	if nums, ok := parseIntegers(vals); ok {
		lo, hi := nums[0], nums[0]
		floats := make(stats.Float64Data, len(nums))
		for i, n := range nums {
			lo = min(lo, n)
			hi = max(hi, n)
			floats[i] = float64(n)
		}
		s.Min, s.Max = &lo, &hi
		if mean, err := floats.Mean(); err == nil {
			s.Mean = &mean
		}
		if median, err := floats.Median(); err == nil {
			s.Median = &median
		}
	}
	s.Mode = modes(vals)
	return s
}

// parseIntegers converts vals when each one is an optionally negative run of
// digits that fits in an int64.
func parseIntegers(vals []string) ([]int64, bool) {
	nums := make([]int64, len(vals))
	for i, v := range vals {
		if !integerPattern.MatchString(v) {
			return nil, false
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, false
		}
		nums[i] = n
	}
	return nums, true
}

// modes returns every value tied for the highest count, in order of first
// appearance.
func modes(vals []string) []ValueCount {
	counts := make(map[string]int, len(vals))
	order := make([]string, 0, len(vals))
	best := 0
	for _, v := range vals {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
		best = max(best, counts[v])
	}
	out := []ValueCount{}
	for _, v := range order {
		if counts[v] == best {
			out = append(out, ValueCount{Value: v, Count: best})
		}
	}
	return out
}

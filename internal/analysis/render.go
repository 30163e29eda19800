package analysis

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/tabcheck/internal/utils"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
)

// Text renders the report in the classic five-section console layout.
func (r *Report) Text() string {
	var b strings.Builder

	b.WriteString("MODULE 1: Column Count Check\n")
	if r.ColumnsValid {
		b.WriteString("Valid\n")
	} else {
		b.WriteString("Invalid\n")
	}

	b.WriteString("\nMODULE 2: Null Value Positions\n")
	if len(r.Nulls) == 0 {
		b.WriteString("No Null values found.\n")
	}
	for _, n := range r.Nulls {
		fmt.Fprintf(&b, "Null at Row %d, Column: %s\n", n.Row, n.Column)
	}

	b.WriteString("\nMODULE 3: Data Types\n")
	for _, ct := range r.Types {
		fmt.Fprintf(&b, "%s -> %s\n", ct.Name, ct.Type)
	}

	b.WriteString("\nMODULE 4: Quoted Field Handling\n")
	if len(r.UnbalancedQuotes) == 0 {
		b.WriteString("Quoted fields are parsed correctly. Valid.\n")
	}
	for _, line := range r.UnbalancedQuotes {
		fmt.Fprintf(&b, "Unbalanced quotes at Row %d\n", line)
	}

	b.WriteString("\nMODULE 5: Column Summary\n")
	for _, s := range r.Summaries {
		fmt.Fprintf(&b, "\nSummary for: %s\n", s.Name)
		if s.NonNullCount == 0 {
			b.WriteString("No non-null values.\n")
			continue
		}
		if s.Numeric() {
			fmt.Fprintf(&b, "Min: %d\n", *s.Min)
			fmt.Fprintf(&b, "Max: %d\n", *s.Max)
		}
		for _, m := range s.Mode {
			fmt.Fprintf(&b, "Most Frequent: %s (Count: %d)\n", m.Value, m.Count)
		}
		fmt.Fprintf(&b, "Non-null count: %d\n", s.NonNullCount)
	}
	return b.String()
}

// Markdown renders a compact sectioned report suitable for docs or tickets.
// Names and values from the input are escaped so they always read as text.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("## Dataset Summary\n\n")
	if r.Name != "" {
		fmt.Fprintf(&b, "- File: %s\n", mdEscape(r.Name))
	}
	fmt.Fprintf(&b, "- Rows: %d\n", r.Rows)
	fmt.Fprintf(&b, "- Columns: %d\n", len(r.Columns))

	b.WriteString("\n## Structure\n\n")
	if r.ColumnsValid {
		b.WriteString("- column count: consistent\n")
	} else {
		b.WriteString("- column count: inconsistent\n")
		for _, rs := range r.Ragged {
			fmt.Fprintf(&b, "- line %d: %d fields (expected %d)\n", rs.Line, rs.Fields, len(r.Columns))
		}
	}

	b.WriteString("\n## Nulls\n\n")
	if len(r.Nulls) == 0 {
		b.WriteString("- none\n")
	}
	for _, n := range r.Nulls {
		fmt.Fprintf(&b, "- row %d, column %s\n", n.Row, mdEscape(safeName(n.Column)))
	}

	b.WriteString("\n## Schema\n\n")
	for i, s := range r.Summaries {
		kind := "Integer"
		if i < len(r.Types) {
			kind = r.Types[i].Type.String()
		}
		fmt.Fprintf(&b, "- %s: %s (non-null %d)", mdEscape(safeName(s.Name)), kind, s.NonNullCount)
		if s.Numeric() {
			fmt.Fprintf(&b, "; min %d, max %d", *s.Min, *s.Max)
			if s.Mean != nil && s.Median != nil {
				fmt.Fprintf(&b, ", mean %.4g, median %.4g", *s.Mean, *s.Median)
			}
		}
		if len(s.Mode) > 0 {
			b.WriteString("; mode: ")
			for j, m := range s.Mode {
				if j > 0 {
					b.WriteString(", ")
				}
				fmt.Fprintf(&b, "%s(%d)", mdEscape(safeVal(m.Value)), m.Count)
			}
		}
		b.WriteString("\n")
	}

	if len(r.UnbalancedQuotes) > 0 {
		b.WriteString("\n## Notes\n\n")
		for _, line := range r.UnbalancedQuotes {
			fmt.Fprintf(&b, "- unbalanced quotes at line %d\n", line)
		}
	}
	return b.String()
}

// Render produces the report in the named format: text, markdown, json or html.
func (r *Report) Render(format string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return []byte(r.Text()), nil
	case "markdown", "md":
		return []byte(r.Markdown()), nil
	case "json":
		b, err := utils.PrettyJSON(r)
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case "html":
		return r.HTML(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// Extension is the file suffix conventionally used for format.
func Extension(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "markdown", "md":
		return ".md"
	case "json":
		return ".json"
	case "html":
		return ".html"
	default:
		return ".txt"
	}
}

// HTML converts the Markdown rendering to an HTML fragment. Raw HTML in the
// source is dropped, and Smartypants stays off so values render as written.
func (r *Report) HTML() []byte {
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.SkipHTML})
	return markdown.ToHTML([]byte(r.Markdown()), nil, renderer)
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }

// mdSpecial lists the inline characters that can open markup or raw HTML.
const mdSpecial = "\\`*_[]<>&!|~^$:"

// mdEscape backslash-escapes Markdown inline syntax so s renders as literal text.
func mdEscape(s string) string {
	if !strings.ContainsAny(s, mdSpecial) {
		return s
	}
	var b strings.Builder
	for _, c := range s {
		if strings.ContainsRune(mdSpecial, c) {
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}

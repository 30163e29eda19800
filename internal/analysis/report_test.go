package analysis

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleText = `MODULE 1: Column Count Check
Valid

MODULE 2: Null Value Positions
No Null values found.

MODULE 3: Data Types
Name -> String
age -> Integer
city -> String
salary -> Integer

MODULE 4: Quoted Field Handling
Quoted fields are parsed correctly. Valid.

MODULE 5: Column Summary

Summary for: Name
Most Frequent: A (Count: 1)
Most Frequent: B (Count: 1)
Non-null count: 2

Summary for: age
Min: 20
Max: 30
Most Frequent: 20 (Count: 1)
Most Frequent: 30 (Count: 1)
Non-null count: 2

Summary for: city
Most Frequent: xx , yy (Count: 1)
Most Frequent: y (Count: 1)
Non-null count: 2

Summary for: salary
Min: 600
Max: 700
Most Frequent: 600 (Count: 1)
Most Frequent: 700 (Count: 1)
Non-null count: 2
`

func TestInspectSampleText(t *testing.T) {
	rep, err := Inspect(SampleName, SampleCSV)
	require.NoError(t, err)
	assert.Equal(t, sampleText, rep.Text())
}

func TestInspectEmptyInputNamesSource(t *testing.T) {
	_, err := Inspect("blank.csv", "")
	require.Error(t, err)
	var empty *EmptyInputError
	require.True(t, errors.As(err, &empty))
	assert.Equal(t, "blank.csv", empty.Source)
	assert.Contains(t, err.Error(), "blank.csv")
}

func TestReportIDsDifferAcrossRuns(t *testing.T) {
	tbl := mustLoad(t, SampleCSV)
	a, b := tbl.Report("x"), tbl.Report("x")
	assert.NotEqual(t, a.ID, b.ID)
	a.ID, b.ID = "", ""
	assert.Equal(t, a, b)
}

func TestTextRendersNullsAndInvalid(t *testing.T) {
	rep, err := Inspect("t", "a,b\n1,\n,\n3")
	require.NoError(t, err)
	out := rep.Text()

	assert.Contains(t, out, "MODULE 1: Column Count Check\nInvalid\n")
	assert.Contains(t, out, "Null at Row 2, Column: b\n")
	assert.Contains(t, out, "Null at Row 3, Column: a\nNull at Row 3, Column: b\n")
	assert.NotContains(t, out, "No Null values found.")
	assert.Contains(t, out, "Summary for: b\nNo non-null values.\n")
}

func TestTextRendersUnbalancedQuotes(t *testing.T) {
	rep, err := Inspect("t", "a,b\n\"x,1\n")
	require.NoError(t, err)
	assert.Contains(t, rep.Text(), "MODULE 4: Quoted Field Handling\nUnbalanced quotes at Row 2\n")
}

func TestMarkdown(t *testing.T) {
	rep, err := Inspect("people.csv", "name,age\nann,30\nbob,\nann,40,x\n")
	require.NoError(t, err)
	md := rep.Markdown()

	for _, want := range []string{
		"## Dataset Summary\n\n- File: people.csv\n- Rows: 3\n- Columns: 2\n",
		"## Structure\n\n- column count: inconsistent\n- line 4: 3 fields (expected 2)\n",
		"## Nulls\n\n- row 3, column age\n",
		"## Schema\n\n- name: String (non-null 3); mode: ann(2)\n",
		"- age: Integer (non-null 2); min 30, max 40, mean 35, median 35; mode: 30(1), 40(1)\n",
	} {
		assert.Contains(t, md, want)
	}
	assert.NotContains(t, md, "## Notes")
}

func TestMarkdownEscapesInputText(t *testing.T) {
	rep, err := Inspect("a_b.csv", "[x](y),*b*\n<i>,1\n")
	require.NoError(t, err)
	md := rep.Markdown()
	assert.Contains(t, md, "- File: a\\_b.csv\n")
	assert.Contains(t, md, "- \\[x\\](y): String")
	assert.Contains(t, md, "- \\*b\\*: Integer")
	assert.Contains(t, md, "mode: \\<i\\>(1)")
	assert.Equal(t, "plain", mdEscape("plain"))
}

func TestHTML(t *testing.T) {
	rep, err := Inspect("people.csv", "name,age\nann,30\nbob,\n")
	require.NoError(t, err)
	out := string(rep.HTML())

	assert.Contains(t, out, "<h2>Schema</h2>")
	assert.Contains(t, out, "<ul>")
	assert.Contains(t, out, "<li>name: String (non-null 2); mode: ann(1), bob(1)</li>")
	assert.Contains(t, out, "<li>row 3, column age</li>")
	assert.NotContains(t, out, "<a href")

	rep, err = Inspect(SampleName, SampleCSV)
	require.NoError(t, err)
	out = string(rep.HTML())
	assert.Contains(t, out, "<li>none</li>")
	assert.NotContains(t, out, "<a href")

	rep, err = Inspect("t", "a\nx(c)\n")
	require.NoError(t, err)
	assert.Contains(t, string(rep.HTML()), "mode: x(c)(1)")
}

func TestHTMLEscapesMarkup(t *testing.T) {
	rep, err := Inspect("<img src=x onerror=alert(2)>", "<script>alert(1)</script>,b\n1,2\n")
	require.NoError(t, err)
	out := string(rep.HTML())

	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "<img")
	assert.Contains(t, out, "&lt;script&gt;alert(1)&lt;/script&gt;: Integer")
	assert.Contains(t, out, "File: &lt;img src=x onerror=alert(2)&gt;")
}

func TestReportJSON(t *testing.T) {
	rep, err := Inspect(SampleName, SampleCSV)
	require.NoError(t, err)
	b, err := json.Marshal(rep)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, true, got["columns_valid"])
	types := got["types"].([]any)
	assert.Equal(t, "Integer", types[1].(map[string]any)["type"])
	sums := got["summaries"].([]any)
	assert.NotContains(t, sums[0].(map[string]any), "min")
	assert.EqualValues(t, 20, sums[1].(map[string]any)["min"])
}

func TestRenderFormats(t *testing.T) {
	rep, err := Inspect(SampleName, SampleCSV)
	require.NoError(t, err)

	text, err := rep.Render("text")
	require.NoError(t, err)
	assert.Equal(t, rep.Text(), string(text))

	md, err := rep.Render("markdown")
	require.NoError(t, err)
	assert.Equal(t, rep.Markdown(), string(md))

	js, err := rep.Render("json")
	require.NoError(t, err)
	assert.True(t, json.Valid(js))

	_, err = rep.Render("xml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	assert.Equal(t, ".md", Extension("markdown"))
	assert.Equal(t, ".json", Extension("json"))
	assert.Equal(t, ".txt", Extension("text"))
}

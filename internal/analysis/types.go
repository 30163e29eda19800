package analysis

import (
	"encoding/json"
	"strconv"
)

// TypeTag is the inferred type of a column.
type TypeTag int

const (
	Integer TypeTag = iota
	String
)

func (t TypeTag) String() string {
	switch t {
	case Integer:
		return "Integer"
	case String:
		return "String"
	default:
		return "TypeTag(" + strconv.Itoa(int(t)) + ")"
	}
}

// MarshalJSON renders the tag by name.
func (t TypeTag) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// ColumnType pairs a header name with its inferred type.
type ColumnType struct {
	Name string  `json:"name"`
	Type TypeTag `json:"type"`
}

// InferTypes tags each column, in header order, as Integer when every
// non-empty value parses as a signed base-10 integer and String otherwise.
// A column with no non-empty values at all is Integer.
func (t *Table) InferTypes() []ColumnType {
	out := make([]ColumnType, len(t.header))
	for col, name := range t.header {
		tag := Integer
		for _, v := range t.column(col) {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				tag = String
				break
			}
		}
		out[col] = ColumnType{Name: name, Type: tag}
	}
	return out
}

// TypeMap indexes types by column name. With duplicate header names the
// rightmost column wins.
func TypeMap(types []ColumnType) map[string]TypeTag {
	m := make(map[string]TypeTag, len(types))
	for _, ct := range types {
		m[ct.Name] = ct.Type
	}
	return m
}

package model

import (
	"encoding/json"
	"fmt"
)

// Row is one result of an alerts query: included column name to value.
// Values decoded from JSON keep numbers as json.Number so that 64-bit
// identifiers survive intact; never route these through float64.
type Row map[string]any

// Int64 returns the named column as an int64.
func (r Row) Int64(field string) (int64, error) {
	v, ok := r[field]
	if !ok {
		return 0, fmt.Errorf("row has no column %q", field)
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, fmt.Errorf("column %q is %T, not a number", field, v)
	}
	return n.Int64()
}

// Float64 returns the named column as a float64.
func (r Row) Float64(field string) (float64, error) {
	v, ok := r[field]
	if !ok {
		return 0, fmt.Errorf("row has no column %q", field)
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, fmt.Errorf("column %q is %T, not a number", field, v)
	}
	return n.Float64()
}

// String renders the named column for display. Numbers are rendered with
// their original JSON text, preserving every digit.
func (r Row) String(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case json.Number:
		return t.String()
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}

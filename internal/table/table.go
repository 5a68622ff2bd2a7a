// Package table provides nullable string tables and the reshaping steps
// (prefix stripping, completeness ranking, ordered grouping) applied to
// SPARQL result sets before they become typed rows.
package table

import (
	"encoding/json"
	"fmt"
)

// Value is a nullable cell. The zero Value is null.
type Value struct {
	String string
	Valid  bool
}

// Null is the null cell.
var Null = Value{}

// Str returns a non-null cell holding s.
func Str(s string) Value {
	return Value{String: s, Valid: true}
}

// Or returns the cell's string, or fallback when the cell is null.
func (v Value) Or(fallback string) string {
	if !v.Valid {
		return fallback
	}
	return v.String
}

// MarshalJSON renders null cells as JSON null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.String)
}

// UnmarshalJSON accepts a JSON string or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Null
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding cell: %w", err)
	}
	*v = Str(s)
	return nil
}

// Row is one table row; its length always equals the table's column count.
type Row []Value

// Table is an ordered set of named columns with nullable cells.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// New creates an empty table with the given columns.
func New(columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Column returns the index of the named column, or -1.
func (t *Table) Column(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Get returns the cell at row i in the named column. Unknown columns read as null.
func (t *Table) Get(i int, column string) Value {
	idx := t.Column(column)
	if idx < 0 || i < 0 || i >= len(t.Rows) {
		return Null
	}
	return t.Rows[i][idx]
}

// Apply replaces every non-null cell in column with fn(cell).
func (t *Table) Apply(column string, fn func(string) string) {
	idx := t.Column(column)
	if idx < 0 {
		return
	}
	for _, row := range t.Rows {
		if row[idx].Valid {
			row[idx].String = fn(row[idx].String)
		}
	}
}

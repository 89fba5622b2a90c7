// Package workbook is the in-memory tabular contract consumed by validation:
// an ordered set of named sheets, each a header plus rows of typed cells.
//
// Workbooks are built either by reading an xlsx file (see Open and Read) or
// directly with New, NewTable and Table.Append.
package workbook

import "github.com/JonMunkholm/seedcheck/internal/schema"

// Row maps column name to cell value.
type Row map[string]Value

// Get returns the value at col, or Null if the row has no such cell.
func (r Row) Get(col string) Value {
	return r[col]
}

// Table is one sheet's data. Columns is the header in file order.
type Table struct {
	Sheet   string
	Columns []string
	Rows    []Row
}

// NewTable creates an empty table with the given header.
func NewTable(sheet string, columns ...string) *Table {
	cols := make([]string, len(columns))
	for i, c := range columns {
		cols[i] = schema.Normalize(c)
	}
	return &Table{Sheet: schema.Normalize(sheet), Columns: cols}
}

// Append adds a row whose values follow the header positionally. Missing
// trailing values are null; extra values are ignored.
func (t *Table) Append(values ...Value) *Table {
	row := make(Row, len(t.Columns))
	for i, c := range t.Columns {
		if i < len(values) {
			row[c] = values[i]
		} else {
			row[c] = Null
		}
	}
	t.Rows = append(t.Rows, row)
	return t
}

// AppendRow adds a row keyed by column name.
func (t *Table) AppendRow(r Row) *Table {
	t.Rows = append(t.Rows, r)
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasColumn reports whether col is in the header.
func (t *Table) HasColumn(col string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// HasColumns reports whether every col is in the header.
func (t *Table) HasColumns(cols ...string) bool {
	for _, c := range cols {
		if !t.HasColumn(c) {
			return false
		}
	}
	return true
}

// Values returns the non-null values of col in row order.
func (t *Table) Values(col string) []Value {
	if t == nil {
		return nil
	}
	out := make([]Value, 0, len(t.Rows))
	for _, r := range t.Rows {
		if v := r.Get(col); !v.IsNull() {
			out = append(out, v)
		}
	}
	return out
}

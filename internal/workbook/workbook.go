package workbook

import "github.com/JonMunkholm/seedcheck/internal/schema"

// Workbook is an ordered collection of named tables.
type Workbook struct {
	Name   string
	order  []string
	tables map[string]*Table
}

// New creates an empty workbook.
func New(name string) *Workbook {
	return &Workbook{Name: name, tables: make(map[string]*Table)}
}

// Add appends a table, replacing any existing table with the same sheet name
// while keeping its original position.
func (w *Workbook) Add(t *Table) *Workbook {
	name := schema.Normalize(t.Sheet)
	t.Sheet = name
	if _, ok := w.tables[name]; !ok {
		w.order = append(w.order, name)
	}
	w.tables[name] = t
	return w
}

// SheetNames returns sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	out := make([]string, len(w.order))
	copy(out, w.order)
	return out
}

// Table returns the named sheet.
func (w *Workbook) Table(name string) (*Table, bool) {
	t, ok := w.tables[schema.Normalize(name)]
	return t, ok
}

// Len returns the number of sheets.
func (w *Workbook) Len() int {
	return len(w.order)
}

package core

// rules.go holds the declarative checks that per-sheet rule sets are built
// from. Every check reads the table and the reference context and returns
// findings; none of them mutate either.
//
// A check whose columns are not all present in the table does nothing. The
// structural column comparison already reports the missing header, and a
// second message for the same cause would only add noise. A check that needs
// a reference category the context does not carry is skipped the same way.

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/JonMunkholm/seedcheck/internal/workbook"
)

// Check is one content rule applied to a sheet.
type Check interface {
	Run(t *workbook.Table, ref Reference) []Finding
}

// CheckFunc adapts a function to Check.
type CheckFunc func(t *workbook.Table, ref Reference) []Finding

// Run implements Check.
func (f CheckFunc) Run(t *workbook.Table, ref Reference) []Finding { return f(t, ref) }

// RuleSet is the full content validation of one sheet.
type RuleSet struct {
	Sheet string

	// Optional sheets may be empty; an empty required sheet is an error.
	Optional bool

	Checks []Check
}

// Validate applies the rule set. It is the Validator of the sheet.
func (rs RuleSet) Validate(t *workbook.Table, ref Reference) ValidationResult {
	var f findings
	if t.Len() == 0 {
		if rs.Optional {
			f.warnf("sheet is empty (optional)")
		} else {
			f.errorf("sheet is empty")
		}
		return f.result()
	}

	for _, c := range rs.Checks {
		f.addAll(c.Run(t, ref))
	}
	return f.result()
}

// Unique reports rows sharing the same key. Every row in a duplicate group is
// counted, and the distinct duplicated keys are listed in sorted order.
type Unique struct {
	Columns  []string
	Label    string
	Severity Severity

	// KeepNulls makes blank cells part of the key. Otherwise a row with any
	// blank key cell is ignored.
	KeepNulls bool

	// Format renders one key for the message. Defaults to joining the cells
	// with " - ".
	Format func(cells []string) string
}

// Run implements Check.
func (u Unique) Run(t *workbook.Table, _ Reference) []Finding {
	if !t.HasColumns(u.Columns...) {
		return nil
	}

	counts := make(map[string]int)
	display := make(map[string]string)
	order := make([]string, 0, t.Len())
	for _, row := range t.Rows {
		cells, ok := keyCells(row, u.Columns, u.KeepNulls)
		if !ok {
			continue
		}
		key := strings.Join(cells, "\x00")
		if _, seen := counts[key]; !seen {
			order = append(order, key)
			display[key] = u.format(cells)
		}
		counts[key]++
	}

	affected := 0
	var dups []string
	for _, key := range order {
		if n := counts[key]; n > 1 {
			affected += n
			dups = append(dups, display[key])
		}
	}
	if affected == 0 {
		return nil
	}
	sort.Strings(dups)
	return []Finding{{
		Severity: u.Severity,
		Message:  fmt.Sprintf("%d rows with duplicate %s: %s", affected, u.Label, strings.Join(dups, ", ")),
	}}
}

func (u Unique) format(cells []string) string {
	if u.Format != nil {
		return u.Format(cells)
	}
	return strings.Join(cells, " - ")
}

func keyCells(row workbook.Row, cols []string, keepNulls bool) ([]string, bool) {
	cells := make([]string, len(cols))
	for i, c := range cols {
		v := row.Get(c)
		if v.IsNull() && !keepNulls {
			return nil, false
		}
		cells[i] = v.String()
	}
	return cells, true
}

// ScopedUnique reports rows whose Column value repeats within the same Scope
// value. When the scope column is absent it falls back to plain uniqueness of
// Column across the sheet.
type ScopedUnique struct {
	Column   string
	Scope    string
	Label    string
	Severity Severity
}

// Run implements Check.
func (s ScopedUnique) Run(t *workbook.Table, ref Reference) []Finding {
	if !t.HasColumn(s.Scope) {
		return Unique{Columns: []string{s.Column}, Label: s.Label, Severity: s.Severity}.Run(t, ref)
	}
	return Unique{
		Columns:  []string{s.Column, s.Scope},
		Label:    fmt.Sprintf("%s within the same '%s'", s.Label, s.Scope),
		Severity: s.Severity,
		Format: func(cells []string) string {
			return fmt.Sprintf("%s (%s)", cells[0], cells[1])
		},
	}.Run(t, ref)
}

// EmailFormat reports non-blank emails without an "@".
type EmailFormat struct {
	Column   string
	Severity Severity
}

// Run implements Check.
func (e EmailFormat) Run(t *workbook.Table, _ Reference) []Finding {
	if !t.HasColumn(e.Column) {
		return nil
	}
	bad := 0
	for _, v := range t.Values(e.Column) {
		if !strings.Contains(v.String(), "@") {
			bad++
		}
	}
	if bad == 0 {
		return nil
	}
	return []Finding{{
		Severity: e.Severity,
		Message:  fmt.Sprintf("%d email(s) with invalid format (missing '@')", bad),
	}}
}

// CrossRef reports values of Column that are not in the Category set. With
// List set the cell is a comma-separated list and every token is checked.
// Invalid values from all rows are aggregated into one message.
type CrossRef struct {
	Column   string
	Category Category
	Label    string
	Severity Severity
	List     bool

	// Note is appended to the message.
	Note string
}

// Run implements Check.
func (c CrossRef) Run(t *workbook.Table, ref Reference) []Finding {
	known := ref.set(c.Category)
	if known == nil || !t.HasColumn(c.Column) {
		return nil
	}

	invalid := make(map[string]bool)
	for _, v := range t.Values(c.Column) {
		tokens := []string{v.String()}
		if c.List {
			tokens = SplitList(v.String())
		}
		for _, tok := range tokens {
			if _, ok := known[tok]; !ok {
				invalid[tok] = true
			}
		}
	}
	if len(invalid) == 0 {
		return nil
	}

	msg := fmt.Sprintf("%d unknown %s in '%s': %s", len(invalid), c.Label, c.Column, strings.Join(sortedKeys(invalid), ", "))
	if c.Note != "" {
		msg += "; " + c.Note
	}
	return []Finding{{Severity: c.Severity, Message: msg}}
}

// SplitList splits a comma-separated cell into trimmed, non-empty tokens.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Enum reports values of Column outside Allowed.
type Enum struct {
	Column   string
	Allowed  []string
	Label    string
	Severity Severity
}

// Run implements Check.
func (e Enum) Run(t *workbook.Table, _ Reference) []Finding {
	if !t.HasColumn(e.Column) {
		return nil
	}
	allowed := make(map[string]bool, len(e.Allowed))
	for _, a := range e.Allowed {
		allowed[a] = true
	}

	rows := 0
	found := make(map[string]bool)
	for _, v := range t.Values(e.Column) {
		if s := v.String(); !allowed[s] {
			rows++
			found[s] = true
		}
	}
	if rows == 0 {
		return nil
	}
	return []Finding{{
		Severity: e.Severity,
		Message: fmt.Sprintf("%d invalid %s: %s. Allowed values: %s",
			rows, e.Label, strings.Join(sortedKeys(found), ", "), strings.Join(e.Allowed, ", ")),
	}}
}

// DateOrder requires both dates of every row to parse and the end to fall
// strictly after the start. Blank dates count as invalid.
type DateOrder struct {
	Start string
	End   string

	// Label names the rows in the ordering message, e.g. "course(s)".
	Label string
}

// Run implements Check.
func (d DateOrder) Run(t *workbook.Table, _ Reference) []Finding {
	if !t.HasColumns(d.Start, d.End) {
		return nil
	}

	var badStart, badEnd, badOrder int
	for _, row := range t.Rows {
		start, okStart := row.Get(d.Start).Time()
		end, okEnd := row.Get(d.End).Time()
		if !okStart {
			badStart++
		}
		if !okEnd {
			badEnd++
		}
		if okStart && okEnd && !end.After(start) {
			badOrder++
		}
	}

	var out []Finding
	if badStart > 0 {
		out = append(out, Finding{SeverityError, fmt.Sprintf("%d invalid start date(s)", badStart)})
	}
	if badEnd > 0 {
		out = append(out, Finding{SeverityError, fmt.Sprintf("%d invalid end date(s)", badEnd)})
	}
	if badOrder > 0 {
		out = append(out, Finding{SeverityError, fmt.Sprintf("%d %s with end date on or before start date", badOrder, d.Label)})
	}
	return out
}

// Positive requires non-blank values of Column to be numbers greater than 0.
type Positive struct {
	Column string
	Label  string
}

// Run implements Check.
func (p Positive) Run(t *workbook.Table, _ Reference) []Finding {
	if !t.HasColumn(p.Column) {
		return nil
	}
	bad := 0
	for _, v := range t.Values(p.Column) {
		if n, ok := v.Float(); !ok || n <= 0 {
			bad++
		}
	}
	if bad == 0 {
		return nil
	}
	return []Finding{{
		Severity: SeverityError,
		Message:  fmt.Sprintf("%d %s with invalid '%s' (must be a number greater than 0)", bad, p.Label, p.Column),
	}}
}

// NotFuture reports dates in Column later than Now. Values that do not parse
// as dates are not reported.
type NotFuture struct {
	Column string
	Label  string
	Now    func() time.Time
}

// Run implements Check.
func (n NotFuture) Run(t *workbook.Table, _ Reference) []Finding {
	if !t.HasColumn(n.Column) {
		return nil
	}
	now := time.Now()
	if n.Now != nil {
		now = n.Now()
	}
	bad := 0
	for _, v := range t.Values(n.Column) {
		if ts, ok := v.Time(); ok && ts.After(now) {
			bad++
		}
	}
	if bad == 0 {
		return nil
	}
	return []Finding{{
		Severity: SeverityError,
		Message:  fmt.Sprintf("%d %s with '%s' in the future", bad, n.Label, n.Column),
	}}
}

// DistinctValues lists the distinct values seen in Column as a warning, for
// review of free-form columns. At most Limit values are listed.
type DistinctValues struct {
	Column string
	Limit  int
}

// Run implements Check.
func (d DistinctValues) Run(t *workbook.Table, _ Reference) []Finding {
	if !t.HasColumn(d.Column) {
		return nil
	}
	seen := make(map[string]bool)
	for _, v := range t.Values(d.Column) {
		seen[v.String()] = true
	}
	if len(seen) == 0 {
		return nil
	}

	vals := sortedKeys(seen)
	listed := vals
	if d.Limit > 0 && len(vals) > d.Limit {
		listed = vals[:d.Limit]
	}
	msg := fmt.Sprintf("%d distinct value(s) in '%s': %s", len(vals), d.Column, strings.Join(listed, ", "))
	if len(listed) < len(vals) {
		msg += fmt.Sprintf(" (+%d more)", len(vals)-len(listed))
	}
	return []Finding{{Severity: SeverityWarning, Message: msg}}
}

// QuantitativeRange checks Value on rows whose Kind column equals When: the
// value must be numeric and within [Min, Max]. Blank values are not checked.
type QuantitativeRange struct {
	Kind  string
	When  string
	Value string
	Min   float64
	Max   float64
}

// Run implements Check.
func (q QuantitativeRange) Run(t *workbook.Table, _ Reference) []Finding {
	if !t.HasColumns(q.Kind, q.Value) {
		return nil
	}

	outOfRange := 0
	nonNumeric := make(map[string]bool)
	nonNumericRows := 0
	for _, row := range t.Rows {
		if row.Get(q.Kind).String() != q.When {
			continue
		}
		v := row.Get(q.Value)
		if v.IsNull() {
			continue
		}
		n, ok := v.Float()
		if !ok {
			nonNumericRows++
			nonNumeric[v.String()] = true
			continue
		}
		if n < q.Min || n > q.Max {
			outOfRange++
		}
	}

	var out []Finding
	if nonNumericRows > 0 {
		out = append(out, Finding{SeverityError, fmt.Sprintf("%d non-numeric value(s) in '%s' for '%s': %s",
			nonNumericRows, q.Value, q.When, strings.Join(sortedKeys(nonNumeric), ", "))})
	}
	if outOfRange > 0 {
		out = append(out, Finding{SeverityError, fmt.Sprintf("%d value(s) in '%s' outside the valid range (%s-%s)",
			outOfRange, q.Value, formatBound(q.Min), formatBound(q.Max))})
	}
	return out
}

func formatBound(f float64) string {
	return workbook.Number(f).String()
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

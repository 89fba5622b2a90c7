package core

// validation.go provides the structural checks that run before content
// validation.
//
// Structure is checked at two levels:
//  1. Sheet level: every required sheet is present; unknown sheets are noted
//  2. Header level: every required column of a sheet is present; unknown
//     columns are noted, as is a complete header in a different order
//
// Missing sheets and columns are errors. Everything else is a warning.

import (
	"github.com/JonMunkholm/seedcheck/internal/schema"
)

// ColumnCheck is the comparison of a sheet header against its layout.
type ColumnCheck struct {
	Missing    []string
	Extra      []string
	OutOfOrder bool
}

// CompareColumns compares the present header with the required one. Names are
// compared after normalisation.
func CompareColumns(required, present []string) ColumnCheck {
	var check ColumnCheck

	have := make(map[string]bool, len(present))
	for _, p := range present {
		have[schema.Normalize(p)] = true
	}
	want := make(map[string]bool, len(required))
	for _, r := range required {
		r = schema.Normalize(r)
		want[r] = true
		if !have[r] {
			check.Missing = append(check.Missing, r)
		}
	}

	// Required columns in the order they were found.
	found := make([]string, 0, len(required))
	for _, p := range present {
		p = schema.Normalize(p)
		if want[p] {
			found = append(found, p)
		} else {
			check.Extra = append(check.Extra, p)
		}
	}

	if len(check.Missing) == 0 {
		for i, r := range required {
			if found[i] != schema.Normalize(r) {
				check.OutOfOrder = true
				break
			}
		}
	}
	return check
}

// Findings renders the comparison as findings.
func (c ColumnCheck) Findings() []Finding {
	out := make([]Finding, 0, len(c.Missing)+len(c.Extra)+1)
	for _, m := range c.Missing {
		out = append(out, Finding{SeverityError, "missing required column: " + m})
	}
	for _, e := range c.Extra {
		out = append(out, Finding{SeverityWarning, "unexpected column: " + e})
	}
	if c.OutOfOrder {
		out = append(out, Finding{SeverityWarning, "columns are not in the template order"})
	}
	return out
}

// CheckSheets compares workbook sheet names with the layout. missing follows
// layout order; extra follows workbook order.
func CheckSheets(reg *schema.Registry, names []string) (missing, extra []string) {
	have := make(map[string]bool, len(names))
	for _, n := range names {
		n = schema.Normalize(n)
		have[n] = true
		if !reg.IsRequired(n) {
			extra = append(extra, n)
		}
	}
	for _, n := range reg.Names() {
		if !have[n] {
			missing = append(missing, n)
		}
	}
	return missing, extra
}

// Package report renders a validation run summary for people and tools:
// plain text for terminals, CSV for spreadsheets and JSON for APIs.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/JonMunkholm/seedcheck/internal/core"
	"github.com/fatih/color"
)

// WorkbookScope labels workbook-level findings in row-oriented reports.
const WorkbookScope = "(workbook)"

// utf8BOM makes Excel open the CSV as UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVHeader is the first record of a CSV report.
var CSVHeader = []string{"Sheet", "Type", "Message", "Rows"}

// Line is one finding with the sheet it belongs to.
type Line struct {
	Sheet    string
	Severity core.Severity
	Message  string
	Rows     int
}

// Lines flattens a summary into findings: workbook-level findings first, then
// every sheet in layout order with its errors before its warnings.
func Lines(s core.RunSummary) []Line {
	var out []Line
	for _, m := range s.Structure.Errors {
		out = append(out, Line{WorkbookScope, core.SeverityError, m, 0})
	}
	for _, m := range s.Structure.Warnings {
		out = append(out, Line{WorkbookScope, core.SeverityWarning, m, 0})
	}
	for _, r := range s.Sheets {
		for _, m := range r.Result.Errors {
			out = append(out, Line{r.Sheet, core.SeverityError, m, r.Rows})
		}
		for _, m := range r.Result.Warnings {
			out = append(out, Line{r.Sheet, core.SeverityWarning, m, r.Rows})
		}
	}
	return out
}

// WriteCSV writes one record per finding, preceded by a BOM and CSVHeader.
func WriteCSV(w io.Writer, s core.RunSummary) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, l := range Lines(s) {
		record := []string{l.Sheet, l.Severity.String(), l.Message, strconv.Itoa(l.Rows)}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the summary as indented JSON.
func WriteJSON(w io.Writer, s core.RunSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// TextOptions controls the text report.
type TextOptions struct {
	// Color enables ANSI colours regardless of the output device.
	Color bool

	// Quiet omits sheets without findings.
	Quiet bool
}

// palette holds the colour functions used by WriteText. Each is a plain
// Sprint when colours are off.
type palette struct {
	ok, err, warn, bold func(a ...interface{}) string
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...interface{}) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		ok:   mk(color.FgGreen, color.Bold),
		err:  mk(color.FgRed, color.Bold),
		warn: mk(color.FgYellow),
		bold: mk(color.Bold),
	}
}

// WriteText writes a human-readable report.
func WriteText(w io.Writer, s core.RunSummary, opts TextOptions) error {
	p := newPalette(opts.Color)
	tw := &textWriter{w: w}

	tw.printf("%s %s\n", p.bold("Workbook:"), s.Workbook)
	if s.RunID != "" {
		tw.printf("%s %s\n", p.bold("Run:"), s.RunID)
	}
	status := p.ok("VALID")
	if !s.Valid {
		status = p.err("INVALID")
	}
	tw.printf("%s %s (%d errors, %d warnings)\n", p.bold("Result:"), status, s.TotalErrors, s.TotalWarnings)

	if len(s.Structure.Errors)+len(s.Structure.Warnings) > 0 {
		tw.printf("\n%s\n", p.bold("Workbook"))
		for _, m := range s.Structure.Errors {
			tw.printf("  %s %s\n", p.err("error:"), m)
		}
		for _, m := range s.Structure.Warnings {
			tw.printf("  %s %s\n", p.warn("warning:"), m)
		}
	}

	for _, r := range s.Sheets {
		if opts.Quiet && len(r.Result.Errors)+len(r.Result.Warnings) == 0 {
			continue
		}
		mark := p.ok("ok")
		if len(r.Result.Errors) > 0 {
			mark = p.err("FAIL")
		}
		tw.printf("\n[%s] %s (%d rows)\n", mark, p.bold(r.Sheet), r.Rows)
		for _, m := range r.Result.Errors {
			tw.printf("  %s %s\n", p.err("error:"), m)
		}
		for _, m := range r.Result.Warnings {
			tw.printf("  %s %s\n", p.warn("warning:"), m)
		}
	}
	return tw.err
}

// textWriter keeps the first write error so callers can print freely.
type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) printf(format string, args ...interface{}) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

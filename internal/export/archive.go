// Package export writes validated seed workbooks in the archive format read by
// the platform import: a zip holding the run summary, the reference lists and
// one JSON array of records per content sheet.
package export

import (
	"archive/zip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/JonMunkholm/seedcheck/internal/core"
	"github.com/JonMunkholm/seedcheck/internal/schema"
	"github.com/JonMunkholm/seedcheck/internal/workbook"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Archive entry names.
const (
	SummaryEntry   = "summary.json"
	ReferenceEntry = "reference.json"
	SheetDir       = "sheets/"
)

// DateLayout is the text form of date cells in sheet entries.
const DateLayout = "2006-01-02 15:04:05"

// Archive is a core.Exporter writing a zip to an io.Writer.
type Archive struct {
	w      io.Writer
	layout *schema.Registry
}

// NewArchive returns an exporter writing to w. A nil layout uses the embedded
// seed layout.
func NewArchive(w io.Writer, layout *schema.Registry) *Archive {
	if layout == nil {
		layout = schema.Default()
	}
	return &Archive{w: w, layout: layout}
}

// Export implements core.Exporter.
func (a *Archive) Export(ctx context.Context, wb *workbook.Workbook, ref core.Reference, summary core.RunSummary) error {
	zw := zip.NewWriter(a.w)

	if err := writeJSON(zw, SummaryEntry, summary); err != nil {
		return err
	}
	if err := writeJSON(zw, ReferenceEntry, ref); err != nil {
		return err
	}

	for _, sheet := range a.layout.Content() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("export %s: %w", sheet.Name, err)
		}
		t, ok := wb.Table(sheet.Name)
		if !ok {
			continue
		}
		if err := writeJSON(zw, EntryName(sheet.Name), Records(t, ref)); err != nil {
			return err
		}
	}
	return zw.Close()
}

// Records converts a table into JSON-ready records keyed by column. Annual
// grade rows whose subject is not a known subject are left out.
func Records(t *workbook.Table, ref core.Reference) []map[string]any {
	keep := func(workbook.Row) bool { return true }
	if t.Sheet == schema.SheetAnnualGrades && ref.Has(core.CategorySubjects) {
		keep = func(r workbook.Row) bool {
			return ref.Contains(core.CategorySubjects, r.Get(schema.ColSubjectName).String())
		}
	}

	out := make([]map[string]any, 0, t.Len())
	for _, row := range t.Rows {
		if !keep(row) {
			continue
		}
		rec := make(map[string]any, len(t.Columns))
		for _, c := range t.Columns {
			rec[c] = jsonValue(row.Get(c))
		}
		out = append(out, rec)
	}
	return out
}

// jsonValue maps a cell to its JSON form. Dates always carry a clock so
// date columns read the same whichever way the cell was typed.
func jsonValue(v workbook.Value) any {
	switch v.Kind() {
	case workbook.KindNull:
		return nil
	case workbook.KindNumber:
		f, _ := v.Float()
		return f
	case workbook.KindDate:
		t, _ := v.Time()
		return t.Format(DateLayout)
	default:
		return v.String()
	}
}

// EntryName returns the archive path of a sheet: lower case, accents
// stripped, spaces as underscores.
func EntryName(sheet string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, sheet)
	if err != nil {
		plain = sheet
	}
	plain = strings.ToLower(strings.Join(strings.Fields(plain), "_"))
	return SheetDir + plain + ".json"
}

func writeJSON(zw *zip.Writer, name string, v any) error {
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

package workbook

// reader.go materialises an xlsx file into a Workbook.
//
// Every sheet follows the same physical layout: row 1 is free-form
// instructions, row 2 is the header, data starts on row 3. Header handling
// mirrors the seed templates:
//   - repeated headers get a ".N" suffix in order of appearance
//     ("Nombres", "Nombres.1", "Nombres.2")
//   - a blank header cell becomes "Unnamed: <index>"
//   - rows with no values at all are dropped
//
// Numeric cells become number values and shared/inline strings stay text, so
// a document number typed as text keeps its leading zeros. Numeric cells with
// a date number format become date values.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/seedcheck/internal/schema"
	"github.com/hashicorp/go-multierror"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrEmptyWorkbook indicates the file contains no sheets at all.
	ErrEmptyWorkbook = errors.New("workbook has no sheets")

	// ErrUnreadable wraps failures to open the file as xlsx.
	ErrUnreadable = errors.New("workbook cannot be read")
)

// Open reads the workbook at path.
func Open(ctx context.Context, path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, filepath.Base(path), err)
	}
	defer f.Close()

	return fromFile(ctx, filepath.Base(path), f)
}

// Read reads a workbook from r. name is used for reporting only.
func Read(ctx context.Context, name string, r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, name, err)
	}
	defer f.Close()

	return fromFile(ctx, name, f)
}

func fromFile(ctx context.Context, name string, f *excelize.File) (*Workbook, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}

	sr := newSheetReader(f)
	wb := New(name)
	var errs *multierror.Error
	for _, sheet := range sheets {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		t, err := sr.read(sheet)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("sheet %q: %w", sheet, err))
			continue
		}
		wb.Add(t)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, name, err)
	}
	return wb, nil
}

// sheetReader types cells for one open file. Date detection depends on the
// cell style, so style lookups are cached per style index.
type sheetReader struct {
	f         *excelize.File
	date1904  bool
	dateStyle map[int]bool
}

func newSheetReader(f *excelize.File) *sheetReader {
	sr := &sheetReader{f: f, dateStyle: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		sr.date1904 = *props.Date1904
	}
	return sr
}

// read reads one sheet using the fixed header offset.
func (sr *sheetReader) read(sheet string) (*Table, error) {
	rows, err := sr.f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	headerIdx := schema.HeaderRow - 1
	if len(rows) <= headerIdx {
		// No header row: the sheet exists but has no structure.
		return NewTable(sheet), nil
	}

	width := len(rows[headerIdx])
	for _, r := range rows[headerIdx+1:] {
		if len(r) > width {
			width = len(r)
		}
	}
	header := make([]string, width)
	copy(header, rows[headerIdx])
	t := NewTable(sheet, mangleHeader(header)...)

	for i, raw := range rows[headerIdx+1:] {
		physical := schema.HeaderRow + 1 + i
		values := make([]Value, len(t.Columns))
		blank := true
		for j := 0; j < len(raw) && j < len(values); j++ {
			v, err := sr.cellValue(sheet, j+1, physical, raw[j])
			if err != nil {
				return nil, err
			}
			values[j] = v
			if !v.IsNull() {
				blank = false
			}
		}
		if blank {
			continue
		}
		t.Append(values...)
	}
	return t, nil
}

// mangleHeader renames blank and repeated header cells. A name that collides
// with an earlier one, including an earlier generated name, gets the next
// free ".N" suffix.
func mangleHeader(cells []string) []string {
	out := make([]string, len(cells))
	counts := make(map[string]int, len(cells))

	for i, c := range cells {
		name := schema.Normalize(c)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		n := counts[name]
		for n > 0 {
			counts[name] = n + 1
			name = name + "." + strconv.Itoa(n)
			n = counts[name]
		}
		counts[name] = n + 1
		out[i] = name
	}
	return out
}

// cellValue types a raw cell using the cell's stored type and style.
func (sr *sheetReader) cellValue(sheet string, col, row int, raw string) (Value, error) {
	if strings.TrimSpace(raw) == "" {
		return Null, nil
	}
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return Null, err
	}
	typ, err := sr.f.GetCellType(sheet, axis)
	if err != nil {
		return Null, err
	}

	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula, excelize.CellTypeError:
		return Text(raw), nil
	case excelize.CellTypeBool:
		if raw == "1" {
			return Text("TRUE"), nil
		}
		return Text("FALSE"), nil
	case excelize.CellTypeDate:
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return Date(t), nil
		}
		if t, ok := ParseDate(raw); ok {
			return Date(t), nil
		}
		return Text(raw), nil
	default:
		// Numbers are usually stored without an explicit type attribute.
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return Text(raw), nil
		}
		isDate, err := sr.isDateCell(sheet, axis)
		if err != nil {
			return Null, err
		}
		if isDate && n > 0 {
			if t, err := excelize.ExcelDateToTime(n, sr.date1904); err == nil {
				return Date(t), nil
			}
		}
		return Number(n), nil
	}
}

// isDateCell reports whether the cell's number format displays a date.
func (sr *sheetReader) isDateCell(sheet, axis string) (bool, error) {
	idx, err := sr.f.GetCellStyle(sheet, axis)
	if err != nil {
		return false, err
	}
	if idx == 0 {
		return false, nil
	}
	if isDate, ok := sr.dateStyle[idx]; ok {
		return isDate, nil
	}

	style, err := sr.f.GetStyle(idx)
	if err != nil {
		return false, err
	}
	isDate := isDateNumFmt(style.NumFmt)
	if style.CustomNumFmt != nil {
		isDate = isDateFormat(*style.CustomNumFmt)
	}
	sr.dateStyle[idx] = isDate
	return isDate, nil
}

// isDateNumFmt reports whether a built-in number format id is a date or time
// format: 14-22 and 45-47.
func isDateNumFmt(id int) bool {
	return (id >= 14 && id <= 22) || (id >= 45 && id <= 47)
}

// isDateFormat reports whether a custom number format code displays a date.
// Quoted literals, escaped characters and bracketed sections such as colours
// and locales are ignored, except elapsed-time markers like "[h]". A lone "m"
// counts only when the code has no hours or seconds, since it is minutes
// otherwise.
func isDateFormat(code string) bool {
	var b, section strings.Builder
	inQuote, inBracket := false, false
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case inQuote:
			inQuote = c != '"'
		case inBracket:
			if c != ']' {
				section.WriteByte(c)
				continue
			}
			inBracket = false
			if s := strings.ToLower(section.String()); s != "" && strings.Trim(s, "hms") == "" {
				b.WriteByte('h')
			}
		case c == '"':
			inQuote = true
		case c == '[':
			inBracket = true
			section.Reset()
		case c == '\\' || c == '_' || c == '*':
			i++
		default:
			b.WriteByte(c)
		}
	}
	plain := strings.ToLower(b.String())
	if strings.ContainsAny(plain, "yd") {
		return true
	}
	return strings.Contains(plain, "m") && !strings.ContainsAny(plain, "hs")
}

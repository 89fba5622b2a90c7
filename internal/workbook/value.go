package workbook

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
)

// Kind identifies the scalar type held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindText
	KindNumber
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	default:
		return "null"
	}
}

// Value is a single cell. The zero Value is null.
type Value struct {
	kind Kind
	text string
	num  float64
	date time.Time
}

// Null is the absent value.
var Null = Value{}

// Text returns a text value. Surrounding whitespace is dropped and a blank
// string is null.
func Text(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return Null
	}
	return Value{kind: KindText, text: s}
}

// Number returns a numeric value. NaN is null.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Null
	}
	return Value{kind: KindNumber, num: f}
}

// Date returns a date value. The zero time is null.
func Date(t time.Time) Value {
	if t.IsZero() {
		return Null
	}
	return Value{kind: KindDate, date: t}
}

// Kind reports the value's type.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the cell is absent.
func (v Value) IsNull() bool { return v.kind == KindNull }

// String returns the canonical string form used for every equality
// comparison: integral numbers carry no decimal part (2024.0 is "2024"),
// dates without a clock are "2006-01-02", null is "".
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return formatNumber(v.num)
	case KindDate:
		if h, m, s := v.date.Clock(); h == 0 && m == 0 && s == 0 && v.date.Nanosecond() == 0 {
			return v.date.Format("2006-01-02")
		}
		return v.date.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}

func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Float returns the numeric reading of the value. Text is parsed; dates and
// null are not numbers.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindText:
		f, err := cast.ToFloat64E(v.text)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// dateLayouts are tried in order when a text cell is read as a date.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
}

// Time returns the date reading of the value. Numbers are taken as Excel
// serial dates; text is matched against the accepted layouts.
func (v Value) Time() (time.Time, bool) {
	switch v.kind {
	case KindDate:
		return v.date, true
	case KindNumber:
		if v.num <= 0 {
			return time.Time{}, false
		}
		t, err := excelize.ExcelDateToTime(v.num, false)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	case KindText:
		return ParseDate(v.text)
	default:
		return time.Time{}, false
	}
}

// ParseDate parses s with the accepted date layouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

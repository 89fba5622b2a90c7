// Package schema holds the fixed layout of the seed workbook: the required
// sheet names, in validation order, and the ordered header of each sheet.
//
// The layout is embedded from seed.yaml and parsed once at init. It carries
// no behaviour beyond lookup.
package schema

import (
	_ "embed"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// HeaderRow is the 1-based physical row that holds column headers.
// Row 1 of every sheet is reserved for instructional text.
const HeaderRow = 2

//go:embed seed.yaml
var seedYAML []byte

// Sheet describes one required sheet.
type Sheet struct {
	Name         string   `yaml:"name" json:"name"`
	Instructions bool     `yaml:"instructions,omitempty" json:"instructions,omitempty"`
	Columns      []string `yaml:"columns,omitempty" json:"columns,omitempty"`
}

// Registry is an ordered, read-only catalog of sheets.
type Registry struct {
	sheets []Sheet
	index  map[string]int
}

type document struct {
	Sheets []Sheet `yaml:"sheets"`
}

var defaultRegistry = mustLoad(seedYAML)

// Default returns the registry built from the embedded seed layout.
func Default() *Registry {
	return defaultRegistry
}

func mustLoad(data []byte) *Registry {
	reg, err := Load(data)
	if err != nil {
		panic(fmt.Sprintf("schema: embedded layout is invalid: %v", err))
	}
	return reg
}

// Load parses a YAML layout. Names are NFC-normalised so that headers typed
// on different platforms compare equal.
func Load(data []byte) (*Registry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	if len(doc.Sheets) == 0 {
		return nil, fmt.Errorf("layout defines no sheets")
	}

	reg := &Registry{
		sheets: make([]Sheet, 0, len(doc.Sheets)),
		index:  make(map[string]int, len(doc.Sheets)),
	}
	for _, s := range doc.Sheets {
		s.Name = Normalize(s.Name)
		if s.Name == "" {
			return nil, fmt.Errorf("sheet %d has no name", len(reg.sheets)+1)
		}
		if _, dup := reg.index[s.Name]; dup {
			return nil, fmt.Errorf("sheet %q defined twice", s.Name)
		}
		if !s.Instructions && len(s.Columns) == 0 {
			return nil, fmt.Errorf("sheet %q has no columns", s.Name)
		}
		cols := make([]string, len(s.Columns))
		seen := make(map[string]bool, len(s.Columns))
		for i, c := range s.Columns {
			c = Normalize(c)
			if seen[c] {
				return nil, fmt.Errorf("sheet %q repeats column %q", s.Name, c)
			}
			seen[c] = true
			cols[i] = c
		}
		s.Columns = cols
		reg.index[s.Name] = len(reg.sheets)
		reg.sheets = append(reg.sheets, s)
	}
	return reg, nil
}

// Normalize trims surrounding whitespace and applies Unicode NFC.
func Normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Sheets returns every required sheet in validation order.
func (r *Registry) Sheets() []Sheet {
	out := make([]Sheet, len(r.sheets))
	copy(out, r.sheets)
	return out
}

// Names returns the required sheet names in order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.sheets))
	for i, s := range r.sheets {
		names[i] = s.Name
	}
	return names
}

// Content returns the sheets whose rows are validated, i.e. all but the
// instructions sheet.
func (r *Registry) Content() []Sheet {
	out := make([]Sheet, 0, len(r.sheets))
	for _, s := range r.sheets {
		if !s.Instructions {
			out = append(out, s)
		}
	}
	return out
}

// Sheet looks up a sheet by name.
func (r *Registry) Sheet(name string) (Sheet, bool) {
	i, ok := r.index[Normalize(name)]
	if !ok {
		return Sheet{}, false
	}
	return r.sheets[i], true
}

// Columns returns the required header of a sheet, or nil if unknown.
func (r *Registry) Columns(name string) []string {
	s, ok := r.Sheet(name)
	if !ok {
		return nil
	}
	out := make([]string, len(s.Columns))
	copy(out, s.Columns)
	return out
}

// IsRequired reports whether name is one of the required sheets.
func (r *Registry) IsRequired(name string) bool {
	_, ok := r.index[Normalize(name)]
	return ok
}

// Len returns the number of required sheets.
func (r *Registry) Len() int {
	return len(r.sheets)
}

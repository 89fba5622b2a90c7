package core

import (
	"fmt"
	"sync"

	"github.com/JonMunkholm/seedcheck/internal/schema"
)

var (
	registry   = make(map[string]RuleSet)
	registryMu sync.RWMutex
)

// Register adds a sheet's rule set to the registry.
// Panics if the sheet is already registered or is not a content sheet of the
// seed layout.
func Register(rs RuleSet) {
	registryMu.Lock()
	defer registryMu.Unlock()

	rs.Sheet = schema.Normalize(rs.Sheet)
	sheet, ok := schema.Default().Sheet(rs.Sheet)
	if !ok || sheet.Instructions {
		panic(fmt.Sprintf("rule set for unknown sheet: %s", rs.Sheet))
	}
	if _, exists := registry[rs.Sheet]; exists {
		panic(fmt.Sprintf("rule set already registered: %s", rs.Sheet))
	}

	registry[rs.Sheet] = rs
}

// Get returns the rule set for a sheet.
// Returns false if not found.
func Get(sheet string) (RuleSet, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	rs, ok := registry[schema.Normalize(sheet)]
	return rs, ok
}

// All returns every registered rule set in the seed layout's sheet order.
func All() []RuleSet {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]RuleSet, 0, len(registry))
	for _, s := range schema.Default().Content() {
		if rs, ok := registry[s.Name]; ok {
			result = append(result, rs)
		}
	}
	return result
}

// Validators returns the validator of every registered sheet, keyed by sheet
// name.
func Validators() map[string]Validator {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make(map[string]Validator, len(registry))
	for name, rs := range registry {
		out[name] = rs.Validate
	}
	return out
}

// RuleSetCount returns the number of registered rule sets.
func RuleSetCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

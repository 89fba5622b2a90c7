// Package tables registers the content rule set of every seed sheet with the
// core registry. Import this package to ensure all sheets are registered.
package tables

// This file exists to provide a single import point.
// Each sheet group file uses init() to register its rule sets.

// Package core provides the validation engine for seed workbooks.
// This package has no UI dependencies and can be used by any frontend.
package core

import (
	"fmt"
	"time"

	"github.com/JonMunkholm/seedcheck/internal/workbook"
)

// Severity classifies a finding. Errors block export; warnings never do.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Finding is one message produced by a check.
type Finding struct {
	Severity Severity
	Message  string
}

// ValidationResult is the outcome of validating one sheet.
// Valid is true exactly when Errors is empty.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Validator checks one sheet's table against the reference context.
// Every per-sheet validator has this shape; ref may be empty.
type Validator func(t *workbook.Table, ref Reference) ValidationResult

// SheetReport is the per-sheet breakdown of a run.
type SheetReport struct {
	Sheet          string           `json:"sheet"`
	Exists         bool             `json:"exists"`
	Rows           int              `json:"rows"`
	MissingColumns []string         `json:"missing_columns,omitempty"`
	ExtraColumns   []string         `json:"extra_columns,omitempty"`
	OutOfOrder     bool             `json:"out_of_order,omitempty"`
	Result         ValidationResult `json:"result"`
}

// RunSummary aggregates one validation run.
type RunSummary struct {
	RunID         string           `json:"run_id"`
	Workbook      string           `json:"workbook"`
	StartedAt     time.Time        `json:"started_at"`
	Duration      time.Duration    `json:"duration_ns"`
	MissingSheets []string         `json:"missing_sheets"`
	ExtraSheets   []string         `json:"extra_sheets"`
	Structure     ValidationResult `json:"structure"`
	Sheets        []SheetReport    `json:"sheets"`
	TotalErrors   int              `json:"total_errors"`
	TotalWarnings int              `json:"total_warnings"`
	ValidSheets   []string         `json:"valid_sheets"`
	InvalidSheets []string         `json:"invalid_sheets"`
	Valid         bool             `json:"valid"`
}

// Sheet returns the report for the named sheet.
func (s RunSummary) Sheet(name string) (SheetReport, bool) {
	for _, r := range s.Sheets {
		if r.Sheet == name {
			return r, true
		}
	}
	return SheetReport{}, false
}

// findings accumulates messages in the order checks emit them.
type findings struct {
	errors   []string
	warnings []string
}

func (f *findings) add(sev Severity, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if sev == SeverityWarning {
		f.warnings = append(f.warnings, msg)
		return
	}
	f.errors = append(f.errors, msg)
}

func (f *findings) errorf(format string, args ...any) { f.add(SeverityError, format, args...) }

func (f *findings) warnf(format string, args ...any) { f.add(SeverityWarning, format, args...) }

func (f *findings) addAll(list []Finding) {
	for _, fd := range list {
		f.add(fd.Severity, "%s", fd.Message)
	}
}

func (f *findings) merge(r ValidationResult) {
	f.errors = append(f.errors, r.Errors...)
	f.warnings = append(f.warnings, r.Warnings...)
}

func (f *findings) result() ValidationResult {
	errs := make([]string, len(f.errors))
	copy(errs, f.errors)
	warns := make([]string, len(f.warnings))
	copy(warns, f.warnings)
	return ValidationResult{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warns,
	}
}

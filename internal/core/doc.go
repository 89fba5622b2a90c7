// Package core provides the validation engine for seed workbooks.
//
// This package is the heart of seedcheck, containing all validation logic
// independent of any UI or transport layer. It can be used by web handlers,
// the CLI, or tests without modification.
//
// # Architecture
//
// A run proceeds in a fixed order:
//
//  1. Sheet completeness is checked against the layout in package schema
//  2. The [Reference] context is built once from the source sheets
//  3. Each content sheet, in layout order, gets a column comparison and then
//     its [Validator]
//  4. Per-sheet results are folded into a [RunSummary] by [Summarize]
//
// The run is valid when the summary carries no errors. Warnings never affect
// validity.
//
// # Rule Sets
//
// Validators are declarative. Each sheet registers a [RuleSet] at init time
// using [Register], composed of generic checks:
//
//	core.Register(core.RuleSet{
//	    Sheet: "Áreas",
//	    Checks: []core.Check{
//	        core.Unique{Columns: []string{"Nombre del área"}, Label: "area name"},
//	    },
//	})
//
// The seed sheets are registered by package tables. Sheet-specific logic that
// does not fit a generic check is expressed with [CheckFunc].
//
// # Export Gate
//
// [Service.Export] refuses to run an [Exporter] over a workbook with errors
// unless the caller forces it and the service allows forcing. Forced exports
// are logged and flagged in the returned [ExportDecision].
//
// # Error Handling
//
// Data-quality problems are findings, never Go errors. Failures around a run
// are mapped to user-facing messages with codes using [MapError].
package core

package core

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/JonMunkholm/seedcheck/internal/logging"
	"github.com/JonMunkholm/seedcheck/internal/schema"
	"github.com/JonMunkholm/seedcheck/internal/workbook"
	"github.com/google/uuid"
)

// DefaultParseTimeout is the maximum duration for reading one workbook.
var DefaultParseTimeout = 2 * time.Minute

// Service runs validation of seed workbooks.
type Service struct {
	layout       *schema.Registry
	validators   map[string]Validator
	parseTimeout time.Duration
	allowForce   bool
}

// Option configures a Service.
type Option func(*Service)

// WithValidators replaces the registered validators. Sheets without a
// validator get structural checks only.
func WithValidators(v map[string]Validator) Option {
	return func(s *Service) {
		s.validators = make(map[string]Validator, len(v))
		for name, fn := range v {
			s.validators[schema.Normalize(name)] = fn
		}
	}
}

// WithParseTimeout bounds workbook reading.
func WithParseTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.parseTimeout = d
		}
	}
}

// WithForceExport allows exports to override a failed validation.
func WithForceExport(allowed bool) Option {
	return func(s *Service) {
		s.allowForce = allowed
	}
}

// NewService creates a new Service for the given layout. A nil layout uses
// the embedded seed layout.
func NewService(layout *schema.Registry, opts ...Option) *Service {
	if layout == nil {
		layout = schema.Default()
	}
	s := &Service{
		layout:       layout,
		validators:   Validators(),
		parseTimeout: DefaultParseTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Layout returns the sheet layout the service validates against.
func (s *Service) Layout() *schema.Registry {
	return s.layout
}

// ValidateFile reads the workbook at path and validates it.
func (s *Service) ValidateFile(ctx context.Context, path string) (RunSummary, *workbook.Workbook, error) {
	parseCtx, cancel := context.WithTimeout(ctx, s.parseTimeout)
	defer cancel()

	wb, err := workbook.Open(parseCtx, path)
	if err != nil {
		return RunSummary{}, nil, fmt.Errorf("open workbook: %w", err)
	}
	return s.Validate(ctx, wb), wb, nil
}

// ValidateReader reads a workbook from r and validates it. name is used for
// reporting only.
func (s *Service) ValidateReader(ctx context.Context, name string, r io.Reader) (RunSummary, *workbook.Workbook, error) {
	parseCtx, cancel := context.WithTimeout(ctx, s.parseTimeout)
	defer cancel()

	wb, err := workbook.Read(parseCtx, name, r)
	if err != nil {
		return RunSummary{}, nil, fmt.Errorf("read workbook: %w", err)
	}
	return s.Validate(ctx, wb), wb, nil
}

// Validate runs the full validation of wb: sheet completeness, then per
// content sheet in layout order the column comparison followed by the sheet's
// validator. The reference context is built once before any sheet is checked.
// ctx only carries logging fields; a run always completes.
func (s *Service) Validate(ctx context.Context, wb *workbook.Workbook) RunSummary {
	start := time.Now()
	runID := uuid.New().String()
	logger := logging.WithFields(ctx, "run_id", runID, "workbook", wb.Name)
	logger.Debug("validation started", "sheets", wb.Len())

	missing, extra := CheckSheets(s.layout, wb.SheetNames())
	ref := BuildReference(wb)

	var structure findings
	for _, name := range missing {
		if sh, _ := s.layout.Sheet(name); sh.Instructions {
			structure.errorf("missing required sheet: %s", name)
		}
	}
	for _, name := range extra {
		structure.warnf("unexpected sheet: %s", name)
	}

	content := s.layout.Content()
	reports := make([]SheetReport, 0, len(content))
	for _, sheet := range content {
		report := s.validateSheet(ctx, runID, sheet, wb, ref)
		logger.Debug("sheet validated",
			"sheet", report.Sheet,
			"rows", report.Rows,
			"errors", len(report.Result.Errors),
			"warnings", len(report.Result.Warnings),
		)
		reports = append(reports, report)
	}

	summary := Summarize(structure.result(), reports)
	summary.RunID = runID
	summary.Workbook = wb.Name
	summary.StartedAt = start
	summary.MissingSheets = nonNil(missing)
	summary.ExtraSheets = nonNil(extra)
	summary.Duration = time.Since(start)

	logger.Info("validation completed",
		"valid", summary.Valid,
		"errors", summary.TotalErrors,
		"warnings", summary.TotalWarnings,
		"duration_ms", summary.Duration.Milliseconds(),
	)
	return summary
}

func (s *Service) validateSheet(ctx context.Context, runID string, sheet schema.Sheet, wb *workbook.Workbook, ref Reference) SheetReport {
	report := SheetReport{Sheet: sheet.Name}

	t, ok := wb.Table(sheet.Name)
	if !ok {
		var f findings
		f.errorf("missing required sheet: %s", sheet.Name)
		report.Result = f.result()
		return report
	}
	report.Exists = true
	report.Rows = t.Len()

	cols := CompareColumns(sheet.Columns, t.Columns)
	report.MissingColumns = cols.Missing
	report.ExtraColumns = cols.Extra
	report.OutOfOrder = cols.OutOfOrder

	var f findings
	f.addAll(cols.Findings())
	if v, ok := s.validators[sheet.Name]; ok {
		f.merge(s.runValidator(ctx, runID, sheet.Name, v, t, ref))
	}
	report.Result = f.result()
	return report
}

// runValidator calls v, turning a panic into a single error for the sheet.
func (s *Service) runValidator(ctx context.Context, runID, sheet string, v Validator, t *workbook.Table, ref Reference) (res ValidationResult) {
	defer func() {
		if r := recover(); r != nil {
			logging.WithFields(ctx, "run_id", runID).Error("panic in validator",
				"sheet", sheet,
				"panic", r,
			)
			res = ValidationResult{
				Errors:   []string{fmt.Sprintf("internal error while validating sheet: %v", r)},
				Warnings: []string{},
			}
		}
	}()
	return v(t, ref)
}

// Summarize folds per-sheet reports into run totals. The workbook-level
// structure result counts towards the totals but not towards any sheet.
func Summarize(structure ValidationResult, reports []SheetReport) RunSummary {
	summary := RunSummary{
		Structure:     structure,
		Sheets:        make([]SheetReport, len(reports)),
		TotalErrors:   len(structure.Errors),
		TotalWarnings: len(structure.Warnings),
		ValidSheets:   []string{},
		InvalidSheets: []string{},
		MissingSheets: []string{},
		ExtraSheets:   []string{},
	}
	copy(summary.Sheets, reports)

	for _, r := range reports {
		summary.TotalErrors += len(r.Result.Errors)
		summary.TotalWarnings += len(r.Result.Warnings)
		if len(r.Result.Errors) == 0 {
			summary.ValidSheets = append(summary.ValidSheets, r.Sheet)
		} else {
			summary.InvalidSheets = append(summary.InvalidSheets, r.Sheet)
		}
	}
	summary.Valid = summary.TotalErrors == 0
	return summary
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

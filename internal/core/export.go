package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/JonMunkholm/seedcheck/internal/logging"
	"github.com/JonMunkholm/seedcheck/internal/workbook"
)

var (
	// ErrExportBlocked is returned when a workbook with validation errors is
	// exported without force.
	ErrExportBlocked = errors.New("export blocked: workbook has validation errors")

	// ErrForceDisabled is returned when force is requested but not allowed.
	ErrForceDisabled = errors.New("forced export is disabled")
)

// Exporter transforms a validated workbook into the downstream format.
// It receives the validated tables and the reference context of the run.
type Exporter interface {
	Export(ctx context.Context, wb *workbook.Workbook, ref Reference, summary RunSummary) error
}

// ExportDecision records whether an export went ahead and why.
type ExportDecision struct {
	Allowed bool `json:"allowed"`
	Forced  bool `json:"forced"`
	Errors  int  `json:"errors"`
}

// Gate decides whether summary permits export. A valid run always passes; an
// invalid one passes only with force, and the decision says so.
func Gate(summary RunSummary, force bool) (ExportDecision, error) {
	d := ExportDecision{Errors: summary.TotalErrors}
	switch {
	case summary.Valid:
		d.Allowed = true
	case force:
		d.Allowed = true
		d.Forced = true
	default:
		return d, fmt.Errorf("%w (%d errors)", ErrExportBlocked, summary.TotalErrors)
	}
	return d, nil
}

// Export runs exp over wb when summary permits it.
func (s *Service) Export(ctx context.Context, wb *workbook.Workbook, summary RunSummary, force bool, exp Exporter) (ExportDecision, error) {
	if force && !summary.Valid && !s.allowForce {
		return ExportDecision{Errors: summary.TotalErrors}, ErrForceDisabled
	}
	d, err := Gate(summary, force)
	if err != nil {
		return d, err
	}

	logger := logging.WithFields(ctx, "run_id", summary.RunID, "workbook", summary.Workbook)
	if d.Forced {
		logger.Warn("forced export of workbook with errors", "errors", summary.TotalErrors)
	}

	if err := exp.Export(ctx, wb, BuildReference(wb), summary); err != nil {
		return d, fmt.Errorf("export: %w", err)
	}
	logger.Info("export completed", "forced", d.Forced)
	return d, nil
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/JonMunkholm/seedcheck/internal/core"
	"github.com/JonMunkholm/seedcheck/internal/export"
	"github.com/JonMunkholm/seedcheck/internal/report"
	"github.com/JonMunkholm/seedcheck/internal/workbook"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// errInvalid reports a completed run that found errors.
var errInvalid = errors.New("workbook is invalid")

type validateOptions struct {
	format  string
	out     string
	export  string
	force   bool
	quiet   bool
	noColor bool
}

func newValidateCmd(a *app) *cobra.Command {
	var opts validateOptions

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a seed workbook",
		Long: `Validate a seed workbook and print the findings.

The command exits with status 1 when the workbook has errors. With --export the
validated workbook is written as a zip archive, which is refused for an invalid
workbook unless --force is given and forced exports are enabled.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.validate(cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.format, "format", "f", "text", "Output format: text, json, csv")
	f.StringVarP(&opts.out, "out", "o", "", "Write the report to a file instead of stdout")
	f.StringVar(&opts.export, "export", "", "Write the export archive to this zip file")
	f.BoolVar(&opts.force, "force", false, "Export even when the workbook has errors")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "Only list sheets with findings (text format)")
	f.BoolVar(&opts.noColor, "no-color", false, "Disable coloured output")
	return cmd
}

func (a *app) validate(cmd *cobra.Command, path string, opts validateOptions) error {
	write, err := reportWriter(opts)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	summary, wb, err := a.service.ValidateFile(ctx, path)
	if err != nil {
		return core.NewUserError(err)
	}

	w := cmd.OutOrStdout()
	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := write(w, summary); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if opts.export != "" {
		if err := a.exportArchive(cmd, opts, wb, summary); err != nil {
			return err
		}
	}

	if !summary.Valid {
		return errInvalid
	}
	return nil
}

// reportWriter picks the writer for the requested format. Colour is only used
// for text written to a terminal.
func reportWriter(opts validateOptions) (func(io.Writer, core.RunSummary) error, error) {
	switch opts.format {
	case "text":
		text := report.TextOptions{
			Color: !opts.noColor && opts.out == "" && !color.NoColor,
			Quiet: opts.quiet,
		}
		return func(w io.Writer, s core.RunSummary) error {
			return report.WriteText(w, s, text)
		}, nil
	case "json":
		return report.WriteJSON, nil
	case "csv":
		return report.WriteCSV, nil
	default:
		return nil, fmt.Errorf("invalid format: %s (must be text, json, or csv)", opts.format)
	}
}

func (a *app) exportArchive(cmd *cobra.Command, opts validateOptions, wb *workbook.Workbook, summary core.RunSummary) error {
	f, err := os.Create(opts.export)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}

	decision, err := a.service.Export(cmd.Context(), wb, summary, opts.force, export.NewArchive(f, a.service.Layout()))
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close archive: %w", cerr)
	}
	if err != nil {
		os.Remove(opts.export)
		if errors.Is(err, core.ErrExportBlocked) || errors.Is(err, core.ErrForceDisabled) {
			msg := core.MapError(err)
			fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("Export skipped: %s. %s", msg.Message, msg.Action))
			return nil
		}
		return err
	}

	status := "written"
	if decision.Forced {
		status = color.YellowString("written (forced with %d errors)", decision.Errors)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Export %s: %s\n", status, opts.export)
	return nil
}

package main

import (
	"io"
	"log/slog"

	"github.com/JonMunkholm/seedcheck/internal/config"
	"github.com/JonMunkholm/seedcheck/internal/core"
	"github.com/JonMunkholm/seedcheck/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once the root has run.
type app struct {
	cfg     *config.Config
	service *core.Service
	logs    io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "seedcheck",
		Short: "Validate school seed workbooks",
		Long: `seedcheck checks a filled-in seed workbook against the template layout
and the per-sheet rules, and reports every error and warning it finds.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.boot()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logs != nil {
				a.logs.Close()
			}
		},
	}

	root.AddCommand(
		newValidateCmd(a),
		newSheetsCmd(a),
		newServeCmd(a),
	)
	return root
}

// boot loads .env and the configuration, then sets up logging and the
// validation service.
func (a *app) boot() error {
	// A missing .env file is fine; variables may come from the environment.
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	a.logs = logging.Setup(logging.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	if envErr == nil {
		slog.Debug("loaded .env file")
	}

	a.cfg = cfg
	a.service = core.NewService(nil,
		core.WithParseTimeout(cfg.Upload.ParseTimeout),
		core.WithForceExport(cfg.Export.AllowForce),
	)
	slog.Debug("rule sets registered", "count", core.RuleSetCount())
	for _, rs := range core.All() {
		slog.Debug("rule set", "sheet", rs.Sheet, "checks", len(rs.Checks), "optional", rs.Optional)
	}
	return nil
}

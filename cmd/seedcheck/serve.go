package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/seedcheck/internal/web"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the validation web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	slog.Info("configuration loaded",
		"addr", a.cfg.Server.Addr(),
		"upload_max_file_size", a.cfg.Upload.MaxFileSize,
		"export_allow_force", a.cfg.Export.AllowForce,
	)

	server := web.NewServer(a.service, a.cfg)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil {
		return err
	}
	<-done
	slog.Info("server stopped")
	return nil
}

package tables_test

import (
	"io"
	"log/slog"
	"os"
	"testing"
)

// Runs log through slog.Default; keep test output to failures.
func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

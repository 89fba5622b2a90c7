// Command seedcheck validates school seed workbooks before they are imported.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/JonMunkholm/seedcheck/internal/core"
	_ "github.com/JonMunkholm/seedcheck/internal/core/tables" // Register all sheet rule sets
	"github.com/fatih/color"
)

// Exit codes. An invalid workbook is not an operational failure.
const (
	exitInvalid = 1
	exitFailure = 2
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, errInvalid) {
			os.Exit(exitInvalid)
		}
		fmt.Fprintln(os.Stderr, color.RedString("Error: %s", errorMessage(err)))
		os.Exit(exitFailure)
	}
}

// errorMessage renders err for the terminal. Known failures show their code
// and suggested action followed by the technical detail.
func errorMessage(err error) string {
	var uerr *core.UserError
	if errors.As(err, &uerr) {
		err = uerr.Technical
	}
	if !core.IsUserFacing(err) {
		return err.Error()
	}
	return fmt.Sprintf("%s\n  detail: %v", core.FormatUserError(err), err)
}

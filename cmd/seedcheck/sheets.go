package main

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/seedcheck/internal/core"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newSheetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sheets",
		Short: "List the expected sheets and their columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			bold := color.New(color.Bold)
			for _, sh := range a.service.Layout().Sheets() {
				note := ""
				switch rs, ok := core.Get(sh.Name); {
				case sh.Instructions:
					note = " (instructions)"
				case ok && rs.Optional:
					note = " (optional content)"
				}
				fmt.Fprintf(w, "%s%s\n", bold.Sprint(sh.Name), note)
				if len(sh.Columns) > 0 {
					fmt.Fprintf(w, "  %s\n", strings.Join(sh.Columns, " | "))
				}
			}
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/sheetsmith/internal/equality"
	"github.com/ShayCichocki/sheetsmith/internal/render"
)

var compareCmd = &cobra.Command{
	Use:   "compare <first> <last> <first> <last>",
	Short: "Compare two names under each person model",
	Long: `Build two people from the given names as each person model and show
how each equality rule treats them:

  mutable  equal only when they are the same instance
  record   equal when both names match exactly
  value    equal when both names match ignoring case

Examples:
  sheetsmith compare Jack Johnson jack JOHNSON`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		report := equality.Compare(
			equality.Name{First: args[0], Last: args[1]},
			equality.Name{First: args[2], Last: args[3]},
		)
		fmt.Fprint(cmd.OutOrStdout(), render.Report(report))
		return nil
	},
}

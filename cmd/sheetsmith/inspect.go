package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/sheetsmith/internal/config"
	"github.com/ShayCichocki/sheetsmith/internal/render"
	"github.com/ShayCichocki/sheetsmith/internal/workbook"
)

var inspectJSON bool

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Show the contents of a workbook",
	Long: `Show each sheet of a workbook with its cells, formulas and their
evaluated values, merged ranges and tables.

The file defaults to the resolved output path, so running inspect right
after generate shows the workbook just written.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Print the summary as JSON")
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		path = resolvedOutput(cfg)
	}

	summary, err := workbook.Inspect(path)
	if err != nil {
		return err
	}

	if inspectJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}
	fmt.Fprint(cmd.OutOrStdout(), render.Summary(summary))
	return nil
}

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/sheetsmith/internal/config"
	"github.com/ShayCichocki/sheetsmith/internal/sample"
	"github.com/ShayCichocki/sheetsmith/pkg/models"
)

var initForce bool

// dataFileName is the employee file written by init.
const dataFileName = "employees.yaml"

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Create a project config and employee data file",
	Long: `Initialize a directory for use with sheetsmith.

This command creates:
  - .sheetsmith.yaml, a project config pointing at the data file
  - employees.yaml, the built-in sample employees ready to edit

Existing files are kept unless --force is given.

Examples:
  sheetsmith init              # Initialize current directory
  sheetsmith init ./reports    # Initialize specific directory
  sheetsmith init --force      # Overwrite existing files`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing files")
}

func runInit(cmd *cobra.Command, args []string) error {
	targetDir := "."
	if len(args) > 0 {
		targetDir = args[0]
	}

	absPath, err := filepath.Abs(targetDir)
	if err != nil {
		return fmt.Errorf("resolving absolute path: %w", err)
	}

	if err := os.MkdirAll(absPath, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", absPath, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initializing sheetsmith in %s...\n\n", absPath)

	dataPath := filepath.Join(absPath, dataFileName)
	wrote, err := writeDataFile(dataPath, initForce)
	if err != nil {
		printStatus(out, "✗", "Could not write "+dataFileName, color.FgRed)
		return err
	}
	if wrote {
		printStatus(out, "✓", "Created "+dataFileName, color.FgGreen)
	} else {
		printStatus(out, "⚠", dataFileName+" exists, kept (use --force to overwrite)", color.FgYellow)
	}

	configPath := filepath.Join(absPath, config.ProjectConfigName)
	wrote, err = writeProjectConfig(configPath, initForce)
	if err != nil {
		printStatus(out, "✗", "Could not write "+config.ProjectConfigName, color.FgRed)
		return err
	}
	if wrote {
		printStatus(out, "✓", "Created "+config.ProjectConfigName, color.FgGreen)
	} else {
		printStatus(out, "⚠", config.ProjectConfigName+" exists, kept (use --force to overwrite)", color.FgYellow)
	}

	fmt.Fprintf(out, "\n%s sheetsmith initialization complete!\n\n", color.GreenString("✓"))
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Edit the employees:")
	fmt.Fprintf(out, "     %s\n", dataPath)
	fmt.Fprintln(out, "  2. Generate the workbook:")
	fmt.Fprintln(out, "     sheetsmith generate")
	fmt.Fprintln(out, "     # or: sheetsmith watch (regenerate on every save)")
	return nil
}

// writeDataFile writes the built-in employees as YAML. It reports false
// when the file exists and force is not set.
func writeDataFile(path string, force bool) (bool, error) {
	if exists(path) && !force {
		return false, nil
	}
	data, err := sample.MarshalEmployees(models.SampleEmployees())
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

// writeProjectConfig writes a .sheetsmith.yaml template.
func writeProjectConfig(path string, force bool) (bool, error) {
	if exists(path) && !force {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(projectConfigTemplate()), 0644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

func projectConfigTemplate() string {
	d := config.Default()
	var b strings.Builder
	b.WriteString("# sheetsmith project configuration\n")
	b.WriteString("# This file overrides defaults from ~/.config/sheetsmith/config.yaml\n\n")
	b.WriteString("sample:\n")
	fmt.Fprintf(&b, "  data_file: %s\n", dataFileName)
	fmt.Fprintf(&b, "  # sheet_name: %s\n", d.Sample.SheetName)
	fmt.Fprintf(&b, "  # title: %s\n", d.Sample.Title)
	fmt.Fprintf(&b, "  # title_font_size: %g\n\n", d.Sample.TitleFontSize)
	b.WriteString("# output:\n")
	b.WriteString("#   path: ./file.xlsx\n\n")
	b.WriteString("# history:\n")
	b.WriteString("#   enabled: true\n\n")
	b.WriteString("# watch:\n")
	fmt.Fprintf(&b, "#   debounce: %s\n", d.Watch.Debounce)
	return b.String()
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// printStatus prints a status line with color
func printStatus(w io.Writer, symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Fprintf(w, "%s %s\n", c.Sprint(symbol), message)
}

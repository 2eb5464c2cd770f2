package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ShayCichocki/sheetsmith/internal/config"
	"github.com/ShayCichocki/sheetsmith/internal/sample"
	"github.com/ShayCichocki/sheetsmith/internal/state"
	"github.com/ShayCichocki/sheetsmith/pkg/models"
)

var (
	generateOutput    string
	generateData      string
	generateNoHistory bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the sample workbook",
	Long: `Generate the sample workbook and save it as .xlsx.

The output path is taken from, in order: --output, SHEETSMITH_OUTPUT,
output.path in the config file, then file.xlsx in the temp directory.

Employee rows come from --data or sample.data_file when set, otherwise the
two built-in employees are used.

Examples:
  sheetsmith                          # Generate to the default path
  sheetsmith generate -o report.xlsx  # Generate to report.xlsx
  sheetsmith generate --data employees.yaml`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	addGenerateFlags(generateCmd)
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Path of the workbook to write")
	cmd.Flags().StringVar(&generateData, "data", "", "YAML file of employees to use instead of the built-in rows")
	cmd.Flags().BoolVar(&generateNoHistory, "no-history", false, "Do not record this generation in the history database")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	req := generateRequest{
		Output:    generateOutput,
		DataFile:  generateData,
		NoHistory: generateNoHistory,
	}
	res, err := generate(cmd.Context(), cfg, req, log)
	if err != nil {
		return err
	}
	printGenerated(cmd.OutOrStdout(), res)
	return nil
}

// generateRequest holds the per-invocation overrides of a generation.
type generateRequest struct {
	Output    string
	DataFile  string
	NoHistory bool
}

// generateResult is what a generation produced and where its inputs came from.
type generateResult struct {
	*sample.Result
	OutputSource config.OutputSource
	DataSource   string
	GenerationID string
}

// generate resolves the output path and data, writes the workbook, and
// records it in history when enabled.
func generate(ctx context.Context, cfg *config.Config, req generateRequest, log *zap.Logger) (*generateResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	path, source := config.ResolveOutputPath(req.Output, cfg)
	if err := config.ValidateOutputPath(path); err != nil {
		return nil, fmt.Errorf("output %s: %w", path, err)
	}
	log.Debug("resolved output path", zap.String("path", path), zap.String("source", string(source)))

	dataFile := config.ExpandPath(req.DataFile)
	if dataFile == "" {
		dataFile = cfg.Sample.DataFile
	}

	var employees []models.Employee
	dataSource := state.SourceBuiltin
	if dataFile != "" {
		loaded, err := sample.LoadEmployees(dataFile)
		if err != nil {
			return nil, err
		}
		employees = loaded
		if abs, err := filepath.Abs(dataFile); err == nil {
			dataFile = abs
		}
		dataSource = dataFile
	}

	res, err := sample.CreateSample(ctx, path, sample.Options{
		SheetName:     cfg.Sample.SheetName,
		Title:         cfg.Sample.Title,
		TitleFontSize: cfg.Sample.TitleFontSize,
		Employees:     employees,
		Logger:        log,
	})
	if err != nil {
		return nil, fmt.Errorf("create workbook: %w", err)
	}

	out := &generateResult{Result: res, OutputSource: source, DataSource: dataSource}

	if cfg.History.Enabled && !req.NoHistory {
		id, err := recordHistory(cfg, res, dataSource)
		if err != nil {
			// The workbook is already on disk; history is best effort.
			log.Warn("record history failed", zap.Error(err))
		} else {
			out.GenerationID = id
		}
	}

	return out, nil
}

func recordHistory(cfg *config.Config, res *sample.Result, source string) (string, error) {
	store, err := openHistory(cfg)
	if err != nil {
		return "", err
	}
	defer store.Close()

	g := &state.Generation{
		Path:       res.Path,
		Sheets:     res.Sheets,
		TableSheet: res.TableSheet,
		Rows:       res.Rows,
		Source:     source,
		CreatedAt:  res.CreatedAt,
	}
	if err := store.RecordGeneration(g); err != nil {
		return "", err
	}
	return g.ID, nil
}

func printGenerated(w io.Writer, res *generateResult) {
	fmt.Fprintf(w, "%s Wrote %s (%s)\n", color.GreenString("✓"), res.Path, res.OutputSource)
	fmt.Fprintf(w, "  Sheets: %v\n", res.Sheets)
	fmt.Fprintf(w, "  Table sheet: %s (%d rows from %s)\n", res.TableSheet, res.Rows, res.DataSource)
	if res.GenerationID != "" {
		fmt.Fprintf(w, "  History id: %s\n", res.GenerationID)
	}
}

// resolvedOutput returns the output path generate would use with no flag.
func resolvedOutput(cfg *config.Config) string {
	path, _ := config.ResolveOutputPath("", cfg)
	return path
}

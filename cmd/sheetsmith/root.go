package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ShayCichocki/sheetsmith/internal/config"
	"github.com/ShayCichocki/sheetsmith/internal/logging"
)

var (
	logLevel string
	logFile  string
)

var rootCmd = &cobra.Command{
	Use:   "sheetsmith",
	Short: "Sample Excel workbook generator",
	Long: `sheetsmith builds a small Excel workbook and records what it wrote.

With no arguments it runs generate: a "Sample Sheet" holding a greeting and
a formula, plus a timestamp-named sheet with a titled employee table.

Core capabilities:
- Generates the sample workbook to a configurable .xlsx path
- Inspects any workbook: cells, formulas, merged ranges and tables
- Compares person models under identity, record and value equality
- Keeps a history of generated workbooks
- Regenerates when the employee data file changes`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runGenerate,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")
	addGenerateFlags(rootCmd)

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration and builds the logger, applying the persistent
// log flags over the configured values.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	opts := logging.Options{Path: cfg.Log.Path, Level: cfg.Log.Level}
	if logLevel != "" {
		opts.Level = logLevel
	}
	if logFile != "" {
		opts.Path = config.ExpandPath(logFile)
	}

	log, err := logging.New(opts)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

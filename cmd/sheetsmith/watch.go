package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ShayCichocki/sheetsmith/internal/config"
	"github.com/ShayCichocki/sheetsmith/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the workbook when the data file changes",
	Long: `Generate the workbook once, then regenerate it every time the
employee data file is saved. Stops on Ctrl-C.

The data file is taken from --data or sample.data_file.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	addGenerateFlags(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	dataFile := config.ExpandPath(generateData)
	if dataFile == "" {
		dataFile = cfg.Sample.DataFile
	}
	if dataFile == "" {
		return errors.New("watch needs a data file: pass --data or set sample.data_file")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	req := generateRequest{Output: generateOutput, DataFile: dataFile, NoHistory: generateNoHistory}
	out := cmd.OutOrStdout()

	regenerate := func(ctx context.Context, path string) error {
		res, err := generate(ctx, cfg, req, log)
		if err != nil {
			fmt.Fprintf(out, "%s %v\n", color.RedString("✗"), err)
			return err
		}
		printGenerated(out, res)
		return nil
	}

	// A bad data file at startup is reported but does not stop the watch,
	// so it can be fixed in place.
	_ = regenerate(ctx, dataFile)

	w, err := watch.New(dataFile, regenerate, watch.Options{Debounce: cfg.Watch.Debounce, Logger: log})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Watching %s (Ctrl-C to stop)\n", w.Path())

	if err := w.Run(ctx); err != nil {
		return err
	}
	log.Info("watch stopped", zap.String("path", w.Path()))
	return nil
}

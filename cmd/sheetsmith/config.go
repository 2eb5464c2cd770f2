package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/sheetsmith/internal/config"
	"github.com/ShayCichocki/sheetsmith/internal/logging"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify sheetsmith configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/sheetsmith/config.yaml
Project-specific overrides can be placed in .sheetsmith.yaml`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 2 {
			if err := saveConfigValue(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(out, "Set %s = %s\n", args[0], args[1])
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if len(args) == 0 {
			displayAllConfig(out, cfg)
			return nil
		}
		value, err := getConfigValue(cfg, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, value)
		return nil
	},
}

// saveConfigValue validates one key and writes only that key to the user
// config. Project and environment overrides never reach the user file.
func saveConfigValue(key, value string) error {
	scratch := config.Default()
	if err := setConfigValue(scratch, key, value); err != nil {
		return err
	}
	key = strings.ToLower(key)
	if err := config.SetUserValue(key, scratch.Settings()[key]); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}

// configKeys lists every key in display order.
var configKeys = []string{
	"output.path",
	"sample.sheet_name",
	"sample.title",
	"sample.title_font_size",
	"sample.data_file",
	"log.path",
	"log.level",
	"history.enabled",
	"history.db_path",
	"watch.debounce",
}

// displayAllConfig prints all configuration values.
func displayAllConfig(w io.Writer, cfg *config.Config) {
	for _, key := range configKeys {
		value, _ := getConfigValue(cfg, key)
		fmt.Fprintf(w, "%s: %s\n", key, value)
	}
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch strings.ToLower(key) {
	case "output.path":
		return cfg.Output.Path, nil
	case "sample.sheet_name":
		return cfg.Sample.SheetName, nil
	case "sample.title":
		return cfg.Sample.Title, nil
	case "sample.title_font_size":
		return strconv.FormatFloat(cfg.Sample.TitleFontSize, 'g', -1, 64), nil
	case "sample.data_file":
		return orNotSet(cfg.Sample.DataFile), nil
	case "log.path":
		return orNotSet(cfg.Log.Path), nil
	case "log.level":
		return cfg.Log.Level, nil
	case "history.enabled":
		return strconv.FormatBool(cfg.History.Enabled), nil
	case "history.db_path":
		return cfg.HistoryDBPath(), nil
	case "watch.debounce":
		return cfg.Watch.Debounce.String(), nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "output.path":
		if err := config.ValidateOutputPath(config.ExpandPath(value)); err != nil {
			return fmt.Errorf("invalid value for output.path: %w", err)
		}
		cfg.Output.Path = value
	case "sample.sheet_name":
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("sample.sheet_name must not be empty")
		}
		cfg.Sample.SheetName = value
	case "sample.title":
		cfg.Sample.Title = value
	case "sample.title_font_size":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("invalid value for title_font_size: %q", value)
		}
		cfg.Sample.TitleFontSize = f
	case "sample.data_file":
		cfg.Sample.DataFile = value
	case "log.path":
		cfg.Log.Path = value
	case "log.level":
		if _, err := logging.ParseLevel(value); err != nil {
			return err
		}
		cfg.Log.Level = value
	case "history.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for history.enabled: %w", err)
		}
		cfg.History.Enabled = b
	case "history.db_path":
		cfg.History.DBPath = value
	case "watch.debounce":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for watch.debounce: %w", err)
		}
		cfg.Watch.Debounce = d
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

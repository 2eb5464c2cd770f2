package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Environment variables that override config keys.
const (
	EnvOutput   = "SHEETSMITH_OUTPUT"
	EnvLogLevel = "SHEETSMITH_LOG_LEVEL"
	EnvDataFile = "SHEETSMITH_DATA_FILE"
)

// DefaultOutputName is the file name used when no output path is configured.
const DefaultOutputName = "file.xlsx"

// ErrNoOutputPath is returned when no output path is configured.
var ErrNoOutputPath = errors.New("no output path configured")

// ErrNotXLSX is returned for output paths without an .xlsx extension.
var ErrNotXLSX = errors.New("output path must end in .xlsx")

// OutputSource represents where the output path was taken from.
type OutputSource string

const (
	OutputSourceFlag    OutputSource = "flag"
	OutputSourceEnv     OutputSource = "environment"
	OutputSourceConfig  OutputSource = "config_file"
	OutputSourceDefault OutputSource = "default"
)

// DefaultOutputPath returns file.xlsx in the system temp directory.
func DefaultOutputPath() string {
	return filepath.Join(os.TempDir(), DefaultOutputName)
}

// ResolveOutputPath returns the output path and where it came from.
// It checks in order: flag, environment variable, config file, default.
func ResolveOutputPath(flag string, cfg *Config) (string, OutputSource) {
	if flag != "" {
		return ExpandPath(flag), OutputSourceFlag
	}

	if env := os.Getenv(EnvOutput); env != "" {
		return ExpandPath(env), OutputSourceEnv
	}

	if cfg != nil && cfg.Output.Path != "" && (cfg.outputFromFile || cfg.Output.Path != DefaultOutputPath()) {
		return cfg.Output.Path, OutputSourceConfig
	}

	return DefaultOutputPath(), OutputSourceDefault
}

// ValidateOutputPath performs basic validation on an output path.
// It checks the shape only; whether the location is writable is left to the save.
func ValidateOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrNoOutputPath
	}

	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ErrNotXLSX
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return errors.New("output path is a directory")
	}

	return nil
}

// ExpandPath expands ${VAR} references and a leading "~/".
func ExpandPath(p string) string {
	if p == "" {
		return ""
	}
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

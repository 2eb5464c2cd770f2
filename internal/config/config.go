// Package config handles configuration loading and management for sheetsmith.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for sheetsmith.
type Config struct {
	Output  OutputConfig  `mapstructure:"output"`
	Sample  SampleConfig  `mapstructure:"sample"`
	Log     LogConfig     `mapstructure:"log"`
	History HistoryConfig `mapstructure:"history"`
	Watch   WatchConfig   `mapstructure:"watch"`

	// outputFromFile records that a config file set output.path, even to
	// the default value.
	outputFromFile bool
}

// OutputConfig holds where generated workbooks are written.
type OutputConfig struct {
	Path string `mapstructure:"path"`
}

// SampleConfig holds the content settings of the sample workbook.
type SampleConfig struct {
	SheetName     string  `mapstructure:"sheet_name"`
	Title         string  `mapstructure:"title"`
	TitleFontSize float64 `mapstructure:"title_font_size"`
	// DataFile is an optional YAML employee list replacing the built-in rows.
	DataFile string `mapstructure:"data_file"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// HistoryConfig holds generation history settings.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DBPath  string `mapstructure:"db_path"`
}

// WatchConfig holds data file watcher settings.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (SHEETSMITH_OUTPUT, SHEETSMITH_LOG_LEVEL, SHEETSMITH_DATA_FILE)
// 2. Project config (.sheetsmith.yaml in current directory or parent)
// 3. User config (~/.config/sheetsmith/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getUserConfigDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	projectConfig := findProjectConfig()
	projectDataFile := false
	if projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
			projectDataFile = projectViper.IsSet("sample.data_file")
		}
	}

	outputFromFile := v.InConfig("output.path")

	bindEnv(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.outputFromFile = outputFromFile
	expandPaths(cfg)

	// A relative data file in the project config is relative to that file.
	if projectDataFile && os.Getenv(EnvDataFile) == "" {
		cfg.Sample.DataFile = resolveRelative(filepath.Dir(projectConfig), cfg.Sample.DataFile)
	}

	return cfg, nil
}

// resolveRelative joins a relative path onto dir.
func resolveRelative(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	outputFromFile := v.InConfig("output.path")

	bindEnv(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.outputFromFile = outputFromFile
	expandPaths(cfg)

	return cfg, nil
}

// SaveTo writes every setting of cfg to path.
func SaveTo(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	for key, value := range cfg.Settings() {
		v.Set(key, value)
	}

	return v.WriteConfig()
}

// SetUserValue stores a single key in the user config file, leaving the
// file's other keys as they are.
func SetUserValue(key string, value any) error {
	return SetValueIn(GetUserConfigPath(), key, value)
}

// SetValueIn stores a single key in the config file at path. Only that
// file is read: project overrides and environment variables are not
// written back.
func SetValueIn(path, key string, value any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config from %s: %w", path, err)
		}
	}

	v.Set(key, value)
	return v.WriteConfig()
}

// Settings returns cfg as dotted keys with file-ready values.
func (c *Config) Settings() map[string]any {
	return map[string]any{
		"output.path":            c.Output.Path,
		"sample.sheet_name":      c.Sample.SheetName,
		"sample.title":           c.Sample.Title,
		"sample.title_font_size": c.Sample.TitleFontSize,
		"sample.data_file":       c.Sample.DataFile,
		"log.path":               c.Log.Path,
		"log.level":              c.Log.Level,
		"history.enabled":        c.History.Enabled,
		"history.db_path":        c.History.DBPath,
		"watch.debounce":         c.Watch.Debounce.String(),
	}
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// ProjectConfigName is the file name searched for in the working directory
// and its parents.
const ProjectConfigName = ".sheetsmith.yaml"

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("output.path", d.Output.Path)

	v.SetDefault("sample.sheet_name", d.Sample.SheetName)
	v.SetDefault("sample.title", d.Sample.Title)
	v.SetDefault("sample.title_font_size", d.Sample.TitleFontSize)
	v.SetDefault("sample.data_file", "")

	v.SetDefault("log.path", "")
	v.SetDefault("log.level", d.Log.Level)

	v.SetDefault("history.enabled", d.History.Enabled)
	v.SetDefault("history.db_path", "")

	v.SetDefault("watch.debounce", d.Watch.Debounce.String())
}

// bindEnv maps environment variables onto config keys.
func bindEnv(v *viper.Viper) {
	v.BindEnv("output.path", EnvOutput)
	v.BindEnv("log.level", EnvLogLevel)
	v.BindEnv("sample.data_file", EnvDataFile)
}

// getUserConfigDir returns the XDG config directory for sheetsmith.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "sheetsmith")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "sheetsmith")
	}
	return filepath.Join(home, ".config", "sheetsmith")
}

// getUserDataDir returns the XDG data directory for sheetsmith.
func getUserDataDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "sheetsmith")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".local", "share", "sheetsmith")
	}
	return filepath.Join(home, ".local", "share", "sheetsmith")
}

// findProjectConfig searches for .sheetsmith.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ProjectConfigName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// expandPaths expands ${VAR} references and a leading ~ in path settings.
func expandPaths(cfg *Config) {
	cfg.Output.Path = ExpandPath(cfg.Output.Path)
	cfg.Sample.DataFile = ExpandPath(cfg.Sample.DataFile)
	cfg.Log.Path = ExpandPath(cfg.Log.Path)
	cfg.History.DBPath = ExpandPath(cfg.History.DBPath)
}

// HistoryDBPath returns the configured history database path, or the
// default under the XDG data directory.
func (c *Config) HistoryDBPath() string {
	if c.History.DBPath != "" {
		return c.History.DBPath
	}
	return filepath.Join(getUserDataDir(), "history.db")
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Path: DefaultOutputPath(),
		},
		Sample: SampleConfig{
			SheetName:     "Sample Sheet",
			Title:         "Employees",
			TitleFontSize: 16,
		},
		Log: LogConfig{
			Level: "info",
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Watch: WatchConfig{
			Debounce: 250 * time.Millisecond,
		},
	}
}

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ShayCichocki/sheetsmith/internal/config"
	"github.com/ShayCichocki/sheetsmith/internal/sample"
)

func TestParseAge(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"30d", 30 * 24 * time.Hour, false},
		{"0d", 0, false},
		{"36h", 36 * time.Hour, false},
		{" 90m ", 90 * time.Minute, false},
		{"xd", 0, true},
		{"-1d", 0, true},
		{"-5h", 0, true},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAge(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseAge(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseAge(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestConfigValues(t *testing.T) {
	cfg := config.Default()

	sets := map[string]string{
		"output.path":            "/tmp/report.xlsx",
		"sample.sheet_name":      "Intro",
		"sample.title":           "Staff",
		"sample.title_font_size": "18",
		"sample.data_file":       "/data/employees.yaml",
		"log.level":              "debug",
		"history.enabled":        "false",
		"history.db_path":        "/data/history.db",
		"watch.debounce":         "1s",
	}
	for key, value := range sets {
		if err := setConfigValue(cfg, key, value); err != nil {
			t.Fatalf("setConfigValue(%s) failed: %v", key, err)
		}
		got, err := getConfigValue(cfg, key)
		if err != nil {
			t.Fatalf("getConfigValue(%s) failed: %v", key, err)
		}
		if got != value {
			t.Errorf("%s = %q, want %q", key, got, value)
		}
	}
}

func TestSetConfigValue_Invalid(t *testing.T) {
	cfg := config.Default()

	tests := []struct{ key, value string }{
		{"output.path", "/tmp/report.csv"},
		{"sample.sheet_name", "  "},
		{"sample.title_font_size", "big"},
		{"sample.title_font_size", "-1"},
		{"log.level", "loud"},
		{"history.enabled", "maybe"},
		{"watch.debounce", "soon"},
		{"no.such_key", "x"},
	}
	for _, tt := range tests {
		if err := setConfigValue(cfg, tt.key, tt.value); err == nil {
			t.Errorf("setConfigValue(%s, %q) expected error", tt.key, tt.value)
		}
	}
}

func TestConfigSet_WritesOnlyThatKey(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.EnvOutput, "/tmp/from-env.xlsx")
	t.Setenv(config.EnvDataFile, "")

	project := t.TempDir()
	projectConfig := "sample:\n  data_file: employees.yaml\n  title: ProjectTitle\n"
	if err := os.WriteFile(filepath.Join(project, config.ProjectConfigName), []byte(projectConfig), 0644); err != nil {
		t.Fatal(err)
	}
	testChdir(t, project)

	var buf bytes.Buffer
	configCmd.SetOut(&buf)
	defer configCmd.SetOut(nil)

	if err := configCmd.RunE(configCmd, []string{"log.level", "debug"}); err != nil {
		t.Fatalf("config set failed: %v", err)
	}

	data, err := os.ReadFile(config.GetUserConfigPath())
	if err != nil {
		t.Fatalf("user config not written: %v", err)
	}
	written := string(data)
	if !strings.Contains(written, "level: debug") {
		t.Errorf("expected log level in user config, got:\n%s", written)
	}
	for _, leaked := range []string{"from-env", "ProjectTitle", "employees.yaml"} {
		if strings.Contains(written, leaked) {
			t.Errorf("user config picked up %q:\n%s", leaked, written)
		}
	}
}

func TestConfigSet_Invalid(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := configCmd.RunE(configCmd, []string{"log.level", "loud"}); err == nil {
		t.Fatal("expected error for invalid log level")
	}
	if _, err := os.Stat(config.GetUserConfigPath()); !os.IsNotExist(err) {
		t.Error("user config should not be written for an invalid value")
	}
}

func TestDisplayAllConfig(t *testing.T) {
	var buf bytes.Buffer
	displayAllConfig(&buf, config.Default())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(configKeys) {
		t.Fatalf("got %d lines, want %d", len(lines), len(configKeys))
	}
	if !strings.Contains(buf.String(), "sample.data_file: (not set)") {
		t.Errorf("expected unset data file, got:\n%s", buf.String())
	}
}

func TestRunInit(t *testing.T) {
	t.Setenv(config.EnvDataFile, "")
	dir := filepath.Join(t.TempDir(), "project")
	initForce = false

	var buf bytes.Buffer
	initCmd.SetOut(&buf)
	defer initCmd.SetOut(nil)

	if err := runInit(initCmd, []string{dir}); err != nil {
		t.Fatalf("runInit failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, dataFileName))
	if err != nil {
		t.Fatalf("data file not written: %v", err)
	}
	employees, err := sample.ParseEmployees(data)
	if err != nil {
		t.Fatalf("data file does not parse: %v", err)
	}
	if len(employees) != 2 || employees[0].ID != "EMP-001" {
		t.Errorf("unexpected employees: %+v", employees)
	}

	cfg, err := config.LoadFromPath(filepath.Join(dir, config.ProjectConfigName))
	if err != nil {
		t.Fatalf("project config does not load: %v", err)
	}
	if cfg.Sample.DataFile != dataFileName {
		t.Errorf("data_file = %q, want %q", cfg.Sample.DataFile, dataFileName)
	}
}

func TestRunInit_KeepsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, dataFileName)
	if err := os.WriteFile(dataPath, []byte("employees:\n  - id: X\n    name: Kept\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	initCmd.SetOut(&buf)
	defer initCmd.SetOut(nil)

	initForce = false
	if err := runInit(initCmd, []string{dir}); err != nil {
		t.Fatalf("runInit failed: %v", err)
	}
	data, _ := os.ReadFile(dataPath)
	if !strings.Contains(string(data), "Kept") {
		t.Error("existing data file was overwritten without --force")
	}
	if !strings.Contains(buf.String(), "--force") {
		t.Errorf("expected a hint about --force, got:\n%s", buf.String())
	}

	initForce = true
	defer func() { initForce = false }()
	if err := runInit(initCmd, []string{dir}); err != nil {
		t.Fatalf("runInit --force failed: %v", err)
	}
	data, _ = os.ReadFile(dataPath)
	if strings.Contains(string(data), "Kept") {
		t.Error("data file not overwritten with --force")
	}
}

func TestInspectCommand_ResolvedOutput(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	testChdir(t, t.TempDir())
	out := filepath.Join(t.TempDir(), "inspect.xlsx")
	t.Setenv(config.EnvOutput, out)

	if _, err := sample.CreateSample(context.Background(), out, sample.Options{}); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	var buf bytes.Buffer
	inspectCmd.SetOut(&buf)
	defer inspectCmd.SetOut(nil)

	if err := runInspect(inspectCmd, nil); err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Sample Sheet") {
		t.Errorf("output missing sheet name:\n%s", buf.String())
	}
}

func TestCompareCommand(t *testing.T) {
	var buf bytes.Buffer
	compareCmd.SetOut(&buf)
	defer compareCmd.SetOut(nil)

	if err := compareCmd.RunE(compareCmd, []string{"Jack", "Johnson", "jack", "JOHNSON"}); err != nil {
		t.Fatalf("compare failed: %v", err)
	}

	for _, want := range []string{"mutable", "record", "value", "JOHNSON"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	defer versionCmd.SetOut(nil)

	versionCmd.Run(versionCmd, nil)

	if got := buf.String(); got != "sheetsmith version "+Version()+"\n" {
		t.Errorf("unexpected version output %q", got)
	}
	if Version() == "" {
		t.Error("version is empty")
	}
}

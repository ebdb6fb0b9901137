package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("GRIDDLE_HOME", tmpDir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HomeDir != tmpDir {
		t.Errorf("HomeDir = %q, want %q", cfg.HomeDir, tmpDir)
	}
	if cfg.Display.InferSchema != "safe" {
		t.Errorf("Display.InferSchema = %q, want safe", cfg.Display.InferSchema)
	}
	if cfg.History.Capacity != 1000 {
		t.Errorf("History.Capacity = %d, want 1000", cfg.History.Capacity)
	}
	if cfg.Input.Format != "auto" {
		t.Errorf("Input.Format = %q, want auto", cfg.Input.Format)
	}

	expectedHistory := filepath.Join(tmpDir, "history")
	if cfg.HistoryPath() != expectedHistory {
		t.Errorf("HistoryPath() = %q, want %q", cfg.HistoryPath(), expectedHistory)
	}
}

func TestLoadWithConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("GRIDDLE_HOME", tmpDir)

	configContent := `
[display]
infer_schema = "off"
null_text = "NULL"

[history]
capacity = 50

[input]
format = "tsv"
no_header = true
`
	configPath := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Display.InferSchema != "off" {
		t.Errorf("Display.InferSchema = %q, want off", cfg.Display.InferSchema)
	}
	if cfg.Display.NullText != "NULL" {
		t.Errorf("Display.NullText = %q, want NULL", cfg.Display.NullText)
	}
	if cfg.History.Capacity != 50 {
		t.Errorf("History.Capacity = %d, want 50", cfg.History.Capacity)
	}
	if cfg.Input.Format != "tsv" {
		t.Errorf("Input.Format = %q, want tsv", cfg.Input.Format)
	}
	if !cfg.Input.NoHeader {
		t.Error("Input.NoHeader = false, want true")
	}
}

func TestLoadExplicitPathNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.toml")
	if err == nil {
		t.Fatal("Load with explicit nonexistent path should return error")
	}
	if got := err.Error(); !strings.Contains(got, "config file not found") {
		t.Errorf("error = %q, want it to contain %q", got, "config file not found")
	}
}

func TestLoadExplicitPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "griddle.toml")
	if err := os.WriteFile(configPath, []byte("[history]\ncapacity = 7\n"), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load(%q) failed: %v", configPath, err)
	}
	if cfg.History.Capacity != 7 {
		t.Errorf("History.Capacity = %d, want 7", cfg.History.Capacity)
	}
}

func TestHistoryPathOverride(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("GRIDDLE_HOME", tmpDir)

	historyPath := filepath.Join(tmpDir, "custom-history")
	configContent := "[history]\nfile = \"" + filepath.ToSlash(historyPath) + "\"\n"
	configPath := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if filepath.Clean(cfg.HistoryPath()) != filepath.Clean(historyPath) {
		t.Errorf("HistoryPath() = %q, want %q", cfg.HistoryPath(), historyPath)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("failed to get user home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"just tilde", "~", home},
		{"tilde with slash and path", "~/foo", filepath.Join(home, "foo")},
		{"relative path unchanged", "relative/path", "relative/path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expandPath(tt.input)
			if got != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDefaultHomeExpandsTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("failed to get user home dir: %v", err)
	}

	t.Setenv("GRIDDLE_HOME", "~/.griddle")
	got := DefaultHome()
	expected := filepath.Join(home, ".griddle")
	if got != expected {
		t.Errorf("DefaultHome() = %q, want %q", got, expected)
	}
}

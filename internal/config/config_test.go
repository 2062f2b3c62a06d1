package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

// isolate points every lookup at an empty temp tree.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", dir)
	for _, k := range []string{"FLOATODO_FILE", "FLOATODO_LOG_FILE", "FLOATODO_LOG_LEVEL", "FLOATODO_NO_COLOR", "NO_COLOR"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.File != "todos.json" {
		t.Errorf("File = %q, want todos.json", cfg.File)
	}
	if cfg.Placeholder != DefaultPlaceholder {
		t.Errorf("Placeholder = %q", cfg.Placeholder)
	}
	if !cfg.Mouse {
		t.Error("Mouse should default to true")
	}
	if cfg.NoColor {
		t.Error("NoColor should default to false")
	}
}

func TestLoad_ProjectOverridesUser(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "xdg", "floatodo", "config.toml"), `
file = "user.json"
log_level = "debug"
`)
	writeFile(t, filepath.Join(dir, ProjectFileName), `
file = "project.json"
mouse = false
`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.File != "project.json" {
		t.Errorf("File = %q, want project.json", cfg.File)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug (from user file)", cfg.LogLevel)
	}
	if cfg.Mouse {
		t.Error("Mouse should be disabled by project file")
	}
}

func TestLoad_EnvOverridesFiles(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ProjectFileName), `file = "project.json"`)
	t.Setenv("FLOATODO_FILE", "env.json")
	t.Setenv("FLOATODO_NO_COLOR", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.File != "env.json" {
		t.Errorf("File = %q, want env.json", cfg.File)
	}
	if !cfg.NoColor {
		t.Error("NoColor should come from FLOATODO_NO_COLOR")
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ProjectFileName), `file = "project.json"`)
	explicit := filepath.Join(dir, "custom.toml")
	writeFile(t, explicit, `
file = "custom.json"
placeholder = "What next?"
`)

	cfg, err := Load(explicit)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.File != "custom.json" {
		t.Errorf("File = %q, want custom.json", cfg.File)
	}
	if cfg.Placeholder != "What next?" {
		t.Errorf("Placeholder = %q", cfg.Placeholder)
	}
}

func TestLoad_ExplicitMissing(t *testing.T) {
	dir := isolate(t)
	if _, err := Load(filepath.Join(dir, "nope.toml")); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestLoad_MalformedTOML(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ProjectFileName), `file = [unterminated`)
	if _, err := Load(""); err == nil {
		t.Error("expected error for malformed TOML")
	}
}

func TestLoad_BlankPlaceholderFallsBack(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ProjectFileName), `placeholder = "   "`)
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Placeholder != DefaultPlaceholder {
		t.Errorf("Placeholder = %q, want default", cfg.Placeholder)
	}
}

func TestExpandPath(t *testing.T) {
	dir := isolate(t)
	t.Setenv("TODO_DIR", "/data")

	tests := []struct{ in, want string }{
		{"", ""},
		{"todos.json", "todos.json"},
		{"~", dir},
		{"~/todos.json", filepath.Join(dir, "todos.json")},
		{"$TODO_DIR/todos.json", "/data/todos.json"},
	}
	for _, tt := range tests {
		if got := expandPath(tt.in); got != tt.want {
			t.Errorf("expandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoggingOptions(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "error"
	cfg.LogFormat = "json"
	opts := cfg.LoggingOptions()
	if opts.Level != log.ErrorLevel {
		t.Errorf("Level = %v, want error", opts.Level)
	}
	if opts.Formatter != log.JSONFormatter {
		t.Errorf("Formatter = %v, want json", opts.Formatter)
	}
}

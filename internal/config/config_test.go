package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points the user config dir and working directory at fresh temp dirs.
func isolate(t *testing.T) (userDir, workDir string) {
	t.Helper()
	userDir = t.TempDir()
	workDir = t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", userDir)
	t.Setenv("HOME", userDir)
	for _, k := range []string{"TADA_DATA_DIR", "TADA_STORE", "TADA_THEME", "TADA_LOG_LEVEL", "TADA_LOG_FILE"} {
		t.Setenv(k, "")
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(workDir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
	return userDir, workDir
}

func write(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store != "file" {
		t.Errorf("Store: got %q, want file", cfg.Store)
	}
	if cfg.Theme != "classic" {
		t.Errorf("Theme: got %q, want classic", cfg.Theme)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel: got %q, want warn", cfg.LogLevel)
	}
	if cfg.DataDir != "" || len(cfg.Files) != 0 {
		t.Errorf("unexpected DataDir=%q Files=%v", cfg.DataDir, cfg.Files)
	}
}

func TestPrecedence(t *testing.T) {
	userDir, workDir := isolate(t)
	write(t, filepath.Join(userDir, "tada", FileName), "store = \"sqlite\"\ntheme = \"neon\"\ndata_dir = \"/user\"\n")
	write(t, filepath.Join(workDir, FileName), "theme = \"mono\"\n")
	t.Setenv("TADA_DATA_DIR", "/env")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store != "sqlite" {
		t.Errorf("Store from user file: got %q", cfg.Store)
	}
	if cfg.Theme != "mono" {
		t.Errorf("Theme from project file: got %q", cfg.Theme)
	}
	if cfg.DataDir != "/env" {
		t.Errorf("DataDir from env: got %q", cfg.DataDir)
	}
	if len(cfg.Files) != 2 {
		t.Errorf("Files: got %v", cfg.Files)
	}
}

func TestExplicitFile(t *testing.T) {
	_, workDir := isolate(t)
	write(t, filepath.Join(workDir, FileName), "theme = \"mono\"\n")
	custom := filepath.Join(workDir, "other.toml")
	write(t, custom, "log_level = \"debug\"\n")

	cfg, err := Load(custom)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != "classic" {
		t.Errorf("project file should be skipped, Theme=%q", cfg.Theme)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q", cfg.LogLevel)
	}

	if _, err := Load(filepath.Join(workDir, "missing.toml")); err == nil {
		t.Error("missing explicit file accepted")
	}
}

func TestInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"store", `store = "redis"`, "invalid store"},
		{"theme", `theme = "solarized"`, "invalid theme"},
		{"level", `log_level = "loud"`, "invalid log level"},
		{"unknown key", `colour = "red"`, "unknown keys: colour"},
		{"syntax", `store = `, "loading config file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, workDir := isolate(t)
			write(t, filepath.Join(workDir, FileName), tt.body+"\n")
			_, err := Load("")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load: got %v, want error containing %q", err, tt.want)
			}
		})
	}
}

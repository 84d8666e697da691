package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(body), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestNew_Defaults(t *testing.T) {
	cfg, err := New("/tmp/chores-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dir != "/tmp/chores-test" {
		t.Errorf("expected dir /tmp/chores-test, got %s", cfg.Dir)
	}
	if cfg.UndoWindow != DefaultUndoWindow {
		t.Errorf("expected %v, got %v", DefaultUndoWindow, cfg.UndoWindow)
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := DefaultConfigDir(); got != filepath.Join("/xdg", AppName) {
		t.Errorf("expected /xdg/chores, got %s", got)
	}
}

func TestLoad_NoFile(t *testing.T) {
	t.Setenv(EnvUndoWindow, "")
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.UndoWindow != DefaultUndoWindow || cfg.SeedFile != "" || cfg.AssumeYes {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_File(t *testing.T) {
	t.Setenv(EnvUndoWindow, "")
	dir := t.TempDir()
	writeConfig(t, dir, `
undo_window = "1500ms"
seed_file = "house.json"
assume_yes = true
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.UndoWindow != 1500*time.Millisecond {
		t.Errorf("expected 1.5s, got %v", cfg.UndoWindow)
	}
	if cfg.SeedFile != filepath.Join(dir, "house.json") {
		t.Errorf("expected seed path in config dir, got %s", cfg.SeedFile)
	}
	if !cfg.AssumeYes {
		t.Error("expected assume_yes to be set")
	}
	if !cfg.HasConfigFile() {
		t.Error("expected HasConfigFile to be true")
	}
}

func TestLoad_AbsoluteSeedFile(t *testing.T) {
	t.Setenv(EnvUndoWindow, "")
	dir := t.TempDir()
	writeConfig(t, dir, `seed_file = "/srv/chores.json"`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SeedFile != "/srv/chores.json" {
		t.Errorf("expected absolute seed path kept, got %s", cfg.SeedFile)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `undo_window = "10s"`)
	t.Setenv(EnvUndoWindow, "2s")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.UndoWindow != 2*time.Second {
		t.Errorf("expected env override 2s, got %v", cfg.UndoWindow)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  string
		want string
	}{
		{"bad toml", `undo_window = `, "", "loading config file"},
		{"unknown key", `colour = "blue"`, "", "unknown key: colour"},
		{"bad duration", `undo_window = "soon"`, "", "invalid duration: soon"},
		{"zero duration", `undo_window = "0s"`, "", "duration must be positive"},
		{"bad env", ``, "later", EnvUndoWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvUndoWindow, tt.env)
			dir := t.TempDir()
			writeConfig(t, dir, tt.body)

			_, err := Load(dir)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %q", tt.want, err.Error())
			}
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	t.Setenv(EnvUndoWindow, "")
	dir := t.TempDir()
	writeConfig(t, dir, `undo_window = "10s"`)
	if err := os.WriteFile(filepath.Join(dir, EnvFile), []byte("# local override\nCHORES_UNDO_WINDOW=750ms\n"), 0600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.UndoWindow != 750*time.Millisecond {
		t.Errorf("expected .env override 750ms, got %v", cfg.UndoWindow)
	}

	t.Setenv(EnvUndoWindow, "3s")
	cfg, err = Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.UndoWindow != 3*time.Second {
		t.Errorf("expected process env to win, got %v", cfg.UndoWindow)
	}
}

func TestLoad_BadEnvFileValue(t *testing.T) {
	t.Setenv(EnvUndoWindow, "")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, EnvFile), []byte("CHORES_UNDO_WINDOW=-1s\n"), 0600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	_, err := Load(dir)
	if err == nil || !strings.Contains(err.Error(), ".env: CHORES_UNDO_WINDOW: duration must be positive") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_LogFileRelative(t *testing.T) {
	t.Setenv(EnvUndoWindow, "")
	dir := t.TempDir()
	writeConfig(t, dir, `log_file = "logs/chores.log"`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(dir, "logs", "chores.log"); cfg.LogFile != want {
		t.Errorf("expected %s, got %s", want, cfg.LogFile)
	}
}

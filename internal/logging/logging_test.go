package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_DebugEnabled(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Debug: true})

	logger.Debug("task restored", "id", "3")

	out := buf.String()
	if !strings.Contains(out, "task restored") {
		t.Errorf("expected debug line, got %q", out)
	}
	if !strings.Contains(out, "id=3") {
		t.Errorf("expected key/value pair, got %q", out)
	}
	if !strings.Contains(out, Prefix) {
		t.Errorf("expected prefix %q, got %q", Prefix, out)
	}
}

func TestNew_DefaultSuppressesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{})

	logger.Debug("hidden")
	logger.Info("also hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected debug/info suppressed, got %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("expected warning, got %q", out)
	}
}

func TestNew_QuietOnlyErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Quiet: true})

	logger.Warn("warned")
	logger.Error("failed")

	out := buf.String()
	if strings.Contains(out, "warned") {
		t.Errorf("expected warning suppressed, got %q", out)
	}
	if !strings.Contains(out, "failed") {
		t.Errorf("expected error line, got %q", out)
	}
}

func TestNew_FileGetsDebugConsoleStaysClean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chores.log")
	var console bytes.Buffer
	logger, closer := Open(&console, Options{Quiet: true, File: path})

	logger.Debug("task permanently deleted", "id", "4")
	if err := closer.Close(); err != nil {
		t.Fatalf("close log file: %v", err)
	}

	if console.Len() != 0 {
		t.Errorf("expected nothing on console, got %q", console.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "task permanently deleted") || !strings.Contains(string(data), "id=4") {
		t.Errorf("unexpected log file contents: %q", data)
	}
}

func TestOpen_WithoutFileIsConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, closer := Open(&buf, Options{})

	logger.Warn("shown")
	if err := closer.Close(); err != nil {
		t.Errorf("unexpected close error: %v", err)
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected console output, got %q", buf.String())
	}
}

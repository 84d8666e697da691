package cli_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chores/internal/cli"
	"chores/internal/commands"
	"chores/internal/config"
	"chores/internal/exitcode"
	"chores/internal/service"
	"chores/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

// isolate keeps tests away from the user's real config and environment.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.EnvUndoWindow, "")
}

func run(t *testing.T, d *cli.Dispatcher, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	code = d.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, dispatcher, "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, dispatcher, "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, dispatcher, "list", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_MissingFlagValue(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, dispatcher, "toggle", "--id")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -id\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService(testutil.Letters()...)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	stdout, stderr, code := run(t, dispatcher)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if strings.Count(stdout, "\n") != 5 || !strings.Contains(stdout, "Task E") {
		t.Errorf("expected five task rows, got %q", stdout)
	}
}

func TestDispatcher_HelpAndVersionNeedNoStore(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	stdout, _, code := run(t, dispatcher, "version")
	if code != exitcode.Success || stdout != "chores "+commands.Version+"\n" {
		t.Errorf("unexpected version result: %d %q", code, stdout)
	}

	stdout, _, code = run(t, dispatcher, "help")
	if code != exitcode.Success || !strings.Contains(stdout, "Usage:") {
		t.Errorf("unexpected help result: %d %q", code, stdout)
	}
}

func TestDispatcher_NoFactory(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	_, stderr, code := run(t, dispatcher, "list")
	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if stderr != "error: no store configured\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestDispatcher_RmAssumeYes(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService(testutil.Letters()...)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	stdout, stderr, code := run(t, dispatcher, "rm", "--yes", "1")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if !strings.HasPrefix(stdout, "deleted: Task A") {
		t.Errorf("unexpected stdout: %q", stdout)
	}
	if got := strings.Join(svc.IDs(), ""); got != "BCDE" {
		t.Errorf("expected BCDE, got %s", got)
	}
}

func TestDispatcher_RmPromptDeclinedOnEOF(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService(testutil.Letters()...)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))
	dispatcher.SetInput(strings.NewReader(""))

	_, stderr, code := run(t, dispatcher, "delete", "1")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.HasPrefix(stderr, `Are you sure? Delete "Task A". [y/N]: `) {
		t.Errorf("expected prompt on stderr, got %q", stderr)
	}
	if !strings.HasSuffix(stderr, "error: delete cancelled\n") {
		t.Errorf("expected cancel message, got %q", stderr)
	}
	if got := strings.Join(svc.IDs(), ""); got != "ABCDE" {
		t.Errorf("expected nothing deleted, got %s", got)
	}
}

func TestDispatcher_ShellSessionUndo(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService(testutil.Letters()...)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))
	// The "y" line answers the delete prompt from the same input.
	dispatcher.SetInput(strings.NewReader("rm 2\ny\nundo\ntoggle 2\nexit\n"))

	stdout, stderr, code := run(t, dispatcher, "shell")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	for _, want := range []string{"deleted: Task B", "restored: Task B", "Task B: completed"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output, got %q", want, stdout)
		}
	}
	if got := strings.Join(svc.IDs(), ""); got != "ABCDE" {
		t.Errorf("expected ABCDE, got %s", got)
	}
}

func TestDispatcher_BadUndoWindowFlag(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, dispatcher, "list", "--undo-window", "soon")

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if stderr != "error: --undo-window: invalid duration: soon\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestDispatcher_BadConfigFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte("colour = \"red\"\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, dispatcher, "list", "--config", dir)

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if !strings.Contains(stderr, "unknown key: colour") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestDispatcher_MemoryFactorySeedFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "seed.json")
	data := `{"tasks": [{"id": "k", "title": "Walk the dog", "assignee": "Ana"}]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, cli.MemoryFactory(io.Discard))
	defer dispatcher.Close()

	stdout, stderr, code := run(t, dispatcher, "list", "--seed", path)
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if !strings.Contains(stdout, "Walk the dog") {
		t.Errorf("expected seeded task, got %q", stdout)
	}
}

func TestDispatcher_MemoryFactoryMissingSeed(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, cli.MemoryFactory(io.Discard))

	_, stderr, code := run(t, dispatcher, "list", "--seed", filepath.Join(t.TempDir(), "missing.json"))
	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if !strings.Contains(stderr, "read seed file") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestDispatcher_VersionVerbose(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	stdout, _, code := run(t, dispatcher, "version", "--verbose", "--config", dir, "--undo-window", "1500ms")
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	want := "chores " + commands.Version + "\n" +
		"config: " + filepath.Join(dir, config.ConfigFile) + " (not found)\n" +
		"undo window: 1.5s\n"
	if stdout != want {
		t.Errorf("expected %q, got %q", want, stdout)
	}
}

func TestDispatcher_ShellFlagsApplyToLines(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, cli.MemoryFactory(io.Discard))
	defer dispatcher.Close()
	// With --yes there is no prompt, so "exit" must reach the shell.
	dispatcher.SetInput(strings.NewReader("rm 2\npending\nexit\n"))

	stdout, stderr, code := run(t, dispatcher, "shell", "--undo-window", "30s", "--yes")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if strings.Contains(stderr, "Are you sure?") {
		t.Errorf("expected no prompt, got %q", stderr)
	}
	if !strings.Contains(stdout, "deleted: Do the dishes (undo ") || !strings.Contains(stdout, " within 30s)\n") {
		t.Errorf("expected 30s window in output, got %q", stdout)
	}
	if !strings.Contains(stdout, "Do the dishes  30s left") && !strings.Contains(stdout, "Do the dishes  29.") {
		t.Errorf("expected pending line near 30s, got %q", stdout)
	}
}

func TestDispatcher_ShellFlagsEndWithShell(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService(testutil.Letters()...)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))
	dispatcher.SetInput(strings.NewReader("exit\n"))

	if _, stderr, code := run(t, dispatcher, "shell", "--yes"); code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}

	dispatcher.SetInput(strings.NewReader(""))
	_, stderr, code := run(t, dispatcher, "rm", "1")
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.HasPrefix(stderr, "Are you sure?") {
		t.Errorf("expected prompt after the shell ended, got %q", stderr)
	}
}

func TestDispatcher_LogFileClosedWithStore(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "chores.log")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, cli.MemoryFactory(io.Discard))

	_, stderr, code := run(t, dispatcher, "rm", "--yes", "--log-file", path, "1")
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if err := dispatcher.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	for _, want := range []string{"task deleted", "task permanently deleted"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("expected %q in log file, got %q", want, data)
		}
	}
}

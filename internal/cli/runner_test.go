package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/floatodo/internal/model"
	"github.com/idilsaglam/floatodo/internal/store/jsonstore"
	"github.com/idilsaglam/floatodo/internal/todo"
	"github.com/idilsaglam/floatodo/internal/ui"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// sandbox isolates config lookup and logging and returns the snapshot path.
func sandbox(t *testing.T) string {
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
	t.Setenv("FLOATODO_LOG_FILE", filepath.Join(dir, "floatodo.log"))
	for _, k := range []string{"FLOATODO_FILE", "FLOATODO_LOG_LEVEL", "FLOATODO_NO_COLOR"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return filepath.Join(dir, "todos.json")
}

func runApp(t *testing.T, app *App, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	code := execute(app, args, &out, &errOut)
	return result{code: code, stdout: ansi.Strip(out.String()), stderr: ansi.Strip(errOut.String())}
}

func run(t *testing.T, args ...string) result {
	t.Helper()
	return runApp(t, &App{runWidget: func(*todo.Store, ui.Options) error { return nil }}, args...)
}

func readItems(t *testing.T, path string) []model.Item {
	t.Helper()
	items, err := (&jsonstore.File{Path: path}).Load()
	if err != nil {
		t.Fatalf("load %s: %v", path, err)
	}
	return items
}

func TestAddDoneRm_Scenario(t *testing.T) {
	path := sandbox(t)

	if r := run(t, "add", "Buy", "milk"); r.code != 0 || !strings.Contains(r.stdout, "added") {
		t.Fatalf("add: %+v", r)
	}
	if r := run(t, "done", "1"); r.code != 0 {
		t.Fatalf("done: %+v", r)
	}
	if r := run(t, "add", "Call mom"); r.code != 0 {
		t.Fatalf("add: %+v", r)
	}
	want := []model.Item{{Text: "Buy milk", Completed: true}, {Text: "Call mom"}}
	if got := readItems(t, path); len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("items = %+v, want %+v", got, want)
	}

	if r := run(t, "rm", "1"); r.code != 0 || !strings.Contains(r.stdout, "removed") {
		t.Fatalf("rm: %+v", r)
	}
	if got := readItems(t, path); len(got) != 1 || got[0] != (model.Item{Text: "Call mom"}) {
		t.Errorf("items = %+v", got)
	}
}

func TestAdd_EmptyTextIsUsageError(t *testing.T) {
	path := sandbox(t)
	r := run(t, "add", "   ")
	if r.code != exitUsage {
		t.Errorf("code = %d, want %d", r.code, exitUsage)
	}
	if !strings.Contains(r.stderr, "empty text") {
		t.Errorf("stderr = %q", r.stderr)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("rejected add must not create the snapshot")
	}
}

func TestIndexErrors(t *testing.T) {
	sandbox(t)
	run(t, "add", "only")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"not a number", []string{"done", "two"}, "not a number"},
		{"zero", []string{"done", "0"}, "index out of range"},
		{"past end", []string{"rm", "2"}, "index out of range"},
		{"missing arg", []string{"rm"}, "accepts 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := run(t, tt.args...)
			if r.code != exitUsage {
				t.Errorf("code = %d, want %d", r.code, exitUsage)
			}
			if !strings.Contains(r.stderr, tt.want) {
				t.Errorf("stderr = %q, want substring %q", r.stderr, tt.want)
			}
		})
	}
}

func TestList(t *testing.T) {
	sandbox(t)
	run(t, "add", "first")
	run(t, "add", "second")
	run(t, "done", "2")

	r := run(t, "ls")
	if r.code != 0 {
		t.Fatalf("ls: %+v", r)
	}
	for _, want := range []string{"Todos", "1. ○ first", "2. ✓ second", "50%"} {
		if !strings.Contains(r.stdout, want) {
			t.Errorf("ls output missing %q:\n%s", want, r.stdout)
		}
	}
}

func TestList_GroupKeepsRealIndexes(t *testing.T) {
	sandbox(t)
	run(t, "add", "first")
	run(t, "add", "second")
	run(t, "done", "1")

	r := run(t, "ls", "--group")
	if r.code != 0 {
		t.Fatalf("ls --group: %+v", r)
	}
	pending := strings.Index(r.stdout, "Pending")
	done := strings.Index(r.stdout, "Done")
	second := strings.Index(r.stdout, "2. ○ second")
	first := strings.Index(r.stdout, "1. ✓ first")
	if pending < 0 || done < 0 || second < 0 || first < 0 {
		t.Fatalf("unexpected grouped output:\n%s", r.stdout)
	}
	if !(pending < second && second < done && done < first) {
		t.Errorf("items not grouped:\n%s", r.stdout)
	}
}

func TestMalformedSnapshot_CLIRefusesToOverwrite(t *testing.T) {
	path := sandbox(t)
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := run(t, "add", "x")
	if r.code != exitError {
		t.Errorf("code = %d, want %d", r.code, exitError)
	}
	b, _ := os.ReadFile(path)
	if string(b) != "not json" {
		t.Errorf("snapshot overwritten: %q", b)
	}
}

func TestFileFlagAndEnv(t *testing.T) {
	sandbox(t)
	flagPath := filepath.Join(t.TempDir(), "flag.json")
	envPath := filepath.Join(t.TempDir(), "env.json")
	t.Setenv("FLOATODO_FILE", envPath)

	run(t, "add", "from env")
	run(t, "--file", flagPath, "add", "from flag")

	if got := readItems(t, envPath); len(got) != 1 || got[0].Text != "from env" {
		t.Errorf("env file items = %+v", got)
	}
	if got := readItems(t, flagPath); len(got) != 1 || got[0].Text != "from flag" {
		t.Errorf("flag file items = %+v", got)
	}
}

func TestRoot_LaunchesWidgetWithLoadedStore(t *testing.T) {
	path := sandbox(t)
	if err := (&jsonstore.File{Path: path}).Save([]model.Item{{Text: "restored"}}); err != nil {
		t.Fatal(err)
	}

	var gotLen int
	var gotOpts ui.Options
	app := &App{runWidget: func(s *todo.Store, opts ui.Options) error {
		gotLen, gotOpts = s.Len(), opts
		return nil
	}}
	r := runApp(t, app, "--no-mouse")
	if r.code != 0 {
		t.Fatalf("root: %+v", r)
	}
	if gotLen != 1 {
		t.Errorf("widget store Len() = %d, want 1", gotLen)
	}
	if gotOpts.Mouse {
		t.Error("--no-mouse should disable mouse input")
	}
	if gotOpts.Placeholder == "" {
		t.Error("placeholder should come from config")
	}
}

func TestRoot_MalformedSnapshotStillOpensWidget(t *testing.T) {
	path := sandbox(t)
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}

	called := false
	app := &App{runWidget: func(s *todo.Store, _ ui.Options) error {
		called = true
		if s.Len() != 0 {
			t.Errorf("Len() = %d, want empty list", s.Len())
		}
		return nil
	}}
	if r := runApp(t, app); r.code != 0 {
		t.Fatalf("root: %+v", r)
	}
	if !called {
		t.Error("widget was not started")
	}
}

func TestSubcommands_LogToStderr(t *testing.T) {
	sandbox(t)
	logFile := os.Getenv("FLOATODO_LOG_FILE")

	r := run(t, "--log-level", "debug", "ls")
	if r.code != 0 {
		t.Fatalf("ls: %+v", r)
	}
	if !strings.Contains(r.stderr, "store ready") {
		t.Errorf("debug log missing from stderr: %q", r.stderr)
	}
	if _, err := os.Stat(logFile); !os.IsNotExist(err) {
		t.Errorf("subcommand should not open the log file (stat err = %v)", err)
	}
}

func TestRoot_LogsToFile(t *testing.T) {
	sandbox(t)
	logFile := os.Getenv("FLOATODO_LOG_FILE")

	r := runApp(t, &App{runWidget: func(_ *todo.Store, opts ui.Options) error {
		opts.Logger.Info("widget started")
		return nil
	}})
	if r.code != 0 {
		t.Fatalf("root: %+v", r)
	}
	if r.stderr != "" {
		t.Errorf("widget mode wrote to stderr: %q", r.stderr)
	}
	b, err := os.ReadFile(logFile)
	if err != nil || !strings.Contains(string(b), "widget started") {
		t.Errorf("log file = %q, %v", b, err)
	}
}

func TestRoot_UnopenableLogFileDisablesLogging(t *testing.T) {
	dir := filepath.Dir(sandbox(t))
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FLOATODO_LOG_FILE", filepath.Join(blocker, "floatodo.log"))

	called := false
	r := runApp(t, &App{runWidget: func(_ *todo.Store, opts ui.Options) error {
		called = true
		opts.Logger.Error("must not reach the terminal")
		return nil
	}})
	if r.code != 0 || !called {
		t.Fatalf("root: %+v called=%v", r, called)
	}
	if !strings.Contains(r.stderr, "logging disabled") {
		t.Errorf("stderr = %q, want a one-line notice", r.stderr)
	}
	if strings.Contains(r.stderr, "must not reach the terminal") {
		t.Errorf("widget log leaked to stderr: %q", r.stderr)
	}
}

func TestUnknownCommand(t *testing.T) {
	sandbox(t)
	r := run(t, "frobnicate")
	if r.code != exitUsage {
		t.Errorf("code = %d, want %d", r.code, exitUsage)
	}
	if !strings.Contains(r.stderr, "unknown command") {
		t.Errorf("stderr = %q", r.stderr)
	}
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/floatodo/internal/config"
	"github.com/idilsaglam/floatodo/internal/logging"
	"github.com/idilsaglam/floatodo/internal/model"
	"github.com/idilsaglam/floatodo/internal/store/jsonstore"
	"github.com/idilsaglam/floatodo/internal/todo"
	"github.com/idilsaglam/floatodo/internal/ui"
)

// Exit codes: 0 ok, 1 error, 2 usage.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// exitErr carries an exit code out of a command. The message has already
// been printed when msg is empty.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

// App is the state shared by every subcommand.
type App struct {
	ConfigPath string
	File       string
	LogLevel   string
	NoColor    bool
	NoMouse    bool
	Group      bool

	cfg    config.Config
	theme  ui.Theme
	logger *log.Logger
	closer io.Closer
	store  *todo.Store

	// runWidget is swapped out in tests.
	runWidget func(*todo.Store, ui.Options) error
}

// Run builds the root command, executes args and returns an exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	return execute(&App{runWidget: ui.Run}, args, stdout, stderr)
}

func execute(app *App, args []string, stdout, stderr io.Writer) int {
	app.theme = ui.DefaultTheme()
	cmd := NewRootCmd(app)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	app.close()
	if err == nil {
		return exitOK
	}
	var ee *exitErr
	if errors.As(err, &ee) {
		if ee.msg != "" {
			ui.Fail(stderr, app.theme, ee.msg)
		}
		return ee.code
	}
	// cobra parse errors (unknown flag, wrong arg count) land here.
	ui.Fail(stderr, app.theme, err.Error())
	return exitUsage
}

// NewRootCmd wires the widget and the scriptable subcommands.
func NewRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "floatodo",
		Short:         "A small always-editable todo widget",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		Example: strings.TrimSpace(`
  # Open the widget
  floatodo

  # Scriptable commands
  floatodo add "Buy milk"
  floatodo ls
  floatodo done 2
  floatodo rm 3
`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.widget()
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&app.ConfigPath, "config", "", "config file (default: user and project floatodo.toml)")
	f.StringVar(&app.File, "file", "", "todo snapshot file (default todos.json)")
	f.StringVar(&app.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	f.BoolVar(&app.NoColor, "no-color", false, "disable colours")
	cmd.Flags().BoolVar(&app.NoMouse, "no-mouse", false, "disable mouse input in the widget")

	cmd.AddCommand(
		newAddCmd(app),
		newListCmd(app),
		newDoneCmd(app),
		newRemoveCmd(app),
	)
	return cmd
}

func (a *App) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.ConfigPath)
	a.theme = ui.ThemeFor(cfg.NoColor)
	if err != nil {
		return &exitErr{code: exitError, msg: "config: " + err.Error()}
	}

	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.File = a.File
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.LogLevel
	}
	if flags.Changed("no-color") {
		cfg.NoColor = a.NoColor
	}
	if flags.Lookup("no-mouse") != nil && flags.Changed("no-mouse") {
		cfg.Mouse = !a.NoMouse
	}
	a.cfg = cfg
	a.theme = ui.ThemeFor(cfg.NoColor)
	if cfg.NoColor {
		ui.DisableColor()
	}

	a.logger, a.closer = a.newLogger(cmd)

	file, err := jsonstore.New(cfg.File)
	if err != nil {
		return &exitErr{code: exitError, msg: "store: " + err.Error()}
	}
	a.store = todo.New(file, a.logger, todo.WithPlaceholder(cfg.Placeholder))
	a.logger.Debug("store ready", "file", file.Path)
	return nil
}

// newLogger sends subcommand logs to stderr. The widget owns the terminal,
// so it logs to the configured file, or nowhere if that cannot be opened.
func (a *App) newLogger(cmd *cobra.Command) (*log.Logger, io.Closer) {
	opts := a.cfg.LoggingOptions()
	if cmd.HasParent() {
		return logging.New(cmd.ErrOrStderr(), opts), nil
	}
	logger, closer, err := logging.NewFile(a.cfg.LogFile, opts)
	if err != nil {
		ui.Hint(cmd.ErrOrStderr(), a.theme, "logging disabled: "+err.Error())
		return logging.Discard(), nil
	}
	return logger, closer
}

func (a *App) close() {
	if a.closer != nil {
		_ = a.closer.Close()
	}
}

// widget loads best-effort and hands the store to the terminal UI.
func (a *App) widget() error {
	_ = a.store.Load()
	err := a.runWidget(a.store, ui.Options{
		Placeholder: a.cfg.Placeholder,
		Mouse:       a.cfg.Mouse,
		Theme:       a.theme,
		Logger:      a.logger,
	})
	if err != nil {
		return &exitErr{code: exitError, msg: err.Error()}
	}
	return nil
}

// -------------- subcommands ----------------

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a new item (text can be multiple words)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.loadStrict(); err != nil {
				return err
			}
			if !app.store.Append(strings.Join(args, " ")) {
				return &exitErr{code: exitUsage, msg: "add: empty text"}
			}
			if err := app.store.SaveErr(); err != nil {
				return &exitErr{code: exitError, msg: "save: " + err.Error()}
			}
			ui.OK(cmd.OutOrStdout(), app.theme, "added")
			return nil
		},
	}
}

func newListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.loadStrict(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), listPanel(app.theme, app.store, app.Group))
			return nil
		},
	}
	cmd.Flags().BoolVar(&app.Group, "group", false, "group output by pending/done")
	return cmd
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <index>",
		Short: "Toggle completion of the item at a 1-based index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := app.index(cmd, "done", args[0])
			if err != nil {
				return err
			}
			app.store.Toggle(idx)
			if err := app.store.SaveErr(); err != nil {
				return &exitErr{code: exitError, msg: "save: " + err.Error()}
			}
			ui.OK(cmd.OutOrStdout(), app.theme, "toggled")
			return nil
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <index>",
		Aliases: []string{"delete"},
		Short:   "Remove the item at a 1-based index",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := app.index(cmd, "rm", args[0])
			if err != nil {
				return err
			}
			app.store.Delete(idx)
			if err := app.store.SaveErr(); err != nil {
				return &exitErr{code: exitError, msg: "save: " + err.Error()}
			}
			ui.OK(cmd.OutOrStdout(), app.theme, "removed")
			return nil
		},
	}
}

// loadStrict reports a broken snapshot instead of silently starting empty,
// so a scripted write never overwrites a file it could not read.
func (a *App) loadStrict() error {
	if err := a.store.Load(); err != nil {
		return &exitErr{code: exitError, msg: "load: " + err.Error()}
	}
	return nil
}

// index loads the list and turns a 1-based argument into a store index.
func (a *App) index(cmd *cobra.Command, verb, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, &exitErr{code: exitUsage, msg: verb + ": not a number: " + arg}
	}
	if err := a.loadStrict(); err != nil {
		return 0, err
	}
	if n < 1 || n > a.store.Len() {
		ui.Fail(cmd.ErrOrStderr(), a.theme, fmt.Sprintf("index out of range: have %d, got %d", a.store.Len(), n))
		ui.Hint(cmd.ErrOrStderr(), a.theme, "Hint: run `floatodo ls` to see valid indexes")
		return 0, &exitErr{code: exitUsage}
	}
	return n - 1, nil
}

// -------------- rendering helpers --------------

func listPanel(t ui.Theme, s *todo.Store, group bool) string {
	done, pending := s.Stats()
	lines := []string{
		ui.Header(t, done, pending),
		t.Muted.Render(ui.ProgressBar(done, done+pending, 28)),
		"",
	}
	if group {
		lines = append(lines, groupLines(t, s.Items())...)
	} else {
		lines = append(lines, ui.ListLines(t, s.Items(), 80)...)
	}
	lines = append(lines, "", t.Muted.Render("Tip: add with `floatodo add \"Buy milk\"`"))
	return ui.Panel(t, lines)
}

// groupLines splits pending and done items but keeps each item's real
// index, so the numbers still work with done/rm.
func groupLines(t ui.Theme, items []model.Item) []string {
	var pend, done []string
	for i, it := range items {
		line := ui.IndexedLine(t, i, it, 80)
		if it.Completed {
			done = append(done, line)
		} else {
			pend = append(pend, line)
		}
	}
	none := []string{t.Muted.Render("(none)")}
	if len(pend) == 0 {
		pend = none
	}
	if len(done) == 0 {
		done = none
	}
	lines := []string{t.Accent.Render("Pending")}
	lines = append(lines, pend...)
	lines = append(lines, "", t.Accent.Render("Done"))
	return append(lines, done...)
}

// Package cli is the tada command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/service"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Version is stamped at build time.
var Version = "dev"

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Command annotations read by setup.
const (
	annotTUI    = "tui"     // logs must not reach the terminal
	annotNoOpen = "no-open" // needs neither config nor store
)

// usageError marks a failure caused by how tada was invoked.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

// usageArgs tags positional argument errors as usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// app carries flags and the resources opened for one invocation.
type app struct {
	in          io.Reader
	out, errOut io.Writer
	now         func() time.Time

	configPath string
	dataDir    string
	storeName  string
	theme      string
	logLevel   string

	cfg     *config.Config
	logger  *log.Logger
	store   *store.Store
	svc     *service.Service
	closers []io.Closer
}

// Execute runs tada with args and returns the process exit code
// (0 ok, 1 error, 2 usage).
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	a := &app{in: in, out: out, errOut: errOut, now: time.Now}
	return a.execute(ctx, args)
}

func (a *app) execute(ctx context.Context, args []string) int {
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	err := root.ExecuteContext(ctx)
	a.close()
	if err == nil {
		return ExitOK
	}
	ui.Fail(a.errOut, err.Error())
	var ue usageError
	if errors.As(err, &ue) {
		switch {
		case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrAmbiguous):
			ui.Hint(a.errOut, "Hint: run `tada list` to see valid indexes")
		default:
			ui.Hint(a.errOut, "Run `tada --help` for usage.")
		}
		return ExitUsage
	}
	return ExitError
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tada",
		Short: "tada - a tiny todo list",
		Long: `tada keeps a todo list in a local file or sqlite database.

Run without a command to open the interactive list.`,
		Args:              usageArgs(cobra.NoArgs),
		RunE:              a.runTUI,
		Annotations:       map[string]string{annotTUI: "true"},
		PersistentPreRunE: a.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           Version,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default ./tada.toml)")
	pf.StringVar(&a.dataDir, "data-dir", "", "directory holding the todo store")
	pf.StringVar(&a.storeName, "store", "", "store backend: file or sqlite")
	pf.StringVar(&a.theme, "theme", "", "color theme: classic, neon or mono")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		a.addCmd(),
		a.lsCmd(),
		a.listCmd(),
		a.doneCmd(),
		a.editCmd(),
		a.dueCmd(),
		a.rmCmd(),
		a.exportCmd(),
		a.checkCmd(),
		a.versionCmd(),
	)
	return root
}

// setup resolves config and opens the logger and store for cmd.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[annotNoOpen] == "true" {
		return nil
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = a.dataDir
	}
	if flags.Changed("store") {
		cfg.Store = a.storeName
	}
	if flags.Changed("theme") {
		cfg.Theme = a.theme
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return usageError{err}
	}
	a.cfg = cfg
	ui.SetTheme(cfg.Theme)

	// The TUI owns the terminal, so its logs go to a file or nowhere.
	if cmd.Annotations[annotTUI] == "true" {
		logger, closer, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			return err
		}
		a.logger = logger
		a.closers = append(a.closers, closer)
	} else {
		if a.logger, err = logging.New(a.errOut, cfg.LogLevel); err != nil {
			return err
		}
	}

	st, closer, err := store.Open(cfg.Store, cfg.DataDir)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	a.closers = append(a.closers, closer)
	a.store = st
	a.svc = service.New(st).WithClock(a.now)
	a.logger.Debug("store opened", "backend", cfg.Store, "dir", cfg.DataDir, "config", cfg.Files)
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && a.logger != nil {
			a.logger.Warn("close failed", "err", err)
		}
	}
	a.closers = nil
}

// resolve maps a CLI reference to an id; unknown references are usage errors.
func (a *app) resolve(ref string) (string, error) {
	id, err := a.svc.Resolve(ref)
	if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrAmbiguous) {
		return "", usageError{err}
	}
	return id, err
}

// listPanel prints the framed list.
func (a *app) listPanel(group bool) error {
	todos, err := a.svc.List()
	if err != nil {
		return err
	}
	lines := ui.Summary(todos, a.now(), group)
	lines = append(lines, "", ui.Current().Muted.Render("Tip: add with `tada add \"Buy milk\"`"))
	ui.Panel(a.out, lines)
	return nil
}

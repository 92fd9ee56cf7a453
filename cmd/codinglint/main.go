package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"codinglint/internal/coding"
	"codinglint/internal/config"
	"codinglint/internal/logging"
	"codinglint/internal/plugin"
	"codinglint/internal/prof"
	"codinglint/internal/version"
)

const appName = "codinglint"

// Exit codes.
const (
	exitOK       = 0
	exitFindings = 1
	exitUsage    = 2
)

// exitError carries a process exit code through cobra. Silent errors have
// already been reported.
type exitError struct {
	code   int
	err    error
	silent bool
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error {
	return &exitError{code: exitUsage, err: err}
}

// app holds what every command shares.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	level    *slog.LevelVar
	logger   *slog.Logger
	registry *plugin.Registry
	options  *config.Manager
	profile  *prof.Session
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// execute runs the CLI and maps the outcome to an exit code.
func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a, root, err := newApp(stdin, stdout, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitUsage
	}
	root.SetArgs(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = root.ExecuteContext(ctx)
	a.stopProfiling()
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if !ee.silent {
			a.logger.Error(ee.Error())
		}
		return ee.code
	}
	// ошибки разбора флагов и аргументов от cobra
	fmt.Fprintln(stderr, "error:", err)
	return exitUsage
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) (*app, *cobra.Command, error) {
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	logger := slog.New(logging.NewLineHandler(stderr, &slog.HandlerOptions{Level: level}))

	a := &app{
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
		level:    level,
		logger:   logger,
		registry: plugin.NewRegistry(),
	}
	if err := a.registry.Register(coding.NewPlugin(logger)); err != nil {
		return nil, nil, err
	}

	root := &cobra.Command{
		Use:           appName,
		Short:         "PEP 263 coding magic comment checker",
		Long:          `codinglint reports Python source files whose "coding:" magic comment is missing, unexpected or names an encoding outside the accepted list`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setupOutput(cmd); err != nil {
				return err
			}
			return a.startProfiling(cmd)
		},
	}

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.CountP("verbose", "v", "increase log verbosity (repeatable)")
	pf.Bool("timings", false, "show timing information")
	pf.String("config", "", "path to a configuration file (disables discovery)")
	pf.Bool("isolated", false, "ignore configuration files")
	pf.String("cpu-profile", "", "write CPU profile to file")
	pf.String("mem-profile", "", "write heap profile to file")
	pf.String("runtime-trace", "", "write runtime trace to file")

	// Опции хоста и плагинов живут в одном пространстве имён
	a.options = config.NewManager(pf)
	if err := config.RegisterHostOptions(a.options); err != nil {
		return nil, nil, err
	}
	if err := a.registry.AddOptions(a.options); err != nil {
		return nil, nil, err
	}

	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newPluginsCmd(a))
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newVersionCmd(a))
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return a, root, nil
}

// setupOutput applies --color, --quiet and --verbose.
func (a *app) setupOutput(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	colorMode, err := flags.GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	verbose, err := flags.GetCount("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}

	switch colorMode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = os.Getenv("NO_COLOR") != "" || !isTerminalWriter(a.stdout)
	default:
		return usageError(fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorMode))
	}
	a.level.Set(logging.LevelFromVerbosity(verbose, quiet))
	return nil
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

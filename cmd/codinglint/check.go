package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"codinglint/internal/config"
	"codinglint/internal/diag"
	"codinglint/internal/diagfmt"
	"codinglint/internal/driver"
	"codinglint/internal/observ"
	"codinglint/internal/version"
)

const informationURI = "https://peps.python.org/pep-0263/"

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check coding magic comments of Python files",
		Long: `Check the coding magic comment of every Python file under the given paths.
Directories are walked recursively; "-" reads a single file from stdin.
Without paths the current directory is checked.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd, args)
		},
	}
	cmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	cmd.Flags().Bool("clear-cache", false, "drop every cached result before checking")
	return cmd
}

func (a *app) runCheck(cmd *cobra.Command, args []string) error {
	settings, err := a.configure(cmd)
	if err != nil {
		return err
	}
	if !slices.Contains(diagfmt.Formats, settings.Format) {
		return usageError(fmt.Errorf("unsupported format %q (must be one of %v)", settings.Format, diagfmt.Formats))
	}
	pathMode, err := diagfmt.ParsePathMode(settings.PathMode)
	if err != nil {
		return usageError(err)
	}
	mode, err := readUIMode(cmd)
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	for _, entry := range a.unknownSelectors(append(slices.Clone(settings.Select), settings.Ignore...)) {
		a.logger.Warn("select/ignore entry matches no known code", "entry", entry)
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}
	baseDir, err := os.Getwd()
	if err != nil {
		return err
	}

	names, err := a.pluginOptionNames()
	if err != nil {
		return err
	}
	fingerprint, err := a.options.Fingerprint(names...)
	if err != nil {
		return err
	}

	timer := observ.NewTimer()
	opts := driver.Options{
		Paths: paths,
		Matcher: driver.Matcher{
			Filename: settings.Filename,
			Exclude:  settings.Exclude,
		},
		Jobs:           settings.Jobs,
		MaxDiagnostics: settings.MaxDiagnostics,
		Selector:       diag.NewSelector(settings.Select, settings.Ignore),
		DisableNoqa:    settings.DisableNoqa,
		Stdin:          a.stdin,
		Fingerprint:    fingerprint,
		BaseDir:        baseDir,
		Logger:         a.logger,
		Timer:          timer,
	}
	if settings.Cache || clearCache {
		cache, cacheErr := driver.OpenDiskCache(appName)
		switch {
		case cacheErr != nil:
			a.logger.Warn("cache disabled", "err", cacheErr)
		case clearCache:
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
			a.logger.Info("cache cleared", "dir", cache.Dir())
		}
		if cacheErr == nil && settings.Cache {
			a.logger.Debug("using cache", "dir", cache.Dir())
			opts.Cache = cache
		}
	}

	var res *driver.Result
	if a.shouldUseTUI(mode, settings.Format, paths) {
		res, err = a.runWithUI(cmd.Context(), "checking", a.registry, opts)
	} else {
		res, err = driver.Check(cmd.Context(), a.registry, opts)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := a.render(out, res, settings, pathMode, args); err != nil {
		return err
	}
	if res.Truncated {
		a.logger.Warn("diagnostics truncated", "shown", res.Bag.Len(), "total", res.Total)
	}
	if settings.Statistics {
		if err := diagfmt.Statistics(out, res.Stats.ByCode); err != nil {
			return err
		}
	}
	if settings.Count {
		if err := diagfmt.Count(out, res.Total); err != nil {
			return err
		}
	}
	if showTimings {
		fmt.Fprint(a.stderr, timer.Summary())
	}

	if res.Total > 0 && !settings.ExitZero {
		return &exitError{code: exitFindings, silent: true}
	}
	return nil
}

func (a *app) render(out io.Writer, res *driver.Result, settings config.Settings, pathMode diagfmt.PathMode, args []string) error {
	switch settings.Format {
	case "pylint":
		return diagfmt.Pylint(out, res.Bag, res.FileSet, diagfmt.TextOpts{PathMode: pathMode, ShowSource: settings.ShowSource})
	case "pretty":
		diagfmt.Pretty(out, res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:      !color.NoColor,
			PathMode:   pathMode,
			ShowSource: settings.ShowSource,
		})
		return nil
	case "json":
		return diagfmt.JSON(out, res.Bag, res.FileSet, diagfmt.JSONOpts{
			PathMode: pathMode,
			RunID:    res.RunID,
			Total:    res.Total,
		})
	case "sarif":
		var rules []diag.Code
		for _, p := range a.registry.All() {
			rules = append(rules, p.Codes()...)
		}
		return diagfmt.Sarif(out, res.Bag, res.FileSet, rules, diagfmt.SarifRunMeta{
			ToolName:       appName,
			ToolVersion:    version.Version,
			InformationURI: informationURI,
			InvocationArgs: append([]string{appName, "check"}, args...),
			RunID:          res.RunID,
			PathMode:       pathMode,
		})
	default:
		return diagfmt.Default(out, res.Bag, res.FileSet, diagfmt.TextOpts{PathMode: pathMode, ShowSource: settings.ShowSource})
	}
}

func hasDirectory(paths []string) bool {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

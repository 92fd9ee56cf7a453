package config

import (
	"fmt"

	"codinglint/internal/plugin"
)

// Host option names. They live in the same namespace as plugin options.
const (
	OptSelect         = "select"
	OptIgnore         = "ignore"
	OptExclude        = "exclude"
	OptExtendExclude  = "extend-exclude"
	OptFilename       = "filename"
	OptFormat         = "format"
	OptJobs           = "jobs"
	OptMaxDiagnostics = "max-diagnostics"
	OptExitZero       = "exit-zero"
	OptCache          = "cache"
	OptShowSource     = "show-source"
	OptStatistics     = "statistics"
	OptCount          = "count"
	OptDisableNoqa    = "disable-noqa"
	OptPathMode       = "path-mode"
)

const (
	DefaultExclude  = ".svn,CVS,.bzr,.hg,.git,__pycache__,.tox,.nox,.eggs,*.egg"
	DefaultFilename = "*.py"
	DefaultFormat   = "default"
)

// HostOptions describes the options owned by the CLI itself.
func HostOptions() []plugin.Option {
	return []plugin.Option{
		{Name: OptSelect, Kind: plugin.KindString, Help: "comma separated code prefixes to report (default: all)", ParseFromConfig: true},
		{Name: OptIgnore, Kind: plugin.KindString, Help: "comma separated code prefixes to skip", ParseFromConfig: true},
		{Name: OptExclude, Kind: plugin.KindString, Default: DefaultExclude, Help: "comma separated glob patterns of paths to skip", ParseFromConfig: true},
		{Name: OptExtendExclude, Kind: plugin.KindString, Help: "patterns added to --exclude", ParseFromConfig: true},
		{Name: OptFilename, Kind: plugin.KindString, Default: DefaultFilename, Help: "comma separated glob patterns of files to check inside directories", ParseFromConfig: true},
		{Name: OptFormat, Kind: plugin.KindString, Default: DefaultFormat, Help: "report format (default|pylint|pretty|json|sarif)", ParseFromConfig: true},
		{Name: OptJobs, Kind: plugin.KindInt, Default: "0", Help: "files checked in parallel (0 = number of CPUs)", ParseFromConfig: true},
		{Name: OptMaxDiagnostics, Kind: plugin.KindInt, Default: "0", Help: "maximum number of diagnostics to show (0 = no limit)", ParseFromConfig: true},
		{Name: OptExitZero, Kind: plugin.KindBool, Default: "false", Help: "exit with status 0 even if diagnostics were reported", ParseFromConfig: true},
		{Name: OptCache, Kind: plugin.KindBool, Default: "false", Help: "reuse results for unchanged files from the on-disk cache", ParseFromConfig: true},
		{Name: OptShowSource, Kind: plugin.KindBool, Default: "false", Help: "print the offending source line", ParseFromConfig: true},
		{Name: OptStatistics, Kind: plugin.KindBool, Default: "false", Help: "print per-code counts", ParseFromConfig: true},
		{Name: OptCount, Kind: plugin.KindBool, Default: "false", Help: "print the total number of diagnostics", ParseFromConfig: true},
		{Name: OptDisableNoqa, Kind: plugin.KindBool, Default: "false", Help: "ignore '# noqa' comments", ParseFromConfig: true},
		{Name: OptPathMode, Kind: plugin.KindString, Default: "auto", Help: "path display (auto|relative|absolute|basename)", ParseFromConfig: true},
	}
}

// Settings are the resolved host options.
type Settings struct {
	Select         []string
	Ignore         []string
	Exclude        []string
	Filename       []string
	Format         string
	Jobs           int
	MaxDiagnostics int
	ExitZero       bool
	Cache          bool
	ShowSource     bool
	Statistics     bool
	Count          bool
	DisableNoqa    bool
	PathMode       string
}

// ReadSettings resolves host options from m.
func ReadSettings(m *Manager) (Settings, error) {
	var (
		s   Settings
		err error
	)
	lists := []struct {
		name string
		dst  *[]string
	}{
		{OptSelect, &s.Select},
		{OptIgnore, &s.Ignore},
		{OptExclude, &s.Exclude},
		{OptFilename, &s.Filename},
	}
	for _, l := range lists {
		if *l.dst, err = m.GetList(l.name); err != nil {
			return Settings{}, fmt.Errorf("failed to get %s: %w", l.name, err)
		}
	}
	extend, err := m.GetList(OptExtendExclude)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to get %s: %w", OptExtendExclude, err)
	}
	s.Exclude = append(s.Exclude, extend...)

	if s.Format, err = m.GetString(OptFormat); err != nil {
		return Settings{}, fmt.Errorf("failed to get %s: %w", OptFormat, err)
	}
	if s.PathMode, err = m.GetString(OptPathMode); err != nil {
		return Settings{}, fmt.Errorf("failed to get %s: %w", OptPathMode, err)
	}
	if s.Jobs, err = m.GetInt(OptJobs); err != nil {
		return Settings{}, fmt.Errorf("failed to get %s: %w", OptJobs, err)
	}
	if s.MaxDiagnostics, err = m.GetInt(OptMaxDiagnostics); err != nil {
		return Settings{}, fmt.Errorf("failed to get %s: %w", OptMaxDiagnostics, err)
	}
	if s.Jobs < 0 || s.MaxDiagnostics < 0 {
		return Settings{}, fmt.Errorf("%s and %s must not be negative", OptJobs, OptMaxDiagnostics)
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{OptExitZero, &s.ExitZero},
		{OptCache, &s.Cache},
		{OptShowSource, &s.ShowSource},
		{OptStatistics, &s.Statistics},
		{OptCount, &s.Count},
		{OptDisableNoqa, &s.DisableNoqa},
	}
	for _, b := range bools {
		if *b.dst, err = m.GetBool(b.name); err != nil {
			return Settings{}, fmt.Errorf("failed to get %s: %w", b.name, err)
		}
	}
	return s, nil
}

// RegisterHostOptions adds HostOptions to m.
func RegisterHostOptions(m *Manager) error {
	return plugin.RegisterOptions(m, HostOptions()...)
}

package diagfmt

import (
	"fmt"

	"codinglint/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto keeps short or relative paths, shortens long absolute ones.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode maps the --path-mode spelling to a PathMode.
func ParsePathMode(s string) (PathMode, error) {
	switch s {
	case "", "auto":
		return PathModeAuto, nil
	case "absolute":
		return PathModeAbsolute, nil
	case "relative":
		return PathModeRelative, nil
	case "basename":
		return PathModeBasename, nil
	}
	return PathModeAuto, fmt.Errorf("unknown path mode %q (want auto|relative|absolute|basename)", s)
}

// Report formats known to the CLI.
var Formats = []string{"default", "pylint", "pretty", "json", "sarif"}

// TextOpts configures the one-line formats.
type TextOpts struct {
	PathMode   PathMode
	ShowSource bool
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color      bool
	PathMode   PathMode
	ShowSource bool
	Width      int // максимальная ширина строки исходника, 0 - не ограничено
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode PathMode
	Max      int // обрезка вывода, не Bag
	RunID    string
	// Total is the number of diagnostics before any cap; 0 means Bag.Len().
	Total int
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InformationURI string
	InvocationArgs []string
	RunID          string
	PathMode       PathMode
}

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	if fs == nil || !fs.HasFile(id) {
		return "?"
	}
	f := fs.Get(id)
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	case PathModeAuto:
		return f.FormatPath("auto", "")
	default:
		return f.Path
	}
}

func sourceLine(fs *source.FileSet, id source.FileID, line uint32) (string, bool) {
	if fs == nil || !fs.HasFile(id) {
		return "", false
	}
	f := fs.Get(id)
	if line == 0 || int(line) > len(f.Lines) {
		return "", false
	}
	return f.GetLine(line), true
}

package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"codinglint/internal/diag"
	"codinglint/internal/source"
)

// Default prints "path:line:col: CODE message", one diagnostic per line.
// Columns are stored 0-based and printed 1-based.
func Default(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts TextOpts) error {
	for _, d := range bag.Items() {
		_, err := fmt.Fprintf(w, "%s:%d:%d: %s %s\n",
			formatPath(fs, d.Loc.File, opts.PathMode), d.Loc.Line, d.Loc.Col+1, d.Code.ID(), d.Message)
		if err != nil {
			return err
		}
		if opts.ShowSource {
			if err := writeSource(w, fs, d); err != nil {
				return err
			}
		}
	}
	return nil
}

// Pylint prints "path:line: [CODE] message".
func Pylint(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts TextOpts) error {
	for _, d := range bag.Items() {
		_, err := fmt.Fprintf(w, "%s:%d: [%s] %s\n",
			formatPath(fs, d.Loc.File, opts.PathMode), d.Loc.Line, d.Code.ID(), d.Message)
		if err != nil {
			return err
		}
		if opts.ShowSource {
			if err := writeSource(w, fs, d); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeSource prints the physical line and a caret under the column.
func writeSource(w io.Writer, fs *source.FileSet, d diag.Diagnostic) error {
	line, ok := sourceLine(fs, d.Loc.File, d.Loc.Line)
	if !ok {
		return nil
	}
	_, err := fmt.Fprintf(w, "%s\n%s^\n", line, caretPad(line, int(d.Loc.Col)))
	return err
}

// caretPad returns whitespace as wide as the first col characters of line;
// tabs are kept so the caret lines up in a terminal.
func caretPad(line string, col int) string {
	var b strings.Builder
	for i, r := range []rune(line) {
		if i >= col {
			break
		}
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}

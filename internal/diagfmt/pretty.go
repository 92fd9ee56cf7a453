package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"codinglint/internal/diag"
	"codinglint/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждой диагностики печатает:
//
//	<path>:<line>:<col>: <sev>[<CODE>]: <Message>
//
// затем, с ShowSource, строку исходника с подчёркиванием ^~~~.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	paint := newPalette(opts.Color)
	for _, d := range bag.Items() {
		loc := fmt.Sprintf("%s:%d:%d:", formatPath(fs, d.Loc.File, opts.PathMode), d.Loc.Line, d.Loc.Col+1)
		sev := d.Severity.String()
		fmt.Fprintf(w, "%s %s%s: %s\n",
			paint.location.Sprint(loc),
			paint.severity(d.Severity).Sprint(sev),
			paint.code.Sprint("["+d.Code.ID()+"]"),
			d.Message)

		if !opts.ShowSource {
			continue
		}
		line, ok := sourceLine(fs, d.Loc.File, d.Loc.Line)
		if !ok {
			continue
		}
		if opts.Width > 0 && runewidth.StringWidth(line) > opts.Width {
			line = runewidth.Truncate(line, opts.Width, "…")
		}
		num := strconv.FormatUint(uint64(d.Loc.Line), 10)
		gutter := strings.Repeat(" ", len(num))
		fmt.Fprintf(w, " %s %s\n", paint.gutter.Sprint(num+" |"), line)
		fmt.Fprintf(w, " %s %s%s\n", paint.gutter.Sprint(gutter+" |"), caretPad(line, int(d.Loc.Col)), paint.severity(d.Severity).Sprint(underline(line, int(d.Loc.Col))))
	}
}

// underline marks the rest of the line from col: "^~~~".
func underline(line string, col int) string {
	rest := []rune(line)
	if col < len(rest) {
		rest = rest[col:]
	} else {
		rest = nil
	}
	width := runewidth.StringWidth(strings.TrimRight(string(rest), " \t"))
	if width <= 1 {
		return "^"
	}
	return "^" + strings.Repeat("~", width-1)
}

type palette struct {
	location *color.Color
	code     *color.Color
	gutter   *color.Color
	warning  *color.Color
	errorC   *color.Color
	note     *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		location: color.New(color.Bold),
		code:     color.New(color.FgMagenta),
		gutter:   color.New(color.FgBlue),
		warning:  color.New(color.FgYellow, color.Bold),
		errorC:   color.New(color.FgRed, color.Bold),
		note:     color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.location, p.code, p.gutter, p.warning, p.errorC, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.errorC
	case diag.SevWarning:
		return p.warning
	default:
		return p.note
	}
}

package driver

import (
	"regexp"
	"strings"

	"codinglint/internal/diag"
	"codinglint/internal/source"
)

// "# noqa" silences a line; "# noqa: C101,C102" only the listed codes
// (prefixes allowed).
var noqaPattern = regexp.MustCompile(`(?i)#\s*noqa(?::[\s]?((?:[A-Z][0-9]+(?:[,\s]+)?)+))?`)

type noqa struct {
	all   bool
	codes []string
}

func parseNoqa(line string) (noqa, bool) {
	m := noqaPattern.FindStringSubmatch(line)
	if m == nil {
		return noqa{}, false
	}
	if m[1] == "" {
		return noqa{all: true}, true
	}
	fields := strings.FieldsFunc(m[1], func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	codes := make([]string, 0, len(fields))
	for _, f := range fields {
		codes = append(codes, strings.ToUpper(f))
	}
	return noqa{codes: codes}, true
}

func (n noqa) covers(id string) bool {
	if n.all {
		return true
	}
	for _, c := range n.codes {
		if strings.HasPrefix(id, c) {
			return true
		}
	}
	return false
}

// suppressed reports whether the physical line of d carries a matching
// noqa comment.
func suppressed(d diag.Diagnostic, f *source.File) bool {
	if f == nil {
		return false
	}
	n, ok := parseNoqa(f.GetLine(d.Loc.Line))
	return ok && n.covers(d.Code.ID())
}

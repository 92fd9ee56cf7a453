package coding

import (
	"regexp"
	"unicode/utf8"

	"codinglint/internal/diag"
)

// PEP 263: a magic comment must be placed into the source file either as
// the first or the second line.
const headerLines = 2

// magicComment matches "coding:" / "coding=" followed by an encoding name
// made of letters, digits, '-', '_' and '.'. Dotless ı and dotted İ match
// "i" as well; Go's (?i) does not fold them.
var magicComment = regexp.MustCompile(`(?i)cod[iıİ]ng[:=][\s\v\x1c-\x1f\x{85}\p{Z}]*([\p{L}\p{N}_.\-]+)`)

// Declaration returns the encoding token declared on line, if any.
func Declaration(line string) (string, bool) {
	m := magicComment.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Check decides the outcome for a file given its physical lines.
// It reports at most one diagnostic.
func Check(cfg Config, lines []string) (diag.Diagnostic, bool) {
	if len(lines) == 0 {
		return diag.Diagnostic{}, false
	}

	for i, line := range lines[:min(headerLines, len(lines))] {
		enc, ok := Declaration(line)
		if !ok {
			continue
		}
		lineno := i + 1
		if cfg.Mode() == ModeNoDeclarations {
			return finding(diag.CodingPresent, lineno), true
		}
		if !cfg.Accepts(enc) {
			return finding(diag.CodingUnknownEncoding, lineno), true
		}
		return diag.Diagnostic{}, false
	}

	// нет объявления в первых двух строках
	if cfg.Mode() == ModeNoDeclarations {
		return diag.Diagnostic{}, false
	}
	if cfg.OptionalASCII() && !hasNonASCII(lines) {
		return diag.Diagnostic{}, false
	}
	return finding(diag.CodingNotFound, 1), true
}

func finding(code diag.Code, line int) diag.Diagnostic {
	return diag.New(diag.SevWarning, code, diag.At(line, 0), code.Title())
}

// hasNonASCII reports whether any character has a code point above 127.
// Every such character, and every invalid byte, has the high bit set in
// UTF-8, so a byte scan is enough.
func hasNonASCII(lines []string) bool {
	for _, line := range lines {
		for i := 0; i < len(line); i++ {
			if line[i] >= utf8.RuneSelf {
				return true
			}
		}
	}
	return false
}

package driver

import (
	"slices"
	"testing"

	"codinglint/internal/diag"
	"codinglint/internal/source"
)

func TestParseNoqa(t *testing.T) {
	tests := []struct {
		line  string
		ok    bool
		all   bool
		codes []string
	}{
		{"x = 1", false, false, nil},
		{"x = 1  # noqa", true, true, nil},
		{"x = 1  #NOQA", true, true, nil},
		{"x = 1  # noqa: C101", true, false, []string{"C101"}},
		{"x = 1  # noqa:C101,C102", true, false, []string{"C101", "C102"}},
		{"x = 1  # noqa: c101 C103", true, false, []string{"C101", "C103"}},
		{"x = 1  # noqa : C101", true, true, nil},
	}
	for _, tt := range tests {
		n, ok := parseNoqa(tt.line)
		if ok != tt.ok || n.all != tt.all || !slices.Equal(n.codes, tt.codes) {
			t.Errorf("parseNoqa(%q) = %+v, %v", tt.line, n, ok)
		}
	}
}

func TestNoqaCovers(t *testing.T) {
	n := noqa{codes: []string{"C10"}}
	if !n.covers("C101") || n.covers("E501") {
		t.Fatal("prefix matching broken")
	}
}

func TestSuppressed(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.py", []byte("x = 1  # noqa: C102\ny = 2 # noqa\n"))
	file := fs.Get(id)

	c101 := diag.New(diag.SevWarning, diag.CodingNotFound, diag.At(1, 0), "m")
	c102 := diag.New(diag.SevWarning, diag.CodingUnknownEncoding, diag.At(1, 0), "m")
	line2 := diag.New(diag.SevWarning, diag.CodingPresent, diag.At(2, 0), "m")
	line9 := diag.New(diag.SevWarning, diag.CodingPresent, diag.At(9, 0), "m")

	if suppressed(c101, file) {
		t.Error("C101 is not listed")
	}
	if !suppressed(c102, file) {
		t.Error("C102 is listed")
	}
	if !suppressed(line2, file) {
		t.Error("bare noqa covers everything")
	}
	if suppressed(line9, file) {
		t.Error("line past EOF")
	}
}

package diagfmt

import (
	"bytes"
	"testing"
)

func TestDefault(t *testing.T) {
	bag, fs := sampleBag()
	var buf bytes.Buffer
	if err := Default(&buf, bag, fs, TextOpts{PathMode: PathModeRelative}); err != nil {
		t.Fatal(err)
	}
	want := "pkg/bad.py:2:1: C102 Unknown encoding found in coding magic comment\n" +
		"missing.py:1:1: C101 Coding magic comment not found\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestDefaultShowSource(t *testing.T) {
	bag, fs := sampleBag()
	var buf bytes.Buffer
	if err := Default(&buf, bag, fs, TextOpts{PathMode: PathModeBasename, ShowSource: true}); err != nil {
		t.Fatal(err)
	}
	want := "bad.py:2:1: C102 Unknown encoding found in coding magic comment\n" +
		"# coding: cp1252\n" +
		"^\n" +
		"missing.py:1:1: C101 Coding magic comment not found\n" +
		"x = 1\n" +
		"^\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPylint(t *testing.T) {
	bag, fs := sampleBag()
	var buf bytes.Buffer
	if err := Pylint(&buf, bag, fs, TextOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatal(err)
	}
	want := "bad.py:2: [C102] Unknown encoding found in coding magic comment\n" +
		"missing.py:1: [C101] Coding magic comment not found\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestCaretPad(t *testing.T) {
	tests := []struct {
		line string
		col  int
		want string
	}{
		{"abc", 0, ""},
		{"abc", 2, "  "},
		{"\tx", 1, "\t"},
		{"日本x", 2, "    "},
	}
	for _, tt := range tests {
		if got := caretPad(tt.line, tt.col); got != tt.want {
			t.Errorf("caretPad(%q, %d) = %q, want %q", tt.line, tt.col, got, tt.want)
		}
	}
}

func TestParsePathMode(t *testing.T) {
	for s, want := range map[string]PathMode{"": PathModeAuto, "auto": PathModeAuto, "absolute": PathModeAbsolute, "relative": PathModeRelative, "basename": PathModeBasename} {
		got, err := ParsePathMode(s)
		if err != nil || got != want {
			t.Errorf("ParsePathMode(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := ParsePathMode("short"); err == nil {
		t.Error("unknown mode accepted")
	}
}

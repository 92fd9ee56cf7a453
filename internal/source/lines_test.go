package source

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: nil},
		{name: "lf", in: "a\nb\n", want: []string{"a\n", "b\n"}},
		{name: "no trailing newline", in: "a\nb", want: []string{"a\n", "b"}},
		{name: "crlf is one boundary", in: "a\r\nb", want: []string{"a\r\n", "b"}},
		{name: "lone cr", in: "a\rb", want: []string{"a\r", "b"}},
		{name: "form feed", in: "a\fb", want: []string{"a\f", "b"}},
		{name: "line separator", in: "a\u2028b", want: []string{"a\u2028", "b"}},
		{name: "next line", in: "é\u0085b", want: []string{"é\u0085", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("SplitLines(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsStdin(t *testing.T) {
	for _, name := range []string{"stdin", "-", ""} {
		if !IsStdin(name) {
			t.Errorf("IsStdin(%q) = false", name)
		}
	}
	for _, name := range []string{"main.py", "./-", "stdin.py"} {
		if IsStdin(name) {
			t.Errorf("IsStdin(%q) = true", name)
		}
	}
}

func TestDiskSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mod.py")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBF# coding: latin-1\r\nx = 1\ry = 2"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	lines, err := DiskSource{}.Lines(path)
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	want := []string{"# coding: latin-1\n", "x = 1\n", "y = 2"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("got %q, want %q", lines, want)
	}
}

func TestDiskSourceMissingFile(t *testing.T) {
	_, err := DiskSource{}.Lines(filepath.Join(t.TempDir(), "nope.py"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestStdinSourceReadsOnce(t *testing.T) {
	src := NewStdinSource(strings.NewReader("a\nb\n"))
	first, err := src.Lines("-")
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	second, err := src.Lines("stdin")
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if !reflect.DeepEqual(first, second) || len(first) != 2 {
		t.Fatalf("expected cached lines, got %q and %q", first, second)
	}

	if _, err := NewStdinSource(failingReader{}).Lines("-"); err == nil {
		t.Fatal("expected read error")
	}
}

func TestAutoSourceDispatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.py")
	if err := os.WriteFile(path, []byte("disk\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	auto := NewAutoSource(strings.NewReader("piped\n"))

	lines, err := auto.Lines("-")
	if err != nil || len(lines) != 1 || lines[0] != "piped\n" {
		t.Fatalf("stdin dispatch: %q, %v", lines, err)
	}
	lines, err = auto.Lines(path)
	if err != nil || len(lines) != 1 || lines[0] != "disk\n" {
		t.Fatalf("disk dispatch: %q, %v", lines, err)
	}
}

func TestStdinSourceDropsBOM(t *testing.T) {
	src := NewStdinSource(strings.NewReader("\xef\xbb\xbfx = 1\n"))
	lines, err := src.Lines("-")
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if !reflect.DeepEqual(lines, []string{"x = 1\n"}) {
		t.Fatalf("Lines = %q", lines)
	}
	if !src.HadBOM() {
		t.Error("HadBOM() = false")
	}

	fs := NewFileSet()
	id, err := fs.LoadStdin(NewStdinSource(strings.NewReader("\xef\xbb\xbfx = 1\n")))
	if err != nil {
		t.Fatalf("LoadStdin: %v", err)
	}
	f := fs.Get(id)
	if f.Flags&FileHadBOM == 0 || string(f.Content) != "x = 1\n" {
		t.Fatalf("flags=%b content=%q", f.Flags, f.Content)
	}

	plain := NewStdinSource(strings.NewReader("x = 1\n"))
	if _, err := plain.Text(); err != nil || plain.HadBOM() {
		t.Fatalf("plain stream: err=%v bom=%v", err, plain.HadBOM())
	}
}

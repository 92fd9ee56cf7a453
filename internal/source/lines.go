package source

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// StdinName is the display name given to content read from standard input.
const StdinName = "stdin"

// LineSource returns the physical lines of a named file, line terminators
// included. Failures are recoverable I/O errors.
type LineSource interface {
	Lines(name string) ([]string, error)
}

// IsStdin reports whether name is one of the sentinels meaning
// "read from the process standard input".
func IsStdin(name string) bool {
	switch name {
	case StdinName, "-", "":
		return true
	}
	return false
}

// DiskSource reads files from the filesystem. A UTF-8 BOM is dropped and
// newlines are normalised before splitting.
type DiskSource struct{}

func (DiskSource) Lines(name string) ([]string, error) {
	content, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	content, _ = removeBOM(content)
	content, _ = normalizeCRLF(content)
	return splitNewlines(content), nil
}

// StdinSource reads a stream once and serves its lines to every caller.
// A leading UTF-8 BOM is dropped, as for files on disk.
type StdinSource struct {
	r      io.Reader
	once   sync.Once
	text   string
	hadBOM bool
	err    error
}

// NewStdinSource wraps r; pass os.Stdin in production.
func NewStdinSource(r io.Reader) *StdinSource {
	return &StdinSource{r: r}
}

// Text returns the whole stream content, reading it on first use.
func (s *StdinSource) Text() (string, error) {
	s.once.Do(func() {
		if s.r == nil {
			s.err = fmt.Errorf("stdin: no reader")
			return
		}
		data, err := io.ReadAll(s.r)
		if err != nil {
			s.err = fmt.Errorf("stdin: %w", err)
			return
		}
		data, s.hadBOM = removeBOM(data)
		s.text = string(data)
	})
	return s.text, s.err
}

// HadBOM reports whether the stream started with a UTF-8 BOM. It is only
// meaningful after Text.
func (s *StdinSource) HadBOM() bool {
	return s.hadBOM
}

func (s *StdinSource) Lines(string) ([]string, error) {
	text, err := s.Text()
	if err != nil {
		return nil, err
	}
	return SplitLines(text), nil
}

// AutoSource dispatches on the stdin sentinel: stdin names go to Stdin,
// everything else to Disk.
type AutoSource struct {
	Stdin *StdinSource
	Disk  DiskSource
}

// NewAutoSource builds an AutoSource reading standard input from stdin.
func NewAutoSource(stdin io.Reader) *AutoSource {
	return &AutoSource{Stdin: NewStdinSource(stdin)}
}

func (a *AutoSource) Lines(name string) ([]string, error) {
	if IsStdin(name) && a.Stdin == nil {
		return nil, fmt.Errorf("stdin: not available")
	}
	return a.Select(name).Lines(name)
}

// Select picks the source that serves name.
func (a *AutoSource) Select(name string) LineSource {
	if IsStdin(name) && a.Stdin != nil {
		return a.Stdin
	}
	return a.Disk
}

package coding

import (
	"slices"
	"strings"
)

// Option names as seen on the command line and in configuration files.
const (
	OptAcceptEncodings     = "accept-encodings"
	OptNoAcceptEncodings   = "no-accept-encodings"
	OptOptionalASCIICoding = "optional-ascii-coding"

	DefaultAcceptEncodings = "latin-1, utf-8"
)

// Mode selects how declarations are judged.
type Mode uint8

const (
	// ModeAllowList checks declarations against the accepted encodings and
	// requires one to be present.
	ModeAllowList Mode = iota
	// ModeNoDeclarations flags every declaration.
	ModeNoDeclarations
)

func (m Mode) String() string {
	if m == ModeNoDeclarations {
		return "no-declarations"
	}
	return "allow-list"
}

// Config is immutable once built; copies share the allow-list read-only.
type Config struct {
	mode          Mode
	encodings     []string
	accepted      map[string]struct{}
	optionalASCII bool
}

// NewConfig builds a Config from raw option values. acceptEncodings is a
// comma separated list; entries are trimmed, lower-cased and empty ones
// dropped. noAccept switches to ModeNoDeclarations and wins over the list.
func NewConfig(acceptEncodings string, noAccept, optionalASCII bool) Config {
	cfg := Config{optionalASCII: optionalASCII}
	if noAccept {
		cfg.mode = ModeNoDeclarations
		return cfg
	}
	cfg.mode = ModeAllowList
	cfg.accepted = make(map[string]struct{})
	for _, e := range strings.Split(acceptEncodings, ",") {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if _, dup := cfg.accepted[e]; dup {
			continue
		}
		cfg.accepted[e] = struct{}{}
		cfg.encodings = append(cfg.encodings, e)
	}
	return cfg
}

// DefaultConfig matches the option defaults.
func DefaultConfig() Config {
	return NewConfig(DefaultAcceptEncodings, false, false)
}

func (c Config) Mode() Mode {
	return c.mode
}

// Encodings returns the allow-list in configuration order.
func (c Config) Encodings() []string {
	return slices.Clone(c.encodings)
}

// Accepts reports whether name (any case) is on the allow-list.
func (c Config) Accepts(name string) bool {
	_, ok := c.accepted[strings.ToLower(name)]
	return ok
}

func (c Config) OptionalASCII() bool {
	return c.optionalASCII
}

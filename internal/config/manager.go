package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/spf13/pflag"

	"codinglint/internal/plugin"
)

// Manager is the host side of option registration. Options become flags on
// a pflag.FlagSet; values resolve as explicit flag, then configuration file
// (for options allowed there), then default.
type Manager struct {
	flags  *pflag.FlagSet
	opts   []plugin.Option
	byName map[string]int
	file   *File
}

var _ plugin.OptionRegistrar = (*Manager)(nil)
var _ plugin.Values = (*Manager)(nil)

func NewManager(flags *pflag.FlagSet) *Manager {
	if flags == nil {
		flags = pflag.NewFlagSet("codinglint", pflag.ContinueOnError)
	}
	return &Manager{
		flags:  flags,
		byName: make(map[string]int),
	}
}

// Flags exposes the underlying flag set.
func (m *Manager) Flags() *pflag.FlagSet {
	return m.flags
}

func (m *Manager) AddOption(opt plugin.Option) error {
	if opt.Name == "" {
		return fmt.Errorf("option without name")
	}
	if _, ok := m.byName[opt.Name]; ok || m.flags.Lookup(opt.Name) != nil {
		return fmt.Errorf("option %q already defined", opt.Name)
	}

	switch opt.Kind {
	case plugin.KindString:
		m.flags.String(opt.Name, opt.Default, opt.Help)
	case plugin.KindBool:
		def := false
		if opt.Default != "" {
			b, err := strconv.ParseBool(opt.Default)
			if err != nil {
				return fmt.Errorf("option %q: bad default %q: %w", opt.Name, opt.Default, err)
			}
			def = b
		}
		m.flags.Bool(opt.Name, def, opt.Help)
	case plugin.KindInt:
		def := 0
		if opt.Default != "" {
			n, err := strconv.Atoi(opt.Default)
			if err != nil {
				return fmt.Errorf("option %q: bad default %q: %w", opt.Name, opt.Default, err)
			}
			def = n
		}
		m.flags.Int(opt.Name, def, opt.Help)
	default:
		return fmt.Errorf("option %q: unsupported kind %s", opt.Name, opt.Kind)
	}

	m.byName[opt.Name] = len(m.opts)
	m.opts = append(m.opts, opt)
	return nil
}

// Options returns registered options in registration order.
func (m *Manager) Options() []plugin.Option {
	return slices.Clone(m.opts)
}

// SetFile attaches a decoded configuration file; nil detaches.
func (m *Manager) SetFile(f *File) {
	m.file = f
}

func (m *Manager) File() *File {
	return m.file
}

// UnknownKeys lists file keys that match no registered option.
func (m *Manager) UnknownKeys() []string {
	var unknown []string
	for _, k := range m.file.Keys() {
		if _, ok := m.byName[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	return unknown
}

// Validate type-checks every file value that belongs to a registered option.
func (m *Manager) Validate() error {
	for _, opt := range m.opts {
		if !opt.ParseFromConfig {
			continue
		}
		raw, ok := m.file.Lookup(opt.Name)
		if !ok {
			continue
		}
		var err error
		switch opt.Kind {
		case plugin.KindString:
			_, err = fileString(raw)
		case plugin.KindBool:
			_, err = fileBool(raw)
		case plugin.KindInt:
			_, err = fileInt(raw)
		}
		if err != nil {
			return fmt.Errorf("%s: %s: %w", m.file.Path, opt.Name, err)
		}
	}
	return nil
}

// Source reports where the value of name comes from: "flag", "file" or
// "default".
func (m *Manager) Source(name string) string {
	if f := m.flags.Lookup(name); f != nil && f.Changed {
		return "flag"
	}
	if _, ok := m.fileValue(name); ok {
		return "file"
	}
	return "default"
}

func (m *Manager) fileValue(name string) (any, bool) {
	idx, ok := m.byName[name]
	if !ok || !m.opts[idx].ParseFromConfig {
		return nil, false
	}
	return m.file.Lookup(name)
}

func (m *Manager) option(name string, kind plugin.OptionKind) error {
	idx, ok := m.byName[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, plugin.ErrUnknownOption)
	}
	if m.opts[idx].Kind != kind {
		return fmt.Errorf("option %q is %s, not %s", name, m.opts[idx].Kind, kind)
	}
	return nil
}

func (m *Manager) GetString(name string) (string, error) {
	if err := m.option(name, plugin.KindString); err != nil {
		return "", err
	}
	if m.Source(name) == "file" {
		raw, _ := m.fileValue(name)
		return fileString(raw)
	}
	return m.flags.GetString(name)
}

func (m *Manager) GetBool(name string) (bool, error) {
	if err := m.option(name, plugin.KindBool); err != nil {
		return false, err
	}
	if m.Source(name) == "file" {
		raw, _ := m.fileValue(name)
		return fileBool(raw)
	}
	return m.flags.GetBool(name)
}

func (m *Manager) GetInt(name string) (int, error) {
	if err := m.option(name, plugin.KindInt); err != nil {
		return 0, err
	}
	if m.Source(name) == "file" {
		raw, _ := m.fileValue(name)
		return fileInt(raw)
	}
	return m.flags.GetInt(name)
}

// GetList splits a comma separated string option.
func (m *Manager) GetList(name string) ([]string, error) {
	s, err := m.GetString(name)
	if err != nil {
		return nil, err
	}
	return SplitList(s), nil
}

// Fingerprint hashes the resolved values of names. Equal fingerprints mean
// equal effective configuration for those options.
func (m *Manager) Fingerprint(names ...string) (string, error) {
	names = slices.Clone(names)
	slices.Sort(names)
	h := sha256.New()
	for _, name := range names {
		idx, ok := m.byName[name]
		if !ok {
			return "", fmt.Errorf("%q: %w", name, plugin.ErrUnknownOption)
		}
		var value string
		switch m.opts[idx].Kind {
		case plugin.KindString:
			s, err := m.GetString(name)
			if err != nil {
				return "", err
			}
			value = s
		case plugin.KindBool:
			b, err := m.GetBool(name)
			if err != nil {
				return "", err
			}
			value = strconv.FormatBool(b)
		case plugin.KindInt:
			n, err := m.GetInt(name)
			if err != nil {
				return "", err
			}
			value = strconv.Itoa(n)
		}
		fmt.Fprintf(h, "%s=%s\x00", name, value)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SplitList splits a comma separated value, trimming blanks.
func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func fileString(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return "", fmt.Errorf("expected list of strings, got element %v (%T)", item, item)
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ", "), nil
	}
	return "", fmt.Errorf("expected string, got %T", raw)
}

func fileBool(raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, fmt.Errorf("expected boolean, got %q", v)
		}
		return b, nil
	}
	return false, fmt.Errorf("expected boolean, got %T", raw)
}

func fileInt(raw any) (int, error) {
	switch v := raw.(type) {
	case int64:
		n, err := safecast.Conv[int](v)
		if err != nil {
			return 0, fmt.Errorf("integer out of range: %w", err)
		}
		return n, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("expected integer, got %q", v)
		}
		return n, nil
	}
	return 0, fmt.Errorf("expected integer, got %T", raw)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	FileName       = "codinglint.toml"
	HiddenFileName = ".codinglint.toml"
	PyprojectName  = "pyproject.toml"

	section = "codinglint"
)

// File is a decoded configuration section.
type File struct {
	Path string
	// Section is the table the values came from: "", "codinglint" or
	// "tool.codinglint".
	Section string
	values  map[string]any
}

// Lookup returns the raw TOML value for key.
func (f *File) Lookup(key string) (any, bool) {
	if f == nil {
		return nil, false
	}
	v, ok := f.values[normalizeKey(key)]
	return v, ok
}

// Keys returns all keys of the section, sorted.
func (f *File) Keys() []string {
	if f == nil {
		return nil
	}
	keys := make([]string, 0, len(f.values))
	for k := range f.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Find walks from startDir upwards and returns the first configuration file.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range []string{FileName, HiddenFileName} {
			candidate := filepath.Join(dir, name)
			ok, err := exists(candidate)
			if err != nil {
				return "", false, err
			}
			if ok {
				return candidate, true, nil
			}
		}
		candidate := filepath.Join(dir, PyprojectName)
		ok, err := exists(candidate)
		if err != nil {
			return "", false, err
		}
		if ok && hasToolSection(candidate) {
			return candidate, true, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func exists(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return true, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("failed to stat %q: %w", path, err)
	}
	return false, nil
}

// hasToolSection reports whether a pyproject.toml carries [tool.codinglint].
// Unparsable files are skipped during discovery.
func hasToolSection(path string) bool {
	var raw map[string]any
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return false
	}
	return meta.IsDefined("tool", section)
}

// Load decodes path. For pyproject.toml the [tool.codinglint] table is
// required; other files may use a [codinglint] table or top-level keys.
func Load(path string) (*File, error) {
	var raw map[string]any
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	f := &File{Path: path}
	table := raw
	if filepath.Base(path) == PyprojectName {
		tool, _ := raw["tool"].(map[string]any)
		sub, ok := tool[section].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: missing [tool.%s]", path, section)
		}
		table = sub
		f.Section = "tool." + section
	} else if sub, ok := raw[section].(map[string]any); ok {
		table = sub
		f.Section = section
	}

	f.values = make(map[string]any, len(table))
	for k, v := range table {
		f.values[normalizeKey(k)] = v
	}
	return f, nil
}

// Discover finds and loads the configuration for startDir; a nil File
// means none was found.
func Discover(startDir string) (*File, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, err
	}
	return Load(path)
}

func normalizeKey(k string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(k)), "_", "-")
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"codinglint/internal/plugin"
)

// Template renders a starter configuration file carrying the defaults of
// every option that may be set from a file.
func Template(opts []plugin.Option) (string, error) {
	var b strings.Builder
	b.WriteString("# codinglint configuration\n")
	b.WriteString("[" + section + "]\n")
	enc := toml.NewEncoder(&b)
	for _, opt := range opts {
		if !opt.ParseFromConfig {
			continue
		}
		var v any
		var err error
		switch opt.Kind {
		case plugin.KindBool:
			v, err = fileBool(opt.Default)
		case plugin.KindInt:
			v, err = fileInt(opt.Default)
		default:
			v = opt.Default
		}
		if err != nil {
			return "", fmt.Errorf("option %q: %w", opt.Name, err)
		}
		if err := enc.Encode(map[string]any{opt.Name: v}); err != nil {
			return "", fmt.Errorf("option %q: %w", opt.Name, err)
		}
	}
	return b.String(), nil
}

// WriteTemplate creates dir/codinglint.toml; an existing file is an error.
func WriteTemplate(dir, content string) (string, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to stat %q: %w", path, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %q: %w", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %q: %w", path, err)
	}
	return path, nil
}

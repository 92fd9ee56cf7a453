package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"codinglint/internal/source"
)

// Target is one file to check.
type Target struct {
	Path  string
	Stdin bool
	// Explicit targets were named on the command line and bypass the
	// filename patterns.
	Explicit bool
}

// Matcher applies filename and exclude glob patterns. Patterns match the
// base name or the whole path, like shell globs.
type Matcher struct {
	Filename []string
	Exclude  []string
}

func (m Matcher) Excluded(path string) bool {
	return matchAny(m.Exclude, path)
}

// Wanted reports whether a discovered file matches the filename patterns.
// An empty pattern list wants every file.
func (m Matcher) Wanted(path string) bool {
	if len(m.Filename) == 0 {
		return true
	}
	return matchAny(m.Filename, path)
}

func matchAny(patterns []string, path string) bool {
	base := filepath.Base(path)
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, base); ok {
			return true
		}
		if ok, _ := filepath.Match(p, path); ok {
			return true
		}
		if ok, _ := filepath.Match(p, abs); ok {
			return true
		}
	}
	return false
}

// Expand turns command line paths into targets. Directories are walked
// recursively, excluded directories pruned. Missing paths are returned
// in skipped, the walk goes on.
func Expand(paths []string, m Matcher) (targets []Target, skipped []string, err error) {
	seen := make(map[string]bool)
	add := func(t Target) {
		key := t.Path
		if !t.Stdin {
			key = filepath.Clean(t.Path)
		}
		if seen[key] {
			return
		}
		seen[key] = true
		targets = append(targets, t)
	}

	for _, p := range paths {
		if source.IsStdin(p) && p != "" {
			add(Target{Path: source.StdinName, Stdin: true, Explicit: true})
			continue
		}
		info, statErr := os.Stat(p)
		if statErr != nil {
			if errors.Is(statErr, os.ErrNotExist) {
				skipped = append(skipped, p)
				continue
			}
			return nil, nil, fmt.Errorf("failed to stat %q: %w", p, statErr)
		}
		if !info.IsDir() {
			if !m.Excluded(p) {
				add(Target{Path: p, Explicit: true})
			}
			continue
		}

		var found []string
		walkErr := filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// нечитаемые каталоги пропускаем
				skipped = append(skipped, path)
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if path != p && m.Excluded(path) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.IsDir() && d.Type().IsRegular() && m.Wanted(path) {
				found = append(found, path)
			}
			return nil
		})
		if walkErr != nil {
			return nil, nil, walkErr
		}
		// Сортируем для детерминированного порядка
		sort.Strings(found)
		for _, f := range found {
			add(Target{Path: f})
		}
	}
	return targets, skipped, nil
}

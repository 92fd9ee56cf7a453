package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type uiMode uint8

const (
	uiModeAuto uiMode = iota
	uiModeOn
	uiModeOff
)

func readUIMode(cmd *cobra.Command) (uiMode, error) {
	value, err := cmd.Flags().GetString("ui")
	if err != nil {
		return uiModeAuto, fmt.Errorf("failed to get ui flag: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return uiModeAuto, usageError(fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value))
	}
}

// shouldUseTUI decides whether the progress view is shown. Machine readable
// formats and stdin input never get one; auto also wants a terminal on
// stderr and at least one directory to walk.
func (a *app) shouldUseTUI(mode uiMode, format string, paths []string) bool {
	if format == "json" || format == "sarif" {
		return false
	}
	for _, p := range paths {
		if p == "-" || p == "stdin" {
			return false
		}
	}
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	}
	return isTerminalWriter(a.stderr) && hasDirectory(paths)
}

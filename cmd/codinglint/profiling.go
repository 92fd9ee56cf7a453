package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"codinglint/internal/prof"
)

// startProfiling reads the persistent profiling flags. The session is
// stopped by execute once the command returns.
func (a *app) startProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var (
		cfg prof.Config
		err error
	)
	if cfg.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if cfg.Mem, err = flags.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if cfg.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !cfg.Enabled() {
		return nil
	}
	a.profile, err = prof.Start(cfg)
	return err
}

func (a *app) stopProfiling() {
	if err := a.profile.Stop(); err != nil {
		a.logger.Error("profiling", "err", err)
	}
}

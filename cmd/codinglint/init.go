package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"codinglint/internal/config"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a codinglint.toml with default settings",
		Long: `Write a codinglint.toml listing every option that may be set from a
configuration file, with its default value. If [dir] is omitted, the current
directory is used. An existing file is never overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			content, err := config.Template(a.options.Options())
			if err != nil {
				return err
			}
			path, err := config.WriteTemplate(dir, content)
			if err != nil {
				return usageError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
			return nil
		},
	}
}

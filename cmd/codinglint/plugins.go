package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"codinglint/internal/diag"
	"codinglint/internal/plugin"
)

type pluginOptionSet struct {
	plugin.OptionSet
}

func (s *pluginOptionSet) names() []string {
	out := make([]string, len(s.Options))
	for i, o := range s.Options {
		out[i] = o.Name
	}
	return out
}

func newPluginsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "plugins [codes...]",
		Short: "List installed plugins, their codes and options",
		Long: `List installed plugins, their codes and options. With codes given
(e.g. C101), print the plugin that owns each code instead.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return a.printOwners(cmd.OutOrStdout(), args)
			}
			if err := a.loadConfig(cmd); err != nil {
				return err
			}
			return a.printPlugins(cmd.OutOrStdout())
		},
	}
}

// printOwners prints "CODE  plugin version  title" for every requested code.
func (a *app) printOwners(out io.Writer, ids []string) error {
	for _, id := range ids {
		code, ok := diag.ParseCode(strings.ToUpper(strings.TrimSpace(id)))
		if !ok {
			return usageError(fmt.Errorf("unknown code %q", id))
		}
		p, ok := a.registry.Owner(code)
		if !ok {
			return usageError(fmt.Errorf("no installed plugin reports %s", code.ID()))
		}
		fmt.Fprintf(out, "%s  %s %s  %s\n", code.ID(), p.Name(), p.Version(), code.Title())
	}
	return nil
}

// unknownSelectors returns entries that are not a prefix of any code an
// installed plugin reports.
func (a *app) unknownSelectors(entries []string) []string {
	var unknown []string
	for _, e := range entries {
		prefix := strings.ToUpper(strings.TrimSpace(e))
		known := false
		for _, p := range a.registry.All() {
			for _, code := range p.Codes() {
				if strings.HasPrefix(code.ID(), prefix) {
					known = true
				}
			}
		}
		if !known {
			unknown = append(unknown, e)
		}
	}
	return unknown
}

func (a *app) printPlugins(out io.Writer) error {
	for _, p := range a.registry.All() {
		fmt.Fprintf(out, "%s %s\n", p.Name(), p.Version())
		for _, code := range p.Codes() {
			fmt.Fprintf(out, "  %s  %s\n", code.ID(), code.Title())
		}

		var set plugin.OptionSet
		if err := p.AddOptions(&set); err != nil {
			return fmt.Errorf("%s: %w", p.Name(), err)
		}
		for _, opt := range set.Options {
			value, err := a.optionValue(opt)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "  --%s (%s) = %s [%s]\n      %s\n",
				opt.Name, opt.Kind, value, a.options.Source(opt.Name), opt.Help)
		}
	}
	return nil
}

func (a *app) optionValue(opt plugin.Option) (string, error) {
	switch opt.Kind {
	case plugin.KindBool:
		b, err := a.options.GetBool(opt.Name)
		return strconv.FormatBool(b), err
	case plugin.KindInt:
		n, err := a.options.GetInt(opt.Name)
		return strconv.Itoa(n), err
	default:
		s, err := a.options.GetString(opt.Name)
		return strconv.Quote(s), err
	}
}

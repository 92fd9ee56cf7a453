package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codinglint/internal/config"
)

// loadConfig attaches the configuration file selected by --config or found
// by discovery, unless --isolated is set.
func (a *app) loadConfig(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	path, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	isolated, err := flags.GetBool("isolated")
	if err != nil {
		return fmt.Errorf("failed to get isolated flag: %w", err)
	}

	var file *config.File
	switch {
	case isolated:
		a.logger.Debug("configuration files ignored")
	case path != "":
		file, err = config.Load(path)
	default:
		var wd string
		wd, err = os.Getwd()
		if err == nil {
			file, err = config.Discover(wd)
		}
	}
	if err != nil {
		return usageError(err)
	}

	a.options.SetFile(file)
	if file == nil {
		return nil
	}
	a.logger.Info("using configuration", "path", file.Path, "section", file.Section)
	if err := a.options.Validate(); err != nil {
		return usageError(err)
	}
	for _, key := range a.options.UnknownKeys() {
		a.logger.Warn("unknown configuration key", "path", file.Path, "key", key)
	}
	return nil
}

// configure loads configuration and hands option values to the plugins.
func (a *app) configure(cmd *cobra.Command) (config.Settings, error) {
	if err := a.loadConfig(cmd); err != nil {
		return config.Settings{}, err
	}
	if err := a.registry.Configure(a.options); err != nil {
		return config.Settings{}, usageError(err)
	}
	settings, err := config.ReadSettings(a.options)
	if err != nil {
		return config.Settings{}, usageError(err)
	}
	return settings, nil
}

// pluginOptionNames lists option names registered by plugins, for the
// cache fingerprint.
func (a *app) pluginOptionNames() ([]string, error) {
	var set pluginOptionSet
	if err := a.registry.AddOptions(&set); err != nil {
		return nil, err
	}
	return set.names(), nil
}

// Package config finds and decodes codinglint configuration files and
// resolves option values from command-line flags, the file and defaults.
//
// Lookup order for a configuration file, walking from the start directory
// up to the filesystem root, first hit wins:
//
//	codinglint.toml          keys at top level or under [codinglint]
//	.codinglint.toml         same
//	pyproject.toml           keys under [tool.codinglint]
//
// Key spellings with underscores are accepted and treated as hyphenated.
package config

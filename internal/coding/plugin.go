package coding

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"sync"

	"codinglint/internal/diag"
	"codinglint/internal/plugin"
	"codinglint/internal/source"
)

const (
	// Name is the origin stamped on every diagnostic of this plugin.
	Name    = "coding"
	Version = "1.3.3"
)

// Plugin wires the checker into a plugin.Registry.
type Plugin struct {
	logger *slog.Logger

	mu     sync.Mutex
	cfg    Config
	parsed bool
}

// NewPlugin returns an unconfigured plugin; logger may be nil.
func NewPlugin(logger *slog.Logger) *Plugin {
	if logger == nil {
		logger = slog.Default()
	}
	return &Plugin{logger: logger, cfg: DefaultConfig()}
}

func (p *Plugin) Name() string    { return Name }
func (p *Plugin) Version() string { return Version }

func (p *Plugin) Codes() []diag.Code {
	return []diag.Code{diag.CodingNotFound, diag.CodingUnknownEncoding, diag.CodingPresent}
}

// Options lists the plugin's options with their defaults.
func Options() []plugin.Option {
	return []plugin.Option{
		{
			Name:            OptAcceptEncodings,
			Kind:            plugin.KindString,
			Default:         DefaultAcceptEncodings,
			Help:            "Acceptable source code encodings for 'coding:' magic comment",
			ParseFromConfig: true,
		},
		{
			Name:            OptNoAcceptEncodings,
			Kind:            plugin.KindBool,
			Default:         "false",
			Help:            "Warn for files containing a 'coding:' magic comment",
			ParseFromConfig: true,
		},
		{
			Name:            OptOptionalASCIICoding,
			Kind:            plugin.KindBool,
			Default:         "false",
			Help:            "Do not force 'coding:' header on ascii only files",
			ParseFromConfig: true,
		},
	}
}

func (p *Plugin) AddOptions(host any) error {
	return plugin.RegisterOptions(host, Options()...)
}

// ParseOptions builds the process-wide Config. A second call fails with
// plugin.ErrAlreadyConfigured.
func (p *Plugin) ParseOptions(values plugin.Values) error {
	accept, err := values.GetString(OptAcceptEncodings)
	if err != nil {
		return fmt.Errorf("%s: %w", OptAcceptEncodings, err)
	}
	noAccept, err := values.GetBool(OptNoAcceptEncodings)
	if err != nil {
		return fmt.Errorf("%s: %w", OptNoAcceptEncodings, err)
	}
	optionalASCII, err := values.GetBool(OptOptionalASCIICoding)
	if err != nil {
		return fmt.Errorf("%s: %w", OptOptionalASCIICoding, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.parsed {
		return plugin.ErrAlreadyConfigured
	}
	p.cfg = NewConfig(accept, noAccept, optionalASCII)
	p.parsed = true

	if unknown := UnknownEncodings(p.cfg.Encodings()); len(unknown) > 0 {
		p.logger.Warn("accept-encodings lists names unknown to the encoding registries", "names", unknown)
	}
	p.logger.Debug("coding options parsed",
		"mode", p.cfg.Mode().String(),
		"encodings", p.cfg.Encodings(),
		"optional_ascii", p.cfg.OptionalASCII())
	return nil
}

// Config returns the parsed configuration (defaults before ParseOptions).
func (p *Plugin) Config() Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg
}

func (p *Plugin) NewChecker(filename string, lines source.LineSource) plugin.Checker {
	return &Checker{
		cfg:      p.Config(),
		filename: filename,
		lines:    lines,
		logger:   p.logger,
	}
}

// Checker runs the encoding declaration check for one file.
type Checker struct {
	cfg      Config
	filename string
	lines    source.LineSource
	logger   *slog.Logger
}

// NewChecker builds a standalone checker outside of a registry.
func NewChecker(cfg Config, filename string, lines source.LineSource) *Checker {
	return &Checker{cfg: cfg, filename: filename, lines: lines, logger: slog.Default()}
}

// Run reads the file lazily, on first iteration. Read failures end the
// sequence without diagnostics.
func (c *Checker) Run(ctx context.Context) iter.Seq[diag.Diagnostic] {
	return func(yield func(diag.Diagnostic) bool) {
		if ctx.Err() != nil || c.lines == nil {
			return
		}
		lines, err := c.lines.Lines(c.filename)
		if err != nil {
			c.logger.Debug("coding: skipping unreadable file", "file", c.filename, "err", err)
			return
		}
		if d, ok := Check(c.cfg, lines); ok {
			yield(d.WithOrigin(Name))
		}
	}
}

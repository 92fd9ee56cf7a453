package plugin

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"sync"

	"codinglint/internal/diag"
	"codinglint/internal/source"
)

// Checker inspects one file.
type Checker interface {
	Run(ctx context.Context) iter.Seq[diag.Diagnostic]
}

// Plugin is a checker family discovered by the host.
type Plugin interface {
	Name() string
	Version() string
	// Codes lists every code the plugin may emit.
	Codes() []diag.Code
	AddOptions(host any) error
	ParseOptions(values Values) error
	// NewChecker binds a checker to filename; lines supplies its content.
	NewChecker(filename string, lines source.LineSource) Checker
}

// Registry holds plugins in registration order.
type Registry struct {
	mu         sync.Mutex
	plugins    []Plugin
	byName     map[string]int
	configured bool
}

// NewRegistry creates an empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make([]Plugin, 0),
		byName:  make(map[string]int),
	}
}

// Register adds p; names must be unique.
func (r *Registry) Register(p Plugin) error {
	if p == nil {
		return fmt.Errorf("register: nil plugin")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.configured {
		return fmt.Errorf("register %q: %w", p.Name(), ErrAlreadyConfigured)
	}
	if _, ok := r.byName[p.Name()]; ok {
		return fmt.Errorf("register %q: plugin already registered", p.Name())
	}
	r.byName[p.Name()] = len(r.plugins)
	r.plugins = append(r.plugins, p)
	return nil
}

// MustRegister is Register for static setup code.
func (r *Registry) MustRegister(p Plugin) {
	if err := r.Register(p); err != nil {
		panic(err)
	}
}

// All returns the plugins in registration order.
func (r *Registry) All() []Plugin {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.plugins)
}

// Lookup finds a plugin by name.
func (r *Registry) Lookup(name string) (Plugin, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.plugins[idx], true
}

// Owner returns the plugin declaring code.
func (r *Registry) Owner(code diag.Code) (Plugin, bool) {
	for _, p := range r.All() {
		if slices.Contains(p.Codes(), code) {
			return p, true
		}
	}
	return nil, false
}

// AddOptions lets every plugin register its options with host.
func (r *Registry) AddOptions(host any) error {
	for _, p := range r.All() {
		if err := p.AddOptions(host); err != nil {
			return fmt.Errorf("%s: %w", p.Name(), err)
		}
	}
	return nil
}

// Configure hands values to every plugin. It may run only once per registry.
func (r *Registry) Configure(values Values) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.configured {
		return ErrAlreadyConfigured
	}
	for _, p := range r.plugins {
		if err := p.ParseOptions(values); err != nil {
			return fmt.Errorf("%s: %w", p.Name(), err)
		}
	}
	r.configured = true
	return nil
}

// Configured reports whether Configure succeeded.
func (r *Registry) Configured() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.configured
}

package plugin

import (
	"context"
	"errors"
	"iter"
	"slices"
	"testing"

	"codinglint/internal/diag"
	"codinglint/internal/source"
)

type preferredHost struct {
	names []string
}

func (h *preferredHost) AddOption(opt Option) error {
	h.names = append(h.names, opt.Name)
	return nil
}

type legacyHost struct {
	flags  []string
	config []string
}

func (h *legacyHost) AddFlag(opt Option) error {
	h.flags = append(h.flags, opt.Name)
	return nil
}

func (h *legacyHost) AllowConfig(names ...string) {
	h.config = append(h.config, names...)
}

// bothHost exposes both hooks; the preferred one must win.
type bothHost struct {
	preferredHost
	legacyHost
}

var testOptions = []Option{
	{Name: "alpha", Kind: KindString, Default: "a", ParseFromConfig: true},
	{Name: "beta", Kind: KindBool, Default: "false"},
	{Name: "gamma", Kind: KindBool, Default: "false", ParseFromConfig: true},
}

func TestRegisterOptionsPreferred(t *testing.T) {
	h := &preferredHost{}
	if err := RegisterOptions(h, testOptions...); err != nil {
		t.Fatal(err)
	}
	if want := []string{"alpha", "beta", "gamma"}; !slices.Equal(h.names, want) {
		t.Fatalf("names = %v", h.names)
	}
}

func TestRegisterOptionsLegacy(t *testing.T) {
	h := &legacyHost{}
	if err := RegisterOptions(h, testOptions...); err != nil {
		t.Fatal(err)
	}
	if len(h.flags) != 3 {
		t.Fatalf("flags = %v", h.flags)
	}
	if want := []string{"alpha", "gamma"}; !slices.Equal(h.config, want) {
		t.Fatalf("config = %v", h.config)
	}
}

func TestRegisterOptionsPrefersNewHook(t *testing.T) {
	h := &bothHost{}
	if err := RegisterOptions(h, testOptions...); err != nil {
		t.Fatal(err)
	}
	if len(h.preferredHost.names) != 3 || len(h.legacyHost.flags) != 0 {
		t.Fatalf("preferred=%v legacy=%v", h.preferredHost.names, h.legacyHost.flags)
	}
}

func TestRegisterOptionsNoHook(t *testing.T) {
	err := RegisterOptions(42, testOptions...)
	if !errors.Is(err, ErrNoRegistrationHook) {
		t.Fatalf("err = %v", err)
	}
}

type stubPlugin struct {
	name   string
	codes  []diag.Code
	parsed int
}

func (p *stubPlugin) Name() string              { return p.name }
func (p *stubPlugin) Version() string           { return "0.1" }
func (p *stubPlugin) Codes() []diag.Code        { return p.codes }
func (p *stubPlugin) AddOptions(host any) error { return RegisterOptions(host, testOptions[0]) }
func (p *stubPlugin) ParseOptions(Values) error {
	p.parsed++
	return nil
}

func (p *stubPlugin) NewChecker(string, source.LineSource) Checker { return stubChecker{} }

type stubChecker struct{}

func (stubChecker) Run(context.Context) iter.Seq[diag.Diagnostic] {
	return func(func(diag.Diagnostic) bool) {}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	a := &stubPlugin{name: "a", codes: []diag.Code{diag.CodingNotFound}}
	b := &stubPlugin{name: "b", codes: []diag.Code{diag.CodingPresent}}
	r.MustRegister(a)
	r.MustRegister(b)

	if err := r.Register(&stubPlugin{name: "a"}); err == nil {
		t.Fatal("duplicate name accepted")
	}
	if got, ok := r.Lookup("b"); !ok || got != b {
		t.Fatal("lookup b failed")
	}
	if owner, ok := r.Owner(diag.CodingPresent); !ok || owner.Name() != "b" {
		t.Fatal("owner of C103 must be b")
	}
	if _, ok := r.Owner(diag.CodingUnknownEncoding); ok {
		t.Fatal("C102 has no owner")
	}

	host := &preferredHost{}
	if err := r.AddOptions(host); err != nil {
		t.Fatal(err)
	}
	if len(host.names) != 2 {
		t.Fatalf("names = %v", host.names)
	}

	if err := r.Configure(nil); err != nil {
		t.Fatal(err)
	}
	if err := r.Configure(nil); !errors.Is(err, ErrAlreadyConfigured) {
		t.Fatalf("second Configure err = %v", err)
	}
	if a.parsed != 1 || b.parsed != 1 || !r.Configured() {
		t.Fatal("each plugin must be parsed exactly once")
	}
	if err := r.Register(&stubPlugin{name: "late"}); !errors.Is(err, ErrAlreadyConfigured) {
		t.Fatalf("late register err = %v", err)
	}
}

func TestRegistryAddOptionsWithoutHook(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(&stubPlugin{name: "a"})
	if err := r.AddOptions(struct{}{}); !errors.Is(err, ErrNoRegistrationHook) {
		t.Fatalf("err = %v", err)
	}
}

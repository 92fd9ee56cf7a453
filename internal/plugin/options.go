package plugin

import (
	"errors"
	"fmt"
)

// OptionKind is the value type of an option.
type OptionKind uint8

const (
	KindString OptionKind = iota
	KindBool
	KindInt
)

func (k OptionKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	}
	return "unknown"
}

// Option describes a single configuration knob.
type Option struct {
	Name    string
	Kind    OptionKind
	Default string
	Help    string
	// ParseFromConfig allows the value to come from configuration files and
	// not only from the command line.
	ParseFromConfig bool
}

// OptionRegistrar is the registration hook of current hosts.
type OptionRegistrar interface {
	AddOption(opt Option) error
}

// LegacyOptionParser is the registration shape of older hosts: plain flag
// registration plus a separate allow-list of names readable from config files.
type LegacyOptionParser interface {
	AddFlag(opt Option) error
	AllowConfig(names ...string)
}

// Values is the read side handed to Plugin.ParseOptions.
type Values interface {
	GetString(name string) (string, error)
	GetBool(name string) (bool, error)
}

var (
	// ErrNoRegistrationHook is returned when a host exposes neither hook.
	ErrNoRegistrationHook = errors.New("host exposes no option registration hook")
	// ErrAlreadyConfigured guards the parse-once rule.
	ErrAlreadyConfigured = errors.New("options already parsed")
	// ErrUnknownOption is returned by Values implementations for names that
	// were never registered.
	ErrUnknownOption = errors.New("unknown option")
)

// RegisterOptions registers opts with host, preferring OptionRegistrar.
func RegisterOptions(host any, opts ...Option) error {
	switch h := host.(type) {
	case OptionRegistrar:
		for _, opt := range opts {
			if err := h.AddOption(opt); err != nil {
				return fmt.Errorf("register option %q: %w", opt.Name, err)
			}
		}
		return nil
	case LegacyOptionParser:
		configurable := make([]string, 0, len(opts))
		for _, opt := range opts {
			if err := h.AddFlag(opt); err != nil {
				return fmt.Errorf("register option %q: %w", opt.Name, err)
			}
			if opt.ParseFromConfig {
				configurable = append(configurable, opt.Name)
			}
		}
		if len(configurable) > 0 {
			h.AllowConfig(configurable...)
		}
		return nil
	default:
		return fmt.Errorf("%T: %w", host, ErrNoRegistrationHook)
	}
}

// OptionSet collects registrations without acting on them; the CLI uses it
// to describe plugin options.
type OptionSet struct {
	Options []Option
}

func (s *OptionSet) AddOption(opt Option) error {
	s.Options = append(s.Options, opt)
	return nil
}

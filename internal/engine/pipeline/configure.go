package pipeline

import (
	"errors"
	"strings"

	"go.trai.ch/prism/internal/core/domain"
)

// baselineArgs are parsed before the caller's arguments so that callers can override them.
var baselineArgs = []string{"--" + domain.OptionDefaultVisibility + "=public"}

// Configure parses args against the option schema of the current rule registry and
// replaces the stored options. On failure the previous options stay in place.
func (p *Pipeline) Configure(args ...string) (err error) {
	start := p.clock.Now()
	defer func() { p.observe(PhaseConfigure, start, err) }()

	groups := append(domain.FixedOptionGroups(), p.deps.Registry.OptionFragments()...)
	parser, err := p.deps.Parsers.New(groups)
	if err != nil {
		return errors.Join(domain.ErrInvalidConfiguration, err)
	}

	if err := parser.Parse(baselineArgs...); err != nil {
		return errors.Join(domain.ErrInvalidConfiguration, err)
	}
	if err := parser.Parse(args...); err != nil {
		return errors.Join(domain.ErrInvalidConfiguration, err)
	}
	if p.defaultFlags().Contains(domain.FlagUseDynamicConfigurations) {
		if _, declared := parser.Value(domain.OptionDynamicConfigs); declared {
			if err := parser.Parse("--" + domain.OptionDynamicConfigs); err != nil {
				return errors.Join(domain.ErrInvalidConfiguration, err)
			}
		}
	}

	if p.deps.Policy != nil {
		if err := p.deps.Policy.Enforce(parser); err != nil {
			return errors.Join(domain.ErrInvalidConfiguration, err)
		}
	}

	bundle, err := parser.Bundle()
	if err != nil {
		return errors.Join(domain.ErrInvalidConfiguration, err)
	}
	p.bundle = bundle
	p.deps.Logger.Debug("configured with " + formatArgs(bundle.Args))
	return nil
}

func formatArgs(args []string) string {
	if len(args) == 0 {
		return "defaults"
	}
	return strings.Join(args, " ")
}

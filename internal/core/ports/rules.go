package ports

import "go.trai.ch/prism/internal/core/domain"

//go:generate mockgen -source=rules.go -destination=mocks/mock_rules.go -package=mocks

// RuleClass gives meaning to targets that name it in a BUILD file.
type RuleClass interface {
	Name() string
	// Analyze registers the target's actions and default outputs on rc.
	Analyze(rc *domain.RuleContext) error
}

// Aspect is a named analysis extension applied alongside the requested targets.
type Aspect interface {
	Name() string
	// Apply returns the extra outputs for the rule under analysis and registers their actions on rc.
	Apply(rc *domain.RuleContext) ([]*domain.Artifact, error)
}

// RuleRegistry supplies rule classes, aspects and configuration-fragment options.
type RuleRegistry interface {
	// OptionFragments returns the option groups contributed by configuration fragments.
	OptionFragments() []domain.OptionGroup
	// RuleClass looks up a rule class by name.
	RuleClass(name string) (RuleClass, bool)
	// RuleClassNames returns every registered rule class name.
	RuleClassNames() []string
	// Aspect looks up an aspect by name.
	Aspect(name string) (Aspect, bool)
	// DefaultsPackageContent renders the synthetic defaults package for bundle.
	DefaultsPackageContent(bundle *domain.OptionsBundle) string
}

package ports

import "go.trai.ch/prism/internal/core/domain"

//go:generate mockgen -source=options.go -destination=mocks/mock_options.go -package=mocks

// OptionsParser parses command-line style option arguments against a fixed schema.
// Later arguments override earlier ones; list options accumulate.
type OptionsParser interface {
	// Parse applies args on top of the values parsed so far.
	Parse(args ...string) error
	// Value returns the current value of an option.
	Value(name string) (string, bool)
	// Set overrides an option value as if it was passed explicitly.
	Set(name, value string) error
	// Reset restores an option to its default value.
	Reset(name string) error
	// IsExplicit reports whether an option was set by Parse or Set.
	IsExplicit(name string) bool
	// Bundle returns the parsed values grouped into an options bundle.
	Bundle() (*domain.OptionsBundle, error)
}

// OptionsParserFactory creates a parser for a schema.
type OptionsParserFactory interface {
	New(groups []domain.OptionGroup) (OptionsParser, error)
}

// InvocationPolicy rewrites or rejects parsed option values.
type InvocationPolicy interface {
	Enforce(parser OptionsParser) error
}

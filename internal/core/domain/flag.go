package domain

import "strings"

// Flag is a behavioral toggle accepted by the analysis pipeline.
type Flag uint8

const (
	// FlagKeepGoing continues past per-label and per-target errors and aggregates them.
	FlagKeepGoing Flag = iota
	// FlagUseIncrementalLoading replaces the invalidate-everything step with change detection.
	FlagUseIncrementalLoading
	// FlagUseDynamicConfigurations forces per-target dynamic configurations.
	FlagUseDynamicConfigurations

	flagCount
)

var flagNames = [flagCount]string{
	FlagKeepGoing:                "KEEP_GOING",
	FlagUseIncrementalLoading:    "USE_INCREMENTAL_LOADING",
	FlagUseDynamicConfigurations: "USE_DYNAMIC_CONFIGURATIONS",
}

// String returns the canonical upper-case name of the flag.
func (f Flag) String() string {
	if f >= flagCount {
		return "UNKNOWN"
	}
	return flagNames[f]
}

// FlagSet is a set of flags with value semantics.
// The zero value is the empty set.
type FlagSet struct {
	bits uint8
}

// NewFlagSet returns a set containing the given flags.
func NewFlagSet(flags ...Flag) FlagSet {
	var fs FlagSet
	for _, f := range flags {
		fs = fs.With(f)
	}
	return fs
}

// With returns a copy of the set that contains f.
func (fs FlagSet) With(f Flag) FlagSet {
	if f >= flagCount {
		return fs
	}
	fs.bits |= 1 << f
	return fs
}

// Without returns a copy of the set that does not contain f.
func (fs FlagSet) Without(f Flag) FlagSet {
	if f >= flagCount {
		return fs
	}
	fs.bits &^= 1 << f
	return fs
}

// Contains reports whether f is a member of the set.
func (fs FlagSet) Contains(f Flag) bool {
	if f >= flagCount {
		return false
	}
	return fs.bits&(1<<f) != 0
}

// Flags returns the members of the set in declaration order.
func (fs FlagSet) Flags() []Flag {
	out := make([]Flag, 0, flagCount)
	for f := Flag(0); f < flagCount; f++ {
		if fs.Contains(f) {
			out = append(out, f)
		}
	}
	return out
}

// String renders the set as {A,B}.
func (fs FlagSet) String() string {
	names := make([]string, 0, flagCount)
	for _, f := range fs.Flags() {
		names = append(names, f.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}

// FlagSetBuilder builds a FlagSet fluently.
type FlagSetBuilder struct {
	set FlagSet
}

// NewFlagSetBuilder returns a builder seeded with base.
func NewFlagSetBuilder(base FlagSet) *FlagSetBuilder {
	return &FlagSetBuilder{set: base}
}

// With adds f to the set under construction.
func (b *FlagSetBuilder) With(f Flag) *FlagSetBuilder {
	b.set = b.set.With(f)
	return b
}

// Without removes f from the set under construction.
func (b *FlagSetBuilder) Without(f Flag) *FlagSetBuilder {
	b.set = b.set.Without(f)
	return b
}

// Contains reports whether f is currently in the set under construction.
func (b *FlagSetBuilder) Contains(f Flag) bool {
	return b.set.Contains(f)
}

// Build returns the constructed set.
func (b *FlagSetBuilder) Build() FlagSet {
	return b.set
}

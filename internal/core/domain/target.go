package domain

import "strings"

// TargetKind classifies a loaded target.
type TargetKind uint8

const (
	// KindRule is a target instantiated from a rule class.
	KindRule TargetKind = iota
	// KindSourceFile is a file checked into the workspace.
	KindSourceFile
	// KindGeneratedFile is a file produced by a rule's outs.
	KindGeneratedFile
)

// String returns a human-readable kind name.
func (k TargetKind) String() string {
	switch k {
	case KindRule:
		return "rule"
	case KindSourceFile:
		return "source file"
	case KindGeneratedFile:
		return "generated file"
	default:
		return "unknown"
	}
}

// Well-known visibility labels.
const (
	VisibilityPublic  = "//visibility:public"
	VisibilityPrivate = "//visibility:private"
)

// Target is a named build unit within a package.
type Target struct {
	Label      Label
	Kind       TargetKind
	RuleClass  string
	Srcs       []Label
	Deps       []Label
	Outs       []Label
	Tools      []Label
	Tests      []Label
	Cmd        string
	Visibility []string
	TestOnly   bool

	// Generator is set for generated files and names the rule that produces them.
	Generator Label
}

// IsRule reports whether the target was instantiated from a rule class.
func (t *Target) IsRule() bool {
	return t.Kind == KindRule
}

// DependencyLabels returns srcs, deps and tools in that order.
func (t *Target) DependencyLabels() []Label {
	out := make([]Label, 0, len(t.Srcs)+len(t.Deps)+len(t.Tools))
	out = append(out, t.Srcs...)
	out = append(out, t.Deps...)
	return append(out, t.Tools...)
}

// IsVisibleTo reports whether a target with the given visibility may be depended on
// by a target in package consumer. Targets are always visible within their own package.
func IsVisibleTo(owner Label, visibility []string, consumer Label) bool {
	if owner.Package() == consumer.Package() {
		return true
	}
	for _, v := range visibility {
		switch v {
		case VisibilityPublic:
			return true
		case VisibilityPrivate:
			continue
		}
		l, err := ParseLabel(v)
		if err != nil {
			continue
		}
		switch l.Name() {
		case "__pkg__":
			if consumer.Package() == l.Package() {
				return true
			}
		case "__subpackages__":
			if l.Package() == "" || consumer.Package() == l.Package() ||
				strings.HasPrefix(consumer.Package(), l.Package()+"/") {
				return true
			}
		}
	}
	return false
}

// Package is a loaded BUILD file.
type Package struct {
	Name              string
	BuildFile         string
	DefaultVisibility []string
	Targets           map[string]*Target
	Digest            string

	// ContainsErrors is set when the BUILD file loaded but some targets were rejected.
	ContainsErrors bool
}

// Target looks up a target by name.
func (p *Package) Target(name string) (*Target, bool) {
	t, ok := p.Targets[name]
	return t, ok
}

// EffectiveVisibility returns the target's visibility or the package default.
func (p *Package) EffectiveVisibility(t *Target) []string {
	if len(t.Visibility) > 0 {
		return t.Visibility
	}
	return p.DefaultVisibility
}

// Package rules provides the built-in rule classes, aspects and configuration fragments.
package rules

import (
	"maps"
	"slices"
	"sync"

	"go.trai.ch/prism/internal/core/domain"
	"go.trai.ch/prism/internal/core/ports"
)

var _ ports.RuleRegistry = (*Registry)(nil)

// Registry holds rule classes and aspects by name.
type Registry struct {
	mu        sync.RWMutex
	classes   map[string]ports.RuleClass
	aspects   map[string]ports.Aspect
	fragments []domain.OptionGroup
}

// NewRegistry creates a registry with the given option fragments and no rule classes.
func NewRegistry(fragments ...domain.OptionGroup) *Registry {
	return &Registry{
		classes:   make(map[string]ports.RuleClass),
		aspects:   make(map[string]ports.Aspect),
		fragments: fragments,
	}
}

// Builtin returns a registry with every built-in rule class, aspect and fragment.
func Builtin() *Registry {
	r := NewRegistry(CoreFragment())
	r.Register(Genrule{})
	r.Register(Filegroup{})
	r.Register(TestSuite{})
	r.Register(ShBinary{})
	r.RegisterAspect(LintAspect{})
	r.RegisterAspect(FileCountAspect{})
	return r
}

// Register adds or replaces a rule class by name.
func (r *Registry) Register(c ports.RuleClass) {
	if c == nil || c.Name() == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classes[c.Name()] = c
}

// RegisterAspect adds or replaces an aspect by name.
func (r *Registry) RegisterAspect(a ports.Aspect) {
	if a == nil || a.Name() == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aspects[a.Name()] = a
}

// OptionFragments returns the option groups of the configuration fragments.
func (r *Registry) OptionFragments() []domain.OptionGroup {
	return slices.Clone(r.fragments)
}

// RuleClass looks up a rule class.
func (r *Registry) RuleClass(name string) (ports.RuleClass, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.classes[name]
	return c, ok
}

// RuleClassNames returns the sorted rule class names.
func (r *Registry) RuleClassNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.classes))
}

// Aspect looks up an aspect.
func (r *Registry) Aspect(name string) (ports.Aspect, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.aspects[name]
	return a, ok
}

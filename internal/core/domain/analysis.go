package domain

import (
	"maps"
	"slices"
)

// Output group names.
const (
	OutputGroupDefault = "default"
	OutputGroupAspects = "aspects"
)

// TopLevelArtifactContext decides which artifacts of the requested targets are top-level.
type TopLevelArtifactContext struct {
	RunTestsExclusively   bool
	BuildDefaultArtifacts bool
	OutputGroups          []string
}

// DefaultTopLevelContext builds default outputs and aspect outputs and runs no tests.
var DefaultTopLevelContext = TopLevelArtifactContext{
	BuildDefaultArtifacts: true,
	OutputGroups:          []string{OutputGroupDefault, OutputGroupAspects},
}

// Wants reports whether the context includes an output group.
func (c TopLevelArtifactContext) Wants(group string) bool {
	return slices.Contains(c.OutputGroups, group)
}

// AnalysisResult is the queryable output of one update.
type AnalysisResult struct {
	// ConfiguredTargets holds the requested targets that analyzed successfully, ordered by key.
	ConfiguredTargets []ConfiguredTarget
	ActionGraph       *ActionGraph
	TopLevelContext   TopLevelArtifactContext

	// Error is empty on success and lists the failures that keep-going skipped otherwise.
	Error string

	// TargetsVisited is the number of configured targets reached by the update.
	TargetsVisited int

	// EvaluatedKeys holds the keys that were computed rather than reused from a previous update.
	EvaluatedKeys map[ConfiguredTargetKey]struct{}

	// Aspects lists the aspects applied to the requested targets.
	Aspects []string

	// All holds every configured target in the transitive closure, including dependencies.
	All map[ConfiguredTargetKey]ConfiguredTarget

	// Failed maps each configured target that could not be analyzed to its cause.
	Failed map[ConfiguredTargetKey]error
}

// Lookup returns the configured target for key, if it was analyzed.
func (r *AnalysisResult) Lookup(key ConfiguredTargetKey) (ConfiguredTarget, bool) {
	ct, ok := r.All[key]
	return ct, ok
}

// TopLevelLabels returns the sorted labels of the requested configured targets.
func (r *AnalysisResult) TopLevelLabels() []Label {
	out := make([]Label, 0, len(r.ConfiguredTargets))
	for _, ct := range r.ConfiguredTargets {
		out = append(out, ct.Label())
	}
	slices.SortFunc(out, Label.Compare)
	return slices.Compact(out)
}

// EvaluatedTargetKeys returns the evaluated keys in sorted order.
func (r *AnalysisResult) EvaluatedTargetKeys() []ConfiguredTargetKey {
	keys := slices.Collect(maps.Keys(r.EvaluatedKeys))
	slices.SortFunc(keys, ConfiguredTargetKey.Compare)
	return keys
}

// HasErrors reports whether ct is absent or failed analysis.
func (r *AnalysisResult) HasErrors(ct ConfiguredTarget) bool {
	if ct == nil {
		return true
	}
	_, failed := r.Failed[ct.Key()]
	return failed
}

// TopLevelArtifacts returns the artifacts selected by the top-level context.
func (r *AnalysisResult) TopLevelArtifacts() []*Artifact {
	var out []*Artifact
	for _, ct := range r.ConfiguredTargets {
		if r.TopLevelContext.BuildDefaultArtifacts && r.TopLevelContext.Wants(OutputGroupDefault) {
			out = append(out, ct.Files()...)
		}
		rule, ok := ct.(*RuleConfiguredTarget)
		if !ok || !r.TopLevelContext.Wants(OutputGroupAspects) {
			continue
		}
		for _, name := range r.Aspects {
			out = append(out, rule.AspectFiles[name]...)
		}
	}
	return out
}

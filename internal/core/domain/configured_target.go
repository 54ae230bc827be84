package domain

import "strings"

// ConfiguredTargetKey identifies a target paired with a configuration.
// Input files are keyed with an empty checksum (the null configuration).
type ConfiguredTargetKey struct {
	Label          Label
	ConfigChecksum string
}

// KeyFor returns the key of label in cfg. A nil cfg is the null configuration.
func KeyFor(label Label, cfg *Configuration) ConfiguredTargetKey {
	if cfg == nil {
		return ConfiguredTargetKey{Label: label}
	}
	return ConfiguredTargetKey{Label: label, ConfigChecksum: cfg.Checksum}
}

// String renders the key for diagnostics.
func (k ConfiguredTargetKey) String() string {
	if k.ConfigChecksum == "" {
		return k.Label.String() + " (null)"
	}
	return k.Label.String() + " (" + shortChecksum(k.ConfigChecksum) + ")"
}

// Compare orders keys by label then checksum.
func (k ConfiguredTargetKey) Compare(other ConfiguredTargetKey) int {
	if c := k.Label.Compare(other.Label); c != 0 {
		return c
	}
	return strings.Compare(k.ConfigChecksum, other.ConfigChecksum)
}

// ConfiguredTarget is a target analyzed under a specific configuration.
type ConfiguredTarget interface {
	Label() Label
	Target() *Target
	Configuration() *Configuration
	Key() ConfiguredTargetKey
	// Files returns the artifacts built by default when the target is requested.
	Files() []*Artifact
}

// RuleConfiguredTarget is the analyzed form of a rule.
type RuleConfiguredTarget struct {
	target  *Target
	config  *Configuration
	deps    []ConfiguredTargetKey
	files   []*Artifact
	actions []ActionMetadata

	// AspectFiles holds outputs contributed by applied aspects, keyed by aspect name.
	AspectFiles map[string][]*Artifact
}

// NewRuleConfiguredTarget creates a configured rule.
func NewRuleConfiguredTarget(
	target *Target,
	config *Configuration,
	deps []ConfiguredTargetKey,
	files []*Artifact,
	actions []ActionMetadata,
) *RuleConfiguredTarget {
	return &RuleConfiguredTarget{
		target:      target,
		config:      config,
		deps:        deps,
		files:       files,
		actions:     actions,
		AspectFiles: make(map[string][]*Artifact),
	}
}

// Label returns the rule label.
func (r *RuleConfiguredTarget) Label() Label { return r.target.Label }

// Target returns the loaded rule.
func (r *RuleConfiguredTarget) Target() *Target { return r.target }

// Configuration returns the configuration the rule was analyzed in.
func (r *RuleConfiguredTarget) Configuration() *Configuration { return r.config }

// Key returns the configured target key.
func (r *RuleConfiguredTarget) Key() ConfiguredTargetKey { return KeyFor(r.target.Label, r.config) }

// Files returns the rule's default outputs.
func (r *RuleConfiguredTarget) Files() []*Artifact { return r.files }

// Deps returns the keys of the rule's direct dependencies.
func (r *RuleConfiguredTarget) Deps() []ConfiguredTargetKey { return r.deps }

// Actions returns the entries the rule registered in the action graph.
func (r *RuleConfiguredTarget) Actions() []ActionMetadata { return r.actions }

// InputFileConfiguredTarget is a source file. It has no configuration.
type InputFileConfiguredTarget struct {
	target   *Target
	artifact *Artifact
}

// NewInputFileConfiguredTarget creates a configured source file.
func NewInputFileConfiguredTarget(target *Target, artifact *Artifact) *InputFileConfiguredTarget {
	return &InputFileConfiguredTarget{target: target, artifact: artifact}
}

// Label returns the file label.
func (i *InputFileConfiguredTarget) Label() Label { return i.target.Label }

// Target returns the loaded source file target.
func (i *InputFileConfiguredTarget) Target() *Target { return i.target }

// Configuration always returns nil.
func (i *InputFileConfiguredTarget) Configuration() *Configuration { return nil }

// Key returns the key under the null configuration.
func (i *InputFileConfiguredTarget) Key() ConfiguredTargetKey { return KeyFor(i.target.Label, nil) }

// Files returns the source artifact.
func (i *InputFileConfiguredTarget) Files() []*Artifact { return []*Artifact{i.artifact} }

// Artifact returns the source artifact.
func (i *InputFileConfiguredTarget) Artifact() *Artifact { return i.artifact }

// OutputFileConfiguredTarget is a file generated by a rule.
type OutputFileConfiguredTarget struct {
	target    *Target
	config    *Configuration
	artifact  *Artifact
	generator ConfiguredTargetKey
}

// NewOutputFileConfiguredTarget creates a configured generated file.
func NewOutputFileConfiguredTarget(
	target *Target,
	config *Configuration,
	artifact *Artifact,
	generator ConfiguredTargetKey,
) *OutputFileConfiguredTarget {
	return &OutputFileConfiguredTarget{target: target, config: config, artifact: artifact, generator: generator}
}

// Label returns the file label.
func (o *OutputFileConfiguredTarget) Label() Label { return o.target.Label }

// Target returns the loaded generated file target.
func (o *OutputFileConfiguredTarget) Target() *Target { return o.target }

// Configuration returns the configuration of the generating rule.
func (o *OutputFileConfiguredTarget) Configuration() *Configuration { return o.config }

// Key returns the configured target key.
func (o *OutputFileConfiguredTarget) Key() ConfiguredTargetKey { return KeyFor(o.target.Label, o.config) }

// Files returns the generated artifact.
func (o *OutputFileConfiguredTarget) Files() []*Artifact { return []*Artifact{o.artifact} }

// Artifact returns the generated artifact.
func (o *OutputFileConfiguredTarget) Artifact() *Artifact { return o.artifact }

// Generator returns the key of the generating rule.
func (o *OutputFileConfiguredTarget) Generator() ConfiguredTargetKey { return o.generator }

package domain

import "path"

// RuleContext is handed to a rule class while it analyzes one configured target.
type RuleContext struct {
	Target *Target
	Config *Configuration

	// Prerequisites holds the analyzed srcs, deps and tools of the target.
	Prerequisites map[Label]ConfiguredTarget

	// ActionKey digests the parts that affect an action's outputs.
	ActionKey func(parts ...string) string

	actions []ActionMetadata
	files   []*Artifact
}

// Owner returns the key of the configured target under analysis.
func (c *RuleContext) Owner() ConfiguredTargetKey {
	return KeyFor(c.Target.Label, c.Config)
}

// BinArtifact returns an artifact named name in the target's package under the bin root.
func (c *RuleContext) BinArtifact(name string) *Artifact {
	return &Artifact{
		Root:             c.Config.BinDirectory(),
		RootRelativePath: path.Join(c.Target.Label.Package(), name),
		Owner:            c.Owner(),
	}
}

// GenfilesArtifact returns an artifact named name in the target's package under the genfiles root.
func (c *RuleContext) GenfilesArtifact(name string) *Artifact {
	return &Artifact{
		Root:             c.Config.GenfilesDirectory(),
		RootRelativePath: path.Join(c.Target.Label.Package(), name),
		Owner:            c.Owner(),
	}
}

// FilesOf returns the default outputs of the given prerequisites in order.
func (c *RuleContext) FilesOf(labels []Label) ([]*Artifact, error) {
	var out []*Artifact
	for _, l := range labels {
		ct, ok := c.Prerequisites[l]
		if !ok {
			return nil, WithMeta(ErrMissingDependency, "dependency", l.String())
		}
		out = append(out, ct.Files()...)
	}
	return out, nil
}

// RegisterAction records an action owned by the target.
func (c *RuleContext) RegisterAction(a ActionMetadata) {
	c.actions = append(c.actions, a)
}

// AddFiles appends to the target's default outputs.
func (c *RuleContext) AddFiles(files ...*Artifact) {
	c.files = append(c.files, files...)
}

// Actions returns the registered actions.
func (c *RuleContext) Actions() []ActionMetadata {
	return c.actions
}

// Files returns the default outputs collected so far.
func (c *RuleContext) Files() []*Artifact {
	return c.files
}

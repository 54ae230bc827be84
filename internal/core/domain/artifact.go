package domain

import (
	"fmt"
	"path"
	"strings"

	"go.trai.ch/zerr"
)

// ArtifactRoot is the directory an artifact's root-relative path is resolved against.
type ArtifactRoot struct {
	Path    string
	Derived bool
}

// SourceRoot is the root of checked-in source artifacts, relative to the workspace.
var SourceRoot = ArtifactRoot{}

// Artifact is a file that is either a source or the output of an action.
type Artifact struct {
	Root             ArtifactRoot
	RootRelativePath string
	Owner            ConfiguredTargetKey
}

// ExecPath returns the path of the artifact relative to the execution root.
func (a *Artifact) ExecPath() string {
	if a.Root.Path == "" {
		return a.RootRelativePath
	}
	return path.Join(a.Root.Path, a.RootRelativePath)
}

// IsSource reports whether the artifact is checked into the workspace.
func (a *Artifact) IsSource() bool {
	return !a.Root.Derived
}

// String returns the exec path.
func (a *Artifact) String() string {
	return a.ExecPath()
}

// ActionMetadata is an entry in the action graph.
// Not every entry is a runnable action.
type ActionMetadata interface {
	Owner() ConfiguredTargetKey
	Mnemonic() string
	Inputs() []*Artifact
	Outputs() []*Artifact
	PrettyPrint() string
}

// Action is a proper action that turns inputs into outputs by running a command.
type Action struct {
	owner    ConfiguredTargetKey
	mnemonic string
	inputs   []*Artifact
	outputs  []*Artifact
	command  string
	key      string
}

// NewAction creates an action. key is a digest of everything that affects its outputs.
func NewAction(owner ConfiguredTargetKey, mnemonic string, inputs, outputs []*Artifact, command, key string) *Action {
	return &Action{
		owner:    owner,
		mnemonic: mnemonic,
		inputs:   inputs,
		outputs:  outputs,
		command:  command,
		key:      key,
	}
}

// Owner returns the configured target that registered the action.
func (a *Action) Owner() ConfiguredTargetKey { return a.owner }

// Mnemonic returns the short action type name.
func (a *Action) Mnemonic() string { return a.mnemonic }

// Inputs returns the input artifacts.
func (a *Action) Inputs() []*Artifact { return a.inputs }

// Outputs returns the output artifacts.
func (a *Action) Outputs() []*Artifact { return a.outputs }

// Command returns the expanded command line.
func (a *Action) Command() string { return a.command }

// Key returns the action cache key.
func (a *Action) Key() string { return a.key }

// PrettyPrint describes the action for diagnostics.
func (a *Action) PrettyPrint() string {
	return fmt.Sprintf("action '%s %s'", a.mnemonic, joinExecPaths(a.outputs))
}

// MiddlemanAction groups inputs behind a single artifact without running anything.
type MiddlemanAction struct {
	owner  ConfiguredTargetKey
	inputs []*Artifact
	output *Artifact
}

// NewMiddlemanAction creates a middleman entry for output.
func NewMiddlemanAction(owner ConfiguredTargetKey, inputs []*Artifact, output *Artifact) *MiddlemanAction {
	return &MiddlemanAction{owner: owner, inputs: inputs, output: output}
}

// Owner returns the configured target that registered the middleman.
func (m *MiddlemanAction) Owner() ConfiguredTargetKey { return m.owner }

// Mnemonic returns "Middleman".
func (m *MiddlemanAction) Mnemonic() string { return "Middleman" }

// Inputs returns the grouped artifacts.
func (m *MiddlemanAction) Inputs() []*Artifact { return m.inputs }

// Outputs returns the middleman artifact.
func (m *MiddlemanAction) Outputs() []*Artifact { return []*Artifact{m.output} }

// PrettyPrint describes the middleman for diagnostics.
func (m *MiddlemanAction) PrettyPrint() string {
	return "middleman '" + m.output.ExecPath() + "'"
}

func joinExecPaths(artifacts []*Artifact) string {
	paths := make([]string, len(artifacts))
	for i, a := range artifacts {
		paths[i] = a.ExecPath()
	}
	return strings.Join(paths, " ")
}

// ActionGraph maps each derived artifact to the entry that generates it.
type ActionGraph struct {
	generating map[string]ActionMetadata
}

// NewActionGraph returns an empty action graph.
func NewActionGraph() *ActionGraph {
	return &ActionGraph{generating: make(map[string]ActionMetadata)}
}

// Register records action as the generator of each of its outputs.
// Two different owners generating the same output is a conflict.
func (g *ActionGraph) Register(action ActionMetadata) error {
	for _, out := range action.Outputs() {
		execPath := out.ExecPath()
		if existing, ok := g.generating[execPath]; ok && existing.Owner() != action.Owner() {
			err := WithMeta(ErrActionConflict, "artifact", execPath)
			err = zerr.With(err, "first_owner", existing.Owner().String())
			return zerr.With(err, "second_owner", action.Owner().String())
		}
	}
	for _, out := range action.Outputs() {
		g.generating[out.ExecPath()] = action
	}
	return nil
}

// GeneratingAction returns the entry that generates artifact, or nil.
func (g *ActionGraph) GeneratingAction(artifact *Artifact) ActionMetadata {
	if g == nil || artifact == nil {
		return nil
	}
	return g.generating[artifact.ExecPath()]
}

// Len returns the number of registered outputs.
func (g *ActionGraph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.generating)
}

// Merge copies every entry of other into g.
func (g *ActionGraph) Merge(other *ActionGraph) error {
	if other == nil {
		return nil
	}
	for _, action := range other.generating {
		if err := g.Register(action); err != nil {
			return err
		}
	}
	return nil
}

package pipeline

import (
	"context"
	"errors"
	"path"

	"go.trai.ch/prism/internal/core/domain"
)

func (p *Pipeline) requireResult() (*domain.AnalysisResult, error) {
	if p.result == nil {
		return nil, domain.ErrUpdateNotCalled
	}
	return p.result, nil
}

// AnalysisResult returns the result of the last successful update.
func (p *Pipeline) AnalysisResult() (*domain.AnalysisResult, error) {
	return p.requireResult()
}

// ConfiguredTarget returns the target of label in the target configuration, or
// its source file form. It returns nil when the label was not analyzed.
func (p *Pipeline) ConfiguredTarget(label string) (domain.ConfiguredTarget, error) {
	if _, err := p.requireResult(); err != nil {
		return nil, err
	}
	cfg, err := p.configurations.TargetConfiguration()
	if err != nil {
		return nil, err
	}
	return p.ConfiguredTargetIn(label, cfg)
}

// ConfiguredTargetIn returns the target of label analyzed in cfg. Source files are
// found under the null configuration whatever cfg is.
func (p *Pipeline) ConfiguredTargetIn(label string, cfg *domain.Configuration) (domain.ConfiguredTarget, error) {
	result, err := p.requireResult()
	if err != nil {
		return nil, err
	}
	l, err := domain.ParseLabel(label)
	if err != nil {
		return nil, err
	}
	if ct, ok := result.Lookup(domain.KeyFor(l, cfg)); ok {
		return ct, nil
	}
	if ct, ok := result.Lookup(domain.KeyFor(l, nil)); ok {
		return ct, nil
	}
	return nil, nil
}

// InputFileConfiguredTarget returns the configured source file of label. It fails
// with ErrNotInputFile when the label names a rule or a generated file.
func (p *Pipeline) InputFileConfiguredTarget(
	ctx context.Context,
	label string,
) (*domain.InputFileConfiguredTarget, error) {
	result, err := p.requireResult()
	if err != nil {
		return nil, err
	}
	l, err := domain.ParseLabel(label)
	if err != nil {
		return nil, err
	}

	if ct, ok := result.Lookup(domain.KeyFor(l, nil)); ok {
		input, isInput := ct.(*domain.InputFileConfiguredTarget)
		if !isInput {
			return nil, domain.WithMeta(domain.ErrNotInputFile, "label", label)
		}
		return input, nil
	}

	// Source files outside the analyzed closure are configured on demand.
	t, err := p.deps.Loader.GetTarget(ctx, l)
	if errors.Is(err, domain.ErrTargetNotFound) || errors.Is(err, domain.ErrPackageNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if t.Kind != domain.KindSourceFile {
		return nil, domain.WithMeta(domain.ErrNotInputFile, "label", label)
	}
	return domain.NewInputFileConfiguredTarget(t, &domain.Artifact{
		Root:             domain.SourceRoot,
		RootRelativePath: path.Join(l.Package(), l.Name()),
		Owner:            domain.KeyFor(l, nil),
	}), nil
}

// GeneratingAction returns the action that produces artifact, or nil for source
// files and unknown artifacts. It fails with ErrNotAnAction when the artifact is
// generated by a graph entry that is not a proper action.
func (p *Pipeline) GeneratingAction(artifact *domain.Artifact) (*domain.Action, error) {
	result, err := p.requireResult()
	if err != nil {
		return nil, err
	}
	entry := result.ActionGraph.GeneratingAction(artifact)
	if entry == nil {
		return nil, nil
	}
	action, ok := entry.(*domain.Action)
	if !ok {
		return nil, domain.WithMeta(domain.ErrNotAnAction, "artifact", artifact.ExecPath())
	}
	return action, nil
}

// BinArtifact returns the artifact at packageRelativePath in the bin directory of
// the target configuration, owned by owner.
func (p *Pipeline) BinArtifact(packageRelativePath, owner string) (*domain.Artifact, error) {
	return p.derivedArtifact(packageRelativePath, owner, (*domain.Configuration).BinDirectory)
}

// GenfilesArtifact is like BinArtifact for the genfiles directory.
func (p *Pipeline) GenfilesArtifact(packageRelativePath, owner string) (*domain.Artifact, error) {
	return p.derivedArtifact(packageRelativePath, owner, (*domain.Configuration).GenfilesDirectory)
}

func (p *Pipeline) derivedArtifact(
	packageRelativePath, owner string,
	root func(*domain.Configuration) domain.ArtifactRoot,
) (*domain.Artifact, error) {
	cfg, err := p.TargetConfiguration()
	if err != nil {
		return nil, err
	}
	l, err := domain.ParseLabel(owner)
	if err != nil {
		return nil, err
	}
	return &domain.Artifact{
		Root:             root(cfg),
		RootRelativePath: path.Join(l.Package(), packageRelativePath),
		Owner:            domain.KeyFor(l, cfg),
	}, nil
}

// TargetsVisited returns how many configured targets the last update reached.
func (p *Pipeline) TargetsVisited() (int, error) {
	result, err := p.requireResult()
	if err != nil {
		return 0, err
	}
	return result.TargetsVisited, nil
}

// EvaluatedTargetKeys returns the keys the last update computed rather than reused.
func (p *Pipeline) EvaluatedTargetKeys() ([]domain.ConfiguredTargetKey, error) {
	result, err := p.requireResult()
	if err != nil {
		return nil, err
	}
	return result.EvaluatedTargetKeys(), nil
}

// AnalysisError returns the error text of the last update, empty on full success.
func (p *Pipeline) AnalysisError() (string, error) {
	result, err := p.requireResult()
	if err != nil {
		return "", err
	}
	return result.Error, nil
}

// HasErrors reports whether ct is absent or failed in the last update.
func (p *Pipeline) HasErrors(ct domain.ConfiguredTarget) (bool, error) {
	result, err := p.requireResult()
	if err != nil {
		return false, err
	}
	return result.HasErrors(ct), nil
}

// ActionGraph returns the action graph of the last update.
func (p *Pipeline) ActionGraph() (*domain.ActionGraph, error) {
	result, err := p.requireResult()
	if err != nil {
		return nil, err
	}
	return result.ActionGraph, nil
}

// ConfigurationCollection returns the configurations of the last update.
func (p *Pipeline) ConfigurationCollection() (*domain.ConfigurationCollection, error) {
	if _, err := p.requireResult(); err != nil {
		return nil, err
	}
	return p.configurations, nil
}

// TargetConfiguration returns the only target configuration of the last update.
func (p *Pipeline) TargetConfiguration() (*domain.Configuration, error) {
	if _, err := p.requireResult(); err != nil {
		return nil, err
	}
	return p.configurations.TargetConfiguration()
}

// HostConfiguration returns the host configuration of the last update.
func (p *Pipeline) HostConfiguration() (*domain.Configuration, error) {
	if _, err := p.requireResult(); err != nil {
		return nil, err
	}
	return p.configurations.Host, nil
}

// Target loads the target of label. It does not require a previous update.
func (p *Pipeline) Target(ctx context.Context, label string) (*domain.Target, error) {
	l, err := domain.ParseLabel(label)
	if err != nil {
		return nil, err
	}
	if !p.prepared {
		if _, err := p.prepare(ctx, p.defaultFlags()); err != nil {
			return nil, err
		}
	}
	return p.deps.Loader.GetTarget(ctx, l)
}

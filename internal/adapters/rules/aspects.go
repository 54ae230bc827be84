package rules

import (
	"strconv"

	"go.trai.ch/prism/internal/core/domain"
)

// LintAspect attaches a lint report to every rule target with srcs.
type LintAspect struct{}

// Name implements ports.Aspect.
func (LintAspect) Name() string { return "lint" }

// Apply implements ports.Aspect.
func (LintAspect) Apply(rc *domain.RuleContext) ([]*domain.Artifact, error) {
	srcs, err := rc.FilesOf(rc.Target.Srcs)
	if err != nil {
		return nil, err
	}
	if len(srcs) == 0 {
		return nil, nil
	}

	report := rc.BinArtifact(rc.Target.Label.Name() + ".lint")
	command := "lint " + execPaths(srcs) + " > " + report.ExecPath()
	rc.RegisterAction(domain.NewAction(rc.Owner(), "Lint", srcs, []*domain.Artifact{report}, command,
		actionKey(rc, "Lint", command, srcs, []*domain.Artifact{report})))
	return []*domain.Artifact{report}, nil
}

// FileCountAspect records how many default outputs a rule target has.
type FileCountAspect struct{}

// Name implements ports.Aspect.
func (FileCountAspect) Name() string { return "file_count" }

// Apply implements ports.Aspect.
func (FileCountAspect) Apply(rc *domain.RuleContext) ([]*domain.Artifact, error) {
	files := rc.Files()
	out := rc.BinArtifact(rc.Target.Label.Name() + ".file_count")
	command := "echo " + strconv.Itoa(len(files)) + " > " + out.ExecPath()
	rc.RegisterAction(domain.NewAction(rc.Owner(), "FileCount", files, []*domain.Artifact{out}, command,
		actionKey(rc, "FileCount", command, files, []*domain.Artifact{out})))
	return []*domain.Artifact{out}, nil
}

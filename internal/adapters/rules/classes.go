package rules

import (
	"strings"

	"go.trai.ch/prism/internal/core/domain"
	"go.trai.ch/zerr"
)

// Genrule runs a shell command over its srcs to produce its outs.
type Genrule struct{}

// Name implements ports.RuleClass.
func (Genrule) Name() string { return "genrule" }

// Analyze implements ports.RuleClass.
func (Genrule) Analyze(rc *domain.RuleContext) error {
	if len(rc.Target.Outs) == 0 {
		return ruleError(rc, "genrule must declare at least one output")
	}
	if strings.TrimSpace(rc.Target.Cmd) == "" {
		return ruleError(rc, "genrule must declare a command")
	}

	srcs, err := rc.FilesOf(rc.Target.Srcs)
	if err != nil {
		return err
	}
	tools, err := rc.FilesOf(rc.Target.Tools)
	if err != nil {
		return err
	}

	outs := make([]*domain.Artifact, len(rc.Target.Outs))
	for i, out := range rc.Target.Outs {
		outs[i] = rc.GenfilesArtifact(out.Name())
	}

	command, err := expandCommand(rc.Target.Cmd, srcs, outs)
	if err != nil {
		return zerr.With(err, "target", rc.Target.Label.String())
	}

	inputs := append(append([]*domain.Artifact(nil), srcs...), tools...)
	rc.RegisterAction(domain.NewAction(rc.Owner(), "Genrule", inputs, outs, command,
		actionKey(rc, "Genrule", command, inputs, outs)))
	rc.AddFiles(outs...)
	return nil
}

// Filegroup bundles the files of its srcs and deps under one name.
type Filegroup struct{}

// Name implements ports.RuleClass.
func (Filegroup) Name() string { return "filegroup" }

// Analyze implements ports.RuleClass.
func (Filegroup) Analyze(rc *domain.RuleContext) error {
	files, err := rc.FilesOf(append(append([]domain.Label(nil), rc.Target.Srcs...), rc.Target.Deps...))
	if err != nil {
		return err
	}
	rc.AddFiles(files...)

	// The middleman stands for the whole group in the action graph.
	middleman := rc.BinArtifact("_middlemen/" + rc.Target.Label.Name())
	rc.RegisterAction(domain.NewMiddlemanAction(rc.Owner(), files, middleman))
	return nil
}

// TestSuite groups tests. It produces no outputs; the loading phase expands it.
type TestSuite struct{}

// Name implements ports.RuleClass.
func (TestSuite) Name() string { return "test_suite" }

// Analyze implements ports.RuleClass.
func (TestSuite) Analyze(*domain.RuleContext) error { return nil }

// ShBinary exposes a single shell script as an executable.
type ShBinary struct{}

// Name implements ports.RuleClass.
func (ShBinary) Name() string { return "sh_binary" }

// Analyze implements ports.RuleClass.
func (ShBinary) Analyze(rc *domain.RuleContext) error {
	if len(rc.Target.Srcs) != 1 {
		return ruleError(rc, "sh_binary requires exactly one src")
	}
	srcs, err := rc.FilesOf(rc.Target.Srcs)
	if err != nil {
		return err
	}
	if len(srcs) != 1 {
		return ruleError(rc, "sh_binary src must provide exactly one file")
	}

	bin := rc.BinArtifact(rc.Target.Label.Name())
	command := "ln -sf " + srcs[0].ExecPath() + " " + bin.ExecPath()
	rc.RegisterAction(domain.NewAction(rc.Owner(), "Symlink", srcs, []*domain.Artifact{bin}, command,
		actionKey(rc, "Symlink", command, srcs, []*domain.Artifact{bin})))
	rc.AddFiles(bin)
	return nil
}

// expandCommand substitutes $(SRCS), $(OUTS), $< and $@ in a genrule command.
func expandCommand(cmd string, srcs, outs []*domain.Artifact) (string, error) {
	if strings.Contains(cmd, "$@") && len(outs) != 1 {
		return "", domain.WithMeta(domain.ErrAnalysisFailed, "reason", "$@ requires exactly one output")
	}
	if strings.Contains(cmd, "$<") && len(srcs) != 1 {
		return "", domain.WithMeta(domain.ErrAnalysisFailed, "reason", "$< requires exactly one src")
	}

	replacements := []string{
		"$(SRCS)", execPaths(srcs),
		"$(OUTS)", execPaths(outs),
	}
	if len(outs) == 1 {
		replacements = append(replacements, "$@", outs[0].ExecPath())
	}
	if len(srcs) == 1 {
		replacements = append(replacements, "$<", srcs[0].ExecPath())
	}
	return strings.NewReplacer(replacements...).Replace(cmd), nil
}

func execPaths(artifacts []*domain.Artifact) string {
	paths := make([]string, len(artifacts))
	for i, a := range artifacts {
		paths[i] = a.ExecPath()
	}
	return strings.Join(paths, " ")
}

func actionKey(rc *domain.RuleContext, mnemonic, command string, inputs, outputs []*domain.Artifact) string {
	if rc.ActionKey == nil {
		return ""
	}
	return rc.ActionKey(mnemonic, command, execPaths(inputs), execPaths(outputs))
}

func ruleError(rc *domain.RuleContext, reason string) error {
	err := domain.WithMeta(domain.ErrAnalysisFailed, "target", rc.Target.Label.String())
	return zerr.With(err, "reason", reason)
}

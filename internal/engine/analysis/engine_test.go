package analysis_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/prism/internal/adapters/fs"
	"go.trai.ch/prism/internal/adapters/rules"
	"go.trai.ch/prism/internal/adapters/telemetry"
	"go.trai.ch/prism/internal/core/domain"
	"go.trai.ch/prism/internal/core/ports"
	"go.trai.ch/prism/internal/core/ports/mocks"
	"go.trai.ch/prism/internal/engine/analysis"
	"go.uber.org/mock/gomock"
)

var (
	targetCfg = &domain.Configuration{
		CPU:             "k8",
		CompilationMode: domain.ModeFastbuild,
		Checksum:        "target0000000000",
		OutputDirName:   "k8-fastbuild",
		OutputBase:      "out",
	}
	armCfg = &domain.Configuration{
		CPU:             "arm",
		CompilationMode: domain.ModeFastbuild,
		Checksum:        "arm0000000000000",
		OutputDirName:   "arm-fastbuild",
		OutputBase:      "out",
	}
	hostCfg = &domain.Configuration{
		CPU:             "k8",
		CompilationMode: domain.ModeOpt,
		IsHost:          true,
		Checksum:        "host000000000000",
		OutputDirName:   "host",
		OutputBase:      "out",
	}
)

// workspace is an in-memory set of loaded packages.
type workspace map[string]*domain.Package

func (w workspace) add(name, digest string, targets ...*domain.Target) {
	pkg := &domain.Package{
		Name:              name,
		Digest:            digest,
		DefaultVisibility: []string{domain.VisibilityPublic},
		Targets:           make(map[string]*domain.Target),
	}
	for _, t := range targets {
		pkg.Targets[t.Label.Name()] = t
		for _, out := range t.Outs {
			pkg.Targets[out.Name()] = &domain.Target{Label: out, Kind: domain.KindGeneratedFile, Generator: t.Label}
		}
	}
	w[name] = pkg
}

func (w workspace) loader(ctrl *gomock.Controller) *mocks.MockPackageLoader {
	l := mocks.NewMockPackageLoader(ctrl)
	l.EXPECT().GetPackage(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, name string) (*domain.Package, error) {
			pkg, ok := w[name]
			if !ok {
				return nil, domain.WithMeta(domain.ErrPackageNotFound, "package", name)
			}
			return pkg, nil
		}).AnyTimes()
	l.EXPECT().GetTarget(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, label domain.Label) (*domain.Target, error) {
			pkg, ok := w[label.Package()]
			if !ok {
				return nil, domain.WithMeta(domain.ErrPackageNotFound, "package", label.Package())
			}
			t, ok := pkg.Target(label.Name())
			if !ok {
				return nil, domain.WithMeta(domain.ErrTargetNotFound, "label", label.String())
			}
			return t, nil
		}).AnyTimes()
	return l
}

func (w workspace) target(label string) *domain.Target {
	l := domain.MustParseLabel(label)
	t, _ := w[l.Package()].Target(l.Name())
	return t
}

func labels(raw ...string) []domain.Label {
	out := make([]domain.Label, len(raw))
	for i, r := range raw {
		out[i] = domain.MustParseLabel(r)
	}
	return out
}

func source(label string) *domain.Target {
	return &domain.Target{Label: domain.MustParseLabel(label), Kind: domain.KindSourceFile}
}

func rule(label, class string) *domain.Target {
	return &domain.Target{Label: domain.MustParseLabel(label), Kind: domain.KindRule, RuleClass: class}
}

type recorder struct {
	events []domain.Event
}

func (r *recorder) Handle(ev domain.Event) { r.events = append(r.events, ev) }

func (r *recorder) errorLabels() []string {
	var out []string
	for _, ev := range r.events {
		if ev.Kind == domain.EventError {
			out = append(out, ev.Label)
		}
	}
	return out
}

type fixture struct {
	engine *analysis.Engine
	ws     workspace
	events *recorder
	loader *mocks.MockPackageLoader
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	ws := workspace{}
	return &fixture{
		engine: analysis.NewEngine(fs.NewHasher(), telemetry.NewNoOpTracer(), log),
		ws:     ws,
		events: &recorder{},
		loader: ws.loader(ctrl),
	}
}

func (f *fixture) request(view domain.ViewOptions, targets ...string) ports.AnalysisRequest {
	loaded := make([]*domain.Target, len(targets))
	for i, l := range targets {
		loaded[i] = f.ws.target(l)
	}
	return ports.AnalysisRequest{
		Loading:         &domain.LoadingResult{Targets: loaded},
		Configurations:  &domain.ConfigurationCollection{Targets: []*domain.Configuration{targetCfg}, Host: hostCfg},
		View:            view,
		TopLevelContext: domain.DefaultTopLevelContext,
		Events:          f.events,
		Loader:          f.loader,
		Registry:        rules.Builtin(),
	}
}

func genrule(label, out string, srcs ...string) *domain.Target {
	t := rule(label, "genrule")
	t.Srcs = labels(srcs...)
	t.Outs = labels(out)
	t.Cmd = "cp $(SRCS) $@"
	return t
}

func TestEngine_AnalyzesTransitiveClosure(t *testing.T) {
	f := newFixture(t)
	fg := rule("//p:fg", "filegroup")
	fg.Srcs = labels("//p:out.txt")
	f.ws.add("p", "d1", source("//p:in.txt"), genrule("//p:gen", "//p:out.txt", "//p:in.txt"), fg)

	result, err := f.engine.Analyze(t.Context(), f.request(domain.ViewOptions{}, "//p:fg"))
	require.NoError(t, err)

	require.Len(t, result.ConfiguredTargets, 1)
	top := result.ConfiguredTargets[0]
	assert.Equal(t, "//p:fg", top.Label().String())
	assert.Empty(t, result.Error)
	assert.Equal(t, 4, result.TargetsVisited)
	assert.Len(t, result.EvaluatedKeys, 4)

	src, ok := result.Lookup(domain.KeyFor(domain.MustParseLabel("//p:in.txt"), nil))
	require.True(t, ok)
	assert.IsType(t, &domain.InputFileConfiguredTarget{}, src)

	out, ok := result.Lookup(domain.KeyFor(domain.MustParseLabel("//p:out.txt"), targetCfg))
	require.True(t, ok)
	generated := out.(*domain.OutputFileConfiguredTarget)
	assert.Equal(t, "out/k8-fastbuild/genfiles/p/out.txt", generated.Artifact().ExecPath())
	assert.Equal(t, domain.KeyFor(domain.MustParseLabel("//p:gen"), targetCfg), generated.Generator())

	action := result.ActionGraph.GeneratingAction(generated.Artifact())
	require.NotNil(t, action)
	assert.Equal(t, "Genrule", action.Mnemonic())
	assert.Equal(t, []*domain.Artifact{generated.Artifact()}, top.Files())
}

func TestEngine_ReusesUnchangedTargets(t *testing.T) {
	f := newFixture(t)
	lib := rule("//lib:lib", "filegroup")
	lib.Srcs = labels("//lib:a.txt")
	app := rule("//app:app", "filegroup")
	app.Deps = labels("//lib:lib")
	f.ws.add("lib", "l1", source("//lib:a.txt"), lib)
	f.ws.add("app", "a1", app)

	req := f.request(domain.ViewOptions{}, "//app:app")
	first, err := f.engine.Analyze(t.Context(), req)
	require.NoError(t, err)
	assert.Len(t, first.EvaluatedKeys, 3)

	second, err := f.engine.Analyze(t.Context(), req)
	require.NoError(t, err)
	assert.Empty(t, second.EvaluatedKeys)
	assert.Same(t, first.ConfiguredTargets[0], second.ConfiguredTargets[0])

	f.ws["app"].Digest = "a2"
	third, err := f.engine.Analyze(t.Context(), req)
	require.NoError(t, err)
	assert.Equal(t, []domain.ConfiguredTargetKey{domain.KeyFor(app.Label, targetCfg)}, third.EvaluatedTargetKeys())

	f.engine.Clear()
	fourth, err := f.engine.Analyze(t.Context(), req)
	require.NoError(t, err)
	assert.Len(t, fourth.EvaluatedKeys, 3)
}

func TestEngine_DependencyChangeInvalidatesDependents(t *testing.T) {
	f := newFixture(t)
	lib := rule("//lib:lib", "filegroup")
	app := rule("//app:app", "filegroup")
	app.Deps = labels("//lib:lib")
	f.ws.add("lib", "l1", lib)
	f.ws.add("app", "a1", app)

	req := f.request(domain.ViewOptions{}, "//app:app")
	_, err := f.engine.Analyze(t.Context(), req)
	require.NoError(t, err)

	f.ws["lib"].Digest = "l2"
	result, err := f.engine.Analyze(t.Context(), req)
	require.NoError(t, err)
	assert.Len(t, result.EvaluatedKeys, 2)
}

func TestEngine_Aspects(t *testing.T) {
	f := newFixture(t)
	f.ws.add("p", "d1", source("//p:in.txt"), genrule("//p:gen", "//p:out.txt", "//p:in.txt"))

	req := f.request(domain.ViewOptions{}, "//p:gen")
	req.Aspects = []string{"lint", "file_count"}
	result, err := f.engine.Analyze(t.Context(), req)
	require.NoError(t, err)

	gen := result.ConfiguredTargets[0].(*domain.RuleConfiguredTarget)
	require.Len(t, gen.AspectFiles["lint"], 1)
	assert.Equal(t, "out/k8-fastbuild/bin/p/gen.lint", gen.AspectFiles["lint"][0].ExecPath())
	require.Len(t, gen.AspectFiles["file_count"], 1)
	assert.Equal(t, []string{"lint", "file_count"}, result.Aspects)
	assert.Len(t, result.TopLevelArtifacts(), 3)

	req.Aspects = []string{"nope"}
	_, err = f.engine.Analyze(t.Context(), req)
	assert.ErrorIs(t, err, domain.ErrUnknownAspect)
}

func TestEngine_VisibilityViolation(t *testing.T) {
	f := newFixture(t)
	priv := rule("//lib:priv", "filegroup")
	priv.Visibility = []string{domain.VisibilityPrivate}
	bad := rule("//app:bad", "filegroup")
	bad.Deps = labels("//lib:priv")
	good := rule("//app:good", "filegroup")
	f.ws.add("lib", "l1", priv)
	f.ws.add("app", "a1", bad, good)

	_, err := f.engine.Analyze(t.Context(), f.request(domain.ViewOptions{}, "//app:bad", "//app:good"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAnalysisFailed)
	assert.ErrorIs(t, err, domain.ErrVisibilityViolation)
	assert.Contains(t, f.events.errorLabels(), "//app:bad")

	result, err := f.engine.Analyze(t.Context(), f.request(domain.ViewOptions{KeepGoing: true}, "//app:bad", "//app:good"))
	require.NoError(t, err)
	assert.Equal(t, labels("//app:good"), result.TopLevelLabels())
	assert.Contains(t, result.Error, "//app:bad")
	assert.ErrorIs(t, result.Failed[domain.KeyFor(bad.Label, targetCfg)], domain.ErrVisibilityViolation)
}

func TestEngine_SamePackageIgnoresVisibility(t *testing.T) {
	f := newFixture(t)
	priv := rule("//lib:priv", "filegroup")
	priv.Visibility = []string{domain.VisibilityPrivate}
	user := rule("//lib:user", "filegroup")
	user.Deps = labels("//lib:priv")
	f.ws.add("lib", "l1", priv, user)

	_, err := f.engine.Analyze(t.Context(), f.request(domain.ViewOptions{}, "//lib:user"))
	require.NoError(t, err)
}

func TestEngine_MissingDependency(t *testing.T) {
	f := newFixture(t)
	app := rule("//app:app", "filegroup")
	app.Deps = labels("//app:ghost")
	f.ws.add("app", "a1", app)

	_, err := f.engine.Analyze(t.Context(), f.request(domain.ViewOptions{}, "//app:app"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingDependency)
	assert.ErrorIs(t, err, domain.ErrTargetNotFound)
}

func TestEngine_KeepGoingSkipsDependents(t *testing.T) {
	f := newFixture(t)
	broken := rule("//p:broken", "genrule")
	mid := rule("//p:mid", "filegroup")
	mid.Deps = labels("//p:broken")
	top := rule("//p:top", "filegroup")
	top.Deps = labels("//p:mid")
	f.ws.add("p", "d1", broken, mid, top)

	result, err := f.engine.Analyze(t.Context(), f.request(domain.ViewOptions{KeepGoing: true}, "//p:top"))
	require.NoError(t, err)
	assert.Empty(t, result.ConfiguredTargets)
	assert.Len(t, result.Failed, 3)
	assert.ErrorIs(t, result.Failed[domain.KeyFor(top.Label, targetCfg)], domain.ErrAnalysisFailed)
	assert.Equal(t, []string{"//p:broken"}, f.events.errorLabels())
}

func TestEngine_Cycle(t *testing.T) {
	f := newFixture(t)
	a := rule("//p:a", "filegroup")
	a.Deps = labels("//p:b")
	b := rule("//p:b", "filegroup")
	b.Deps = labels("//p:a")
	f.ws.add("p", "d1", a, b)

	_, err := f.engine.Analyze(t.Context(), f.request(domain.ViewOptions{}, "//p:a"))
	assert.ErrorIs(t, err, domain.ErrCycleDetected)

	result, err := f.engine.Analyze(t.Context(), f.request(domain.ViewOptions{KeepGoing: true}, "//p:a"))
	require.NoError(t, err)
	assert.Len(t, result.Failed, 2)
	assert.ErrorIs(t, result.Failed[domain.KeyFor(a.Label, targetCfg)], domain.ErrCycleDetected)
}

func TestEngine_ToolsUseHostConfiguration(t *testing.T) {
	f := newFixture(t)
	tool := rule("//tools:gen", "sh_binary")
	tool.Srcs = labels("//tools:gen.sh")
	g := genrule("//p:g", "//p:g.out")
	g.Cmd = "run > $@"
	g.Tools = labels("//tools:gen")
	f.ws.add("tools", "t1", source("//tools:gen.sh"), tool)
	f.ws.add("p", "d1", g)

	result, err := f.engine.Analyze(t.Context(), f.request(domain.ViewOptions{}, "//p:g"))
	require.NoError(t, err)

	_, ok := result.Lookup(domain.KeyFor(tool.Label, hostCfg))
	assert.True(t, ok)
	_, ok = result.Lookup(domain.KeyFor(tool.Label, targetCfg))
	assert.False(t, ok)
}

func TestEngine_MultipleConfigurations(t *testing.T) {
	f := newFixture(t)
	fg := rule("//p:fg", "filegroup")
	fg.Srcs = labels("//p:a.txt")
	f.ws.add("p", "d1", source("//p:a.txt"), fg)

	req := f.request(domain.ViewOptions{}, "//p:fg")
	req.Configurations.Targets = []*domain.Configuration{targetCfg, armCfg}
	result, err := f.engine.Analyze(t.Context(), req)
	require.NoError(t, err)

	require.Len(t, result.ConfiguredTargets, 2)
	assert.Equal(t, 3, result.TargetsVisited)
	assert.Equal(t, labels("//p:fg"), result.TopLevelLabels())
}

func TestEngine_TestOnlyWarning(t *testing.T) {
	f := newFixture(t)
	data := rule("//p:data", "filegroup")
	data.TestOnly = true
	user := rule("//p:user", "filegroup")
	user.Deps = labels("//p:data")
	f.ws.add("p", "d1", data, user)

	_, err := f.engine.Analyze(t.Context(), f.request(domain.ViewOptions{}, "//p:user"))
	require.NoError(t, err)
	require.Len(t, f.events.events, 1)
	assert.Equal(t, domain.EventWarning, f.events.events[0].Kind)
	assert.Contains(t, f.events.events[0].Message, "//p:data")

	f.engine.Clear()
	_, err = f.engine.Analyze(t.Context(), f.request(domain.ViewOptions{AnalysisWarningsAsErrors: true}, "//p:user"))
	assert.ErrorIs(t, err, domain.ErrAnalysisFailed)
}

package pipeline_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/prism/internal/adapters/clock"
	"go.trai.ch/prism/internal/adapters/config"
	"go.trai.ch/prism/internal/adapters/configfactory"
	"go.trai.ch/prism/internal/adapters/fs"
	"go.trai.ch/prism/internal/adapters/metrics"
	"go.trai.ch/prism/internal/adapters/options"
	"go.trai.ch/prism/internal/adapters/packages"
	"go.trai.ch/prism/internal/adapters/policy"
	"go.trai.ch/prism/internal/adapters/reporter"
	"go.trai.ch/prism/internal/adapters/rules"
	"go.trai.ch/prism/internal/adapters/telemetry"
	"go.trai.ch/prism/internal/core/domain"
	"go.trai.ch/prism/internal/core/ports/mocks"
	"go.trai.ch/prism/internal/engine/analysis"
	"go.trai.ch/prism/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

var workspaceFiles = map[string]string{
	domain.WorkspaceFileName: "name: test\n",
	"good/BUILD.yaml": `targets:
  t:
    rule: filegroup
    srcs: [a.txt]
  gen:
    rule: genrule
    srcs: [a.txt]
    outs: [a.out]
    cmd: "cp $< $@"
  group:
    rule: filegroup
    srcs: [":gen"]
  dep:
    rule: filegroup
    deps: ["//lib:priv"]
`,
	"good/a.txt": "a\n",
	"lib/BUILD.yaml": `targets:
  priv:
    rule: filegroup
    visibility: ["//visibility:private"]
  pub:
    rule: filegroup
`,
}

func writeWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range workspaceFiles {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
		require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	}
	return root
}

type harness struct {
	*pipeline.Pipeline
	metrics *metrics.Metrics
}

func newDependencies(t *testing.T, rulePolicy *policy.Policy) (pipeline.Dependencies, *metrics.Metrics) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	hasher := fs.NewHasher()
	tracer := telemetry.NewNoOpTracer()
	loader, err := packages.NewLoader(config.NewOSFS(), hasher, log, packages.DefaultCacheSize)
	require.NoError(t, err)
	m := metrics.New(prometheus.NewRegistry())

	return pipeline.Dependencies{
		Parsers:       options.NewFactory(),
		Policy:        rulePolicy,
		Registry:      rules.Builtin(),
		Loader:        loader,
		Resolver:      fs.NewResolver(fs.NewWalker()),
		Detector:      packages.EverythingDetector{},
		Configuration: configfactory.NewFactory(hasher),
		Engine:        analysis.NewEngine(hasher, tracer, log),
		Monitor:       clock.NewMonitor(clockwork.NewRealClock(), 0),
		Tracer:        tracer,
		Metrics:       m,
		Logger:        log,
	}, m
}

func newHarness(t *testing.T, opts ...pipeline.Option) *harness {
	t.Helper()
	deps, m := newDependencies(t, policy.New())
	p, err := pipeline.New(writeWorkspace(t), deps, opts...)
	require.NoError(t, err)
	return &harness{Pipeline: p, metrics: m}
}

func keepGoing() *domain.FlagSet {
	flags := domain.NewFlagSet(domain.FlagKeepGoing)
	return &flags
}

func TestPipeline_QueriesRequireUpdate(t *testing.T) {
	h := newHarness(t)
	artifact := &domain.Artifact{RootRelativePath: "good/a.out"}

	queries := map[string]func() error{
		"AnalysisResult": func() error { _, err := h.AnalysisResult(); return err },
		"ConfiguredTarget": func() error {
			_, err := h.ConfiguredTarget("//good:t")
			return err
		},
		"ConfiguredTargetIn": func() error {
			_, err := h.ConfiguredTargetIn("//good:t", nil)
			return err
		},
		"InputFileConfiguredTarget": func() error {
			_, err := h.InputFileConfiguredTarget(t.Context(), "//good:a.txt")
			return err
		},
		"GeneratingAction": func() error { _, err := h.GeneratingAction(artifact); return err },
		"BinArtifact": func() error {
			_, err := h.BinArtifact("x", "//good:t")
			return err
		},
		"GenfilesArtifact": func() error {
			_, err := h.GenfilesArtifact("x", "//good:t")
			return err
		},
		"TargetsVisited":          func() error { _, err := h.TargetsVisited(); return err },
		"EvaluatedTargetKeys":     func() error { _, err := h.EvaluatedTargetKeys(); return err },
		"AnalysisError":           func() error { _, err := h.AnalysisError(); return err },
		"HasErrors":               func() error { _, err := h.HasErrors(nil); return err },
		"ActionGraph":             func() error { _, err := h.ActionGraph(); return err },
		"ConfigurationCollection": func() error { _, err := h.ConfigurationCollection(); return err },
		"TargetConfiguration":     func() error { _, err := h.TargetConfiguration(); return err },
		"HostConfiguration":       func() error { _, err := h.HostConfiguration(); return err },
	}
	for name, query := range queries {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, query(), domain.ErrUpdateNotCalled)
		})
	}
}

func TestPipeline_UpdateFailsWithoutKeepGoing(t *testing.T) {
	h := newHarness(t)

	_, err := h.Update(t.Context(), "//bad:missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLoadingFailed)
	assert.ErrorIs(t, err, domain.ErrPackageNotFound)

	_, err = h.AnalysisError()
	assert.ErrorIs(t, err, domain.ErrUpdateNotCalled)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.PhaseRuns.WithLabelValues(pipeline.PhaseLoading, metrics.StatusError)))
}

func TestPipeline_FailedUpdateKeepsPreviousResult(t *testing.T) {
	h := newHarness(t)

	first, err := h.Update(t.Context(), "//good:t")
	require.NoError(t, err)
	cfg, err := h.TargetConfiguration()
	require.NoError(t, err)

	require.NoError(t, h.Configure("--compilation_mode=opt"))
	_, err = h.Update(t.Context(), "//good:missing")
	require.ErrorIs(t, err, domain.ErrTargetNotFound)

	current, err := h.AnalysisResult()
	require.NoError(t, err)
	assert.Same(t, first, current)

	still, err := h.TargetConfiguration()
	require.NoError(t, err)
	assert.Same(t, cfg, still)
}

func TestPipeline_KeepGoing(t *testing.T) {
	h := newHarness(t)

	result, err := h.UpdateWithOptions(t.Context(), pipeline.UpdateOptions{Flags: keepGoing()}, "//good:t", "//bad:missing")
	require.NoError(t, err)
	assert.Equal(t, []domain.Label{domain.MustParseLabel("//good:t")}, result.TopLevelLabels())

	ct, err := h.ConfiguredTarget("//good:t")
	require.NoError(t, err)
	assert.NotNil(t, ct)

	msg, err := h.AnalysisError()
	require.NoError(t, err)
	assert.Contains(t, msg, "//bad:missing")
}

func TestPipeline_DefaultFlagsHook(t *testing.T) {
	h := newHarness(t, pipeline.WithDefaultFlags(func() domain.FlagSet {
		return domain.NewFlagSet(domain.FlagKeepGoing)
	}))

	_, err := h.Update(t.Context(), "//good:t", "//good:nope")
	require.NoError(t, err)
	msg, err := h.AnalysisError()
	require.NoError(t, err)
	assert.Contains(t, msg, "//good:nope")
}

func TestPipeline_LabelSyntaxAlwaysFails(t *testing.T) {
	h := newHarness(t)

	_, err := h.UpdateWithOptions(t.Context(), pipeline.UpdateOptions{Flags: keepGoing()}, "//good:t", "good:t")
	assert.ErrorIs(t, err, domain.ErrLabelSyntax)
	assert.NotErrorIs(t, err, domain.ErrTargetNotFound)

	_, err = h.Update(t.Context(), "//good:t")
	require.NoError(t, err)
	_, err = h.ConfiguredTarget("//good:")
	assert.ErrorIs(t, err, domain.ErrLabelSyntax)
}

func TestPipeline_ConfiguredTargetLookup(t *testing.T) {
	h := newHarness(t)
	_, err := h.Update(t.Context(), "//good:t")
	require.NoError(t, err)

	ct, err := h.ConfiguredTarget("//good:t")
	require.NoError(t, err)
	require.NotNil(t, ct)
	assert.Equal(t, domain.MustParseLabel("//good:t"), ct.Label())

	absent, err := h.ConfiguredTarget("//lib:pub")
	require.NoError(t, err)
	assert.Nil(t, absent)

	src, err := h.ConfiguredTarget("//good:a.txt")
	require.NoError(t, err)
	assert.IsType(t, &domain.InputFileConfiguredTarget{}, src)

	visited, err := h.TargetsVisited()
	require.NoError(t, err)
	assert.Equal(t, 2, visited)
}

func TestPipeline_ReconfigureReplacesConfigurations(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.Configure("--compilation_mode=fastbuild"))
	_, err := h.Update(t.Context(), "//good:t")
	require.NoError(t, err)
	cfg, err := h.TargetConfiguration()
	require.NoError(t, err)
	assert.Equal(t, domain.ModeFastbuild, cfg.CompilationMode)

	require.NoError(t, h.Configure("--compilation_mode=opt"))
	_, err = h.Update(t.Context(), "//good:t")
	require.NoError(t, err)
	cfg, err = h.TargetConfiguration()
	require.NoError(t, err)
	assert.Equal(t, domain.ModeOpt, cfg.CompilationMode)

	require.NoError(t, h.Configure("--cpu=arm"))
	require.NoError(t, h.Configure())
	assert.Equal(t, "k8", h.Options().Fragment(domain.OptionCPU, ""))
	assert.Equal(t, domain.ModeFastbuild, h.Options().Fragment(domain.OptionCompilationMode, ""))
}

func TestPipeline_ConfigureErrors(t *testing.T) {
	deps, _ := newDependencies(t, policy.New(policy.Rule{Flag: domain.OptionCPU, Disallow: []string{"arm"}}))
	p, err := pipeline.New(writeWorkspace(t), deps)
	require.NoError(t, err)

	err = p.Configure("--compilation_mode=fast")
	assert.ErrorIs(t, err, domain.ErrInvalidOption)
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
	assert.Equal(t, domain.ModeFastbuild, p.Options().Fragment(domain.OptionCompilationMode, ""))

	err = p.Configure("--no_such_option")
	assert.ErrorIs(t, err, domain.ErrInvalidOption)

	err = p.Configure("--cpu=arm")
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
	assert.ErrorIs(t, err, domain.ErrPolicyViolation)
	assert.Equal(t, "k8", p.Options().Fragment(domain.OptionCPU, ""))
}

func TestPipeline_DynamicConfigurationsFlag(t *testing.T) {
	h := newHarness(t, pipeline.WithDefaultFlags(func() domain.FlagSet {
		return domain.NewFlagSet(domain.FlagUseDynamicConfigurations)
	}))
	assert.Equal(t, "true", h.Options().Fragment(domain.OptionDynamicConfigs, ""))

	_, err := h.Update(t.Context(), "//good:t")
	require.NoError(t, err)
	cfg, err := h.TargetConfiguration()
	require.NoError(t, err)
	assert.True(t, cfg.Dynamic)
}

func TestPipeline_UpdateIsIdempotent(t *testing.T) {
	h := newHarness(t)

	first, err := h.Update(t.Context(), "//good:t", "//good:group")
	require.NoError(t, err)
	second, err := h.Update(t.Context(), "//good:t", "//good:group")
	require.NoError(t, err)

	assert.Equal(t, first.TopLevelLabels(), second.TopLevelLabels())
	keys, err := h.EvaluatedTargetKeys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestPipeline_ArtifactsAndActions(t *testing.T) {
	h := newHarness(t)
	_, err := h.Update(t.Context(), "//good:group")
	require.NoError(t, err)

	out, err := h.GenfilesArtifact("a.out", "//good:gen")
	require.NoError(t, err)
	action, err := h.GeneratingAction(out)
	require.NoError(t, err)
	require.NotNil(t, action)
	assert.Equal(t, "Genrule", action.Mnemonic())
	assert.Contains(t, action.Command(), "good/a.txt")

	none, err := h.GeneratingAction(&domain.Artifact{RootRelativePath: "good/a.txt"})
	require.NoError(t, err)
	assert.Nil(t, none)

	middleman, err := h.BinArtifact("_middlemen/group", "//good:group")
	require.NoError(t, err)
	_, err = h.GeneratingAction(middleman)
	assert.ErrorIs(t, err, domain.ErrNotAnAction)

	input, err := h.InputFileConfiguredTarget(t.Context(), "//good:a.txt")
	require.NoError(t, err)
	require.NotNil(t, input)
	assert.Equal(t, "good/a.txt", input.Artifact().ExecPath())

	_, err = h.InputFileConfiguredTarget(t.Context(), "//good:gen")
	assert.ErrorIs(t, err, domain.ErrNotInputFile)

	graph, err := h.ActionGraph()
	require.NoError(t, err)
	assert.Equal(t, 2, graph.Len())
}

func TestPipeline_VisibilityWithEvents(t *testing.T) {
	h := newHarness(t)
	events := reporter.NewCollector(clockwork.NewFakeClock(), nil)

	_, err := h.UpdateWithOptions(t.Context(), pipeline.UpdateOptions{Events: events}, "//good:dep")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrVisibilityViolation)
	assert.True(t, events.HasErrors())

	result, err := h.UpdateWithOptions(t.Context(), pipeline.UpdateOptions{Flags: keepGoing()}, "//good:dep", "//good:t")
	require.NoError(t, err)
	assert.Contains(t, result.Error, "//good:dep")

	ct, err := h.ConfiguredTarget("//good:dep")
	require.NoError(t, err)
	hasErrors, err := h.HasErrors(ct)
	require.NoError(t, err)
	assert.True(t, hasErrors)
}

func TestPipeline_Aspects(t *testing.T) {
	h := newHarness(t)

	result, err := h.UpdateWithOptions(t.Context(), pipeline.UpdateOptions{Aspects: []string{"lint"}}, "//good:gen")
	require.NoError(t, err)
	assert.Equal(t, []string{"lint"}, result.Aspects)

	_, err = h.UpdateWithOptions(t.Context(), pipeline.UpdateOptions{Aspects: []string{"missing"}}, "//good:gen")
	assert.ErrorIs(t, err, domain.ErrUnknownAspect)
}

func TestPipeline_MultiCPU(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.Configure("--multi_cpu=k8", "--multi_cpu=arm", "--multi_cpu=k8"))

	result, err := h.Update(t.Context(), "//good:t")
	require.NoError(t, err)
	assert.Len(t, result.ConfiguredTargets, 2)

	collection, err := h.ConfigurationCollection()
	require.NoError(t, err)
	assert.Len(t, collection.Targets, 2)

	_, err = h.TargetConfiguration()
	assert.ErrorIs(t, err, domain.ErrAmbiguousTargetConfiguration)

	host, err := h.HostConfiguration()
	require.NoError(t, err)
	assert.True(t, host.IsHost)
}

func TestPipeline_Patterns(t *testing.T) {
	h := newHarness(t)

	result, err := h.Update(t.Context(), "//lib:all")
	require.NoError(t, err)
	assert.Equal(t, []domain.Label{
		domain.MustParseLabel("//lib:priv"),
		domain.MustParseLabel("//lib:pub"),
	}, result.TopLevelLabels())

	result, err = h.UpdateWithOptions(t.Context(), pipeline.UpdateOptions{Flags: keepGoing()}, "//...")
	require.NoError(t, err)
	assert.Len(t, result.TopLevelLabels(), 5)
	assert.Contains(t, result.Error, "//good:dep")
}

func TestPipeline_RecursivePatternKeepsLoadedPackages(t *testing.T) {
	h := newHarness(t)
	broken := filepath.Join(h.Workspace(), "broken", domain.BuildFileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(broken), domain.DirPerm))
	require.NoError(t, os.WriteFile(broken, []byte("targets: [oops\n"), domain.FilePerm))

	_, err := h.Update(t.Context(), "//...")
	require.ErrorIs(t, err, domain.ErrLoadingFailed)
	assert.ErrorIs(t, err, domain.ErrPackageParseFailed)

	result, err := h.UpdateWithOptions(t.Context(), pipeline.UpdateOptions{Flags: keepGoing()}, "//...")
	require.NoError(t, err)
	labels := result.TopLevelLabels()
	assert.Contains(t, labels, domain.MustParseLabel("//good:t"))
	assert.Contains(t, labels, domain.MustParseLabel("//lib:pub"))
	assert.Len(t, labels, 5)
	assert.Contains(t, result.Error, "loading of target '//broken:all' failed")
}

func TestPipeline_InputFileLookupErrors(t *testing.T) {
	h := newHarness(t)
	_, err := h.Update(t.Context(), "//good:t")
	require.NoError(t, err)

	ct, err := h.InputFileConfiguredTarget(t.Context(), "//nowhere:x.txt")
	require.NoError(t, err)
	assert.Nil(t, ct)

	build := filepath.Join(h.Workspace(), "lib", domain.BuildFileName)
	require.NoError(t, os.WriteFile(build, []byte("targets: [oops\n"), domain.FilePerm))

	ct, err = h.InputFileConfiguredTarget(t.Context(), "//lib:x.txt")
	require.ErrorIs(t, err, domain.ErrPackageParseFailed)
	assert.Nil(t, ct)
}

func TestPipeline_DefaultsPackage(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.Configure("--compilation_mode=dbg"))

	_, err := h.Update(t.Context(), "//tools/defaults:compilation_mode")
	require.NoError(t, err)

	out, err := h.GenfilesArtifact("compilation_mode.txt", "//tools/defaults:compilation_mode")
	require.NoError(t, err)
	action, err := h.GeneratingAction(out)
	require.NoError(t, err)
	require.NotNil(t, action)
	assert.Contains(t, action.Command(), "echo dbg")
}

func TestPipeline_TargetWithoutUpdate(t *testing.T) {
	h := newHarness(t)

	target, err := h.Target(t.Context(), "//good:gen")
	require.NoError(t, err)
	assert.Equal(t, "genrule", target.RuleClass)

	_, err = h.Target(t.Context(), "//good:nope")
	assert.ErrorIs(t, err, domain.ErrTargetNotFound)
}

func TestPipeline_ClearAnalysisResult(t *testing.T) {
	h := newHarness(t)
	_, err := h.Update(t.Context(), "//good:t")
	require.NoError(t, err)

	h.ClearAnalysisResult()
	_, err = h.AnalysisResult()
	assert.ErrorIs(t, err, domain.ErrUpdateNotCalled)
	_, err = h.HostConfiguration()
	assert.ErrorIs(t, err, domain.ErrUpdateNotCalled)
}

func TestPipeline_IncrementalLoadingUsesDetector(t *testing.T) {
	deps, _ := newDependencies(t, policy.New())
	ctrl := gomock.NewController(t)
	detector := mocks.NewMockChangeDetector(ctrl)
	detector.EXPECT().ModifiedFiles(gomock.Any()).Return(domain.NothingModified, nil).Times(1)
	deps.Detector = detector

	p, err := pipeline.New(writeWorkspace(t), deps)
	require.NoError(t, err)

	flags := domain.NewFlagSet(domain.FlagUseIncrementalLoading)
	_, err = p.UpdateWithOptions(t.Context(), pipeline.UpdateOptions{Flags: &flags}, "//good:t")
	require.NoError(t, err)

	_, err = p.Update(t.Context(), "//good:t")
	require.NoError(t, err)
}

func TestPipeline_UseRuleRegistry(t *testing.T) {
	h := newHarness(t)
	_, err := h.Update(t.Context(), "//good:gen")
	require.NoError(t, err)

	registry := rules.NewRegistry(rules.CoreFragment())
	registry.Register(rules.Filegroup{})
	require.NoError(t, h.UseRuleRegistry(registry))

	_, err = h.Update(t.Context(), "//good:t")
	assert.ErrorIs(t, err, domain.ErrUnknownRuleClass)
}

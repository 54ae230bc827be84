package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
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
	"go.trai.ch/prism/internal/adapters/rules"
	"go.trai.ch/prism/internal/adapters/telemetry"
	"go.trai.ch/prism/internal/app"
	"go.trai.ch/prism/internal/core/domain"
	"go.trai.ch/prism/internal/core/ports"
	"go.trai.ch/prism/internal/core/ports/mocks"
	"go.trai.ch/prism/internal/engine/analysis"
	"go.trai.ch/prism/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

func writeWorkspace(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	files[domain.WorkspaceFileName] = "name: test\n"
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
		require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	}
	return root
}

func defaultWorkspace(t *testing.T) string {
	t.Helper()
	return writeWorkspace(t, map[string]string{
		"good/BUILD.yaml": "targets:\n  t:\n    rule: filegroup\n    srcs: [a.txt]\n",
		"good/a.txt":      "a\n",
	})
}

type testApp struct {
	*app.App
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	watcher *mocks.MockWatcher
}

func newApp(t *testing.T) *testApp {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

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

	deps := pipeline.Dependencies{
		Parsers:       options.NewFactory(),
		Registry:      rules.Builtin(),
		Loader:        loader,
		Resolver:      fs.NewResolver(fs.NewWalker()),
		Detector:      packages.EverythingDetector{},
		Configuration: configfactory.NewFactory(hasher),
		Engine:        analysis.NewEngine(hasher, tracer, log),
		Monitor:       clock.NewMonitor(clockwork.NewRealClock(), 0),
		Tracer:        tracer,
		Metrics:       metrics.New(prometheus.NewRegistry()),
		Logger:        log,
	}

	w := mocks.NewMockWatcher(ctrl)
	var stdout, stderr bytes.Buffer
	a := app.New(deps, policy.Loader{}, w).WithOutput(&stdout, &stderr)
	return &testApp{App: a, stdout: &stdout, stderr: &stderr, watcher: w}
}

func emptyEvents() iter.Seq[ports.WatchEvent] {
	return func(func(ports.WatchEvent) bool) {}
}

func TestApp_Analyze(t *testing.T) {
	root := defaultWorkspace(t)
	a := newApp(t)

	err := a.Analyze(t.Context(), []string{"//good:t"}, app.AnalyzeOptions{
		Dir:    filepath.Join(root, "good"),
		Output: "plain",
	})
	require.NoError(t, err)

	out := a.stdout.String()
	assert.Contains(t, out, "Analyzed 1 target in 1 configuration (2 visited, 2 evaluated, 1 action)")
	assert.Contains(t, out, "✓ //good:t k8-fastbuild#")
	assert.Contains(t, out, "    good/a.txt\n")
	assert.Empty(t, a.stderr.String())
}

func TestApp_Analyze_NoLabels(t *testing.T) {
	a := newApp(t)
	err := a.Analyze(t.Context(), nil, app.AnalyzeOptions{})
	assert.ErrorIs(t, err, domain.ErrNoLabelsSpecified)
}

func TestApp_Analyze_WorkspaceNotFound(t *testing.T) {
	a := newApp(t)
	err := a.Analyze(t.Context(), []string{"//good:t"}, app.AnalyzeOptions{Dir: t.TempDir()})
	assert.ErrorIs(t, err, domain.ErrWorkspaceNotFound)
}

func TestApp_Analyze_JSON(t *testing.T) {
	root := defaultWorkspace(t)
	a := newApp(t)

	err := a.Analyze(t.Context(), []string{"//good:t"}, app.AnalyzeOptions{Dir: root, Output: "json"})
	require.NoError(t, err)

	var summary domain.UpdateSummary
	require.NoError(t, json.Unmarshal(a.stdout.Bytes(), &summary))
	require.Len(t, summary.Targets, 1)
	assert.Equal(t, domain.MustParseLabel("//good:t"), summary.Targets[0].Label)
	assert.Equal(t, []string{"good/a.txt"}, summary.Targets[0].Files)
	assert.Equal(t, 2, summary.Visited)
	assert.Empty(t, summary.Error)
}

func TestApp_Analyze_KeepGoing(t *testing.T) {
	root := defaultWorkspace(t)
	a := newApp(t)

	err := a.Analyze(t.Context(), []string{"//good:t", "//bad:missing"}, app.AnalyzeOptions{
		Dir:       root,
		Output:    "plain",
		KeepGoing: true,
	})
	require.ErrorIs(t, err, domain.ErrUpdateIncomplete)
	assert.Contains(t, a.stdout.String(), "✓ //good:t")
	assert.Contains(t, a.stdout.String(), "✗ loading of target '//bad:missing' failed")
}

func TestApp_Analyze_MetricsFile(t *testing.T) {
	root := defaultWorkspace(t)
	a := newApp(t)
	path := filepath.Join(t.TempDir(), "prism.prom")

	err := a.Analyze(t.Context(), []string{"//good:t"}, app.AnalyzeOptions{
		Dir:         root,
		Output:      "plain",
		MetricsFile: path,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `prism_phase_runs_total{phase="loading",status="success"} 1`)
	assert.Contains(t, string(data), `prism_phase_runs_total{phase="analysis",status="success"} 1`)
	assert.Contains(t, string(data), "prism_targets_visited_total 2")

	err = a.Analyze(t.Context(), []string{"//good:t"}, app.AnalyzeOptions{
		Dir:         root,
		Output:      "plain",
		MetricsFile: filepath.Join(root, "missing", "prism.prom"),
	})
	require.Error(t, err)
}

func TestApp_Analyze_FailsWithoutKeepGoing(t *testing.T) {
	root := defaultWorkspace(t)
	a := newApp(t)

	err := a.Analyze(t.Context(), []string{"//bad:missing"}, app.AnalyzeOptions{Dir: root, Output: "plain"})
	require.ErrorIs(t, err, domain.ErrLoadingFailed)
	assert.Empty(t, a.stdout.String())
}

func TestApp_Analyze_Policy(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		"good/BUILD.yaml":     "targets:\n  t:\n    rule: filegroup\n",
		domain.PolicyFileName: "policies:\n  - flag: compilation_mode\n    disallow: [dbg]\n",
	})
	a := newApp(t)

	err := a.Analyze(t.Context(), []string{"//good:t"}, app.AnalyzeOptions{
		Dir:     root,
		Options: []string{"--compilation_mode=dbg"},
	})
	assert.ErrorIs(t, err, domain.ErrPolicyViolation)

	err = a.Analyze(t.Context(), []string{"//good:t"}, app.AnalyzeOptions{
		Dir:     root,
		Options: []string{"--compilation_mode=opt"},
		Output:  "plain",
	})
	require.NoError(t, err)
	assert.Contains(t, a.stdout.String(), "k8-opt#")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("policies:\n  - flag: cpu\n"), domain.FilePerm))
	err = a.Analyze(t.Context(), []string{"//good:t"}, app.AnalyzeOptions{Dir: root, Policy: bad})
	assert.ErrorIs(t, err, domain.ErrPolicyParseFailed)
}

func TestApp_Analyze_PackagePath(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		"third_party/lib/BUILD.yaml": "targets:\n  l:\n    rule: filegroup\n",
	})
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.WorkspaceFileName),
		[]byte("name: test\npackage_path: [\"%workspace%\", third_party]\n"), domain.FilePerm))
	a := newApp(t)

	err := a.Analyze(t.Context(), []string{"//lib:l"}, app.AnalyzeOptions{Dir: root, Output: "plain"})
	require.NoError(t, err)
	assert.Contains(t, a.stdout.String(), "✓ //lib:l")
}

func TestApp_Analyze_Incremental(t *testing.T) {
	root := defaultWorkspace(t)
	a := newApp(t)
	a.watcher.EXPECT().Start(gomock.Any(), gomock.Any()).Return(nil)
	a.watcher.EXPECT().Events().Return(emptyEvents())
	a.watcher.EXPECT().Stop().Return(nil)

	err := a.Analyze(t.Context(), []string{"//good:t"}, app.AnalyzeOptions{
		Dir:         root,
		Output:      "plain",
		Incremental: true,
	})
	require.NoError(t, err)
	assert.Contains(t, a.stdout.String(), "✓ //good:t")
}

func TestApp_Analyze_Watch(t *testing.T) {
	root := defaultWorkspace(t)
	a := newApp(t)
	fake := clockwork.NewFakeClock()
	a.WithClock(fake)
	a.watcher.EXPECT().Start(gomock.Any(), gomock.Any()).Return(nil)
	a.watcher.EXPECT().Events().Return(emptyEvents())
	a.watcher.EXPECT().Stop().Return(nil)

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- a.Analyze(ctx, []string{"//good:t"}, app.AnalyzeOptions{
			Dir:      root,
			Output:   "plain",
			Watch:    true,
			Interval: time.Second,
		})
	}()

	require.NoError(t, fake.BlockUntilContext(ctx, 1))
	fake.Advance(time.Second)
	require.NoError(t, fake.BlockUntilContext(ctx, 1))
	cancel()

	require.NoError(t, <-done)
	assert.Equal(t, 1, strings.Count(a.stdout.String(), "Analyzed"))
}

func TestApp_Analyze_WatchPrettyQuits(t *testing.T) {
	root := defaultWorkspace(t)
	a := newApp(t)
	a.WithClock(clockwork.NewFakeClock())
	a.WithTeaOptions(
		tea.WithInput(strings.NewReader("q")),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
		tea.WithoutRenderer(),
	)
	a.watcher.EXPECT().Start(gomock.Any(), gomock.Any()).Return(nil)
	a.watcher.EXPECT().Events().Return(emptyEvents())
	a.watcher.EXPECT().Stop().Return(nil)

	done := make(chan error, 1)
	go func() {
		done <- a.Analyze(t.Context(), []string{"//good:t"}, app.AnalyzeOptions{
			Dir:    root,
			Output: "pretty",
			Watch:  true,
		})
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("watch mode did not end when the TUI quit")
	}
	assert.NotContains(t, a.stdout.String(), "Analyzed", "the TUI replaces the line summary")
}

func TestApp_Clean(t *testing.T) {
	root := defaultWorkspace(t)
	outputBase := filepath.Join(root, domain.DefaultOutputBase())
	require.NoError(t, os.MkdirAll(filepath.Join(outputBase, "k8-fastbuild"), domain.DirPerm))
	a := newApp(t)

	require.NoError(t, a.Clean(t.Context(), app.CleanOptions{Dir: root}))
	_, err := os.Stat(outputBase)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(root, domain.WorkspaceFileName))
	assert.NoError(t, err)
}

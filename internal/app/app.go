// Package app implements the application layer for prism.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/muesli/termenv"
	"go.trai.ch/prism/internal/adapters/config"
	"go.trai.ch/prism/internal/adapters/detector"
	"go.trai.ch/prism/internal/adapters/linear"
	"go.trai.ch/prism/internal/adapters/telemetry"
	"go.trai.ch/prism/internal/adapters/tui"
	"go.trai.ch/prism/internal/adapters/watcher"
	"go.trai.ch/prism/internal/core/domain"
	"go.trai.ch/prism/internal/core/ports"
	"go.trai.ch/prism/internal/engine/pipeline"
	"go.trai.ch/prism/internal/ui/output"
	"go.trai.ch/zerr"
)

// DefaultWatchInterval is the pause between updates in watch mode.
const DefaultWatchInterval = time.Second

// PolicyLoader reads invocation policy files.
type PolicyLoader interface {
	Load(path string) (ports.InvocationPolicy, error)
}

// MetricsExporter writes collected metrics to a file.
type MetricsExporter interface {
	WriteTextfile(path string) error
}

// App represents the main application logic.
type App struct {
	deps     pipeline.Dependencies
	policies PolicyLoader
	watcher  ports.Watcher
	logger   ports.Logger
	clock    clockwork.Clock
	stdout   io.Writer
	stderr   io.Writer

	teaOptions []tea.ProgramOption
}

// New creates a new App instance. deps.Policy and deps.Detector are chosen per command.
func New(deps pipeline.Dependencies, policies PolicyLoader, w ports.Watcher) *App {
	return &App{
		deps:     deps,
		policies: policies,
		watcher:  w,
		logger:   deps.Logger,
		clock:    clockwork.NewRealClock(),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
}

// WithOutput redirects command output. This is primarily used for testing.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithClock replaces the clock that times updates and paces watch mode.
func (a *App) WithClock(clock clockwork.Clock) *App {
	a.clock = clock
	return a
}

// WithTeaOptions adds bubbletea program options for the watch-mode TUI.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// AnalyzeOptions configuration for the Analyze method.
type AnalyzeOptions struct {
	// Dir is a directory inside the workspace. Empty means the working directory.
	Dir string
	// KeepGoing reports failed labels and targets instead of stopping at the first.
	KeepGoing bool
	// Incremental invalidates only packages whose files changed.
	Incremental bool
	// Dynamic requests per-target configurations.
	Dynamic bool
	Aspects []string
	// Options are build options such as --compilation_mode=opt.
	Options []string
	// Policy is the invocation policy file. Empty means policy.yaml at the workspace root.
	Policy string
	// Output is one of auto, pretty, plain or json.
	Output string
	// Watch repeats the update until ctx ends, printing only updates that evaluated targets.
	// In pretty mode the updates are shown in a TUI instead.
	Watch    bool
	Interval time.Duration
	// MetricsFile receives the pipeline metrics in the Prometheus text format
	// after every update.
	MetricsFile string
}

// Analyze configures, loads and analyzes labels in the workspace containing opts.Dir.
func (a *App) Analyze(ctx context.Context, labels []string, opts AnalyzeOptions) error {
	if len(labels) == 0 {
		return domain.ErrNoLabelsSpecified
	}

	ws, err := a.findWorkspace(opts.Dir)
	if err != nil {
		return err
	}

	mode := detector.ResolveMode(detector.DetectEnvironment(), opts.Output)
	if mode == detector.ModeJSON {
		if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
			l.SetJSON(true)
		}
	}
	renderer := linear.NewRenderer(a.stdout, a.stderr, profileFor(mode))
	var events ports.EventHandler = renderer
	show := func(_ *domain.AnalysisResult, summary domain.UpdateSummary) error {
		return a.print(summary, renderer, mode)
	}

	tp := telemetry.InstallBridge(a.logger)
	defer func() {
		_ = tp.Shutdown(context.WithoutCancel(ctx))
	}()

	deps := a.deps
	policyPath := opts.Policy
	if policyPath == "" {
		policyPath = filepath.Join(ws.Root, domain.PolicyFileName)
	}
	if deps.Policy, err = a.policies.Load(policyPath); err != nil {
		return err
	}

	incremental := opts.Incremental || opts.Watch
	if incremental {
		d := watcher.NewDetector(a.watcher, ws.Root, a.clock, watcher.DefaultDebounceWindow)
		defer func() {
			if err := d.Stop(); err != nil {
				a.logger.Warn("failed to stop file watcher: " + err.Error())
			}
		}()
		deps.Detector = d
	}

	flags := domain.NewFlagSetBuilder(pipeline.DefaultFlags())
	if opts.KeepGoing {
		flags.With(domain.FlagKeepGoing)
	}
	if incremental {
		flags.With(domain.FlagUseIncrementalLoading)
	}
	if opts.Dynamic {
		flags.With(domain.FlagUseDynamicConfigurations)
	}

	p, err := pipeline.New(ws.Root, deps,
		pipeline.WithClock(a.clock),
		pipeline.WithDefaultFlags(flags.Build),
	)
	if err != nil {
		return err
	}
	if err := p.Configure(append(packagePathArgs(ws), opts.Options...)...); err != nil {
		return err
	}

	if !opts.Watch {
		err := a.update(ctx, p, labels, opts.Aspects, events, show, true)
		if merr := a.exportMetrics(opts.MetricsFile); merr != nil {
			return errors.Join(err, merr)
		}
		return err
	}
	return a.watch(ctx, p, labels, opts, mode, events, show)
}

// watch repeats updates until ctx ends or the TUI quits. Pretty mode shows them in the TUI.
func (a *App) watch(
	ctx context.Context,
	p *pipeline.Pipeline,
	labels []string,
	opts AnalyzeOptions,
	mode detector.OutputMode,
	events ports.EventHandler,
	show func(*domain.AnalysisResult, domain.UpdateSummary) error,
) error {
	report := a.logger.Error
	var quit <-chan struct{}
	if mode == detector.ModePretty {
		screen, err := a.startScreen(ctx)
		if err != nil {
			return err
		}
		defer a.stopScreen(ctx, screen)
		events = screen
		show = func(result *domain.AnalysisResult, summary domain.UpdateSummary) error {
			screen.Show(result, summary)
			return nil
		}
		report = func(err error) {
			screen.Handle(domain.Event{Kind: domain.EventError, Message: err.Error(), Time: a.clock.Now()})
		}
		quit = screen.Done()
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	first := true
	for {
		err := a.update(ctx, p, labels, opts.Aspects, events, show, first)
		if err != nil && !errors.Is(err, domain.ErrUpdateIncomplete) {
			if ctx.Err() != nil {
				return nil
			}
			report(err)
		}
		if err := a.exportMetrics(opts.MetricsFile); err != nil {
			report(err)
		}
		first = false

		select {
		case <-ctx.Done():
			return nil
		case <-quit:
			return nil
		case <-a.clock.After(interval):
		}
	}
}

func (a *App) startScreen(ctx context.Context) (*tui.Renderer, error) {
	model := tui.NewModel(a.stdout)
	opts := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithOutput(a.stdout),
		tea.WithAltScreen(),
	}, a.teaOptions...)
	screen := tui.NewRenderer(&model, opts...)
	if err := screen.Start(ctx); err != nil {
		return nil, err
	}
	return screen, nil
}

// stopScreen quits the TUI and restores the terminal before Analyze returns.
func (a *App) stopScreen(ctx context.Context, screen *tui.Renderer) {
	_ = screen.Stop()
	if err := screen.Wait(); err != nil && ctx.Err() == nil {
		a.logger.Warn("terminal UI failed: " + err.Error())
	}
}

// update runs one update and shows its summary. Unless force is set, updates that
// reused every configured target show nothing.
func (a *App) update(
	ctx context.Context,
	p *pipeline.Pipeline,
	labels, aspects []string,
	events ports.EventHandler,
	show func(*domain.AnalysisResult, domain.UpdateSummary) error,
	force bool,
) error {
	start := a.clock.Now()
	result, err := p.UpdateWithOptions(ctx, pipeline.UpdateOptions{Events: events, Aspects: aspects}, labels...)
	if err != nil {
		return err
	}
	configs, err := p.ConfigurationCollection()
	if err != nil {
		return err
	}

	summary := domain.Summarize(result, configs, a.clock.Since(start))
	if force || summary.Evaluated > 0 || summary.Error != "" {
		if err := show(result, summary); err != nil {
			return err
		}
	}
	if result.Error != "" {
		return domain.ErrUpdateIncomplete
	}
	return nil
}

func (a *App) print(summary domain.UpdateSummary, renderer *linear.Renderer, mode detector.OutputMode) error {
	if mode != detector.ModeJSON {
		renderer.Summary(summary)
		return nil
	}
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return zerr.Wrap(err, "failed to encode summary")
	}
	return nil
}

func (a *App) exportMetrics(path string) error {
	if path == "" {
		return nil
	}
	exporter, ok := a.deps.Metrics.(MetricsExporter)
	if !ok {
		return domain.WithMeta(domain.ErrMetricsUnavailable, "path", path)
	}
	return exporter.WriteTextfile(path)
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	// Dir is a directory inside the workspace. Empty means the working directory.
	Dir string
}

// Clean removes the output base of the workspace.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	ws, err := a.findWorkspace(opts.Dir)
	if err != nil {
		return err
	}

	path := filepath.Join(ws.Root, domain.DefaultOutputBase())
	a.logger.Info(fmt.Sprintf("removing %s...", path))
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove output base"), "path", path)
	}
	a.logger.Info("removed output base")
	return nil
}

func (a *App) findWorkspace(dir string) (*config.Workspace, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to get working directory")
		}
		dir = cwd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve directory"), "path", dir)
	}
	return config.FindWorkspace(abs)
}

// packagePathArgs turns the package path of WORKSPACE.yaml into an option.
func packagePathArgs(ws *config.Workspace) []string {
	if len(ws.File.PackagePath) == 0 {
		return nil
	}
	return []string{"--" + domain.OptionPackagePath + "=" + strings.Join(ws.File.PackagePath, ",")}
}

func profileFor(mode detector.OutputMode) func() termenv.Profile {
	switch mode {
	case detector.ModePretty:
		return output.ColorProfile
	case detector.ModeJSON:
		return output.Plain
	default:
		return output.ColorProfileANSI
	}
}

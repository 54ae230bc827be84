// Package pipeline drives configuration, loading and analysis of a workspace and
// keeps the result of the last successful update queryable.
//
// A Pipeline is not safe for concurrent use. Configure and Update must not run
// at the same time.
package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/prism/internal/adapters/reporter"
	"go.trai.ch/prism/internal/core/domain"
	"go.trai.ch/prism/internal/core/ports"
	"go.trai.ch/zerr"
)

// Phase names reported to metrics and traces.
const (
	PhaseConfigure = "configure"
	PhaseLoading   = "loading"
	PhaseAnalysis  = "analysis"
)

// Dependencies are the collaborators of a Pipeline.
type Dependencies struct {
	Parsers  ports.OptionsParserFactory
	Policy   ports.InvocationPolicy
	Registry ports.RuleRegistry
	Loader   ports.PackageLoader
	Resolver ports.TargetPatternResolver
	// Detector reports changed files when incremental loading is requested.
	Detector      ports.ChangeDetector
	Configuration ports.ConfigurationFactory
	Engine        ports.AnalysisEngine
	Monitor       ports.TimestampMonitor
	Tracer        ports.Tracer
	Metrics       ports.Metrics
	Logger        ports.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithDefaultFlags replaces the flags used when an update does not pass any.
func WithDefaultFlags(fn func() domain.FlagSet) Option {
	return func(p *Pipeline) {
		if fn != nil {
			p.defaultFlags = fn
		}
	}
}

// WithOutputBase sets the directory under which configuration output roots live.
func WithOutputBase(dir string) Option {
	return func(p *Pipeline) {
		p.outputBase = dir
	}
}

// WithClock sets the clock used to time phases.
func WithClock(clock clockwork.Clock) Option {
	return func(p *Pipeline) {
		p.clock = clock
	}
}

// WithSessionIDs replaces the generator of loading session identifiers.
func WithSessionIDs(fn func() string) Option {
	return func(p *Pipeline) {
		p.sessionID = fn
	}
}

// DefaultFlags returns the flags of an update that does not name any.
func DefaultFlags() domain.FlagSet {
	return domain.NewFlagSet()
}

// Pipeline runs configure, load and analyze over one workspace.
type Pipeline struct {
	deps         Dependencies
	workspace    string
	outputBase   string
	defaultFlags func() domain.FlagSet
	clock        clockwork.Clock
	sessionID    func() string

	bundle         *domain.OptionsBundle
	configurations *domain.ConfigurationCollection
	result         *domain.AnalysisResult
	prepared       bool
}

// New creates a pipeline for the workspace rooted at workspace and applies the
// default configuration.
func New(workspace string, deps Dependencies, opts ...Option) (*Pipeline, error) {
	root, err := filepath.Abs(workspace)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve workspace root"), "path", workspace)
	}

	p := &Pipeline{
		deps:         deps,
		workspace:    root,
		outputBase:   filepath.Join(root, domain.DefaultOutputBase()),
		defaultFlags: DefaultFlags,
		clock:        clockwork.NewRealClock(),
		sessionID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := p.Configure(); err != nil {
		return nil, err
	}
	return p, nil
}

// Workspace returns the absolute workspace root.
func (p *Pipeline) Workspace() string {
	return p.workspace
}

// OutputBase returns the directory under which configuration output roots live.
func (p *Pipeline) OutputBase() string {
	return p.outputBase
}

// Options returns a copy of the current options bundle.
func (p *Pipeline) Options() *domain.OptionsBundle {
	return p.bundle.Clone()
}

// UseRuleRegistry swaps the rule registry and reapplies the default configuration.
// Cached analysis is dropped since rule classes may have changed.
func (p *Pipeline) UseRuleRegistry(r ports.RuleRegistry) error {
	p.deps.Registry = r
	p.deps.Engine.Clear()
	return p.Configure()
}

// UseConfigurationFactory swaps the configuration factory used by later updates.
func (p *Pipeline) UseConfigurationFactory(f ports.ConfigurationFactory) {
	p.deps.Configuration = f
}

// UpdateOptions tune a single update. Zero values select the defaults.
type UpdateOptions struct {
	// Events receives diagnostics. A fresh collector is used when nil.
	Events ports.EventHandler
	// Flags overrides the default flags when set.
	Flags *domain.FlagSet
	// Aspects are applied to the requested targets.
	Aspects []string
}

// Update loads and analyzes labels with the default flags and no aspects.
func (p *Pipeline) Update(ctx context.Context, labels ...string) (*domain.AnalysisResult, error) {
	return p.UpdateWithOptions(ctx, UpdateOptions{}, labels...)
}

// UpdateWithOptions loads and analyzes labels. The stored result and configurations
// are replaced only when the update succeeds.
func (p *Pipeline) UpdateWithOptions(
	ctx context.Context,
	opts UpdateOptions,
	labels ...string,
) (*domain.AnalysisResult, error) {
	flags := p.defaultFlags()
	if opts.Flags != nil {
		flags = *opts.Flags
	}
	events := opts.Events
	if events == nil {
		events = reporter.NewCollector(p.clock, p.deps.Logger)
	}

	ctx, span := p.deps.Tracer.Start(ctx, "update",
		ports.WithAttribute("flags", flags.String()),
		ports.WithAttribute("labels", len(labels)))
	defer span.End()

	loading, err := p.load(ctx, labels, flags, false)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	result, configurations, err := p.analyze(ctx, loading, opts.Aspects, flags, events)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := p.deps.Monitor.WaitForGranularity(ctx); err != nil {
		span.RecordError(err)
		return nil, err
	}

	p.result = result
	p.configurations = configurations
	span.SetAttribute("targets_visited", result.TargetsVisited)
	return result, nil
}

// ClearAnalysisResult forgets the last update. Queries fail until the next successful update.
func (p *Pipeline) ClearAnalysisResult() {
	p.result = nil
	p.configurations = nil
}

// keepGoing reports whether errors of individual labels and targets are tolerated.
func (p *Pipeline) keepGoing(flags domain.FlagSet) bool {
	return flags.Contains(domain.FlagKeepGoing) || p.bundle.View.KeepGoing
}

// observe records the duration and outcome of a phase that started at start.
func (p *Pipeline) observe(phase string, start time.Time, err error) {
	p.deps.Metrics.ObservePhase(phase, p.clock.Since(start), err)
}

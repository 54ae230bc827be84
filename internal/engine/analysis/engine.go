// Package analysis turns loaded targets into configured targets and an action graph.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"path"
	"runtime"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/prism/internal/core/domain"
	"go.trai.ch/prism/internal/core/ports"
	"go.trai.ch/prism/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

var _ ports.AnalysisEngine = (*Engine)(nil)

type cacheEntry struct {
	fingerprint string
	target      domain.ConfiguredTarget
}

// Engine analyzes configured targets in dependency order and reuses results whose
// inputs did not change since a previous update.
type Engine struct {
	hasher ports.Hasher
	tracer ports.Tracer
	logger ports.Logger

	mu    sync.Mutex
	cache map[domain.ConfiguredTargetKey]cacheEntry
}

// NewEngine creates an analysis engine with an empty cache.
func NewEngine(hasher ports.Hasher, tracer ports.Tracer, logger ports.Logger) *Engine {
	return &Engine{
		hasher: hasher,
		tracer: tracer,
		logger: logger,
		cache:  make(map[domain.ConfiguredTargetKey]cacheEntry),
	}
}

// Clear drops every cached configured target.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[domain.ConfiguredTargetKey]cacheEntry)
}

// Analyze implements ports.AnalysisEngine.
func (e *Engine) Analyze(ctx context.Context, req ports.AnalysisRequest) (*domain.AnalysisResult, error) {
	aspects, err := resolveAspects(req)
	if err != nil {
		return nil, err
	}

	disc := newDiscovery(req)
	graph, err := disc.run(ctx)
	if err != nil {
		return nil, err
	}
	cycleErr := graph.Validate()
	if cycleErr != nil && !req.View.KeepGoing {
		return nil, errors.Join(domain.ErrAnalysisFailed, cycleErr)
	}

	run := &analysisRun{
		engine:    e,
		req:       req,
		aspects:   aspects,
		nodes:     disc.nodes,
		done:      make(map[domain.ConfiguredTargetKey]domain.ConfiguredTarget),
		prints:    make(map[domain.ConfiguredTargetKey]string),
		evaluated: make(map[domain.ConfiguredTargetKey]struct{}),
	}
	e.logger.Debug(fmt.Sprintf("analyzing %d configured targets", graph.Len()))

	report, err := scheduler.NewScheduler(e.tracer).Run(ctx, graph, threads(req.View), req.View.KeepGoing, run.visit)
	if err != nil {
		return nil, err
	}

	failed := make(map[domain.ConfiguredTargetKey]error, len(report.Failed))
	for key, err := range report.Failed {
		failed[key] = err
	}
	run.registerActions(failed)
	run.warn()
	run.reportFailures(failed)

	if !req.View.KeepGoing && len(failed) > 0 {
		e.store(run)
		return nil, errors.Join(domain.ErrAnalysisFailed, joinFailures(failed))
	}

	for key, cause := range report.Skipped {
		failed[key] = zerr.With(domain.WithMeta(domain.ErrAnalysisFailed, "target", key.Label.String()),
			"dependency", cause.Label.String())
	}
	for _, key := range report.Unreached {
		if cycleErr != nil {
			failed[key] = cycleErr
			continue
		}
		failed[key] = domain.WithMeta(domain.ErrAnalysisFailed, "target", key.Label.String())
	}

	e.store(run)
	return run.result(graph.Len(), disc.roots, failed), nil
}

func resolveAspects(req ports.AnalysisRequest) ([]ports.Aspect, error) {
	aspects := make([]ports.Aspect, 0, len(req.Aspects))
	for _, name := range req.Aspects {
		a, ok := req.Registry.Aspect(name)
		if !ok {
			return nil, domain.WithMeta(domain.ErrUnknownAspect, "aspect", name)
		}
		aspects = append(aspects, a)
	}
	return aspects, nil
}

func threads(view domain.ViewOptions) int {
	if view.LoadingPhaseThreads > 0 {
		return view.LoadingPhaseThreads
	}
	return runtime.GOMAXPROCS(0)
}

func (e *Engine) lookup(key domain.ConfiguredTargetKey, fingerprint string) (domain.ConfiguredTarget, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	entry, ok := e.cache[key]
	if !ok || entry.fingerprint != fingerprint {
		return nil, false
	}
	return entry.target, true
}

func (e *Engine) store(run *analysisRun) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for key, ct := range run.done {
		e.cache[key] = cacheEntry{fingerprint: run.prints[key], target: ct}
	}
}

// analysisRun holds the state of one Analyze call.
type analysisRun struct {
	engine  *Engine
	req     ports.AnalysisRequest
	aspects []ports.Aspect
	nodes   map[domain.ConfiguredTargetKey]*node

	mu        sync.Mutex
	done      map[domain.ConfiguredTargetKey]domain.ConfiguredTarget
	prints    map[domain.ConfiguredTargetKey]string
	evaluated map[domain.ConfiguredTargetKey]struct{}
	graph     *domain.ActionGraph
}

// visit analyzes one node once all of its dependencies completed.
func (r *analysisRun) visit(_ context.Context, key domain.ConfiguredTargetKey) error {
	n := r.nodes[key]
	if n.err != nil {
		return n.err
	}

	fingerprint := r.fingerprint(n)
	if ct, ok := r.engine.lookup(key, fingerprint); ok {
		r.complete(key, ct, fingerprint, false)
		return nil
	}

	ct, err := r.configure(n)
	if err != nil {
		return err
	}
	r.complete(key, ct, fingerprint, true)
	return nil
}

func (r *analysisRun) complete(key domain.ConfiguredTargetKey, ct domain.ConfiguredTarget, fingerprint string, evaluated bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.done[key] = ct
	r.prints[key] = fingerprint
	if evaluated {
		r.evaluated[key] = struct{}{}
	}
}

// fingerprint digests everything the analysis of n depends on.
func (r *analysisRun) fingerprint(n *node) string {
	parts := []string{n.key.Label.String(), n.key.ConfigChecksum, n.pkg.Digest}
	if n.topLevel && n.target.IsRule() {
		parts = append(parts, "aspects="+strings.Join(r.req.Aspects, ","))
	}

	r.mu.Lock()
	for _, dep := range n.deps {
		parts = append(parts, r.prints[dep])
	}
	r.mu.Unlock()

	return r.engine.hasher.HashStrings(parts...)
}

func (r *analysisRun) configure(n *node) (domain.ConfiguredTarget, error) {
	switch n.target.Kind {
	case domain.KindSourceFile:
		artifact := &domain.Artifact{
			Root:             domain.SourceRoot,
			RootRelativePath: path.Join(n.target.Label.Package(), n.target.Label.Name()),
			Owner:            n.key,
		}
		return domain.NewInputFileConfiguredTarget(n.target, artifact), nil
	case domain.KindGeneratedFile:
		return r.configureOutput(n)
	default:
		return r.configureRule(n)
	}
}

func (r *analysisRun) configureOutput(n *node) (domain.ConfiguredTarget, error) {
	r.mu.Lock()
	gen := r.done[n.generator]
	r.mu.Unlock()

	want := path.Join(n.target.Label.Package(), n.target.Label.Name())
	for _, a := range gen.Files() {
		if a.RootRelativePath == want {
			return domain.NewOutputFileConfiguredTarget(n.target, n.config, a, n.generator), nil
		}
	}
	err := domain.WithMeta(domain.ErrAnalysisFailed, "target", n.target.Label.String())
	return nil, zerr.With(err, "reason", "generating rule does not produce the file")
}

func (r *analysisRun) configureRule(n *node) (domain.ConfiguredTarget, error) {
	class, ok := r.req.Registry.RuleClass(n.target.RuleClass)
	if !ok {
		return nil, zerr.With(domain.WithMeta(domain.ErrUnknownRuleClass, "target", n.target.Label.String()),
			"rule", n.target.RuleClass)
	}

	prereqs := make(map[domain.Label]domain.ConfiguredTarget, len(n.prereqs))
	r.mu.Lock()
	for label, key := range n.prereqs {
		prereqs[label] = r.done[key]
	}
	r.mu.Unlock()

	rc := &domain.RuleContext{
		Target:        n.target,
		Config:        n.config,
		Prerequisites: prereqs,
		ActionKey:     r.engine.hasher.HashStrings,
	}
	if err := class.Analyze(rc); err != nil {
		return nil, analysisError(n, err)
	}
	files := slices.Clone(rc.Files())

	aspectFiles := make(map[string][]*domain.Artifact)
	if n.topLevel {
		for _, a := range r.aspects {
			out, err := a.Apply(rc)
			if err != nil {
				return nil, zerr.With(analysisError(n, err), "aspect", a.Name())
			}
			aspectFiles[a.Name()] = out
		}
	}

	ct := domain.NewRuleConfiguredTarget(n.target, n.config, n.deps, files, rc.Actions())
	ct.AspectFiles = aspectFiles
	return ct, nil
}

func analysisError(n *node, err error) error {
	if !errors.Is(err, domain.ErrAnalysisFailed) {
		err = errors.Join(domain.ErrAnalysisFailed, err)
	}
	return domain.WithMeta(err, "target", n.target.Label.String())
}

// registerActions adds the actions of every analyzed rule to a fresh action graph in key
// order. A rule whose action conflicts with an earlier one fails and is dropped.
func (r *analysisRun) registerActions(failed map[domain.ConfiguredTargetKey]error) {
	graph := domain.NewActionGraph()
	for _, key := range sortedKeys(r.done) {
		rule, ok := r.done[key].(*domain.RuleConfiguredTarget)
		if !ok {
			continue
		}
		for _, action := range rule.Actions() {
			if err := graph.Register(action); err != nil {
				err = domain.WithMeta(err, "target", key.Label.String())
				failed[key] = err
				delete(r.done, key)
				break
			}
		}
	}
	r.graph = graph
}

// warn reports dependency warnings of analyzed targets.
func (r *analysisRun) warn() {
	for _, key := range sortedKeys(r.done) {
		for _, msg := range r.nodes[key].warnings {
			r.emit(domain.Event{Kind: domain.EventWarning, Label: key.Label.String(), Message: msg})
		}
	}
}

func (r *analysisRun) reportFailures(failed map[domain.ConfiguredTargetKey]error) {
	for _, key := range sortedKeys(failed) {
		r.emit(domain.Event{Kind: domain.EventError, Label: key.Label.String(), Message: failed[key].Error()})
	}
}

func (r *analysisRun) emit(ev domain.Event) {
	if r.req.Events != nil {
		r.req.Events.Handle(ev)
	}
}

func (r *analysisRun) result(visited int, roots []domain.ConfiguredTargetKey, failed map[domain.ConfiguredTargetKey]error) *domain.AnalysisResult {
	var topLevel []domain.ConfiguredTarget
	seen := make(map[domain.ConfiguredTargetKey]bool, len(roots))
	slices.SortFunc(roots, domain.ConfiguredTargetKey.Compare)
	for _, key := range roots {
		ct, ok := r.done[key]
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		topLevel = append(topLevel, ct)
	}

	return &domain.AnalysisResult{
		ConfiguredTargets: topLevel,
		ActionGraph:       r.graph,
		TopLevelContext:   r.req.TopLevelContext,
		Error:             failureText(failed),
		TargetsVisited:    visited,
		EvaluatedKeys:     r.evaluated,
		Aspects:           slices.Clone(r.req.Aspects),
		All:               r.done,
		Failed:            failed,
	}
}

func failureText(failed map[domain.ConfiguredTargetKey]error) string {
	if len(failed) == 0 {
		return ""
	}
	lines := make([]string, 0, len(failed))
	for _, key := range sortedKeys(failed) {
		lines = append(lines, "analysis of target '"+key.String()+"' failed: "+failed[key].Error())
	}
	return strings.Join(lines, "\n")
}

func joinFailures(failed map[domain.ConfiguredTargetKey]error) error {
	errs := make([]error, 0, len(failed))
	for _, key := range sortedKeys(failed) {
		errs = append(errs, failed[key])
	}
	return errors.Join(errs...)
}

func sortedKeys[V any](m map[domain.ConfiguredTargetKey]V) []domain.ConfiguredTargetKey {
	keys := make([]domain.ConfiguredTargetKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, domain.ConfiguredTargetKey.Compare)
	return keys
}

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/prism/internal/core/domain"
	"go.trai.ch/prism/internal/core/ports"
	"go.trai.ch/zerr"
)

// load resolves labels into targets. Label syntax errors and workspace problems
// always fail. Other per-label errors fail the load unless keep-going is active,
// in which case they are collected in the result.
func (p *Pipeline) load(
	ctx context.Context,
	labels []string,
	flags domain.FlagSet,
	determineTests bool,
) (result *domain.LoadingResult, err error) {
	start := p.clock.Now()
	ctx, span := p.deps.Tracer.Start(ctx, "load", ports.WithAttribute("labels", strings.Join(labels, " ")))
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
		p.observe(PhaseLoading, start, err)
	}()

	locator, err := p.prepare(ctx, flags)
	if err != nil {
		return nil, err
	}

	modified, err := p.modifiedFiles(ctx, flags)
	if err != nil {
		return nil, err
	}
	p.deps.Loader.Invalidate(modified)

	keepGoing := p.keepGoing(flags)
	result = &domain.LoadingResult{}
	seen := make(map[domain.Label]bool)
	for _, raw := range labels {
		pattern, err := domain.ParseTargetPattern(raw)
		if err != nil {
			return nil, err
		}

		targets, skipped, err := p.resolvePattern(ctx, locator, pattern, keepGoing)
		for _, le := range skipped {
			result.Errors = append(result.Errors, le)
			result.HadErrors = true
			_, _ = fmt.Fprintf(span, "skipped %s: %v\n", le.Label, le.Err)
		}
		if err != nil {
			if !keepGoing {
				return nil, zerr.With(errors.Join(domain.ErrLoadingFailed, err), "label", raw)
			}
			result.Errors = append(result.Errors, domain.LoadingError{Label: raw, Err: err})
			result.HadErrors = true
			_, _ = fmt.Fprintf(span, "skipped %s: %v\n", raw, err)
			continue
		}
		for _, t := range targets {
			if !seen[t.Label] {
				seen[t.Label] = true
				result.Targets = append(result.Targets, t)
			}
		}
	}

	if determineTests {
		if result.TestsToRun, err = p.expandTests(ctx, result.Targets); err != nil {
			if !keepGoing {
				return nil, errors.Join(domain.ErrLoadingFailed, err)
			}
			result.HadErrors = true
		}
	}

	p.deps.Metrics.AddLoadingErrors(len(result.Errors))
	p.deps.Tracer.EmitPlan(ctx, labelStrings(result.Labels()))
	return result, nil
}

// prepare primes the package loader for a new loading phase.
func (p *Pipeline) prepare(ctx context.Context, flags domain.FlagSet) (domain.PathPackageLocator, error) {
	locator := p.locator()
	p.deps.Monitor.SetCommandStartTime()
	setup := ports.LoadingSetup{
		Locator:           locator,
		DefaultVisibility: visibilityLabels(p.bundle.PackageCache.DefaultVisibility),
		AllowIncremental:  flags.Contains(domain.FlagUseIncrementalLoading),
		Threads:           p.bundle.View.LoadingPhaseThreads,
		DefaultsPackage:   p.deps.Registry.DefaultsPackageContent(p.bundle),
		RuleClasses:       p.deps.Registry.RuleClassNames(),
		SessionID:         p.sessionID(),
		Monitor:           p.deps.Monitor,
	}
	if err := p.deps.Loader.Prepare(ctx, setup); err != nil {
		return domain.PathPackageLocator{}, err
	}
	p.prepared = true
	p.deps.Logger.Debug("loading session " + setup.SessionID)
	return locator, nil
}

// locator builds the package locator from --package_path.
func (p *Pipeline) locator() domain.PathPackageLocator {
	entries := p.bundle.PackageCache.PackagePath
	if len(entries) == 0 {
		entries = []string{domain.WorkspacePlaceholder}
	}

	roots := make([]string, 0, len(entries))
	for _, entry := range entries {
		root := strings.ReplaceAll(entry, domain.WorkspacePlaceholder, p.workspace)
		if !filepath.IsAbs(root) {
			root = filepath.Join(p.workspace, root)
		}
		root = filepath.Clean(root)
		if !slices.Contains(roots, root) {
			roots = append(roots, root)
		}
	}
	return domain.PathPackageLocator{
		OutputBase:    p.outputBase,
		WorkspaceRoot: p.workspace,
		Roots:         roots,
	}
}

// modifiedFiles invalidates everything unless incremental loading is requested.
func (p *Pipeline) modifiedFiles(ctx context.Context, flags domain.FlagSet) (domain.ModifiedFileSet, error) {
	if !flags.Contains(domain.FlagUseIncrementalLoading) || p.deps.Detector == nil {
		return domain.EverythingModified, nil
	}
	return p.deps.Detector.ModifiedFiles(ctx)
}

// resolvePattern expands pattern into targets. Under keep-going a recursive
// pattern keeps the packages that loaded and reports each failed package as
// skipped instead of failing.
func (p *Pipeline) resolvePattern(
	ctx context.Context,
	locator domain.PathPackageLocator,
	pattern domain.TargetPattern,
	keepGoing bool,
) ([]*domain.Target, []domain.LoadingError, error) {
	switch pattern.Kind {
	case domain.PatternAllInPackage:
		pkg, err := p.deps.Loader.GetPackage(ctx, pattern.Package)
		if err != nil {
			return nil, nil, err
		}
		return rulesOf(pkg), nil, nil
	case domain.PatternRecursive:
		names, err := p.deps.Resolver.Packages(ctx, locator, pattern.Package)
		if err != nil {
			return nil, nil, err
		}
		if len(names) == 0 {
			return nil, nil, domain.WithMeta(domain.ErrPackageNotFound, "pattern", pattern.Raw)
		}
		loaded, failed := p.deps.Loader.LoadPackages(ctx, names)
		if len(failed) > 0 && !keepGoing {
			errs := make([]error, 0, len(failed))
			for _, name := range slices.Sorted(maps.Keys(failed)) {
				errs = append(errs, failed[name])
			}
			return nil, nil, errors.Join(errs...)
		}
		var skipped []domain.LoadingError
		for _, name := range slices.Sorted(maps.Keys(failed)) {
			skipped = append(skipped, domain.LoadingError{Label: "//" + name + ":all", Err: failed[name]})
		}
		var out []*domain.Target
		for _, name := range names {
			if pkg, ok := loaded[name]; ok {
				out = append(out, rulesOf(pkg)...)
			}
		}
		return out, skipped, nil
	default:
		t, err := p.deps.Loader.GetTarget(ctx, pattern.Label)
		if err != nil {
			return nil, nil, err
		}
		return []*domain.Target{t}, nil, nil
	}
}

// expandTests replaces test suites by the tests they name.
func (p *Pipeline) expandTests(ctx context.Context, targets []*domain.Target) ([]*domain.Target, error) {
	var (
		out  []*domain.Target
		errs []error
	)
	seen := make(map[domain.Label]bool)
	queue := slices.Clone(targets)
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		if seen[t.Label] {
			continue
		}
		seen[t.Label] = true

		if t.RuleClass != testSuiteRule {
			if t.TestOnly {
				out = append(out, t)
			}
			continue
		}
		for _, l := range t.Tests {
			test, err := p.deps.Loader.GetTarget(ctx, l)
			if err != nil {
				errs = append(errs, zerr.With(err, "suite", t.Label.String()))
				continue
			}
			queue = append(queue, test)
		}
	}
	return out, errors.Join(errs...)
}

const testSuiteRule = "test_suite"

func rulesOf(pkg *domain.Package) []*domain.Target {
	var out []*domain.Target
	for _, name := range slices.Sorted(maps.Keys(pkg.Targets)) {
		if t := pkg.Targets[name]; t.IsRule() {
			out = append(out, t)
		}
	}
	return out
}

// visibilityLabels maps the --default_visibility value to visibility labels.
func visibilityLabels(v string) []string {
	switch v {
	case "public":
		return []string{domain.VisibilityPublic}
	case "", "private":
		return []string{domain.VisibilityPrivate}
	default:
		return []string{v}
	}
}

func labelStrings(labels []domain.Label) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = l.String()
	}
	return out
}

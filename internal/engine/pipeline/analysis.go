package pipeline

import (
	"context"
	"io"
	"slices"
	"strings"

	"go.trai.ch/prism/internal/core/domain"
	"go.trai.ch/prism/internal/core/ports"
)

// analyze derives the configurations of the current options and analyzes the loaded
// targets in them. The configurations are returned for the caller to store on success.
func (p *Pipeline) analyze(
	ctx context.Context,
	loading *domain.LoadingResult,
	aspects []string,
	flags domain.FlagSet,
	events ports.EventHandler,
) (result *domain.AnalysisResult, configurations *domain.ConfigurationCollection, err error) {
	start := p.clock.Now()
	ctx, span := p.deps.Tracer.Start(ctx, "analyze",
		ports.WithAttribute("targets", len(loading.Targets)),
		ports.WithAttribute("aspects", strings.Join(aspects, ",")))
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
		p.observe(PhaseAnalysis, start, err)
	}()

	configurations, err = p.deps.Configuration.CreateConfigurations(p.bundle, multiCPU(p.bundle), p.outputBase)
	if err != nil {
		return nil, nil, err
	}

	view := p.bundle.View
	view.KeepGoing = p.keepGoing(flags)
	result, err = p.deps.Engine.Analyze(ctx, ports.AnalysisRequest{
		Loading:         loading,
		Configurations:  configurations,
		Aspects:         aspects,
		View:            view,
		TopLevelContext: domain.DefaultTopLevelContext,
		Events:          events,
		Loader:          p.deps.Loader,
		Registry:        p.deps.Registry,
	})
	if err != nil {
		return nil, nil, err
	}

	annotateLoadingErrors(result, loading)
	p.deps.Metrics.AddTargets(result.TargetsVisited, len(result.EvaluatedKeys))
	span.SetAttribute("evaluated", len(result.EvaluatedKeys))
	if result.Error != "" {
		_, _ = io.WriteString(span, result.Error+"\n")
	}
	return result, configurations, nil
}

// multiCPU returns the sorted distinct --multi_cpu values.
func multiCPU(bundle *domain.OptionsBundle) []string {
	cpus := slices.Clone(bundle.BuildRequest.MultiCPU)
	slices.Sort(cpus)
	return slices.Compact(cpus)
}

// annotateLoadingErrors prepends the labels that failed to load to the result error.
func annotateLoadingErrors(result *domain.AnalysisResult, loading *domain.LoadingResult) {
	if !loading.HadErrors {
		return
	}
	lines := make([]string, 0, len(loading.Errors)+1)
	for _, e := range loading.Errors {
		lines = append(lines, "loading of target '"+e.Label+"' failed: "+e.Err.Error())
	}
	if len(lines) == 0 {
		lines = append(lines, "loading failed")
	}
	if result.Error != "" {
		lines = append(lines, result.Error)
	}
	result.Error = strings.Join(lines, "\n")
}

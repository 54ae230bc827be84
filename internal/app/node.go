package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/prism/internal/adapters/clock"         //nolint:depguard // Wired in app layer
	"go.trai.ch/prism/internal/adapters/configfactory" //nolint:depguard // Wired in app layer
	"go.trai.ch/prism/internal/adapters/fs"            //nolint:depguard // Wired in app layer
	"go.trai.ch/prism/internal/adapters/logger"        //nolint:depguard // Wired in app layer
	"go.trai.ch/prism/internal/adapters/metrics"       //nolint:depguard // Wired in app layer
	"go.trai.ch/prism/internal/adapters/options"       //nolint:depguard // Wired in app layer
	"go.trai.ch/prism/internal/adapters/packages"      //nolint:depguard // Wired in app layer
	"go.trai.ch/prism/internal/adapters/policy"        //nolint:depguard // Wired in app layer
	"go.trai.ch/prism/internal/adapters/rules"         //nolint:depguard // Wired in app layer
	"go.trai.ch/prism/internal/adapters/telemetry"     //nolint:depguard // Wired in app layer
	"go.trai.ch/prism/internal/adapters/watcher"       //nolint:depguard // Wired in app layer
	"go.trai.ch/prism/internal/core/ports"
	"go.trai.ch/prism/internal/engine/analysis"
	"go.trai.ch/prism/internal/engine/pipeline"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			options.NodeID,
			policy.NodeID,
			rules.NodeID,
			packages.NodeID,
			fs.ResolverNodeID,
			configfactory.NodeID,
			analysis.NodeID,
			clock.NodeID,
			telemetry.NodeID,
			metrics.NodeID,
			logger.NodeID,
			watcher.WatcherNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

//nolint:cyclop // one lookup per dependency
func runAppNode(ctx context.Context) (*App, error) {
	parsers, err := graft.Dep[ports.OptionsParserFactory](ctx)
	if err != nil {
		return nil, err
	}
	policies, err := graft.Dep[*policy.Loader](ctx)
	if err != nil {
		return nil, err
	}
	registry, err := graft.Dep[ports.RuleRegistry](ctx)
	if err != nil {
		return nil, err
	}
	loader, err := graft.Dep[ports.PackageLoader](ctx)
	if err != nil {
		return nil, err
	}
	resolver, err := graft.Dep[ports.TargetPatternResolver](ctx)
	if err != nil {
		return nil, err
	}
	configurations, err := graft.Dep[ports.ConfigurationFactory](ctx)
	if err != nil {
		return nil, err
	}
	engine, err := graft.Dep[ports.AnalysisEngine](ctx)
	if err != nil {
		return nil, err
	}
	monitor, err := graft.Dep[ports.TimestampMonitor](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	m, err := graft.Dep[ports.Metrics](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	return New(pipeline.Dependencies{
		Parsers:       parsers,
		Registry:      registry,
		Loader:        loader,
		Resolver:      resolver,
		Detector:      packages.EverythingDetector{},
		Configuration: configurations,
		Engine:        engine,
		Monitor:       monitor,
		Tracer:        tracer,
		Metrics:       m,
		Logger:        log,
	}, policies, w), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    a,
		Logger: log,
	}, nil
}

package analysis

import (
	"context"
	"errors"

	"go.trai.ch/prism/internal/core/domain"
	"go.trai.ch/prism/internal/core/ports"
	"go.trai.ch/zerr"
)

// node is one configured target discovered for an update.
type node struct {
	key      domain.ConfiguredTargetKey
	target   *domain.Target
	config   *domain.Configuration
	pkg      *domain.Package
	topLevel bool

	// deps holds the distinct dependency keys in declaration order.
	deps []domain.ConfiguredTargetKey
	// prereqs maps each dependency label to its key.
	prereqs map[domain.Label]domain.ConfiguredTargetKey
	// generator is the key of the generating rule of an output file.
	generator domain.ConfiguredTargetKey

	// err is set when the node cannot be analyzed, e.g. a dependency is missing or not visible.
	err      error
	warnings []string
}

type pending struct {
	target *domain.Target
	config *domain.Configuration
}

// discovery walks the dependency closure of the requested targets breadth first.
type discovery struct {
	req   ports.AnalysisRequest
	nodes map[domain.ConfiguredTargetKey]*node
	queue []pending
	roots []domain.ConfiguredTargetKey
}

func newDiscovery(req ports.AnalysisRequest) *discovery {
	return &discovery{req: req, nodes: make(map[domain.ConfiguredTargetKey]*node)}
}

// configFor returns the configuration target t is analyzed in when requested under cfg.
// Source files have no configuration.
func configFor(t *domain.Target, cfg *domain.Configuration) *domain.Configuration {
	if t.Kind == domain.KindSourceFile {
		return nil
	}
	return cfg
}

func (d *discovery) run(ctx context.Context) (*domain.Graph, error) {
	for _, cfg := range d.req.Configurations.Targets {
		for _, t := range d.req.Loading.Targets {
			key := d.enqueue(t, cfg)
			d.nodes[key].topLevel = true
			d.roots = append(d.roots, key)
		}
	}

	for len(d.queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := d.queue[0]
		d.queue = d.queue[1:]
		d.expand(ctx, d.nodes[domain.KeyFor(p.target.Label, p.config)])
	}

	graph := domain.NewGraph()
	for key, n := range d.nodes {
		graph.AddNode(key, n.deps)
	}
	return graph, nil
}

func (d *discovery) enqueue(t *domain.Target, cfg *domain.Configuration) domain.ConfiguredTargetKey {
	cfg = configFor(t, cfg)
	key := domain.KeyFor(t.Label, cfg)
	if _, ok := d.nodes[key]; ok {
		return key
	}
	d.nodes[key] = &node{
		key:     key,
		target:  t,
		config:  cfg,
		prereqs: make(map[domain.Label]domain.ConfiguredTargetKey),
	}
	d.queue = append(d.queue, pending{target: t, config: cfg})
	return key
}

func (d *discovery) expand(ctx context.Context, n *node) {
	pkg, err := d.req.Loader.GetPackage(ctx, n.target.Label.Package())
	if err != nil {
		n.err = domain.WithMeta(err, "target", n.target.Label.String())
		return
	}
	n.pkg = pkg

	switch n.target.Kind {
	case domain.KindSourceFile:
		return
	case domain.KindGeneratedFile:
		gen, err := d.req.Loader.GetTarget(ctx, n.target.Generator)
		if err != nil {
			n.err = zerr.With(domain.WithMeta(errors.Join(domain.ErrMissingDependency, err),
				"target", n.target.Label.String()), "dependency", n.target.Generator.String())
			return
		}
		n.generator = d.enqueue(gen, n.config)
		d.addEdge(n, gen.Label, n.generator)
		return
	}

	if _, ok := d.req.Registry.RuleClass(n.target.RuleClass); !ok {
		n.err = zerr.With(domain.WithMeta(domain.ErrUnknownRuleClass, "target", n.target.Label.String()),
			"rule", n.target.RuleClass)
		return
	}

	for _, l := range n.target.Srcs {
		d.dependOn(ctx, n, l, n.config)
	}
	for _, l := range n.target.Deps {
		d.dependOn(ctx, n, l, n.config)
	}
	for _, l := range n.target.Tools {
		d.dependOn(ctx, n, l, d.req.Configurations.Host)
	}
}

// dependOn records the edge n -> label. The first failing edge becomes the node error.
func (d *discovery) dependOn(ctx context.Context, n *node, label domain.Label, cfg *domain.Configuration) {
	dep, err := d.req.Loader.GetTarget(ctx, label)
	if err != nil {
		n.setErr(zerr.With(domain.WithMeta(errors.Join(domain.ErrMissingDependency, err),
			"target", n.target.Label.String()), "dependency", label.String()))
		return
	}

	visibility := dep.Visibility
	if len(visibility) == 0 {
		depPkg, err := d.req.Loader.GetPackage(ctx, label.Package())
		if err != nil {
			n.setErr(zerr.With(domain.WithMeta(errors.Join(domain.ErrMissingDependency, err),
				"target", n.target.Label.String()), "dependency", label.String()))
			return
		}
		visibility = depPkg.DefaultVisibility
	}
	if !domain.IsVisibleTo(dep.Label, visibility, n.target.Label) {
		n.setErr(zerr.With(domain.WithMeta(domain.ErrVisibilityViolation, "target", n.target.Label.String()),
			"dependency", label.String()))
		return
	}

	if dep.TestOnly && !n.target.TestOnly {
		msg := "non-test target depends on testonly target " + label.String()
		if d.req.View.AnalysisWarningsAsErrors {
			n.setErr(zerr.With(domain.WithMeta(domain.ErrAnalysisFailed, "target", n.target.Label.String()),
				"reason", msg))
			return
		}
		n.warnings = append(n.warnings, msg)
	}

	d.addEdge(n, label, d.enqueue(dep, cfg))
}

func (d *discovery) addEdge(n *node, label domain.Label, key domain.ConfiguredTargetKey) {
	if _, ok := n.prereqs[label]; !ok {
		n.prereqs[label] = key
	}
	for _, existing := range n.deps {
		if existing == key {
			return
		}
	}
	n.deps = append(n.deps, key)
}

func (n *node) setErr(err error) {
	if n.err == nil {
		n.err = err
	}
}

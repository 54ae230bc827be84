// Package domain contains the core domain models of the analysis pipeline.
package domain

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// Graph is the dependency graph of configured targets discovered for one update.
type Graph struct {
	deps           map[ConfiguredTargetKey][]ConfiguredTargetKey
	executionOrder []ConfiguredTargetKey
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		deps: make(map[ConfiguredTargetKey][]ConfiguredTargetKey),
	}
}

// AddNode adds key with its direct dependencies. Adding a key twice replaces its edges.
func (g *Graph) AddNode(key ConfiguredTargetKey, deps []ConfiguredTargetKey) {
	g.deps[key] = deps
}

// Contains reports whether key was added.
func (g *Graph) Contains(key ConfiguredTargetKey) bool {
	_, ok := g.deps[key]
	return ok
}

// Deps returns the direct dependencies of key.
func (g *Graph) Deps(key ConfiguredTargetKey) []ConfiguredTargetKey {
	return g.deps[key]
}

// Keys returns every node in key order.
func (g *Graph) Keys() []ConfiguredTargetKey {
	return slices.SortedFunc(maps.Keys(g.deps), ConfiguredTargetKey.Compare)
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.deps)
}

// Validate checks for cycles using a depth-first topological sort.
// Nodes are visited in key order so the execution order is deterministic.
func (g *Graph) Validate() error {
	g.executionOrder = make([]ConfiguredTargetKey, 0, len(g.deps))
	visited := make(map[ConfiguredTargetKey]int) // 0: unvisited, 1: visiting, 2: visited
	var path []ConfiguredTargetKey

	var visit func(u ConfiguredTargetKey) error
	visit = func(u ConfiguredTargetKey) error {
		visited[u] = 1
		path = append(path, u)

		deps, exists := g.deps[u]
		if !exists {
			return WithMeta(ErrMissingDependency, "dependency", u.String())
		}

		for _, dep := range deps {
			if visited[dep] == 1 {
				return buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, u)
		return nil
	}

	for _, key := range g.Keys() {
		if visited[key] == 0 {
			if err := visit(key); err != nil {
				return err
			}
		}
	}

	return nil
}

func buildCycleError(path []ConfiguredTargetKey, dep ConfiguredTargetKey) error {
	startIdx := slices.Index(path, dep)
	parts := make([]string, 0, len(path)-startIdx+1)
	for _, node := range path[startIdx:] {
		parts = append(parts, node.Label.String())
	}
	parts = append(parts, dep.Label.String())
	return WithMeta(ErrCycleDetected, "cycle", strings.Join(parts, " -> "))
}

// Walk yields keys with dependencies before dependents.
// It assumes Validate has been called and returned nil.
func (g *Graph) Walk() iter.Seq[ConfiguredTargetKey] {
	return func(yield func(ConfiguredTargetKey) bool) {
		for _, key := range g.executionOrder {
			if !yield(key) {
				return
			}
		}
	}
}

// Dependents returns the reverse edges of the graph.
func (g *Graph) Dependents() map[ConfiguredTargetKey][]ConfiguredTargetKey {
	out := make(map[ConfiguredTargetKey][]ConfiguredTargetKey, len(g.deps))
	for key, deps := range g.deps {
		for _, dep := range deps {
			out[dep] = append(out[dep], key)
		}
	}
	return out
}

package tui

import (
	"slices"
	"strings"

	"go.trai.ch/prism/internal/core/domain"
)

const maxTreeDepth = 10

// buildTree constructs a visual tree from the configured-target graph.
// Since configured targets form a DAG, a target may appear several times
// if more than one dependent reaches it. Failures reachable from no root
// become roots of their own.
func buildTree(msg MsgGraph) []*TargetNode {
	roots := make([]*TargetNode, 0, len(msg.Roots))
	seen := make(map[domain.ConfiguredTargetKey]bool)

	for _, key := range msg.Roots {
		if root := buildSubtree(key, msg, seen, 0); root != nil {
			roots = append(roots, root)
		}
	}

	for _, key := range sortedKeys(msg.Failed) {
		if !seen[key] {
			roots = append(roots, buildSubtree(key, msg, seen, 0))
		}
	}

	return roots
}

func buildSubtree(
	key domain.ConfiguredTargetKey,
	msg MsgGraph,
	seen map[domain.ConfiguredTargetKey]bool,
	depth int,
) *TargetNode {
	// Guard against very deep trees
	if depth > maxTreeDepth || !msg.known(key) {
		return nil
	}
	seen[key] = true

	node := &TargetNode{
		Key:      key,
		Status:   msg.status(key),
		Depth:    depth,
		Children: make([]*TargetNode, 0),
	}
	for _, dep := range msg.Deps[key] {
		if child := buildSubtree(dep, msg, seen, depth+1); child != nil {
			child.Parent = node
			node.Children = append(node.Children, child)
		}
	}
	return node
}

// flattenTree converts the tree into a linear list respecting expansion state.
// Only expanded nodes have their children included.
func flattenTree(roots []*TargetNode) []*TargetNode {
	flat := make([]*TargetNode, 0)

	var walk func(node *TargetNode)
	walk = func(node *TargetNode) {
		flat = append(flat, node)
		if node.IsExpanded {
			for _, child := range node.Children {
				walk(child)
			}
		}
	}

	for _, root := range roots {
		walk(root)
	}

	return flat
}

// nodePath identifies a tree position across rebuilds.
func nodePath(node *TargetNode) string {
	var parts []string
	for n := node; n != nil; n = n.Parent {
		parts = append(parts, n.Key.String())
	}
	slices.Reverse(parts)
	return strings.Join(parts, " > ")
}

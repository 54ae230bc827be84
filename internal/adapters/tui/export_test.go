package tui

// Export functions for testing
var (
	BuildTree   = buildTree
	FlattenTree = flattenTree
	NodePath    = nodePath
)

package domain

import (
	"path/filepath"
	"slices"
)

// PathPackageLocator resolves package names to directories across package path roots.
type PathPackageLocator struct {
	OutputBase    string
	WorkspaceRoot string
	Roots         []string
}

// BuildFileCandidates returns the candidate BUILD file paths for pkg, in root order.
func (l PathPackageLocator) BuildFileCandidates(pkg string) []string {
	out := make([]string, 0, len(l.Roots))
	for _, root := range l.Roots {
		out = append(out, filepath.Join(root, filepath.FromSlash(pkg), BuildFileName))
	}
	return out
}

// ModifiedFileSet describes which workspace files changed since the previous load.
type ModifiedFileSet struct {
	Everything bool
	Paths      []string
}

// EverythingModified invalidates every previously loaded package.
var EverythingModified = ModifiedFileSet{Everything: true}

// NothingModified keeps every previously loaded package.
var NothingModified = ModifiedFileSet{}

// IsEmpty reports whether nothing changed.
func (m ModifiedFileSet) IsEmpty() bool {
	return !m.Everything && len(m.Paths) == 0
}

// Contains reports whether path was modified.
func (m ModifiedFileSet) Contains(path string) bool {
	return m.Everything || slices.Contains(m.Paths, path)
}

// LoadingError records why a single requested label could not be loaded.
type LoadingError struct {
	Label string
	Err   error
}

// Error implements error.
func (e LoadingError) Error() string {
	return e.Label + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e LoadingError) Unwrap() error {
	return e.Err
}

// LoadingResult is the output of the loading phase.
type LoadingResult struct {
	Targets   []*Target
	Errors    []LoadingError
	HadErrors bool

	// TestsToRun is populated only when test expansion was requested.
	TestsToRun []*Target
}

// Labels returns the labels of all successfully loaded targets.
func (r *LoadingResult) Labels() []Label {
	out := make([]Label, len(r.Targets))
	for i, t := range r.Targets {
		out[i] = t.Label
	}
	return out
}

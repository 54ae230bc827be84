package fs

import (
	"context"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/prism/internal/core/domain"
	"go.trai.ch/prism/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TargetPatternResolver = (*Resolver)(nil)

// Resolver expands recursive target patterns by walking every package path root.
type Resolver struct {
	walker *Walker
}

// NewResolver creates a new Resolver.
func NewResolver(walker *Walker) *Resolver {
	return &Resolver{walker: walker}
}

// Packages returns the sorted, deduplicated names of packages at or below base.
func (r *Resolver) Packages(ctx context.Context, locator domain.PathPackageLocator, base string) ([]string, error) {
	unique := make(map[string]struct{})

	for _, root := range locator.Roots {
		dir := filepath.Join(root, filepath.FromSlash(base))
		if _, err := os.Stat(dir); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, zerr.With(zerr.Wrap(err, "failed to stat package directory"), "path", dir)
		}

		for buildFile := range r.walker.WalkBuildFiles(dir, nil) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			rel, err := filepath.Rel(root, filepath.Dir(buildFile))
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to relativize package"), "path", buildFile)
			}
			name := filepath.ToSlash(rel)
			if name == "." {
				name = ""
			}
			unique[name] = struct{}{}
		}
	}

	result := make([]string, 0, len(unique))
	for name := range unique {
		result = append(result, name)
	}
	slices.Sort(result)
	return result, nil
}

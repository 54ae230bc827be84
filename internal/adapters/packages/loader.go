// Package packages loads BUILD.yaml packages from the package path.
package packages

import (
	"context"
	"errors"
	"io/fs"
	"maps"
	"path/filepath"
	"slices"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/prism/internal/adapters/config"
	"go.trai.ch/prism/internal/core/domain"
	"go.trai.ch/prism/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.PackageLoader = (*Loader)(nil)

// DefaultCacheSize is the number of packages kept between updates.
const DefaultCacheSize = 4096

// Loader implements ports.PackageLoader over a FileSystem.
// Loaded packages are immutable and shared between callers.
type Loader struct {
	fs     config.FileSystem
	hasher ports.Hasher
	logger ports.Logger
	cache  *lru.Cache[string, *domain.Package]

	mu       sync.RWMutex
	setup    ports.LoadingSetup
	prepared bool
}

// NewLoader creates a loader caching up to size packages.
func NewLoader(fsys config.FileSystem, hasher ports.Hasher, logger ports.Logger, size int) (*Loader, error) {
	cache, err := lru.New[string, *domain.Package](size)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create package cache")
	}
	return &Loader{fs: fsys, hasher: hasher, logger: logger, cache: cache}, nil
}

// Prepare replaces the loader setup. Cached packages survive unless the setup
// changes how packages are found or interpreted.
func (l *Loader) Prepare(_ context.Context, setup ports.LoadingSetup) error {
	if len(setup.Locator.Roots) == 0 {
		return domain.WithMeta(domain.ErrWorkspaceInconsistent, "reason", "package path is empty")
	}
	for _, root := range setup.Locator.Roots {
		info, err := l.fs.Stat(root)
		if err != nil {
			return zerr.With(errors.Join(domain.ErrWorkspaceInconsistent, err), "root", root)
		}
		if !info.IsDir() {
			return zerr.With(domain.WithMeta(domain.ErrWorkspaceInconsistent, "root", root), "reason", "not a directory")
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.prepared {
		prev := l.setup
		switch {
		case !slices.Equal(prev.Locator.Roots, setup.Locator.Roots),
			!slices.Equal(prev.DefaultVisibility, setup.DefaultVisibility),
			!slices.Equal(prev.RuleClasses, setup.RuleClasses):
			l.cache.Purge()
		case prev.DefaultsPackage != setup.DefaultsPackage:
			l.cache.Remove(domain.DefaultsPackageName)
		}
	}
	l.setup = setup
	l.prepared = true
	return nil
}

// Invalidate drops cached packages whose BUILD file or directory contents changed.
func (l *Loader) Invalidate(modified domain.ModifiedFileSet) {
	if modified.IsEmpty() {
		return
	}
	if modified.Everything {
		l.cache.Purge()
		return
	}

	for _, name := range l.cache.Keys() {
		pkg, ok := l.cache.Peek(name)
		if !ok || pkg.BuildFile == "" {
			continue
		}
		dir := filepath.Dir(pkg.BuildFile)
		for _, p := range modified.Paths {
			if p == pkg.BuildFile || filepath.Dir(p) == dir {
				l.cache.Remove(name)
				break
			}
		}
	}
}

// GetPackage loads a package by name, serving it from the cache when possible.
func (l *Loader) GetPackage(ctx context.Context, name string) (*domain.Package, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := domain.ValidatePackageName(name); err != nil {
		return nil, err
	}
	if pkg, ok := l.cache.Get(name); ok {
		return pkg, nil
	}

	pkg, err := l.loadPackage(name, l.currentSetup())
	if err != nil {
		return nil, err
	}
	l.cache.Add(name, pkg)
	return pkg, nil
}

// GetTarget loads the package of label and returns the named target.
// Undeclared names resolve to source files when the file exists in the package directory.
func (l *Loader) GetTarget(ctx context.Context, label domain.Label) (*domain.Target, error) {
	pkg, err := l.GetPackage(ctx, label.Package())
	if err != nil {
		return nil, err
	}
	if t, ok := pkg.Target(label.Name()); ok {
		return t, nil
	}

	if pkg.BuildFile != "" {
		candidate := filepath.Join(filepath.Dir(pkg.BuildFile), filepath.FromSlash(label.Name()))
		if info, statErr := l.fs.Stat(candidate); statErr == nil && !info.IsDir() {
			return &domain.Target{
				Label:      label,
				Kind:       domain.KindSourceFile,
				Visibility: pkg.DefaultVisibility,
			}, nil
		}
	}

	err = domain.WithMeta(domain.ErrTargetNotFound, "label", label.String())
	return nil, zerr.With(err, "package", pkg.Name)
}

// LoadPackages loads packages in parallel, bounded by the configured thread count.
func (l *Loader) LoadPackages(ctx context.Context, names []string) (map[string]*domain.Package, map[string]error) {
	threads := l.currentSetup().Threads
	if threads <= 0 {
		threads = 1
	}

	var mu sync.Mutex
	loaded := make(map[string]*domain.Package, len(names))
	failed := make(map[string]error)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)

	for _, name := range slices.Compact(slices.Sorted(slices.Values(names))) {
		g.Go(func() error {
			pkg, err := l.GetPackage(gctx, name)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed[name] = err
				return nil
			}
			loaded[name] = pkg
			return nil
		})
	}
	_ = g.Wait()

	return loaded, failed
}

// CachedPackages returns the names of the packages currently cached.
func (l *Loader) CachedPackages() []string {
	return slices.Sorted(slices.Values(l.cache.Keys()))
}

func (l *Loader) currentSetup() ports.LoadingSetup {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.setup
}

func (l *Loader) loadPackage(name string, setup ports.LoadingSetup) (*domain.Package, error) {
	var (
		data      []byte
		buildFile string
		err       error
	)
	if name == domain.DefaultsPackageName && setup.DefaultsPackage != "" {
		data = []byte(setup.DefaultsPackage)
	} else {
		buildFile, data, err = l.readBuildFile(name, setup)
		if err != nil {
			return nil, err
		}
	}

	file, err := config.ParseBuildFile(data)
	if err != nil {
		return nil, zerr.With(zerr.With(err, "package", name), "path", buildFile)
	}

	pkg, err := buildPackage(name, buildFile, file, setup)
	if err != nil {
		return nil, zerr.With(err, "path", buildFile)
	}
	pkg.Digest = l.hasher.HashStrings(append([]string{name, string(data)}, pkg.DefaultVisibility...)...)

	l.logger.Debug("loaded package //" + name)
	return pkg, nil
}

// readBuildFile returns the first BUILD file for name along the package path.
func (l *Loader) readBuildFile(name string, setup ports.LoadingSetup) (string, []byte, error) {
	for _, candidate := range setup.Locator.BuildFileCandidates(name) {
		info, err := l.fs.Stat(candidate)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return "", nil, zerr.With(errors.Join(domain.ErrPackageParseFailed, err), "path", candidate)
		}
		if info.IsDir() {
			continue
		}

		data, err := l.fs.ReadFile(candidate)
		if err != nil {
			return "", nil, zerr.With(errors.Join(domain.ErrPackageParseFailed, err), "path", candidate)
		}
		if setup.Monitor != nil {
			setup.Monitor.Notify(candidate, info.ModTime())
		}
		return candidate, data, nil
	}

	return "", nil, domain.WithMeta(domain.ErrPackageNotFound, "package", name)
}

// buildPackage turns a parsed BUILD file into targets. Outs become generated-file
// targets and undeclared srcs in the same package become source-file targets.
func buildPackage(name, buildFile string, file *config.BuildFile, setup ports.LoadingSetup) (*domain.Package, error) {
	pkg := &domain.Package{
		Name:              name,
		BuildFile:         buildFile,
		DefaultVisibility: file.DefaultVisibility,
		Targets:           make(map[string]*domain.Target, len(file.Targets)),
	}
	if len(pkg.DefaultVisibility) == 0 {
		pkg.DefaultVisibility = setup.DefaultVisibility
	}

	parse := func(raw string) (domain.Label, error) {
		l, err := domain.ParseRelativeLabel(name, raw)
		if err != nil {
			return domain.Label{}, errors.Join(domain.ErrPackageParseFailed, err)
		}
		return l, nil
	}
	parseAll := func(raws []string) ([]domain.Label, error) {
		out := make([]domain.Label, 0, len(raws))
		for _, raw := range raws {
			l, err := parse(raw)
			if err != nil {
				return nil, err
			}
			out = append(out, l)
		}
		return out, nil
	}
	add := func(t *domain.Target) error {
		if _, exists := pkg.Targets[t.Label.Name()]; exists {
			err := domain.WithMeta(domain.ErrPackageParseFailed, "target", t.Label.String())
			return zerr.With(err, "reason", "duplicate target name")
		}
		pkg.Targets[t.Label.Name()] = t
		return nil
	}

	// Sorted for deterministic duplicate reporting.
	for _, targetName := range slices.Sorted(maps.Keys(file.Targets)) {
		dto := file.Targets[targetName]
		label, err := parse(":" + targetName)
		if err != nil {
			return nil, err
		}
		if len(setup.RuleClasses) > 0 && !slices.Contains(setup.RuleClasses, dto.Rule) {
			err := domain.WithMeta(domain.ErrUnknownRuleClass, "rule", dto.Rule)
			return nil, zerr.With(err, "target", label.String())
		}

		t := &domain.Target{
			Label:      label,
			Kind:       domain.KindRule,
			RuleClass:  dto.Rule,
			Cmd:        dto.Cmd,
			Visibility: dto.Visibility,
			TestOnly:   dto.TestOnly,
		}
		if t.Srcs, err = parseAll(dto.Srcs); err != nil {
			return nil, err
		}
		if t.Deps, err = parseAll(dto.Deps); err != nil {
			return nil, err
		}
		if t.Outs, err = parseAll(dto.Outs); err != nil {
			return nil, err
		}
		if t.Tools, err = parseAll(dto.Tools); err != nil {
			return nil, err
		}
		if t.Tests, err = parseAll(dto.Tests); err != nil {
			return nil, err
		}
		if err := add(t); err != nil {
			return nil, err
		}
	}

	// Outputs are registered after all rules so that a clash with a rule name is reported.
	for _, targetName := range slices.Sorted(maps.Keys(file.Targets)) {
		rule := pkg.Targets[targetName]
		for _, out := range rule.Outs {
			if out.Package() != name {
				err := domain.WithMeta(domain.ErrPackageParseFailed, "output", out.String())
				return nil, zerr.With(err, "reason", "outputs must be in the rule's package")
			}
			if err := add(&domain.Target{
				Label:      out,
				Kind:       domain.KindGeneratedFile,
				Generator:  rule.Label,
				Visibility: rule.Visibility,
			}); err != nil {
				return nil, err
			}
		}
	}

	for _, rule := range slices.Collect(maps.Values(pkg.Targets)) {
		if !rule.IsRule() {
			continue
		}
		for _, src := range rule.Srcs {
			if src.Package() != name {
				continue
			}
			if _, exists := pkg.Targets[src.Name()]; exists {
				continue
			}
			pkg.Targets[src.Name()] = &domain.Target{
				Label:      src,
				Kind:       domain.KindSourceFile,
				Visibility: pkg.DefaultVisibility,
			}
		}
	}

	return pkg, nil
}

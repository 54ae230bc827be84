package ports

import (
	"context"
	"time"

	"go.trai.ch/prism/internal/core/domain"
)

//go:generate mockgen -source=packages.go -destination=mocks/mock_packages.go -package=mocks

// LoadingSetup primes a package loader for one loading phase.
type LoadingSetup struct {
	Locator           domain.PathPackageLocator
	DefaultVisibility []string
	AllowIncremental  bool
	Threads           int
	DefaultsPackage   string
	RuleClasses       []string
	SessionID         string
	Monitor           TimestampMonitor
}

// PackageLoader turns BUILD files into packages.
type PackageLoader interface {
	// Prepare replaces the loader setup. It fails when the locator is unusable.
	Prepare(ctx context.Context, setup LoadingSetup) error
	// Invalidate drops cached packages affected by modified.
	Invalidate(modified domain.ModifiedFileSet)
	// GetPackage loads a package by name.
	GetPackage(ctx context.Context, name string) (*domain.Package, error)
	// GetTarget loads the package of label and returns the named target.
	GetTarget(ctx context.Context, label domain.Label) (*domain.Target, error)
	// LoadPackages loads several packages in parallel. Failed packages are reported per name.
	LoadPackages(ctx context.Context, names []string) (map[string]*domain.Package, map[string]error)
}

// ChangeDetector reports which workspace files changed since it was last asked.
type ChangeDetector interface {
	ModifiedFiles(ctx context.Context) (domain.ModifiedFileSet, error)
}

// TargetPatternResolver finds the packages a recursive target pattern selects.
type TargetPatternResolver interface {
	// Packages returns the sorted names of packages at or below base on every root.
	Packages(ctx context.Context, locator domain.PathPackageLocator, base string) ([]string, error)
}

// TimestampMonitor tracks files modified within the filesystem timestamp granularity
// of the current command, so later changes stay detectable.
type TimestampMonitor interface {
	// SetCommandStartTime records when the current command started.
	SetCommandStartTime()
	// Notify records the modification time of a file that was read.
	Notify(path string, modTime time.Time)
	// WaitForGranularity blocks until a modification would get a distinct timestamp.
	WaitForGranularity(ctx context.Context) error
}

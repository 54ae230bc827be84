package ports

import "time"

// Metrics records counters and timings of pipeline phases.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// ObservePhase records the duration and outcome of one phase run.
	ObservePhase(phase string, d time.Duration, err error)
	// AddTargets records how many configured targets an update visited and evaluated.
	AddTargets(visited, evaluated int)
	// AddLoadingErrors records labels that failed to load.
	AddLoadingErrors(n int)
}

package ports

import "go.trai.ch/prism/internal/core/domain"

// ConfigurationFactory derives configurations from parsed options.
//
//go:generate mockgen -source=configuration.go -destination=mocks/mock_configuration.go -package=mocks
type ConfigurationFactory interface {
	// CreateConfigurations returns one target configuration per CPU in multiCPU
	// (or one for the default CPU when empty) plus the host configuration.
	CreateConfigurations(
		bundle *domain.OptionsBundle,
		multiCPU []string,
		outputBase string,
	) (*domain.ConfigurationCollection, error)
}

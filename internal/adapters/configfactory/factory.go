// Package configfactory derives target and host configurations from parsed options.
package configfactory

import (
	"maps"
	"slices"
	"strconv"

	"go.trai.ch/prism/internal/core/domain"
	"go.trai.ch/prism/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ConfigurationFactory = (*Factory)(nil)

// HostDirName is the output directory name of the host configuration.
const HostDirName = "host"

// Default fragment values used when an options bundle lacks the core fragment.
const (
	DefaultCPU  = "k8"
	DefaultMode = domain.ModeFastbuild
)

// Factory builds configurations whose checksum is a digest of their option values.
type Factory struct {
	hasher ports.Hasher
}

// NewFactory creates a factory digesting option values with hasher.
func NewFactory(hasher ports.Hasher) *Factory {
	return &Factory{hasher: hasher}
}

// CreateConfigurations implements ports.ConfigurationFactory.
func (f *Factory) CreateConfigurations(
	bundle *domain.OptionsBundle,
	multiCPU []string,
	outputBase string,
) (*domain.ConfigurationCollection, error) {
	if bundle == nil {
		return nil, domain.WithMeta(domain.ErrInvalidConfiguration, "reason", "no options bundle")
	}

	mode := bundle.Fragment(domain.OptionCompilationMode, DefaultMode)
	if !slices.Contains([]string{domain.ModeFastbuild, domain.ModeDbg, domain.ModeOpt}, mode) {
		return nil, zerr.With(domain.WithMeta(domain.ErrInvalidConfiguration, "option", domain.OptionCompilationMode),
			"value", mode)
	}
	dynamic, err := parseBool(bundle.Fragment(domain.OptionDynamicConfigs, "false"))
	if err != nil {
		return nil, zerr.With(domain.WithMeta(domain.ErrInvalidConfiguration, "option", domain.OptionDynamicConfigs),
			"value", bundle.Fragment(domain.OptionDynamicConfigs, ""))
	}

	cpus := normalizeCPUs(multiCPU)
	if len(cpus) == 0 {
		cpus = []string{bundle.Fragment(domain.OptionCPU, DefaultCPU)}
	}

	collection := &domain.ConfigurationCollection{}
	for _, cpu := range cpus {
		if cpu == "" {
			return nil, domain.WithMeta(domain.ErrInvalidConfiguration, "reason", "empty cpu")
		}
		collection.Targets = append(collection.Targets, f.newConfiguration(bundle, cpu, mode, dynamic, false, outputBase))
	}

	hostCPU := bundle.Fragment(domain.OptionHostCPU, DefaultCPU)
	collection.Host = f.newConfiguration(bundle, hostCPU, domain.ModeOpt, dynamic, true, outputBase)
	return collection, nil
}

func (f *Factory) newConfiguration(
	bundle *domain.OptionsBundle,
	cpu, mode string,
	dynamic, host bool,
	outputBase string,
) *domain.Configuration {
	fragments := maps.Clone(bundle.Fragments)
	if fragments == nil {
		fragments = make(map[string]string)
	}
	fragments[domain.OptionCPU] = cpu
	fragments[domain.OptionCompilationMode] = mode

	dirName := cpu + "-" + mode
	if host {
		dirName = HostDirName
	}

	return &domain.Configuration{
		CPU:             cpu,
		CompilationMode: mode,
		IsHost:          host,
		Dynamic:         dynamic,
		Fragments:       fragments,
		Checksum:        f.checksum(fragments, host),
		OutputDirName:   dirName,
		OutputBase:      outputBase,
	}
}

// checksum digests the sorted fragment values. Equal option values always yield
// equal checksums.
func (f *Factory) checksum(fragments map[string]string, host bool) string {
	parts := make([]string, 0, 2*len(fragments)+1)
	for _, k := range slices.Sorted(maps.Keys(fragments)) {
		parts = append(parts, k, fragments[k])
	}
	parts = append(parts, "host="+strconv.FormatBool(host))
	return f.hasher.HashStrings(parts...)
}

func normalizeCPUs(multiCPU []string) []string {
	cpus := slices.Clone(multiCPU)
	slices.Sort(cpus)
	return slices.Compact(cpus)
}

func parseBool(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}

package domain

import "path"

// Compilation modes accepted by the core fragment.
const (
	ModeFastbuild = "fastbuild"
	ModeDbg       = "dbg"
	ModeOpt       = "opt"
)

// Configuration is a resolved set of build option values applicable to targets.
// Configurations are immutable once created.
type Configuration struct {
	CPU             string
	CompilationMode string
	IsHost          bool
	Dynamic         bool
	Fragments       map[string]string

	// Checksum uniquely identifies the option values of the configuration.
	Checksum string
	// OutputDirName is the directory name under the output base, e.g. k8-fastbuild.
	OutputDirName string
	// OutputBase is the absolute directory under which output roots live.
	OutputBase string
}

// BinDirectory returns the root for derived artifacts of this configuration.
func (c *Configuration) BinDirectory() ArtifactRoot {
	return ArtifactRoot{Path: path.Join(c.OutputBase, c.OutputDirName, "bin"), Derived: true}
}

// GenfilesDirectory returns the root for generated sources of this configuration.
func (c *Configuration) GenfilesDirectory() ArtifactRoot {
	return ArtifactRoot{Path: path.Join(c.OutputBase, c.OutputDirName, "genfiles"), Derived: true}
}

// String returns the short description used in diagnostics.
func (c *Configuration) String() string {
	if c == nil {
		return "null"
	}
	return c.OutputDirName + "#" + shortChecksum(c.Checksum)
}

func shortChecksum(s string) string {
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

// ConfigurationCollection holds the target configurations and the host configuration
// derived from one options bundle.
type ConfigurationCollection struct {
	Targets []*Configuration
	Host    *Configuration
}

// TargetConfiguration returns the single target configuration.
// It fails when multi-CPU produced more than one.
func (cc *ConfigurationCollection) TargetConfiguration() (*Configuration, error) {
	if cc == nil || len(cc.Targets) == 0 {
		return nil, ErrNoTargetConfiguration
	}
	if len(cc.Targets) > 1 {
		return nil, WithMeta(ErrAmbiguousTargetConfiguration, "count", len(cc.Targets))
	}
	return cc.Targets[0], nil
}

// ByChecksum finds a configuration in the collection.
func (cc *ConfigurationCollection) ByChecksum(checksum string) (*Configuration, bool) {
	if cc == nil {
		return nil, false
	}
	for _, c := range cc.Targets {
		if c.Checksum == checksum {
			return c, true
		}
	}
	if cc.Host != nil && cc.Host.Checksum == checksum {
		return cc.Host, true
	}
	return nil, false
}

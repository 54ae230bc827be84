package domain

import "maps"

// OptionType is the value type of a declared option.
type OptionType uint8

const (
	// OptionString holds a single string value.
	OptionString OptionType = iota
	// OptionBool holds a boolean value and accepts the --noname form.
	OptionBool
	// OptionInt holds an integer value.
	OptionInt
	// OptionList accumulates repeated or comma-separated values.
	OptionList
)

// OptionDefinition declares a single command-line option.
type OptionDefinition struct {
	Name    string
	Type    OptionType
	Default string
	Usage   string

	// Allowed restricts string values when non-empty.
	Allowed []string
}

// OptionGroup is a named set of option definitions.
// Fixed groups come from the pipeline, fragment groups from the rule registry.
type OptionGroup struct {
	Name    string
	Options []OptionDefinition
}

// Fixed option group names.
const (
	GroupExecution    = "execution"
	GroupPackageCache = "package_cache"
	GroupBuildRequest = "build_request"
	GroupView         = "view"
)

// Well-known option names.
const (
	OptionDefaultVisibility   = "default_visibility"
	OptionPackagePath         = "package_path"
	OptionMultiCPU            = "multi_cpu"
	OptionKeepGoing           = "keep_going"
	OptionLoadingPhaseThreads = "loading_phase_threads"
	OptionVerboseFailures     = "verbose_failures"
	OptionJobs                = "jobs"
	OptionCompilationMode     = "compilation_mode"
	OptionCPU                 = "cpu"
	OptionHostCPU             = "host_cpu"
	OptionDynamicConfigs      = "experimental_dynamic_configs"
	OptionAnalysisWarnings    = "analysis_warnings_as_errors"
)

// ExecutionOptions controls execution-related behavior.
// Actions are never run by the pipeline, the values only flow into configurations.
type ExecutionOptions struct {
	VerboseFailures bool
	Jobs            int
}

// PackageCacheOptions controls package location and visibility defaults.
type PackageCacheOptions struct {
	PackagePath       []string
	DefaultVisibility string
}

// BuildRequestOptions carries per-request options.
type BuildRequestOptions struct {
	MultiCPU []string
}

// ViewOptions carries options consumed by the analysis phase.
type ViewOptions struct {
	KeepGoing                bool
	LoadingPhaseThreads      int
	AnalysisWarningsAsErrors bool
}

// OptionsBundle is the result of parsing one set of option arguments.
// It is replaced wholesale by every successful configure call.
type OptionsBundle struct {
	Execution    ExecutionOptions
	PackageCache PackageCacheOptions
	BuildRequest BuildRequestOptions
	View         ViewOptions

	// Fragments holds the values of options contributed by the rule registry.
	Fragments map[string]string

	// Args is the effective argument list that produced the bundle.
	Args []string
}

// Fragment returns a fragment option value, or fallback if it is unset.
func (b *OptionsBundle) Fragment(name, fallback string) string {
	if v, ok := b.Fragments[name]; ok {
		return v
	}
	return fallback
}

// Clone returns a deep copy of the bundle.
func (b *OptionsBundle) Clone() *OptionsBundle {
	if b == nil {
		return nil
	}
	c := *b
	c.PackageCache.PackagePath = append([]string(nil), b.PackageCache.PackagePath...)
	c.BuildRequest.MultiCPU = append([]string(nil), b.BuildRequest.MultiCPU...)
	c.Fragments = maps.Clone(b.Fragments)
	c.Args = append([]string(nil), b.Args...)
	return &c
}

// FixedOptionGroups returns the option groups every pipeline declares,
// independent of the rule registry.
func FixedOptionGroups() []OptionGroup {
	return []OptionGroup{
		{
			Name: GroupExecution,
			Options: []OptionDefinition{
				{Name: OptionVerboseFailures, Type: OptionBool, Usage: "print the full cause of failures"},
				{Name: OptionJobs, Type: OptionInt, Default: "4", Usage: "number of concurrent jobs"},
			},
		},
		{
			Name: GroupPackageCache,
			Options: []OptionDefinition{
				{
					Name:    OptionPackagePath,
					Type:    OptionList,
					Default: WorkspacePlaceholder,
					Usage:   "roots searched for packages, in order",
				},
				{
					Name:    OptionDefaultVisibility,
					Type:    OptionString,
					Default: "private",
					Usage:   "visibility of targets in packages without default_visibility",
					Allowed: []string{"public", "private"},
				},
			},
		},
		{
			Name: GroupBuildRequest,
			Options: []OptionDefinition{
				{Name: OptionMultiCPU, Type: OptionList, Usage: "analyze the targets once per CPU"},
			},
		},
		{
			Name: GroupView,
			Options: []OptionDefinition{
				{Name: OptionKeepGoing, Type: OptionBool, Usage: "continue past loading and analysis errors"},
				{
					Name:    OptionLoadingPhaseThreads,
					Type:    OptionInt,
					Default: "20",
					Usage:   "number of parallel package loads",
				},
				{Name: OptionAnalysisWarnings, Type: OptionBool, Usage: "treat analysis warnings as errors"},
			},
		},
	}
}

package domain

import "go.trai.ch/zerr"

var (
	// ErrUpdateNotCalled is returned by queries issued before the first successful update.
	ErrUpdateNotCalled = zerr.New("you must run update() first")

	// ErrNotInputFile is returned when an input-file query names a target that is not a source file.
	ErrNotInputFile = zerr.New("configured target is not an input file")

	// ErrNotAnAction is returned when the generating entry of an artifact is not a proper action.
	ErrNotAnAction = zerr.New("generating entry is not a proper action")

	// ErrLabelSyntax is returned when a label or target pattern is malformed.
	ErrLabelSyntax = zerr.New("invalid label syntax")

	// ErrTargetNotFound is returned when a package exists but does not declare the requested target.
	ErrTargetNotFound = zerr.New("target not found")

	// ErrPackageNotFound is returned when no package path root contains a BUILD file for a package.
	ErrPackageNotFound = zerr.New("package not found")

	// ErrPackageParseFailed is returned when a BUILD file cannot be parsed or validated.
	ErrPackageParseFailed = zerr.New("failed to parse BUILD file")

	// ErrLoadingFailed is returned when the loading phase fails without keep-going.
	ErrLoadingFailed = zerr.New("loading failed")

	// ErrVisibilityViolation is returned when a dependency edge is not visible to its consumer.
	ErrVisibilityViolation = zerr.New("target is not visible")

	// ErrCycleDetected is returned when the dependency graph of configured targets has a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrMissingDependency is returned when a dependency edge points at a target that cannot be loaded.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrAnalysisFailed is returned when analysis of a configured target fails.
	ErrAnalysisFailed = zerr.New("analysis failed")

	// ErrActionConflict is returned when two configured targets generate the same artifact.
	ErrActionConflict = zerr.New("conflicting actions generate the same artifact")

	// ErrUnknownAspect is returned when an update requests an aspect the rule registry does not know.
	ErrUnknownAspect = zerr.New("unknown aspect")

	// ErrUnknownRuleClass is returned when a BUILD file names a rule class the registry does not know.
	ErrUnknownRuleClass = zerr.New("unknown rule class")

	// ErrInvalidOption is returned when an option is unknown or has an invalid value.
	ErrInvalidOption = zerr.New("invalid option")

	// ErrPolicyViolation is returned when the invocation policy rejects an option value.
	ErrPolicyViolation = zerr.New("invocation policy violation")

	// ErrPolicyParseFailed is returned when an invocation policy file cannot be parsed.
	ErrPolicyParseFailed = zerr.New("failed to parse invocation policy")

	// ErrInvalidConfiguration is returned when an options bundle cannot be turned into configurations.
	ErrInvalidConfiguration = zerr.New("invalid configuration")

	// ErrNoTargetConfiguration is returned when a configuration collection has no target configuration.
	ErrNoTargetConfiguration = zerr.New("no target configuration")

	// ErrAmbiguousTargetConfiguration is returned when more than one target configuration exists.
	ErrAmbiguousTargetConfiguration = zerr.New("more than one target configuration")

	// ErrWorkspaceInconsistent is returned when the package path or workspace root is unusable.
	ErrWorkspaceInconsistent = zerr.New("workspace is inconsistent")

	// ErrWorkspaceNotFound is returned when no WORKSPACE.yaml is found above a directory.
	ErrWorkspaceNotFound = zerr.New("could not find WORKSPACE.yaml")

	// ErrWorkspaceReadFailed is returned when the workspace file cannot be read.
	ErrWorkspaceReadFailed = zerr.New("failed to read workspace file")

	// ErrWatcherFailed is returned when the file watcher cannot be started.
	ErrWatcherFailed = zerr.New("failed to start file watcher")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrNoLabelsSpecified is returned when a command needs at least one label.
	ErrNoLabelsSpecified = zerr.New("no labels specified")

	// ErrUpdateIncomplete is returned after a keep-going update that skipped failed targets.
	// The failures have already been reported.
	ErrUpdateIncomplete = zerr.New("update completed with errors")

	// ErrMetricsUnavailable is returned when a metrics file is requested but the
	// metrics adapter cannot export.
	ErrMetricsUnavailable = zerr.New("metrics cannot be exported")
)

// WithMeta attaches metadata to err without losing its identity, so errors.Is
// still matches err. zerr.With alone copies a sentinel and breaks that match.
func WithMeta(err error, key string, value any) error {
	return zerr.With(zerr.Wrap(err, ""), key, value)
}

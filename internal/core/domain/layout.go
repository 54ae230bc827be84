package domain

import "path/filepath"

const (
	// PrismDirName is the name of the internal workspace directory.
	PrismDirName = ".prism"

	// OutputDirName is the directory under PrismDirName that holds configuration output roots.
	OutputDirName = "out"

	// WorkspaceFileName marks the root of a workspace.
	WorkspaceFileName = "WORKSPACE.yaml"

	// BuildFileName marks a directory as a package.
	BuildFileName = "BUILD.yaml"

	// PolicyFileName is the optional invocation policy file at the workspace root.
	PolicyFileName = "policy.yaml"

	// DefaultsPackageName is the name of the synthetic package holding option-derived defaults.
	DefaultsPackageName = "tools/defaults"

	// WorkspacePlaceholder expands to the workspace root inside --package_path.
	WorkspacePlaceholder = "%workspace%"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultOutputBase returns the output base relative to the workspace root.
// It joins .prism and out.
func DefaultOutputBase() string {
	return filepath.Join(PrismDirName, OutputDirName)
}

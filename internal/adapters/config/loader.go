// Package config reads workspace and BUILD files.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/prism/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var (
	configValidate          *validator.Validate
	validWorkspaceNameRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")
)

func init() {
	configValidate = validator.New()
	_ = configValidate.RegisterValidation("workspace_name", validateWorkspaceName)
	_ = configValidate.RegisterValidation("visibility", validateVisibility)
}

func validateWorkspaceName(fl validator.FieldLevel) bool {
	return validWorkspaceNameRegex.MatchString(fl.Field().String())
}

// validateVisibility accepts absolute labels, which includes //visibility:public.
func validateVisibility(fl validator.FieldLevel) bool {
	_, err := domain.ParseLabel(fl.Field().String())
	return err == nil
}

// Workspace is a located workspace root with its parsed WORKSPACE.yaml.
type Workspace struct {
	Root string
	File WorkspaceFile
}

// PackagePath returns the package path roots declared by the workspace,
// with %workspace% as the default.
func (w *Workspace) PackagePath() []string {
	if len(w.File.PackagePath) == 0 {
		return []string{domain.WorkspacePlaceholder}
	}
	return w.File.PackagePath
}

// FindWorkspace walks up from cwd to the nearest directory holding WORKSPACE.yaml.
func FindWorkspace(cwd string) (*Workspace, error) {
	currentDir := cwd
	for {
		path := filepath.Join(currentDir, domain.WorkspaceFileName)
		if _, err := os.Stat(path); err == nil {
			return LoadWorkspace(path)
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return nil, domain.WithMeta(domain.ErrWorkspaceNotFound, "cwd", cwd)
}

// LoadWorkspace reads and validates the workspace file at path.
func LoadWorkspace(path string) (*Workspace, error) {
	var file WorkspaceFile
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return nil, err
	}
	if err := configValidate.Struct(&file); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrWorkspaceReadFailed, err), "path", path)
	}
	return &Workspace{Root: filepath.Clean(filepath.Dir(path)), File: file}, nil
}

// ParseBuildFile decodes and validates the content of a BUILD file.
func ParseBuildFile(data []byte) (*BuildFile, error) {
	var file BuildFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Join(domain.ErrPackageParseFailed, err)
	}
	if err := configValidate.Struct(&file); err != nil {
		return nil, errors.Join(domain.ErrPackageParseFailed, err)
	}
	return &file, nil
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](path string, target *T) error {
	// #nosec G304 -- path is validated by caller
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWorkspaceReadFailed.Error()), "path", path)
	}

	if parseErr := yaml.Unmarshal(data, target); parseErr != nil {
		return zerr.With(errors.Join(domain.ErrWorkspaceReadFailed, parseErr), "path", path)
	}
	return nil
}

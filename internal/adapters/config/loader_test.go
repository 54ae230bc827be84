package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/prism/internal/adapters/config"
	"go.trai.ch/prism/internal/core/domain"
)

func TestFindWorkspace(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.WorkspaceFileName),
		[]byte("name: demo\npackage_path: [\"%workspace%\", /opt/shared]\n"), domain.FilePerm))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

	ws, err := config.FindWorkspace(nested)
	require.NoError(t, err)
	assert.Equal(t, root, ws.Root)
	assert.Equal(t, "demo", ws.File.Name)
	assert.Equal(t, []string{domain.WorkspacePlaceholder, "/opt/shared"}, ws.PackagePath())
}

func TestFindWorkspace_Errors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		_, err := config.FindWorkspace(t.TempDir())
		assert.ErrorIs(t, err, domain.ErrWorkspaceNotFound)
	})

	t.Run("invalid name", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, domain.WorkspaceFileName),
			[]byte("name: \"bad name\"\n"), domain.FilePerm))
		_, err := config.FindWorkspace(root)
		assert.ErrorIs(t, err, domain.ErrWorkspaceReadFailed)
	})

	t.Run("default package path", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, domain.WorkspaceFileName),
			[]byte("name: demo\n"), domain.FilePerm))
		ws, err := config.FindWorkspace(root)
		require.NoError(t, err)
		assert.Equal(t, []string{domain.WorkspacePlaceholder}, ws.PackagePath())
	})
}

func TestParseBuildFile(t *testing.T) {
	file, err := config.ParseBuildFile([]byte(`
default_visibility: ["//visibility:public"]
targets:
  lib:
    rule: genrule
    srcs: [a.txt]
    outs: [a.out]
    cmd: "cat $(SRCS) > $(OUTS)"
    visibility: ["//visibility:private"]
`))
	require.NoError(t, err)
	assert.Equal(t, []string{domain.VisibilityPublic}, file.DefaultVisibility)
	require.Contains(t, file.Targets, "lib")
	assert.Equal(t, "genrule", file.Targets["lib"].Rule)
	assert.Equal(t, []string{"a.out"}, file.Targets["lib"].Outs)
}

func TestParseBuildFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "malformed", yaml: "targets: [\n"},
		{name: "missing rule", yaml: "targets:\n  lib:\n    srcs: [a]\n"},
		{name: "empty target", yaml: "targets:\n  lib:\n"},
		{name: "bad visibility", yaml: "targets:\n  lib:\n    rule: filegroup\n    visibility: [everyone]\n"},
		{name: "empty src", yaml: "targets:\n  lib:\n    rule: filegroup\n    srcs: ['']\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.ParseBuildFile([]byte(tt.yaml))
			assert.ErrorIs(t, err, domain.ErrPackageParseFailed)
		})
	}
}

func TestMapFSAdapter(t *testing.T) {
	fsys := config.NewMapFSAdapter("/ws", fstest.MapFS{
		"pkg/BUILD.yaml": &fstest.MapFile{Data: []byte("targets: {}\n")},
	})

	data, err := fsys.ReadFile("/ws/pkg/BUILD.yaml")
	require.NoError(t, err)
	assert.Equal(t, "targets: {}\n", string(data))

	info, err := fsys.Stat("/ws/pkg")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = fsys.Stat("/ws")
	require.NoError(t, err)

	_, err = fsys.ReadFile("/elsewhere/pkg/BUILD.yaml")
	assert.Error(t, err)
}

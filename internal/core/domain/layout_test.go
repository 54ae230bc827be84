package domain_test

import (
	"path/filepath"
	"testing"

	"go.trai.ch/prism/internal/core/domain"
)

func TestLayoutPaths(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{
			name:     "DefaultOutputBase",
			got:      domain.DefaultOutputBase(),
			expected: filepath.Join(".prism", "out"),
		},
		{
			name:     "BuildFileName",
			got:      domain.BuildFileName,
			expected: "BUILD.yaml",
		},
		{
			name:     "WorkspaceFileName",
			got:      domain.WorkspaceFileName,
			expected: "WORKSPACE.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}
}

// Package tui shows the configured-target graph of watch-mode updates in a terminal UI.
package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/prism/internal/ui/output"
)

// NewModel creates a model with no update shown yet. w decides the color profile.
func NewModel(w io.Writer) Model {
	if w == nil {
		w = os.Stderr
	}

	out := output.New(w)
	lipgloss.SetColorProfile(out.Profile)

	return Model{
		TreeRoots: make([]*TargetNode, 0),
		FlatList:  make([]*TargetNode, 0),
		expanded:  make(map[string]bool),
	}
}

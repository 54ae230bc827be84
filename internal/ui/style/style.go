// Package style holds the colors and symbols shared by the prism renderers.
package style

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	// Iris highlights headers.
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
	White  = lipgloss.Color("#FFFFFF")
)

// Symbols prefixed to event and summary lines.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
)

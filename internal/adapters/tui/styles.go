package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/prism/internal/ui/style"
)

var (
	targetReusedStyle = lipgloss.NewStyle().
				Foreground(style.Slate).
				Faint(true)

	targetEvaluatedStyle = lipgloss.NewStyle().
				Foreground(style.Green)

	targetFailedStyle = lipgloss.NewStyle().
				Foreground(style.Red)

	selectedStyle = lipgloss.NewStyle().
			Foreground(style.Iris).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(style.Yellow)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Iris).
			Foreground(style.White)

	failureTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Padding(0, 1).
				Background(style.Red).
				Foreground(style.White)

	listStyle = lipgloss.NewStyle().
			PaddingRight(1)

	detailStyle = lipgloss.NewStyle().
			PaddingLeft(1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(style.Slate)
)

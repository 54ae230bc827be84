package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/prism/internal/ui/style"
)

const (
	iconReused = "⚡"
	// defaultEventLines is shown before the terminal reports its height.
	defaultEventLines = 10
)

// View renders the UI.
func (m *Model) View() string {
	if m.ListHeight == 0 {
		return "Initializing..."
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.targetList(),
		m.detailPane(),
	)
}

func (m *Model) listWidth() int {
	return int(float64(m.Width) * targetListWidthRatio)
}

func (m *Model) targetList() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("TARGETS") + "\n\n")

	start := m.ListOffset
	end := min(m.ListOffset+m.ListHeight, len(m.FlatList))
	if start > end {
		start = end
	}

	for i := start; i < end; i++ {
		s.WriteString(m.renderTargetRow(i, m.FlatList[i]) + "\n")
	}
	if len(m.FlatList) == 0 {
		s.WriteString(targetReusedStyle.Render("no configured targets") + "\n")
	}

	return listStyle.Width(m.listWidth()).Render(s.String())
}

func (m *Model) renderTargetRow(index int, node *TargetNode) string {
	rowStyle := targetStyle(node)

	cursor := "  "
	if index == m.SelectedIdx {
		cursor = selectedStyle.Render("> ")
		if node.Status == StatusReused {
			rowStyle = selectedStyle
		}
	}

	marker := "  "
	if len(node.Children) > 0 {
		marker = "▸ "
		if node.IsExpanded {
			marker = "▾ "
		}
	}

	indent := strings.Repeat("  ", node.Depth)
	content := fmt.Sprintf("%s%s%s %s", indent, marker, targetIcon(node), node.Key)
	return cursor + rowStyle.Render(content)
}

func targetIcon(node *TargetNode) string {
	switch node.Status {
	case StatusEvaluated:
		return style.Check
	case StatusFailed:
		return style.Cross
	default:
		return iconReused
	}
}

func targetStyle(node *TargetNode) lipgloss.Style {
	switch node.Status {
	case StatusEvaluated:
		return targetEvaluatedStyle
	case StatusFailed:
		return targetFailedStyle
	default:
		return targetReusedStyle
	}
}

func (m *Model) detailPane() string {
	if m.Updates == 0 {
		return detailStyle.Render(titleStyle.Render("WAITING FOR FIRST UPDATE"))
	}

	s := m.Summary
	lines := []string{
		titleStyle.Render(fmt.Sprintf("UPDATE %d", m.Updates)),
		"",
		fmt.Sprintf("%d requested in %d configurations", len(s.Targets), len(s.Configurations)),
		fmt.Sprintf("%d visited, %d evaluated, %d actions", s.Visited, s.Evaluated, s.Actions),
		"",
	}

	if len(m.Evaluated) == 0 {
		lines = append(lines, targetReusedStyle.Render("every configured target was reused"))
	} else {
		lines = append(lines, "Re-evaluated:")
		for _, key := range m.Evaluated {
			lines = append(lines, targetEvaluatedStyle.Render("  "+style.Check+" "+key))
		}
	}

	if len(m.Failures) > 0 {
		lines = append(lines, "", failureTitleStyle.Render("FAILURES"))
		for _, f := range m.Failures {
			lines = append(lines, targetFailedStyle.Render(style.Cross+" "+f))
		}
	}

	if events := m.visibleEvents(len(lines)); len(events) > 0 {
		lines = append(lines, "", titleStyle.Render("EVENTS"))
		for _, e := range events {
			if strings.HasPrefix(e, "error:") || strings.HasPrefix(e, "warning:") {
				e = warningStyle.Render(e)
			}
			lines = append(lines, e)
		}
	}

	width := m.Width - m.listWidth() - paneBorderWidth
	return detailStyle.Width(max(width, 0)).Render(strings.Join(lines, "\n"))
}

// visibleEvents returns the newest events that fit below used lines.
func (m *Model) visibleEvents(used int) []string {
	n := defaultEventLines
	if m.Height > 0 {
		// Two lines for the blank separator and the title.
		n = m.Height - used - 2
	}
	if n <= 0 {
		return nil
	}
	if len(m.Events) <= n {
		return m.Events
	}
	return m.Events[len(m.Events)-n:]
}

package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/prism/internal/core/domain"
)

const (
	targetListWidthRatio = 0.5
	paneBorderWidth      = 3
	// maxEventLines bounds the events kept for the detail pane.
	maxEventLines = 200
)

// TargetStatus is the state of a configured target after the latest update.
type TargetStatus string

const (
	// StatusReused indicates the target was taken from the previous update.
	StatusReused TargetStatus = "Reused"
	// StatusEvaluated indicates the target was computed by the latest update.
	StatusEvaluated TargetStatus = "Evaluated"
	// StatusFailed indicates the target could not be analyzed.
	StatusFailed TargetStatus = "Failed"
)

// TargetNode is one position of a configured target in the tree.
type TargetNode struct {
	Key        domain.ConfiguredTargetKey
	Status     TargetStatus
	Depth      int
	IsExpanded bool
	Children   []*TargetNode
	Parent     *TargetNode
}

// Model represents the watch-mode TUI state.
type Model struct {
	TreeRoots []*TargetNode
	FlatList  []*TargetNode

	// Updates counts the graphs received so far.
	Updates int
	Summary domain.UpdateSummary
	// Evaluated lists the keys the latest update computed.
	Evaluated []string
	// Failures holds the error lines of the latest update.
	Failures []string
	Events   []string

	SelectedIdx int
	ListOffset  int
	ListHeight  int
	Width       int
	Height      int

	// expanded remembers expanded tree positions across updates.
	expanded map[string]bool
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
//
//nolint:cyclop // one case per key binding
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "k", "up":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
				m.ensureVisible()
			}
		case "j", "down":
			if m.SelectedIdx < len(m.FlatList)-1 {
				m.SelectedIdx++
				m.ensureVisible()
			}
		case "enter", " ", "l", "right":
			m.toggle()
		case "h", "left":
			m.collapse()
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		fullHeader := titleStyle.Render("TARGETS") + "\n\n"
		m.ListHeight = msg.Height - lipgloss.Height(fullHeader)
		m.ensureVisible()

	case MsgGraph:
		m.Updates++
		m.Summary = msg.Summary
		m.Evaluated = m.Evaluated[:0]
		for _, key := range sortedKeys(msg.Evaluated) {
			m.Evaluated = append(m.Evaluated, key.String())
		}
		m.Failures = nil
		if msg.Summary.Error != "" {
			m.Failures = strings.Split(strings.TrimRight(msg.Summary.Error, "\n"), "\n")
		}
		m.TreeRoots = buildTree(msg)
		m.restoreExpansion()
		m.refresh()

	case MsgEvent:
		m.Events = append(m.Events, formatEvent(msg.Event))
		if over := len(m.Events) - maxEventLines; over > 0 {
			m.Events = slices.Delete(m.Events, 0, over)
		}
	}

	return m, nil
}

func (m *Model) selected() *TargetNode {
	if m.SelectedIdx >= 0 && m.SelectedIdx < len(m.FlatList) {
		return m.FlatList[m.SelectedIdx]
	}
	return nil
}

func (m *Model) toggle() {
	node := m.selected()
	if node == nil || len(node.Children) == 0 {
		return
	}
	m.setExpanded(node, !node.IsExpanded)
	m.refresh()
}

// collapse closes the selected node, or moves to its parent when it is closed.
func (m *Model) collapse() {
	node := m.selected()
	if node == nil {
		return
	}
	if node.IsExpanded {
		m.setExpanded(node, false)
		m.refresh()
		return
	}
	if node.Parent != nil {
		if i := slices.Index(m.FlatList, node.Parent); i >= 0 {
			m.SelectedIdx = i
			m.ensureVisible()
		}
	}
}

func (m *Model) setExpanded(node *TargetNode, expanded bool) {
	if m.expanded == nil {
		m.expanded = make(map[string]bool)
	}
	node.IsExpanded = expanded
	if expanded {
		m.expanded[nodePath(node)] = true
	} else {
		delete(m.expanded, nodePath(node))
	}
}

func (m *Model) restoreExpansion() {
	var walk func(node *TargetNode)
	walk = func(node *TargetNode) {
		node.IsExpanded = m.expanded[nodePath(node)]
		for _, child := range node.Children {
			walk(child)
		}
	}
	for _, root := range m.TreeRoots {
		walk(root)
	}
}

// refresh flattens the tree and keeps the selection in range.
func (m *Model) refresh() {
	m.FlatList = flattenTree(m.TreeRoots)
	if m.SelectedIdx >= len(m.FlatList) {
		m.SelectedIdx = len(m.FlatList) - 1
	}
	if m.SelectedIdx < 0 {
		m.SelectedIdx = 0
	}
	m.ensureVisible()
}

func (m *Model) ensureVisible() {
	if m.ListHeight <= 0 {
		return
	}
	if m.SelectedIdx < m.ListOffset {
		m.ListOffset = m.SelectedIdx
	} else if m.SelectedIdx >= m.ListOffset+m.ListHeight {
		m.ListOffset = m.SelectedIdx - m.ListHeight + 1
	}
}

func sortedKeys[V any](set map[domain.ConfiguredTargetKey]V) []domain.ConfiguredTargetKey {
	keys := make([]domain.ConfiguredTargetKey, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, domain.ConfiguredTargetKey.Compare)
	return keys
}

func formatEvent(ev domain.Event) string {
	msg := strings.TrimRight(ev.Message, "\n")
	if ev.Label != "" {
		msg = fmt.Sprintf("[%s] %s", ev.Label, msg)
	}
	return ev.Kind.String() + ": " + msg
}

package tui

import (
	"maps"
	"slices"

	"go.trai.ch/prism/internal/core/domain"
)

// MsgGraph carries the configured-target graph of a finished update.
type MsgGraph struct {
	// Roots are the requested configured targets that analyzed.
	Roots []domain.ConfiguredTargetKey
	// Deps holds the direct dependencies of every analyzed configured target.
	Deps      map[domain.ConfiguredTargetKey][]domain.ConfiguredTargetKey
	Evaluated map[domain.ConfiguredTargetKey]struct{}
	// Failed maps the configured targets that could not be analyzed to their cause.
	Failed  map[domain.ConfiguredTargetKey]string
	Summary domain.UpdateSummary
}

// MsgEvent carries one pipeline event.
type MsgEvent struct {
	Event domain.Event
}

// NewGraphMsg copies what the view needs out of result.
func NewGraphMsg(result *domain.AnalysisResult, summary domain.UpdateSummary) MsgGraph {
	msg := MsgGraph{
		Roots:     make([]domain.ConfiguredTargetKey, 0, len(result.ConfiguredTargets)),
		Deps:      make(map[domain.ConfiguredTargetKey][]domain.ConfiguredTargetKey, len(result.All)),
		Evaluated: maps.Clone(result.EvaluatedKeys),
		Failed:    make(map[domain.ConfiguredTargetKey]string, len(result.Failed)),
		Summary:   summary,
	}
	for _, ct := range result.ConfiguredTargets {
		msg.Roots = append(msg.Roots, ct.Key())
	}
	for key, ct := range result.All {
		switch ct := ct.(type) {
		case *domain.RuleConfiguredTarget:
			msg.Deps[key] = slices.Clone(ct.Deps())
		case *domain.OutputFileConfiguredTarget:
			msg.Deps[key] = []domain.ConfiguredTargetKey{ct.Generator()}
		default:
			msg.Deps[key] = nil
		}
	}
	for key, err := range result.Failed {
		msg.Failed[key] = err.Error()
	}
	return msg
}

func (m MsgGraph) known(key domain.ConfiguredTargetKey) bool {
	if _, ok := m.Deps[key]; ok {
		return true
	}
	_, ok := m.Failed[key]
	return ok
}

func (m MsgGraph) status(key domain.ConfiguredTargetKey) TargetStatus {
	if _, ok := m.Failed[key]; ok {
		return StatusFailed
	}
	if _, ok := m.Evaluated[key]; ok {
		return StatusEvaluated
	}
	return StatusReused
}

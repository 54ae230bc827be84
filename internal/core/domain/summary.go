package domain

import "time"

// UpdateSummary is a printable digest of an analysis result.
type UpdateSummary struct {
	Targets        []SummaryTarget `json:"targets"`
	Configurations []string        `json:"configurations"`
	Visited        int             `json:"visited"`
	Evaluated      int             `json:"evaluated"`
	Actions        int             `json:"actions"`
	Error          string          `json:"error,omitempty"`
	Elapsed        time.Duration   `json:"elapsed_ns"`
}

// SummaryTarget is one requested configured target and its default outputs.
type SummaryTarget struct {
	Label         Label    `json:"label"`
	Configuration string   `json:"configuration"`
	Files         []string `json:"files"`
}

// Summarize digests result. configs may be nil.
func Summarize(result *AnalysisResult, configs *ConfigurationCollection, elapsed time.Duration) UpdateSummary {
	s := UpdateSummary{
		Targets:   make([]SummaryTarget, 0, len(result.ConfiguredTargets)),
		Visited:   result.TargetsVisited,
		Evaluated: len(result.EvaluatedKeys),
		Actions:   result.ActionGraph.Len(),
		Error:     result.Error,
		Elapsed:   elapsed,
	}
	for _, ct := range result.ConfiguredTargets {
		files := make([]string, 0, len(ct.Files()))
		for _, f := range ct.Files() {
			files = append(files, f.RootRelativePath)
		}
		s.Targets = append(s.Targets, SummaryTarget{
			Label:         ct.Label(),
			Configuration: ct.Configuration().String(),
			Files:         files,
		})
	}
	if configs != nil {
		for _, cfg := range configs.Targets {
			s.Configurations = append(s.Configurations, cfg.String())
		}
	}
	return s
}

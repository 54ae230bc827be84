package ports

import (
	"context"

	"go.trai.ch/prism/internal/core/domain"
)

// AnalysisRequest carries everything the analysis engine needs for one update.
type AnalysisRequest struct {
	Loading         *domain.LoadingResult
	Configurations  *domain.ConfigurationCollection
	Aspects         []string
	View            domain.ViewOptions
	TopLevelContext domain.TopLevelArtifactContext
	Events          EventHandler
	Loader          PackageLoader
	Registry        RuleRegistry
}

// AnalysisEngine builds configured targets and the action graph.
//
//go:generate mockgen -source=analysis.go -destination=mocks/mock_analysis.go -package=mocks
type AnalysisEngine interface {
	// Analyze configures the loaded targets. Without keep-going the first target error
	// aborts the run and no result is returned.
	Analyze(ctx context.Context, req AnalysisRequest) (*domain.AnalysisResult, error)
	// Clear drops every configured target cached from previous runs.
	Clear()
}

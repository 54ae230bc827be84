package analysis

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/prism/internal/adapters/fs"
	"go.trai.ch/prism/internal/adapters/logger"
	"go.trai.ch/prism/internal/adapters/telemetry"
	"go.trai.ch/prism/internal/core/ports"
)

// NodeID is the unique identifier for the analysis engine Graft node.
const NodeID graft.ID = "engine.analysis"

func init() {
	graft.Register(graft.Node[ports.AnalysisEngine]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.HasherNodeID, telemetry.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.AnalysisEngine, error) {
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewEngine(hasher, tracer, log), nil
		},
	})
}

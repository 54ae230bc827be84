package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/prism/internal/core/ports"
)

// NodeID is the unique identifier for the tracer Graft node.
const NodeID graft.ID = "adapter.telemetry"

// InstrumentationName names the tracer of the pipeline phases.
const InstrumentationName = "go.trai.ch/prism/pipeline"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Tracer, error) {
			return NewOTelTracer(InstrumentationName), nil
		},
	})
}

package clock

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/prism/internal/core/ports"
)

// NodeID is the unique identifier for the timestamp monitor Graft node.
const NodeID graft.ID = "adapter.clock"

func init() {
	graft.Register(graft.Node[ports.TimestampMonitor]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.TimestampMonitor, error) {
			return NewMonitor(clockwork.NewRealClock(), DefaultGranularity), nil
		},
	})
}

package rules

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/prism/internal/core/ports"
)

// NodeID is the unique identifier for the rule registry Graft node.
const NodeID graft.ID = "adapter.rules"

func init() {
	graft.Register(graft.Node[ports.RuleRegistry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RuleRegistry, error) {
			return Builtin(), nil
		},
	})
}

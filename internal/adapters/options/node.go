package options

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/prism/internal/core/ports"
)

// NodeID is the unique identifier for the options parser factory Graft node.
const NodeID graft.ID = "adapter.options"

func init() {
	graft.Register(graft.Node[ports.OptionsParserFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.OptionsParserFactory, error) {
			return NewFactory(), nil
		},
	})
}

package configfactory

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/prism/internal/adapters/fs"
	"go.trai.ch/prism/internal/core/ports"
)

// NodeID is the unique identifier for the configuration factory Graft node.
const NodeID graft.ID = "adapter.configfactory"

func init() {
	graft.Register(graft.Node[ports.ConfigurationFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.HasherNodeID},
		Run: func(ctx context.Context) (ports.ConfigurationFactory, error) {
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(hasher), nil
		},
	})
}

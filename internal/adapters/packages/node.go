package packages

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/prism/internal/adapters/config"
	"go.trai.ch/prism/internal/adapters/fs"
	"go.trai.ch/prism/internal/adapters/logger"
	"go.trai.ch/prism/internal/core/ports"
)

// NodeID is the unique identifier for the package loader Graft node.
const NodeID graft.ID = "adapter.packages"

func init() {
	graft.Register(graft.Node[ports.PackageLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.HasherNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.PackageLoader, error) {
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(config.NewOSFS(), hasher, log, DefaultCacheSize)
		},
	})
}

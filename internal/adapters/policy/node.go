package policy

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/prism/internal/core/ports"
)

// NodeID is the unique identifier for the policy loader Graft node.
const NodeID graft.ID = "adapter.policy"

// Loader loads policy files for the application layer.
type Loader struct{}

// Load reads the policy at path. A missing file yields an empty policy.
func (Loader) Load(path string) (ports.InvocationPolicy, error) {
	p, err := Load(path)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func init() {
	graft.Register(graft.Node[*Loader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Loader, error) {
			return &Loader{}, nil
		},
	})
}

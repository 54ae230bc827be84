package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/prism/internal/core/domain"
)

func key(label string) domain.ConfiguredTargetKey {
	return domain.ConfiguredTargetKey{Label: domain.MustParseLabel(label), ConfigChecksum: "c1"}
}

func keys(labels ...string) []domain.ConfiguredTargetKey {
	out := make([]domain.ConfiguredTargetKey, len(labels))
	for i, l := range labels {
		out[i] = key(l)
	}
	return out
}

func TestGraph_Cycle(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(*domain.Graph)
		wantErr     error
		errContains string
	}{
		{
			name: "Self Cycle",
			setup: func(g *domain.Graph) {
				g.AddNode(key("//p:a"), keys("//p:a"))
			},
			wantErr:     domain.ErrCycleDetected,
			errContains: "cycle detected",
		},
		{
			name: "Three Node Cycle",
			setup: func(g *domain.Graph) {
				g.AddNode(key("//p:a"), keys("//p:b"))
				g.AddNode(key("//p:b"), keys("//p:c"))
				g.AddNode(key("//p:c"), keys("//p:a"))
			},
			wantErr:     domain.ErrCycleDetected,
			errContains: "cycle detected",
		},
		{
			name: "Missing Node",
			setup: func(g *domain.Graph) {
				g.AddNode(key("//p:a"), keys("//p:ghost"))
			},
			wantErr:     domain.ErrMissingDependency,
			errContains: "missing dependency",
		},
		{
			name: "Disconnected Components No Cycle",
			setup: func(g *domain.Graph) {
				g.AddNode(key("//p:a"), keys("//p:b"))
				g.AddNode(key("//p:b"), nil)
				g.AddNode(key("//q:c"), keys("//q:d"))
				g.AddNode(key("//q:d"), nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := domain.NewGraph()
			tt.setup(g)
			err := g.Validate()
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestGraph_TopologicalOrder(t *testing.T) {
	g := domain.NewGraph()
	g.AddNode(key("//p:a"), keys("//p:b", "//p:c"))
	g.AddNode(key("//p:b"), keys("//p:d"))
	g.AddNode(key("//p:c"), keys("//p:d"))
	g.AddNode(key("//p:d"), nil)
	require.NoError(t, g.Validate())

	var order []string
	for k := range g.Walk() {
		order = append(order, k.Label.Name())
	}
	assert.Equal(t, []string{"d", "b", "c", "a"}, order)

	dependents := g.Dependents()
	assert.ElementsMatch(t, keys("//p:b", "//p:c"), dependents[key("//p:d")])
	assert.Equal(t, 4, g.Len())
}

package partition

import (
	"testing"

	"github.com/dusk-indust/famtree/internal/family"
	"github.com/stretchr/testify/require"
)

// chainGraph builds A <- B <- C where A is the grandfather of C.
func chainGraph() *family.Graph {
	return family.NewGraph([]family.Person{
		{ID: "A", Name: "Abel"},
		{ID: "B", Name: "Bram", FatherID: "A"},
		{ID: "C", Name: "Cora", FatherID: "B"},
	})
}

// cousinGraph builds an anchor X whose parents F and M are half-siblings
// sharing the father G. X has one child K.
//
//	      G
//	     / \
//	    F   M
//	     \ /
//	      X
//	      |
//	      K
func cousinGraph() *family.Graph {
	return family.NewGraph([]family.Person{
		{ID: "G", Name: "Gideon"},
		{ID: "F", Name: "Frank", FatherID: "G", SpouseIDs: []string{"M"}},
		{ID: "M", Name: "Maud", FatherID: "G"},
		{ID: "X", Name: "Xavier", FatherID: "F", MotherID: "M"},
		{ID: "K", Name: "Kit", FatherID: "X"},
	})
}

// cyclicGraph is malformed input: X and Y are each other's father and Z is
// its own father.
func cyclicGraph() *family.Graph {
	return family.NewGraph([]family.Person{
		{ID: "X", FatherID: "Y", Collections: []string{"loop"}},
		{ID: "Y", FatherID: "X", ChildIDs: []string{"X"}},
		{ID: "Z", FatherID: "Z", SpouseIDs: []string{"Z"}},
	})
}

func mustCompute(t *testing.T, g *family.Graph, cfg Config) *Partitioning {
	t.Helper()
	p, err := Compute(g, cfg)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

func roles(p *Partitioning) []string {
	out := make([]string, len(p.Partitions))
	for i, part := range p.Partitions {
		out[i] = part.Role
	}
	return out
}

package partition

import (
	"errors"
	"testing"

	"github.com/dusk-indust/famtree/internal/family"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_NilConfig(t *testing.T) {
	_, err := Compute(chainGraph(), nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	var nilPtr *LineageConfig
	_, err = Compute(chainGraph(), nilPtr)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestCompute_ValidationNamesFields(t *testing.T) {
	_, err := Compute(chainGraph(), GenerationRangeConfig{})
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "RootID")
	assert.Contains(t, err.Error(), "GenerationsPerPartition")

	_, err = Compute(chainGraph(), GenerationRangeConfig{RootID: "C", GenerationsPerPartition: 1, Direction: "sideways"})
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "Direction")

	_, err = Compute(chainGraph(), CollectionConfig{BridgeHandling: "triplicate"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestCompute_PointerConfig(t *testing.T) {
	byValue := mustCompute(t, chainGraph(), LineageConfig{StartID: "C", EndID: "A"})
	byPtr := mustCompute(t, chainGraph(), &LineageConfig{StartID: "C", EndID: "A"})
	assert.Equal(t, byValue, byPtr)
}

func TestCompute_MissingReferenceIDs(t *testing.T) {
	g := chainGraph()
	tests := []struct {
		name string
		cfg  Config
		role string
	}{
		{"generation root", GenerationRangeConfig{RootID: "nobody", GenerationsPerPartition: 1}, "root"},
		{"branch anchor", BranchConfig{AnchorID: "nobody", Paternal: true}, "anchor"},
		{"lineage start", LineageConfig{StartID: "nobody", EndID: "A"}, "start"},
		{"lineage end", LineageConfig{StartID: "A", EndID: "nobody"}, "end"},
		{"ancestor-descendant root", AncestorDescendantConfig{RootID: "nobody"}, "root"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compute(g, tt.cfg)
			require.Error(t, err)
			assert.Nil(t, p, "no partial result on configuration errors")
			assert.ErrorIs(t, err, ErrPersonNotFound)

			var nf *NotFoundError
			require.True(t, errors.As(err, &nf))
			assert.Equal(t, tt.role, nf.Role)
			assert.Equal(t, "nobody", nf.ID)
			assert.Equal(t, tt.role+" person not found: nobody", err.Error())
		})
	}
}

// allConfigs returns one config per strategy, all rooted at id.
func allConfigs(id string) []Config {
	return []Config{
		GenerationRangeConfig{RootID: id, GenerationsPerPartition: 1},
		GenerationRangeConfig{RootID: id, GenerationsPerPartition: 2, Direction: DirectionAncestors},
		BranchConfig{AnchorID: id, Paternal: true, Maternal: true, Descendant: true},
		LineageConfig{StartID: id, EndID: id, IncludeSpouses: true, IncludeSiblings: true},
		CollectionConfig{Collections: []string{"loop", "none"}},
		AncestorDescendantConfig{RootID: id, IncludeSpouses: true},
		SurnameConfig{Surnames: []string{"X"}, IncludeSpouses: true, HandleVariants: true},
	}
}

func TestCompute_CycleSafety(t *testing.T) {
	g := cyclicGraph()
	for _, root := range []string{"X", "Y", "Z"} {
		for _, cfg := range allConfigs(root) {
			p, err := Compute(g, cfg)
			require.NoError(t, err, "%s from %s", cfg.Strategy(), root)

			for _, part := range p.Partitions {
				seen := make(map[string]bool)
				for _, id := range part.IDs() {
					assert.False(t, seen[id], "%s: %s listed twice in %s", cfg.Strategy(), id, part.Label)
					seen[id] = true
					assert.True(t, g.Has(id))
				}
			}
			assert.LessOrEqual(t, p.TotalPeople, g.Len())
		}
	}
}

func TestCompute_Deterministic(t *testing.T) {
	people := cousinGraph().People()
	reversed := make([]family.Person, len(people))
	for i, p := range people {
		reversed[len(people)-1-i] = p
	}
	g1 := family.NewGraph(people)
	g2 := family.NewGraph(reversed)

	for _, cfg := range allConfigs("X") {
		first := mustCompute(t, g1, cfg)
		second := mustCompute(t, g1, cfg)
		shuffled := mustCompute(t, g2, cfg)
		assert.Equal(t, first, second, "%s", cfg.Strategy())
		assert.Equal(t, first, shuffled, "%s", cfg.Strategy())
	}
}

func TestSummary_MatchesPartitioning(t *testing.T) {
	g := family.NewGraph([]family.Person{
		{ID: "p1", Collections: []string{"a"}},
		{ID: "p2", Collections: []string{"a", "b"}},
		{ID: "p3", Collections: []string{"b"}},
	})
	p := mustCompute(t, g, CollectionConfig{Collections: []string{"a", "b"}})

	s := p.Summary()
	assert.Equal(t, StrategyCollection, s.Strategy)
	assert.Equal(t, 3, s.TotalPeople)
	assert.Equal(t, 4, s.MemberSlots)
	assert.Equal(t, 1, s.BridgePeople)
	require.Len(t, s.Partitions, 2)
	for i, ps := range s.Partitions {
		assert.Equal(t, p.Partitions[i].Label, ps.Label)
		assert.Equal(t, p.Partitions[i].Len(), ps.Count)
		assert.Equal(t, 1, ps.Bridges)
	}
}

func TestPartitioning_LookupAndIndex(t *testing.T) {
	p := mustCompute(t, cousinGraph(), BranchConfig{AnchorID: "X", Paternal: true, Maternal: true, Descendant: true})

	i, ok := p.Lookup("M")
	require.True(t, ok)
	assert.Equal(t, "maternal", p.Partitions[i].Role)

	_, ok = p.Lookup("nobody")
	assert.False(t, ok)

	idx := p.Index()
	assert.Equal(t, []int{0}, idx["X"])
	assert.Equal(t, []int{2}, idx["K"])
}

package partition

import (
	"testing"

	"github.com/dusk-indust/famtree/internal/family"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineage_SamePerson(t *testing.T) {
	p := mustCompute(t, chainGraph(), LineageConfig{StartID: "A", EndID: "A"})

	require.Len(t, p.Partitions, 1)
	assert.Equal(t, []string{"A"}, p.Partitions[0].IDs())
	assert.Equal(t, 1, p.TotalPeople)
}

func TestLineage_DirectLine(t *testing.T) {
	p := mustCompute(t, chainGraph(), LineageConfig{StartID: "C", EndID: "A"})

	require.Len(t, p.Partitions, 1)
	assert.Equal(t, "lineage", p.Partitions[0].Role)
	assert.Equal(t, []string{"C", "B", "A"}, p.Partitions[0].IDs())
}

func TestLineage_SpousesAndSiblings(t *testing.T) {
	g := family.NewGraph([]family.Person{
		{ID: "gp", SpouseIDs: []string{"gm"}},
		{ID: "gm"},
		{ID: "p", FatherID: "gp"},
		{ID: "aunt", FatherID: "gp"},
		{ID: "c", FatherID: "p"},
	})
	p := mustCompute(t, g, LineageConfig{
		StartID:         "c",
		EndID:           "gp",
		IncludeSpouses:  true,
		IncludeSiblings: true,
	})

	assert.Equal(t, []string{"c", "p", "gp", "gm", "aunt"}, p.Partitions[0].IDs())
}

func TestLineage_NoPathIsWarning(t *testing.T) {
	g := family.NewGraph([]family.Person{
		{ID: "gp"},
		{ID: "u", Name: "Uncle", FatherID: "gp"},
		{ID: "p", Name: "Parent", FatherID: "gp"},
	})
	p, err := Compute(g, LineageConfig{StartID: "u", EndID: "p"})
	require.NoError(t, err)
	assert.Empty(t, p.Partitions)
	assert.Zero(t, p.TotalPeople)
	assert.Equal(t, []string{"no path found between Uncle and Parent"}, p.Warnings)
}

package navigation

import (
	"testing"

	"github.com/dusk-indust/famtree/internal/family"
	"github.com/dusk-indust/famtree/internal/partition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compute(t *testing.T, g *family.Graph, cfg partition.Config) *partition.Partitioning {
	t.Helper()
	p, err := partition.Compute(g, cfg)
	require.NoError(t, err)
	return p
}

// cousinGraph: X's parents F and M share the father G; X has a child K.
func cousinGraph() *family.Graph {
	return family.NewGraph([]family.Person{
		{ID: "G", Name: "Gideon"},
		{ID: "F", Name: "Frank", FatherID: "G", SpouseIDs: []string{"M"}},
		{ID: "M", Name: "Maud", FatherID: "G"},
		{ID: "X", Name: "Xavier", FatherID: "F", MotherID: "M"},
		{ID: "K", Name: "Kit", FatherID: "X"},
	})
}

func branchPartitioning(t *testing.T, g *family.Graph) *partition.Partitioning {
	t.Helper()
	return compute(t, g, partition.BranchConfig{AnchorID: "X", Paternal: true, Maternal: true, Descendant: true})
}

func TestStubs_CrossPartitionRelatives(t *testing.T) {
	g := cousinGraph()
	p := branchPartitioning(t, g)

	stubs := Stubs(g, p)
	require.Len(t, stubs, 3)

	assert.Equal(t, []Stub{
		{PersonID: "M", Name: "Maud", Target: 1, TargetLabel: "Maternal line", Relation: LinkParent, From: "X"},
		{PersonID: "K", Name: "Kit", Target: 2, TargetLabel: "Descendants", Relation: LinkChild, From: "X"},
	}, stubs[0], "M reached again through F and G is stubbed once")

	assert.Equal(t, []Stub{
		{PersonID: "G", Name: "Gideon", Target: 0, TargetLabel: "Paternal line", Relation: LinkParent, From: "M"},
		{PersonID: "X", Name: "Xavier", Target: 0, TargetLabel: "Paternal line", Relation: LinkChild, From: "M"},
		{PersonID: "F", Name: "Frank", Target: 0, TargetLabel: "Paternal line", Relation: LinkSpouse, From: "M"},
	}, stubs[1])

	assert.Equal(t, []Stub{
		{PersonID: "X", Name: "Xavier", Target: 0, TargetLabel: "Paternal line", Relation: LinkParent, From: "K"},
	}, stubs[2])
}

func TestStubs_IgnoresPeopleOutsideEveryPartition(t *testing.T) {
	g := family.NewGraph([]family.Person{
		{ID: "A"},
		{ID: "B", FatherID: "A"},
		{ID: "C", FatherID: "B"},
	})
	p := compute(t, g, partition.LineageConfig{StartID: "C", EndID: "B"})

	stubs := Stubs(g, p)
	require.Len(t, stubs, 1)
	assert.Empty(t, stubs[0], "A is in no partition")
}

func TestBuildOverview(t *testing.T) {
	g := cousinGraph()
	p := branchPartitioning(t, g)

	ov := BuildOverview(g, p)
	assert.Equal(t, []OverviewNode{
		{Index: 0, Label: "Paternal line", Role: "paternal", Count: 3},
		{Index: 1, Label: "Maternal line", Role: "maternal", Count: 1},
		{Index: 2, Label: "Descendants", Role: "descendant", Count: 1},
	}, ov.Nodes)
	// G->M, M->X and the F-M marriage join 0 and 1; X->K joins 0 and 2.
	assert.Equal(t, []OverviewLink{
		{A: 0, B: 1, Edges: 3},
		{A: 0, B: 2, Edges: 1},
	}, ov.Links)
}

func TestBuildOverview_SharedMemberCountsOncePerEdge(t *testing.T) {
	g := family.NewGraph([]family.Person{
		{ID: "p1", Collections: []string{"a"}},
		{ID: "p2", FatherID: "p1", Collections: []string{"a", "b"}},
	})
	p := compute(t, g, partition.CollectionConfig{Collections: []string{"a", "b"}})

	ov := BuildOverview(g, p)
	// p1 -> p2 stays inside a, but crosses b's boundary towards a.
	assert.Equal(t, []OverviewLink{{A: 0, B: 1, Edges: 1}}, ov.Links)
}

func TestSynthesize_Options(t *testing.T) {
	g := cousinGraph()
	p := branchPartitioning(t, g)

	nav := Synthesize(g, p, Options{})
	assert.Nil(t, nav.Stubs)
	assert.Nil(t, nav.Overview)
	assert.Nil(t, nav.StubsFor(0))

	nav = Synthesize(g, p, Options{Stubs: true, Overview: true})
	assert.Len(t, nav.StubsFor(1), 3)
	assert.Nil(t, nav.StubsFor(7))
	require.NotNil(t, nav.Overview)
	assert.Len(t, nav.Overview.Nodes, 3)

	var none *Navigation
	assert.Nil(t, none.StubsFor(0))
}

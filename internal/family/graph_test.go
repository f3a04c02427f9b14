package family

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGraph_ReconcilesBothSides(t *testing.T) {
	// Parent link recorded only on the child, child link recorded only on
	// the parent, spouse recorded on one side.
	g := NewGraph([]Person{
		{ID: "dad", Name: "Dad", SpouseIDs: []string{"mom"}},
		{ID: "mom", Name: "Mom", ChildIDs: []string{"kid2"}},
		{ID: "kid1", FatherID: "dad"},
		{ID: "kid2"},
	})

	assert.Equal(t, []string{"dad"}, g.Parents("kid1"))
	assert.Equal(t, []string{"mom"}, g.Parents("kid2"))
	assert.Equal(t, []string{"kid1"}, g.Children("dad"))
	assert.Equal(t, []string{"kid2"}, g.Children("mom"))
	assert.Equal(t, []string{"mom"}, g.Spouses("dad"))
	assert.Equal(t, []string{"dad"}, g.Spouses("mom"))
}

func TestNewGraph_DropsDanglingAndSelfReferences(t *testing.T) {
	g := NewGraph([]Person{
		{ID: "a", FatherID: "ghost", MotherID: "a", SpouseIDs: []string{"a", "nobody"}, ChildIDs: []string{"a"}},
	})

	assert.Empty(t, g.Parents("a"))
	assert.Empty(t, g.Children("a"))
	assert.Empty(t, g.Spouses("a"))
	_, ok := g.Father("a")
	assert.False(t, ok, "dangling father must not resolve")
	_, ok = g.Mother("a")
	assert.False(t, ok, "self mother must not resolve")
}

func TestNewGraph_DuplicateIDLaterWins(t *testing.T) {
	g := NewGraph([]Person{
		{ID: "x", Name: "First"},
		{ID: "x", Name: "Second"},
		{Name: "No id"},
	})

	require.Equal(t, 1, g.Len())
	assert.Equal(t, "Second", g.Name("x"))
	assert.Len(t, g.Warnings(), 2)
}

func TestGraph_AccessorsSorted(t *testing.T) {
	g := NewGraph([]Person{
		{ID: "p", ChildIDs: []string{"c3", "c1", "c2"}},
		{ID: "c1"}, {ID: "c2"}, {ID: "c3"},
	})

	assert.Equal(t, []string{"c1", "c2", "c3", "p"}, g.IDs())
	assert.Equal(t, []string{"c1", "c2", "c3"}, g.Children("p"))
}

func TestGraph_Edges(t *testing.T) {
	g := NewGraph([]Person{
		{ID: "a", SpouseIDs: []string{"b"}},
		{ID: "b", SpouseIDs: []string{"a"}},
		{ID: "c", FatherID: "a", MotherID: "b"},
	})

	edges := g.Edges()
	assert.ElementsMatch(t, []Edge{
		{SourceID: "a", TargetID: "c", Relation: RelationParent},
		{SourceID: "b", TargetID: "c", Relation: RelationParent},
		{SourceID: "a", TargetID: "b", Relation: RelationSpouse},
	}, edges)

	stats := g.Stats()
	assert.Equal(t, 3, stats.PersonCount)
	assert.Equal(t, 2, stats.ParentEdges)
	assert.Equal(t, 1, stats.SpouseEdges)
}

func TestGraph_FingerprintIgnoresInputOrder(t *testing.T) {
	people := []Person{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B", FatherID: "a"},
	}
	g1 := NewGraph(people)
	g2 := NewGraph([]Person{people[1], people[0]})
	g3 := NewGraph([]Person{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}})

	assert.Equal(t, g1.Fingerprint(), g2.Fingerprint())
	assert.NotEqual(t, g1.Fingerprint(), g3.Fingerprint())
}

func TestGraph_PeopleAreCopies(t *testing.T) {
	g := NewGraph([]Person{{ID: "a", Collections: []string{"x"}}})

	people := g.People()
	people[0].Collections[0] = "mutated"

	p, ok := g.Person("a")
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, p.Collections)
}

func TestSurnames_All(t *testing.T) {
	s := Surnames{Primary: "Smith", Maiden: "", Alternates: []string{"Smyth", ""}}
	assert.Equal(t, []string{"Smith", "Smyth"}, s.All())
}

package family

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// Graph is an immutable snapshot of a family tree. It is built once from a
// list of records and only read afterwards, so it is safe for concurrent use.
//
// Relationship accessors reconcile both sides of every recorded link and
// drop references to ids that are not part of the snapshot.
type Graph struct {
	people   map[string]*Person
	ids      []string
	parents  map[string][]string
	children map[string][]string
	spouses  map[string][]string
	warnings []string

	fpOnce      sync.Once
	fingerprint string
}

// NewGraph builds a Graph from people. When two records share an id the
// later one wins and a warning is kept.
func NewGraph(people []Person) *Graph {
	g := &Graph{
		people:   make(map[string]*Person, len(people)),
		parents:  make(map[string][]string),
		children: make(map[string][]string),
		spouses:  make(map[string][]string),
	}
	for _, p := range people {
		if p.ID == "" {
			g.warnings = append(g.warnings, fmt.Sprintf("skipped record %q without id", p.Name))
			continue
		}
		if _, dup := g.people[p.ID]; dup {
			g.warnings = append(g.warnings, fmt.Sprintf("duplicate id %s: later record wins", p.ID))
		}
		cp := clonePerson(p)
		g.people[p.ID] = &cp
	}

	g.ids = make([]string, 0, len(g.people))
	for id := range g.people {
		g.ids = append(g.ids, id)
	}
	sort.Strings(g.ids)

	parentSet := make(map[string]map[string]bool)
	childSet := make(map[string]map[string]bool)
	spouseSet := make(map[string]map[string]bool)
	link := func(set map[string]map[string]bool, from, to string) {
		if set[from] == nil {
			set[from] = make(map[string]bool)
		}
		set[from][to] = true
	}
	addParent := func(parent, child string) {
		if parent == "" || child == "" || parent == child {
			return
		}
		if g.people[parent] == nil || g.people[child] == nil {
			return
		}
		link(parentSet, child, parent)
		link(childSet, parent, child)
	}
	addSpouse := func(a, b string) {
		if a == "" || b == "" || a == b {
			return
		}
		if g.people[a] == nil || g.people[b] == nil {
			return
		}
		link(spouseSet, a, b)
		link(spouseSet, b, a)
	}

	for _, id := range g.ids {
		p := g.people[id]
		addParent(p.FatherID, id)
		addParent(p.MotherID, id)
		for _, c := range p.ChildIDs {
			addParent(id, c)
		}
		for _, s := range p.SpouseIDs {
			addSpouse(id, s)
		}
	}

	g.parents = sortedAdjacency(parentSet)
	g.children = sortedAdjacency(childSet)
	g.spouses = sortedAdjacency(spouseSet)
	return g
}

// Person returns the record for id.
func (g *Graph) Person(id string) (*Person, bool) {
	p, ok := g.people[id]
	return p, ok
}

// Has reports whether id is part of the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.people[id]
	return ok
}

// Name returns the display name for id, or the id itself when unknown.
func (g *Graph) Name(id string) string {
	if p, ok := g.people[id]; ok {
		return p.DisplayName()
	}
	return id
}

// IDs returns every person id in ascending order. Callers must not modify
// the returned slice.
func (g *Graph) IDs() []string {
	return g.ids
}

// Len returns the number of people in the graph.
func (g *Graph) Len() int {
	return len(g.ids)
}

// Parents returns the parents of id in ascending order.
func (g *Graph) Parents(id string) []string {
	return g.parents[id]
}

// Children returns the children of id in ascending order.
func (g *Graph) Children(id string) []string {
	return g.children[id]
}

// Spouses returns the spouses of id in ascending order.
func (g *Graph) Spouses(id string) []string {
	return g.spouses[id]
}

// Father returns the recorded father of id if he is part of the graph.
func (g *Graph) Father(id string) (string, bool) {
	p, ok := g.people[id]
	if !ok || p.FatherID == "" || p.FatherID == id || !g.Has(p.FatherID) {
		return "", false
	}
	return p.FatherID, true
}

// Mother returns the recorded mother of id if she is part of the graph.
func (g *Graph) Mother(id string) (string, bool) {
	p, ok := g.people[id]
	if !ok || p.MotherID == "" || p.MotherID == id || !g.Has(p.MotherID) {
		return "", false
	}
	return p.MotherID, true
}

// Edges returns every parent and spouse edge. Parent edges point from parent
// to child; spouse edges are listed once with the smaller id as source.
func (g *Graph) Edges() []Edge {
	var out []Edge
	for _, id := range g.ids {
		for _, c := range g.children[id] {
			out = append(out, Edge{SourceID: id, TargetID: c, Relation: RelationParent})
		}
		for _, s := range g.spouses[id] {
			if id < s {
				out = append(out, Edge{SourceID: id, TargetID: s, Relation: RelationSpouse})
			}
		}
	}
	return out
}

// Warnings returns problems noticed while building the graph.
func (g *Graph) Warnings() []string {
	return g.warnings
}

// Stats counts people and edges in the snapshot.
func (g *Graph) Stats() GraphStats {
	stats := GraphStats{PersonCount: len(g.ids)}
	tags := make(map[string]bool)
	for _, id := range g.ids {
		stats.ParentEdges += len(g.children[id])
		stats.SpouseEdges += len(g.spouses[id])
		for _, t := range g.people[id].Collections {
			tags[t] = true
		}
	}
	stats.SpouseEdges /= 2
	stats.Collections = len(tags)
	return stats
}

// Fingerprint returns a stable content hash of the graph. Two graphs built
// from the same records in any order share a fingerprint.
func (g *Graph) Fingerprint() string {
	g.fpOnce.Do(func() {
		h := sha256.New()
		enc := json.NewEncoder(h)
		for _, id := range g.ids {
			// Encoding a plain struct cannot fail.
			_ = enc.Encode(g.people[id])
		}
		g.fingerprint = hex.EncodeToString(h.Sum(nil))
	})
	return g.fingerprint
}

// People returns copies of every record in id order.
func (g *Graph) People() []Person {
	out := make([]Person, 0, len(g.ids))
	for _, id := range g.ids {
		out = append(out, clonePerson(*g.people[id]))
	}
	return out
}

// sortedAdjacency flattens set-valued adjacency into sorted slices.
func sortedAdjacency(set map[string]map[string]bool) map[string][]string {
	out := make(map[string][]string, len(set))
	for k, vs := range set {
		list := make([]string, 0, len(vs))
		for v := range vs {
			list = append(list, v)
		}
		sort.Strings(list)
		out[k] = list
	}
	return out
}

func clonePerson(p Person) Person {
	p.SpouseIDs = append([]string(nil), p.SpouseIDs...)
	p.ChildIDs = append([]string(nil), p.ChildIDs...)
	p.Collections = append([]string(nil), p.Collections...)
	p.Surnames.Alternates = append([]string(nil), p.Surnames.Alternates...)
	return p
}

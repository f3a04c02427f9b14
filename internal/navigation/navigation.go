// Package navigation derives cross-references between the partitions of a
// finished Partitioning: stub nodes pointing at relatives that live in
// another partition, and an overview of how partitions connect.
//
// Synthesis needs every partition to be known, so it runs once after
// partitioning and before any artifact is emitted.
package navigation

import (
	"sort"

	"github.com/dusk-indust/famtree/internal/family"
	"github.com/dusk-indust/famtree/internal/partition"
)

// Link is the relationship of a stubbed person to the member it hangs off.
type Link string

const (
	LinkParent Link = "parent" // the stubbed person is a parent of From
	LinkChild  Link = "child"  // the stubbed person is a child of From
	LinkSpouse Link = "spouse"
)

// Options selects what Synthesize produces.
type Options struct {
	Stubs    bool `json:"stubs" yaml:"stubs"`
	Overview bool `json:"overview" yaml:"overview"`
}

// Stub is a placeholder node for a relative of a member who belongs to a
// different partition.
type Stub struct {
	PersonID    string `json:"personId"`
	Name        string `json:"name"`
	Target      int    `json:"target"`
	TargetLabel string `json:"targetLabel"`
	Relation    Link   `json:"relation"`
	From        string `json:"from"`
}

// OverviewNode is one partition in the overview.
type OverviewNode struct {
	Index int    `json:"index"`
	Label string `json:"label"`
	Role  string `json:"role"`
	Count int    `json:"count"`
}

// OverviewLink connects two partitions that share boundary-crossing edges.
// A is always the smaller index.
type OverviewLink struct {
	A     int `json:"a"`
	B     int `json:"b"`
	Edges int `json:"edges"`
}

// Overview summarizes the partitioning as a graph of partitions.
type Overview struct {
	Nodes []OverviewNode `json:"nodes"`
	Links []OverviewLink `json:"links"`
}

// Navigation is the output of Synthesize.
type Navigation struct {
	// Stubs holds the stubs of every partition, by partition index. It is nil
	// when stubs were not requested.
	Stubs [][]Stub `json:"stubs,omitempty"`

	Overview *Overview `json:"overview,omitempty"`
}

// StubsFor returns the stubs of partition i.
func (n *Navigation) StubsFor(i int) []Stub {
	if n == nil || i < 0 || i >= len(n.Stubs) {
		return nil
	}
	return n.Stubs[i]
}

// Synthesize builds the navigation aids requested by opts.
func Synthesize(g *family.Graph, p *partition.Partitioning, opts Options) *Navigation {
	nav := &Navigation{}
	if opts.Stubs {
		nav.Stubs = Stubs(g, p)
	}
	if opts.Overview {
		nav.Overview = BuildOverview(g, p)
	}
	return nav
}

// Stubs computes, for every partition, one stub per relative of a member who
// is absent from that partition but present in another. Each relative is
// stubbed at most once per partition, off the first member that reaches it.
func Stubs(g *family.Graph, p *partition.Partitioning) [][]Stub {
	idx := p.Index()
	out := make([][]Stub, len(p.Partitions))
	for i, part := range p.Partitions {
		stubbed := make(map[string]bool)
		for _, m := range part.Members {
			for _, rel := range relatives(g, m.ID) {
				if stubbed[rel.id] || part.Contains(rel.id) {
					continue
				}
				homes, ok := idx[rel.id]
				if !ok {
					continue
				}
				stubbed[rel.id] = true
				target := homes[0]
				out[i] = append(out[i], Stub{
					PersonID:    rel.id,
					Name:        g.Name(rel.id),
					Target:      target,
					TargetLabel: p.Partitions[target].Label,
					Relation:    rel.link,
					From:        m.ID,
				})
			}
		}
	}
	return out
}

// BuildOverview produces one node per partition and one link per pair of
// partitions joined by at least one boundary-crossing edge.
func BuildOverview(g *family.Graph, p *partition.Partitioning) *Overview {
	ov := &Overview{
		Nodes: make([]OverviewNode, len(p.Partitions)),
		Links: []OverviewLink{},
	}
	for i, part := range p.Partitions {
		ov.Nodes[i] = OverviewNode{Index: i, Label: part.Label, Role: part.Role, Count: part.Len()}
	}

	idx := p.Index()
	type pair struct{ a, b int }
	counts := make(map[pair]int)
	for _, e := range g.Edges() {
		from, to := idx[e.SourceID], idx[e.TargetID]
		if len(from) == 0 || len(to) == 0 {
			continue
		}
		// The edge crosses the boundary of every partition holding exactly
		// one of its ends; each partition pair is counted once per edge.
		seen := make(map[pair]bool)
		cross := func(xs, ys []int) {
			for _, a := range xs {
				if contains(ys, a) {
					continue
				}
				for _, b := range ys {
					k := pair{min(a, b), max(a, b)}
					if !seen[k] {
						seen[k] = true
						counts[k]++
					}
				}
			}
		}
		cross(from, to)
		cross(to, from)
	}

	for k, n := range counts {
		ov.Links = append(ov.Links, OverviewLink{A: k.a, B: k.b, Edges: n})
	}
	sort.Slice(ov.Links, func(i, j int) bool {
		if ov.Links[i].A != ov.Links[j].A {
			return ov.Links[i].A < ov.Links[j].A
		}
		return ov.Links[i].B < ov.Links[j].B
	})
	return ov
}

type relative struct {
	id   string
	link Link
}

// relatives lists parents, then children, then spouses of id.
func relatives(g *family.Graph, id string) []relative {
	var out []relative
	for _, r := range g.Parents(id) {
		out = append(out, relative{r, LinkParent})
	}
	for _, r := range g.Children(id) {
		out = append(out, relative{r, LinkChild})
	}
	for _, r := range g.Spouses(id) {
		out = append(out, relative{r, LinkSpouse})
	}
	return out
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// Package export turns partitions into diagram artifacts and writes them to
// a Sink.
package export

import (
	"fmt"

	"github.com/dusk-indust/famtree/internal/family"
	"github.com/dusk-indust/famtree/internal/navigation"
	"github.com/dusk-indust/famtree/internal/partition"
)

// Node is one person drawn in a partition diagram.
type Node struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Years  string `json:"years,omitempty"`
	Bridge bool   `json:"bridge,omitempty"`

	// Stub is set for relatives that live in another partition.
	Stub *navigation.Stub `json:"stub,omitempty"`
}

// Edge is a parent or spouse link between two payload nodes.
type Edge struct {
	Source   string          `json:"source"`
	Target   string          `json:"target"`
	Relation family.Relation `json:"relation"`

	// Stub is set when either end is a stub node.
	Stub bool `json:"stub,omitempty"`
}

// Payload is the resolved node and edge data of one partition.
type Payload struct {
	Index int    `json:"index"`
	Label string `json:"label"`
	Role  string `json:"role"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// BuildPayload resolves partition index of p into nodes and edges. Members
// come first in partition order, followed by the partition's stubs. Edges
// between two stubs are left out.
func BuildPayload(g *family.Graph, p *partition.Partitioning, nav *navigation.Navigation, index int) (Payload, error) {
	if index < 0 || index >= len(p.Partitions) {
		return Payload{}, fmt.Errorf("partition index %d out of range", index)
	}
	part := p.Partitions[index]
	out := Payload{
		Index: index,
		Label: part.Label,
		Role:  part.Role,
		Nodes: make([]Node, 0, part.Len()),
		Edges: []Edge{},
	}

	member := make(map[string]bool, part.Len())
	for _, m := range part.Members {
		member[m.ID] = true
		n := Node{ID: m.ID, Name: g.Name(m.ID), Bridge: m.Bridge}
		if rec, ok := g.Person(m.ID); ok {
			n.Years = lifespan(rec.BirthYear, rec.DeathYear)
		}
		out.Nodes = append(out.Nodes, n)
	}

	stub := make(map[string]bool)
	for _, s := range nav.StubsFor(index) {
		stub[s.PersonID] = true
		out.Nodes = append(out.Nodes, Node{ID: s.PersonID, Name: s.Name, Stub: &s})
	}

	for _, e := range g.Edges() {
		srcMember, dstMember := member[e.SourceID], member[e.TargetID]
		if !srcMember && !dstMember {
			continue
		}
		if !(srcMember || stub[e.SourceID]) || !(dstMember || stub[e.TargetID]) {
			continue
		}
		out.Edges = append(out.Edges, Edge{
			Source:   e.SourceID,
			Target:   e.TargetID,
			Relation: e.Relation,
			Stub:     !srcMember || !dstMember,
		})
	}
	return out, nil
}

func lifespan(birth, death int) string {
	switch {
	case birth != 0 && death != 0:
		return fmt.Sprintf("%d-%d", birth, death)
	case birth != 0:
		return fmt.Sprintf("b. %d", birth)
	case death != 0:
		return fmt.Sprintf("d. %d", death)
	default:
		return ""
	}
}

package partition

import (
	"github.com/dusk-indust/famtree/internal/family"
	"github.com/dusk-indust/famtree/internal/traverse"
)

// ancestorDescendant splits the tree into exactly two partitions around the
// root. The root is a member of the descendant partition only.
func ancestorDescendant(g *family.Graph, c AncestorDescendantConfig) (*Partitioning, error) {
	if !g.Has(c.RootID) {
		return nil, notFound("root", c.RootID)
	}

	up := newBuilder("ancestors", "ancestors")
	up.addAll(traverse.Ancestors(g, c.RootID, c.MaxAncestorGenerations))

	down := newBuilder("descendants", "descendants")
	down.add(c.RootID)
	down.addAll(traverse.Descendants(g, c.RootID, c.MaxDescendantGenerations))

	if c.IncludeSpouses {
		addSpouses(g, up, c.RootID)
		addSpouses(g, down, "")
	}
	return finish(StrategyAncestorDescendant, []*builder{up, down}, nil), nil
}

// addSpouses appends the spouses of every current member of b, in member
// order. The id skip is never added.
func addSpouses(g *family.Graph, b *builder, skip string) {
	members := append([]string(nil), b.ids...)
	for _, id := range members {
		for _, s := range g.Spouses(id) {
			if s != skip {
				b.add(s)
			}
		}
	}
}

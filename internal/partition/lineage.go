package partition

import (
	"fmt"

	"github.com/dusk-indust/famtree/internal/family"
	"github.com/dusk-indust/famtree/internal/traverse"
)

// lineage builds a single partition from the direct line between start and
// end, optionally widened with spouses and siblings of the people on it.
func lineage(g *family.Graph, c LineageConfig) (*Partitioning, error) {
	if !g.Has(c.StartID) {
		return nil, notFound("start", c.StartID)
	}
	if !g.Has(c.EndID) {
		return nil, notFound("end", c.EndID)
	}

	path, ok := traverse.ShortestPath(g, c.StartID, c.EndID)
	if !ok {
		warning := fmt.Sprintf("no path found between %s and %s", g.Name(c.StartID), g.Name(c.EndID))
		return finish(StrategyLineage, nil, []string{warning}), nil
	}

	b := newBuilder("Lineage", "lineage")
	b.addAll(path)
	if c.IncludeSpouses {
		addSpouses(g, b, "")
	}
	if c.IncludeSiblings {
		for _, id := range path {
			for _, parent := range g.Parents(id) {
				b.addAll(g.Children(parent))
			}
		}
	}
	return finish(StrategyLineage, []*builder{b}, nil), nil
}

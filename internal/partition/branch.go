package partition

import (
	"fmt"

	"github.com/dusk-indust/famtree/internal/family"
	"github.com/dusk-indust/famtree/internal/traverse"
)

// branches builds one partition per requested branch of the anchor. A
// person reachable through several branches stays in the first one, in the
// fixed order paternal, maternal, descendant. The anchor opens the first
// requested branch. The paternal branch is the father with all of his
// ancestors, both parents at every level, not only the father-of-father
// chain; likewise for the maternal branch. That is what lets an ancestor
// shared by both parents land in the paternal branch only.
func branches(g *family.Graph, c BranchConfig) (*Partitioning, error) {
	if !g.Has(c.AnchorID) {
		return nil, notFound("anchor", c.AnchorID)
	}

	type branchSpec struct {
		enabled bool
		label   string
		role    string
		collect func() ([]string, string)
	}
	specs := []branchSpec{
		{c.Paternal, "Paternal line", "paternal", func() ([]string, string) {
			father, ok := g.Father(c.AnchorID)
			if !ok {
				return nil, fmt.Sprintf("no father recorded for %s", g.Name(c.AnchorID))
			}
			return lineFrom(g, father, c.MaxGenerations), ""
		}},
		{c.Maternal, "Maternal line", "maternal", func() ([]string, string) {
			mother, ok := g.Mother(c.AnchorID)
			if !ok {
				return nil, fmt.Sprintf("no mother recorded for %s", g.Name(c.AnchorID))
			}
			return lineFrom(g, mother, c.MaxGenerations), ""
		}},
		{c.Descendant, "Descendants", "descendant", func() ([]string, string) {
			ids := traverse.Descendants(g, c.AnchorID, c.MaxGenerations)
			if len(ids) == 0 {
				return nil, fmt.Sprintf("no descendants recorded for %s", g.Name(c.AnchorID))
			}
			return ids, ""
		}},
	}

	var (
		builders []*builder
		warnings []string
	)
	assigned := make(map[string]bool)
	claim := func(b *builder, id string) {
		if assigned[id] {
			return
		}
		assigned[id] = true
		b.add(id)
	}

	for _, spec := range specs {
		if !spec.enabled {
			continue
		}
		b := newBuilder(spec.label, spec.role)
		claim(b, c.AnchorID)
		ids, warning := spec.collect()
		if warning != "" {
			warnings = append(warnings, warning)
		}
		for _, id := range ids {
			claim(b, id)
		}
		builders = append(builders, b)
	}

	if len(builders) == 0 {
		warnings = append(warnings, "no branches selected")
	}
	return finish(StrategyBranch, builders, warnings), nil
}

// lineFrom returns start plus its ancestors such that nobody is more than
// maxGenerations generations above the anchor whose parent start is.
// maxGenerations <= 0 means unbounded.
func lineFrom(g *family.Graph, start string, maxGenerations int) []string {
	switch {
	case maxGenerations == 1:
		return []string{start}
	case maxGenerations > 1:
		return traverse.LineClosure(g, start, maxGenerations-1)
	default:
		return traverse.LineClosure(g, start, traverse.Unlimited)
	}
}

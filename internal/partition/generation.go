package partition

import (
	"fmt"

	"github.com/dusk-indust/famtree/internal/family"
	"github.com/dusk-indust/famtree/internal/traverse"
)

// generationRange buckets every person reachable from the root into
// partitions that each span GenerationsPerPartition generations.
func generationRange(g *family.Graph, c GenerationRangeConfig) (*Partitioning, error) {
	if !g.Has(c.RootID) {
		return nil, notFound("root", c.RootID)
	}
	dir := c.Direction
	if dir == "" {
		dir = DirectionBoth
	}
	kind := traverse.EdgeBoth
	switch dir {
	case DirectionAncestors:
		kind = traverse.EdgeParents
	case DirectionDescendants:
		kind = traverse.EdgeChildren
	}

	width := c.GenerationsPerPartition
	walk := traverse.Walk(g, c.RootID, kind, traverse.Unlimited)

	buckets := make(map[int][]string)
	for _, id := range walk.Order {
		k := bucketOf(walk.Distance[id], width, dir)
		buckets[k] = append(buckets[k], id)
	}

	var builders []*builder
	for _, k := range sortedKeys(buckets) {
		ids := buckets[k]
		traverse.SortByDistance(ids, walk.Distance)
		lo, hi := bucketRange(k, width, dir)
		b := newBuilder(generationLabel(lo, hi), generationRole(lo, hi))
		b.addAll(ids)
		builders = append(builders, b)
	}

	var warnings []string
	if len(walk.Order) == 1 {
		warnings = append(warnings, fmt.Sprintf("%s has no recorded relatives in direction %s", g.Name(c.RootID), dir))
	}
	return finish(StrategyGenerationRange, builders, warnings), nil
}

// bucketOf maps a signed generation distance to a bucket index. Bucket
// indices sort in the same order as the generations they hold.
func bucketOf(d, width int, dir Direction) int {
	switch {
	case dir == DirectionAncestors:
		// [-(w-1)..0] is bucket 0, [-(2w-1)..-w] is bucket -1, ...
		return -((-d) / width)
	case d >= 0:
		return d / width
	default:
		// [-w..-1] is bucket -1, [-2w..-w-1] is bucket -2, ...
		return -1 - ((-d - 1) / width)
	}
}

// bucketRange returns the nominal generation range of bucket k.
func bucketRange(k, width int, dir Direction) (lo, hi int) {
	if dir == DirectionAncestors {
		hi = k * width
		return hi - (width - 1), hi
	}
	lo = k * width
	return lo, lo + width - 1
}

func generationRole(lo, hi int) string {
	if lo == hi {
		return fmt.Sprintf("gen:%d", lo)
	}
	return fmt.Sprintf("gen:%d..%d", lo, hi)
}

func generationLabel(lo, hi int) string {
	if lo == hi {
		return fmt.Sprintf("Generation %d", lo)
	}
	return fmt.Sprintf("Generations %d to %d", lo, hi)
}

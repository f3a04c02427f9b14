// Package traverse holds the graph walks shared by every partitioning
// strategy. Every walk keeps a visited set that is consulted before an edge
// is followed, so cyclic or self-referential records terminate.
package traverse

import (
	"sort"

	"github.com/dusk-indust/famtree/internal/family"
)

// EdgeKind selects which relationship edges a walk may follow.
type EdgeKind string

const (
	EdgeParents  EdgeKind = "parents"  // towards ancestors, negative distances
	EdgeChildren EdgeKind = "children" // towards descendants, positive distances
	EdgeBoth     EdgeKind = "both"
)

// Unlimited disables the depth cap of a walk.
const Unlimited = 0

// Result is the outcome of a breadth-first walk.
type Result struct {
	// Distance is the signed generation distance of every visited id.
	Distance map[string]int

	// Order lists visited ids in discovery order, root first.
	Order []string

	// Via is the predecessor chosen for every visited id except the root.
	Via map[string]string
}

// Walk performs a breadth-first walk from root following only edges of the
// given kind, up to maxDepth generations (<= 0 means unbounded).
//
// Each frontier is expanded in ascending id order and neighbours are visited
// in ascending id order, so the first predecessor to reach a node at a given
// depth is always the smallest id. The result is identical across runs.
//
// With EdgeBoth the ancestor and descendant walks run separately; collateral
// relatives are not reached through a parent-then-child hop. A node found by
// both walks (only possible on cyclic data) keeps the smaller absolute
// distance, preferring the ancestor side on a tie.
func Walk(g *family.Graph, root string, kind EdgeKind, maxDepth int) Result {
	if !g.Has(root) {
		return Result{Distance: map[string]int{}, Via: map[string]string{}}
	}
	switch kind {
	case EdgeParents:
		return walkOne(g, root, g.Parents, -1, maxDepth)
	case EdgeChildren:
		return walkOne(g, root, g.Children, +1, maxDepth)
	default:
		return mergeWalks(
			walkOne(g, root, g.Parents, -1, maxDepth),
			walkOne(g, root, g.Children, +1, maxDepth),
		)
	}
}

// DistanceFrom returns the signed generation distance from root for every
// reachable id: ancestors negative, descendants positive, root zero.
func DistanceFrom(g *family.Graph, root string, kind EdgeKind, maxDepth int) map[string]int {
	return Walk(g, root, kind, maxDepth).Distance
}

// Ancestors returns every ancestor of id up to maxDepth generations in
// discovery order, excluding id itself.
func Ancestors(g *family.Graph, id string, maxDepth int) []string {
	return withoutRoot(Walk(g, id, EdgeParents, maxDepth).Order)
}

// Descendants returns every descendant of id up to maxDepth generations in
// discovery order, excluding id itself.
func Descendants(g *family.Graph, id string, maxDepth int) []string {
	return withoutRoot(Walk(g, id, EdgeChildren, maxDepth).Order)
}

// LineClosure returns start followed by every ancestor of start, walking at
// most maxDepth generations above start.
func LineClosure(g *family.Graph, start string, maxDepth int) []string {
	return Walk(g, start, EdgeParents, maxDepth).Order
}

// SortByDistance orders ids by ascending absolute distance, then by id.
func SortByDistance(ids []string, dist map[string]int) {
	sort.SliceStable(ids, func(i, j int) bool {
		di, dj := abs(dist[ids[i]]), abs(dist[ids[j]])
		if di != dj {
			return di < dj
		}
		return ids[i] < ids[j]
	})
}

// walkOne is a level-synchronous BFS along a single neighbour function.
func walkOne(g *family.Graph, root string, next func(string) []string, sign, maxDepth int) Result {
	res := Result{
		Distance: map[string]int{root: 0},
		Order:    []string{root},
		Via:      map[string]string{},
	}
	frontier := []string{root}
	for depth := 1; len(frontier) > 0; depth++ {
		if maxDepth > 0 && depth > maxDepth {
			break
		}
		var nextFrontier []string
		for _, id := range frontier {
			for _, nb := range next(id) {
				if _, seen := res.Distance[nb]; seen {
					continue
				}
				res.Distance[nb] = sign * depth
				res.Via[nb] = id
				res.Order = append(res.Order, nb)
				nextFrontier = append(nextFrontier, nb)
			}
		}
		sort.Strings(nextFrontier)
		frontier = nextFrontier
	}
	return res
}

// mergeWalks combines an ancestor walk and a descendant walk from the same
// root. Order lists the root, then ancestors, then descendants.
func mergeWalks(up, down Result) Result {
	res := Result{
		Distance: make(map[string]int, len(up.Distance)+len(down.Distance)),
		Order:    make([]string, 0, len(up.Order)+len(down.Order)),
		Via:      make(map[string]string, len(up.Via)+len(down.Via)),
	}
	for _, id := range up.Order {
		d := up.Distance[id]
		if dd, ok := down.Distance[id]; ok && id != up.Order[0] && abs(dd) < abs(d) {
			continue
		}
		res.Distance[id] = d
		if v, ok := up.Via[id]; ok {
			res.Via[id] = v
		}
		res.Order = append(res.Order, id)
	}
	for _, id := range down.Order {
		if _, taken := res.Distance[id]; taken {
			continue
		}
		res.Distance[id] = down.Distance[id]
		res.Via[id] = down.Via[id]
		res.Order = append(res.Order, id)
	}
	return res
}

func withoutRoot(order []string) []string {
	if len(order) == 0 {
		return nil
	}
	return order[1:]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

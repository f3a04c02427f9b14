package traverse

import (
	"slices"
	"sort"

	"github.com/dusk-indust/famtree/internal/family"
)

// ShortestPath returns the shortest chain of parent/child links between
// start and end, or false when neither is a direct-line ancestor of the
// other. Spouse links are never followed, and collateral relatives (siblings,
// cousins, aunts and uncles) are reported as unconnected.
//
// The search is bidirectional: one frontier climbs from one endpoint while
// the other descends from the opposite endpoint, and the smaller frontier is
// expanded first. Both orientations (end above start, end below start) are
// tried; the shorter path wins and equal lengths fall back to the
// lexicographically smaller id sequence.
//
// start == end yields the single-member path [start].
func ShortestPath(g *family.Graph, start, end string) ([]string, bool) {
	if !g.Has(start) || !g.Has(end) {
		return nil, false
	}
	if start == end {
		return []string{start}, true
	}

	up := bidirectional(start, end, g.Parents, g.Children)
	down := bidirectional(start, end, g.Children, g.Parents)

	switch {
	case up == nil && down == nil:
		return nil, false
	case up == nil:
		return down, true
	case down == nil:
		return up, true
	case len(up) != len(down):
		if len(up) < len(down) {
			return up, true
		}
		return down, true
	case slices.Compare(up, down) <= 0:
		return up, true
	default:
		return down, true
	}
}

// side is one half of a bidirectional search.
type side struct {
	dist     map[string]int
	via      map[string]string
	frontier []string
	next     func(string) []string
}

func newSide(root string, next func(string) []string) *side {
	return &side{
		dist:     map[string]int{root: 0},
		via:      map[string]string{},
		frontier: []string{root},
		next:     next,
	}
}

// expand advances the side by one full level and returns the new frontier.
func (s *side) expand() []string {
	var out []string
	for _, id := range s.frontier {
		for _, nb := range s.next(id) {
			if _, seen := s.dist[nb]; seen {
				continue
			}
			s.dist[nb] = s.dist[id] + 1
			s.via[nb] = id
			out = append(out, nb)
		}
	}
	sort.Strings(out)
	s.frontier = out
	return out
}

// chain follows predecessors from id back to the side's root.
func (s *side) chain(id string) []string {
	out := []string{id}
	for {
		prev, ok := s.via[id]
		if !ok {
			return out
		}
		out = append(out, prev)
		id = prev
	}
}

// bidirectional searches from start along fwd and from end along back until
// the two visited sets meet.
func bidirectional(start, end string, fwd, back func(string) []string) []string {
	f := newSide(start, fwd)
	b := newSide(end, back)

	for len(f.frontier) > 0 && len(b.frontier) > 0 {
		grown, other := f, b
		if len(b.frontier) < len(f.frontier) {
			grown, other = b, f
		}
		var meet []string
		for _, id := range grown.expand() {
			if _, ok := other.dist[id]; ok {
				meet = append(meet, id)
			}
		}
		if len(meet) > 0 {
			return bestPath(f, b, meet)
		}
	}
	return nil
}

// bestPath builds the start..end path through every meeting node and keeps
// the shortest, breaking ties by id sequence.
func bestPath(f, b *side, meet []string) []string {
	var best []string
	for _, m := range meet {
		head := f.chain(m)
		slices.Reverse(head)
		tail := b.chain(m)[1:]
		path := append(head, tail...)
		if best == nil || len(path) < len(best) ||
			(len(path) == len(best) && slices.Compare(path, best) < 0) {
			best = path
		}
	}
	return best
}

package partition

import (
	"fmt"
	"strings"

	"github.com/dusk-indust/famtree/internal/family"
)

// collections builds one partition per selected collection tag. Tags are
// matched exactly after trimming surrounding whitespace.
func collections(g *family.Graph, c CollectionConfig) (*Partitioning, error) {
	tags := selectedTags(c.Collections)
	if len(tags) == 0 {
		return finish(StrategyCollection, nil, []string{"no collections selected"}), nil
	}
	primaryOnly := c.BridgeHandling == BridgePrimaryOnly

	builders := make([]*builder, len(tags))
	slot := make(map[string]int, len(tags))
	for i, tag := range tags {
		builders[i] = newBuilder(tag, "collection:"+tag)
		slot[tag] = i
	}

	// tagCount tracks how many selected tags each person carries.
	tagCount := make(map[string]int)
	for _, id := range g.IDs() {
		p, _ := g.Person(id)
		var hits []int
		seen := make(map[int]bool)
		for _, raw := range p.Collections {
			i, ok := slot[strings.TrimSpace(raw)]
			if !ok || seen[i] {
				continue
			}
			seen[i] = true
			hits = append(hits, i)
		}
		if len(hits) == 0 {
			continue
		}
		tagCount[id] = len(hits)
		if primaryOnly {
			builders[minIndex(hits)].add(id)
			continue
		}
		for _, i := range hits {
			builders[i].add(id)
		}
	}

	var warnings []string
	for i, b := range builders {
		if len(b.ids) == 0 {
			warnings = append(warnings, fmt.Sprintf("0 people in collection %s", tags[i]))
		}
	}

	out := finish(StrategyCollection, builders, warnings)

	// Bridge status follows tag membership, not partition membership, so
	// primary-only mode still marks the people it withheld from later tags.
	out.BridgePeople = 0
	for _, n := range tagCount {
		if n > 1 {
			out.BridgePeople++
		}
	}
	for pi := range out.Partitions {
		for mi := range out.Partitions[pi].Members {
			m := &out.Partitions[pi].Members[mi]
			m.Bridge = tagCount[m.ID] > 1
		}
	}
	return out, nil
}

// selectedTags trims and deduplicates tags, keeping their selection order.
func selectedTags(raw []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func minIndex(xs []int) int {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

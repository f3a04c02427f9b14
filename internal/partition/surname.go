package partition

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/dusk-indust/famtree/internal/family"
)

// surnameVariants maps folded spelling variants onto one canonical form.
var surnameVariants = map[string]string{
	"smyth":    "smith",
	"smythe":   "smith",
	"johnston": "johnson",
	"jonson":   "johnson",
	"meier":    "meyer",
	"mayer":    "meyer",
	"maier":    "meyer",
	"clarke":   "clark",
	"reed":     "reid",
	"read":     "reid",
	"browne":   "brown",
	"thomson":  "thompson",
	"phillips": "philips",
	"petersen": "peterson",
	"schmitt":  "schmidt",
	"mueller":  "muller",
}

// surnameMatcher normalizes surnames into comparison keys.
type surnameMatcher struct {
	variants bool
}

// key returns the comparison key for name. Matching is always
// case-insensitive; with variants enabled, diacritics are dropped and
// known spelling variants collapse to one form.
func (m surnameMatcher) key(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if m.variants {
		// Transformers carry state, so a fresh chain is built per call.
		t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
		if stripped, _, err := transform.String(t, name); err == nil {
			name = stripped
		}
	}
	k := cases.Fold().String(name)
	if m.variants {
		if canon, ok := surnameVariants[k]; ok {
			return canon
		}
	}
	return k
}

// candidates returns the surname forms of p considered for matching.
func candidates(p *family.Person, includeMaiden bool) []string {
	primary := p.Surnames.Primary
	if primary == "" {
		if fields := strings.Fields(p.Name); len(fields) > 0 {
			primary = fields[len(fields)-1]
		}
	}
	out := []string{primary}
	if includeMaiden {
		if p.Surnames.Maiden != "" {
			out = append(out, p.Surnames.Maiden)
		}
		out = append(out, p.Surnames.Alternates...)
	}
	return out
}

// surnames scans every record regardless of connectivity and groups the
// people whose surname matches a requested one.
func surnames(g *family.Graph, c SurnameConfig) (*Partitioning, error) {
	m := surnameMatcher{variants: c.HandleVariants}

	// Requested surnames keep their declared order; two spellings with the
	// same key collapse into the first.
	var requested []string
	slot := make(map[string]int)
	for _, s := range c.Surnames {
		k := m.key(s)
		if k == "" {
			continue
		}
		if _, dup := slot[k]; dup {
			continue
		}
		slot[k] = len(requested)
		requested = append(requested, strings.TrimSpace(s))
	}
	if len(requested) == 0 {
		return finish(StrategySurname, nil, []string{"no surnames selected"}), nil
	}

	matches := make([][]string, len(requested))
	for _, id := range g.IDs() {
		p, _ := g.Person(id)
		hit := make(map[int]bool)
		for _, cand := range candidates(p, c.IncludeMaidenNames) {
			if i, ok := slot[m.key(cand)]; ok && !hit[i] {
				hit[i] = true
				matches[i] = append(matches[i], id)
			}
		}
	}

	var warnings []string
	for i, ids := range matches {
		if len(ids) == 0 {
			warnings = append(warnings, fmt.Sprintf("0 matches for %s", requested[i]))
		}
	}

	var builders []*builder
	if c.SeparatePartitions {
		for i, ids := range matches {
			b := newBuilder(requested[i], "surname:"+requested[i])
			b.addAll(ids)
			builders = append(builders, b)
		}
	} else {
		b := newBuilder(strings.Join(requested, ", "), "surname:"+strings.Join(requested, "+"))
		b.addAll(combinedOrder(g, matches))
		builders = append(builders, b)
	}

	if c.IncludeSpouses {
		for _, b := range builders {
			addSpouses(g, b, "")
		}
	}
	return finish(StrategySurname, builders, warnings), nil
}

// combinedOrder merges per-surname matches into graph id order.
func combinedOrder(g *family.Graph, matches [][]string) []string {
	in := make(map[string]bool)
	for _, ids := range matches {
		for _, id := range ids {
			in[id] = true
		}
	}
	out := make([]string, 0, len(in))
	for _, id := range g.IDs() {
		if in[id] {
			out = append(out, id)
		}
	}
	return out
}

// Package partition splits a family graph into bounded, labeled subsets.
//
// Every strategy is a pure function of a family.Graph and a Config. Compute
// is the single entry point; its result backs both the preview shown before
// generation and the artifacts emitted afterwards.
package partition

import "sort"

// Member is one person inside a Partition.
type Member struct {
	ID string `json:"id"`

	// Bridge is set when the person also belongs to another partition of
	// the same Partitioning.
	Bridge bool `json:"bridge,omitempty"`
}

// Partition is a labeled, deduplicated, ordered subset of person ids.
type Partition struct {
	Label   string   `json:"label"`
	Role    string   `json:"role"`
	Members []Member `json:"members"`
}

// IDs returns the member ids in partition order.
func (p Partition) IDs() []string {
	out := make([]string, len(p.Members))
	for i, m := range p.Members {
		out[i] = m.ID
	}
	return out
}

// Len returns the number of members.
func (p Partition) Len() int {
	return len(p.Members)
}

// Contains reports whether id is a member.
func (p Partition) Contains(id string) bool {
	for _, m := range p.Members {
		if m.ID == id {
			return true
		}
	}
	return false
}

// Partitioning is the full result of one strategy run. It is never mutated
// after Compute returns it.
type Partitioning struct {
	Strategy   Strategy    `json:"strategy"`
	Partitions []Partition `json:"partitions"`

	// TotalPeople counts unique ids across all partitions.
	TotalPeople int `json:"totalPeople"`

	// BridgePeople counts people belonging to more than one group. For the
	// collection strategy the groups are the selected tags, whatever the
	// bridge handling mode; otherwise they are the partitions.
	BridgePeople int `json:"bridgePeople"`

	Warnings []string `json:"warnings,omitempty"`
}

// Lookup returns the index of the first partition containing id.
func (p *Partitioning) Lookup(id string) (int, bool) {
	for i, part := range p.Partitions {
		if part.Contains(id) {
			return i, true
		}
	}
	return -1, false
}

// Index maps every member id to the indices of the partitions holding it.
func (p *Partitioning) Index() map[string][]int {
	idx := make(map[string][]int)
	for i, part := range p.Partitions {
		for _, m := range part.Members {
			idx[m.ID] = append(idx[m.ID], i)
		}
	}
	return idx
}

// PartitionSummary is the preview line for one partition.
type PartitionSummary struct {
	Label   string `json:"label"`
	Role    string `json:"role"`
	Count   int    `json:"count"`
	Bridges int    `json:"bridges,omitempty"`
}

// Summary is what the preview surface shows before generation.
type Summary struct {
	Strategy     Strategy           `json:"strategy"`
	Partitions   []PartitionSummary `json:"partitions"`
	TotalPeople  int                `json:"totalPeople"`
	MemberSlots  int                `json:"memberSlots"`
	BridgePeople int                `json:"bridgePeople"`
	Warnings     []string           `json:"warnings,omitempty"`
}

// Summary derives the preview from the partitioning itself, so preview
// counts always equal what is later emitted.
func (p *Partitioning) Summary() Summary {
	s := Summary{
		Strategy:     p.Strategy,
		Partitions:   make([]PartitionSummary, 0, len(p.Partitions)),
		TotalPeople:  p.TotalPeople,
		BridgePeople: p.BridgePeople,
		Warnings:     append([]string(nil), p.Warnings...),
	}
	for _, part := range p.Partitions {
		ps := PartitionSummary{Label: part.Label, Role: part.Role, Count: part.Len()}
		for _, m := range part.Members {
			if m.Bridge {
				ps.Bridges++
			}
		}
		s.MemberSlots += ps.Count
		s.Partitions = append(s.Partitions, ps)
	}
	return s
}

// --- construction helpers ---

// builder accumulates one partition, ignoring repeated ids.
type builder struct {
	label string
	role  string
	ids   []string
	seen  map[string]bool
}

func newBuilder(label, role string) *builder {
	return &builder{label: label, role: role, seen: make(map[string]bool)}
}

// add appends id unless it is already present. It reports whether id was new.
func (b *builder) add(id string) bool {
	if b.seen[id] {
		return false
	}
	b.seen[id] = true
	b.ids = append(b.ids, id)
	return true
}

func (b *builder) addAll(ids []string) {
	for _, id := range ids {
		b.add(id)
	}
}

func (b *builder) has(id string) bool {
	return b.seen[id]
}

// finish assembles the Partitioning: it flags members present in more than
// one partition and counts unique people.
func finish(strategy Strategy, builders []*builder, warnings []string) *Partitioning {
	counts := make(map[string]int)
	for _, b := range builders {
		for _, id := range b.ids {
			counts[id]++
		}
	}

	out := &Partitioning{
		Strategy:    strategy,
		Partitions:  make([]Partition, 0, len(builders)),
		TotalPeople: len(counts),
		Warnings:    warnings,
	}
	for _, b := range builders {
		members := make([]Member, len(b.ids))
		for i, id := range b.ids {
			members[i] = Member{ID: id, Bridge: counts[id] > 1}
		}
		out.Partitions = append(out.Partitions, Partition{
			Label:   b.label,
			Role:    b.role,
			Members: members,
		})
	}
	for _, n := range counts {
		if n > 1 {
			out.BridgePeople++
		}
	}
	return out
}

// sortedKeys returns the keys of an int-keyed map in ascending order.
func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

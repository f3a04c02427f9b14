package export

import (
	"fmt"
	"strings"

	"github.com/dusk-indust/famtree/internal/family"
	"github.com/dusk-indust/famtree/internal/navigation"
)

// RenderMermaid produces a Mermaid graph TD diagram of one partition.
// Parent links are arrows, marriages are plain lines, and anything touching
// a stub is dashed.
func RenderMermaid(p Payload) string {
	ids := newNodeIDs("N")

	var sb strings.Builder
	sb.WriteString("graph TD\n")
	fmt.Fprintf(&sb, "  %%%% %s (%s)\n", p.Label, p.Role)

	var stubs, bridges []string
	for _, n := range p.Nodes {
		id := ids.get(n.ID)
		switch {
		case n.Stub != nil:
			fmt.Fprintf(&sb, "  %s([\"%s\"])\n", id, escape(fmt.Sprintf("%.40s → %s", n.Name, n.Stub.TargetLabel)))
			stubs = append(stubs, id)
		default:
			label := fmt.Sprintf("%.40s", n.Name)
			if n.Years != "" {
				label += "<br/>" + n.Years
			}
			fmt.Fprintf(&sb, "  %s[\"%s\"]\n", id, escape(label))
			if n.Bridge {
				bridges = append(bridges, id)
			}
		}
	}

	for _, e := range p.Edges {
		src, dst := ids.get(e.Source), ids.get(e.Target)
		switch {
		case e.Relation == family.RelationSpouse && e.Stub:
			fmt.Fprintf(&sb, "  %s -.- %s\n", src, dst)
		case e.Relation == family.RelationSpouse:
			fmt.Fprintf(&sb, "  %s --- %s\n", src, dst)
		case e.Stub:
			fmt.Fprintf(&sb, "  %s -.-> %s\n", src, dst)
		default:
			fmt.Fprintf(&sb, "  %s --> %s\n", src, dst)
		}
	}

	if len(stubs) > 0 {
		sb.WriteString("  classDef stub stroke-dasharray: 5 5\n")
		fmt.Fprintf(&sb, "  class %s stub\n", strings.Join(stubs, ","))
	}
	if len(bridges) > 0 {
		sb.WriteString("  classDef bridge stroke-width:3px\n")
		fmt.Fprintf(&sb, "  class %s bridge\n", strings.Join(bridges, ","))
	}
	return sb.String()
}

// RenderOverviewMermaid draws one node per partition and one labeled line
// per connected partition pair.
func RenderOverviewMermaid(ov *navigation.Overview) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	for _, n := range ov.Nodes {
		fmt.Fprintf(&sb, "  P%d[\"%s\"]\n", n.Index, escape(fmt.Sprintf("%.40s (%d)", n.Label, n.Count)))
	}
	for _, l := range ov.Links {
		fmt.Fprintf(&sb, "  P%d ---|%d| P%d\n", l.A, l.Edges, l.B)
	}
	return sb.String()
}

// nodeIDs maps person ids to Mermaid-safe identifiers.
type nodeIDs struct {
	prefix string
	ids    map[string]string
}

func newNodeIDs(prefix string) *nodeIDs {
	return &nodeIDs{prefix: prefix, ids: make(map[string]string)}
}

func (n *nodeIDs) get(key string) string {
	if id, ok := n.ids[key]; ok {
		return id
	}
	id := fmt.Sprintf("%s%d", n.prefix, len(n.ids))
	n.ids[key] = id
	return id
}

func escape(s string) string {
	return strings.ReplaceAll(s, `"`, "#quot;")
}

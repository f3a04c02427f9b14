package export

import (
	"encoding/json"
	"fmt"

	"github.com/dusk-indust/famtree/internal/family"
	"github.com/dusk-indust/famtree/internal/navigation"
)

// Canvas is a JSON Canvas document (jsoncanvas.org).
type Canvas struct {
	Nodes []CanvasNode `json:"nodes"`
	Edges []CanvasEdge `json:"edges"`
}

// CanvasNode is a text card on the canvas.
type CanvasNode struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Text   string `json:"text"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Color  string `json:"color,omitempty"`
}

// CanvasEdge connects two cards.
type CanvasEdge struct {
	ID       string `json:"id"`
	FromNode string `json:"fromNode"`
	ToNode   string `json:"toNode"`
	ToEnd    string `json:"toEnd,omitempty"`
	Label    string `json:"label,omitempty"`
	Color    string `json:"color,omitempty"`
}

// Card geometry.
const (
	cardWidth  = 240
	cardHeight = 80
	cardGap    = 40
	perRow     = 5
)

// Canvas preset colors.
const (
	colorBridge = "3"
	colorStub   = "5"
)

// BuildCanvas lays the payload out on a grid, members first.
func BuildCanvas(p Payload) Canvas {
	c := Canvas{
		Nodes: make([]CanvasNode, 0, len(p.Nodes)),
		Edges: make([]CanvasEdge, 0, len(p.Edges)),
	}
	for i, n := range p.Nodes {
		node := CanvasNode{
			ID:     n.ID,
			Type:   "text",
			Text:   cardText(n),
			X:      (i % perRow) * (cardWidth + cardGap),
			Y:      (i / perRow) * (cardHeight + cardGap),
			Width:  cardWidth,
			Height: cardHeight,
		}
		switch {
		case n.Stub != nil:
			node.Color = colorStub
		case n.Bridge:
			node.Color = colorBridge
		}
		c.Nodes = append(c.Nodes, node)
	}
	for i, e := range p.Edges {
		edge := CanvasEdge{
			ID:       fmt.Sprintf("e%d", i),
			FromNode: e.Source,
			ToNode:   e.Target,
		}
		if e.Relation == family.RelationSpouse {
			edge.ToEnd = "none"
			edge.Label = "spouse"
		}
		if e.Stub {
			edge.Color = colorStub
		}
		c.Edges = append(c.Edges, edge)
	}
	return c
}

// RenderCanvas encodes the payload as an indented JSON Canvas document.
func RenderCanvas(p Payload) ([]byte, error) {
	data, err := json.MarshalIndent(BuildCanvas(p), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode canvas: %w", err)
	}
	return data, nil
}

// RenderOverviewCanvas encodes the overview as a JSON Canvas document.
func RenderOverviewCanvas(ov *navigation.Overview) ([]byte, error) {
	c := Canvas{
		Nodes: make([]CanvasNode, 0, len(ov.Nodes)),
		Edges: make([]CanvasEdge, 0, len(ov.Links)),
	}
	for i, n := range ov.Nodes {
		c.Nodes = append(c.Nodes, CanvasNode{
			ID:     fmt.Sprintf("p%d", n.Index),
			Type:   "text",
			Text:   fmt.Sprintf("**%s**\n%d people", n.Label, n.Count),
			X:      (i % perRow) * (cardWidth + cardGap),
			Y:      (i / perRow) * (cardHeight + cardGap),
			Width:  cardWidth,
			Height: cardHeight,
		})
	}
	for i, l := range ov.Links {
		c.Edges = append(c.Edges, CanvasEdge{
			ID:       fmt.Sprintf("l%d", i),
			FromNode: fmt.Sprintf("p%d", l.A),
			ToNode:   fmt.Sprintf("p%d", l.B),
			ToEnd:    "none",
			Label:    fmt.Sprintf("%d", l.Edges),
		})
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode overview canvas: %w", err)
	}
	return data, nil
}

func cardText(n Node) string {
	text := "**" + n.Name + "**"
	if n.Years != "" {
		text += "\n" + n.Years
	}
	if n.Stub != nil {
		text += "\nsee " + n.Stub.TargetLabel
	}
	return text
}

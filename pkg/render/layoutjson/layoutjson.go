// Package layoutjson exports a computed network layout as JSON.
//
// The export carries everything needed to redraw the diagram elsewhere:
// node boxes in source order, VLAN frames in tag order, and one edge per
// parent reference with its attachment fraction on the child's top edge.
// Output is pretty-printed and deterministic for a given input.
package layoutjson

import (
	"encoding/json"
	"strconv"

	"github.com/matzehuels/netdraw/pkg/drawio"
	"github.com/matzehuels/netdraw/pkg/frame"
	"github.com/matzehuels/netdraw/pkg/layout"
	"github.com/matzehuels/netdraw/pkg/network"
)

// Option configures rendering via [Render].
type Option func(*renderer)

type renderer struct {
	nodeW, nodeH float64
	frames       []frame.Frame
	resolution   *frame.Result
	defaultPos   layout.Point
}

// WithNodeSize overrides the default node box size.
func WithNodeSize(w, h float64) Option {
	return func(r *renderer) { r.nodeW, r.nodeH = w, h }
}

// WithFrames includes precomputed VLAN frames.
func WithFrames(frames []frame.Frame) Option {
	return func(r *renderer) { r.frames = frames }
}

// WithResolution records the outcome of frame collision resolution.
func WithResolution(res frame.Result) Option {
	return func(r *renderer) { r.resolution = &res }
}

// Document is the exported layout.
type Document struct {
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	NodeWidth  float64     `json:"node_width"`
	NodeHeight float64     `json:"node_height"`
	Nodes      []Node      `json:"nodes"`
	Frames     []Frame     `json:"frames,omitempty"`
	Edges      []Edge      `json:"edges,omitempty"`
	Resolution *Resolution `json:"resolution,omitempty"`
}

// Node is one positioned node box.
type Node struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Kind    string  `json:"kind"`
	IP      string  `json:"ip,omitempty"`
	VLAN    *int    `json:"vlan,omitempty"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Missing bool    `json:"missing,omitempty"`
}

// Frame is one VLAN frame.
type Frame struct {
	VLAN   int     `json:"vlan"`
	Label  string  `json:"label"`
	Color  string  `json:"color"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Edge connects a parent's bottom center to a point on the child's top edge.
type Edge struct {
	From    string  `json:"from"`
	To      string  `json:"to"`
	Primary bool    `json:"primary"`
	EntryX  float64 `json:"entry_x"`
}

// Resolution summarizes frame collision resolution.
type Resolution struct {
	Rounds    int           `json:"rounds"`
	Converged bool          `json:"converged"`
	Shifts    []frame.Shift `json:"shifts,omitempty"`
}

// Render exports set laid out at pos. Nodes without a position are placed
// at the layout margin and flagged as missing.
func Render(set *network.Set, pos layout.Positions, opts ...Option) ([]byte, error) {
	return json.MarshalIndent(Build(set, pos, opts...), "", "  ")
}

// Build assembles the export document without encoding it.
func Build(set *network.Set, pos layout.Positions, opts ...Option) Document {
	r := renderer{
		nodeW:      layout.DefaultNodeWidth,
		nodeH:      layout.DefaultNodeHeight,
		defaultPos: layout.Point{X: layout.DefaultMarginX, Y: layout.DefaultMarginY},
	}
	for _, opt := range opts {
		opt(&r)
	}

	doc := Document{
		NodeWidth:  r.nodeW,
		NodeHeight: r.nodeH,
		Nodes:      make([]Node, 0, set.Len()),
	}

	for _, n := range set.Nodes() {
		p, ok := pos.Get(n.ID)
		if !ok {
			p = r.defaultPos
		}
		doc.Nodes = append(doc.Nodes, Node{
			ID:      n.ID,
			Name:    n.Name,
			Kind:    n.Kind.String(),
			IP:      n.IP,
			VLAN:    n.VLAN,
			X:       p.X,
			Y:       p.Y,
			Missing: !ok,
		})
		doc.Width = max(doc.Width, p.X+r.nodeW+layout.DefaultMarginX)
		doc.Height = max(doc.Height, p.Y+r.nodeH+layout.DefaultMarginY)

		for i, parent := range n.Parents {
			doc.Edges = append(doc.Edges, Edge{
				From:    parent,
				To:      n.ID,
				Primary: i == 0,
				EntryX:  drawio.EntryX(i, len(n.Parents)),
			})
		}
	}

	for _, f := range r.frames {
		doc.Frames = append(doc.Frames, Frame{
			VLAN:   f.Tag,
			Label:  "VLAN" + strconv.Itoa(f.Tag),
			Color:  drawio.FrameColor(f.Tag),
			X:      f.Bounds.MinX,
			Y:      f.Bounds.MinY,
			Width:  f.Bounds.Width(),
			Height: f.Bounds.Height(),
		})
	}

	if r.resolution != nil {
		doc.Resolution = &Resolution{
			Rounds:    r.resolution.Rounds,
			Converged: r.resolution.Converged,
			Shifts:    r.resolution.Shifts,
		}
	}
	return doc
}

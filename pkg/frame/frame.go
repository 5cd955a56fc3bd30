// Package frame computes VLAN grouping frames and pushes overlapping frames
// apart.
//
// A frame is the padded bounding box drawn behind every node that shares a
// VLAN tag. Frames get more padding on top than at the bottom to leave room
// for the group label. Because the tree layout knows nothing about VLANs,
// frames of different tags can overlap; [Resolve] runs a bounded, greedy
// relaxation that shifts whole groups to the right until adjacent frames
// keep a minimum horizontal gap.
//
// Resolution is local by construction: a shift can push a group into the
// space of a third group, which is handled on a later round or left in
// place when the round budget runs out. Nodes only ever move right.
package frame

import (
	errs "github.com/matzehuels/netdraw/pkg/errors"
	"github.com/matzehuels/netdraw/pkg/layout"
)

// Default frame geometry, in diagram pixels.
const (
	DefaultPadX          = 25.0
	DefaultPadTop        = 45.0
	DefaultPadBottom     = 25.0
	DefaultGap           = 40.0
	DefaultMaxIterations = 30
)

// Options controls frame padding and the resolver budget.
type Options struct {
	NodeWidth     float64 `json:"node_width" toml:"node_width"`
	NodeHeight    float64 `json:"node_height" toml:"node_height"`
	PadX          float64 `json:"pad_x" toml:"pad_x"`
	PadTop        float64 `json:"pad_top" toml:"pad_top"`
	PadBottom     float64 `json:"pad_bottom" toml:"pad_bottom"`
	Gap           float64 `json:"gap" toml:"gap"`
	MaxIterations int     `json:"max_iterations" toml:"max_iterations"`
}

// DefaultOptions returns the standard frame geometry for default-sized nodes.
func DefaultOptions() Options {
	return Options{
		NodeWidth:     layout.DefaultNodeWidth,
		NodeHeight:    layout.DefaultNodeHeight,
		PadX:          DefaultPadX,
		PadTop:        DefaultPadTop,
		PadBottom:     DefaultPadBottom,
		Gap:           DefaultGap,
		MaxIterations: DefaultMaxIterations,
	}
}

// SetDefaults fills zero node dimensions and a zero budget with defaults.
func (o *Options) SetDefaults() {
	if o.NodeWidth == 0 {
		o.NodeWidth = layout.DefaultNodeWidth
	}
	if o.NodeHeight == 0 {
		o.NodeHeight = layout.DefaultNodeHeight
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = DefaultMaxIterations
	}
}

// Validate rejects negative padding and a negative budget.
func (o Options) Validate() error {
	if o.PadX < 0 || o.PadTop < 0 || o.PadBottom < 0 || o.Gap < 0 {
		return errs.New(errs.ErrCodeInvalidOptions, "frame padding and gap must not be negative")
	}
	if o.MaxIterations < 0 {
		return errs.New(errs.ErrCodeInvalidOptions, "max iterations must not be negative (got %d)", o.MaxIterations)
	}
	return nil
}

// Bounds is an axis-aligned frame rectangle.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// CenterX returns the horizontal center.
func (b Bounds) CenterX() float64 { return (b.MinX + b.MaxX) / 2 }

// Width returns MaxX - MinX.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxY - MinY.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// OverlapsVertically reports whether the y-ranges of b and o intersect.
// Touching edges count as overlapping.
func (b Bounds) OverlapsVertically(o Bounds) bool {
	return !(b.MaxY < o.MinY || o.MaxY < b.MinY)
}

// HorizontalGap returns the distance from b's right edge to o's left edge.
// It is negative when the frames overlap horizontally.
func (b Bounds) HorizontalGap(o Bounds) float64 {
	return o.MinX - b.MaxX
}

// Calculate returns the padded frame around the positioned members of ids.
// The second return value is false when none of the IDs has a position.
func Calculate(ids []string, pos layout.Positions, opts Options) (Bounds, bool) {
	var (
		b     Bounds
		found bool
	)
	for _, id := range ids {
		p, ok := pos[id]
		if !ok {
			continue
		}
		if !found {
			b = Bounds{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
			found = true
			continue
		}
		b.MinX = min(b.MinX, p.X)
		b.MinY = min(b.MinY, p.Y)
		b.MaxX = max(b.MaxX, p.X)
		b.MaxY = max(b.MaxY, p.Y)
	}
	if !found {
		return Bounds{}, false
	}
	return Bounds{
		MinX: b.MinX - opts.PadX,
		MinY: b.MinY - opts.PadTop,
		MaxX: b.MaxX + opts.NodeWidth + opts.PadX,
		MaxY: b.MaxY + opts.NodeHeight + opts.PadBottom,
	}, true
}

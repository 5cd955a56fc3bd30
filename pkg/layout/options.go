package layout

import (
	errs "github.com/matzehuels/netdraw/pkg/errors"
)

// Default geometry, in diagram pixels.
const (
	DefaultNodeWidth  = 120.0
	DefaultNodeHeight = 70.0
	DefaultGapX       = 30.0
	DefaultGapY       = 80.0
	DefaultMarginX    = 60.0
	DefaultMarginY    = 40.0
)

// Options controls node geometry and spacing.
type Options struct {
	NodeWidth  float64 `json:"node_width" toml:"node_width"`
	NodeHeight float64 `json:"node_height" toml:"node_height"`
	GapX       float64 `json:"gap_x" toml:"gap_x"`
	GapY       float64 `json:"gap_y" toml:"gap_y"`
	MarginX    float64 `json:"margin_x" toml:"margin_x"`
	MarginY    float64 `json:"margin_y" toml:"margin_y"`
}

// DefaultOptions returns the standard geometry.
func DefaultOptions() Options {
	return Options{
		NodeWidth:  DefaultNodeWidth,
		NodeHeight: DefaultNodeHeight,
		GapX:       DefaultGapX,
		GapY:       DefaultGapY,
		MarginX:    DefaultMarginX,
		MarginY:    DefaultMarginY,
	}
}

// SetDefaults fills zero node dimensions with the defaults. Gaps and margins
// are left alone because zero is a meaningful value for them.
func (o *Options) SetDefaults() {
	if o.NodeWidth == 0 {
		o.NodeWidth = DefaultNodeWidth
	}
	if o.NodeHeight == 0 {
		o.NodeHeight = DefaultNodeHeight
	}
}

// Validate rejects non-positive node sizes and negative spacing.
func (o Options) Validate() error {
	if o.NodeWidth <= 0 || o.NodeHeight <= 0 {
		return errs.New(errs.ErrCodeInvalidOptions, "node size must be positive (got %gx%g)", o.NodeWidth, o.NodeHeight)
	}
	if o.GapX < 0 || o.GapY < 0 {
		return errs.New(errs.ErrCodeInvalidOptions, "gaps must not be negative (got %g, %g)", o.GapX, o.GapY)
	}
	if o.MarginX < 0 || o.MarginY < 0 {
		return errs.New(errs.ErrCodeInvalidOptions, "margins must not be negative (got %g, %g)", o.MarginX, o.MarginY)
	}
	return nil
}

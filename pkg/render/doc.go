// Package render provides the secondary output formats of a network diagram.
//
// The primary output is the draw.io document built by package drawio. The
// subpackages here produce previews and machine-readable exports from the
// same node set and positions:
//
//   - [dot]: Graphviz DOT source with one cluster per VLAN, and in-process
//     SVG rendering through go-graphviz
//   - [layoutjson]: the computed layout (node boxes, frames, edge attachment
//     points) as JSON for external tools
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg, err := dot.RenderSVG(ctx, dot.ToDOT(set, dot.Options{}))
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [dot]: github.com/matzehuels/netdraw/pkg/render/dot
// [layoutjson]: github.com/matzehuels/netdraw/pkg/render/layoutjson
package render

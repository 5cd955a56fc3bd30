package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/netdraw/pkg/drawio"
	"github.com/matzehuels/netdraw/pkg/network"
	"github.com/matzehuels/netdraw/pkg/observability"
	"github.com/matzehuels/netdraw/pkg/render"
	"github.com/matzehuels/netdraw/pkg/render/dot"
	"github.com/matzehuels/netdraw/pkg/render/layoutjson"
)

// pngScale is the rasterization factor for PNG output.
const pngScale = 2.0

// Render generates output artifacts for every format in opts.Formats.
// SVG is rendered at most once and reused for PNG and PDF.
func Render(ctx context.Context, set *network.Set, l Layout, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := renderFormats(ctx, set, l, opts, opts.Formats)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(ctx context.Context, set *network.Set, l Layout, opts Options, formats []string) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))

	var svg []byte
	svgOnce := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = dot.RenderSVG(ctx, dot.ToDOT(set, dot.Options{Detailed: opts.Detailed, NoClusters: opts.SkipFrames}))
		return svg, err
	}

	for _, format := range formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		var err error

		switch format {
		case FormatDrawIO:
			f, _ := drawio.Build(set, l.Positions, opts.Diagram)
			data, err = drawio.Marshal(f)
		case FormatJSON:
			jsonOpts := []layoutjson.Option{layoutjson.WithNodeSize(opts.Layout.NodeWidth, opts.Layout.NodeHeight)}
			if !opts.SkipFrames {
				jsonOpts = append(jsonOpts, layoutjson.WithFrames(l.Frames), layoutjson.WithResolution(l.Resolution))
			}
			data, err = layoutjson.Render(set, l.Positions, jsonOpts...)
		case FormatDOT:
			data = []byte(dot.ToDOT(set, dot.Options{Detailed: opts.Detailed, NoClusters: opts.SkipFrames}))
		case FormatSVG:
			data, err = svgOnce()
		case FormatPNG:
			if data, err = svgOnce(); err == nil {
				data, err = render.ToPNG(data, pngScale)
			}
		case FormatPDF:
			if data, err = svgOnce(); err == nil {
				data, err = render.ToPDF(data)
			}
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

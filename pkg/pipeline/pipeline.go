// Package pipeline runs the complete load → layout → frames → render
// pipeline shared by the CLI and the HTTP service.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: read a node set from a workbook, CSV, YAML or JSON source
//  2. Layout: build the primary-parent forest, validate it and place nodes
//  3. Frames: push overlapping VLAN frames apart
//  4. Render: produce the draw.io document and any extra formats
//
// Layout and frame resolution always run because they are cheap and their
// results are returned to the caller. Rendered artifacts are cached by a
// content hash of the node set plus every option that shapes the output.
//
// # Usage
//
//	set, err := pipeline.Load(ctx, "network.xlsx", source.Options{})
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, set, pipeline.Options{})
//	err = pipeline.WriteArtifact("network.drawio", result.Artifacts[pipeline.FormatDrawIO])
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netdraw/pkg/cache"
	"github.com/matzehuels/netdraw/pkg/drawio"
	errs "github.com/matzehuels/netdraw/pkg/errors"
	"github.com/matzehuels/netdraw/pkg/frame"
	"github.com/matzehuels/netdraw/pkg/layout"
	"github.com/matzehuels/netdraw/pkg/tree"
)

// Format constants for output formats.
const (
	FormatDrawIO = "drawio"
	FormatJSON   = "json"
	FormatDOT    = "dot"
	FormatSVG    = "svg"
	FormatPNG    = "png"
	FormatPDF    = "pdf"
)

// DefaultFormat is produced when no format is requested.
const DefaultFormat = FormatDrawIO

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDrawIO: true,
	FormatJSON:   true,
	FormatDOT:    true,
	FormatSVG:    true,
	FormatPNG:    true,
	FormatPDF:    true,
}

// FormatNames lists the supported formats in display order.
var FormatNames = []string{FormatDrawIO, FormatJSON, FormatDOT, FormatSVG, FormatPNG, FormatPDF}

// Extensions maps each format to its file extension.
var Extensions = map[string]string{
	FormatDrawIO: ".drawio",
	FormatJSON:   ".json",
	FormatDOT:    ".dot",
	FormatSVG:    ".svg",
	FormatPNG:    ".png",
	FormatPDF:    ".pdf",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Layout  layout.Options `json:"layout"`
	Frame   frame.Options  `json:"frame"`
	Diagram drawio.Options `json:"diagram"`

	// Formats lists the artifacts to render. Defaults to drawio.
	Formats []string `json:"formats,omitempty"`
	// SkipFrames disables frame resolution and omits frame cells.
	SkipFrames bool `json:"skip_frames,omitempty"`
	// Detailed adds IPs and notes to DOT labels.
	Detailed bool `json:"detailed,omitempty"`
	// Refresh bypasses cached artifacts.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Forest is the primary-parent forest of the node set.
	Forest *tree.Forest
	// SetHash is the content hash of the node set.
	SetHash string
	// Positions are the final node positions, after frame resolution.
	Positions layout.Positions
	// Frames are the VLAN frames computed from the final positions.
	Frames []frame.Frame
	// Resolution summarizes frame collision resolution.
	Resolution frame.Result
	// Report describes what the draw.io serializer worked around.
	Report drawio.Report
	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte
	// Stats contains timing and size information.
	Stats Stats
	// CacheHit is true when every artifact came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	RootCount  int
	FrameCount int
	LayoutTime time.Duration
	FrameTime  time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidOptions, "invalid format: %q (must be one of: %s)",
			format, strings.Join(FormatNames, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills unset fields. A zero layout or frame section is
// replaced by the standard geometry; the frame and diagram node size always
// follow the layout node size so that frames hug the drawn boxes.
func (o *Options) SetDefaults() {
	if o.Layout == (layout.Options{}) {
		o.Layout = layout.DefaultOptions()
	}
	o.Layout.SetDefaults()

	if o.Frame == (frame.Options{}) {
		o.Frame = frame.DefaultOptions()
	}
	o.Frame.NodeWidth = o.Layout.NodeWidth
	o.Frame.NodeHeight = o.Layout.NodeHeight
	o.Frame.SetDefaults()

	o.Diagram.SetDefaults()
	o.Diagram.Frame = o.Frame
	o.Diagram.DefaultPosition = layout.Point{X: o.Layout.MarginX, Y: o.Layout.MarginY}
	if o.SkipFrames {
		o.Diagram.OmitFrames = true
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	o.Formats = dedupe(o.Formats)

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks formats and every geometry section.
func (o *Options) Validate() error {
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := o.Layout.Validate(); err != nil {
		return err
	}
	if err := o.Frame.Validate(); err != nil {
		return err
	}
	return o.Diagram.Validate()
}

// ValidateAndSetDefaults applies defaults, then validates.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

// DocumentKeyOpts returns cache key options for one rendered format.
func (o *Options) DocumentKeyOpts(format string) cache.DocumentKeyOpts {
	return cache.DocumentKeyOpts{
		Format:      format,
		NodeWidth:   o.Layout.NodeWidth,
		NodeHeight:  o.Layout.NodeHeight,
		GapX:        o.Layout.GapX,
		GapY:        o.Layout.GapY,
		MarginX:     o.Layout.MarginX,
		MarginY:     o.Layout.MarginY,
		PadX:        o.Frame.PadX,
		PadTop:      o.Frame.PadTop,
		PadBottom:   o.Frame.PadBottom,
		FrameGap:    o.Frame.Gap,
		Iterations:  o.Frame.MaxIterations,
		SkipFrames:  o.SkipFrames,
		DiagramName: o.Diagram.DiagramName,
		NoteWidth:   o.Diagram.NoteWidth,
		NoteGap:     o.Diagram.NoteGap,
		Detailed:    o.Detailed,
	}
}

func dedupe(formats []string) []string {
	seen := make(map[string]bool, len(formats))
	out := formats[:0:0]
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

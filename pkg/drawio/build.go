package drawio

import (
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	errs "github.com/matzehuels/netdraw/pkg/errors"
	"github.com/matzehuels/netdraw/pkg/frame"
	"github.com/matzehuels/netdraw/pkg/layout"
	"github.com/matzehuels/netdraw/pkg/network"
)

// Document header values.
const (
	Host        = "app.diagrams.net"
	Agent       = "Network Diagram Generator"
	Version     = "22.0.0"
	ETag        = "generated"
	DocType     = "device"
	DefaultName = "Network"
)

// Defaults for the annotation box.
const (
	DefaultNoteWidth      = 280.0
	DefaultNoteGap        = 50.0
	DefaultNoteMinHeight  = 60.0
	DefaultNoteLineHeight = 18.0
	DefaultNotePadding    = 20.0
)

// Cell IDs with fixed meaning.
const (
	RootCellID  = "0"
	LayerCellID = "1"
	NoteCellID  = "note_box_1"
)

// Options controls document assembly.
type Options struct {
	// DiagramName is the page name shown in the editor.
	DiagramName string `json:"diagram_name" toml:"name"`
	// NoteWidth is the width of the annotation box.
	NoteWidth float64 `json:"note_width" toml:"note_width"`
	// NoteGap is the horizontal distance between the rightmost node and
	// the annotation box.
	NoteGap float64 `json:"note_gap" toml:"note_gap"`
	// OmitFrames drops the VLAN frame cells.
	OmitFrames bool `json:"omit_frames" toml:"omit_frames"`
	// Frame supplies node dimensions and frame padding.
	Frame frame.Options `json:"frame" toml:"-"`
	// DefaultPosition is used for nodes missing from the position table.
	DefaultPosition layout.Point `json:"-" toml:"-"`
}

// DefaultOptions returns the standard document settings.
func DefaultOptions() Options {
	return Options{
		DiagramName:     DefaultName,
		NoteWidth:       DefaultNoteWidth,
		NoteGap:         DefaultNoteGap,
		Frame:           frame.DefaultOptions(),
		DefaultPosition: layout.Point{X: layout.DefaultMarginX, Y: layout.DefaultMarginY},
	}
}

// SetDefaults fills zero fields with their defaults.
func (o *Options) SetDefaults() {
	if o.DiagramName == "" {
		o.DiagramName = DefaultName
	}
	if o.NoteWidth == 0 {
		o.NoteWidth = DefaultNoteWidth
	}
	if o.NoteGap == 0 {
		o.NoteGap = DefaultNoteGap
	}
	o.Frame.SetDefaults()
	if o.DefaultPosition == (layout.Point{}) {
		o.DefaultPosition = layout.Point{X: layout.DefaultMarginX, Y: layout.DefaultMarginY}
	}
}

// Validate rejects negative sizes.
func (o Options) Validate() error {
	if o.NoteWidth < 0 || o.NoteGap < 0 {
		return errs.New(errs.ErrCodeInvalidOptions, "note width and gap must not be negative")
	}
	return o.Frame.Validate()
}

// Report lists what Build had to work around, plus element counts.
type Report struct {
	// MissingPositions are node IDs drawn at the default position.
	MissingPositions []string `json:"missing_positions,omitempty"`
	// DanglingEdges are "parent -> child" references to unknown nodes that
	// were not drawn.
	DanglingEdges []string `json:"dangling_edges,omitempty"`
	Frames        int      `json:"frames"`
	Nodes         int      `json:"nodes"`
	Edges         int      `json:"edges"`
	Notes         int      `json:"notes"`
}

// Build assembles the document for set using the given positions.
// It never fails: nodes without a position are placed at the default
// position and listed in the report.
func Build(set *network.Set, pos layout.Positions, opts Options) (*File, Report) {
	opts.SetDefaults()

	var rep Report
	nodes := set.Nodes()
	ids := SafeIDs(set.IDs())
	w, h := opts.Frame.NodeWidth, opts.Frame.NodeHeight

	cells := []Cell{
		{ID: RootCellID},
		{ID: LayerCellID, Parent: RootCellID},
	}

	if !opts.OmitFrames {
		for _, f := range frame.Frames(set.VLANGroups(), pos, opts.Frame) {
			cells = append(cells, frameCell(f))
			rep.Frames++
		}
	}

	minY, maxX := math.Inf(1), math.Inf(-1)
	for _, n := range nodes {
		p, ok := pos.Get(n.ID)
		if !ok {
			p = opts.DefaultPosition
			rep.MissingPositions = append(rep.MissingPositions, n.ID)
		}
		minY, maxX = min(minY, p.Y), max(maxX, p.X)
		cells = append(cells, Cell{
			ID:       ids[n.ID],
			Value:    nodeLabel(n),
			Style:    nodeStyle(n.IsONU()),
			Vertex:   "1",
			Parent:   LayerCellID,
			Geometry: vertexGeometry(p.X, p.Y, w, h),
		})
		rep.Nodes++
	}

	for _, n := range nodes {
		for i, parent := range n.Parents {
			source, ok := ids[parent]
			if !ok {
				rep.DanglingEdges = append(rep.DanglingEdges, parent+" -> "+n.ID)
				continue
			}
			rep.Edges++
			cells = append(cells, Cell{
				ID:       "e" + strconv.Itoa(rep.Edges),
				Style:    edgeStyle(EntryX(i, len(n.Parents))),
				Edge:     "1",
				Parent:   LayerCellID,
				Source:   source,
				Target:   ids[n.ID],
				Geometry: edgeGeometry(),
			})
		}
	}

	if noted := set.Notes(); len(noted) > 0 {
		cells = append(cells, noteCell(noted, maxX+w+opts.NoteGap, minY, opts.NoteWidth))
		rep.Notes = len(noted)
	}

	return newFile(opts.DiagramName, set.IDs(), cells), rep
}

func newFile(name string, ids []string, cells []Cell) *File {
	return &File{
		Host:    Host,
		Agent:   Agent,
		Version: Version,
		ETag:    ETag,
		Type:    DocType,
		Diagrams: []Diagram{{
			Name: name,
			ID:   diagramID(ids),
			Model: GraphModel{
				Dx: 1000, Dy: 1000,
				Grid: 1, GridSize: 10,
				Guides: 1, Tooltips: 1, Connect: 1, Arrows: 1, Fold: 1,
				Page: 1, PageScale: 1, PageWidth: 827, PageHeight: 1169,
				Math: 0, Shadow: 0,
				Root: Root{Cells: cells},
			},
		}},
	}
}

// diagramID is stable for identical node ID sequences.
func diagramID(ids []string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.Join(ids, "\x00"))).String()
}

func frameCell(f frame.Frame) Cell {
	tag := strconv.Itoa(f.Tag)
	return Cell{
		ID:       "frame_" + tag,
		Value:    "VLAN" + tag,
		Style:    frameStyle(f.Tag),
		Vertex:   "1",
		Parent:   LayerCellID,
		Geometry: vertexGeometry(f.Bounds.MinX, f.Bounds.MinY, f.Bounds.Width(), f.Bounds.Height()),
	}
}

func nodeLabel(n *network.Node) string {
	label := html.EscapeString(n.ID) + "<br>" + html.EscapeString(displayName(n))
	if n.IP != "" {
		label += "<br>" + html.EscapeString(n.IP)
	}
	return label
}

func displayName(n *network.Node) string {
	if n.Name == "" {
		return n.ID
	}
	return n.Name
}

// NoteText returns the plain text of the annotation box: one "■ name" line
// followed by the note for every noted node, entries separated by a blank
// line.
func NoteText(noted []*network.Node) string {
	var lines []string
	for i, n := range noted {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, "■ "+displayName(n), n.Note)
	}
	return strings.Join(lines, "\n")
}

func noteCell(noted []*network.Node, x, y, width float64) Cell {
	text := NoteText(noted)
	lines := strings.Count(text, "\n") + 1
	height := max(DefaultNoteMinHeight, float64(lines)*DefaultNoteLineHeight+DefaultNotePadding)
	return Cell{
		ID:       NoteCellID,
		Value:    strings.ReplaceAll(html.EscapeString(text), "\n", "<br>"),
		Style:    noteStyle,
		Vertex:   "1",
		Parent:   LayerCellID,
		Geometry: vertexGeometry(x, y, width, height),
	}
}

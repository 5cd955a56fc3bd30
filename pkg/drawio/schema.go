package drawio

import "encoding/xml"

// File is the <mxfile> document element.
type File struct {
	XMLName  xml.Name  `xml:"mxfile"`
	Host     string    `xml:"host,attr"`
	Agent    string    `xml:"agent,attr,omitempty"`
	Version  string    `xml:"version,attr"`
	ETag     string    `xml:"etag,attr"`
	Type     string    `xml:"type,attr"`
	Diagrams []Diagram `xml:"diagram"`
}

// Diagram is one page of the document.
type Diagram struct {
	Name  string     `xml:"name,attr"`
	ID    string     `xml:"id,attr"`
	Model GraphModel `xml:"mxGraphModel"`
}

// GraphModel carries page settings and the cell tree.
type GraphModel struct {
	Dx         int     `xml:"dx,attr"`
	Dy         int     `xml:"dy,attr"`
	Grid       int     `xml:"grid,attr"`
	GridSize   int     `xml:"gridSize,attr"`
	Guides     int     `xml:"guides,attr"`
	Tooltips   int     `xml:"tooltips,attr"`
	Connect    int     `xml:"connect,attr"`
	Arrows     int     `xml:"arrows,attr"`
	Fold       int     `xml:"fold,attr"`
	Page       int     `xml:"page,attr"`
	PageScale  float64 `xml:"pageScale,attr"`
	PageWidth  int     `xml:"pageWidth,attr"`
	PageHeight int     `xml:"pageHeight,attr"`
	Math       int     `xml:"math,attr"`
	Shadow     int     `xml:"shadow,attr"`
	Root       Root    `xml:"root"`
}

// Root holds the flat list of cells.
type Root struct {
	Cells []Cell `xml:"mxCell"`
}

// Cell is an mxCell: a vertex, an edge, or one of the two structural cells.
type Cell struct {
	ID       string    `xml:"id,attr"`
	Value    string    `xml:"value,attr,omitempty"`
	Style    string    `xml:"style,attr,omitempty"`
	Vertex   string    `xml:"vertex,attr,omitempty"`
	Edge     string    `xml:"edge,attr,omitempty"`
	Parent   string    `xml:"parent,attr,omitempty"`
	Source   string    `xml:"source,attr,omitempty"`
	Target   string    `xml:"target,attr,omitempty"`
	Geometry *Geometry `xml:"mxGeometry,omitempty"`
}

// IsVertex reports whether the cell is a shape.
func (c Cell) IsVertex() bool { return c.Vertex == "1" }

// IsEdge reports whether the cell is a connector.
func (c Cell) IsEdge() bool { return c.Edge == "1" }

// Geometry is an mxGeometry. Vertices carry absolute x/y/width/height;
// edges carry only relative="1".
type Geometry struct {
	X        *int   `xml:"x,attr,omitempty"`
	Y        *int   `xml:"y,attr,omitempty"`
	Width    *int   `xml:"width,attr,omitempty"`
	Height   *int   `xml:"height,attr,omitempty"`
	Relative string `xml:"relative,attr,omitempty"`
	As       string `xml:"as,attr"`
}

// Rect returns the geometry as plain ints, with missing attributes as zero.
func (g *Geometry) Rect() (x, y, w, h int) {
	if g == nil {
		return 0, 0, 0, 0
	}
	return deref(g.X), deref(g.Y), deref(g.Width), deref(g.Height)
}

func vertexGeometry(x, y, w, h float64) *Geometry {
	return &Geometry{
		X:      intPtr(x),
		Y:      intPtr(y),
		Width:  intPtr(w),
		Height: intPtr(h),
		As:     "geometry",
	}
}

func edgeGeometry() *Geometry {
	return &Geometry{Relative: "1", As: "geometry"}
}

// intPtr truncates toward zero, matching how shapes snap in the editor.
func intPtr(v float64) *int {
	i := int(v)
	return &i
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

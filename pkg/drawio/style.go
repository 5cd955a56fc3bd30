package drawio

import (
	"fmt"
	"strconv"
	"strings"
)

// framePalette is cycled through by VLAN tag.
var framePalette = []string{
	"#dae8fc",
	"#d5e8d4",
	"#fff2cc",
	"#f8cecc",
	"#e1d5e7",
	"#d0e0e3",
	"#fce5cd",
}

const (
	nodeStyleBase = "rounded=1;html=1;whiteSpace=wrap;align=center;verticalAlign=middle;"
	onuFill       = "fillColor=#cfe2f3;strokeColor=#1c4587;"
	genericFill   = "fillColor=#f5f5f5;strokeColor=#666666;"

	noteStyle = "rounded=0;html=1;whiteSpace=wrap;align=left;verticalAlign=top;" +
		"fillColor=#ffffcc;strokeColor=#666666;" +
		"spacingTop=10;spacingLeft=10;spacingRight=10;spacingBottom=10;fontSize=11;"
)

// FrameColor returns the fill color for a VLAN tag. Tags of any sign map
// onto the palette.
func FrameColor(tag int) string {
	n := len(framePalette)
	return framePalette[((tag-1)%n+n)%n]
}

func frameStyle(tag int) string {
	return fmt.Sprintf("rounded=0;html=1;whiteSpace=wrap;fillColor=%s;fillOpacity=15;"+
		"strokeColor=#666666;strokeOpacity=80;align=right;verticalAlign=top;spacingRight=6;spacingTop=6;",
		FrameColor(tag))
}

func nodeStyle(onu bool) string {
	if onu {
		return nodeStyleBase + onuFill
	}
	return nodeStyleBase + genericFill
}

// EntryX returns the horizontal attachment fraction on the child's top edge
// for parent i of n. A single parent attaches at the center; otherwise the
// parents are spread evenly at (i+1)/(n+1).
func EntryX(i, n int) float64 {
	if n <= 1 {
		return 0.5
	}
	return float64(i+1) / float64(n+1)
}

func edgeStyle(entryX float64) string {
	return "edgeStyle=orthogonalEdgeStyle;rounded=0;orthogonalLoop=1;jettySize=auto;html=1;endArrow=none;" +
		"exitX=0.5;exitY=1;exitDx=0;exitDy=0;" +
		"entryX=" + strconv.FormatFloat(entryX, 'g', -1, 64) + ";entryY=0;entryDx=0;entryDy=0;"
}

// ParseStyle splits an mxGraph style string into its key=value pairs.
// Bare entries such as "ellipse" map to an empty value.
func ParseStyle(s string) map[string]string {
	out := make(map[string]string)
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		out[k] = v
	}
	return out
}

package layout

import (
	"maps"
	"math"
	"slices"
)

// Point is the top-left corner of a node box.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Positions maps node IDs to their coordinates.
//
// The same map is handed from layout to frame resolution (which shifts x
// values in place) and finally to serialization.
type Positions map[string]Point

// Get returns the position of id.
func (p Positions) Get(id string) (Point, bool) {
	pt, ok := p[id]
	return pt, ok
}

// Shift moves the listed nodes horizontally by dx. IDs without a position
// are ignored.
func (p Positions) Shift(ids []string, dx float64) {
	for _, id := range ids {
		if pt, ok := p[id]; ok {
			pt.X += dx
			p[id] = pt
		}
	}
}

// Clone returns an independent copy.
func (p Positions) Clone() Positions {
	return maps.Clone(p)
}

// IDs returns the positioned IDs sorted ascending.
func (p Positions) IDs() []string {
	return slices.Sorted(maps.Keys(p))
}

// Extent returns the minimum and maximum corner coordinates over all
// positions. All values are zero for an empty table.
func (p Positions) Extent() (minX, minY, maxX, maxY float64) {
	if len(p) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, pt := range p {
		minX = min(minX, pt.X)
		minY = min(minY, pt.Y)
		maxX = max(maxX, pt.X)
		maxY = max(maxY, pt.Y)
	}
	return minX, minY, maxX, maxY
}

// translate moves every position by (dx, dy).
func (p Positions) translate(dx, dy float64) {
	for id, pt := range p {
		p[id] = Point{X: pt.X + dx, Y: pt.Y + dy}
	}
}

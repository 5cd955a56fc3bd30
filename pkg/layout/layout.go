package layout

import "github.com/matzehuels/netdraw/pkg/tree"

// SubtreeWidths returns the horizontal span reserved by every subtree
// reachable from the forest's roots. A leaf spans one node width; a parent
// spans the larger of one node width and its children's spans plus the gaps
// between them.
func SubtreeWidths(f *tree.Forest, opts Options) map[string]float64 {
	widths := make(map[string]float64)
	for _, root := range f.Roots {
		subtreeWidth(f, root, opts, widths)
	}
	return widths
}

func subtreeWidth(f *tree.Forest, id string, opts Options, memo map[string]float64) float64 {
	if w, ok := memo[id]; ok {
		return w
	}
	children := f.ChildrenOf(id)
	if len(children) == 0 {
		memo[id] = opts.NodeWidth
		return opts.NodeWidth
	}

	total := opts.GapX * float64(len(children)-1)
	for _, child := range children {
		total += subtreeWidth(f, child, opts, memo)
	}
	w := max(opts.NodeWidth, total)
	memo[id] = w
	return w
}

// Compute places every node reachable from the forest's roots.
//
// It fails with NO_ROOT when the forest has no roots; no partial table is
// returned in that case. Nodes that cannot be reached from a root (only
// possible when the forest was not validated) receive no position.
func Compute(f *tree.Forest, opts Options) (Positions, error) {
	if err := f.CheckRoots(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	widths := SubtreeWidths(f, opts)
	pos := make(Positions, len(widths))

	left := 0.0
	for _, root := range f.Roots {
		place(f, root, left, 0, opts, widths, pos)
		left += widths[root] + opts.GapX
	}

	minX, minY, _, _ := pos.Extent()
	pos.translate(opts.MarginX-minX, opts.MarginY-minY)
	return pos, nil
}

func place(f *tree.Forest, id string, left, y float64, opts Options, widths map[string]float64, pos Positions) {
	pos[id] = Point{X: left + (widths[id]-opts.NodeWidth)/2, Y: y}

	childY := y + opts.NodeHeight + opts.GapY
	for _, child := range f.ChildrenOf(id) {
		place(f, child, left, childY, opts, widths, pos)
		left += widths[child] + opts.GapX
	}
}

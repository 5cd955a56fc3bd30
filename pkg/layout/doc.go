// Package layout computes a tidy-tree placement for a primary-parent forest.
//
// # Algorithm
//
// Layout runs in two passes over the forest:
//
//  1. Widths (post-order, memoized): a leaf occupies NodeWidth; an internal
//     node occupies max(NodeWidth, sum of child widths + GapX*(n-1)).
//  2. Placement (pre-order): a node is centered over the horizontal span its
//     subtree reserves, x = left + (width - NodeWidth)/2, and sits at
//     y = depth*(NodeHeight + GapY). Children are packed left to right in
//     their sorted order, separated by GapX.
//
// Roots are treated as siblings at depth 0 and packed the same way. A final
// translation moves the leftmost node to MarginX and the topmost node to
// MarginY, so only relative offsets are fixed by the algorithm.
//
// # Determinism
//
// The result depends only on the forest (whose child and root orders are
// already sorted) and [Options]. Identical input yields identical positions.
//
// # Coordinates
//
// Positions are the top-left corner of each node's box, in the diagram's
// pixel coordinate system with y growing downward.
package layout

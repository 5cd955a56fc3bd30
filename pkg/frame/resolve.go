package frame

import (
	"maps"
	"slices"

	"github.com/matzehuels/netdraw/pkg/layout"
)

// Frame is the computed frame of one VLAN group.
type Frame struct {
	Tag    int    `json:"vlan"`
	Bounds Bounds `json:"bounds"`
}

// Shift records one push applied by the resolver.
type Shift struct {
	Round int     `json:"round"`
	Tag   int     `json:"vlan"`
	DX    float64 `json:"dx"`
}

// Result summarizes a resolver run.
type Result struct {
	// Rounds is the number of rounds executed, including the final round
	// that found nothing to move.
	Rounds int
	// Shifts lists every push in the order it was applied.
	Shifts []Shift
	// Converged is false when the budget ran out while frames still moved.
	Converged bool
}

// Frames computes the frame of every non-empty group in ascending tag order.
func Frames(groups map[int][]string, pos layout.Positions, opts Options) []Frame {
	frames := make([]Frame, 0, len(groups))
	for _, tag := range slices.Sorted(maps.Keys(groups)) {
		if b, ok := Calculate(groups[tag], pos, opts); ok {
			frames = append(frames, Frame{Tag: tag, Bounds: b})
		}
	}
	return frames
}

// Resolve shifts VLAN groups right until adjacent frames stop colliding or
// opts.MaxIterations rounds have run (a zero budget means
// DefaultMaxIterations). Positions are updated in place; only
// x-coordinates change and they never decrease.
//
// Each round computes every frame once, stable-sorts the frames by center x
// and walks adjacent pairs using those start-of-round frames. When a pair
// overlaps vertically and the right frame starts less than opts.Gap after
// the left frame ends, every node of the right group moves right by exactly
// the shortfall.
func Resolve(groups map[int][]string, pos layout.Positions, opts Options) Result {
	if len(groups) <= 1 {
		return Result{Converged: true}
	}

	budget := opts.MaxIterations
	if budget == 0 {
		budget = DefaultMaxIterations
	}

	var res Result
	for round := 1; round <= budget; round++ {
		res.Rounds = round

		frames := Frames(groups, pos, opts)
		slices.SortStableFunc(frames, func(a, b Frame) int {
			ca, cb := a.Bounds.CenterX(), b.Bounds.CenterX()
			switch {
			case ca < cb:
				return -1
			case ca > cb:
				return 1
			}
			return 0
		})

		moved := false
		for i := 0; i+1 < len(frames); i++ {
			left, right := frames[i], frames[i+1]
			if !left.Bounds.OverlapsVertically(right.Bounds) {
				continue
			}
			overlap := left.Bounds.MaxX + opts.Gap - right.Bounds.MinX
			if overlap <= 0 {
				continue
			}
			pos.Shift(groups[right.Tag], overlap)
			res.Shifts = append(res.Shifts, Shift{Round: round, Tag: right.Tag, DX: overlap})
			moved = true
		}

		if !moved {
			res.Converged = true
			return res
		}
	}
	return res
}

package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/netdraw/pkg/frame"
	"github.com/matzehuels/netdraw/pkg/layout"
	"github.com/matzehuels/netdraw/pkg/network"
	"github.com/matzehuels/netdraw/pkg/observability"
	"github.com/matzehuels/netdraw/pkg/tree"
)

// =============================================================================
// Layout Generation
// =============================================================================

// Layout is the geometry of one diagram.
type Layout struct {
	Forest     *tree.Forest
	Positions  layout.Positions
	Frames     []frame.Frame
	Resolution frame.Result
}

// GenerateLayout builds and validates the forest, places every node and,
// unless opts.SkipFrames is set, resolves frame collisions. opts must have
// defaults applied.
func GenerateLayout(ctx context.Context, set *network.Set, opts Options) (Layout, error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, set.Len())
	start := time.Now()

	l, err := generateLayout(set, opts)
	hooks.OnLayoutComplete(ctx, set.Len(), time.Since(start), err)
	if err != nil {
		return Layout{}, err
	}

	if !opts.SkipFrames {
		hooks.OnFramesResolved(ctx, len(l.Frames), l.Resolution.Rounds, l.Resolution.Converged)
	}
	return l, nil
}

func generateLayout(set *network.Set, opts Options) (Layout, error) {
	f := tree.Build(set)
	if err := f.CheckRoots(); err != nil {
		return Layout{}, err
	}
	if err := f.Validate(); err != nil {
		return Layout{}, err
	}

	pos, err := layout.Compute(f, opts.Layout)
	if err != nil {
		return Layout{}, err
	}

	l := Layout{Forest: f, Positions: pos, Resolution: frame.Result{Converged: true}}
	if opts.SkipFrames {
		return l, nil
	}

	groups := set.VLANGroups()
	l.Resolution = frame.Resolve(groups, pos, opts.Frame)
	l.Frames = frame.Frames(groups, pos, opts.Frame)

	if !l.Resolution.Converged {
		opts.Logger.Warn("frames still overlap after round limit",
			"rounds", l.Resolution.Rounds,
			"shifts", len(l.Resolution.Shifts))
	}
	return l, nil
}

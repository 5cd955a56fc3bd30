package tree

import (
	"slices"
	"strings"

	errs "github.com/matzehuels/netdraw/pkg/errors"
)

// CheckRoots returns NO_ROOT when every node has a parent. Such a forest
// always contains a cycle too, so callers run it before Validate.
func (f *Forest) CheckRoots() error {
	if len(f.Roots) == 0 {
		return errs.New(errs.ErrCodeNoRoot, "no root nodes found among %d nodes (every node has a parent)", f.set.Len())
	}
	return nil
}

// Validate checks that every primary-parent chain ends at a root.
//
// It returns CYCLE when a chain loops back on itself (the message lists the
// nodes on the loop, starting from the lowest ID) and UNDEFINED_PARENT when
// a chain reaches an ID that is not in the set. Chains are walked with
// white/gray/black colouring so each node is visited once.
func (f *Forest) Validate() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(f.PrimaryParent))

	for _, start := range f.set.IDs() {
		if color[start] != white {
			continue
		}

		var path []string
		id := start
		for {
			if color[id] == black {
				break
			}
			if color[id] == gray {
				return cycleError(path[slices.Index(path, id):])
			}
			if !f.set.Has(id) {
				child := path[len(path)-1]
				return errs.New(errs.ErrCodeUndefinedParent,
					"node %q has unknown primary parent %q", child, id)
			}
			color[id] = gray
			path = append(path, id)

			parent, ok := f.PrimaryParent[id]
			if !ok {
				break
			}
			id = parent
		}

		for _, p := range path {
			color[p] = black
		}
	}

	return nil
}

func cycleError(loop []string) error {
	// Rotate so the message is stable regardless of where the walk entered.
	lowest := 0
	for i, id := range loop {
		if id < loop[lowest] {
			lowest = i
		}
	}
	ordered := append(slices.Clone(loop[lowest:]), loop[:lowest]...)
	ordered = append(ordered, ordered[0])
	return errs.New(errs.ErrCodeCycle, "primary parents form a cycle: %s", strings.Join(ordered, " -> "))
}

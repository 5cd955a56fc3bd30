// Package tree derives the primary-parent forest that drives diagram layout.
//
// Network equipment may be cabled to several upstream devices, but a tidy
// tree can only place a node under one of them. The forest keeps the first
// listed parent of every node (its primary parent) and discards the rest;
// secondary parents still become edges in the rendered diagram, they just do
// not influence placement.
//
// # Ordering
//
// Children are sorted by ID using byte-wise string comparison, and roots are
// ordered ONU-first: all ONU roots sorted by ID, followed by every other root
// sorted by ID. Both orders are part of the layout contract because they
// decide left-to-right placement.
package tree

import (
	"slices"

	"github.com/matzehuels/netdraw/pkg/network"
)

// Forest is the primary-parent view of a node set.
//
// A Forest is immutable after [Build] returns and is safe for concurrent
// reads.
type Forest struct {
	// PrimaryParent maps every node that has at least one parent to the
	// first entry of its Parents list.
	PrimaryParent map[string]string

	// Children maps every node ID (leaves included) to the IDs whose primary
	// parent it is, sorted ascending. Parent IDs absent from the set appear
	// as keys too so that their orphans are not lost.
	Children map[string][]string

	// Roots lists nodes without parents, ONU roots first.
	Roots []string

	set *network.Set
}

// Build constructs the forest for a node set. It never fails: unknown parent
// IDs are carried as-is and reported by [Forest.Validate].
func Build(set *network.Set) *Forest {
	f := &Forest{
		PrimaryParent: make(map[string]string, set.Len()),
		Children:      make(map[string][]string, set.Len()),
		set:           set,
	}

	for _, n := range set.Nodes() {
		if _, ok := f.Children[n.ID]; !ok {
			f.Children[n.ID] = nil
		}
	}

	var onuRoots, otherRoots []string
	for _, n := range set.Nodes() {
		parent := n.PrimaryParent()
		if parent == "" {
			if n.IsONU() {
				onuRoots = append(onuRoots, n.ID)
			} else {
				otherRoots = append(otherRoots, n.ID)
			}
			continue
		}
		f.PrimaryParent[n.ID] = parent
		f.Children[parent] = append(f.Children[parent], n.ID)
	}

	for id := range f.Children {
		slices.Sort(f.Children[id])
	}
	slices.Sort(onuRoots)
	slices.Sort(otherRoots)
	f.Roots = append(onuRoots, otherRoots...)

	return f
}

// Set returns the node set the forest was built from.
func (f *Forest) Set() *network.Set { return f.set }

// ChildrenOf returns the sorted children of id.
func (f *Forest) ChildrenOf(id string) []string { return f.Children[id] }

// IsRoot reports whether id has no primary parent.
func (f *Forest) IsRoot(id string) bool {
	_, hasParent := f.PrimaryParent[id]
	return !hasParent && f.set.Has(id)
}

// Reachable returns the number of nodes reachable from the roots.
// On a valid forest this equals the size of the node set.
func (f *Forest) Reachable() int {
	seen := make(map[string]bool)
	stack := slices.Clone(f.Roots)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			continue
		}
		seen[id] = true
		stack = append(stack, f.Children[id]...)
	}
	return len(seen)
}

// Depth returns the number of primary-parent hops from id to its root, or
// -1 when the chain is cyclic or ends at an unknown ID.
func (f *Forest) Depth(id string) int {
	depth := 0
	seen := map[string]bool{id: true}
	for {
		parent, ok := f.PrimaryParent[id]
		if !ok {
			if !f.set.Has(id) {
				return -1
			}
			return depth
		}
		if seen[parent] {
			return -1
		}
		seen[parent] = true
		id = parent
		depth++
	}
}

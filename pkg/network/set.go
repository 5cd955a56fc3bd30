package network

import (
	"encoding/json"
	"slices"

	errs "github.com/matzehuels/netdraw/pkg/errors"
)

// Set is an ordered, ID-indexed collection of nodes.
//
// Nodes are kept in the order they were added. A Set is not safe for
// concurrent mutation; the pipeline treats it as read-only after loading.
type Set struct {
	nodes []*Node
	index map[string]*Node
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{index: make(map[string]*Node)}
}

// NewSetFrom builds a set from nodes in the given order.
// SourceOrder is assigned from the slice position (starting at 1) for nodes
// that leave it zero.
func NewSetFrom(nodes ...Node) (*Set, error) {
	s := NewSet()
	for i, n := range nodes {
		if n.SourceOrder == 0 {
			n.SourceOrder = i + 1
		}
		if err := s.Add(n); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add appends a node, classifying it on the way in.
// Returns INVALID_INPUT for an empty ID and DUPLICATE_ID when the ID is
// already present.
func (s *Set) Add(n Node) error {
	if err := errs.ValidateNodeID(n.ID); err != nil {
		return err
	}
	if _, exists := s.index[n.ID]; exists {
		return errs.New(errs.ErrCodeDuplicateID, "duplicate node ID %q", n.ID)
	}
	n = n.clone()
	n.Kind = Classify(n.ID, n.Name)
	node := &n
	s.nodes = append(s.nodes, node)
	s.index[n.ID] = node
	return nil
}

// Get returns the node with the given ID.
func (s *Set) Get(id string) (*Node, bool) {
	n, ok := s.index[id]
	return n, ok
}

// Has reports whether a node with the given ID exists.
func (s *Set) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Nodes returns all nodes in source order.
// The returned slice is a copy; the nodes themselves are shared.
func (s *Set) Nodes() []*Node {
	return slices.Clone(s.nodes)
}

// Len returns the number of nodes.
func (s *Set) Len() int { return len(s.nodes) }

// IDs returns all node IDs in source order.
func (s *Set) IDs() []string {
	ids := make([]string, len(s.nodes))
	for i, n := range s.nodes {
		ids[i] = n.ID
	}
	return ids
}

// EdgeCount returns the number of parent references across all nodes.
// Every reference is drawn as one edge.
func (s *Set) EdgeCount() int {
	count := 0
	for _, n := range s.nodes {
		count += len(n.Parents)
	}
	return count
}

// VLANGroups maps each VLAN tag to its member IDs in source order.
// Nodes without a VLAN are not included.
func (s *Set) VLANGroups() map[int][]string {
	groups := make(map[int][]string)
	for _, n := range s.nodes {
		if n.VLAN != nil {
			groups[*n.VLAN] = append(groups[*n.VLAN], n.ID)
		}
	}
	return groups
}

// VLANTags returns the distinct VLAN tags in ascending order.
func (s *Set) VLANTags() []int {
	groups := s.VLANGroups()
	tags := make([]int, 0, len(groups))
	for tag := range groups {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// Notes returns the nodes with a non-blank note ordered by SourceOrder.
func (s *Set) Notes() []*Node {
	var noted []*Node
	for _, n := range s.nodes {
		if n.HasNote() {
			noted = append(noted, n)
		}
	}
	slices.SortStableFunc(noted, func(a, b *Node) int {
		return a.SourceOrder - b.SourceOrder
	})
	return noted
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	c := &Set{
		nodes: make([]*Node, len(s.nodes)),
		index: make(map[string]*Node, len(s.nodes)),
	}
	for i, n := range s.nodes {
		cp := n.clone()
		c.nodes[i] = &cp
		c.index[cp.ID] = &cp
	}
	return c
}

// MarshalJSON encodes the set as its list of nodes in source order.
// The encoding is canonical and is used as the content hash of the set.
func (s *Set) MarshalJSON() ([]byte, error) {
	nodes := make([]Node, len(s.nodes))
	for i, n := range s.nodes {
		nodes[i] = *n
	}
	return json.Marshal(nodes)
}

// UnmarshalJSON decodes a list of nodes, re-running classification.
func (s *Set) UnmarshalJSON(data []byte) error {
	var nodes []Node
	if err := json.Unmarshal(data, &nodes); err != nil {
		return err
	}
	fresh := NewSet()
	for _, n := range nodes {
		if err := fresh.Add(n); err != nil {
			return err
		}
	}
	*s = *fresh
	return nil
}

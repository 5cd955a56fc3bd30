package network

import (
	"strconv"
	"strings"
)

// Kind classifies a node for root ordering and styling.
type Kind int

const (
	// KindGeneric is every node that is not an ONU.
	KindGeneric Kind = iota
	// KindONU marks an optical network unit, the usual entry point of a site.
	KindONU
)

// String returns the lowercase kind name used in JSON exports and logs.
func (k Kind) String() string {
	switch k {
	case KindONU:
		return "onu"
	default:
		return "generic"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	if strings.EqualFold(string(b), "onu") {
		*k = KindONU
	} else {
		*k = KindGeneric
	}
	return nil
}

// Classify returns the kind implied by a node's ID and display name.
func Classify(id, name string) Kind {
	if strings.EqualFold(strings.TrimSpace(id), "ONU") || strings.EqualFold(strings.TrimSpace(name), "ONU") {
		return KindONU
	}
	return KindGeneric
}

// Node is a single piece of equipment.
//
// The zero value is not usable; ID must be set before adding to a [Set].
// Kind is overwritten by [Set.Add].
type Node struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	IP          string   `json:"ip,omitempty" yaml:"ip,omitempty"`
	VLAN        *int     `json:"vlan,omitempty" yaml:"vlan,omitempty"`
	Note        string   `json:"note,omitempty" yaml:"note,omitempty"`
	Parents     []string `json:"parents,omitempty" yaml:"parents,omitempty"`
	SourceOrder int      `json:"source_order" yaml:"-"`
	Kind        Kind     `json:"kind" yaml:"-"`
}

// IsONU reports whether the node was classified as an ONU.
func (n Node) IsONU() bool { return n.Kind == KindONU }

// HasVLAN reports whether the node belongs to a VLAN group.
func (n Node) HasVLAN() bool { return n.VLAN != nil }

// HasNote reports whether the node carries a non-blank annotation.
func (n Node) HasNote() bool { return strings.TrimSpace(n.Note) != "" }

// PrimaryParent returns the first parent reference, or "" for roots.
func (n Node) PrimaryParent() string {
	if len(n.Parents) == 0 {
		return ""
	}
	return n.Parents[0]
}

// VLANLabel returns "VLAN<tag>", or "" when the node has no VLAN.
func (n Node) VLANLabel() string {
	if n.VLAN == nil {
		return ""
	}
	return "VLAN" + strconv.Itoa(*n.VLAN)
}

// VLAN returns a pointer to tag, for building nodes in literals.
func VLAN(tag int) *int { return &tag }

func (n Node) clone() Node {
	c := n
	if n.VLAN != nil {
		c.VLAN = VLAN(*n.VLAN)
	}
	if n.Parents != nil {
		c.Parents = append([]string(nil), n.Parents...)
	}
	return c
}

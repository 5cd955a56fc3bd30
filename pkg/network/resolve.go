package network

import (
	"regexp"
	"strings"

	errs "github.com/matzehuels/netdraw/pkg/errors"
)

// maxSuggestedIDs caps the number of available IDs listed in an
// UNDEFINED_PARENT message.
const maxSuggestedIDs = 10

// numberedRef matches references of the form <letters><digits>, where letters
// include hiragana, katakana and CJK ideographs.
var numberedRef = regexp.MustCompile(`^([A-Za-z\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FFF}]+)(\d+)$`)

// Rewrite records a parent reference that was resolved by fuzzy matching.
type Rewrite struct {
	Child string // node whose Parents list was changed
	From  string // reference as written
	To    string // ID it now refers to
}

// ResolveReferences checks every parent reference against the set.
//
// References that match an ID exactly are left alone. Otherwise the first
// node (in source order) matching one of the fallbacks below is chosen and
// the reference is rewritten in place:
//
//  1. equal to the reference ignoring case after removing "_" and "-"
//  2. for a <letters><digits> reference, exactly <letters>_<digits> or
//     <letters><digits>
//
// A reference that matches nothing aborts with UNDEFINED_PARENT. Rewrites
// are returned in the order they were applied.
func (s *Set) ResolveReferences() ([]Rewrite, error) {
	var rewrites []Rewrite
	for _, n := range s.nodes {
		for i, ref := range n.Parents {
			if s.Has(ref) {
				continue
			}
			match, ok := s.findSimilar(ref)
			if !ok {
				return rewrites, errs.New(errs.ErrCodeUndefinedParent,
					"undefined parent %q referenced by %q (available: %s)",
					ref, n.ID, s.suggestIDs())
			}
			n.Parents[i] = match
			rewrites = append(rewrites, Rewrite{Child: n.ID, From: ref, To: match})
		}
	}
	return rewrites, nil
}

// UndefinedReferences returns every parent reference that does not name a
// node, as child ID → missing references. It never rewrites anything.
func (s *Set) UndefinedReferences() map[string][]string {
	missing := make(map[string][]string)
	for _, n := range s.nodes {
		for _, ref := range n.Parents {
			if !s.Has(ref) {
				missing[n.ID] = append(missing[n.ID], ref)
			}
		}
	}
	return missing
}

func (s *Set) findSimilar(ref string) (string, bool) {
	normalized := stripSeparators(ref)
	for _, n := range s.nodes {
		if strings.EqualFold(normalized, stripSeparators(n.ID)) {
			return n.ID, true
		}
	}

	m := numberedRef.FindStringSubmatch(ref)
	if m == nil {
		return "", false
	}
	underscored, joined := m[1]+"_"+m[2], m[1]+m[2]
	for _, n := range s.nodes {
		if n.ID == underscored || n.ID == joined {
			return n.ID, true
		}
	}
	return "", false
}

func (s *Set) suggestIDs() string {
	ids := s.IDs()
	if len(ids) > maxSuggestedIDs {
		return strings.Join(ids[:maxSuggestedIDs], ", ") + ", ..."
	}
	return strings.Join(ids, ", ")
}

func stripSeparators(s string) string {
	return strings.NewReplacer("_", "", "-", "").Replace(s)
}

package drawio

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var underscoreRun = regexp.MustCompile(`_+`)

// SafeIDs maps raw node IDs to cell IDs that are safe inside XML attributes
// and never clash with the structural cells "0" and "1".
//
// Each ID is trimmed, whitespace and the characters < > " ' & become
// underscores, runs of underscores collapse to one and leading or trailing
// underscores are dropped. An empty result becomes "node". The result gets
// an "n_" prefix. When two IDs map to the same candidate, later ones get
// "_1", "_2", ... in the order given.
func SafeIDs(ids []string) map[string]string {
	out := make(map[string]string, len(ids))
	used := make(map[string]bool, len(ids))
	for _, raw := range ids {
		if _, done := out[raw]; done {
			continue
		}
		base := "n_" + sanitize(raw)
		candidate := base
		for i := 1; used[candidate]; i++ {
			candidate = base + "_" + strconv.Itoa(i)
		}
		used[candidate] = true
		out[raw] = candidate
	}
	return out
}

func sanitize(id string) string {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		switch r {
		case '<', '>', '"', '\'', '&':
			return '_'
		}
		return r
	}, strings.TrimSpace(id))
	s = strings.Trim(underscoreRun.ReplaceAllString(s, "_"), "_")
	if s == "" {
		return "node"
	}
	return s
}

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer generates cache keys.
type Keyer interface {
	// DocumentKey identifies one rendered artifact of a node set.
	DocumentKey(setHash string, opts DocumentKeyOpts) string
	// ReleaseKey identifies a cached release check for a repository.
	ReleaseKey(owner, repo string) string
}

// DocumentKeyOpts lists every option that changes a rendered artifact.
type DocumentKeyOpts struct {
	Format      string  `json:"format"`
	NodeWidth   float64 `json:"node_width"`
	NodeHeight  float64 `json:"node_height"`
	GapX        float64 `json:"gap_x"`
	GapY        float64 `json:"gap_y"`
	MarginX     float64 `json:"margin_x"`
	MarginY     float64 `json:"margin_y"`
	PadX        float64 `json:"pad_x"`
	PadTop      float64 `json:"pad_top"`
	PadBottom   float64 `json:"pad_bottom"`
	FrameGap    float64 `json:"frame_gap"`
	Iterations  int     `json:"iterations"`
	SkipFrames  bool    `json:"skip_frames"`
	DiagramName string  `json:"diagram_name"`
	NoteWidth   float64 `json:"note_width"`
	NoteGap     float64 `json:"note_gap"`
	Detailed    bool    `json:"detailed,omitempty"`
}

// DefaultKeyer produces "doc:<sha256>" and "release:<owner>/<repo>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DocumentKey hashes the set hash together with every output option.
func (DefaultKeyer) DocumentKey(setHash string, opts DocumentKeyOpts) string {
	return hashKey("doc", setHash, opts)
}

// ReleaseKey returns a readable key for a repository.
func (DefaultKeyer) ReleaseKey(owner, repo string) string {
	return fmt.Sprintf("release:%s/%s", owner, repo)
}

var _ Keyer = DefaultKeyer{}

// Hash returns the hex SHA-256 of data. Node set hashes and file cache
// entry names are built from it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey joins prefix and the hash of the JSON-encoded parts. The parts
// are plain strings and tagged option structs, which always marshal.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

package drawio

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	errs "github.com/matzehuels/netdraw/pkg/errors"
	"github.com/matzehuels/netdraw/pkg/layout"
	"github.com/matzehuels/netdraw/pkg/network"
)

func mustSet(t *testing.T, nodes ...network.Node) *network.Set {
	t.Helper()
	s, err := network.NewSetFrom(nodes...)
	if err != nil {
		t.Fatalf("NewSetFrom: %v", err)
	}
	return s
}

func threeNodes(t *testing.T) (*network.Set, layout.Positions) {
	t.Helper()
	s := mustSet(t,
		network.Node{ID: "A", Name: "router"},
		network.Node{ID: "B", Name: "sw1", Parents: []string{"A"}},
		network.Node{ID: "C", Name: "sw2", IP: "10.0.0.3", Parents: []string{"A"}},
	)
	pos := layout.Positions{
		"A": {X: 135, Y: 40},
		"B": {X: 60, Y: 190},
		"C": {X: 210, Y: 190},
	}
	return s, pos
}

func cellIDs(f *File) []string {
	var ids []string
	for _, c := range f.Cells() {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestBuildThreeNodes(t *testing.T) {
	s, pos := threeNodes(t)

	f, rep := Build(s, pos, DefaultOptions())

	want := []string{"0", "1", "n_A", "n_B", "n_C", "e1", "e2"}
	if got := cellIDs(f); !reflect.DeepEqual(got, want) {
		t.Fatalf("cells = %v, want %v", got, want)
	}
	if rep.Nodes != 3 || rep.Edges != 2 || rep.Frames != 0 || rep.Notes != 0 {
		t.Errorf("Report = %+v", rep)
	}

	b, _ := f.Cell("n_B")
	if x, y, w, h := b.Geometry.Rect(); x != 60 || y != 190 || w != 120 || h != 70 {
		t.Errorf("n_B geometry = %d,%d %dx%d", x, y, w, h)
	}
	c, _ := f.Cell("n_C")
	if c.Value != "C<br>sw2<br>10.0.0.3" {
		t.Errorf("n_C value = %q", c.Value)
	}
	if c.Parent != "1" || !c.IsVertex() {
		t.Errorf("n_C parent=%q vertex=%q", c.Parent, c.Vertex)
	}

	for _, e := range f.Edges() {
		st := ParseStyle(e.Style)
		if st["entryX"] != "0.5" || st["exitX"] != "0.5" || st["exitY"] != "1" || st["entryY"] != "0" {
			t.Errorf("%s style = %v", e.ID, st)
		}
		if e.Source != "n_A" {
			t.Errorf("%s source = %q, want n_A", e.ID, e.Source)
		}
		if e.Geometry == nil || e.Geometry.Relative != "1" {
			t.Errorf("%s geometry = %+v", e.ID, e.Geometry)
		}
	}
}

func TestBuildMultiParentEntryPoints(t *testing.T) {
	s := mustSet(t,
		network.Node{ID: "P1"},
		network.Node{ID: "P2"},
		network.Node{ID: "P3"},
		network.Node{ID: "X", Parents: []string{"P1", "P2", "P3"}},
		network.Node{ID: "Y", Parents: []string{"P1", "P2"}},
	)
	f, _ := Build(s, layout.Positions{}, DefaultOptions())

	want := map[string]string{
		"e1": "0.25", "e2": "0.5", "e3": "0.75",
		"e4": "0.3333333333333333", "e5": "0.6666666666666666",
	}
	edges := f.Edges()
	if len(edges) != len(want) {
		t.Fatalf("got %d edges, want %d", len(edges), len(want))
	}
	for _, e := range edges {
		if got := ParseStyle(e.Style)["entryX"]; got != want[e.ID] {
			t.Errorf("%s entryX = %s, want %s", e.ID, got, want[e.ID])
		}
	}
	if edges[3].Source != "n_P1" || edges[3].Target != "n_Y" {
		t.Errorf("e4 = %s -> %s", edges[3].Source, edges[3].Target)
	}
}

func TestEntryX(t *testing.T) {
	tests := []struct {
		i, n int
		want float64
	}{
		{0, 1, 0.5},
		{0, 2, 1.0 / 3},
		{1, 2, 2.0 / 3},
		{3, 4, 0.8},
	}
	for _, tt := range tests {
		if got := EntryX(tt.i, tt.n); got != tt.want {
			t.Errorf("EntryX(%d, %d) = %g, want %g", tt.i, tt.n, got, tt.want)
		}
	}
}

func TestBuildMissingPositionUsesDefault(t *testing.T) {
	s := mustSet(t, network.Node{ID: "lost"})

	f, rep := Build(s, layout.Positions{}, DefaultOptions())

	if !reflect.DeepEqual(rep.MissingPositions, []string{"lost"}) {
		t.Errorf("MissingPositions = %v", rep.MissingPositions)
	}
	c, _ := f.Cell("n_lost")
	if x, y, _, _ := c.Geometry.Rect(); x != 60 || y != 40 {
		t.Errorf("default position = %d,%d, want 60,40", x, y)
	}
}

func TestBuildDanglingEdgeSkipped(t *testing.T) {
	s := mustSet(t,
		network.Node{ID: "A"},
		network.Node{ID: "B", Parents: []string{"ghost", "A"}},
	)
	f, rep := Build(s, layout.Positions{}, DefaultOptions())

	if !reflect.DeepEqual(rep.DanglingEdges, []string{"ghost -> B"}) {
		t.Errorf("DanglingEdges = %v", rep.DanglingEdges)
	}
	edges := f.Edges()
	if len(edges) != 1 || edges[0].ID != "e1" || edges[0].Source != "n_A" {
		t.Fatalf("edges = %+v", edges)
	}
	if got := ParseStyle(edges[0].Style)["entryX"]; got != "0.6666666666666666" {
		t.Errorf("entryX = %s, want position of second parent", got)
	}
}

func TestBuildONUStyle(t *testing.T) {
	s := mustSet(t,
		network.Node{ID: "ONU"},
		network.Node{ID: "R", Name: "onu"},
		network.Node{ID: "S"},
	)
	f, _ := Build(s, layout.Positions{}, DefaultOptions())

	for id, fill := range map[string]string{"n_ONU": "#cfe2f3", "n_R": "#cfe2f3", "n_S": "#f5f5f5"} {
		c, _ := f.Cell(id)
		st := ParseStyle(c.Style)
		if st["fillColor"] != fill || st["rounded"] != "1" {
			t.Errorf("%s style = %v", id, st)
		}
	}
}

func TestBuildFramesBeforeNodes(t *testing.T) {
	s := mustSet(t,
		network.Node{ID: "A", VLAN: network.VLAN(20)},
		network.Node{ID: "B", VLAN: network.VLAN(10), Parents: []string{"A"}},
	)
	pos := layout.Positions{"A": {X: 60, Y: 40}, "B": {X: 60, Y: 190}}

	f, rep := Build(s, pos, DefaultOptions())

	want := []string{"0", "1", "frame_10", "frame_20", "n_A", "n_B", "e1"}
	if got := cellIDs(f); !reflect.DeepEqual(got, want) {
		t.Fatalf("cells = %v, want %v", got, want)
	}
	if rep.Frames != 2 {
		t.Errorf("Frames = %d", rep.Frames)
	}

	fr, _ := f.Cell("frame_10")
	if fr.Value != "VLAN10" {
		t.Errorf("frame value = %q", fr.Value)
	}
	if x, y, w, h := fr.Geometry.Rect(); x != 35 || y != 145 || w != 170 || h != 140 {
		t.Errorf("frame geometry = %d,%d %dx%d", x, y, w, h)
	}
	if ParseStyle(fr.Style)["fillColor"] != FrameColor(10) {
		t.Errorf("frame fill = %q", fr.Style)
	}

	opts := DefaultOptions()
	opts.OmitFrames = true
	f, rep = Build(s, pos, opts)
	if _, ok := f.Cell("frame_10"); ok || rep.Frames != 0 {
		t.Error("OmitFrames still produced frame cells")
	}
}

func TestFrameColor(t *testing.T) {
	tests := []struct {
		tag  int
		want string
	}{
		{1, "#dae8fc"},
		{2, "#d5e8d4"},
		{7, "#fce5cd"},
		{8, "#dae8fc"},
		{0, "#fce5cd"},
		{-1, "#d0e0e3"},
		{100, "#d5e8d4"},
	}
	for _, tt := range tests {
		if got := FrameColor(tt.tag); got != tt.want {
			t.Errorf("FrameColor(%d) = %s, want %s", tt.tag, got, tt.want)
		}
	}
}

func TestBuildNoteBox(t *testing.T) {
	s := mustSet(t,
		network.Node{ID: "A", Name: "router", Note: "rack 1", SourceOrder: 2},
		network.Node{ID: "B", Name: "sw", Parents: []string{"A"}, Note: "  ", SourceOrder: 1},
		network.Node{ID: "C", Name: "ap<1>", Parents: []string{"A"}, Note: "ceiling", SourceOrder: 3},
	)
	pos := layout.Positions{
		"A": {X: 135, Y: 40},
		"B": {X: 60, Y: 190},
		"C": {X: 210, Y: 190},
	}

	f, rep := Build(s, pos, DefaultOptions())

	if rep.Notes != 2 {
		t.Errorf("Notes = %d, want 2", rep.Notes)
	}
	ids := cellIDs(f)
	if ids[len(ids)-1] != NoteCellID {
		t.Fatalf("last cell = %s, want %s", ids[len(ids)-1], NoteCellID)
	}
	note, _ := f.Cell(NoteCellID)
	wantValue := "■ router<br>rack 1<br><br>■ ap&lt;1&gt;<br>ceiling"
	if note.Value != wantValue {
		t.Errorf("note value = %q, want %q", note.Value, wantValue)
	}
	// 5 lines -> max(60, 5*18+20)
	if x, y, w, h := note.Geometry.Rect(); x != 380 || y != 40 || w != 280 || h != 110 {
		t.Errorf("note geometry = %d,%d %dx%d", x, y, w, h)
	}
}

func TestBuildShortNoteMinimumHeight(t *testing.T) {
	s := mustSet(t, network.Node{ID: "A", Note: "x"})
	f, _ := Build(s, layout.Positions{"A": {X: 60, Y: 40}}, DefaultOptions())

	note, ok := f.Cell(NoteCellID)
	if !ok {
		t.Fatal("note box missing")
	}
	if _, _, _, h := note.Geometry.Rect(); h != 60 {
		t.Errorf("height = %d, want 60", h)
	}
}

func TestBuildNoNotesNoBox(t *testing.T) {
	s, pos := threeNodes(t)
	f, _ := Build(s, pos, DefaultOptions())
	if _, ok := f.Cell(NoteCellID); ok {
		t.Error("note box emitted without notes")
	}
}

func TestSafeIDs(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want map[string]string
	}{
		{
			name: "plain",
			in:   []string{"SW1"},
			want: map[string]string{"SW1": "n_SW1"},
		},
		{
			name: "collisions in order",
			in:   []string{"a b", "a_b", "a<b>", "a__b"},
			want: map[string]string{"a b": "n_a_b", "a_b": "n_a_b_1", "a<b>": "n_a_b_2", "a__b": "n_a_b_3"},
		},
		{
			name: "empty after sanitizing",
			in:   []string{"  &  ", "\"'"},
			want: map[string]string{"  &  ": "n_node", "\"'": "n_node_1"},
		},
		{
			name: "unicode kept",
			in:   []string{"機器 1\t"},
			want: map[string]string{"機器 1\t": "n_機器_1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeIDs(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SafeIDs(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseStyle(t *testing.T) {
	got := ParseStyle("rounded=1;html=1;ellipse;;fillColor=#fff;")
	want := map[string]string{"rounded": "1", "html": "1", "ellipse": "", "fillColor": "#fff"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseStyle = %v, want %v", got, want)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	s := mustSet(t,
		network.Node{ID: "A & B", Name: `"quoted"`, Note: "line1\nline2", VLAN: network.VLAN(3)},
		network.Node{ID: "C", Parents: []string{"A & B"}, VLAN: network.VLAN(3)},
	)
	pos := layout.Positions{"A & B": {X: 60, Y: 40}, "C": {X: 60, Y: 190}}
	f, _ := Build(s, pos, DefaultOptions())

	data, err := Marshal(f)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.HasPrefix(data, []byte(`<?xml version="1.0" encoding="UTF-8"?>`)) {
		t.Errorf("missing XML declaration: %.60s", data)
	}
	if bytes.HasPrefix(data, []byte("\xef\xbb\xbf")) {
		t.Error("output starts with a BOM")
	}
	for _, want := range []string{`<mxfile host="app.diagrams.net"`, `<diagram name="Network"`, `pageWidth="827"`} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("output missing %s", want)
		}
	}

	back, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(back.Cells(), f.Cells()) {
		t.Errorf("cells changed in round trip:\n got %+v\nwant %+v", back.Cells(), f.Cells())
	}
	a, _ := back.Cell("n_A_B")
	if a.Value != "A &amp; B<br>&#34;quoted&#34;" {
		t.Errorf("decoded label = %q", a.Value)
	}
	if back.Diagrams[0].ID != f.Diagrams[0].ID {
		t.Error("diagram id changed in round trip")
	}
}

func TestMarshalDeterministic(t *testing.T) {
	s1, pos1 := threeNodes(t)
	s2, pos2 := threeNodes(t)

	f1, _ := Build(s1, pos1, DefaultOptions())
	f2, _ := Build(s2, pos2, DefaultOptions())
	d1, _ := Marshal(f1)
	d2, _ := Marshal(f2)

	if !bytes.Equal(d1, d2) {
		t.Error("identical input produced different documents")
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestEncodeWriteFailure(t *testing.T) {
	s, pos := threeNodes(t)
	f, _ := Build(s, pos, DefaultOptions())

	err := Encode(failWriter{}, f)
	if !errs.Is(err, errs.ErrCodeSerializationIO) {
		t.Fatalf("Encode error = %v, want SERIALIZATION_IO", err)
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("cause not preserved: %v", err)
	}
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode(strings.NewReader("<mxfile><diagram"))
	if !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("Decode error = %v, want INVALID_FORMAT", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	opts := DefaultOptions()
	opts.NoteWidth = -1
	if err := opts.Validate(); !errs.Is(err, errs.ErrCodeInvalidOptions) {
		t.Errorf("Validate = %v, want INVALID_OPTIONS", err)
	}
	if err := DefaultOptions().Validate(); err != nil {
		t.Errorf("default options invalid: %v", err)
	}
}

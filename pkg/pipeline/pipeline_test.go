package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/netdraw/pkg/cache"
	"github.com/matzehuels/netdraw/pkg/drawio"
	errs "github.com/matzehuels/netdraw/pkg/errors"
	"github.com/matzehuels/netdraw/pkg/frame"
	"github.com/matzehuels/netdraw/pkg/layout"
	"github.com/matzehuels/netdraw/pkg/network"
	"github.com/matzehuels/netdraw/pkg/observability"
	"github.com/matzehuels/netdraw/pkg/render/layoutjson"
	"github.com/matzehuels/netdraw/pkg/source"
)

func sampleSet(t *testing.T) *network.Set {
	t.Helper()
	s, err := network.NewSetFrom(
		network.Node{ID: "ONU", SourceOrder: 1},
		network.Node{ID: "RT1", Name: "router", Parents: []string{"ONU"}, SourceOrder: 2},
		network.Node{ID: "SW1", Parents: []string{"RT1"}, VLAN: network.VLAN(10), SourceOrder: 3},
		network.Node{ID: "SW2", Parents: []string{"RT1"}, VLAN: network.VLAN(20), SourceOrder: 4},
		network.Node{ID: "AP1", Parents: []string{"SW1", "SW2"}, VLAN: network.VLAN(10), Note: "ceiling", SourceOrder: 5},
	)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"drawio", false},
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"xml", true},
		{"DRAWIO", true}, // normalized by SetDefaults, not by ValidateFormat
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errs.Is(err, errs.ErrCodeInvalidOptions) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errs.GetCode(err))
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Layout: layout.Options{NodeWidth: 200, NodeHeight: 90, GapX: 10}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatDrawIO {
		t.Errorf("Formats = %v, want [drawio]", opts.Formats)
	}
	if opts.Frame.NodeWidth != 200 || opts.Frame.NodeHeight != 90 {
		t.Errorf("frame node size = %gx%g, want layout size", opts.Frame.NodeWidth, opts.Frame.NodeHeight)
	}
	if opts.Diagram.Frame != opts.Frame {
		t.Error("diagram frame options should follow frame options")
	}
	if opts.Frame.Gap != frame.DefaultGap {
		t.Errorf("Frame.Gap = %g, want default", opts.Frame.Gap)
	}
	if opts.Diagram.DiagramName != drawio.DefaultName {
		t.Errorf("DiagramName = %q", opts.Diagram.DiagramName)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsFormatsNormalized(t *testing.T) {
	opts := Options{Formats: []string{"DrawIO", " json", "drawio", ""}}
	opts.SetDefaults()
	if strings.Join(opts.Formats, ",") != "drawio,json" {
		t.Errorf("Formats = %v", opts.Formats)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"format", Options{Formats: []string{"gif"}}},
		{"negative gap", Options{Layout: layout.Options{NodeWidth: 1, NodeHeight: 1, GapX: -1}}},
		{"negative padding", Options{Frame: frame.Options{PadX: -5}}},
		{"negative note width", Options{Diagram: drawio.Options{NoteWidth: -1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errs.Is(err, errs.ErrCodeInvalidOptions) {
				t.Errorf("err = %v, want INVALID_OPTIONS", err)
			}
		})
	}
}

func TestSkipFramesOmitsFrames(t *testing.T) {
	opts := Options{SkipFrames: true}
	opts.SetDefaults()
	if !opts.Diagram.OmitFrames {
		t.Error("SkipFrames should set Diagram.OmitFrames")
	}
}

func TestDocumentKeyOpts(t *testing.T) {
	a := Options{}
	a.SetDefaults()
	b := a
	b.Frame.Gap = 99

	k := cache.NewDefaultKeyer()
	if k.DocumentKey("h", a.DocumentKeyOpts("drawio")) == k.DocumentKey("h", b.DocumentKeyOpts("drawio")) {
		t.Error("frame gap should change the document key")
	}
	if k.DocumentKey("h", a.DocumentKeyOpts("drawio")) == k.DocumentKey("h", a.DocumentKeyOpts("json")) {
		t.Error("format should change the document key")
	}
}

func TestExecute(t *testing.T) {
	set := sampleSet(t)
	runner := NewRunner(nil, nil, nil)

	res, err := runner.Execute(context.Background(), set, Options{Formats: []string{FormatDrawIO, FormatJSON, FormatDOT}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Stats.NodeCount != 5 || res.Stats.EdgeCount != 5 || res.Stats.RootCount != 1 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if len(res.Positions) != 5 {
		t.Errorf("positions for %d nodes, want 5", len(res.Positions))
	}
	if len(res.Frames) != 2 || res.Frames[0].Tag != 10 || res.Frames[1].Tag != 20 {
		t.Errorf("Frames = %+v", res.Frames)
	}
	if res.Report.Nodes != 5 || res.Report.Edges != 5 || res.Report.Notes != 1 {
		t.Errorf("Report = %+v", res.Report)
	}
	if res.CacheHit {
		t.Error("NullCache run should not report a cache hit")
	}

	f, err := drawio.Decode(bytes.NewReader(res.Artifacts[FormatDrawIO]))
	if err != nil {
		t.Fatalf("decode drawio artifact: %v", err)
	}
	if len(f.Edges()) != 5 {
		t.Errorf("drawio edges = %d, want 5", len(f.Edges()))
	}

	var doc layoutjson.Document
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &doc); err != nil {
		t.Fatalf("decode json artifact: %v", err)
	}
	if len(doc.Nodes) != 5 || doc.Resolution == nil {
		t.Errorf("json artifact = %+v", doc)
	}

	if !bytes.HasPrefix(res.Artifacts[FormatDOT], []byte("digraph network {")) {
		t.Errorf("dot artifact = %.40s", res.Artifacts[FormatDOT])
	}
}

func TestExecuteFramesDoNotOverlap(t *testing.T) {
	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), sampleSet(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Resolution.Converged {
		t.Fatalf("resolution did not converge: %+v", res.Resolution)
	}
	a, b := res.Frames[0].Bounds, res.Frames[1].Bounds
	if a.OverlapsVertically(b) && a.HorizontalGap(b) < frame.DefaultGap-1e-9 && b.HorizontalGap(a) < frame.DefaultGap-1e-9 {
		t.Errorf("frames still collide: %+v %+v", a, b)
	}
}

func TestExecuteDoesNotModifyInput(t *testing.T) {
	set := sampleSet(t)
	before, _ := json.Marshal(set)
	if _, err := NewRunner(nil, nil, nil).Execute(context.Background(), set, Options{}); err != nil {
		t.Fatal(err)
	}
	after, _ := json.Marshal(set)
	if !bytes.Equal(before, after) {
		t.Error("Execute modified the node set")
	}
}

func TestExecuteDeterministic(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	a, err := runner.Execute(context.Background(), sampleSet(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := runner.Execute(context.Background(), sampleSet(t), Options{})
	if !bytes.Equal(a.Artifacts[FormatDrawIO], b.Artifacts[FormatDrawIO]) {
		t.Error("drawio output differs between runs")
	}
}

func TestExecuteErrors(t *testing.T) {
	cycle, _ := network.NewSetFrom(
		network.Node{ID: "ROOT"},
		network.Node{ID: "A", Parents: []string{"B"}},
		network.Node{ID: "B", Parents: []string{"A"}},
	)
	selfParent, _ := network.NewSetFrom(
		network.Node{ID: "A", Parents: []string{"A"}},
	)
	allParented, _ := network.NewSetFrom(
		network.Node{ID: "A", Parents: []string{"B"}},
		network.Node{ID: "B", Parents: []string{"A"}},
	)

	tests := []struct {
		name string
		set  *network.Set
		code errs.Code
	}{
		{"empty", network.NewSet(), errs.ErrCodeNoData},
		{"nil", nil, errs.ErrCodeNoData},
		{"cycle", cycle, errs.ErrCodeCycle},
		{"self parent", selfParent, errs.ErrCodeNoRoot},
		{"every node parented", allParented, errs.ErrCodeNoRoot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRunner(nil, nil, nil).Execute(context.Background(), tt.set, Options{})
			if !errs.Is(err, tt.code) {
				t.Errorf("err = %v (code %s), want %s", err, errs.GetCode(err), tt.code)
			}
		})
	}
}

func TestExecuteCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	ctx := context.Background()

	first, err := runner.Execute(ctx, sampleSet(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHit {
		t.Error("first run should miss")
	}

	second, err := runner.Execute(ctx, sampleSet(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheHit {
		t.Error("second run should hit")
	}
	if !bytes.Equal(first.Artifacts[FormatDrawIO], second.Artifacts[FormatDrawIO]) {
		t.Error("cached artifact differs from rendered artifact")
	}
	if second.Report.Nodes != first.Report.Nodes || second.Report.Edges != first.Report.Edges {
		t.Error("report should be rebuilt on a cache hit")
	}

	refreshed, _ := runner.Execute(ctx, sampleSet(t), Options{Refresh: true})
	if refreshed.CacheHit {
		t.Error("Refresh should bypass the cache")
	}

	other, _ := runner.Execute(ctx, sampleSet(t), Options{SkipFrames: true})
	if other.CacheHit {
		t.Error("different options should not share cache entries")
	}
}

func TestExecuteHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()

	h := &recordingHooks{}
	observability.SetPipelineHooks(h)

	if _, err := NewRunner(nil, nil, nil).Execute(context.Background(), sampleSet(t), Options{}); err != nil {
		t.Fatal(err)
	}
	want := "layout-start,layout-complete,frames,render-start,render-complete"
	if got := strings.Join(h.events, ","); got != want {
		t.Errorf("events = %s, want %s", got, want)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	events []string
}

func (h *recordingHooks) OnLayoutStart(context.Context, int) {
	h.events = append(h.events, "layout-start")
}

func (h *recordingHooks) OnLayoutComplete(context.Context, int, time.Duration, error) {
	h.events = append(h.events, "layout-complete")
}

func (h *recordingHooks) OnFramesResolved(context.Context, int, int, bool) {
	h.events = append(h.events, "frames")
}

func (h *recordingHooks) OnRenderStart(context.Context, []string) {
	h.events = append(h.events, "render-start")
}

func (h *recordingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.events = append(h.events, "render-complete")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.csv")
	if err := os.WriteFile(path, []byte("id,name,parents\nONU,,\nRT1,router,ONU\n"), 0644); err != nil {
		t.Fatal(err)
	}
	set, err := Load(context.Background(), path, source.Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if set.Len() != 2 {
		t.Errorf("Len = %d, want 2", set.Len())
	}

	set, err = LoadReader(context.Background(), "csv", strings.NewReader("id\nA\n"), source.Options{})
	if err != nil || set.Len() != 1 {
		t.Errorf("LoadReader = %v, %v", set, err)
	}
}

func TestWriteArtifact(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "network.drawio")
	if err := WriteArtifact(path, []byte("<mxfile/>")); err != nil {
		t.Fatalf("WriteArtifact: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "<mxfile/>" {
		t.Errorf("written = %q", data)
	}

	// A regular file cannot be used as a directory.
	blocker := filepath.Join(dir, "file")
	_ = os.WriteFile(blocker, nil, 0644)
	err := WriteArtifact(filepath.Join(blocker, "x.drawio"), nil)
	if !errs.Is(err, errs.ErrCodeSerializationIO) {
		t.Errorf("err = %v, want SERIALIZATION_IO", err)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input, output, format string
		multi                 bool
		want                  string
	}{
		{"data/net.xlsx", "", "drawio", false, filepath.Join("data", "network.drawio")},
		{"net.xlsx", "", "json", true, "network.json"},
		{"net.xlsx", "office", "drawio", false, "office.drawio"},
		{"net.xlsx", "office.drawio", "drawio", false, "office.drawio"},
		{"net.xlsx", "office.DRAWIO", "drawio", false, "office.DRAWIO"},
		{"net.xlsx", "office.drawio", "svg", true, "office.svg"},
		{"net.xlsx", "office.v2", "svg", true, "office.v2.svg"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := OutputPath(tt.input, tt.output, tt.format, tt.multi); got != tt.want {
				t.Errorf("OutputPath(%q, %q, %q) = %q, want %q", tt.input, tt.output, tt.format, got, tt.want)
			}
		})
	}
}

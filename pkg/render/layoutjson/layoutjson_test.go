package layoutjson

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/netdraw/pkg/frame"
	"github.com/matzehuels/netdraw/pkg/layout"
	"github.com/matzehuels/netdraw/pkg/network"
)

func TestRender(t *testing.T) {
	set, err := network.NewSetFrom(
		network.Node{ID: "ONU"},
		network.Node{ID: "A", Name: "a", Parents: []string{"ONU"}, VLAN: network.VLAN(10)},
		network.Node{ID: "B", Parents: []string{"A", "ONU"}, VLAN: network.VLAN(10)},
	)
	if err != nil {
		t.Fatal(err)
	}
	pos := layout.Positions{"ONU": {X: 60, Y: 40}, "A": {X: 60, Y: 190}}
	groups := set.VLANGroups()
	frames := frame.Frames(groups, pos, frame.DefaultOptions())

	data, err := Render(set, pos, WithFrames(frames), WithResolution(frame.Result{Rounds: 1, Converged: true}))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if len(doc.Nodes) != 3 || doc.Nodes[0].ID != "ONU" || doc.Nodes[0].Kind != "onu" {
		t.Fatalf("Nodes = %+v", doc.Nodes)
	}
	if !doc.Nodes[2].Missing || doc.Nodes[2].X != 60 || doc.Nodes[2].Y != 40 {
		t.Errorf("unpositioned node = %+v", doc.Nodes[2])
	}
	if doc.Width != 240 || doc.Height != 300 {
		t.Errorf("size = %gx%g, want 240x300", doc.Width, doc.Height)
	}

	wantEdges := []Edge{
		{From: "ONU", To: "A", Primary: true, EntryX: 0.5},
		{From: "A", To: "B", Primary: true, EntryX: 1.0 / 3},
		{From: "ONU", To: "B", Primary: false, EntryX: 2.0 / 3},
	}
	if len(doc.Edges) != len(wantEdges) {
		t.Fatalf("Edges = %+v", doc.Edges)
	}
	for i, e := range wantEdges {
		if doc.Edges[i] != e {
			t.Errorf("Edges[%d] = %+v, want %+v", i, doc.Edges[i], e)
		}
	}

	if len(doc.Frames) != 1 || doc.Frames[0].Label != "VLAN10" || doc.Frames[0].Width != 170 {
		t.Errorf("Frames = %+v", doc.Frames)
	}
	if doc.Resolution == nil || !doc.Resolution.Converged {
		t.Errorf("Resolution = %+v", doc.Resolution)
	}
}

func TestRenderNodeSize(t *testing.T) {
	set, _ := network.NewSetFrom(network.Node{ID: "A"})
	doc := Build(set, layout.Positions{"A": {X: 0, Y: 0}}, WithNodeSize(10, 20))

	if doc.NodeWidth != 10 || doc.NodeHeight != 20 {
		t.Errorf("node size = %gx%g", doc.NodeWidth, doc.NodeHeight)
	}
	if doc.Frames != nil || doc.Resolution != nil {
		t.Error("frames and resolution should be omitted by default")
	}
}

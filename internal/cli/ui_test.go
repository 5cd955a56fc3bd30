package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/netdraw/pkg/drawio"
	"github.com/matzehuels/netdraw/pkg/frame"
	"github.com/matzehuels/netdraw/pkg/pipeline"
)

// captureOut redirects command output to a buffer for the rest of the test.
func captureOut(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := out
	out = &buf
	t.Cleanup(func() { out = prev })
	return &buf
}

func TestJoinIDs(t *testing.T) {
	tests := []struct {
		ids  []string
		want string
	}{
		{nil, ""},
		{[]string{"ONU", "RT1"}, "ONU, RT1"},
		{[]string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}, "a, b, c, d, e, f, g, h and 2 more"},
	}
	for _, tt := range tests {
		if got := joinIDs(tt.ids); got != tt.want {
			t.Errorf("joinIDs(%v) = %q, want %q", tt.ids, got, tt.want)
		}
	}
}

func TestPrintStats(t *testing.T) {
	buf := captureOut(t)

	printStats(pipeline.Stats{NodeCount: 1, EdgeCount: 4, FrameCount: 2}, true)
	got := buf.String()
	for _, want := range []string{"1 node", "4 edges", "2 VLANs", "cached"} {
		if !strings.Contains(got, want) {
			t.Errorf("printStats output %q missing %q", got, want)
		}
	}

	buf.Reset()
	printStats(pipeline.Stats{NodeCount: 3}, false)
	if got := buf.String(); strings.Contains(got, "edge") || !strings.Contains(got, "fresh") {
		t.Errorf("printStats output = %q", got)
	}
}

func TestPrintReport(t *testing.T) {
	buf := captureOut(t)

	printReport(&pipeline.Result{Resolution: frame.Result{Converged: true}})
	if buf.Len() != 0 {
		t.Errorf("clean report printed %q", buf.String())
	}

	printReport(&pipeline.Result{
		Resolution: frame.Result{Converged: false, Rounds: 30},
		Report: drawio.Report{
			MissingPositions: []string{"AP9"},
			DanglingEdges:    []string{"ghost -> AP1", "ghost -> AP2"},
		},
	})
	got := buf.String()
	for _, want := range []string{
		"after 30 rounds",
		"No position for 1 node",
		"AP9",
		"Skipped 2 edges to unknown nodes",
		"ghost -> AP1, ghost -> AP2",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q:\n%s", want, got)
		}
	}
}

func TestPrintVLAN(t *testing.T) {
	buf := captureOut(t)
	printVLAN(10, []string{"SW1", "AP1"})
	if got := buf.String(); !strings.Contains(got, "VLAN10") || !strings.Contains(got, "SW1, AP1") {
		t.Errorf("printVLAN output = %q", got)
	}
}

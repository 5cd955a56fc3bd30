// Package dot renders a node set as a Graphviz graph.
//
// The DOT output is a quick preview of the topology: Graphviz computes its
// own layout, so positions differ from the draw.io document, but every node,
// every parent reference and every VLAN group is present. VLAN groups become
// clusters filled with the same palette as the draw.io frames and ONUs use
// the ONU colors.
//
//	src := dot.ToDOT(set, dot.Options{})
//	svg, err := dot.RenderSVG(ctx, src)
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/netdraw/pkg/drawio"
	errs "github.com/matzehuels/netdraw/pkg/errors"
	"github.com/matzehuels/netdraw/pkg/network"
)

// Options configures DOT generation.
type Options struct {
	// Detailed adds the IP address and note to node labels.
	Detailed bool
	// NoClusters draws VLAN members as plain nodes.
	NoClusters bool
}

// ToDOT converts a node set to Graphviz DOT source. Output is deterministic:
// clusters appear in ascending tag order and nodes in source order.
func ToDOT(set *network.Set, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph network {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=\"#f5f5f5\", color=\"#666666\", fontsize=12];\n")
	buf.WriteString("  edge [arrowhead=none, color=\"#666666\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	clustered := make(map[string]bool)
	if !opts.NoClusters {
		groups := set.VLANGroups()
		for _, tag := range set.VLANTags() {
			fmt.Fprintf(&buf, "  subgraph \"cluster_vlan%d\" {\n", tag)
			fmt.Fprintf(&buf, "    label=%q;\n", "VLAN"+strconv.Itoa(tag))
			buf.WriteString("    labeljust=r;\n")
			fmt.Fprintf(&buf, "    style=filled; fillcolor=%q; color=\"#666666\";\n", drawio.FrameColor(tag))
			for _, id := range groups[tag] {
				n, _ := set.Get(id)
				fmt.Fprintf(&buf, "    %s\n", fmtNode(n, opts.Detailed))
				clustered[id] = true
			}
			buf.WriteString("  }\n")
		}
	}

	for _, n := range set.Nodes() {
		if !clustered[n.ID] {
			fmt.Fprintf(&buf, "  %s\n", fmtNode(n, opts.Detailed))
		}
	}

	buf.WriteString("\n")
	for _, n := range set.Nodes() {
		for i, parent := range n.Parents {
			if i == 0 {
				fmt.Fprintf(&buf, "  %q -> %q;\n", parent, n.ID)
			} else {
				fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", parent, n.ID)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtNode(n *network.Node, detailed bool) string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, detailed))}
	if n.IsONU() {
		attrs = append(attrs, `fillcolor="#cfe2f3"`, `color="#1c4587"`)
	}
	return fmt.Sprintf("%q [%s];", n.ID, strings.Join(attrs, ", "))
}

func fmtLabel(n *network.Node, detailed bool) string {
	parts := []string{n.ID}
	if n.Name != "" && n.Name != n.ID {
		parts = append(parts, n.Name)
	}
	if detailed {
		if n.IP != "" {
			parts = append(parts, n.IP)
		}
		if n.HasNote() {
			parts = append(parts, n.Note)
		}
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders DOT source to SVG using the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "render SVG")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root element with a zero-origin
// viewBox sized to the drawing.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

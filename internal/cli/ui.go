package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/netdraw/pkg/drawio"
	"github.com/matzehuels/netdraw/pkg/pipeline"
)

// out receives all human-readable command output. Logs go to stderr.
var out io.Writer = os.Stdout

// =============================================================================
// Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // ONU rows, spinner
	colorGreen  = lipgloss.Color("35")  // success, cache hits
	colorYellow = lipgloss.Color("220") // warnings
	colorRed    = lipgloss.Color("167") // errors
	colorBlue   = lipgloss.Color("75")  // commands
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // labels
	colorDim    = lipgloss.Color("240") // muted text
	colorInk    = lipgloss.Color("#333333")
)

var (
	// StyleTitle for headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning text.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleLabel   = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCached  = lipgloss.NewStyle().Foreground(colorGreen)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"

	// maxListedIDs caps how many node IDs a single line names.
	maxListedIDs = 8
)

// =============================================================================
// Status Lines
// =============================================================================

func printLine(icon lipgloss.Style, glyph, msg string) {
	fmt.Fprintln(out, icon.Render(glyph)+" "+msg)
}

func printSuccess(format string, args ...any) {
	printLine(styleIconSuccess, iconSuccess, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	printLine(styleIconError, iconError, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	printLine(styleIconWarning, iconWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	printLine(styleIconInfo, iconInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, muted line under a status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(out, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Fprintln(out, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(out, styleLabel.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep suggests the command to run next.
func printNextStep(description, cmd string) {
	fmt.Fprintln(out, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(out)
}

// =============================================================================
// Diagram Output
// =============================================================================

// vlanChip renders "VLAN<tag>" on the fill color its frame gets in the
// diagram, so terminal output and the drawing match.
func vlanChip(tag int) string {
	return lipgloss.NewStyle().
		Foreground(colorInk).
		Background(lipgloss.Color(drawio.FrameColor(tag))).
		Padding(0, 1).
		Render("VLAN" + strconv.Itoa(tag))
}

// printVLAN prints one VLAN group as a colored chip followed by its members.
func printVLAN(tag int, ids []string) {
	fmt.Fprintln(out, vlanChip(tag)+" "+StyleValue.Render(joinIDs(ids)))
}

// joinIDs lists at most maxListedIDs IDs and counts the rest.
func joinIDs(ids []string) string {
	if len(ids) <= maxListedIDs {
		return strings.Join(ids, ", ")
	}
	return fmt.Sprintf("%s and %d more", strings.Join(ids[:maxListedIDs], ", "), len(ids)-maxListedIDs)
}

// printStats prints node, edge and frame counts and whether the artifacts
// came from the cache.
func printStats(stats pipeline.Stats, cached bool) {
	var parts []string
	if stats.NodeCount > 0 {
		parts = append(parts, plural(stats.NodeCount, "node"))
	}
	if stats.EdgeCount > 0 {
		parts = append(parts, plural(stats.EdgeCount, "edge"))
	}
	if stats.FrameCount > 0 {
		parts = append(parts, plural(stats.FrameCount, "VLAN"))
	}
	for i, p := range parts {
		parts[i] = StyleDim.Render(p)
	}

	if cached {
		parts = append(parts, styleCached.Render("cached"))
	} else {
		parts = append(parts, StyleDim.Render("fresh"))
	}
	fmt.Fprintln(out, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// printReport surfaces what layout and serialization worked around.
func printReport(result *pipeline.Result) {
	if !result.Resolution.Converged {
		printWarning("Frames still overlap after %d rounds; raise --iterations", result.Resolution.Rounds)
	}
	if ids := result.Report.MissingPositions; len(ids) > 0 {
		printWarning("No position for %s; drawn at the margin", plural(len(ids), "node"))
		printDetail("%s", joinIDs(ids))
	}
	if edges := result.Report.DanglingEdges; len(edges) > 0 {
		printWarning("Skipped %s to unknown nodes", plural(len(edges), "edge"))
		printDetail("%s", joinIDs(edges))
	}
}

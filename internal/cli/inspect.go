package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/netdraw/pkg/errors"
	"github.com/matzehuels/netdraw/pkg/network"
	"github.com/matzehuels/netdraw/pkg/pipeline"
	"github.com/matzehuels/netdraw/pkg/tree"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "inspect <input>",
		Short: "Show the nodes, roots and VLAN groups of an inventory",
		Long: `Show the nodes, roots and VLAN groups of an inventory without drawing it.

The inventory is checked the same way render checks it, so cycles and
missing roots are reported here first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], sheet)
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "workbook sheet to read (default: first, or ask)")

	registerInputCompletions(cmd)
	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input, sheet string) error {
	sopts, err := c.sourceOptions(sheet)
	if err != nil {
		return err
	}
	set, err := pipeline.Load(ctx, input, sopts)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	f := tree.Build(set)

	fmt.Fprintln(out, nodeTable(set, f))
	printNewline()
	printKeyValue("Nodes", strconv.Itoa(set.Len()))
	printKeyValue("Edges", strconv.Itoa(set.EdgeCount()))
	printKeyValue("Roots", joinIDs(f.Roots))
	if n := len(set.Notes()); n > 0 {
		printKeyValue("Notes", strconv.Itoa(n))
	}
	printNewline()

	groups := set.VLANGroups()
	for _, tag := range set.VLANTags() {
		printVLAN(tag, groups[tag])
	}
	if len(groups) > 0 {
		printNewline()
	}

	if err := f.CheckRoots(); err != nil {
		printError("%s", errs.UserMessage(err))
		return err
	}
	if err := f.Validate(); err != nil {
		printError("%s", errs.UserMessage(err))
		return err
	}
	printSuccess("Ready to render")
	printNextStep("Draw", appName+" render "+input)
	return nil
}

// nodeTable renders one row per node in source order.
func nodeTable(set *network.Set, f *tree.Forest) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	nodes := set.Nodes()
	rows := make([][]string, 0, len(nodes))
	for _, n := range nodes {
		vlan := "—"
		if n.HasVLAN() {
			vlan = strconv.Itoa(*n.VLAN)
		}
		parents := "—"
		if len(n.Parents) > 0 {
			parents = strings.Join(n.Parents, ", ")
		}
		rows = append(rows, []string{n.ID, n.Name, n.Kind.String(), n.IP, vlan, parents, strconv.Itoa(f.Depth(n.ID))})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Kind", "IP", "VLAN", "Parents", "Depth").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row < len(nodes) && nodes[row].IsONU() {
				return base.Foreground(colorCyan)
			}
			if col == 4 || col == 6 {
				return base.Foreground(colorGray)
			}
			return base
		})

	return t.Render()
}

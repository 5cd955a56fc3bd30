package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	errs "github.com/matzehuels/netdraw/pkg/errors"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// interactive reports whether prompts can be shown.
func interactive() bool {
	return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stderr.Fd())
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// =============================================================================
// SheetListModel - Interactive sheet selection
// =============================================================================

// SheetListModel is the bubbletea model for picking a workbook sheet.
// Typing narrows the list to sheets containing the filter text.
type SheetListModel struct {
	Sheets    []string
	Filter    textinput.Model
	Cursor    int
	Selected  string
	Cancelled bool
}

// NewSheetListModel creates a sheet picker for sheets.
func NewSheetListModel(sheets []string) SheetListModel {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Focus()
	return SheetListModel{Sheets: sheets, Filter: ti}
}

// Visible returns the sheets matching the current filter, in workbook order.
func (m SheetListModel) Visible() []string {
	q := strings.ToLower(strings.TrimSpace(m.Filter.Value()))
	if q == "" {
		return m.Sheets
	}
	var visible []string
	for _, s := range m.Sheets {
		if strings.Contains(strings.ToLower(s), q) {
			visible = append(visible, s)
		}
	}
	return visible
}

func (m SheetListModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SheetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.Cancelled = true
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.Cursor > 0 {
				m.Cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.Cursor < len(m.Visible())-1 {
				m.Cursor++
			}
			return m, nil
		case "enter":
			visible := m.Visible()
			if len(visible) == 0 {
				return m, nil
			}
			m.Selected = visible[m.Cursor]
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.Filter, cmd = m.Filter.Update(msg)
	if n := len(m.Visible()); m.Cursor >= n {
		m.Cursor = max(n-1, 0)
	}
	return m, cmd
}

func (m SheetListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Sheet"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  esc cancel"))
	b.WriteString("\n\n")
	b.WriteString(m.Filter.View())
	b.WriteString("\n\n")

	visible := m.Visible()
	if len(visible) == 0 {
		b.WriteString(listDimStyle.Render("  no matching sheets"))
		b.WriteString("\n")
	}
	for i, s := range visible {
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + s))
		} else {
			b.WriteString(listNormalStyle.Render("  " + s))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", len(visible), len(m.Sheets))))

	return b.String()
}

// pickSheet asks the user to choose one of sheets.
func pickSheet(sheets []string) (string, error) {
	final, err := tea.NewProgram(NewSheetListModel(sheets), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeInternal, err, "sheet picker")
	}
	m := final.(SheetListModel)
	if m.Cancelled || m.Selected == "" {
		return "", errs.New(errs.ErrCodeInvalidInput, "no sheet selected (use --sheet)")
	}
	return m.Selected, nil
}

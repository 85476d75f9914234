package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	apperr "github.com/matzehuels/chromatic/pkg/errors"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// FamilyListModel - Interactive graph family selection
// =============================================================================

// FamilyListModel is the bubbletea model behind "generate --interactive".
type FamilyListModel struct {
	Families []graphFamily
	Cursor   int
	Selected *graphFamily
}

// NewFamilyListModel creates a list over every known graph family.
func NewFamilyListModel() FamilyListModel {
	return FamilyListModel{Families: graphFamilies}
}

func (m FamilyListModel) Init() tea.Cmd {
	return nil
}

func (m FamilyListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Families)-1 {
			m.Cursor++
		}
	case "enter":
		fam := m.Families[m.Cursor]
		m.Selected = &fam
		return m, tea.Quit
	}
	return m, nil
}

func (m FamilyListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Graph"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	rows := make([][]string, len(m.Families))
	for i, f := range m.Families {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		sizes := "—"
		if len(f.defaults) > 0 {
			sizes = joinInts(f.defaults)
		}
		rows[i] = []string{cursor, f.name, sizes, f.summary, f.chi}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Kind", "Sizes", "Graph", "χ").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1: // header
				return headerStyle
			case row == m.Cursor:
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			default:
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Families))))
	return b.String()
}

// pickFamily runs the picker. A nil family means the user quit.
func pickFamily() (*graphFamily, error) {
	if !isTerminal(os.Stdin) {
		return nil, apperr.New(apperr.ErrCodeInvalidInput, "--interactive needs a terminal; name the graph kind instead")
	}
	final, err := tea.NewProgram(NewFamilyListModel()).Run()
	if err != nil {
		return nil, fmt.Errorf("family picker: %w", err)
	}
	m, ok := final.(FamilyListModel)
	if !ok || m.Selected == nil {
		printInfo("No graph selected")
		return nil, nil
	}
	return m.Selected, nil
}

// internal/tui/preview.go
//
// Read-only browser over the flattened person table. It shows what the
// flatten step would write without touching the workbook or the bio folder.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/falkman/photopages/internal/flatten"
)

const (
	minTableHeight = 5
	// header, status box and footer
	chromeHeight = 8
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	boxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).MarginTop(1)
)

var previewColumns = []table.Column{
	{Title: "NAME", Width: 26},
	{Title: "SEX", Width: 3},
	{Title: "born_died", Width: 26},
	{Title: "AGE", Width: 7},
	{Title: "FATHER", Width: 20},
	{Title: "MOTHER", Width: 20},
	{Title: "SPOUSE", Width: 20},
	{Title: "BIO", Width: 28},
}

// Preview is the bubbletea model for the person browser.
type Preview struct {
	source   string
	people   []flatten.Person
	table    table.Model
	width    int
	quitting bool
}

// NewPreview builds a preview over people. source labels the header.
func NewPreview(source string, people []flatten.Person) *Preview {
	rows := make([]table.Row, len(people))
	for i, p := range people {
		rows[i] = table.Row{
			p.FullName,
			p.Sex,
			p.BornDied,
			p.Age.String(),
			p.Father,
			p.Mother,
			p.Spouse,
			p.BioFile,
		}
	}
	t := table.New(
		table.WithColumns(previewColumns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#5B8DEF")).
		Bold(false)
	t.SetStyles(styles)
	return &Preview{source: source, people: people, table: t}
}

// Run starts the preview in the alternate screen and blocks until it exits.
func Run(p *Preview) error {
	_, err := tea.NewProgram(p, tea.WithAltScreen()).Run()
	return err
}

// Init implements tea.Model.
func (p *Preview) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (p *Preview) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.table.SetHeight(max(minTableHeight, msg.Height-chromeHeight))
		return p, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			p.quitting = true
			return p, tea.Quit
		}
	}
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return p, cmd
}

// Selected returns the person under the cursor.
func (p *Preview) Selected() (flatten.Person, bool) {
	idx := p.table.Cursor()
	if idx < 0 || idx >= len(p.people) {
		return flatten.Person{}, false
	}
	return p.people[idx], true
}

// View implements tea.Model.
func (p *Preview) View() string {
	if p.quitting {
		return ""
	}
	header := titleStyle.Render(fmt.Sprintf("PEOPLE · %s · %d individuals", p.source, len(p.people)))
	if len(p.people) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, detailStyle.Render("No individuals found."), p.footer())
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, p.table.View(), p.details(), p.footer())
}

func (p *Preview) details() string {
	person, ok := p.Selected()
	if !ok {
		return ""
	}
	lines := []string{
		labelStyle.Render(person.FullName) + detailStyle.Render(fmt.Sprintf("  (%s)", person.InfoID)),
		labelStyle.Render("Children: ") + detailStyle.Render(joinFilled(person.Children[:])),
		labelStyle.Render("Siblings: ") + detailStyle.Render(joinFilled(person.Siblings[:])),
	}
	box := boxStyle
	if p.width > 0 {
		box = box.Width(max(20, p.width-4))
	}
	return box.Render(strings.Join(lines, "\n"))
}

func (p *Preview) footer() string {
	return footerStyle.Render("↑/↓ move · q quit")
}

func joinFilled(names []string) string {
	filled := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" {
			filled = append(filled, n)
		}
	}
	if len(filled) == 0 {
		return "none"
	}
	return strings.Join(filled, ", ")
}

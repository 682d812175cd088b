package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mcoot/benched/internal/model"
	"github.com/mcoot/benched/internal/palette"
)

const (
	defaultWidth = 80
	benchWidth   = 24
	minColWidth  = 8
	// gridColumns is the grid the column width is expressed in
	gridColumns = 12
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f5f5f5"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7a7a7a"))
	headerStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87d787"))
)

// View implements tea.Model
func (a *App) View() string {
	sections := []string{a.renderHeader(), a.renderBody()}

	if a.mode != modeBrowse {
		prompt := "Add player: "
		if a.mode == modeEdit {
			prompt = "Rename: "
		}
		sections = append(sections, prompt+a.input.View())
	}
	if a.err != nil {
		sections = append(sections, errorStyle.Render("✗ "+a.err.Error()))
	} else if a.status != "" {
		sections = append(sections, statusStyle.Render(a.status))
	}
	if a.snap.PersistError != "" {
		sections = append(sections, errorStyle.Render("save failed: "+a.snap.PersistError))
	}
	sections = append(sections, a.help.View(a.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) renderHeader() string {
	summary := fmt.Sprintf("  %d active · %d benched · %d teams",
		len(a.snap.Active), len(a.snap.Benched), a.snap.TeamSize)
	return titleStyle.Render("benched") + dimStyle.Render(summary)
}

func (a *App) renderBody() string {
	width := a.width
	if width <= 0 {
		width = defaultWidth
	}
	teamsWidth := width - benchWidth - 4
	colWidth := max(teamsWidth*a.snap.ColumnWidth/gridColumns-4, minColWidth)

	bench := panelStyle.Width(benchWidth).Render(a.renderBench(benchWidth - 2))
	teams := panelStyle.Render(a.renderTeams(colWidth))
	return lipgloss.JoinHorizontal(lipgloss.Top, bench, teams)
}

func (a *App) renderBench(width int) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Bench"))
	b.WriteString("\n")
	if len(a.snap.Benched) == 0 {
		b.WriteString(dimStyle.Render("nobody"))
	}
	for i, p := range a.snap.Benched {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(a.renderPlayer(p, width))
	}
	return b.String()
}

func (a *App) renderTeams(colWidth int) string {
	if len(a.snap.Active) == 0 {
		return headerStyle.Render("Teams") + "\n" + dimStyle.Render("press A to clear the bench")
	}

	columns := make([]string, len(a.snap.Teams))
	for i, team := range a.snap.Teams {
		lines := []string{headerStyle.Render(fmt.Sprintf("Team %d", i+1))}
		for _, p := range team {
			lines = append(lines, a.renderPlayer(p, colWidth))
		}
		columns[i] = lipgloss.NewStyle().Width(colWidth + 2).Render(strings.Join(lines, "\n"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

// renderPlayer draws active players as a chip in their color and benched
// players as text in the light end of their gradient
func (a *App) renderPlayer(p model.Player, width int) string {
	marker := "  "
	if p.ID == a.selected {
		marker = "› "
	}

	style := lipgloss.NewStyle().MaxWidth(width - 2)
	if p.Active {
		style = style.
			Background(lipgloss.Color(palette.Hex(p.Color))).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1)
	} else {
		_, end := palette.Gradient(p.Color)
		style = style.Foreground(lipgloss.Color(end))
	}
	if p.ID == a.selected {
		style = style.Bold(true)
	}
	return marker + style.Render(p.Name)
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/wumpus-world/internal/models"
)

const cellWidth = 7

var (
	cellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Height(3).
			Align(lipgloss.Center, lipgloss.Center).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3C3C3C"))

	unknownCellStyle = cellStyle.
				Foreground(lipgloss.Color("#444444"))

	visitedCellStyle = cellStyle.
				Foreground(lipgloss.Color("#AAAAAA")).
				BorderForeground(lipgloss.Color("#5F5F87"))

	playerCellStyle = cellStyle.
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			BorderForeground(lipgloss.Color("#FFA500"))

	hazardStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
	goldStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700"))

	perceptOnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1C1C1C")).
			Background(lipgloss.Color("#70C1B3")).
			Padding(0, 1)

	perceptOffStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")).
			Padding(0, 1)

	disabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")).
			Strikethrough(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			Padding(1, 3).
			Align(lipgloss.Center)
)

// renderBoard draws the grid, top row first, with axis labels.
func renderBoard(v models.View) string {
	rows := make([]string, 0, len(v.Cells)+1)
	for _, row := range v.Cells {
		cells := make([]string, 0, len(row)+1)
		label := lipgloss.NewStyle().Width(3).Height(5).AlignVertical(lipgloss.Center).
			Render(fmt.Sprint(row[0].Pos.Y))
		cells = append(cells, label)
		for _, c := range row {
			cells = append(cells, renderCell(v, c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	axis := []string{strings.Repeat(" ", 3)}
	for x := 1; x <= v.Size; x++ {
		axis = append(axis, lipgloss.NewStyle().Width(cellWidth+2).Align(lipgloss.Center).Render(fmt.Sprint(x)))
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, axis...))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCell(v models.View, c models.CellView) string {
	var marks []string
	if c.Player {
		marks = append(marks, v.Facing.Arrow())
	}
	if c.Wumpus {
		marks = append(marks, hazardStyle.Render("W"))
	}
	if c.Pit {
		marks = append(marks, hazardStyle.Render("O"))
	}
	if c.Gold {
		marks = append(marks, goldStyle.Render("$"))
	}

	style := unknownCellStyle
	switch {
	case c.Player:
		style = playerCellStyle
	case c.Visited:
		style = visitedCellStyle
	}

	content := strings.Join(marks, " ")
	if content == "" {
		content = "·"
		if c.Visited {
			content = " "
		}
	}
	return style.Render(content)
}

func renderPercepts(v models.View) string {
	badges := make([]string, 0, len(models.Percepts))
	for _, p := range models.Percepts {
		if v.Percepts.Has(p) {
			badges = append(badges, perceptOnStyle.Render(p.String()))
		} else {
			badges = append(badges, perceptOffStyle.Render(p.String()))
		}
	}
	return strings.Join(badges, " ")
}

func renderStatus(v models.View, width, height int) string {
	gold := "No"
	if v.HasGold {
		gold = "Yes"
	}

	status := titleStyle.Render("STATUS") + "\n" +
		fmt.Sprintf("Score: %d\nPosition: %s\nFacing: %s\nArrows: %d\nGold: %s\n\n",
			v.Score, v.Position, v.Facing.Label(), v.Arrows, gold)

	percepts := titleStyle.Render("PERCEPTS") + "\n"
	for _, p := range models.Percepts {
		if v.Percepts.Has(p) {
			percepts += perceptOnStyle.Render(p.String()) + "\n"
		} else {
			percepts += perceptOffStyle.Render(p.String()) + "\n"
		}
	}

	controls := "\n" + titleStyle.Render("ACTIONS") + "\n"
	for _, a := range models.Actions {
		name := strings.ReplaceAll(a.String(), "_", " ")
		if v.Controls.Enabled(a) {
			controls += name + "\n"
		} else {
			controls += disabledStyle.Render(name) + "\n"
		}
	}

	return stateStyle.Width(width).Height(height).Render(status + percepts + controls)
}

func renderSummary(s *models.Summary, phase models.Phase) string {
	border := lipgloss.Color("#FF5F5F")
	if phase == models.Won {
		border = lipgloss.Color("#FFD700")
	}
	body := titleStyle.Render(strings.ToUpper(s.Title)) + "\n\n" +
		s.Message + "\n\n" +
		fmt.Sprintf("Final score: %d", s.Score) + "\n\n" +
		helpStyle.Render("r: new game · y: copy result · q: quit")
	return modalStyle.BorderForeground(border).Render(body)
}

// summaryText is the plain-text result copied to the clipboard.
func summaryText(v models.View) string {
	if v.Summary == nil {
		return fmt.Sprintf("Wumpus World in progress: score %d at %s", v.Score, v.Position)
	}
	return fmt.Sprintf("Wumpus World - %s: %s Final score: %d", v.Summary.Title, v.Summary.Message, v.Summary.Score)
}

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eshginfarzali/eshgin/internal/bugs"
)

// Rows above the bug field: tab bar and game header.
const bugFieldTop = 2

func (m *Model) updateBugsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "s":
		m.bugs.Start()
	case "esc":
		m.bugs.Stop()
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	cols, rows := m.area.cells()
	visible := visibleTargets(m.bugsSnap.Targets, cols, rows)
	if id, ok := hitTarget(visible, msg.X, msg.Y-bugFieldTop); ok {
		m.bugs.Squash(id)
	}
}

func (m *Model) viewBugs() string {
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render("Bug Squasher"),
		footerStyle.Render("  Can you debug as fast as Eshgin?  "),
		scoreStyle.Render(fmt.Sprintf("Score %d", m.bugsSnap.Score)),
	)
	cols, rows := m.area.cells()
	if !m.bugsSnap.Playing {
		prompt := titleStyle.Render("[ Start Debugging ]") + "\n" + footerStyle.Render("press enter")
		return header + "\n" + lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, prompt)
	}
	return header + "\n" + renderField(m.bugsSnap.Targets, cols, rows)
}

func renderField(targets []bugs.Target, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	grid := make([][]string, rows)
	for r := range grid {
		grid[r] = make([]string, cols)
		for c := range grid[r] {
			grid[r][c] = " "
		}
	}
	for _, t := range visibleTargets(targets, cols, rows) {
		col, row := targetCell(t)
		grid[row][col] = bugGlyph
		for k := 1; k < bugGlyphWidth; k++ {
			grid[row][col+k] = ""
		}
	}
	lines := make([]string, rows)
	for r, cells := range grid {
		lines[r] = strings.Join(cells, "")
	}
	return strings.Join(lines, "\n")
}

package tui

import (
	"sync"

	"github.com/mattn/go-runewidth"

	"github.com/eshginfarzali/eshgin/internal/bugs"
)

// Terminal cells are mapped to virtual pixels so game bounds stay in pixel units.
const (
	cellWidthPx  = 8
	cellHeightPx = 16
	bugGlyph     = "🐛"
)

var bugGlyphWidth = runewidth.StringWidth(bugGlyph)

// playArea is the bug field size in cells; the spawn timer reads it concurrently.
type playArea struct {
	mu   sync.Mutex
	cols int
	rows int
}

func (a *playArea) resize(cols, rows int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cols = max(cols, 0)
	a.rows = max(rows, 0)
}

func (a *playArea) cells() (cols, rows int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cols, a.rows
}

// Size implements bugs.Area in virtual pixels.
func (a *playArea) Size() (float64, float64) {
	cols, rows := a.cells()
	return float64(cols * cellWidthPx), float64(rows * cellHeightPx)
}

func targetCell(t bugs.Target) (col, row int) {
	return int(t.X / cellWidthPx), int(t.Y / cellHeightPx)
}

// visibleTargets drops targets outside the field and, where glyphs would
// overlap, keeps the most recent one.
func visibleTargets(targets []bugs.Target, cols, rows int) []bugs.Target {
	taken := map[[2]int]bool{}
	visible := make([]bugs.Target, 0, len(targets))
	for i := len(targets) - 1; i >= 0; i-- {
		col, row := targetCell(targets[i])
		if row < 0 || row >= rows || col < 0 || col+bugGlyphWidth > cols {
			continue
		}
		free := true
		for k := 0; k < bugGlyphWidth; k++ {
			if taken[[2]int{row, col + k}] {
				free = false
				break
			}
		}
		if !free {
			continue
		}
		for k := 0; k < bugGlyphWidth; k++ {
			taken[[2]int{row, col + k}] = true
		}
		visible = append([]bugs.Target{targets[i]}, visible...)
	}
	return visible
}

// hitTarget returns the topmost target drawn under the cell, if any.
func hitTarget(targets []bugs.Target, col, row int) (string, bool) {
	for i := len(targets) - 1; i >= 0; i-- {
		tc, tr := targetCell(targets[i])
		if row == tr && col >= tc && col < tc+bugGlyphWidth {
			return targets[i].ID, true
		}
	}
	return "", false
}

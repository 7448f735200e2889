package server

import "sync"

const (
	DefaultAreaWidth  = 800
	DefaultAreaHeight = 600
)

// Area is the client's play field in pixels, updated with PUT /api/bugs/area.
type Area struct {
	mu     sync.Mutex
	width  float64
	height float64
}

// NewArea returns an area of the given size; non-positive values use the defaults.
func NewArea(width, height float64) *Area {
	a := &Area{}
	a.Set(width, height)
	return a
}

// Set replaces the size.
func (a *Area) Set(width, height float64) {
	if width <= 0 {
		width = DefaultAreaWidth
	}
	if height <= 0 {
		height = DefaultAreaHeight
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.width = width
	a.height = height
}

// Size implements bugs.Area.
func (a *Area) Size() (float64, float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.width, a.height
}

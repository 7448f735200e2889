// Package generator provides the random source used by the games.
package generator

import (
	"math/rand"
	"sync"
	"time"
)

// Source is the randomness the games draw from.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// Generator is a goroutine-safe Source.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Float64 returns a value in [0, 1).
func (g *Generator) Float64() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rnd.Float64()
}

// Intn returns a value in [0, n).
func (g *Generator) Intn(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rnd.Intn(n)
}

// Pick selects one item uniformly. Repeats are allowed.
func Pick(src Source, items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[src.Intn(len(items))]
}

// Uniform draws from [0, max]; a non-positive max yields 0.
func Uniform(src Source, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return src.Float64() * max
}

// Sequence replays fixed values, for deterministic tests and demos.
// Float64 and Intn cycle through their own slices independently.
type Sequence struct {
	mu     sync.Mutex
	Floats []float64
	Ints   []int
	fi, ii int
}

// Float64 returns the next configured float, or 0 when none are set.
func (s *Sequence) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[s.fi%len(s.Floats)]
	s.fi++
	return v
}

// Intn returns the next configured int modulo n, or 0 when none are set.
func (s *Sequence) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Ints) == 0 || n <= 0 {
		return 0
	}
	v := s.Ints[s.ii%len(s.Ints)]
	s.ii++
	return v % n
}

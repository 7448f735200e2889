// Package bugs implements the Bug Squasher target-click game.
package bugs

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eshginfarzali/eshgin/internal/generator"
	"github.com/eshginfarzali/eshgin/internal/observe"
	"github.com/eshginfarzali/eshgin/internal/timer"
)

const (
	DefaultSpawnInterval = 800 * time.Millisecond
	DefaultMaxTargets    = 5
	DefaultMargin        = 40.0
	celebrateEvery       = 10
)

// Target is a clickable bug in the play area.
type Target struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Snapshot is an immutable view of a session.
type Snapshot struct {
	Score       int      `json:"score"`
	Playing     bool     `json:"playing"`
	Targets     []Target `json:"targets"`
	Celebrating bool     `json:"celebrating"`
	Generation  uint64   `json:"generation"`
}

// Area reports the current play-area size.
type Area interface {
	Size() (width, height float64)
}

// AreaFunc adapts a func to Area.
type AreaFunc func() (float64, float64)

// Size implements Area.
func (f AreaFunc) Size() (float64, float64) {
	return f()
}

// Options configures a Game. Zero values fall back to defaults.
type Options struct {
	SpawnInterval time.Duration
	MaxTargets    int
	Margin        float64
	Clock         timer.Clock
	Rand          generator.Source
	NewID         func() string
	Logger        *zerolog.Logger
}

// Game owns one Bug Squasher session and its spawn timer.
type Game struct {
	area       Area
	rnd        generator.Source
	newID      func() string
	maxTargets int
	margin     float64
	log        zerolog.Logger

	mu         sync.Mutex
	score      int
	playing    bool
	targets    []Target
	generation uint64

	spawner *timer.Interval
	hub     observe.Hub[Snapshot]
}

// New builds an idle game reading bounds from area.
func New(area Area, opts Options) *Game {
	if opts.SpawnInterval <= 0 {
		opts.SpawnInterval = DefaultSpawnInterval
	}
	if opts.MaxTargets <= 0 {
		opts.MaxTargets = DefaultMaxTargets
	}
	if opts.Margin <= 0 {
		opts.Margin = DefaultMargin
	}
	if opts.Rand == nil {
		opts.Rand = generator.New()
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	g := &Game{
		area:       area,
		rnd:        opts.Rand,
		newID:      opts.NewID,
		maxTargets: opts.MaxTargets,
		margin:     opts.Margin,
		log:        logger.With().Str("game", "bugs").Logger(),
		spawner:    timer.NewInterval(opts.Clock, opts.SpawnInterval),
	}
	return g
}

// Start resets the score and begins spawning. Restarting replaces the running session.
func (g *Game) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.spawner.Stop()
	g.generation++
	g.score = 0
	g.playing = true
	g.targets = nil
	gen := g.generation
	g.spawner.Start(func() { g.spawn(gen) })
	g.log.Debug().Uint64("generation", g.generation).Msg("session started")
	g.publishLocked()
}

// Stop ends the session and releases the spawn timer.
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.spawner.Stop()
	if !g.playing {
		return
	}
	g.playing = false
	g.targets = nil
	g.log.Debug().Int("score", g.score).Msg("session stopped")
	g.publishLocked()
}

// Close stops the session and waits for the spawn goroutine to exit.
func (g *Game) Close() {
	g.Stop()
	g.spawner.Wait()
}

// Spawn adds one target at a random position, evicting the oldest beyond the bound.
// It is a no-op while idle.
func (g *Game) Spawn() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.spawnLocked()
}

// spawn runs on the timer goroutine; ticks from an earlier session are dropped.
func (g *Game) spawn(gen uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if gen != g.generation {
		return
	}
	g.spawnLocked()
}

func (g *Game) spawnLocked() {
	if !g.playing {
		return
	}
	var width, height float64
	if g.area != nil {
		width, height = g.area.Size()
	}
	t := Target{
		ID: g.newID(),
		X:  generator.Uniform(g.rnd, width-g.margin),
		Y:  generator.Uniform(g.rnd, height-g.margin),
	}
	g.targets = append(g.targets, t)
	if over := len(g.targets) - g.maxTargets; over > 0 {
		g.targets = append([]Target(nil), g.targets[over:]...)
	}
	g.publishLocked()
}

// Squash removes the target with id and scores one point.
// Unknown ids and idle sessions are ignored.
func (g *Game) Squash(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.playing {
		return false
	}
	idx := -1
	for i, t := range g.targets {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	g.targets = append(g.targets[:idx:idx], g.targets[idx+1:]...)
	g.score++
	g.publishLocked()
	return true
}

// Snapshot returns the current state.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

// Subscribe registers fn for every state change.
func (g *Game) Subscribe(fn func(Snapshot)) (cancel func()) {
	return g.hub.Subscribe(fn)
}

func (g *Game) snapshotLocked() Snapshot {
	targets := make([]Target, len(g.targets))
	copy(targets, g.targets)
	return Snapshot{
		Score:       g.score,
		Playing:     g.playing,
		Targets:     targets,
		Celebrating: g.score > 0 && g.score%celebrateEvery == 0,
		Generation:  g.generation,
	}
}

func (g *Game) publishLocked() {
	g.hub.Publish(g.snapshotLocked())
}

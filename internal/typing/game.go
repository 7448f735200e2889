// Package typing implements the Code Speed Test typing game.
package typing

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/eshginfarzali/eshgin/internal/generator"
	"github.com/eshginfarzali/eshgin/internal/observe"
	"github.com/eshginfarzali/eshgin/internal/stats"
	"github.com/eshginfarzali/eshgin/internal/timer"
)

const (
	DefaultRoundSeconds = 30
	streakBannerAfter   = 2
)

// Snapshot is an immutable view of a round.
type Snapshot struct {
	Score            int         `json:"score"`
	WPM              int         `json:"wpm"`
	Playing          bool        `json:"playing"`
	SecondsRemaining int         `json:"secondsRemaining"`
	Snippet          string      `json:"snippet"`
	Input            string      `json:"input"`
	Streak           int         `json:"streak"`
	Completed        int         `json:"completed"`
	ShowStreak       bool        `json:"showStreak"`
	Feedback         []CharState `json:"feedback"`
	Generation       uint64      `json:"generation"`
	Seq              uint64      `json:"seq"` // increases with every published change
}

// Options configures a Game. Zero values fall back to defaults.
type Options struct {
	RoundSeconds int
	Snippets     []string
	Clock        timer.Clock
	Rand         generator.Source
	Logger       *zerolog.Logger
}

// Game owns one typing round and its countdown timer.
type Game struct {
	roundSeconds int
	snippets     []string
	rnd          generator.Source
	log          zerolog.Logger

	mu         sync.Mutex
	score      int
	wpm        int
	playing    bool
	remaining  int
	snippet    string
	input      string
	streak     int
	completed  int
	generation uint64
	seq        uint64

	countdown *timer.Interval
	hub       observe.Hub[Snapshot]
}

// New builds an idle game.
func New(opts Options) *Game {
	if opts.RoundSeconds <= 0 {
		opts.RoundSeconds = DefaultRoundSeconds
	}
	if len(opts.Snippets) == 0 {
		opts.Snippets = DefaultSnippets
	}
	if opts.Rand == nil {
		opts.Rand = generator.New()
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	snippets := make([]string, len(opts.Snippets))
	copy(snippets, opts.Snippets)
	return &Game{
		roundSeconds: opts.RoundSeconds,
		snippets:     snippets,
		rnd:          opts.Rand,
		log:          logger.With().Str("game", "typing").Logger(),
		remaining:    opts.RoundSeconds,
		countdown:    timer.NewInterval(opts.Clock, time.Second),
	}
}

// RoundSeconds is the length of a round.
func (g *Game) RoundSeconds() int {
	return g.roundSeconds
}

// Snippets returns the active catalog.
func (g *Game) Snippets() []string {
	out := make([]string, len(g.snippets))
	copy(out, g.snippets)
	return out
}

// Start resets the round, loads a snippet and starts the countdown.
func (g *Game) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.countdown.Stop()
	g.generation++
	g.playing = true
	g.score = 0
	g.wpm = 0
	g.remaining = g.roundSeconds
	g.streak = 0
	g.completed = 0
	g.input = ""
	g.snippet = ""
	g.loadSnippetLocked()
	gen := g.generation
	g.countdown.Start(func() { g.tick(gen) })
	g.log.Debug().Uint64("generation", gen).Msg("round started")
	g.publishLocked()
}

// Tick counts down one second. At zero the round ends and the countdown is released.
func (g *Game) Tick() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tickLocked()
}

func (g *Game) tick(gen uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if gen != g.generation {
		return
	}
	g.tickLocked()
}

func (g *Game) tickLocked() {
	if !g.playing {
		return
	}
	if g.remaining > 0 {
		g.remaining--
	}
	if g.remaining == 0 {
		g.playing = false
		g.countdown.Stop()
		g.log.Debug().
			Int("score", g.score).
			Int("wpm", g.wpm).
			Int("completed", g.completed).
			Msg("round finished")
	}
	g.publishLocked()
}

// Input records the field's current text. An exact match scores the snippet
// and loads the next one. Input is ignored while idle.
func (g *Game) Input(value string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.playing {
		return
	}
	g.input = value
	if g.snippet != "" && value == g.snippet {
		g.score += len([]rune(g.snippet))
		g.streak++
		g.completed++
		elapsed := time.Duration(g.roundSeconds-g.remaining) * time.Second
		if wpm, ok := stats.WordsPerMinute(stats.WordCount(g.snippet), elapsed); ok {
			g.wpm = wpm
		}
		g.input = ""
		g.snippet = ""
		g.loadSnippetLocked()
	}
	g.publishLocked()
}

// Stop ends the round early and releases the countdown.
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.countdown.Stop()
	if !g.playing {
		return
	}
	g.playing = false
	g.publishLocked()
}

// Close stops the round and waits for the countdown goroutine to exit.
func (g *Game) Close() {
	g.Stop()
	g.countdown.Wait()
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

func (g *Game) loadSnippetLocked() {
	g.snippet = generator.Pick(g.rnd, g.snippets)
}

func (g *Game) snapshotLocked() Snapshot {
	return Snapshot{
		Score:            g.score,
		WPM:              g.wpm,
		Playing:          g.playing,
		SecondsRemaining: g.remaining,
		Snippet:          g.snippet,
		Input:            g.input,
		Streak:           g.streak,
		Completed:        g.completed,
		ShowStreak:       g.streak > streakBannerAfter,
		Feedback:         FeedbackFor(g.input, g.snippet),
		Generation:       g.generation,
		Seq:              g.seq,
	}
}

func (g *Game) publishLocked() {
	g.seq++
	g.hub.Publish(g.snapshotLocked())
}

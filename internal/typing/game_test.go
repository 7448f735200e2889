package typing

import (
	"testing"
	"time"

	"github.com/eshginfarzali/eshgin/internal/generator"
	"github.com/eshginfarzali/eshgin/internal/timer"
)

func newTestGame(t *testing.T, snippets []string, picks ...int) (*Game, *timer.ManualClock) {
	t.Helper()
	clock := timer.NewManualClock(time.Unix(0, 0))
	g := New(Options{
		Snippets: snippets,
		Clock:    clock,
		Rand:     &generator.Sequence{Ints: picks},
	})
	t.Cleanup(g.Close)
	return g, clock
}

func TestNewGameIsIdle(t *testing.T) {
	g, _ := newTestGame(t, nil)
	snap := g.Snapshot()
	if snap.Playing {
		t.Fatalf("expected idle game")
	}
	if snap.SecondsRemaining != DefaultRoundSeconds {
		t.Fatalf("expected %d seconds, got %d", DefaultRoundSeconds, snap.SecondsRemaining)
	}
	if len(g.Snippets()) != 8 {
		t.Fatalf("expected default catalog of 8 snippets, got %d", len(g.Snippets()))
	}
}

func TestStartLoadsSnippet(t *testing.T) {
	g, _ := newTestGame(t, nil, 2)
	g.Start()
	snap := g.Snapshot()
	if !snap.Playing {
		t.Fatalf("expected playing after start")
	}
	if snap.Snippet != DefaultSnippets[2] {
		t.Fatalf("expected snippet %q, got %q", DefaultSnippets[2], snap.Snippet)
	}
	if snap.Input != "" || snap.Score != 0 || snap.WPM != 0 || snap.Streak != 0 {
		t.Fatalf("expected reset round, got %+v", snap)
	}
}

func TestMatchFiresOnlyOnFullEquality(t *testing.T) {
	snippet := "let x = 1;"
	g, _ := newTestGame(t, []string{snippet})
	g.Start()
	g.Tick()

	runes := []rune(snippet)
	for i := 1; i < len(runes); i++ {
		g.Input(string(runes[:i]))
		snap := g.Snapshot()
		if snap.Score != 0 || snap.Streak != 0 {
			t.Fatalf("match fired early at prefix %q", string(runes[:i]))
		}
		if snap.Input != string(runes[:i]) {
			t.Fatalf("expected input %q, got %q", string(runes[:i]), snap.Input)
		}
	}

	g.Input(snippet)
	snap := g.Snapshot()
	if snap.Score != len(snippet) {
		t.Fatalf("expected score %d, got %d", len(snippet), snap.Score)
	}
	if snap.Streak != 1 || snap.Completed != 1 {
		t.Fatalf("expected streak 1, got %d", snap.Streak)
	}
	if snap.Input != "" {
		t.Fatalf("expected input cleared, got %q", snap.Input)
	}
	if snap.Snippet != snippet {
		t.Fatalf("expected a fresh snippet to be loaded, got %q", snap.Snippet)
	}
}

func TestOvertypedInputNeverMatches(t *testing.T) {
	g, _ := newTestGame(t, []string{"abc"})
	g.Start()
	g.Input("abcd")
	g.Input("abx")
	if snap := g.Snapshot(); snap.Score != 0 {
		t.Fatalf("expected no score for mismatched input, got %d", snap.Score)
	}
}

func TestWPMSkippedWithZeroElapsed(t *testing.T) {
	g, _ := newTestGame(t, []string{"one two three"})
	g.Start()
	g.Input("one two three")
	snap := g.Snapshot()
	if snap.WPM != 0 {
		t.Fatalf("expected wpm unchanged at 0, got %d", snap.WPM)
	}
	if snap.Score != len("one two three") {
		t.Fatalf("expected score to still count, got %d", snap.Score)
	}
}

func TestWPMFromElapsedSeconds(t *testing.T) {
	g, _ := newTestGame(t, []string{"one two three"})
	g.Start()
	for i := 0; i < 10; i++ {
		g.Tick()
	}
	g.Input("one two three")
	if snap := g.Snapshot(); snap.WPM != 18 {
		t.Fatalf("expected 18 wpm, got %d", snap.WPM)
	}
}

func TestWPMResetOnRestart(t *testing.T) {
	g, _ := newTestGame(t, []string{"a b"})
	g.Start()
	for i := 0; i < 6; i++ {
		g.Tick()
	}
	g.Input("a b")
	if snap := g.Snapshot(); snap.WPM != 20 {
		t.Fatalf("expected 20 wpm, got %d", snap.WPM)
	}

	g.Start()
	if snap := g.Snapshot(); snap.WPM != 0 {
		t.Fatalf("expected wpm reset on restart, got %d", snap.WPM)
	}
}

func TestCountdownEndsRound(t *testing.T) {
	g, _ := newTestGame(t, nil)
	g.Start()
	for i := 0; i < DefaultRoundSeconds; i++ {
		if !g.Snapshot().Playing {
			t.Fatalf("round ended early after %d ticks", i)
		}
		g.Tick()
	}
	snap := g.Snapshot()
	if snap.SecondsRemaining != 0 {
		t.Fatalf("expected 0 seconds remaining, got %d", snap.SecondsRemaining)
	}
	if snap.Playing {
		t.Fatalf("expected round to end at zero")
	}

	g.Tick()
	g.Input(snap.Snippet)
	snap = g.Snapshot()
	if snap.Playing || snap.SecondsRemaining != 0 || snap.Score != 0 {
		t.Fatalf("expected round to stay over, got %+v", snap)
	}
}

func TestCountdownTimerDrivesRound(t *testing.T) {
	g, clock := newTestGame(t, nil)
	done := make(chan Snapshot, 1)
	cancel := g.Subscribe(func(s Snapshot) {
		if !s.Playing && s.Generation > 0 {
			done <- s
		}
	})
	defer cancel()

	g.Start()
	clock.Advance(time.Duration(DefaultRoundSeconds) * time.Second)

	select {
	case snap := <-done:
		if snap.SecondsRemaining != 0 {
			t.Fatalf("expected 0 seconds remaining, got %d", snap.SecondsRemaining)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for round end")
	}
	g.countdown.Wait()
	if clock.Tickers() != 0 {
		t.Fatalf("expected countdown released at zero, got %d tickers", clock.Tickers())
	}
}

func TestSecondsNeverIncreaseWhilePlaying(t *testing.T) {
	g, _ := newTestGame(t, nil)
	g.Start()
	prev := g.Snapshot().SecondsRemaining
	for i := 0; i < 40; i++ {
		g.Tick()
		cur := g.Snapshot().SecondsRemaining
		if cur > prev {
			t.Fatalf("seconds increased from %d to %d", prev, cur)
		}
		prev = cur
	}
}

func TestRestartResetsRound(t *testing.T) {
	g, _ := newTestGame(t, []string{"go"})
	g.Start()
	g.Tick()
	g.Input("go")
	g.Input("g")
	g.Start()
	snap := g.Snapshot()
	if snap.Score != 0 || snap.Streak != 0 || snap.Input != "" || snap.SecondsRemaining != DefaultRoundSeconds {
		t.Fatalf("expected fresh round, got %+v", snap)
	}
}

func TestStreakBanner(t *testing.T) {
	g, _ := newTestGame(t, []string{"go"})
	g.Start()
	g.Tick()
	for i := 1; i <= 3; i++ {
		g.Input("go")
		snap := g.Snapshot()
		if want := i > 2; snap.ShowStreak != want {
			t.Fatalf("streak %d: expected banner=%v", snap.Streak, want)
		}
	}
}

func TestStopReleasesCountdown(t *testing.T) {
	g, clock := newTestGame(t, nil)
	g.Start()
	g.Close()
	if clock.Tickers() != 0 {
		t.Fatalf("expected countdown released, got %d", clock.Tickers())
	}
	if g.Snapshot().Playing {
		t.Fatalf("expected round stopped")
	}
}

func TestSeqIncreasesWithEveryChange(t *testing.T) {
	g, _ := newTestGame(t, []string{"ab"})
	var seqs []uint64
	cancel := g.Subscribe(func(s Snapshot) { seqs = append(seqs, s.Seq) })
	defer cancel()

	g.Start()
	g.Input("a")
	g.Input("a")
	g.Stop()
	if len(seqs) != 4 {
		t.Fatalf("expected 4 published changes, got %v", seqs)
	}
	for i := 1; i < len(seqs); i++ {
		if seqs[i] <= seqs[i-1] {
			t.Fatalf("expected increasing seq, got %v", seqs)
		}
	}
	if got := g.Snapshot().Seq; got != seqs[len(seqs)-1] {
		t.Fatalf("expected snapshot seq %d, got %d", seqs[len(seqs)-1], got)
	}
}

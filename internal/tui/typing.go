package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eshginfarzali/eshgin/internal/stats"
	"github.com/eshginfarzali/eshgin/internal/typing"
)

func (m *Model) updateTypingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.typingSnap.Playing {
		if msg.Type == tea.KeyEnter || msg.String() == "s" {
			m.typing.Start()
			cmd := m.applyTyping(m.typing.Snapshot())
			return m, tea.Batch(cmd, m.input.Focus())
		}
		return m, nil
	}
	if msg.Type == tea.KeyEsc {
		m.typing.Stop()
		return m, m.applyTyping(m.typing.Snapshot())
	}

	before := m.input.Value()
	snippet := m.typingSnap.Snippet
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	after := m.input.Value()
	if after == before {
		return m, cmd
	}
	m.countKeystroke(before, after, snippet)
	m.typing.Input(after)
	return m, tea.Batch(cmd, m.applyTyping(m.typing.Snapshot()))
}

// countKeystroke scores a single appended character against the snippet.
func (m *Model) countKeystroke(before, after, snippet string) {
	if !strings.HasPrefix(after, before) {
		return
	}
	added := len([]rune(after)) - len([]rune(before))
	if added != 1 {
		return
	}
	switch typing.Classify(after, snippet, len([]rune(after))-1) {
	case typing.Correct:
		m.keysCorrect++
	case typing.Incorrect:
		m.keysWrong++
	}
}

// applyTyping folds a snapshot into the view. Snapshots older than the one
// shown are dropped.
func (m *Model) applyTyping(s typing.Snapshot) tea.Cmd {
	prev := m.typingSnap
	if s.Seq < prev.Seq || s.Generation < prev.Generation {
		return nil
	}
	if s.Generation > prev.Generation {
		m.wpmHistory = m.wpmHistory[:0]
		m.keysCorrect = 0
		m.keysWrong = 0
		m.input.Reset()
		prev = typing.Snapshot{Generation: s.Generation}
	}
	m.typingSnap = s

	if s.Completed > prev.Completed {
		m.wpmHistory = append(m.wpmHistory, float64(s.WPM))
		m.input.SetValue(s.Input)
		m.input.CursorEnd()
	}
	if prev.Playing && !s.Playing {
		m.input.Blur()
		m.log.Debug().
			Int("score", s.Score).
			Int("wpm", s.WPM).
			Int("completed", s.Completed).
			Float64("accuracy", stats.Accuracy(m.keysCorrect, m.keysWrong)).
			Msg("speed test finished")
	}
	return nil
}

func (m *Model) viewTyping() string {
	s := m.typingSnap
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render("Code Speed Test"),
		"  ",
		scoreStyle.Render(fmt.Sprintf("Score %d", s.Score)),
		"  ",
		wpmStyle.Render(fmt.Sprintf("WPM %d", s.WPM)),
		"  ",
		timeStyle.Render(fmt.Sprintf("⏱ %ds", s.SecondsRemaining)),
	)
	if !s.Playing {
		return header + "\n\n" + m.typingSummary()
	}

	width := max(int(float64(m.width)*0.70), 20)
	snippet := []rune(s.Snippet)
	cursor := len([]rune(s.Input))
	if cursor >= len(snippet) {
		cursor = -1
	}
	text := wrapStyledRunes(buildStyledRunes(snippet, s.Feedback, cursor), width)

	lines := []string{header, "", text, "", m.input.View()}
	if s.ShowStreak {
		lines = append(lines, "", bannerStyle.Render(fmt.Sprintf("🔥 %dx Streak!", s.Streak)))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) typingSummary() string {
	s := m.typingSnap
	if s.Generation == 0 {
		return titleStyle.Render("Ready to test your coding speed?") + "\n" +
			footerStyle.Render(fmt.Sprintf("%d seconds, as many snippets as you can. Press enter.", m.typing.RoundSeconds()))
	}
	rows := [][]string{
		{"Score", fmt.Sprintf("%d", s.Score)},
		{"WPM", fmt.Sprintf("%d", s.WPM)},
		{"Snippets", fmt.Sprintf("%d", s.Completed)},
		{"Streak", fmt.Sprintf("%d", s.Streak)},
		{"Accuracy", fmt.Sprintf("%.0f%%", stats.Accuracy(m.keysCorrect, m.keysWrong)*100)},
	}
	if len(m.wpmHistory) > 1 {
		rows = append(rows, []string{"WPM trend", stats.Sparkline(m.wpmHistory)})
	}
	table := stats.FormatTable([]string{"Round", ""}, rows, map[int]bool{1: true})
	title := "Time's up!"
	if s.SecondsRemaining > 0 {
		title = "Round stopped"
	}
	out := titleStyle.Render(title) + "\n" + strings.Join(table, "\n") + "\n\n"
	if len(m.wpmHistory) > 1 {
		chart := stats.Chart(m.wpmHistory, min(m.width, 60), 4)
		out += wpmStyle.Render("WPM per snippet") + "\n" + strings.Join(chart, "\n") + "\n\n"
	}
	return out + footerStyle.Render("press enter to play again")
}

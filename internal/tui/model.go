// Package tui provides the Bubble Tea portfolio shell and game screens.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/eshginfarzali/eshgin/internal/bugs"
	"github.com/eshginfarzali/eshgin/internal/model"
	"github.com/eshginfarzali/eshgin/internal/observe"
	"github.com/eshginfarzali/eshgin/internal/profile"
	"github.com/eshginfarzali/eshgin/internal/typing"
)

const (
	tabProfile = iota
	tabBugs
	tabTyping
)

var tabNames = []string{"Profile", "Bug Squasher", "Code Speed Test"}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ADE80"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	scoreStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA")).Bold(true)
	wpmStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#C084FC")).Bold(true)
	timeStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#FACC15")).Bold(true)
	bannerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#34D399")).Bold(true)
	activeTabStyle   = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F0F0F0")).
				Bold(true).
				Padding(0, 1).
				Background(lipgloss.Color("#2563EB"))
	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1)
)

type bugsMsg bugs.Snapshot

type typingMsg typing.Snapshot

// Model implements the Bubble Tea portfolio shell.
type Model struct {
	profile profile.Profile
	log     zerolog.Logger

	bugs       *bugs.Game
	typing     *typing.Game
	area       *playArea
	bugsBox    *observe.Mailbox[bugs.Snapshot]
	typingBox  *observe.Mailbox[typing.Snapshot]
	unsubBugs  func()
	unsubType  func()
	done       chan struct{}
	bugsSnap   bugs.Snapshot
	typingSnap typing.Snapshot

	width     int
	height    int
	activeTab int

	profileView viewport.Model
	input       textinput.Model
	wpmHistory  []float64
	keysCorrect int
	keysWrong   int
}

// NewModel builds both games from cfg and the shell hosting them.
func NewModel(cfg model.Config, p profile.Profile, snippets []string, logger zerolog.Logger) *Model {
	area := &playArea{}
	bugGame := bugs.New(area, bugs.Options{
		SpawnInterval: cfg.Bugs.SpawnInterval,
		MaxTargets:    cfg.Bugs.MaxTargets,
		Margin:        cfg.Bugs.Margin,
		Logger:        &logger,
	})
	typingGame := typing.New(typing.Options{
		RoundSeconds: cfg.Typing.RoundSeconds,
		Snippets:     snippets,
		Logger:       &logger,
	})
	return newModel(p, bugGame, area, typingGame, logger)
}

func newModel(p profile.Profile, bugGame *bugs.Game, area *playArea, typingGame *typing.Game, logger zerolog.Logger) *Model {
	input := textinput.New()
	input.Placeholder = "Type here..."
	input.Prompt = "› "

	m := &Model{
		profile:     p,
		log:         logger,
		bugs:        bugGame,
		typing:      typingGame,
		area:        area,
		bugsBox:     observe.NewMailbox[bugs.Snapshot](),
		typingBox:   observe.NewMailbox[typing.Snapshot](),
		done:        make(chan struct{}),
		bugsSnap:    bugGame.Snapshot(),
		typingSnap:  typingGame.Snapshot(),
		profileView: viewport.New(0, 0),
		input:       input,
	}
	m.unsubBugs = bugGame.Subscribe(m.bugsBox.Put)
	m.unsubType = typingGame.Subscribe(m.typingBox.Put)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitBugs(), m.waitTyping())
}

// Close detaches from the games and stops their timers.
func (m *Model) Close() {
	select {
	case <-m.done:
		return
	default:
		close(m.done)
	}
	m.unsubBugs()
	m.unsubType()
	m.bugs.Close()
	m.typing.Close()
}

func (m *Model) waitBugs() tea.Cmd {
	box, done := m.bugsBox, m.done
	return func() tea.Msg {
		select {
		case s := <-box.C():
			return bugsMsg(s)
		case <-done:
			return nil
		}
	}
}

func (m *Model) waitTyping() tea.Cmd {
	box, done := m.typingBox, m.done
	return func() tea.Msg {
		select {
		case s := <-box.C():
			return typingMsg(s)
		case <-done:
			return nil
		}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil
	case bugsMsg:
		m.bugsSnap = bugs.Snapshot(msg)
		return m, m.waitBugs()
	case typingMsg:
		return m, tea.Batch(m.applyTyping(typing.Snapshot(msg)), m.waitTyping())
	case tea.MouseMsg:
		if m.activeTab == tabBugs {
			m.handleMouse(msg)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.Close()
		return m, tea.Quit
	}
	switch msg.Type {
	case tea.KeyTab:
		return m, m.selectTab((m.activeTab + 1) % len(tabNames))
	case tea.KeyShiftTab:
		return m, m.selectTab((m.activeTab + len(tabNames) - 1) % len(tabNames))
	}
	if m.activeTab == tabTyping && m.typingSnap.Playing {
		return m.updateTypingKey(msg)
	}
	switch msg.String() {
	case "q":
		m.Close()
		return m, tea.Quit
	case "1", "2", "3":
		return m, m.selectTab(int(msg.Runes[0] - '1'))
	}
	switch m.activeTab {
	case tabBugs:
		return m.updateBugsKey(msg)
	case tabTyping:
		return m.updateTypingKey(msg)
	default:
		var cmd tea.Cmd
		m.profileView, cmd = m.profileView.Update(msg)
		return m, cmd
	}
}

func (m *Model) selectTab(tab int) tea.Cmd {
	m.activeTab = tab
	if tab == tabTyping && m.typingSnap.Playing {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

func (m *Model) layout() {
	m.area.resize(m.width, m.height-3)
	m.profileView.Width = m.width
	m.profileView.Height = max(m.height-2, 1)
	var b strings.Builder
	profile.RenderTo(&b, m.profile, min(m.width-2, 100))
	m.profileView.SetContent(b.String())
	m.input.Width = max(int(float64(m.width)*0.70)-4, 10)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	tabs := m.renderTabs()
	var body string
	switch m.activeTab {
	case tabBugs:
		body = m.viewBugs()
	case tabTyping:
		body = m.viewTyping()
	default:
		body = m.profileView.View()
	}
	footer := footerStyle.Render(m.helpLine())
	bodyHeight := max(m.height-2, 1)
	body = lipgloss.Place(m.width, bodyHeight, lipgloss.Left, lipgloss.Top, body)
	return tabs + "\n" + body + "\n" + lipgloss.PlaceHorizontal(m.width, lipgloss.Center, footer)
}

func (m *Model) renderTabs() string {
	parts := make([]string, len(tabNames))
	for i, name := range tabNames {
		label := string(rune('1'+i)) + " " + name
		if i == m.activeTab {
			parts[i] = activeTabStyle.Render(label)
		} else {
			parts[i] = inactiveTabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) helpLine() string {
	switch m.activeTab {
	case tabBugs:
		if m.bugsSnap.Celebrating {
			return bannerStyle.Render("System optimized! Keep going!")
		}
		if m.bugsSnap.Playing {
			return "click a bug to squash it · esc stop · tab switch · q quit"
		}
		return "enter start debugging · tab switch · q quit"
	case tabTyping:
		if m.typingSnap.Playing {
			return "type the snippet exactly · esc stop · tab switch · ctrl+c quit"
		}
		return "enter start typing · tab switch · q quit"
	default:
		return "↑/↓ scroll · tab switch · q quit"
	}
}

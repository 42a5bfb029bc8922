// Package topics implements the student home screen: the five math
// worlds, the oracle entrance, and the logout door.
package topics

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"mathmystery/internal/account"
	"mathmystery/internal/question"
	"mathmystery/internal/router"
	"mathmystery/internal/screen"
	"mathmystery/internal/store"
	"mathmystery/internal/ui/components"
	"mathmystery/internal/ui/layout"
	"mathmystery/internal/ui/theme"
)

// Config carries the screen's dependencies. MakePlay and MakeOracle
// build the destination screens; Logout tears the whole stack down.
type Config struct {
	User       *account.User
	Store      *store.Store
	MakePlay   func(topic question.Topic) screen.Screen
	MakeOracle func() screen.Screen
	Logout     func() tea.Cmd
}

// progressMsg refreshes the header numbers from the store.
type progressMsg struct {
	Progress *account.Progress
}

// TopicsScreen is the student's home.
type TopicsScreen struct {
	cfg      Config
	menu     components.Menu
	progress *account.Progress
}

var _ screen.Screen = (*TopicsScreen)(nil)
var _ screen.KeyHintProvider = (*TopicsScreen)(nil)
var _ screen.StatusProvider = (*TopicsScreen)(nil)
var _ screen.Refresher = (*TopicsScreen)(nil)

// New creates the topics screen.
func New(cfg Config) *TopicsScreen {
	s := &TopicsScreen{cfg: cfg, progress: cfg.User.Progress}

	items := make([]components.MenuItem, 0, len(question.Topics())+2)
	for _, t := range question.Topics() {
		topic := t
		items = append(items, components.MenuItem{
			Label: string(topic) + " World",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: cfg.MakePlay(topic)}
				}
			},
		})
	}
	items = append(items, components.MenuItem{
		Label:  "The Oracle",
		Detail: "ask anything",
		Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: cfg.MakeOracle()}
			}
		},
	})
	items = append(items, components.MenuItem{
		Label: "Log out",
		Action: func() tea.Cmd {
			return cfg.Logout()
		},
	})

	s.menu = components.NewMenu(items)
	return s
}

func (s *TopicsScreen) Init() tea.Cmd {
	return s.refreshProgress()
}

// Refresh reloads progress when a play session above this screen ends.
func (s *TopicsScreen) Refresh() tea.Cmd {
	return s.refreshProgress()
}

// refreshProgress re-reads the student record so progress earned in a
// play session shows up when the student comes back here.
func (s *TopicsScreen) refreshProgress() tea.Cmd {
	st, id := s.cfg.Store, s.cfg.User.ID
	return func() tea.Msg {
		u, err := st.User(context.Background(), id)
		if err != nil || u == nil {
			return progressMsg{}
		}
		return progressMsg{Progress: u.Progress}
	}
}

func (s *TopicsScreen) Title() string {
	return "Choose Your World"
}

func (s *TopicsScreen) Status() string {
	if s.progress == nil {
		return ""
	}
	return fmt.Sprintf("Score %d   Lv %d", s.progress.Score, s.progress.Level)
}

func (s *TopicsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Up/Down", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *TopicsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(progressMsg); ok {
		if msg.Progress != nil {
			s.progress = msg.Progress
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *TopicsScreen) View(width, height int) string {
	var b strings.Builder

	greeting := theme.Title.Render("Welcome back, " + s.cfg.User.Name + "!")
	b.WriteString(greeting)
	b.WriteString("\n\n")

	if s.progress != nil {
		stats := fmt.Sprintf("Score %d    Level %d    %s",
			s.progress.Score, s.progress.Level,
			components.RenderLives(s.progress.Lives, account.MaxLives))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(stats))
		b.WriteString("\n\n")
	}

	b.WriteString(s.menu.View())

	card := theme.Card.Width(min(width-4, 56)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

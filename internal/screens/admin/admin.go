// Package admin implements the administrator's user management screen.
package admin

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"mathmystery/internal/account"
	"mathmystery/internal/screen"
	"mathmystery/internal/store"
	"mathmystery/internal/ui/layout"
	"mathmystery/internal/ui/theme"
)

// usersMsg delivers the full user list.
type usersMsg struct {
	Users []*account.User
	Err   error
}

// deletedMsg reports a finished delete.
type deletedMsg struct {
	Err error
}

// AdminScreen lists every account and supports deletion. The configured
// admin credential is not a stored account and never shows up here.
type AdminScreen struct {
	store  *store.Store
	logout func() tea.Cmd

	users      []*account.User
	selected   int
	confirming bool
	loaded     bool
	errMsg     string
	status     string
}

var _ screen.Screen = (*AdminScreen)(nil)
var _ screen.KeyHintProvider = (*AdminScreen)(nil)

// New creates the admin screen.
func New(st *store.Store, logout func() tea.Cmd) *AdminScreen {
	return &AdminScreen{store: st, logout: logout}
}

func (s *AdminScreen) Init() tea.Cmd {
	return s.loadUsers()
}

func (s *AdminScreen) loadUsers() tea.Cmd {
	st := s.store
	return func() tea.Msg {
		users, err := st.Users(context.Background())
		return usersMsg{Users: users, Err: err}
	}
}

func (s *AdminScreen) Title() string {
	return "Administration"
}

func (s *AdminScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Keep"},
		}
	}
	return []layout.KeyHint{
		{Key: "Up/Down", Description: "Navigate"},
		{Key: "D", Description: "Delete account"},
		{Key: "Ctrl+L", Description: "Log out"},
	}
}

func (s *AdminScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case usersMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.users = msg.Users
		if s.selected >= len(s.users) {
			s.selected = len(s.users) - 1
		}
		if s.selected < 0 {
			s.selected = 0
		}
		return s, nil

	case deletedMsg:
		if msg.Err != nil {
			s.status = "delete failed: " + msg.Err.Error()
			return s, nil
		}
		s.status = "account deleted"
		return s, s.loadUsers()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *AdminScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.confirming {
		switch msg.String() {
		case "y", "Y":
			s.confirming = false
			return s, s.deleteSelected()
		case "n", "N", "esc":
			s.confirming = false
		}
		return s, nil
	}

	switch msg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.users)-1 {
			s.selected++
		}
	case "d":
		if len(s.users) > 0 {
			s.confirming = true
		}
	case "ctrl+l":
		return s, s.logout()
	}
	return s, nil
}

func (s *AdminScreen) deleteSelected() tea.Cmd {
	if s.selected < 0 || s.selected >= len(s.users) {
		return nil
	}
	st, id := s.store, s.users[s.selected].ID
	return func() tea.Msg {
		return deletedMsg{Err: st.DeleteUser(context.Background(), id)}
	}
}

func (s *AdminScreen) View(width, height int) string {
	cardWidth := min(width-4, 90)

	var b strings.Builder

	switch {
	case s.errMsg != "":
		b.WriteString(theme.Incorrect.Render(s.errMsg))
	case !s.loaded:
		b.WriteString(theme.Hint.Render("loading accounts..."))
	case len(s.users) == 0:
		b.WriteString(theme.Hint.Render("no accounts registered yet"))
	default:
		b.WriteString(s.renderTable())
	}

	if s.confirming && s.selected < len(s.users) {
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Render(
			fmt.Sprintf("Delete %q and all their progress? (y/n)", s.users[s.selected].Username)))
	} else if s.status != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render(s.status))
	}

	card := theme.Card.Width(cardWidth).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *AdminScreen) renderTable() string {
	headStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

	var b strings.Builder
	b.WriteString("  " + headStyle.Render(fmt.Sprintf("%-20s %-14s %-9s %6s %5s",
		"Name", "Username", "Role", "Score", "Lv")))

	for i, u := range s.users {
		score, level := "-", "-"
		if u.Progress != nil {
			score = fmt.Sprint(u.Progress.Score)
			level = fmt.Sprint(u.Progress.Level)
		}
		line := fmt.Sprintf("%-20s %-14s %-9s %6s %5s",
			truncate(u.Name, 20), truncate(u.Username, 14), u.Role, score, level)

		b.WriteString("\n")
		if i == s.selected {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("> " + line))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("  " + line))
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}

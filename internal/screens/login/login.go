// Package login implements the sign-in and registration screen.
package login

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"mathmystery/internal/account"
	"mathmystery/internal/auth"
	"mathmystery/internal/router"
	"mathmystery/internal/screen"
	"mathmystery/internal/ui/components"
	"mathmystery/internal/ui/layout"
	"mathmystery/internal/ui/theme"
)

type tab int

const (
	tabLogin tab = iota
	tabRegister
)

// field indices on the register tab.
const (
	regName = iota
	regEmail
	regUsername
	regPassword
	regRole
	regFieldCount
)

// authResultMsg carries the outcome of an async login or registration.
type authResultMsg struct {
	User *account.User
	Err  error
}

// LoginScreen handles both tabs of the entry flow. next maps the
// authenticated user to their home screen.
type LoginScreen struct {
	auth *auth.Manager
	next func(*account.User) screen.Screen

	tab     tab
	inputs  []components.TextInput
	focus   int
	role    account.Role
	errMsg  string
	busy    bool
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates the login screen.
func New(authMgr *auth.Manager, next func(*account.User) screen.Screen) *LoginScreen {
	s := &LoginScreen{
		auth: authMgr,
		next: next,
		role: account.RoleStudent,
	}
	s.buildInputs()
	return s
}

func (s *LoginScreen) buildInputs() {
	if s.tab == tabLogin {
		s.inputs = []components.TextInput{
			components.NewTextInput("Username", "your username", false),
			components.NewTextInput("Password", "", true),
		}
	} else {
		s.inputs = []components.TextInput{
			components.NewTextInput("Name", "full name", false),
			components.NewTextInput("Email", "you@school.example", false),
			components.NewTextInput("Username", "pick a username", false),
			components.NewTextInput("Password", "", true),
		}
	}
	s.focus = 0
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.inputs[0].Focus()
}

func (s *LoginScreen) Title() string {
	return "Welcome"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Ctrl+T", Description: "Switch tab"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		s.busy = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: s.next(msg.User)}
		}

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		return s.handleKey(msg)
	}

	return s.forwardToFocused(msg)
}

func (s *LoginScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "ctrl+t":
		if s.tab == tabLogin {
			s.tab = tabRegister
		} else {
			s.tab = tabLogin
		}
		s.errMsg = ""
		s.buildInputs()
		return s, s.inputs[0].Focus()

	case "tab", "down":
		return s, s.cycleFocus(1)

	case "shift+tab", "up":
		return s, s.cycleFocus(-1)

	case "left", "right":
		if s.tab == tabRegister && s.focus == regRole {
			if s.role == account.RoleStudent {
				s.role = account.RoleTeacher
			} else {
				s.role = account.RoleStudent
			}
			return s, nil
		}

	case "enter":
		return s, s.submit()
	}

	return s.forwardToFocused(msg)
}

// fieldCount includes the role selector on the register tab.
func (s *LoginScreen) fieldCount() int {
	if s.tab == tabRegister {
		return regFieldCount
	}
	return len(s.inputs)
}

func (s *LoginScreen) cycleFocus(delta int) tea.Cmd {
	n := s.fieldCount()
	s.focus = (s.focus + delta + n) % n

	var cmd tea.Cmd
	for i := range s.inputs {
		if i == s.focus {
			cmd = s.inputs[i].Focus()
		} else {
			s.inputs[i].Blur()
		}
	}
	return cmd
}

func (s *LoginScreen) forwardToFocused(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.focus >= len(s.inputs) {
		return s, nil
	}
	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s *LoginScreen) submit() tea.Cmd {
	s.errMsg = ""
	s.busy = true

	if s.tab == tabLogin {
		username := strings.TrimSpace(s.inputs[0].Value())
		password := s.inputs[1].Value()
		return func() tea.Msg {
			u, err := s.auth.Login(context.Background(), username, password)
			return authResultMsg{User: u, Err: err}
		}
	}

	name := strings.TrimSpace(s.inputs[regName].Value())
	email := strings.TrimSpace(s.inputs[regEmail].Value())
	username := strings.TrimSpace(s.inputs[regUsername].Value())
	password := s.inputs[regPassword].Value()
	role := s.role
	return func() tea.Msg {
		u, err := s.auth.Register(context.Background(), name, email, username, password, role)
		return authResultMsg{User: u, Err: err}
	}
}

func (s *LoginScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(RenderBanner(width))
	b.WriteString("\n\n")

	b.WriteString(s.renderTabs())
	b.WriteString("\n\n")

	for i := range s.inputs {
		b.WriteString(s.inputs[i].View())
		b.WriteString("\n\n")
	}

	if s.tab == tabRegister {
		b.WriteString(s.renderRolePicker())
		b.WriteString("\n")
	}

	if s.busy {
		b.WriteString("\n" + theme.Hint.Render("signing in..."))
	}
	if s.errMsg != "" {
		b.WriteString("\n" + theme.Incorrect.Render(s.errMsg))
	}

	card := theme.Card.Width(min(width-4, 60)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *LoginScreen) renderTabs() string {
	loginTab := theme.TabInactive.Render("Login")
	registerTab := theme.TabInactive.Render("Register")
	if s.tab == tabLogin {
		loginTab = theme.TabActive.Render("Login")
	} else {
		registerTab = theme.TabActive.Render("Register")
	}
	return loginTab + " " + registerTab
}

func (s *LoginScreen) renderRolePicker() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Render("I am a")
	if s.focus == regRole {
		label = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("I am a")
	}

	student := theme.TabInactive.Render("Student")
	teacher := theme.TabInactive.Render("Teacher")
	if s.role == account.RoleStudent {
		student = theme.TabActive.Render("Student")
	} else {
		teacher = theme.TabActive.Render("Teacher")
	}
	return label + "\n" + student + " " + teacher
}

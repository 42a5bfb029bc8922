// Package app wires the stores, auth, and question source into the root
// Bubble Tea model.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"mathmystery/internal/account"
	"mathmystery/internal/auth"
	"mathmystery/internal/game"
	"mathmystery/internal/question"
	"mathmystery/internal/router"
	"mathmystery/internal/screen"
	"mathmystery/internal/screens/admin"
	"mathmystery/internal/screens/login"
	"mathmystery/internal/screens/oracle"
	"mathmystery/internal/screens/play"
	"mathmystery/internal/screens/teacherpanel"
	"mathmystery/internal/screens/topics"
	"mathmystery/internal/store"
	"mathmystery/internal/ui/layout"
)

// Options carries the application dependencies.
type Options struct {
	Store     *store.Store
	Auth      *auth.Manager
	Questions *question.Service
	Log       *slog.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	width  int
	height int
}

// newAppModel restores the persisted session if there is one, otherwise
// starts at the login screen.
func newAppModel(opts Options) AppModel {
	m := AppModel{opts: opts}

	var first screen.Screen
	if u, err := opts.Auth.Current(context.Background()); err == nil && u != nil {
		first = m.homeFor(u)
	} else {
		first = m.loginScreen()
	}

	m.router = router.New(first)
	return m
}

func (m AppModel) loginScreen() screen.Screen {
	return login.New(m.opts.Auth, m.homeFor)
}

// logout clears the session and drops back to a fresh login screen.
func (m AppModel) logout() tea.Cmd {
	opts := m.opts
	next := m.loginScreen()
	return func() tea.Msg {
		if err := opts.Auth.Logout(context.Background()); err != nil {
			opts.Log.Warn("logout failed", "error", err)
		}
		return router.ResetScreenMsg{Screen: next}
	}
}

// homeFor routes an authenticated user to their role's home screen.
func (m AppModel) homeFor(u *account.User) screen.Screen {
	switch u.Role {
	case account.RoleTeacher:
		return teacherpanel.New(m.opts.Store, m.logout)
	case account.RoleAdmin:
		return admin.New(m.opts.Store, m.logout)
	default:
		return m.studentHome(u)
	}
}

// studentHome builds the topics screen. Each play session gets a fresh
// engine over the shared store.
func (m AppModel) studentHome(u *account.User) screen.Screen {
	opts := m.opts
	return topics.New(topics.Config{
		User:  u,
		Store: opts.Store,
		MakePlay: func(topic question.Topic) screen.Screen {
			engine := game.NewEngine(opts.Store, opts.Log, u.ID)
			return play.New(engine, opts.Questions, topic)
		},
		MakeOracle: func() screen.Screen {
			return oracle.New(opts.Questions)
		},
		Logout: m.logout,
	})
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); hints != nil {
			footerHints = append(hints, footerHints...)
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}

// Package teacherpanel implements the teacher's roster view with live
// search and roster export.
package teacherpanel

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"mathmystery/internal/account"
	"mathmystery/internal/report"
	"mathmystery/internal/screen"
	"mathmystery/internal/store"
	"mathmystery/internal/ui/components"
	"mathmystery/internal/ui/layout"
	"mathmystery/internal/ui/theme"
)

// rosterMsg delivers the student list.
type rosterMsg struct {
	Students []*account.User
	Err      error
}

// exportDoneMsg reports the outcome of a roster export.
type exportDoneMsg struct {
	Path string
	Err  error
}

// TeacherScreen shows every student and their progress.
type TeacherScreen struct {
	store  *store.Store
	logout func() tea.Cmd

	search   components.TextInput
	students []*account.User
	loaded   bool
	errMsg   string
	status   string
}

var _ screen.Screen = (*TeacherScreen)(nil)
var _ screen.KeyHintProvider = (*TeacherScreen)(nil)

// New creates the teacher panel.
func New(st *store.Store, logout func() tea.Cmd) *TeacherScreen {
	return &TeacherScreen{
		store:  st,
		logout: logout,
		search: components.NewTextInput("Search", "name, username or email", false),
	}
}

func (s *TeacherScreen) Init() tea.Cmd {
	return tea.Batch(s.search.Focus(), s.loadRoster())
}

func (s *TeacherScreen) loadRoster() tea.Cmd {
	st := s.store
	return func() tea.Msg {
		users, err := st.Users(context.Background())
		if err != nil {
			return rosterMsg{Err: err}
		}
		var students []*account.User
		for _, u := range users {
			if u.IsStudent() {
				students = append(students, u)
			}
		}
		return rosterMsg{Students: students}
	}
}

func (s *TeacherScreen) Title() string {
	return "Teacher Panel"
}

func (s *TeacherScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Type", Description: "Search"},
		{Key: "Ctrl+E", Description: "Export CSV"},
		{Key: "Ctrl+P", Description: "Export PDF"},
		{Key: "Ctrl+L", Description: "Log out"},
	}
}

func (s *TeacherScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case rosterMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.students = msg.Students
		return s, nil

	case exportDoneMsg:
		if msg.Err != nil {
			s.status = "export failed: " + msg.Err.Error()
		} else {
			s.status = "exported " + msg.Path
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+e":
			return s, s.export("csv")
		case "ctrl+p":
			return s, s.export("pdf")
		case "ctrl+l":
			return s, s.logout()
		}
	}

	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	return s, cmd
}

// export writes the currently filtered roster next to the working
// directory, timestamped so repeated exports never clobber each other.
func (s *TeacherScreen) export(format string) tea.Cmd {
	students := s.filtered()
	return func() tea.Msg {
		path := fmt.Sprintf("roster-%s.%s", time.Now().Format("20060102-150405"), format)
		f, err := os.Create(path)
		if err != nil {
			return exportDoneMsg{Err: err}
		}
		defer f.Close()

		if format == "pdf" {
			err = report.WritePDF(f, students)
		} else {
			err = report.WriteCSV(f, students)
		}
		if err != nil {
			return exportDoneMsg{Err: err}
		}
		return exportDoneMsg{Path: path}
	}
}

// filtered applies the live search to the roster.
func (s *TeacherScreen) filtered() []*account.User {
	query := strings.ToLower(strings.TrimSpace(s.search.Value()))
	if query == "" {
		return s.students
	}
	var out []*account.User
	for _, u := range s.students {
		if strings.Contains(strings.ToLower(u.Name), query) ||
			strings.Contains(strings.ToLower(u.Username), query) ||
			strings.Contains(strings.ToLower(u.Email), query) {
			out = append(out, u)
		}
	}
	return out
}

func (s *TeacherScreen) View(width, height int) string {
	cardWidth := min(width-4, 90)

	var b strings.Builder

	b.WriteString(s.search.View())
	b.WriteString("\n\n")

	switch {
	case s.errMsg != "":
		b.WriteString(theme.Incorrect.Render(s.errMsg))
	case !s.loaded:
		b.WriteString(theme.Hint.Render("loading roster..."))
	default:
		b.WriteString(s.renderTable())
	}

	if s.status != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render(s.status))
	}

	card := theme.Card.Width(cardWidth).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *TeacherScreen) renderTable() string {
	students := s.filtered()
	if len(students) == 0 {
		return theme.Hint.Render("no students found")
	}

	headStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(theme.Text)

	var b strings.Builder
	b.WriteString(headStyle.Render(fmt.Sprintf("%-20s %-14s %-26s %6s %5s %5s",
		"Name", "Username", "Email", "Score", "Lv", "Lives")))
	for _, u := range students {
		score, level, lives := 0, 0, 0
		if u.Progress != nil {
			score, level, lives = u.Progress.Score, u.Progress.Level, u.Progress.Lives
		}
		b.WriteString("\n")
		b.WriteString(rowStyle.Render(fmt.Sprintf("%-20s %-14s %-26s %6d %5d %5d",
			truncate(u.Name, 20), truncate(u.Username, 14), truncate(u.Email, 26),
			score, level, lives)))
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

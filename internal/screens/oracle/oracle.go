// Package oracle implements the free-form question screen.
package oracle

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"mathmystery/internal/question"
	"mathmystery/internal/screen"
	"mathmystery/internal/ui/components"
	"mathmystery/internal/ui/layout"
	"mathmystery/internal/ui/theme"
)

// answerMsg delivers an oracle answer. Seq drops answers to questions
// the student has already replaced.
type answerMsg struct {
	Seq    uint64
	Answer *question.OracleAnswer
}

// OracleScreen lets the student ask anything math.
type OracleScreen struct {
	svc *question.Service

	input  components.TextInput
	deep   bool
	seq    uint64
	busy   bool
	asked  string
	answer *question.OracleAnswer
}

var _ screen.Screen = (*OracleScreen)(nil)
var _ screen.KeyHintProvider = (*OracleScreen)(nil)

// New creates the oracle screen.
func New(svc *question.Service) *OracleScreen {
	return &OracleScreen{
		svc:   svc,
		input: components.NewTextInput("Your question", "what do you want to know?", false),
	}
}

func (s *OracleScreen) Init() tea.Cmd {
	return s.input.Focus()
}

func (s *OracleScreen) Title() string {
	return "The Oracle"
}

func (s *OracleScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Ask"},
		{Key: "Ctrl+D", Description: "Toggle deep mode"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *OracleScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case answerMsg:
		if msg.Seq == s.seq {
			s.answer = msg.Answer
			s.busy = false
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+d":
			s.deep = !s.deep
			return s, nil
		case "enter":
			return s, s.ask()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// ask sends the question off. Re-asking while an answer is in flight
// supersedes it; the stale answer is dropped when it lands.
func (s *OracleScreen) ask() tea.Cmd {
	query := strings.TrimSpace(s.input.Value())
	if query == "" {
		return nil
	}

	s.seq++
	seq := s.seq
	s.busy = true
	s.asked = query
	s.answer = nil

	deep := s.deep
	return func() tea.Msg {
		return answerMsg{Seq: seq, Answer: s.svc.Explain(context.Background(), query, deep)}
	}
}

func (s *OracleScreen) View(width, height int) string {
	cardWidth := min(width-4, 76)
	innerWidth := cardWidth - 6

	var b strings.Builder

	mode := theme.TabInactive.Render("deep mode off")
	if s.deep {
		mode = theme.TabActive.Render("deep mode on")
	}
	b.WriteString(mode)
	b.WriteString("\n\n")

	b.WriteString(s.input.View())
	b.WriteString("\n\n")

	switch {
	case s.busy:
		b.WriteString(theme.Hint.Render("the oracle is thinking..."))
	case s.answer != nil:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Width(innerWidth).Render(s.asked))
		b.WriteString("\n\n")
		b.WriteString(theme.Body.Width(innerWidth).Render(s.answer.Text))
		if len(s.answer.Sources) > 0 {
			b.WriteString("\n\n")
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).Render("Sources"))
			for _, src := range s.answer.Sources {
				b.WriteString("\n")
				b.WriteString(theme.Hint.Width(innerWidth).Render("- " + src.Title + " (" + src.URI + ")"))
			}
		}
	default:
		b.WriteString(theme.Hint.Render("Ask the oracle any math question. Deep mode gives a longer lesson."))
	}

	card := theme.Card.Width(cardWidth).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"mathmystery/internal/ui/theme"
)

// optionLabels is fixed: questions always carry four options.
var optionLabels = []string{"A", "B", "C", "D"}

// MultiChoice is a four-option answer selector. After Reveal the
// correct option shows green and a wrong pick shows red.
type MultiChoice struct {
	Options      []string
	CorrectIndex int
	Selected     int
	Revealed     bool
	ChosenIndex  int
}

// NewMultiChoice creates a selector over the given options. correct is
// the text of the right answer; an answer not found among the options
// marks nothing green, which the generation layer prevents.
func NewMultiChoice(options []string, correct string) MultiChoice {
	correctIndex := -1
	for i, opt := range options {
		if opt == correct {
			correctIndex = i
			break
		}
	}
	return MultiChoice{
		Options:      options,
		CorrectIndex: correctIndex,
		Selected:     0,
		ChosenIndex:  -1,
	}
}

// Update handles keyboard navigation. Enter and the 1-4 shortcuts lock
// in an answer.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Revealed {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "1", "2", "3", "4":
		idx := int(kmsg.String()[0] - '1')
		if idx < len(m.Options) {
			m.Selected = idx
			m.Revealed = true
			m.ChosenIndex = idx
		}
	case "enter":
		m.Revealed = true
		m.ChosenIndex = m.Selected
	}

	return m, nil
}

// View renders the option list.
func (m MultiChoice) View() string {
	var s string
	for i, opt := range m.Options {
		label := optionLabels[i%len(optionLabels)]
		prefix := "  "
		if i == m.Selected && !m.Revealed {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		if m.Revealed {
			switch {
			case i == m.CorrectIndex:
				s += lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line) + "\n"
			case i == m.ChosenIndex:
				s += lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(line) + "\n"
			default:
				s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
			}
		} else {
			if i == m.Selected {
				s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
			} else {
				s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
			}
		}
	}
	return s
}

// IsCorrect returns true if the locked-in answer is the right one.
func (m MultiChoice) IsCorrect() bool {
	return m.Revealed && m.ChosenIndex == m.CorrectIndex
}

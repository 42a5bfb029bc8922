package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"mathmystery/internal/account"
	"mathmystery/internal/game"
	"mathmystery/internal/ui/components"
	"mathmystery/internal/ui/theme"
)

func (s *PlayScreen) Status() string {
	return fmt.Sprintf("Score %d   Lv %d   %s",
		s.state.Score, s.state.Level,
		components.RenderLives(s.state.Lives, account.MaxLives))
}

func (s *PlayScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return s.renderError(width, height)
	case s.state.Phase == game.PhaseGameOver:
		return s.renderGameOver(width, height)
	case s.loading || s.current == nil:
		return s.renderLoading(width, height)
	default:
		return s.renderQuestion(width, height)
	}
}

func (s *PlayScreen) renderError(width, height int) string {
	msg := theme.Incorrect.Render("Something went wrong:") + "\n\n" +
		theme.Body.Render(s.errMsg) + "\n\n" +
		theme.Hint.Render("press any key to go back")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Card.Render(msg))
}

func (s *PlayScreen) renderLoading(width, height int) string {
	msg := theme.Title.Render("Summoning a question...") + "\n\n" +
		theme.Hint.Render(string(s.topic)+", level "+fmt.Sprint(s.state.Level))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

func (s *PlayScreen) renderGameOver(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Incorrect.Render("GAME OVER"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("Final score: %d    Level: %d", s.state.Score, s.state.Level)))
	b.WriteString("\n\n")
	b.WriteString(s.gameOverMenu.View())

	card := theme.Card.Width(min(width-4, 48)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *PlayScreen) renderQuestion(width, height int) string {
	cardWidth := min(width-4, 70)
	innerWidth := cardWidth - 6

	var b strings.Builder

	bar := components.NewTimerBar(s.remaining, int(questionTime.Seconds()), innerWidth)
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(innerWidth)
	b.WriteString(questionStyle.Render(s.current.Text))
	b.WriteString("\n\n")

	b.WriteString(s.choices.View())

	if s.hintBusy {
		b.WriteString("\n" + theme.Hint.Render("asking for a hint..."))
	} else if s.hint != "" && !s.choices.Revealed {
		b.WriteString("\n" + theme.Hint.Width(innerWidth).Render("Hint: "+s.hint))
	}

	if s.choices.Revealed {
		b.WriteString("\n")
		b.WriteString(s.renderFeedback(innerWidth))
	}

	card := theme.Card.Width(cardWidth).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *PlayScreen) renderFeedback(width int) string {
	var b strings.Builder

	switch {
	case s.timedOut:
		b.WriteString(theme.Incorrect.Render("Time's up!"))
	case s.choices.IsCorrect():
		b.WriteString(theme.Correct.Render(fmt.Sprintf("Correct! +%d points", s.lastPoints)))
		if s.leveledUp {
			b.WriteString("  " + theme.Correct.Render("Level up!"))
		}
	default:
		b.WriteString(theme.Incorrect.Render("Not quite."))
	}

	b.WriteString("\n\n")
	b.WriteString(theme.Body.Width(width).Render(s.current.Explanation))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("press any key to continue"))
	return b.String()
}

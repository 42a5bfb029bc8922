package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"mathmystery/internal/ui/theme"
)

// lowTimeFraction is the remaining share below which the bar turns red.
const lowTimeFraction = 0.25

// TimerBar displays a horizontal countdown bar with seconds remaining.
type TimerBar struct {
	Remaining int
	Total     int
	Width     int
}

// NewTimerBar creates a countdown bar.
func NewTimerBar(remaining, total, width int) TimerBar {
	return TimerBar{Remaining: remaining, Total: total, Width: width}
}

// View renders the bar.
func (t TimerBar) View() string {
	if t.Total <= 0 {
		return ""
	}

	frac := float64(t.Remaining) / float64(t.Total)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	label := fmt.Sprintf(" %2ds ", t.Remaining)
	barWidth := t.Width - lipgloss.Width(label)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * frac)
	if filled > barWidth {
		filled = barWidth
	}
	empty := barWidth - filled

	fillStyle := theme.TimerFilled
	if frac <= lowTimeFraction {
		fillStyle = theme.TimerLow
	}

	bar := fillStyle.Render(strings.Repeat(" ", filled)) +
		theme.TimerEmpty.Render(strings.Repeat(" ", empty))

	labelStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if frac <= lowTimeFraction {
		labelStyle = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	}

	return labelStyle.Render(label) + bar
}

package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"mathmystery/internal/ui/theme"
)

// RenderLives draws current lives as filled and hollow hearts.
func RenderLives(lives, max int) string {
	if lives < 0 {
		lives = 0
	}
	if lives > max {
		lives = max
	}

	full := lipgloss.NewStyle().Foreground(theme.Error).Render(strings.Repeat("♥ ", lives))
	lost := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("♡ ", max-lives))
	return strings.TrimRight(full+lost, " ")
}

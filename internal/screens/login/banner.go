package login

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/common-nighthawk/go-figure"

	"mathmystery/internal/ui/theme"
)

const bannerCompact = "M A T H   M Y S T E R Y"

// RenderBanner returns the MATH MYSTERY banner in the primary color,
// with a compact fallback for narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	art := figure.NewFigure("Math Mystery", "", true).String()
	if width < lipgloss.Width(art) {
		return style.Render(bannerCompact)
	}
	return style.Render(strings.TrimRight(art, "\n"))
}

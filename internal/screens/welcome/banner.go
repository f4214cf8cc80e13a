package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/placeprep/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ██╗      █████╗  ██████╗███████╗██████╗ ██████╗ ███████╗██████╗
 ██╔══██╗██║     ██╔══██╗██╔════╝██╔════╝██╔══██╗██╔══██╗██╔════╝██╔══██╗
 ██████╔╝██║     ███████║██║     █████╗  ██████╔╝██████╔╝█████╗  ██████╔╝
 ██╔═══╝ ██║     ██╔══██║██║     ██╔══╝  ██╔═══╝ ██╔══██╗██╔══╝  ██╔═══╝
 ██║     ███████╗██║  ██║╚██████╗███████╗██║     ██║  ██║███████╗██║
 ╚═╝     ╚══════╝╚═╝  ╚═╝ ╚═════╝╚══════╝╚═╝     ╚═╝  ╚═╝╚══════╝╚═╝`

const bannerCompact = "P L A C E P R E P"

// RenderBanner returns the PLACEPREP banner styled in the primary color.
// Uses a compact fallback for narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 78 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}

package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/chemiz/internal/ui/theme"
)

const bannerArt = `
  ██████╗██╗  ██╗███████╗███╗   ███╗██╗███████╗
 ██╔════╝██║  ██║██╔════╝████╗ ████║██║╚══███╔╝
 ██║     ███████║█████╗  ██╔████╔██║██║  ███╔╝
 ██║     ██╔══██║██╔══╝  ██║╚██╔╝██║██║ ███╔╝
 ╚██████╗██║  ██║███████╗██║ ╚═╝ ██║██║███████╗
  ╚═════╝╚═╝  ╚═╝╚══════╝╚═╝     ╚═╝╚═╝╚══════╝`

// bannerMinWidth is the narrowest terminal that fits bannerArt.
const bannerMinWidth = 52

func banner(width int) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	if width < bannerMinWidth {
		return style.Render("C · H · E · M · I · Z")
	}
	return style.Render(bannerArt)
}

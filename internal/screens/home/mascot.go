package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/chemiz/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // default purple
	MascotCelebrating                      // gold, star eyes; strong accuracy
	MascotAlert                            // orange, exclamation; stats disabled
)

const mascotIdle = `  ╭─╮
  │◉◉│
 ╭╯▽ ╰╮
╱ ∘ ° ╲
╰≈≈≈≈≈╯`

const mascotCelebrating = `  ╭─╮  ★
  │★★│
 ╭╯▿ ╰╮
╱ ° ∘ ╲
╰≈≈≈≈≈╯`

const mascotAlert = `  ╭─╮
  │◉◉│ !
 ╭╯▽ ╰╮
╱ ∘ ° ╲
╰≈≈≈≈≈╯`

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotIdle
	if len(variant) > 0 {
		v = variant[0]
	}

	var art string
	var fg = theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.ArcadeYellow
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	default:
		art = mascotIdle
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}

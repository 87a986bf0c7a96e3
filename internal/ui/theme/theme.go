package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/chemiz/internal/catalog"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate

	ArcadeYellow = lipgloss.Color("#FACC15")
	ArcadeCyan   = lipgloss.Color("#22D3EE")
)

// Element family colours used by the periodic table and element cards.
var typeColors = map[catalog.ElementType]color.Color{
	catalog.TypeNonmetal:            lipgloss.Color("#4ADE80"),
	catalog.TypeNobleGas:            lipgloss.Color("#C084FC"),
	catalog.TypeMetal:               lipgloss.Color("#94A3B8"),
	catalog.TypeAlkaliMetal:         lipgloss.Color("#F87171"),
	catalog.TypeAlkalineEarthMetal:  lipgloss.Color("#FB923C"),
	catalog.TypeTransitionMetal:     lipgloss.Color("#FACC15"),
	catalog.TypeMetalloid:           lipgloss.Color("#2DD4BF"),
	catalog.TypeLanthanide:          lipgloss.Color("#F472B6"),
	catalog.TypeActinide:            lipgloss.Color("#E879F9"),
	catalog.TypePostTransitionMetal: lipgloss.Color("#60A5FA"),
}

// TypeColor returns the display colour of an element family.
func TypeColor(t catalog.ElementType) color.Color {
	if c, ok := typeColors[t]; ok {
		return c
	}
	return Text
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Notice = lipgloss.NewStyle().
		Foreground(Accent)
)

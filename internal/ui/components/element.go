package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/chemiz/internal/catalog"
	"github.com/abhisek/chemiz/internal/ui/theme"
)

// ElementTile renders the large symbol tile used on element cards.
func ElementTile(e catalog.Element) string {
	c := theme.TypeColor(e.Type)
	number := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprint(e.AtomicNumber))
	symbol := lipgloss.NewStyle().Foreground(c).Bold(true).Render(e.Symbol)
	mass := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%.3f", e.AtomicMass))

	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(c).
		Width(12).
		Align(lipgloss.Center).
		Render(number + "\n\n" + symbol + "\n\n" + mass)
}

// ElementFacts returns the labelled fact lines of an element. Empty
// fields are skipped.
func ElementFacts(e catalog.Element) []string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(18)
	value := lipgloss.NewStyle().Foreground(theme.Text)

	var lines []string
	add := func(k, v string) {
		if v == "" {
			return
		}
		lines = append(lines, label.Render(k)+value.Render(v))
	}

	add("Name", e.Name)
	add("Atomic number", fmt.Sprint(e.AtomicNumber))
	add("Atomic mass", fmt.Sprintf("%.3f", e.AtomicMass))
	lines = append(lines, label.Render("Type")+
		lipgloss.NewStyle().Foreground(theme.TypeColor(e.Type)).Render(e.Type.Label()))
	add("Class", e.Type.Class().String())
	add("Valency", joinOrNone(e.Valencies))
	add("Oxidation states", strings.Join(e.OxidationStates, ", "))
	add("Configuration", e.ElectronConfiguration)
	add("State", e.State)
	add("Appearance", e.Appearance)
	add("Oxide", e.OxideCharacter)
	return lines
}

// ElementCard renders the tile beside the fact list inside a card.
func ElementCard(e catalog.Element, width int) string {
	facts := strings.Join(ElementFacts(e), "\n")
	body := lipgloss.JoinHorizontal(lipgloss.Top, ElementTile(e), "   ", facts)

	cardWidth := lipgloss.Width(body) + 6
	if width > 0 && cardWidth > width {
		cardWidth = width
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(1, 2).
		Width(cardWidth).
		Render(body)
}

func joinOrNone(tokens []string) string {
	if len(tokens) == 0 {
		return "none"
	}
	return strings.Join(tokens, ", ")
}

// ElementBrief renders a two-line summary of an element for tight spaces.
func ElementBrief(e catalog.Element) string {
	head := lipgloss.NewStyle().Foreground(theme.TypeColor(e.Type)).Bold(true).
		Render(fmt.Sprintf("%d  %s  %s", e.AtomicNumber, e.Symbol, e.Name))
	head += theme.Hint.Render("  " + e.Type.Label())
	facts := lipgloss.NewStyle().Foreground(theme.Text).
		Render(fmt.Sprintf("Valency %s · %s", joinOrNone(e.Valencies), e.ElectronConfiguration))
	return head + "\n" + facts
}

package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/chemiz/internal/ui/theme"
	"github.com/abhisek/chemiz/internal/users"
)

// Block-letter title (same art as welcome/banner.go).
const arcadeTitleFull = `  ██████╗██╗  ██╗███████╗███╗   ███╗██╗███████╗
 ██╔════╝██║  ██║██╔════╝████╗ ████║██║╚══███╔╝
 ██║     ███████║█████╗  ██╔████╔██║██║  ███╔╝
 ██║     ██╔══██║██╔══╝  ██║╚██╔╝██║██║ ███╔╝
 ╚██████╗██║  ██║███████╗██║ ╚═╝ ██║██║███████╗
  ╚═════╝╚═╝  ╚═╝╚══════╝╚═╝     ╚═╝╚═╝╚══════╝`

const arcadeTitleCompact = "C · H · E · M · I · Z"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	art := arcadeTitleFull
	if compact {
		art = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar renders the account totals in a bordered box matching
// content width. A nil stats means nothing is being saved.
func renderStatsBar(stats *users.Stats, cw int, compact bool) string {
	correctStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	testsStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	accStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var line string
	switch {
	case stats == nil:
		line = dimStyle.Render("GUEST MODE · STATS NOT SAVED")
	case compact:
		line = fmt.Sprintf("%s %s %s",
			correctStyle.Render(fmt.Sprintf("★%d/%d", stats.CorrectAnswers, stats.TotalQuestions)),
			testsStyle.Render(fmt.Sprintf("✎%d", stats.TestsCompleted)),
			accuracyText(*stats, true, accStyle, dimStyle),
		)
	default:
		line = fmt.Sprintf("%s  %s  %s",
			correctStyle.Render(fmt.Sprintf("★ %d/%d CORRECT", stats.CorrectAnswers, stats.TotalQuestions)),
			testsStyle.Render(fmt.Sprintf("✎ %d TESTS", stats.TestsCompleted)),
			accuracyText(*stats, false, accStyle, dimStyle),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

func accuracyText(s users.Stats, compact bool, active, dim lipgloss.Style) string {
	pct, ok := s.Accuracy()
	if !ok {
		if compact {
			return dim.Render("◎–")
		}
		return dim.Render("◎ NO ANSWERS YET")
	}
	if compact {
		return active.Render(fmt.Sprintf("◎%.0f%%", pct))
	}
	return active.Render(fmt.Sprintf("◎ %.0f%% ACCURACY", pct))
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.ArcadeYellow).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ArcadeYellow).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	disabledBtn := normalBtn.Foreground(theme.TextDim)

	var buttons []string
	for i, label := range items {
		switch {
		case disabled[i]:
			buttons = append(buttons, disabledBtn.Render(label))
		case i == selected:
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		default:
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as simple text lines (no borders)
// for small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		var line string
		switch {
		case disabled[i]:
			line = lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("   " + label)
		case i == selected:
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + label + " ")
		default:
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderNotice renders a one-line warning, e.g. when accounts are offline.
func renderNotice(text string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ " + text)
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}

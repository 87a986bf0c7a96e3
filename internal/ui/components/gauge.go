package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/chemiz/internal/ui/theme"
)

// Gauge is a one-line accuracy meter: label, bar, then "correct/total pct".
type Gauge struct {
	Label   string
	Correct int
	Total   int
	Width   int
}

// Ratio returns Correct/Total clamped to [0,1]; 0 when Total is 0.
func (g Gauge) Ratio() float64 {
	if g.Total <= 0 {
		return 0
	}
	return min(max(float64(g.Correct)/float64(g.Total), 0), 1)
}

// gaugeColor grades a ratio the way the results screen does:
// green from 80%, yellow from 50%, red below.
func gaugeColor(r float64) color.Color {
	switch {
	case r >= 0.8:
		return theme.Success
	case r >= 0.5:
		return theme.ArcadeYellow
	default:
		return theme.Error
	}
}

func (g Gauge) View() string {
	r := g.Ratio()
	tail := fmt.Sprintf(" %d/%d %3.0f%%", g.Correct, g.Total, r*100)

	label := ""
	if g.Label != "" {
		label = lipgloss.NewStyle().Foreground(theme.Text).Render(g.Label) + " "
	}
	n := max(g.Width-lipgloss.Width(label)-len(tail), 4)
	on := int(r*float64(n) + 0.5)

	bar := lipgloss.NewStyle().Foreground(gaugeColor(r)).Render(strings.Repeat("█", on)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", n-on))
	return label + bar + lipgloss.NewStyle().Foreground(theme.TextDim).Render(tail)
}

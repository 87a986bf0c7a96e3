package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/chemiz/internal/ui/theme"
)

// Cabinet stacks screen sections, separated by a blank line, inside a
// double border that fills the screen.
type Cabinet struct {
	width, height int
	sections      []string
}

func NewCabinet(width, height int) *Cabinet {
	return &Cabinet{width: width, height: height}
}

// Inner is the width sections should be rendered at: the frame minus
// border and padding, kept between 20 and 60 columns.
func (c *Cabinet) Inner() int {
	return min(max(c.width-6, 20), 60)
}

// Add appends sections, skipping empty ones.
func (c *Cabinet) Add(sections ...string) *Cabinet {
	for _, s := range sections {
		if s != "" {
			c.sections = append(c.sections, s)
		}
	}
	return c
}

// Line appends text styled and centered across Inner.
func (c *Cabinet) Line(style lipgloss.Style, text string) *Cabinet {
	if text == "" {
		return c
	}
	return c.Add(style.Width(c.Inner()).Align(lipgloss.Center).Render(text))
}

func (c *Cabinet) View() string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(c.width-2).
		Height(c.height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(c.sections, "\n\n"))
}

// Card boxes content in a rounded border, width columns wide overall.
func Card(content string, width int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(width-2).
		Padding(1, 2).
		Align(lipgloss.Center).
		Render(content)
}

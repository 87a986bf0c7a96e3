// Package layout draws the chrome around every screen: a header with the
// screen title and player status, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/chemiz/internal/ui/theme"
)

// Smallest terminal the quiz renders in.
const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint is one "key action" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

var (
	rootHints   = []KeyHint{{"↑↓", "Navigate"}, {"Enter", "Select"}, {"Ctrl+C", "Quit"}}
	nestedHints = []KeyHint{{"Esc", "Back"}, {"Ctrl+C", "Quit"}}
)

// DefaultHints are shown for screens without their own hints.
func DefaultHints(nested bool) []KeyHint {
	if nested {
		return nestedHints
	}
	return rootHints
}

// Chrome is the frame state of one render.
type Chrome struct {
	Title string
	User  string // signed-in player, empty before login
	Score string // running quiz score, empty outside a quiz
	Hints []KeyHint
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// Render draws the frame at width x height and fills the space between
// header and footer with body, which is given the size left over.
func (c Chrome) Render(width, height int, body func(w, h int) string) string {
	if width < MinWidth || height < MinHeight {
		return tooSmall(width, height)
	}
	header := c.header(width)
	footer := c.footer(width)
	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := lipgloss.NewStyle().Width(width).Height(h).Render(body(width, h))
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (c Chrome) header(width int) string {
	inner := max(width-4, 0)
	title := lipgloss.NewStyle().Foreground(theme.Text).Render(c.Title)
	side := max((inner-lipgloss.Width(title))/2, 1)

	var status []string
	if c.User != "" {
		status = append(status, lipgloss.NewStyle().Foreground(theme.Secondary).Render("● "+c.User))
	}
	if c.Score != "" {
		status = append(status, lipgloss.NewStyle().Foreground(theme.Accent).Render("★ "+c.Score))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(side).Foreground(theme.Primary).Bold(true).Render("  Chemiz"),
		title,
		lipgloss.NewStyle().Width(side).Align(lipgloss.Right).Render(strings.Join(status, "   ")),
	)
	return bar.Width(width).Render(row)
}

func (c Chrome) footer(width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(c.Hints))
	for i, h := range c.Hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return bar.Width(width).Render("  " + strings.Join(parts, "   "))
}

func tooSmall(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(fmt.Sprintf(
			"Terminal too small!\n\nResize to at least %dx%d\n(currently %dx%d)",
			MinWidth, MinHeight, width, height)))
}

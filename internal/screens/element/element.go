// Package element shows the detail card of a single element.
package element

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/chemiz/internal/catalog"
	"github.com/abhisek/chemiz/internal/screen"
	"github.com/abhisek/chemiz/internal/ui/components"
	"github.com/abhisek/chemiz/internal/ui/layout"
)

// ElementScreen displays one element. Left and right step through the
// catalog by atomic number.
type ElementScreen struct {
	env     *screen.Env
	element catalog.Element
}

var _ screen.Screen = (*ElementScreen)(nil)
var _ screen.KeyHintProvider = (*ElementScreen)(nil)

// New creates a detail screen for e.
func New(env *screen.Env, e catalog.Element) *ElementScreen {
	return &ElementScreen{env: env, element: e}
}

func (s *ElementScreen) Init() tea.Cmd {
	return nil
}

func (s *ElementScreen) Title() string {
	return s.element.Name
}

func (s *ElementScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Previous/next"},
		{Key: "Esc", Description: "Back"},
	}
}

// Element returns the element on display.
func (s *ElementScreen) Element() catalog.Element {
	return s.element
}

func (s *ElementScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "left", "h":
		s.step(-1)
	case "right", "l":
		s.step(1)
	}
	return s, nil
}

func (s *ElementScreen) step(d int) {
	if e, ok := s.env.Catalog.ByNumber(s.element.AtomicNumber + d); ok {
		s.element = e
	}
}

func (s *ElementScreen) View(width, height int) string {
	card := components.ElementCard(s.element, width-4)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

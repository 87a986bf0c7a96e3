package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/chemiz/internal/ui/theme"
)

type MenuItem struct {
	Label    string
	Hint     string // shown dimmed beside the item while it is selected
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of actions. The cursor skips disabled items
// and wraps at either end.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu starts the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// move steps the cursor by dir (±1) to the next enabled item. It stays
// put when every item is disabled.
func (m *Menu) move(dir int) {
	n := len(m.Items)
	for step := 1; step <= n; step++ {
		i := ((m.Selected+dir*step)%n + n) % n
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	k, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}
	switch k.String() {
	case "up", "k":
		m.move(-1)
	case "down", "j", "tab":
		m.move(1)
	case "enter":
		if it, ok := m.current(); ok && it.Action != nil {
			return m, it.Action()
		}
	}
	return m, nil
}

func (m Menu) current() (MenuItem, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) || m.Items[m.Selected].Disabled {
		return MenuItem{}, false
	}
	return m.Items[m.Selected], true
}

func (m Menu) Labels() []string {
	out := make([]string, 0, len(m.Items))
	for _, it := range m.Items {
		out = append(out, it.Label)
	}
	return out
}

// DisabledSet indexes the disabled items.
func (m Menu) DisabledSet() map[int]bool {
	out := map[int]bool{}
	for i, it := range m.Items {
		if it.Disabled {
			out[i] = true
		}
	}
	return out
}

// View renders the menu as a plain list, one item per line.
func (m Menu) View() string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	lines := make([]string, len(m.Items))
	for i, it := range m.Items {
		switch {
		case it.Disabled:
			lines[i] = dim.Render("    " + it.Label)
		case i == m.Selected:
			lines[i] = theme.Selected.Render("  ▸ " + it.Label)
			if it.Hint != "" {
				lines[i] += "  " + theme.Hint.Render(it.Hint)
			}
		default:
			lines[i] = theme.Unselected.Render("    " + it.Label)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

// Package table renders the periodic table as a navigable grid.
package table

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/chemiz/internal/catalog"
	"github.com/abhisek/chemiz/internal/router"
	"github.com/abhisek/chemiz/internal/screen"
	"github.com/abhisek/chemiz/internal/screens/element"
	"github.com/abhisek/chemiz/internal/ui/layout"
	"github.com/abhisek/chemiz/internal/ui/theme"
)

// cellWidth is the rendered width of one grid cell.
const cellWidth = 4

// TableScreen shows every catalog element at its periodic-table position.
type TableScreen struct {
	env  *screen.Env
	grid [catalog.GridRows][catalog.GridColumns]*catalog.Element
	row  int
	col  int
}

var _ screen.Screen = (*TableScreen)(nil)
var _ screen.KeyHintProvider = (*TableScreen)(nil)

// New builds the grid from the catalog. The cursor starts on hydrogen.
func New(env *screen.Env) *TableScreen {
	s := &TableScreen{env: env}
	for _, e := range env.Catalog.All() {
		row, col, ok := catalog.Position(e.AtomicNumber)
		if !ok {
			continue
		}
		s.grid[row][col] = &e
	}
	s.row, s.col = s.first()
	return s
}

func (s *TableScreen) first() (int, int) {
	for r := range s.grid {
		for c := range s.grid[r] {
			if s.grid[r][c] != nil {
				return r, c
			}
		}
	}
	return 0, 0
}

func (s *TableScreen) Init() tea.Cmd {
	return nil
}

func (s *TableScreen) Title() string {
	return "Periodic Table"
}

func (s *TableScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←↑↓→", Description: "Move"},
		{Key: "Enter", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

// Selected returns the element under the cursor.
func (s *TableScreen) Selected() (catalog.Element, bool) {
	e := s.grid[s.row][s.col]
	if e == nil {
		return catalog.Element{}, false
	}
	return *e, true
}

func (s *TableScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		s.move(-1, 0)
	case "down", "j":
		s.move(1, 0)
	case "left", "h":
		s.move(0, -1)
	case "right", "l":
		s.move(0, 1)
	case "enter":
		if e, ok := s.Selected(); ok {
			detail := element.New(s.env, e)
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: detail} }
		}
	}
	return s, nil
}

// move steps the cursor over empty cells until it lands on an element.
// The cursor stays put when there is no element in that direction.
func (s *TableScreen) move(dr, dc int) {
	r, c := s.row+dr, s.col+dc
	for r >= 0 && r < catalog.GridRows && c >= 0 && c < catalog.GridColumns {
		if s.grid[r][c] != nil {
			s.row, s.col = r, c
			return
		}
		r, c = r+dr, c+dc
	}
}

func (s *TableScreen) View(width, height int) string {
	var b strings.Builder

	for r := range s.grid {
		if r == catalog.LanthanideRow-1 {
			b.WriteString("\n")
			continue
		}
		for c := range s.grid[r] {
			b.WriteString(s.renderCell(r, c))
		}
		b.WriteString("\n")
	}

	grid := b.String()
	parts := []string{grid, s.renderInfo(), renderLegend()}
	content := strings.Join(parts, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *TableScreen) renderCell(r, c int) string {
	e := s.grid[r][c]
	if e == nil {
		return strings.Repeat(" ", cellWidth)
	}
	style := lipgloss.NewStyle().Width(cellWidth).Foreground(theme.TypeColor(e.Type))
	if r == s.row && c == s.col {
		style = style.Reverse(true).Bold(true)
	}
	return style.Render(e.Symbol)
}

func (s *TableScreen) renderInfo() string {
	e, ok := s.Selected()
	if !ok {
		return ""
	}
	name := lipgloss.NewStyle().Foreground(theme.TypeColor(e.Type)).Bold(true).
		Render(fmt.Sprintf("%d  %s  %s", e.AtomicNumber, e.Symbol, e.Name))
	detail := theme.Hint.Render(fmt.Sprintf("  %s · %.3f u", e.Type.Label(), e.AtomicMass))
	return name + detail
}

func renderLegend() string {
	var items []string
	for _, t := range catalog.AllTypes() {
		items = append(items, lipgloss.NewStyle().Foreground(theme.TypeColor(t)).Render("■ "+t.Label()))
	}
	var lines []string
	for i := 0; i < len(items); i += 4 {
		end := min(i+4, len(items))
		lines = append(lines, strings.Join(items[i:end], "   "))
	}
	return strings.Join(lines, "\n")
}

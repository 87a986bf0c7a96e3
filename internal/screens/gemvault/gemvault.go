// Package gemvault lists the gems an account has earned, one tab per
// gem type.
package gemvault

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/chemiz/internal/gems"
	"github.com/abhisek/chemiz/internal/screen"
	"github.com/abhisek/chemiz/internal/store"
	"github.com/abhisek/chemiz/internal/ui/layout"
	"github.com/abhisek/chemiz/internal/ui/theme"
	"github.com/abhisek/chemiz/internal/users"
)

type gemsLoadedMsg struct {
	Records []store.GemEventRecord
	Err     error
}

// GemVaultScreen displays one account's gem collection.
type GemVaultScreen struct {
	events       store.EventRepo
	identity     users.Identity
	all          []store.GemEventRecord
	selectedType int // index into gems.AllGemTypes
	scrollOffset int
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*GemVaultScreen)(nil)
var _ screen.KeyHintProvider = (*GemVaultScreen)(nil)

// New creates a gem vault for id.
func New(env *screen.Env, id users.Identity) *GemVaultScreen {
	return &GemVaultScreen{events: env.Events, identity: id}
}

func (s *GemVaultScreen) Init() tea.Cmd {
	events, username := s.events, s.identity.Username
	return func() tea.Msg {
		records, err := events.QueryGemEvents(context.Background(), store.QueryOpts{Username: username})
		return gemsLoadedMsg{Records: records, Err: err}
	}
}

func (s *GemVaultScreen) Title() string {
	return "Gem Vault"
}

func (s *GemVaultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch type"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *GemVaultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case gemsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.all = msg.Records
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		n := len(gems.AllGemTypes())
		switch msg.String() {
		case "tab":
			s.selectedType = (s.selectedType + 1) % n
			s.scrollOffset = 0
		case "shift+tab":
			s.selectedType = (s.selectedType - 1 + n) % n
			s.scrollOffset = 0
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case "down", "j":
			if s.scrollOffset < len(s.filtered())-1 {
				s.scrollOffset++
			}
		}
	}
	return s, nil
}

func (s *GemVaultScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading gems...")
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(fmt.Sprintf("\nTotal: %d gems\n", len(s.all))))
	b.WriteString("\n")

	var tabs []string
	for i, t := range gems.AllGemTypes() {
		label := fmt.Sprintf("%s %s (%d)", t.Icon(), t.DisplayName(), s.countByType(t))
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if i == s.selectedType {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		tabs = append(tabs, style.Render(label))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "     ")))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	filtered := s.filtered()
	if len(filtered) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No gems of this type yet"))
		return b.String()
	}

	start := s.scrollOffset
	end := min(start+max(height-10, 3), len(filtered))
	for _, rec := range filtered[start:end] {
		rarity := gems.Rarity(rec.Rarity)
		line := fmt.Sprintf("  %-10s %-30s %s",
			rarity.DisplayName(), rec.Reason, rec.Timestamp.Local().Format("Jan 02, 2006"))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(rarityColor(rarity)).Render(line)))
		b.WriteString("\n")
	}

	if end < len(filtered) {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d more", len(filtered)-end)))
	}
	return b.String()
}

func (s *GemVaultScreen) filtered() []store.GemEventRecord {
	selected := string(gems.AllGemTypes()[s.selectedType])
	var out []store.GemEventRecord
	for _, g := range s.all {
		if g.GemType == selected {
			out = append(out, g)
		}
	}
	return out
}

func (s *GemVaultScreen) countByType(t gems.GemType) int {
	n := 0
	for _, g := range s.all {
		if g.GemType == string(t) {
			n++
		}
	}
	return n
}

func rarityColor(r gems.Rarity) color.Color {
	switch r {
	case gems.RarityRare:
		return theme.Secondary
	case gems.RarityEpic:
		return theme.Primary
	case gems.RarityLegendary:
		return theme.Accent
	default:
		return theme.Text
	}
}

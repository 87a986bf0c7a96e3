package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/chemiz/internal/screen"
	"github.com/abhisek/chemiz/internal/store"
	"github.com/abhisek/chemiz/internal/ui/layout"
	"github.com/abhisek/chemiz/internal/ui/theme"
	"github.com/abhisek/chemiz/internal/users"
)

// pageSize caps how many answers are loaded.
const pageSize = 100

type historyLoadedMsg struct {
	Answers []store.AnswerEventRecord
	Err     error
}

// HistoryScreen lists the player's recent answers.
type HistoryScreen struct {
	env      *screen.Env
	identity users.Identity
	answers  []store.AnswerEventRecord
	selected int
	offset   int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen for id.
func New(env *screen.Env, id users.Identity) *HistoryScreen {
	return &HistoryScreen{
		env:      env,
		identity: id,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	events, username := s.env.Events, s.identity.Username
	return func() tea.Msg {
		answers, err := events.QueryAnswers(context.Background(), store.QueryOpts{
			Username: username,
			Limit:    pageSize,
		})
		return historyLoadedMsg{Answers: answers, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.answers = msg.Answers
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.answers)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.answers) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No answers yet. Take a quiz!")
	}

	// Keep the selection on screen; each row is one line plus its details.
	visible := max(height-2, 1)
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+visible {
		s.offset = s.selected - visible + 1
	}

	var b strings.Builder
	b.WriteString("\n")

	lines := 0
	for i := s.offset; i < len(s.answers) && lines < visible; i++ {
		a := s.answers[i]
		mark := lipgloss.NewStyle().Foreground(theme.Success).Render("✔")
		if !a.Correct {
			mark = lipgloss.NewStyle().Foreground(theme.Error).Render("✘")
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %-6s  %-2s  %s",
			prefix, a.Timestamp.Local().Format("Jan 02 15:04"), a.Level, a.Symbol, mark)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
		lines++

		if s.expanded[i] {
			detail := fmt.Sprintf("%s\nyou: %s   answer: %s", a.Prompt, a.Choice, a.CorrectAnswer)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(detail)))
			b.WriteString("\n")
			lines += 2
		}
	}

	return b.String()
}

// Package profile shows an account's totals, its weakest elements and
// optional study advice from the tutor.
package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/chemiz/internal/gems"
	"github.com/abhisek/chemiz/internal/screen"
	"github.com/abhisek/chemiz/internal/store"
	"github.com/abhisek/chemiz/internal/tutor"
	"github.com/abhisek/chemiz/internal/ui/components"
	"github.com/abhisek/chemiz/internal/ui/layout"
	"github.com/abhisek/chemiz/internal/ui/theme"
	"github.com/abhisek/chemiz/internal/users"
)

// weakestShown is how many per-element rows the profile lists.
const weakestShown = 8

const adviceTimeout = 60 * time.Second

type profileLoadedMsg struct {
	User     *users.User
	Elements []store.AnswerSummary
	Gems     map[string]int
	Err      error
}

type adviceMsg struct {
	Advice *tutor.Advice
	Err    error
}

// ProfileScreen displays the signed-in account.
type ProfileScreen struct {
	env      *screen.Env
	identity users.Identity

	user     *users.User
	elements []store.AnswerSummary
	gems     map[string]int
	loaded   bool
	errMsg   string

	advice    *tutor.Advice
	advising  bool
	adviceErr string
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)
var _ screen.StatusProvider = (*ProfileScreen)(nil)

// New creates a profile screen for id.
func New(env *screen.Env, id users.Identity) *ProfileScreen {
	return &ProfileScreen{env: env, identity: id}
}

func (s *ProfileScreen) Init() tea.Cmd {
	repo, events, username := s.env.Users, s.env.Events, s.identity.Username
	return func() tea.Msg {
		ctx := context.Background()
		u, err := repo.Get(ctx, username)
		if err != nil {
			return profileLoadedMsg{Err: err}
		}
		msg := profileLoadedMsg{User: u}
		if events != nil {
			// The per-element breakdown is optional; a failure leaves it empty.
			msg.Elements, _ = events.AnswerSummaryByUser(ctx, username)
			msg.Gems, _, _ = events.GemCounts(ctx, username)
		}
		return msg
	}
}

func (s *ProfileScreen) Title() string {
	return "Profile"
}

// Status shows the account in the header.
func (s *ProfileScreen) Status() (string, string) {
	return s.identity.Username, ""
}

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	if s.env.TutorEnabled() {
		hints = append([]layout.KeyHint{{Key: "A", Description: "Study advice"}}, hints...)
	}
	return hints
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.env.Log().Warn("load profile", "username", s.identity.Username, "error", msg.Err)
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.user = msg.User
		s.elements = msg.Elements
		s.gems = msg.Gems
		return s, nil

	case adviceMsg:
		s.advising = false
		if msg.Err != nil {
			s.env.Log().Warn("study advice failed", "username", s.identity.Username, "error", msg.Err)
			s.adviceErr = "The tutor is unavailable right now."
			return s, nil
		}
		s.advice = msg.Advice
		return s, nil

	case screen.RefreshMsg:
		return s, s.Init()

	case tea.KeyPressMsg:
		if msg.String() == "a" {
			return s, s.requestAdvice()
		}
	}
	return s, nil
}

func (s *ProfileScreen) requestAdvice() tea.Cmd {
	if !s.env.TutorEnabled() || s.user == nil || s.advising {
		return nil
	}
	s.advising = true
	s.adviceErr = ""
	svc := s.env.Tutor
	in := tutor.AdviceInput{Username: s.user.Username, Account: s.user.Stats, Elements: s.elements}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), adviceTimeout)
		defer cancel()
		adv, err := svc.Advise(ctx, in)
		return adviceMsg{Advice: adv, Err: err}
	}
}

func (s *ProfileScreen) View(width, height int) string {
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	switch {
	case s.errMsg != "":
		return center(lipgloss.NewStyle().Foreground(theme.Error),
			fmt.Sprintf("\n\nCould not load your profile: %s", s.errMsg))
	case !s.loaded:
		return center(lipgloss.NewStyle().Foreground(theme.TextDim), "\n\n  Loading profile...")
	}

	u := s.user
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(theme.Title, u.Username))
	b.WriteString("\n")

	since := "member since " + u.CreatedAt.Format("Jan 02, 2006")
	if u.LastLoginAt != nil {
		since += " · last login " + u.LastLoginAt.Format("Jan 02, 2006 15:04")
	}
	b.WriteString(center(theme.Subtitle, string(u.Role)+" · "+since))
	b.WriteString("\n\n")

	b.WriteString(center(theme.Body, fmt.Sprintf("Tests completed: %d    Correct: %d of %d",
		u.Stats.TestsCompleted, u.Stats.CorrectAnswers, u.Stats.TotalQuestions)))
	b.WriteString("\n")
	if u.Stats.TotalQuestions > 0 {
		bar := components.Gauge{Label: "Accuracy", Correct: u.Stats.CorrectAnswers, Total: u.Stats.TotalQuestions, Width: min(width-8, 50)}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}
	if line := s.gemLine(); line != "" {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.ArcadeYellow), line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(s.renderWeakest(width))
	b.WriteString(s.renderAdvice(width))
	return b.String()
}

// gemLine lists earned gems per type, or "" when there are none.
func (s *ProfileScreen) gemLine() string {
	var parts []string
	for _, t := range gems.AllGemTypes() {
		if n := s.gems[string(t)]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %s ×%d", t.Icon(), t.DisplayName(), n))
		}
	}
	return strings.Join(parts, "   ")
}

func (s *ProfileScreen) renderWeakest(width int) string {
	if len(s.elements) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("No answers recorded yet. Take a quiz!")) + "\n"
	}

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Elements to practise")))
	b.WriteString("\n")

	for _, e := range s.elements[:min(len(s.elements), weakestShown)] {
		name := e.Symbol
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if el, ok := s.env.Catalog.Get(e.Symbol); ok {
			name = fmt.Sprintf("%-2s %s", el.Symbol, el.Name)
			style = style.Foreground(theme.TypeColor(el.Type))
		}
		line := fmt.Sprintf("%-18s %d/%d", name, e.Correct, e.Attempts)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *ProfileScreen) renderAdvice(width int) string {
	boxWidth := min(width-8, 70)
	var text string
	switch {
	case s.advising:
		text = theme.Hint.Render("The tutor is looking at your answers...")
	case s.adviceErr != "":
		text = theme.Notice.Render(s.adviceErr)
	case s.advice != nil:
		var b strings.Builder
		b.WriteString(s.advice.Summary)
		if len(s.advice.Focus) > 0 {
			b.WriteString("\n\nFocus on: " + strings.Join(s.advice.Focus, ", "))
		}
		for _, tip := range s.advice.Tips {
			b.WriteString("\n• " + tip)
		}
		text = b.String()
	default:
		return ""
	}
	return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.Card(text, boxWidth))
}

package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/chemiz/internal/stats"
	"github.com/abhisek/chemiz/internal/ui/components"
	"github.com/abhisek/chemiz/internal/ui/theme"
)

// fullCardHeight is the content height from which feedback shows the
// full element card instead of the brief.
const fullCardHeight = 34

func (s *PlayScreen) View(width, height int) string {
	var body string
	switch s.phase {
	case phaseQuestion:
		body = s.renderQuestion(width)
	case phaseFeedback:
		body = s.renderFeedback(width, height)
	default:
		body = s.renderSetup(width)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, body)
}

// renderSetup renders the level and filter pickers.
func (s *PlayScreen) renderSetup(width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("New quiz"))
	b.WriteString("\n\n")

	level := s.level()
	values := []struct {
		label, value, hint string
	}{
		{"Level", string(level), level.Describe()},
		{"Class", classOptions[s.classIdx].String(), ""},
		{"Elements", rangeOptions[s.rangeIdx].Label, ""},
	}

	labelStyle := lipgloss.NewStyle().Width(12).Foreground(theme.TextDim)
	var rows []string
	for i, v := range values {
		value := "◂ " + v.value + " ▸"
		line := labelStyle.Render(v.label)
		if i == s.setupRow {
			line += theme.Selected.Render(value)
		} else {
			line += theme.Unselected.Render(value)
		}
		if v.hint != "" {
			line += "  " + theme.Hint.Render(v.hint)
		}
		rows = append(rows, line)
	}

	count := len(s.env.Catalog.Filter(s.filter()))
	rows = append(rows, "", theme.Hint.Render(fmt.Sprintf("%d element(s) match", count)))

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.Card(strings.Join(rows, "\n"), min(width-4, 64))))
	b.WriteString("\n\n")

	if s.errMsg != "" {
		b.WriteString(theme.Incorrect.Width(width).Align(lipgloss.Center).Render(s.errMsg))
		b.WriteString("\n\n")
	}
	b.WriteString(s.renderScore(width))
	return b.String()
}

// renderQuestion renders the active question.
func (s *PlayScreen) renderQuestion(width int) string {
	var b strings.Builder

	info := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("  %s · %s", s.level(), s.filter()))
	b.WriteString(info)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))
	b.WriteString("\n")

	if s.busy {
		b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).Render("Saving..."))
		b.WriteString("\n")
	}
	b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).
		Render("Select (1-4 or A-D) or use arrows + Enter"))
	b.WriteString("\n\n")
	b.WriteString(s.renderScore(width))
	return b.String()
}

// renderFeedback renders the verdict, the element card and the tutor note.
// Tall terminals get the full element card.
func (s *PlayScreen) renderFeedback(width, height int) string {
	out := s.outcome
	if out == nil {
		return ""
	}

	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	b.WriteString("\n")
	if out.Correct {
		b.WriteString(center(theme.Correct, "Correct!"))
		if out.Gem != nil {
			b.WriteString("\n")
			b.WriteString(center(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true), out.Gem.Label()))
		}
	} else {
		b.WriteString(center(theme.Incorrect, "Not quite"))
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
			fmt.Sprintf("You chose %s. Correct answer: %s", out.Choice, out.Answer)))
		if d := out.Diagnosis; d != nil && d.Classified() {
			b.WriteString("\n")
			b.WriteString(center(theme.Hint, d.Detail))
		}
	}
	b.WriteString("\n\n")

	if out.Question != nil {
		if el, ok := s.env.Catalog.Get(out.Question.Symbol); ok {
			card := components.ElementBrief(el)
			if height >= fullCardHeight {
				card = components.ElementCard(el, width-4)
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
			b.WriteString("\n")
		}
	}

	if note := s.renderTutor(width); note != "" {
		b.WriteString(note)
		b.WriteString("\n")
	}

	if out.SaveErr != nil {
		b.WriteString(center(theme.Notice, "Your answer counts for this session but could not be saved to your account."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.renderScore(width))
	return b.String()
}

func (s *PlayScreen) renderTutor(width int) string {
	boxWidth := min(width-8, 70)
	style := lipgloss.NewStyle().Width(boxWidth).Foreground(theme.Text)

	var text string
	switch {
	case s.explaining:
		text = theme.Hint.Render("The tutor is thinking...")
	case s.explainErr != "":
		text = theme.Notice.Render(s.explainErr)
	case s.explanation != nil:
		text = s.explanation.Explanation
		if s.explanation.Mnemonic != "" {
			text += "\n" + theme.Hint.Render("Tip: "+s.explanation.Mnemonic)
		}
	default:
		return ""
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(text))
}

// renderScore renders the session score and, for saved accounts, the
// account totals.
func (s *PlayScreen) renderScore(width int) string {
	parts := []string{
		lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
			Render("Session " + s.sess.Stats().String()),
	}
	if s.account != nil {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.ArcadeCyan).
			Render("Account "+formatAccount(s.account.CorrectAnswers, s.account.TotalQuestions, s.account.TestsCompleted)))
	} else if !s.sess.Persisting() {
		parts = append(parts, theme.Hint.Render("guest mode: nothing is saved"))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(parts, "    "))
}

func formatAccount(correct, total, tests int) string {
	return fmt.Sprintf("%s · %d tests", stats.SessionStats{Score: correct, Total: total}, tests)
}

// Package play is the quiz screen: pick a level and a filter, answer
// multiple-choice questions and see feedback after each one.
package play

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/chemiz/internal/catalog"
	"github.com/abhisek/chemiz/internal/quiz"
	"github.com/abhisek/chemiz/internal/router"
	"github.com/abhisek/chemiz/internal/screen"
	"github.com/abhisek/chemiz/internal/screens/summary"
	"github.com/abhisek/chemiz/internal/session"
	"github.com/abhisek/chemiz/internal/tutor"
	"github.com/abhisek/chemiz/internal/ui/components"
	"github.com/abhisek/chemiz/internal/ui/layout"
	"github.com/abhisek/chemiz/internal/users"
)

// explainTimeout bounds a single tutor request.
const explainTimeout = 45 * time.Second

type phase int

const (
	phaseSetup phase = iota
	phaseQuestion
	phaseFeedback
)

type rangeOption struct {
	Label string
	Min   int
	Max   int
}

var (
	classOptions = []catalog.Class{catalog.ClassAny, catalog.ClassMetal, catalog.ClassNonmetal}
	rangeOptions = []rangeOption{
		{Label: "all elements"},
		{Label: "1-20", Min: 1, Max: 20},
		{Label: "1-36", Min: 1, Max: 36},
		{Label: "1-54", Min: 1, Max: 54},
		{Label: "1-86", Min: 1, Max: 86},
	}
)

// Setup rows.
const (
	rowLevel = iota
	rowClass
	rowRange
	setupRows
)

// PlayScreen runs one quiz session.
type PlayScreen struct {
	env   *screen.Env
	sess  *session.Session
	phase phase

	setupRow int
	levelIdx int
	classIdx int
	rangeIdx int

	choice  components.MultiChoice
	busy    bool
	outcome *session.Outcome
	account *users.Stats

	explanation *tutor.Explanation
	explaining  bool
	explainErr  string

	errMsg string
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.StatusProvider = (*PlayScreen)(nil)
var _ screen.EscCapturer = (*PlayScreen)(nil)

// New starts a quiz session for id.
func New(env *screen.Env, id users.Identity) *PlayScreen {
	return &PlayScreen{
		env: env,
		sess: session.New(session.Options{
			Identity: id,
			Users:    env.Users,
			Catalog:  env.Catalog,
			Rand:     env.Rand,
			Events:   env.Events,
			Logger:   env.Log(),
		}),
	}
}

func (s *PlayScreen) Init() tea.Cmd {
	return nil
}

func (s *PlayScreen) Title() string {
	return "Quiz"
}

// CapturesEsc lets the screen show the summary before leaving.
func (s *PlayScreen) CapturesEsc() bool {
	return true
}

// Status shows the player and the session score in the header.
func (s *PlayScreen) Status() (string, string) {
	return s.sess.Identity.Username, s.sess.Stats().String()
}

// Session returns the quiz session driven by the screen.
func (s *PlayScreen) Session() *session.Session {
	return s.sess
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseQuestion:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓ Enter", Description: "Pick"},
			{Key: "Tab", Description: "Skip"},
			{Key: "Esc", Description: "Finish"},
		}
	case phaseFeedback:
		hints := []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "L", Description: "Level"},
			{Key: "R", Description: "Reset score"},
		}
		if s.env.TutorEnabled() && s.explanation == nil && !s.explaining {
			hints = append(hints, layout.KeyHint{Key: "T", Description: "Explain"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Finish"})
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Option"},
			{Key: "←→", Description: "Change"},
			{Key: "Enter", Description: "Start"},
			{Key: "R", Description: "Reset score"},
			{Key: "Esc", Description: "Finish"},
		}
	}
}

func (s *PlayScreen) level() quiz.Level {
	return quiz.Levels()[s.levelIdx]
}

func (s *PlayScreen) filter() catalog.Filter {
	r := rangeOptions[s.rangeIdx]
	return catalog.Filter{MinNumber: r.Min, MaxNumber: r.Max, Class: classOptions[s.classIdx]}
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case gradedMsg:
		return s.handleGraded(msg)
	case explainedMsg:
		return s.handleExplained(msg)
	case tea.KeyPressMsg:
		if s.busy {
			return s, nil
		}
		if msg.String() == "esc" {
			return s, s.finish()
		}
		switch s.phase {
		case phaseSetup:
			return s.handleSetupKey(msg)
		case phaseQuestion:
			return s.handleQuestionKey(msg)
		case phaseFeedback:
			return s.handleFeedbackKey(msg)
		}
	}
	return s, nil
}

func (s *PlayScreen) handleSetupKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		s.setupRow = (s.setupRow + setupRows - 1) % setupRows
	case "down", "j", "tab":
		s.setupRow = (s.setupRow + 1) % setupRows
	case "left", "h":
		s.cycle(-1)
	case "right", "l", "space":
		s.cycle(1)
	case "r":
		s.resetStats()
	case "enter":
		s.ask()
	}
	return s, nil
}

func (s *PlayScreen) cycle(d int) {
	wrap := func(i, n int) int { return (i + d + n) % n }
	switch s.setupRow {
	case rowLevel:
		s.levelIdx = wrap(s.levelIdx, len(quiz.Levels()))
	case rowClass:
		s.classIdx = wrap(s.classIdx, len(classOptions))
	case rowRange:
		s.rangeIdx = wrap(s.rangeIdx, len(rangeOptions))
	}
	s.errMsg = ""
}

// ask poses a new question with the current level and filter. A pool
// too small for the level sends the player back to setup.
func (s *PlayScreen) ask() {
	s.outcome = nil
	s.explanation = nil
	s.explaining = false
	s.explainErr = ""
	s.errMsg = ""

	q, err := s.sess.NewQuestion(s.level(), s.filter())
	if err != nil {
		s.phase = phaseSetup
		var ipe *quiz.InsufficientPoolError
		if errors.As(err, &ipe) {
			s.errMsg = fmt.Sprintf("Only %d usable element(s) for %s questions with this filter. Widen the filter.",
				ipe.Available, ipe.Level)
		} else {
			s.errMsg = err.Error()
		}
		return
	}

	s.choice = components.NewMultiChoice(q.Prompt, q.Options, q.Correct)
	s.phase = phaseQuestion
}

func (s *PlayScreen) handleQuestionKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "tab" {
		s.ask()
		return s, nil
	}

	s.choice, _ = s.choice.Update(msg)
	chosen, ok := s.choice.Chosen()
	if !ok {
		return s, nil
	}

	s.busy = true
	sess := s.sess
	return s, func() tea.Msg {
		ctx := context.Background()
		out, err := sess.Submit(ctx, chosen)
		if err != nil {
			return gradedMsg{Err: err}
		}
		msg := gradedMsg{Outcome: out}
		if sess.Persisting() {
			if acc, err := sess.Account(ctx); err == nil {
				msg.Account = acc
			}
		}
		return msg
	}
}

func (s *PlayScreen) handleGraded(msg gradedMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.Err != nil {
		s.phase = phaseSetup
		s.errMsg = "That question is no longer active. Start a new one."
		return s, nil
	}

	out := msg.Outcome
	s.outcome = &out
	s.account = msg.Account
	s.phase = phaseFeedback

	if !out.Correct && s.env.TutorEnabled() {
		return s, s.explain()
	}
	return s, nil
}

func (s *PlayScreen) handleFeedbackKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter", "n", "space":
		s.sess.Acknowledge()
		s.ask()
	case "l":
		s.sess.Acknowledge()
		s.outcome = nil
		s.phase = phaseSetup
	case "r":
		s.resetStats()
	case "t":
		if s.explanation == nil && !s.explaining {
			return s, s.explain()
		}
	}
	return s, nil
}

func (s *PlayScreen) resetStats() {
	s.sess.ResetStats()
	s.outcome = nil
	s.explanation = nil
	s.explaining = false
	s.phase = phaseSetup
}

// explain asks the tutor about the graded question in the background.
func (s *PlayScreen) explain() tea.Cmd {
	if !s.env.TutorEnabled() || s.outcome == nil || s.outcome.Question == nil {
		return nil
	}
	q := *s.outcome.Question
	el, ok := s.env.Catalog.Get(q.Symbol)
	if !ok {
		return nil
	}

	s.explaining = true
	s.explainErr = ""
	svc := s.env.Tutor
	in := tutor.ExplainInput{Element: el, Question: q, Choice: s.outcome.Choice}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), explainTimeout)
		defer cancel()
		exp, err := svc.Explain(ctx, in)
		return explainedMsg{Symbol: in.Element.Symbol, Explanation: exp, Err: err}
	}
}

func (s *PlayScreen) handleExplained(msg explainedMsg) (screen.Screen, tea.Cmd) {
	// Stale answers for a question no longer on display are dropped.
	if s.phase != phaseFeedback || s.outcome == nil || s.outcome.Question.Symbol != msg.Symbol {
		return s, nil
	}
	s.explaining = false
	if msg.Err != nil {
		s.env.Log().Warn("tutor explanation failed", "symbol", msg.Symbol, "error", msg.Err)
		s.explainErr = "The tutor is unavailable right now."
		return s, nil
	}
	s.explanation = msg.Explanation
	return s, nil
}

// finish leaves the quiz, through the summary when anything was answered.
func (s *PlayScreen) finish() tea.Cmd {
	s.sess.Acknowledge()
	if s.sess.Stats().Total == 0 {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	sess := s.sess
	return func() tea.Msg {
		sess.Finish(context.Background())
		return router.ReplaceScreenMsg{Screen: summary.New(sess.Summary())}
	}
}

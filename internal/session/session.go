// Package session ties an identity, a quiz round and its statistics
// together. A Session replaces the ambient UI state the quiz screens
// would otherwise share; every screen action goes through it.
package session

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/chemiz/internal/catalog"
	"github.com/abhisek/chemiz/internal/diagnosis"
	"github.com/abhisek/chemiz/internal/gems"
	"github.com/abhisek/chemiz/internal/quiz"
	"github.com/abhisek/chemiz/internal/stats"
	"github.com/abhisek/chemiz/internal/store"
	"github.com/abhisek/chemiz/internal/users"
)

// Options configures a new Session.
type Options struct {
	// Identity is who the session acts as. The zero value means guest.
	Identity users.Identity

	// Users is the repository account statistics are written to. Nil
	// disables persistence.
	Users users.Repository

	// Catalog supplies question subjects.
	Catalog *catalog.Catalog

	// Rand seeds question generation. Nil picks a random seed.
	Rand *rand.Rand

	// Events receives one answer event per graded answer. Optional.
	Events store.EventRepo

	Logger *slog.Logger
}

// Session is one quiz session. It is not safe for concurrent use; the
// host serializes user actions.
type Session struct {
	ID       string
	Identity users.Identity

	round     quiz.Round
	agg       *stats.Aggregator
	gen       *quiz.Generator
	events    store.EventRepo
	logger    *slog.Logger
	progress  *Progress
	gems      *gems.Service
	streak    gems.Streak
	finished  bool
	posedAt   time.Time
	startedAt time.Time
	now       func() time.Time
}

// Outcome is what the host shows after a graded answer.
type Outcome struct {
	quiz.Result
	Stats stats.SessionStats

	// ResponseTime is the time between posing and grading.
	ResponseTime time.Duration

	// Gem is the streak gem this answer earned, if any.
	Gem *gems.GemAward

	// Diagnosis classifies a wrong answer. Nil when correct.
	Diagnosis *diagnosis.Diagnosis

	// SaveErr is set when the answer was counted for this session but the
	// account record could not be updated.
	SaveErr error
}

// New starts a session.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	id := opts.Identity
	if id.Username == "" {
		id = users.Guest()
	}

	sessionID := uuid.New().String()
	logger = logger.With("session", sessionID, "username", id.Username)

	s := &Session{
		ID:       sessionID,
		Identity: id,
		agg:      stats.NewAggregator(opts.Users, id, logger),
		gen:      quiz.NewGenerator(opts.Catalog, opts.Rand),
		logger:   logger,
		progress: newProgress(),
		now:      time.Now,
	}
	// Only persisted identities write answers and gems to the event log.
	if s.agg.Persisting() {
		s.events = opts.Events
	}
	s.gems = gems.NewService(s.events, id.Username, sessionID, logger)

	s.startedAt = s.now()
	logger.Info("session started", "role", id.Role, "persisted", s.agg.Persisting())
	return s
}

// NewQuestion poses a fresh question, discarding any unanswered one.
// An invalid level or filter is returned as is. A pool too small to
// build a question is logged and leaves the round Idle.
func (s *Session) NewQuestion(level quiz.Level, f catalog.Filter) (*quiz.Question, error) {
	q, err := s.gen.NewQuestion(level, f)
	if err != nil {
		var ipe *quiz.InsufficientPoolError
		if errors.As(err, &ipe) {
			s.logger.Error("cannot build question", "level", level, "filter", f.String(), "error", err)
			s.round.Reset()
		}
		return nil, err
	}

	if s.round.Pose(q) {
		s.progress.Discarded++
		s.logger.Debug("unanswered question discarded")
	}
	s.posedAt = s.now()
	return q, nil
}

// Submit grades choice against the active question and records it once.
// Submitting without a posed question is logged, resets the round and
// returns quiz.ErrNoActiveQuestion.
func (s *Session) Submit(ctx context.Context, choice string) (Outcome, error) {
	res, err := s.round.Grade(choice)
	if err != nil {
		s.logger.Error("answer submitted without an active question", "state", s.round.State().String())
		s.round.Reset()
		return Outcome{}, err
	}

	out := Outcome{
		Result:       res,
		ResponseTime: s.now().Sub(s.posedAt),
	}
	if !res.Correct {
		out.Diagnosis = s.diagnose(res, out.ResponseTime)
	}
	out.SaveErr = s.agg.Record(ctx, res.Correct)
	out.Stats = s.agg.Stats()
	s.progress.record(res.Question.Level, res.Correct)
	if s.streak.Record(res.Correct) {
		gem := s.gems.AwardStreak(ctx, s.streak.Current)
		out.Gem = &gem
	}

	s.appendEvent(ctx, res)
	return out, nil
}

// Finish awards the end-of-session gems: one for the session when
// enough questions were answered and one per cleared level. Only the
// first call awards anything.
func (s *Session) Finish(ctx context.Context) []gems.GemAward {
	if s.finished {
		return nil
	}
	s.finished = true

	var awarded []gems.GemAward
	st := s.agg.Stats()
	if st.Total >= gems.MinSessionAnswers {
		pct, _ := st.Percentage()
		awarded = append(awarded, s.gems.AwardSession(ctx, pct/100))
	}
	for _, l := range quiz.Levels() {
		lr, ok := s.progress.ByLevel[l]
		if !ok || lr.Attempted < gems.LevelClearAnswers || lr.Accuracy() < gems.LevelClearAccuracy {
			continue
		}
		awarded = append(awarded, s.gems.AwardLevel(ctx, l, lr.Correct, lr.Attempted))
	}
	s.logger.Info("session finished", "answered", st.Total, "score", st.Score, "gems", len(s.gems.SessionGems))
	return awarded
}

// diagnose classifies a wrong answer against the level results recorded
// before it.
func (s *Session) diagnose(res quiz.Result, took time.Duration) *diagnosis.Diagnosis {
	in := &diagnosis.ClassifyInput{
		Question:     res.Question,
		Choice:       res.Choice,
		ResponseTime: took,
		Catalog:      s.gen.Catalog(),
	}
	if lr := s.progress.ByLevel[res.Question.Level]; lr != nil {
		in.LevelAccuracy = lr.Accuracy()
		in.LevelAttempts = lr.Attempted
	}
	d := diagnosis.Diagnose(in)
	s.logger.Debug("wrong answer classified",
		"symbol", res.Question.Symbol, "category", d.Category, "classifier", d.ClassifierName)
	return &d
}

func (s *Session) appendEvent(ctx context.Context, res quiz.Result) {
	if s.events == nil {
		return
	}
	err := s.events.AppendAnswer(ctx, store.AnswerEventData{
		SessionID:     s.ID,
		Username:      s.Identity.Username,
		Level:         string(res.Question.Level),
		Symbol:        res.Question.Symbol,
		Prompt:        res.Question.Prompt,
		Choice:        res.Choice,
		CorrectAnswer: res.Answer,
		Correct:       res.Correct,
	})
	if err != nil {
		s.logger.Warn("append answer event", "error", err)
	}
}

// Acknowledge dismisses the feedback of a graded question.
func (s *Session) Acknowledge() { s.round.Acknowledge() }

// ResetStats zeroes the session score and abandons the active question.
// Account totals and gems already recorded are untouched.
func (s *Session) ResetStats() {
	s.agg.Reset()
	s.round.Reset()
	s.streak.Reset()
	s.gems.ResetSession()
	s.finished = false
	s.progress = newProgress()
	s.startedAt = s.now()
}

// Stats returns the session score.
func (s *Session) Stats() stats.SessionStats { return s.agg.Stats() }

// Account returns the stored account totals, or stats.ErrNotPersisted
// for guests.
func (s *Session) Account(ctx context.Context) (*users.Stats, error) {
	return s.agg.Account(ctx)
}

// Persisting reports whether answers are saved to the account.
func (s *Session) Persisting() bool { return s.agg.Persisting() }

// State returns the phase of the current round.
func (s *Session) State() quiz.State { return s.round.State() }

// Current returns the posed or just-graded question.
func (s *Session) Current() *quiz.Question { return s.round.Current() }

// Last returns the result on display after grading, or nil.
func (s *Session) Last() *quiz.Result { return s.round.Last() }

// Catalog returns the catalog questions are drawn from.
func (s *Session) Catalog() *catalog.Catalog { return s.gen.Catalog() }

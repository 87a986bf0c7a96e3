package gems

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/chemiz/internal/quiz"
	"github.com/abhisek/chemiz/internal/store"
)

// Session gems need at least this many answers.
const MinSessionAnswers = 5

// A level is cleared with at least LevelClearAnswers answers at
// LevelClearAccuracy or better.
const (
	LevelClearAnswers  = 10
	LevelClearAccuracy = 0.9
)

// Service awards gems for one quiz session and records them.
type Service struct {
	eventRepo store.EventRepo
	username  string
	sessionID string
	logger    *slog.Logger
	now       func() time.Time

	// SessionGems accumulates gems awarded during the current session.
	SessionGems []GemAward
}

// NewService creates a gem service for one session. A nil eventRepo
// keeps gems in memory only.
func NewService(eventRepo store.EventRepo, username, sessionID string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		eventRepo: eventRepo,
		username:  username,
		sessionID: sessionID,
		logger:    logger,
		now:       time.Now,
	}
}

// AwardStreak awards a streak gem for consecutive correct answers.
func (s *Service) AwardStreak(ctx context.Context, streakLength int) GemAward {
	return s.award(ctx, GemAward{
		Type:   GemStreak,
		Rarity: StreakRarity(streakLength),
		Reason: fmt.Sprintf("%d correct in a row!", streakLength),
	})
}

// AwardSession awards a session-completion gem. accuracy is in [0,1].
func (s *Service) AwardSession(ctx context.Context, accuracy float64) GemAward {
	return s.award(ctx, GemAward{
		Type:   GemSession,
		Rarity: SessionRarity(accuracy),
		Reason: fmt.Sprintf("Session complete (%.0f%% accuracy)", accuracy*100),
	})
}

// AwardLevel awards a gem for clearing a difficulty level.
func (s *Service) AwardLevel(ctx context.Context, level quiz.Level, correct, attempted int) GemAward {
	return s.award(ctx, GemAward{
		Type:   GemLevel,
		Rarity: LevelRarity(level),
		Level:  level,
		Reason: fmt.Sprintf("Cleared %s: %d of %d", level, correct, attempted),
	})
}

// ResetSession clears the session gem accumulator.
func (s *Service) ResetSession() {
	s.SessionGems = nil
}

func (s *Service) award(ctx context.Context, a GemAward) GemAward {
	a.SessionID = s.sessionID
	a.AwardedAt = s.now()
	s.SessionGems = append(s.SessionGems, a)
	s.persist(ctx, a)
	return a
}

func (s *Service) persist(ctx context.Context, a GemAward) {
	if s.eventRepo == nil {
		return
	}
	err := s.eventRepo.AppendGemEvent(ctx, store.GemEventData{
		SessionID: a.SessionID,
		Username:  s.username,
		GemType:   string(a.Type),
		Rarity:    string(a.Rarity),
		Level:     string(a.Level),
		Reason:    a.Reason,
	})
	if err != nil {
		s.logger.Warn("append gem event", "type", a.Type, "error", err)
	}
}

package session

import (
	"time"

	"github.com/abhisek/chemiz/internal/gems"
	"github.com/abhisek/chemiz/internal/quiz"
	"github.com/abhisek/chemiz/internal/stats"
)

// Summary holds the data displayed when the quiz screen is left.
type Summary struct {
	Username  string
	Duration  time.Duration
	Stats     stats.SessionStats
	Levels    []LevelResult // in increasing difficulty, attempted levels only
	Discarded int

	BestStreak int
	Gems       []gems.GemAward // every gem earned this session
}

// Summary builds a summary of the session so far.
func (s *Session) Summary() *Summary {
	sum := &Summary{
		Username:   s.Identity.Username,
		Duration:   s.now().Sub(s.startedAt),
		Stats:      s.agg.Stats(),
		Discarded:  s.progress.Discarded,
		BestStreak: s.streak.Best,
		Gems:       append([]gems.GemAward(nil), s.gems.SessionGems...),
	}
	for _, l := range quiz.Levels() {
		if lr, ok := s.progress.ByLevel[l]; ok {
			sum.Levels = append(sum.Levels, *lr)
		}
	}
	return sum
}

// Package gems awards collectible gems for quiz achievements: answer
// streaks, finished sessions and cleared difficulty levels.
package gems

import (
	"time"

	"github.com/abhisek/chemiz/internal/quiz"
)

// GemAward represents a single gem earned.
type GemAward struct {
	Type      GemType
	Rarity    Rarity
	Level     quiz.Level // empty for streak and session gems
	SessionID string
	Reason    string // e.g. "10 correct in a row!"
	AwardedAt time.Time
}

// Label renders the award as one line with its icon and rarity.
func (a GemAward) Label() string {
	return a.Type.Icon() + " " + a.Reason + " (" + a.Rarity.DisplayName() + ")"
}

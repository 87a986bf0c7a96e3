package gems

import (
	"strings"

	"github.com/abhisek/chemiz/internal/quiz"
)

// Rarity grades a gem. Stored as its lowercase name.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

var rarityOrder = []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}

// AllRarities returns every rarity, lowest first.
func AllRarities() []Rarity {
	return append([]Rarity(nil), rarityOrder...)
}

// Rank orders rarities from 0 (common). Unknown values rank -1.
func (r Rarity) Rank() int {
	for i, x := range rarityOrder {
		if x == r {
			return i
		}
	}
	return -1
}

// DisplayName capitalises known rarities and passes others through.
func (r Rarity) DisplayName() string {
	if r.Rank() < 0 {
		return string(r)
	}
	return strings.ToUpper(string(r[:1])) + string(r[1:])
}

// tier maps a score at or above min to a rarity. Tables are highest first.
type tier struct {
	min    float64
	rarity Rarity
}

var (
	streakTiers = []tier{{20, RarityLegendary}, {15, RarityEpic}, {10, RarityRare}}
	// Session accuracy as a fraction.
	sessionTiers = []tier{{0.90, RarityLegendary}, {0.75, RarityEpic}, {0.50, RarityRare}}
)

func grade(score float64, tiers []tier) Rarity {
	for _, t := range tiers {
		if score >= t.min {
			return t.rarity
		}
	}
	return RarityCommon
}

// StreakRarity grades a streak milestone by its length.
func StreakRarity(length int) Rarity { return grade(float64(length), streakTiers) }

// SessionRarity grades a finished session by its accuracy in [0,1].
func SessionRarity(accuracy float64) Rarity { return grade(accuracy, sessionTiers) }

// LevelRarity grades a cleared level: harder levels give rarer gems.
func LevelRarity(level quiz.Level) Rarity {
	switch level {
	case quiz.LevelHard:
		return RarityEpic
	case quiz.LevelMedium:
		return RarityRare
	}
	return RarityCommon
}

// Package quiz builds multiple-choice element questions and tracks the
// state of a quiz round.
package quiz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/chemiz/internal/catalog"
)

// Level is the difficulty of a question.
type Level string

const (
	LevelEasy   Level = "easy"
	LevelMedium Level = "medium"
	LevelHard   Level = "hard"
)

// Levels returns every level in increasing difficulty.
func Levels() []Level {
	return []Level{LevelEasy, LevelMedium, LevelHard}
}

// ParseLevel parses a level name, case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.ToLower(strings.TrimSpace(s))); l {
	case LevelEasy, LevelMedium, LevelHard:
		return l, nil
	default:
		return "", fmt.Errorf("unknown level %q (want easy, medium or hard)", s)
	}
}

// Describe returns what the level asks for.
func (l Level) Describe() string {
	switch l {
	case LevelEasy:
		return "symbol from name"
	case LevelMedium:
		return "valency from symbol"
	case LevelHard:
		return "electron configuration from symbol"
	default:
		return string(l)
	}
}

// OptionCount is the number of options every question carries.
const OptionCount = 4

// Question is one multiple-choice question.
type Question struct {
	Prompt  string
	Options []string
	Correct string
	Symbol  string
	Level   Level
}

// Grade reports whether choice is the correct option. Comparison is
// exact string equality.
func Grade(q *Question, choice string) bool {
	return q != nil && choice == q.Correct
}

// ErrNoActiveQuestion is returned when grading without a posed question.
var ErrNoActiveQuestion = errors.New("no active question")

// InsufficientPoolError reports that the element pool cannot supply a
// well-formed question.
type InsufficientPoolError struct {
	Level     Level
	Filter    catalog.Filter
	Available int
	Need      int
}

func (e *InsufficientPoolError) Error() string {
	return fmt.Sprintf("cannot build %s question from %s: %d usable candidates, need %d",
		e.Level, e.Filter, e.Available, e.Need)
}

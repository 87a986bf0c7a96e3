// Package diagnosis classifies wrong quiz answers with simple rules so
// the feedback can say what kind of mistake it probably was.
package diagnosis

import (
	"time"

	"github.com/abhisek/chemiz/internal/catalog"
	"github.com/abhisek/chemiz/internal/quiz"
)

// ErrorCategory classifies a wrong answer.
type ErrorCategory string

const (
	CategorySpeedRush        ErrorCategory = "speed-rush"
	CategoryCareless         ErrorCategory = "careless"
	CategoryAlternateValency ErrorCategory = "alternate-valency"
	CategoryNeighbour        ErrorCategory = "neighbour"
	CategorySameGroup        ErrorCategory = "same-group"
	CategoryUnclassified     ErrorCategory = "unclassified"
)

// ClassifyInput holds the context for classification.
type ClassifyInput struct {
	Question     *quiz.Question
	Choice       string
	ResponseTime time.Duration

	// LevelAccuracy is the session accuracy (0.0–1.0) at the question's
	// level before this answer, over LevelAttempts answers.
	LevelAccuracy float64
	LevelAttempts int

	Catalog *catalog.Catalog
}

// Diagnosis is the output of classifying a wrong answer.
type Diagnosis struct {
	Category       ErrorCategory
	Confidence     float64 // 0.0–1.0
	ClassifierName string

	// Related is the element the wrong choice actually belongs to. Set
	// for the neighbour and same-group categories.
	Related *catalog.Element

	// Detail is a one-line hint for the learner. Empty when unclassified.
	Detail string
}

// Classified reports whether a rule matched.
func (d Diagnosis) Classified() bool {
	return d.Category != "" && d.Category != CategoryUnclassified
}

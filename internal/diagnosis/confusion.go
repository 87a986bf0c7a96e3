package diagnosis

import (
	"fmt"
	"slices"

	"github.com/abhisek/chemiz/internal/catalog"
	"github.com/abhisek/chemiz/internal/quiz"
)

// NeighbourDistance is the largest atomic-number gap counted as a
// neighbour confusion.
const NeighbourDistance = 2

// AlternateValencyClassifier flags a valency the element does show but
// which is not its usual one.
type AlternateValencyClassifier struct{}

func (c *AlternateValencyClassifier) Name() string { return "alternate-valency" }

func (c *AlternateValencyClassifier) Classify(input *ClassifyInput) *Diagnosis {
	q := input.Question
	if q == nil || q.Level != quiz.LevelMedium || input.Catalog == nil {
		return nil
	}
	subject, ok := input.Catalog.Get(q.Symbol)
	if !ok || !slices.Contains(subject.Valencies, input.Choice) {
		return nil
	}
	return &Diagnosis{
		Category:   CategoryAlternateValency,
		Confidence: 0.95,
		Detail: fmt.Sprintf("%s can show valency %s, but its usual valency is %s.",
			subject.Symbol, input.Choice, q.Correct),
	}
}

// ConfusionClassifier flags a choice that is the right answer for a
// nearby element or for one in the same group.
type ConfusionClassifier struct{}

func (c *ConfusionClassifier) Name() string { return "confusion" }

func (c *ConfusionClassifier) Classify(input *ClassifyInput) *Diagnosis {
	q := input.Question
	if q == nil || input.Catalog == nil {
		return nil
	}
	subject, ok := input.Catalog.Get(q.Symbol)
	if !ok {
		return nil
	}
	other, ok := answerOwner(input.Catalog, q.Level, input.Choice, subject)
	if !ok {
		return nil
	}

	switch {
	case abs(other.AtomicNumber-subject.AtomicNumber) <= NeighbourDistance:
		return &Diagnosis{
			Category:   CategoryNeighbour,
			Confidence: 0.7,
			Related:    &other,
			Detail: fmt.Sprintf("That answer belongs to %s (%d), right next to %s (%d).",
				other.Name, other.AtomicNumber, subject.Name, subject.AtomicNumber),
		}
	case sameGroup(subject, other):
		return &Diagnosis{
			Category:   CategorySameGroup,
			Confidence: 0.6,
			Related:    &other,
			Detail: fmt.Sprintf("That answer belongs to %s, in the same group as %s.",
				other.Name, subject.Name),
		}
	}
	return nil
}

// answerOwner finds the element for which choice would have been the
// correct answer. Valency tokens are shared by too many elements to say.
// For configurations the match closest to subject wins.
func answerOwner(cat *catalog.Catalog, level quiz.Level, choice string, subject catalog.Element) (catalog.Element, bool) {
	switch level {
	case quiz.LevelEasy:
		e, ok := cat.Get(choice)
		return e, ok && e.Symbol != subject.Symbol
	case quiz.LevelHard:
		var (
			best  catalog.Element
			found bool
		)
		for _, e := range cat.All() {
			if e.Symbol == subject.Symbol || e.ElectronConfiguration != choice {
				continue
			}
			if !found || abs(e.AtomicNumber-subject.AtomicNumber) < abs(best.AtomicNumber-subject.AtomicNumber) {
				best, found = e, true
			}
		}
		return best, found
	}
	return catalog.Element{}, false
}

// sameGroup reports whether a and b share a column of the main table.
// The detached f-block rows have no groups.
func sameGroup(a, b catalog.Element) bool {
	ra, ca, okA := catalog.Position(a.AtomicNumber)
	rb, cb, okB := catalog.Position(b.AtomicNumber)
	if !okA || !okB || ra >= catalog.LanthanideRow || rb >= catalog.LanthanideRow {
		return false
	}
	return ca == cb
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

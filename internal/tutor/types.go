package tutor

import (
	"github.com/abhisek/chemiz/internal/catalog"
	"github.com/abhisek/chemiz/internal/quiz"
	"github.com/abhisek/chemiz/internal/store"
	"github.com/abhisek/chemiz/internal/users"
)

// ExplainInput is a wrongly answered question and the element it was about.
type ExplainInput struct {
	Element  catalog.Element
	Question quiz.Question
	Choice   string
}

// Explanation is a short LLM-written note on why the answer is what it is.
type Explanation struct {
	Symbol      string
	Explanation string
	Mnemonic    string // optional memory aid
}

// AdviceInput is a learner's answer history for study advice.
type AdviceInput struct {
	Username string
	Account  users.Stats
	// Elements is per-element answer history, weakest first.
	Elements []store.AnswerSummary
}

// Advice is an LLM-written study plan.
type Advice struct {
	Summary string
	Focus   []string // element symbols to practice next
	Tips    []string
}

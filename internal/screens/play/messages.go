package play

import (
	"github.com/abhisek/chemiz/internal/session"
	"github.com/abhisek/chemiz/internal/tutor"
	"github.com/abhisek/chemiz/internal/users"
)

// gradedMsg is sent when an answer has been graded and recorded.
type gradedMsg struct {
	Outcome session.Outcome
	Account *users.Stats // nil for guests or when the fetch failed
	Err     error
}

// explainedMsg is sent when the tutor answers.
type explainedMsg struct {
	Symbol      string
	Explanation *tutor.Explanation
	Err         error
}

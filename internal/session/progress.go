package session

import "github.com/abhisek/chemiz/internal/quiz"

// LevelResult counts answers at one difficulty level.
type LevelResult struct {
	Level     quiz.Level
	Attempted int
	Correct   int
}

// Accuracy returns Correct/Attempted in [0,1], or 0 when nothing was
// attempted.
func (r LevelResult) Accuracy() float64 {
	if r.Attempted == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Attempted)
}

// Progress tracks per-level results since the session started or was
// last reset.
type Progress struct {
	ByLevel   map[quiz.Level]*LevelResult
	Discarded int // questions replaced before being answered
}

func newProgress() *Progress {
	return &Progress{ByLevel: make(map[quiz.Level]*LevelResult)}
}

func (p *Progress) record(level quiz.Level, correct bool) {
	lr := p.ByLevel[level]
	if lr == nil {
		lr = &LevelResult{Level: level}
		p.ByLevel[level] = lr
	}
	lr.Attempted++
	if correct {
		lr.Correct++
	}
}

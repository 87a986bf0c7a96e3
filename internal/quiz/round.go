package quiz

// State is the phase of a quiz round.
type State int

const (
	StateIdle State = iota
	StateQuestionPosed
	StateGraded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateQuestionPosed:
		return "question-posed"
	case StateGraded:
		return "graded"
	default:
		return "unknown"
	}
}

// Result is the outcome of grading one question.
type Result struct {
	Correct  bool
	Answer   string // the correct option
	Choice   string
	Question *Question
}

// Round tracks one quiz round: Idle -> QuestionPosed -> Graded -> Idle.
// A new question may be posed from any state.
type Round struct {
	state   State
	current *Question
	last    *Result
}

// Pose makes q the active question. It reports whether an unanswered
// question was discarded; discarding carries no penalty.
func (r *Round) Pose(q *Question) (discarded bool) {
	discarded = r.state == StateQuestionPosed
	r.current = q
	r.last = nil
	r.state = StateQuestionPosed
	return discarded
}

// Grade grades choice against the active question. It returns
// ErrNoActiveQuestion unless a question is posed.
func (r *Round) Grade(choice string) (Result, error) {
	if r.state != StateQuestionPosed || r.current == nil {
		return Result{}, ErrNoActiveQuestion
	}
	res := Result{
		Correct:  Grade(r.current, choice),
		Answer:   r.current.Correct,
		Choice:   choice,
		Question: r.current,
	}
	r.last = &res
	r.state = StateGraded
	return res, nil
}

// Acknowledge returns a graded round to Idle. It is a no-op in any
// other state.
func (r *Round) Acknowledge() {
	if r.state != StateGraded {
		return
	}
	r.current = nil
	r.last = nil
	r.state = StateIdle
}

// Reset returns the round to Idle from any state.
func (r *Round) Reset() {
	r.current = nil
	r.last = nil
	r.state = StateIdle
}

// State returns the current phase.
func (r *Round) State() State { return r.state }

// Current returns the posed or just-graded question, or nil when idle.
func (r *Round) Current() *Question { return r.current }

// Last returns the result of the most recent grading while it is still
// on display, or nil.
func (r *Round) Last() *Result { return r.last }

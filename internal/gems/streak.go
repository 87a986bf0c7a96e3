package gems

// StreakStep is the streak length between gem milestones: 5, 10, 15...
const StreakStep = 5

// NextStreakThreshold is the first milestone strictly above current.
func NextStreakThreshold(current int) int {
	return (max(current, 0)/StreakStep + 1) * StreakStep
}

// Streak counts consecutive correct answers.
type Streak struct {
	Current int
	Best    int
}

// Record counts one answer and reports whether the streak just reached
// a milestone. A wrong answer breaks the streak.
func (s *Streak) Record(correct bool) bool {
	if !correct {
		s.Current = 0
		return false
	}
	s.Current++
	s.Best = max(s.Best, s.Current)
	return s.Current%StreakStep == 0
}

// Reset clears the streak, including the best run.
func (s *Streak) Reset() {
	*s = Streak{}
}

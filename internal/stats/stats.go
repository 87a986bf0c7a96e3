// Package stats accumulates quiz correctness for one session and mirrors
// each graded answer into the account record of persisted identities.
package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/chemiz/internal/users"
)

// SessionStats is the session-local score. Score never exceeds Total.
type SessionStats struct {
	Score int
	Total int
}

// Percentage returns Score/Total as a percentage. ok is false when no
// answer has been recorded.
func (s SessionStats) Percentage() (pct float64, ok bool) {
	if s.Total == 0 {
		return 0, false
	}
	return float64(s.Score) / float64(s.Total) * 100, true
}

// String formats the score as "3/4 (75%)", or "0/0 (n/a)".
func (s SessionStats) String() string {
	pct, ok := s.Percentage()
	if !ok {
		return fmt.Sprintf("%d/%d (n/a)", s.Score, s.Total)
	}
	return fmt.Sprintf("%d/%d (%.0f%%)", s.Score, s.Total, pct)
}

// ErrNotPersisted is returned by Account for identities whose statistics
// are not stored.
var ErrNotPersisted = errors.New("statistics are not saved for this identity")

// SaveError reports that an answer was counted locally but could not be
// written to the account record.
type SaveError struct {
	Username string
	Err      error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("statistics not saved for %s: %v", e.Username, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// Aggregator counts graded answers for one identity.
type Aggregator struct {
	repo    users.Repository
	id      users.Identity
	session SessionStats
	logger  *slog.Logger
}

// NewAggregator returns an aggregator for id. repo may be nil, in which
// case nothing is persisted.
func NewAggregator(repo users.Repository, id users.Identity, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Aggregator{repo: repo, id: id, logger: logger}
}

// Identity returns the identity answers are recorded for.
func (a *Aggregator) Identity() users.Identity { return a.id }

// Persisting reports whether Record writes through to the repository.
func (a *Aggregator) Persisting() bool {
	return a.repo != nil && a.id.Persisted()
}

// Record counts one graded answer. For persisted identities it re-fetches
// the account record, applies the answer and upserts it. The session
// counters are updated even when that write fails; the failure is
// returned as a *SaveError.
func (a *Aggregator) Record(ctx context.Context, correct bool) error {
	a.session.Total++
	if correct {
		a.session.Score++
	}

	if !a.Persisting() {
		return nil
	}

	u, err := a.repo.Get(ctx, a.id.Username)
	if err != nil {
		a.logger.Warn("fetch account before saving statistics", "username", a.id.Username, "error", err)
		return &SaveError{Username: a.id.Username, Err: err}
	}
	u.Stats = u.Stats.Add(correct)
	if err := a.repo.Upsert(ctx, *u); err != nil {
		a.logger.Warn("save statistics", "username", a.id.Username, "error", err)
		return &SaveError{Username: a.id.Username, Err: err}
	}

	a.logger.Debug("statistics saved", "username", a.id.Username,
		"correct", correct, "total_questions", u.Stats.TotalQuestions)
	return nil
}

// Stats returns the session counters.
func (a *Aggregator) Stats() SessionStats { return a.session }

// Reset zeroes the session counters. Account totals are untouched.
func (a *Aggregator) Reset() { a.session = SessionStats{} }

// Account returns the stored account totals for the identity.
func (a *Aggregator) Account(ctx context.Context) (*users.Stats, error) {
	if !a.Persisting() {
		return nil, ErrNotPersisted
	}
	u, err := a.repo.Get(ctx, a.id.Username)
	if err != nil {
		return nil, fmt.Errorf("load account %s: %w", a.id.Username, err)
	}
	s := u.Stats
	return &s, nil
}

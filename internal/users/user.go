// Package users defines user records, the repository contract every
// storage backend satisfies, and the shared row codec used by the file
// and sheet backends.
package users

import (
	"fmt"
	"time"
)

// Role is the account role of a user.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
	RoleDemo    Role = "demo"
	// RoleGuest marks the ephemeral guest identity. It is never persisted.
	RoleGuest Role = "guest"
)

// ParseRole parses a stored role value.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleStudent, RoleTeacher, RoleAdmin, RoleDemo:
		return r, nil
	case RoleGuest:
		return "", fmt.Errorf("role %q cannot be stored", s)
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Stats holds the account-level quiz counters. All fields only grow.
type Stats struct {
	TestsCompleted int `json:"tests_completed"`
	CorrectAnswers int `json:"correct_answers"`
	TotalQuestions int `json:"total_questions"`
}

// Accuracy returns CorrectAnswers/TotalQuestions as a percentage.
// ok is false when no question has been answered.
func (s Stats) Accuracy() (pct float64, ok bool) {
	if s.TotalQuestions == 0 {
		return 0, false
	}
	return float64(s.CorrectAnswers) / float64(s.TotalQuestions) * 100, true
}

// Add returns s with one graded answer applied.
func (s Stats) Add(correct bool) Stats {
	s.TestsCompleted++
	s.TotalQuestions++
	if correct {
		s.CorrectAnswers++
	}
	return s
}

// User is a persisted account record.
type User struct {
	Username       string
	PasswordDigest string
	Email          string
	CreatedAt      time.Time
	LastLoginAt    *time.Time // nil until the first successful login
	Role           Role
	Stats          Stats
}

// Clone returns a copy that shares no pointers with u.
func (u User) Clone() User {
	if u.LastLoginAt != nil {
		t := *u.LastLoginAt
		u.LastLoginAt = &t
	}
	return u
}

// Validate checks the invariants every stored record must hold.
func (u User) Validate() error {
	if len([]rune(u.Username)) < MinUsernameLength {
		return fmt.Errorf("username %q shorter than %d characters", u.Username, MinUsernameLength)
	}
	if u.PasswordDigest == "" {
		return fmt.Errorf("user %q has no password digest", u.Username)
	}
	if _, err := ParseRole(string(u.Role)); err != nil {
		return fmt.Errorf("user %q: %w", u.Username, err)
	}
	if u.Stats.TestsCompleted < 0 || u.Stats.CorrectAnswers < 0 || u.Stats.TotalQuestions < 0 {
		return fmt.Errorf("user %q has negative counters", u.Username)
	}
	return nil
}

// MinUsernameLength is the minimum number of characters in a username.
const MinUsernameLength = 3

// Snapshot is the result of LoadAll.
type Snapshot struct {
	Users map[string]User
	// Skipped counts stored rows that could not be decoded.
	Skipped int
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{Users: make(map[string]User)}
}

// Has reports whether username exists in the snapshot.
func (s *Snapshot) Has(username string) bool {
	_, ok := s.Users[username]
	return ok
}

package users

import (
	"context"
	"errors"
	"fmt"
)

// Repository is a key-value store of user records keyed by username.
// Implementations apply last-writer-wins semantics: Upsert replaces the
// whole record and never merges fields.
type Repository interface {
	// LoadAll returns every decodable record. An absent backing store
	// yields an empty snapshot and nil error; an unreachable one yields
	// an empty snapshot and *UnavailableError.
	LoadAll(ctx context.Context) (*Snapshot, error)

	// Get returns the current record for username, or ErrNotFound.
	Get(ctx context.Context, username string) (*User, error)

	// Upsert stores u, replacing any existing record with the same username.
	Upsert(ctx context.Context, u User) error
}

// SchemaEnsurer is implemented by backends that need their storage and
// headers created before use. EnsureSchema is idempotent.
type SchemaEnsurer interface {
	EnsureSchema(ctx context.Context) error
}

// ErrNotFound is returned by Get when no record exists for the username.
var ErrNotFound = errors.New("user not found")

// UnavailableError reports that the backing store could not be reached or
// read. Callers degrade to statistics-disabled operation.
type UnavailableError struct {
	Backend string
	Op      string
	Err     error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s user store unavailable (%s): %v", e.Backend, e.Op, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// IsUnavailable reports whether err is or wraps an *UnavailableError.
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue)
}

// EnsureSchema calls EnsureSchema on repo when it implements SchemaEnsurer.
func EnsureSchema(ctx context.Context, repo Repository) error {
	if se, ok := repo.(SchemaEnsurer); ok {
		return se.EnsureSchema(ctx)
	}
	return nil
}

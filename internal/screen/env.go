package screen

import (
	"log/slog"
	"math/rand/v2"

	"github.com/abhisek/chemiz/internal/auth"
	"github.com/abhisek/chemiz/internal/catalog"
	"github.com/abhisek/chemiz/internal/store"
	"github.com/abhisek/chemiz/internal/tutor"
	"github.com/abhisek/chemiz/internal/users"
)

// Env carries the services every screen may need.
type Env struct {
	Catalog *catalog.Catalog

	// Users is nil when the user store could not be opened; UsersErr
	// then says why and the app runs in guest-only mode.
	Users    users.Repository
	UsersErr error

	Auth   *auth.Service
	Events store.EventRepo // optional
	Tutor  *tutor.Service  // optional

	// Rand seeds quiz sessions. Nil picks a random seed per session.
	Rand *rand.Rand

	Logger *slog.Logger
}

// UsersAvailable reports whether accounts can be used.
func (e *Env) UsersAvailable() bool {
	return e.Users != nil && e.Auth != nil
}

// TutorEnabled reports whether LLM explanations are available.
func (e *Env) TutorEnabled() bool {
	return e.Tutor != nil && e.Tutor.Enabled()
}

// Log returns the logger, or a discarding one.
func (e *Env) Log() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

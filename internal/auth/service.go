// Package auth registers and authenticates users against a
// users.Repository.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/chemiz/internal/users"
)

// Credential length limits, counted in characters.
const (
	MinUsernameLength = users.MinUsernameLength
	MinPasswordLength = 6
)

// Demo account created by SeedDemo.
const (
	DemoUsername = "demo"
	DemoPassword = "demo"
	DemoEmail    = "demo@chemistry-app.com"
)

// DemoStats are the sample counters of the demo account.
var DemoStats = users.Stats{TestsCompleted: 5, CorrectAnswers: 18, TotalQuestions: 25}

// Config holds credential service settings.
type Config struct {
	// BcryptCost is the bcrypt work factor. Default: bcrypt.DefaultCost.
	BcryptCost int
}

// DefaultConfig returns the production settings.
func DefaultConfig() Config {
	return Config{BcryptCost: bcrypt.DefaultCost}
}

// Service registers and authenticates users.
type Service struct {
	repo   users.Repository
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a credential service over repo.
func NewService(repo users.Repository, cfg Config, logger *slog.Logger) *Service {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, cfg: cfg, logger: logger, now: time.Now}
}

// Register creates a student account with zeroed statistics. Length
// checks run before the reserved-name and duplicate checks.
func (s *Service) Register(ctx context.Context, username, password, email string) error {
	if utf8.RuneCountInString(username) < MinUsernameLength {
		return &RegistrationError{Reason: ReasonUsernameTooShort}
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return &RegistrationError{Reason: ReasonPasswordTooShort}
	}
	if username == users.GuestName {
		return &RegistrationError{Reason: ReasonReservedUsername}
	}

	snap, err := s.repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	if snap.Has(username) {
		return &RegistrationError{Reason: ReasonDuplicateUsername}
	}

	digest, err := hashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return err
	}

	u := users.User{
		Username:       username,
		PasswordDigest: digest,
		Email:          email,
		CreatedAt:      s.now(),
		Role:           users.RoleStudent,
	}
	if err := s.repo.Upsert(ctx, u); err != nil {
		return fmt.Errorf("save user: %w", err)
	}

	s.logger.Info("user registered", "username", username)
	return nil
}

// Login verifies the password and records the login time. A failed
// login never writes to the repository. Legacy SHA-256 digests are
// replaced with bcrypt on success.
func (s *Service) Login(ctx context.Context, username, password string) (*users.User, error) {
	u, err := s.repo.Get(ctx, username)
	if errors.Is(err, users.ErrNotFound) {
		return nil, &AuthError{Reason: ReasonUserNotFound}
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	ok, legacy, err := checkPassword(u.PasswordDigest, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Info("login rejected", "username", username, "reason", ReasonBadPassword)
		return nil, &AuthError{Reason: ReasonBadPassword}
	}

	if legacy {
		digest, err := hashPassword(password, s.cfg.BcryptCost)
		if err != nil {
			return nil, err
		}
		u.PasswordDigest = digest
		s.logger.Info("upgraded legacy password digest", "username", username)
	}

	now := s.now()
	u.LastLoginAt = &now
	if err := s.repo.Upsert(ctx, *u); err != nil {
		return nil, fmt.Errorf("save login: %w", err)
	}

	s.logger.Info("user logged in", "username", username)
	return u, nil
}

// Guest returns the ephemeral guest identity. It never touches the
// repository.
func (s *Service) Guest() users.Identity {
	return users.Guest()
}

// SeedDemo creates the demo account with sample statistics if it does
// not exist yet. It reports whether the account was created.
func (s *Service) SeedDemo(ctx context.Context) (bool, error) {
	_, err := s.repo.Get(ctx, DemoUsername)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, users.ErrNotFound) {
		return false, fmt.Errorf("look up demo user: %w", err)
	}

	digest, err := hashPassword(DemoPassword, s.cfg.BcryptCost)
	if err != nil {
		return false, err
	}
	demo := users.User{
		Username:       DemoUsername,
		PasswordDigest: digest,
		Email:          DemoEmail,
		CreatedAt:      s.now(),
		Role:           users.RoleDemo,
		Stats:          DemoStats,
	}
	if err := s.repo.Upsert(ctx, demo); err != nil {
		return false, fmt.Errorf("save demo user: %w", err)
	}

	s.logger.Info("seeded demo user")
	return true, nil
}

package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/chemiz/internal/users"
)

// countingRepo wraps a repository and counts writes.
type countingRepo struct {
	users.Repository
	upserts int
	failAll error
}

func (c *countingRepo) LoadAll(ctx context.Context) (*users.Snapshot, error) {
	if c.failAll != nil {
		return users.NewSnapshot(), c.failAll
	}
	return c.Repository.LoadAll(ctx)
}

func (c *countingRepo) Get(ctx context.Context, username string) (*users.User, error) {
	if c.failAll != nil {
		return nil, c.failAll
	}
	return c.Repository.Get(ctx, username)
}

func (c *countingRepo) Upsert(ctx context.Context, u users.User) error {
	if c.failAll != nil {
		return c.failAll
	}
	c.upserts++
	return c.Repository.Upsert(ctx, u)
}

func newTestService(t *testing.T) (*Service, *countingRepo) {
	t.Helper()
	repo := &countingRepo{Repository: users.NewMemory()}
	s := NewService(repo, Config{BcryptCost: bcrypt.MinCost}, nil)
	clock := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return s, repo
}

func TestRegister_ThenLogin(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, s.Register(ctx, "abc", "abcdef", ""))

	u, err := s.Login(ctx, "abc", "abcdef")
	require.NoError(t, err)
	assert.Equal(t, users.Stats{}, u.Stats)
	assert.Equal(t, users.RoleStudent, u.Role)
	require.NotNil(t, u.LastLoginAt)
	assert.True(t, u.LastLoginAt.After(u.CreatedAt))
}

func TestRegister_StoresSaltedDigest(t *testing.T) {
	s, repo := newTestService(t)
	ctx := context.Background()

	require.NoError(t, s.Register(ctx, "alice", "secret1", "alice@example.com"))
	require.NoError(t, s.Register(ctx, "bobby", "secret1", ""))

	alice, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	bobby, err := repo.Get(ctx, "bobby")
	require.NoError(t, err)

	assert.NotContains(t, alice.PasswordDigest, "secret1")
	assert.NotEqual(t, alice.PasswordDigest, bobby.PasswordDigest)
	assert.Nil(t, alice.LastLoginAt)
	assert.Equal(t, "alice@example.com", alice.Email)
}

func TestRegister_Scenario(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	err := s.Register(ctx, "ab", "abcdef", "")
	assert.ErrorIs(t, err, &RegistrationError{Reason: ReasonUsernameTooShort})

	require.NoError(t, s.Register(ctx, "abc", "abcdef", ""))

	err = s.Register(ctx, "abc", "abcdef", "")
	assert.ErrorIs(t, err, &RegistrationError{Reason: ReasonDuplicateUsername})
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		want     RegistrationReason
	}{
		{"short username", "ab", "abcdef", ReasonUsernameTooShort},
		{"short password", "abc", "abcde", ReasonPasswordTooShort},
		{"both short reports username", "a", "b", ReasonUsernameTooShort},
		{"multibyte username counted in characters", "éé", "abcdef", ReasonUsernameTooShort},
		{"guest name is reserved", users.GuestName, "secret1", ReasonReservedUsername},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, repo := newTestService(t)
			err := s.Register(context.Background(), tt.username, tt.password, "")

			var re *RegistrationError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, tt.want, re.Reason)
			assert.Zero(t, repo.upserts)
		})
	}

	s, _ := newTestService(t)
	assert.NoError(t, s.Register(context.Background(), "ééé", "пароль", ""))
}

func TestRegister_LongPasswords(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"80 ascii bytes", strings.Repeat("a", 80)},
		{"multibyte over 72 bytes", strings.Repeat("ж", 40)},
		{"field maximum", strings.Repeat("пароль", 10) + "abcd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestService(t)
			ctx := context.Background()
			require.Greater(t, len(tt.password), 72)

			require.NoError(t, s.Register(ctx, "alice", tt.password, ""))
			_, err := s.Login(ctx, "alice", tt.password)
			require.NoError(t, err)

			_, err = s.Login(ctx, "alice", tt.password[:72])
			assert.ErrorIs(t, err, &AuthError{Reason: ReasonBadPassword})
		})
	}
}

func TestLogin_UpgradesRawBcryptDigest(t *testing.T) {
	s, repo := newTestService(t)
	ctx := context.Background()

	raw, err := bcrypt.GenerateFromPassword([]byte("oldpass"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, users.User{
		Username:       "veteran",
		PasswordDigest: string(raw),
		CreatedAt:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Role:           users.RoleStudent,
	}))

	u, err := s.Login(ctx, "veteran", "oldpass")
	require.NoError(t, err)
	assert.NotEqual(t, string(raw), u.PasswordDigest)

	_, err = s.Login(ctx, "veteran", "oldpass")
	assert.NoError(t, err)
	_, err = s.Login(ctx, "veteran", "newpass")
	assert.ErrorIs(t, err, &AuthError{Reason: ReasonBadPassword})
}

func TestRegister_CaseSensitiveUsernames(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, s.Register(ctx, "Alice", "abcdef", ""))
	assert.NoError(t, s.Register(ctx, "alice", "abcdef", ""))
}

func TestRegister_RepositoryUnavailable(t *testing.T) {
	s, repo := newTestService(t)
	repo.failAll = &users.UnavailableError{Backend: "test", Op: "load", Err: errors.New("offline")}

	err := s.Register(context.Background(), "alice", "abcdef", "")
	require.Error(t, err)
	assert.True(t, users.IsUnavailable(err))

	var re *RegistrationError
	assert.False(t, errors.As(err, &re))
}

func TestLogin_UserNotFound(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.Login(context.Background(), "nobody", "abcdef")
	assert.ErrorIs(t, err, &AuthError{Reason: ReasonUserNotFound})
	assert.Equal(t, "user not found", err.Error())
}

func TestLogin_BadPasswordDoesNotWrite(t *testing.T) {
	s, repo := newTestService(t)
	ctx := context.Background()

	require.NoError(t, s.Register(ctx, "alice", "abcdef", ""))
	before := repo.upserts

	_, err := s.Login(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, &AuthError{Reason: ReasonBadPassword})
	assert.Equal(t, before, repo.upserts)

	u, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, u.LastLoginAt)
}

func TestLogin_UpdatesLastLoginEachTime(t *testing.T) {
	s, repo := newTestService(t)
	ctx := context.Background()
	require.NoError(t, s.Register(ctx, "alice", "abcdef", ""))

	first, err := s.Login(ctx, "alice", "abcdef")
	require.NoError(t, err)
	second, err := s.Login(ctx, "alice", "abcdef")
	require.NoError(t, err)
	assert.True(t, second.LastLoginAt.After(*first.LastLoginAt))

	stored, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, stored.LastLoginAt.Equal(*second.LastLoginAt))
}

func TestLogin_UpgradesLegacyDigest(t *testing.T) {
	s, repo := newTestService(t)
	ctx := context.Background()

	sum := sha256.Sum256([]byte("oldpass"))
	legacy := users.User{
		Username:       "veteran",
		PasswordDigest: hex.EncodeToString(sum[:]),
		CreatedAt:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Role:           users.RoleTeacher,
		Stats:          users.Stats{TestsCompleted: 7, CorrectAnswers: 5, TotalQuestions: 7},
	}
	require.NoError(t, repo.Upsert(ctx, legacy))

	_, err := s.Login(ctx, "veteran", "wrong!")
	assert.ErrorIs(t, err, &AuthError{Reason: ReasonBadPassword})

	u, err := s.Login(ctx, "veteran", "oldpass")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u.PasswordDigest, "$2"))
	assert.Equal(t, legacy.Stats, u.Stats)
	assert.Equal(t, users.RoleTeacher, u.Role)

	_, err = s.Login(ctx, "veteran", "oldpass")
	assert.NoError(t, err)
}

func TestGuest(t *testing.T) {
	s, repo := newTestService(t)
	id := s.Guest()
	assert.Equal(t, users.RoleGuest, id.Role)
	assert.False(t, id.Persisted())
	assert.Zero(t, repo.upserts)
}

func TestSeedDemo(t *testing.T) {
	s, repo := newTestService(t)
	ctx := context.Background()

	created, err := s.SeedDemo(ctx)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.SeedDemo(ctx)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1, repo.upserts)

	u, err := s.Login(ctx, DemoUsername, DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, users.RoleDemo, u.Role)
	assert.Equal(t, DemoStats, u.Stats)
	assert.True(t, u.Identity().Persisted())
}

package filerepo

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/chemiz/internal/users"
)

func newUser(name string) users.User {
	return users.User{
		Username:       name,
		PasswordDigest: "digest-" + name,
		CreatedAt:      time.Date(2025, 5, 1, 12, 0, 0, 0, time.Local),
		Role:           users.RoleStudent,
	}
}

func TestLoadAll_MissingFile(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "users.json"), nil)

	snap, err := r.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Users)
	assert.Zero(t, snap.Skipped)
}

func TestLoadAll_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	r := New(path, nil)

	snap, err := r.LoadAll(context.Background())
	require.Error(t, err)
	assert.True(t, users.IsUnavailable(err))
	require.NotNil(t, snap)
	assert.Empty(t, snap.Users)

	assert.True(t, users.IsUnavailable(r.Upsert(context.Background(), newUser("alice"))))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data), "corrupt file must not be overwritten")
}

func TestUpsert_ThenGet(t *testing.T) {
	ctx := context.Background()
	r := New(filepath.Join(t.TempDir(), "nested", "users.json"), nil)

	u := newUser("alice")
	require.NoError(t, r.Upsert(ctx, u))

	got, err := r.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.PasswordDigest, got.PasswordDigest)
	assert.Nil(t, got.LastLoginAt)
	assert.True(t, u.CreatedAt.Equal(got.CreatedAt))

	_, err = r.Get(ctx, "bob")
	assert.ErrorIs(t, err, users.ErrNotFound)
}

func TestUpsert_FullReplacement(t *testing.T) {
	ctx := context.Background()
	r := New(filepath.Join(t.TempDir(), "users.json"), nil)

	u := newUser("alice")
	u.Email = "alice@example.com"
	u.Stats = users.Stats{TestsCompleted: 2, CorrectAnswers: 1, TotalQuestions: 2}
	require.NoError(t, r.Upsert(ctx, u))

	replacement := newUser("alice")
	require.NoError(t, r.Upsert(ctx, replacement))

	got, err := r.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, got.Email)
	assert.Equal(t, users.Stats{}, got.Stats)
}

func TestUpsert_Idempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.json")
	r := New(path, nil)

	u := newUser("alice")
	require.NoError(t, r.Upsert(ctx, u))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, r.Upsert(ctx, u))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestLoadAll_SkipsMalformedEntries(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.json")
	doc := map[string]any{
		"alice": map[string]any{
			"password_hash": "abc",
			"email":         "",
			"created_at":    "2025-01-01 10:00:00",
			"last_login":    nil,
			"role":          "student",
			"preferences":   map[string]any{"theme": "light"},
			"stats":         map[string]any{"tests_completed": 1, "correct_answers": 1, "total_questions": 1},
		},
		"broken": map[string]any{"password_hash": "abc", "created_at": "not a date", "role": "student"},
		"worse":  "just a string",
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	r := New(path, nil)
	snap, err := r.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Skipped)
	require.Contains(t, snap.Users, "alice")
	assert.Equal(t, 1, snap.Users["alice"].Stats.CorrectAnswers)

	require.NoError(t, r.Upsert(ctx, newUser("carol")))
	var after map[string]json.RawMessage
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &after))
	assert.Contains(t, after, "broken", "unreadable entries are preserved on rewrite")
	assert.Contains(t, after, "carol")
}

func TestEnsureSchema(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.json")
	r := New(path, nil)

	require.NoError(t, users.EnsureSchema(ctx, r))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(data))

	require.NoError(t, r.Upsert(ctx, newUser("alice")))
	require.NoError(t, r.EnsureSchema(ctx))
	snap, err := r.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Users, 1)
}

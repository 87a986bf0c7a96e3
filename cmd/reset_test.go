package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/chemiz/internal/store"
	"github.com/abhisek/chemiz/internal/users"
)

func TestResetHistory_KeepsAccountCounters(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(filepath.Join(t.TempDir(), "chemiz.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	repo, events := st.UserRepo(), st.EventRepo()
	stats := users.Stats{TestsCompleted: 12, CorrectAnswers: 9, TotalQuestions: 12}
	require.NoError(t, repo.Upsert(ctx, users.User{
		Username:       "alice",
		PasswordDigest: "digest",
		CreatedAt:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Role:           users.RoleStudent,
		Stats:          stats,
	}))
	for _, name := range []string{"alice", "alice", "bob"} {
		require.NoError(t, events.AppendAnswer(ctx, store.AnswerEventData{
			SessionID: "s1", Username: name, Level: "easy", Symbol: "Fe",
			Prompt: "Fe?", Choice: "iron", CorrectAnswer: "iron", Correct: true,
		}))
	}
	require.NoError(t, events.AppendGemEvent(ctx, store.GemEventData{
		SessionID: "s1", Username: "alice", GemType: "streak", Rarity: "common", Reason: "5 correct in a row!",
	}))

	var out bytes.Buffer
	require.NoError(t, resetHistory(ctx, &out, repo, events, "alice", false))
	assert.Contains(t, out.String(), "Deleted 2 answer event(s) of alice.")
	assert.Contains(t, out.String(), "Deleted 1 gem(s).")

	u, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, stats, u.Stats)

	answers, err := events.QueryAnswers(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, "bob", answers[0].Username)
	_, gems, err := events.GemCounts(ctx, "alice")
	require.NoError(t, err)
	assert.Zero(t, gems)
}

func TestResetHistory_KeepGems(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(filepath.Join(t.TempDir(), "chemiz.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	repo, events := st.UserRepo(), st.EventRepo()
	require.NoError(t, repo.Upsert(ctx, users.User{Username: "alice", PasswordDigest: "d", Role: users.RoleStudent}))
	require.NoError(t, events.AppendGemEvent(ctx, store.GemEventData{Username: "alice", GemType: "session", Rarity: "epic"}))

	require.NoError(t, resetHistory(ctx, &bytes.Buffer{}, repo, events, "alice", true))
	_, gems, err := events.GemCounts(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, gems)
}

func TestResetHistory_UnknownUser(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "chemiz.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	err = resetHistory(context.Background(), &bytes.Buffer{}, st.UserRepo(), st.EventRepo(), "nobody", false)
	assert.EqualError(t, err, `no user named "nobody"`)
}

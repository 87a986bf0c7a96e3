package sheetrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/chemiz/internal/users"
)

// memTable is an in-memory Table.
type memTable struct {
	exists  bool
	rows    [][]string
	failErr error
	updates int
	appends int
}

func (m *memTable) Ensure(context.Context) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.exists = true
	return nil
}

func (m *memTable) Rows(context.Context) ([][]string, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}
	if !m.exists {
		return nil, ErrWorksheetNotFound
	}
	out := make([][]string, len(m.rows))
	for i, r := range m.rows {
		out[i] = append([]string(nil), r...)
	}
	return out, nil
}

func (m *memTable) UpdateRow(_ context.Context, n int, values []string) error {
	if m.failErr != nil {
		return m.failErr
	}
	for len(m.rows) < n {
		m.rows = append(m.rows, nil)
	}
	m.rows[n-1] = append([]string(nil), values...)
	m.updates++
	return nil
}

func (m *memTable) AppendRow(_ context.Context, values []string) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.rows = append(m.rows, append([]string(nil), values...))
	m.appends++
	return nil
}

func newUser(name string) users.User {
	return users.User{
		Username:       name,
		PasswordDigest: "digest-" + name,
		CreatedAt:      time.Date(2025, 5, 1, 12, 0, 0, 0, time.Local),
		Role:           users.RoleStudent,
	}
}

func TestLoadAll_MissingWorksheet(t *testing.T) {
	r := New(&memTable{}, nil)
	snap, err := r.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Users)
}

func TestLoadAll_Unreachable(t *testing.T) {
	r := New(&memTable{exists: true, failErr: errors.New("dial tcp: timeout")}, nil)

	snap, err := r.LoadAll(context.Background())
	require.Error(t, err)
	assert.True(t, users.IsUnavailable(err))
	assert.Empty(t, snap.Users)

	_, err = r.Get(context.Background(), "alice")
	assert.True(t, users.IsUnavailable(err))
	assert.True(t, users.IsUnavailable(r.Upsert(context.Background(), newUser("alice"))))
}

func TestEnsureSchema_CreatesWorksheetAndHeader(t *testing.T) {
	ctx := context.Background()
	tbl := &memTable{}
	r := New(tbl, nil)

	require.NoError(t, users.EnsureSchema(ctx, r))
	assert.True(t, tbl.exists)
	require.Len(t, tbl.rows, 1)
	assert.Equal(t, users.Header, tbl.rows[0])

	require.NoError(t, r.EnsureSchema(ctx))
	assert.Len(t, tbl.rows, 1)
	assert.Equal(t, 1, tbl.updates)
}

func TestUpsert_AppendsThenOverwritesInPlace(t *testing.T) {
	ctx := context.Background()
	tbl := &memTable{}
	r := New(tbl, nil)

	require.NoError(t, r.Upsert(ctx, newUser("alice")))
	require.NoError(t, r.Upsert(ctx, newUser("bob")))
	require.Len(t, tbl.rows, 3)
	assert.Equal(t, 2, tbl.appends)

	alice := newUser("alice")
	alice.Stats = users.Stats{TestsCompleted: 1, CorrectAnswers: 1, TotalQuestions: 1}
	require.NoError(t, r.Upsert(ctx, alice))
	require.Len(t, tbl.rows, 3)
	assert.Equal(t, "alice", tbl.rows[1][0])
	assert.Equal(t, "1", tbl.rows[1][7])

	got, err := r.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.Stats, got.Stats)
}

func TestUpsert_Idempotent(t *testing.T) {
	ctx := context.Background()
	tbl := &memTable{}
	r := New(tbl, nil)

	u := newUser("alice")
	require.NoError(t, r.Upsert(ctx, u))
	before := len(tbl.rows)
	require.NoError(t, r.Upsert(ctx, u))
	assert.Equal(t, before, len(tbl.rows))

	snap, err := r.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Users, 1)
}

func TestLoadAll_SkipsMalformedRows(t *testing.T) {
	tbl := &memTable{
		exists: true,
		rows: [][]string{
			users.Header,
			users.EncodeRow(newUser("alice")),
			{},
			{"bob", "digest", "", "not a date", "", "student"},
			{"x"},
			users.EncodeRow(newUser("carol")),
		},
	}
	r := New(tbl, nil)

	snap, err := r.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Users, 2)
	assert.Equal(t, 2, snap.Skipped)
}

func TestUpsert_SeesExternalEdits(t *testing.T) {
	ctx := context.Background()
	tbl := &memTable{}
	r := New(tbl, nil)
	require.NoError(t, r.Upsert(ctx, newUser("alice")))

	// Another writer edits the sheet directly.
	edited := newUser("alice")
	edited.Stats.TestsCompleted = 9
	edited.Stats.TotalQuestions = 9
	tbl.rows[1] = users.EncodeRow(edited)

	got, err := r.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 9, got.Stats.TestsCompleted)
}

func TestUpsert_MatchesPaddedUsername(t *testing.T) {
	ctx := context.Background()
	padded := users.EncodeRow(newUser("alice"))
	padded[0] = " alice "
	tbl := &memTable{exists: true, rows: [][]string{users.Header, padded}}
	r := New(tbl, nil)

	alice := newUser("alice")
	alice.Stats = users.Stats{TestsCompleted: 2, CorrectAnswers: 1, TotalQuestions: 2}
	require.NoError(t, r.Upsert(ctx, alice))
	assert.Zero(t, tbl.appends)
	require.Len(t, tbl.rows, 2)

	got, err := r.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.Stats, got.Stats)
}

func TestLoadAll_DuplicateRowsKeepFirst(t *testing.T) {
	ctx := context.Background()
	stale := newUser("alice")
	stale.Stats = users.Stats{TestsCompleted: 5, CorrectAnswers: 5, TotalQuestions: 5}
	tbl := &memTable{exists: true, rows: [][]string{
		users.Header,
		users.EncodeRow(newUser("alice")),
		users.EncodeRow(stale),
	}}
	r := New(tbl, nil)

	alice := newUser("alice")
	alice.Stats = users.Stats{TestsCompleted: 1, CorrectAnswers: 1, TotalQuestions: 1}
	require.NoError(t, r.Upsert(ctx, alice))

	got, err := r.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.Stats, got.Stats, "reads the row Upsert writes")
}

func TestColumnName(t *testing.T) {
	assert.Equal(t, "A", columnName(1))
	assert.Equal(t, "I", columnName(9))
	assert.Equal(t, "Z", columnName(26))
	assert.Equal(t, "AA", columnName(27))
	assert.Equal(t, "AZ", columnName(52))
}

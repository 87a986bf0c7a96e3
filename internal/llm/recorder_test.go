package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/chemiz/internal/store"
)

func openEvents(t *testing.T) store.EventRepo {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

func TestRecorderStoresRequest(t *testing.T) {
	events := openEvents(t)
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"text":"Fe is iron."}`),
		Usage:   Usage{InputTokens: 11, OutputTokens: 6},
	})
	p := WithRecorder(mock, "mock", events, nil)

	ctx := WithPurpose(context.Background(), PurposeExplain)
	_, err := p.Generate(ctx, Request{System: "sys", Prompt: "Explain Fe.", Schema: explanationSchema()})
	require.NoError(t, err)

	got, err := events.QueryLLMEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	e := got[0]
	assert.Equal(t, "mock", e.Provider)
	assert.Equal(t, "mock", e.Model)
	assert.Equal(t, "explain", e.Purpose)
	assert.Equal(t, 11, e.InputTokens)
	assert.Equal(t, 6, e.OutputTokens)
	assert.True(t, e.Success)
	assert.Contains(t, e.RequestBody, "[system]\nsys")
	assert.Contains(t, e.RequestBody, "Explain Fe.")
	assert.Contains(t, e.RequestBody, "[schema: explanation]")
	assert.JSONEq(t, `{"text":"Fe is iron."}`, e.ResponseBody)
}

func TestRecorderStoresFailure(t *testing.T) {
	events := openEvents(t)
	mock := NewMockProvider(MockResponse{Err: &Error{Kind: KindRateLimited, Err: errors.New("429")}})
	p := WithRecorder(mock, "mock", events, nil)

	_, err := p.Generate(context.Background(), Request{Prompt: "hi"})
	assert.True(t, IsKind(err, KindRateLimited))

	got, err := events.QueryLLMEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].Success)
	assert.Equal(t, "unknown", got[0].Purpose)
	assert.Contains(t, got[0].ErrorMessage, "rate limited")
	assert.NotContains(t, got[0].RequestBody, "[system]")
}

package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okReply = MockResponse{Content: json.RawMessage(`{"ok":true}`)}

func down() MockResponse {
	return MockResponse{Err: &Error{Kind: KindUnavailable, Err: errors.New("down")}}
}

// instantRetry wraps p with WithRetry and records every wait instead of
// sleeping.
func instantRetry(p Provider, attempts int) (Provider, *[]time.Duration) {
	var waits []time.Duration
	r := WithRetry(p, RetryConfig{
		MaxAttempts: attempts,
		InitialWait: 100 * time.Millisecond,
		MaxWait:     time.Second,
		Multiplier:  2,
	}).(*retrying)
	r.sleep = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}
	return r, &waits
}

func TestRetryFirstAttempt(t *testing.T) {
	mock := NewMockProvider(okReply)
	p, waits := instantRetry(mock, 3)

	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Content))
	assert.Equal(t, 1, mock.CallCount())
	assert.Empty(t, *waits)
}

func TestRetryRecoversFromOutage(t *testing.T) {
	mock := NewMockProvider(down(), down(), okReply)
	p, waits := instantRetry(mock, 3)

	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, 3, mock.CallCount())
	require.Len(t, *waits, 2)

	// ±20% jitter around 100ms then 200ms.
	assert.InDelta(t, float64(100*time.Millisecond), float64((*waits)[0]), float64(20*time.Millisecond))
	assert.InDelta(t, float64(200*time.Millisecond), float64((*waits)[1]), float64(40*time.Millisecond))
}

func TestRetryGivesUp(t *testing.T) {
	mock := NewMockProvider(down(), down(), down(), okReply)
	p, waits := instantRetry(mock, 3)

	_, err := p.Generate(context.Background(), Request{})
	assert.True(t, IsKind(err, KindUnavailable))
	assert.Equal(t, 3, mock.CallCount())
	assert.Len(t, *waits, 2)
}

func TestRetryHonoursRetryAfter(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &Error{Kind: KindRateLimited, RetryAfter: 3 * time.Second}},
		okReply,
	)
	p, waits := instantRetry(mock, 3)

	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{3 * time.Second}, *waits)
}

func TestRetryWaitIsCapped(t *testing.T) {
	mock := NewMockProvider(down(), down(), down(), down(), down(), okReply)
	p, waits := instantRetry(mock, 6)

	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	for _, w := range *waits {
		assert.True(t, w <= 1200*time.Millisecond, "wait %s", w)
	}
}

func TestRetryInvalidOutputOnce(t *testing.T) {
	bad := MockResponse{Err: &Error{Kind: KindInvalidOutput}}
	mock := NewMockProvider(bad, bad, okReply)
	p, _ := instantRetry(mock, 5)

	_, err := p.Generate(context.Background(), Request{})
	assert.True(t, IsKind(err, KindInvalidOutput))
	assert.Equal(t, 2, mock.CallCount())
}

func TestRetrySkipsTruncated(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &Error{Kind: KindTruncated}}, okReply)
	p, _ := instantRetry(mock, 3)

	_, err := p.Generate(context.Background(), Request{})
	assert.True(t, IsKind(err, KindTruncated))
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	mock := NewMockProvider(down(), okReply)
	p, _ := instantRetry(mock, 3)

	_, err := p.Generate(ctx, Request{})
	require.Error(t, err)
	assert.Equal(t, 1, mock.CallCount())
}

func TestSleepCtxCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepCtx(ctx, time.Hour), context.Canceled)
	assert.NoError(t, sleepCtx(context.Background(), time.Millisecond))
}

type blocking struct{ MockProvider }

func (*blocking) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestTimeout(t *testing.T) {
	p := WithTimeout(&blocking{}, 10*time.Millisecond)
	_, err := p.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	mock := NewMockProvider()
	assert.Same(t, Provider(mock), WithTimeout(mock, 0))
}

package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind classifies a failed generation.
type Kind int

const (
	// KindUnavailable covers transport failures, server errors and
	// anything a provider does not classify further.
	KindUnavailable Kind = iota
	KindRateLimited
	// KindInvalidOutput means the reply was not JSON of the requested shape.
	KindInvalidOutput
	// KindTruncated means the reply hit MaxTokens.
	KindTruncated
)

func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate limited"
	case KindInvalidOutput:
		return "invalid output"
	case KindTruncated:
		return "output truncated"
	default:
		return "provider unavailable"
	}
}

// Error is the error providers return for a failed generation.
type Error struct {
	Kind Kind

	// RetryAfter is the wait a rate-limited provider asked for, if any.
	RetryAfter time.Duration

	// Content is the rejected reply for invalid or truncated output.
	Content json.RawMessage

	Err error
}

func (e *Error) Error() string {
	msg := "llm: " + e.Kind.String()
	if e.RetryAfter > 0 {
		msg += fmt.Sprintf(" (retry after %s)", e.RetryAfter)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// ErrNoResponse is returned by a MockProvider whose queue is empty.
var ErrNoResponse = errors.New("no canned response left")

// IsKind reports whether err wraps an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// fromStatus wraps an SDK error by its HTTP status.
func fromStatus(status int, err error) error {
	if status == http.StatusTooManyRequests {
		return &Error{Kind: KindRateLimited, Err: err}
	}
	return &Error{Kind: KindUnavailable, Err: err}
}

// Package llm sends single-turn prompts to hosted language models and
// returns JSON that matches the requested schema. Decorators add retries
// and record every call in the event log.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one response per request.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model requests are sent to.
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	System string
	Prompt string

	// Schema, when set, asks the provider for JSON of that shape and the
	// response is validated against it. Without a schema the reply text
	// is returned as a JSON string.
	Schema *Schema

	MaxTokens int

	// Temperature 0 leaves the provider default.
	Temperature float64
}

// StopReason says why generation ended.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response is a validated model reply.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string // the model that served the request
	Stop    StopReason
}

// Usage counts the tokens of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total returns input plus output tokens.
func (u Usage) Total() int { return u.InputTokens + u.OutputTokens }

// complete turns the reply text of a provider into a Response. Truncated
// structured output is rejected before validation so the caller can tell
// it apart from a malformed reply.
func complete(req Request, text string, usage Usage, model string, stop StopReason) (*Response, error) {
	if req.Schema == nil {
		content, err := json.Marshal(text)
		if err != nil {
			return nil, &Error{Kind: KindInvalidOutput, Err: err}
		}
		return &Response{Content: content, Usage: usage, Model: model, Stop: stop}, nil
	}

	content := json.RawMessage(text)
	if stop == StopMaxTokens {
		return nil, &Error{Kind: KindTruncated, Content: content}
	}
	if err := req.Schema.Validate(content); err != nil {
		return nil, err
	}
	return &Response{Content: content, Usage: usage, Model: model, Stop: stop}, nil
}

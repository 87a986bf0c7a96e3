package llm

import "context"

// Purpose labels what a request is for in the event log.
type Purpose string

const (
	PurposeExplain Purpose = "explain"
	PurposeAdvice  Purpose = "advice"
	PurposeUnknown Purpose = "unknown"
)

type purposeKey struct{}

// WithPurpose tags requests made with ctx.
func WithPurpose(ctx context.Context, p Purpose) context.Context {
	return context.WithValue(ctx, purposeKey{}, p)
}

// PurposeFrom returns the tag set by WithPurpose, or PurposeUnknown.
func PurposeFrom(ctx context.Context) Purpose {
	if p, ok := ctx.Value(purposeKey{}).(Purpose); ok {
		return p
	}
	return PurposeUnknown
}

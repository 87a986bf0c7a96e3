package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit    int       // max results (0 = unlimited)
	After    int64     // sequence > After
	Before   int64     // sequence < Before
	From     time.Time // timestamp >= From
	To       time.Time // timestamp <= To
	Username string    // answer and gem events only; empty = all users
}

// AnswerEventData captures one graded quiz answer.
type AnswerEventData struct {
	SessionID     string
	Username      string
	Level         string
	Symbol        string
	Prompt        string
	Choice        string
	CorrectAnswer string
	Correct       bool
}

// AnswerEventRecord is a stored answer event.
type AnswerEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// AnswerSummary aggregates answer events per element symbol.
type AnswerSummary struct {
	Symbol   string
	Attempts int
	Correct  int
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM events by purpose or model.
type LLMUsage struct {
	Key          string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// GemEventData captures one awarded gem.
type GemEventData struct {
	SessionID string
	Username  string
	GemType   string
	Rarity    string
	Level     string // empty unless the gem is tied to a level
	Reason    string
}

// GemEventRecord is a stored gem event.
type GemEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	GemEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendAnswer records a graded quiz answer.
	AppendAnswer(ctx context.Context, data AnswerEventData) error

	// QueryAnswers returns answer events, newest first.
	QueryAnswers(ctx context.Context, opts QueryOpts) ([]AnswerEventRecord, error)

	// AnswerSummaryByUser aggregates a user's answers per element, weakest first.
	AnswerSummaryByUser(ctx context.Context, username string) ([]AnswerSummary, error)

	// DeleteAnswers removes every answer event of username and returns the count.
	DeleteAnswers(ctx context.Context, username string) (int, error)

	// AppendGemEvent records an awarded gem.
	AppendGemEvent(ctx context.Context, data GemEventData) error

	// QueryGemEvents returns gem events, newest first.
	QueryGemEvents(ctx context.Context, opts QueryOpts) ([]GemEventRecord, error)

	// GemCounts returns username's gem count per type and in total.
	GemCounts(ctx context.Context, username string) (map[string]int, int, error)

	// DeleteGemEvents removes every gem event of username and returns the count.
	DeleteGemEvents(ctx context.Context, username string) (int, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns one LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}

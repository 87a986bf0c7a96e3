package llm

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/chemiz/internal/store"
)

type recorder struct {
	Provider
	name   string
	events store.EventRepo
	logger *slog.Logger
}

// WithRecorder appends one LLM request event per call to events. name
// identifies the backend in the stored events. A failed write is logged
// and never fails the call.
func WithRecorder(p Provider, name string, events store.EventRepo, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &recorder{Provider: p, name: name, events: events, logger: logger}
}

func (r *recorder) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := r.Provider.Generate(ctx, req)
	elapsed := time.Since(start)

	purpose := PurposeFrom(ctx)
	data := store.LLMRequestEventData{
		Provider:    r.name,
		Model:       r.ModelID(),
		Purpose:     string(purpose),
		LatencyMs:   elapsed.Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	r.logger.Debug("llm request", "provider", r.name, "purpose", purpose,
		"latency", elapsed, "success", data.Success)
	if werr := r.events.AppendLLMRequest(ctx, data); werr != nil {
		r.logger.Warn("record llm request", "error", werr)
	}
	return resp, err
}

// transcript renders a request the way `chemiz llm view` shows it.
func transcript(req Request) string {
	var b strings.Builder
	if req.System != "" {
		b.WriteString("[system]\n" + req.System + "\n\n")
	}
	b.WriteString("[user]\n" + req.Prompt + "\n")
	if req.Schema != nil {
		b.WriteString("\n[schema: " + req.Schema.Name + "]\n")
	}
	return b.String()
}

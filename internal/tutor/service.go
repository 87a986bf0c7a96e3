// Package tutor asks an LLM to explain wrong answers and to turn a
// learner's answer history into study advice.
package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/chemiz/internal/llm"
)

// ErrDisabled is returned when no LLM provider is configured.
var ErrDisabled = errors.New("tutor is not configured")

// MaxAdviceElements caps the history sent with an advice request.
const MaxAdviceElements = 15

// Service generates explanations and advice. A Service with a nil
// provider is valid and returns ErrDisabled.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a tutor service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Enabled reports whether a provider is configured.
func (s *Service) Enabled() bool {
	return s != nil && s.provider != nil
}

type explanationOutput struct {
	Explanation string `json:"explanation"`
	Mnemonic    string `json:"mnemonic"`
}

// Explain asks for an explanation of a wrongly answered question. It
// blocks until the provider answers; hosts run it off the UI loop.
func (s *Service) Explain(ctx context.Context, in ExplainInput) (*Explanation, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeExplain)

	req := llm.Request{
		System:      explainSystemPrompt,
		Prompt:      buildExplainUserMessage(in),
		Schema:      ExplanationSchema,
		MaxTokens:   s.cfg.ExplainMaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("explanation: %w", err)
	}

	var out explanationOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse explanation response: %w", err)
	}

	return &Explanation{
		Symbol:      in.Element.Symbol,
		Explanation: out.Explanation,
		Mnemonic:    out.Mnemonic,
	}, nil
}

type adviceOutput struct {
	Summary string   `json:"summary"`
	Focus   []string `json:"focus"`
	Tips    []string `json:"tips"`
}

// Advise asks for study advice from a learner's answer history.
func (s *Service) Advise(ctx context.Context, in AdviceInput) (*Advice, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeAdvice)

	if len(in.Elements) > MaxAdviceElements {
		in.Elements = in.Elements[:MaxAdviceElements]
	}

	req := llm.Request{
		System:      adviceSystemPrompt,
		Prompt:      buildAdviceUserMessage(in),
		Schema:      AdviceSchema,
		MaxTokens:   s.cfg.AdviceMaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("study advice: %w", err)
	}

	var out adviceOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse advice response: %w", err)
	}

	return &Advice{Summary: out.Summary, Focus: out.Focus, Tips: out.Tips}, nil
}

package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/chemiz/internal/catalog"
	"github.com/abhisek/chemiz/internal/llm"
	"github.com/abhisek/chemiz/internal/quiz"
	"github.com/abhisek/chemiz/internal/store"
	"github.com/abhisek/chemiz/internal/users"
)

func oxygenInput(t *testing.T) ExplainInput {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	o, ok := cat.Get("O")
	if !ok {
		t.Fatal("oxygen missing from catalog")
	}
	return ExplainInput{
		Element: o,
		Question: quiz.Question{
			Prompt:  "What is the valency of O?",
			Options: []string{"I", "II", "IV", "0"},
			Correct: "II",
			Symbol:  "O",
			Level:   quiz.LevelMedium,
		},
		Choice: "IV",
	}
}

func TestExplain(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"explanation":"Oxygen needs two electrons to fill its shell.","mnemonic":"O owes two"}`),
	})
	svc := NewService(mock, DefaultConfig())

	got, err := svc.Explain(context.Background(), oxygenInput(t))
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	if got.Symbol != "O" || got.Mnemonic != "O owes two" {
		t.Errorf("unexpected explanation: %+v", got)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	req := mock.Requests()[0]
	if req.Schema != ExplanationSchema {
		t.Error("expected explanation schema")
	}
	msg := req.Prompt
	for _, want := range []string{"Student chose: IV", "Correct answer: II", "Oxygen (O)", "Valencies: II"} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q:\n%s", want, msg)
		}
	}
}

func TestExplain_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.Error{Kind: llm.KindRateLimited}})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Explain(context.Background(), oxygenInput(t))
	if !llm.IsKind(err, llm.KindRateLimited) {
		t.Fatalf("expected a rate limit error, got %v", err)
	}
}

func TestDisabled(t *testing.T) {
	svc := NewService(nil, DefaultConfig())
	if svc.Enabled() {
		t.Fatal("nil provider should disable the tutor")
	}
	if _, err := svc.Explain(context.Background(), ExplainInput{}); !errors.Is(err, ErrDisabled) {
		t.Errorf("Explain error = %v", err)
	}
	if _, err := svc.Advise(context.Background(), AdviceInput{}); !errors.Is(err, ErrDisabled) {
		t.Errorf("Advise error = %v", err)
	}
}

func TestAdvise_TruncatesHistory(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"summary":"Good start.","focus":["Fe","Na"],"tips":["Review transition metals"]}`),
	})
	svc := NewService(mock, DefaultConfig())

	var history []store.AnswerSummary
	for i := 0; i < MaxAdviceElements+5; i++ {
		history = append(history, store.AnswerSummary{Symbol: "X" + string(rune('a'+i)), Attempts: 2})
	}

	got, err := svc.Advise(context.Background(), AdviceInput{
		Username: "alice",
		Account:  users.Stats{TestsCompleted: 4, CorrectAnswers: 3, TotalQuestions: 4},
		Elements: history,
	})
	if err != nil {
		t.Fatalf("Advise: %v", err)
	}
	if len(got.Focus) != 2 || got.Focus[0] != "Fe" {
		t.Errorf("Focus = %v", got.Focus)
	}

	msg := mock.Requests()[0].Prompt
	if !strings.Contains(msg, "Overall: 3 of 4 correct (75%)") {
		t.Errorf("prompt missing overall line:\n%s", msg)
	}
	if got := strings.Count(msg, "\n- X"); got != MaxAdviceElements {
		t.Errorf("prompt lists %d elements, want %d", got, MaxAdviceElements)
	}
}

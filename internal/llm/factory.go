package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/chemiz/internal/store"
)

// NewProvider builds the configured provider. Calls go through a timeout,
// then retries, then the event recorder when eventRepo is set.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *slog.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if eventRepo != nil {
		base = WithRecorder(base, cfg.Provider, eventRepo, logger)
	}
	return WithTimeout(WithRetry(base, cfg.Retry), cfg.Timeout), nil
}

// NewProviderFromEnv resolves the configuration from the environment and
// builds a provider. It returns (nil, nil) when no provider is configured.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo, logger *slog.Logger) (Provider, error) {
	cfg, ok, err := ResolveConfig()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return NewProvider(ctx, cfg, eventRepo, logger)
}

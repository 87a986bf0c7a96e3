package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config selects and configures the tutor's model provider.
type Config struct {
	// Provider is one of anthropic, openai, gemini, openrouter or mock.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call, retries included.
	Timeout time.Duration

	// Disabled turns the tutor off even when an API key is present.
	Disabled bool
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // empty for api.openai.com
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string // empty for openrouter.ai
}

// RetryConfig shapes the backoff of WithRetry.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// modelAliases maps the short names accepted in configuration to model IDs.
var modelAliases = map[string]string{
	"claude-haiku":  "claude-haiku-4-5-20251001",
	"claude-sonnet": "claude-sonnet-4-5-20250929",
	"gemini-flash":  "gemini-2.5-flash",
	"gemini-pro":    "gemini-2.5-pro",
}

// resolveModel expands an alias. Anything else is used as a model ID.
func resolveModel(name string) string {
	if id, ok := modelAliases[name]; ok {
		return id
	}
	return name
}

// DefaultConfig uses each provider's small, cheap model.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 20 * time.Second,
	}
}

// backend points at the settings of one provider inside a Config.
type backend struct {
	name    string
	stdKey  string // the provider's own API key variable
	key     *string
	model   *string
	baseURL *string // nil when the provider has no endpoint override
}

// backends lists c's providers in discovery order.
func (c *Config) backends() []backend {
	return []backend{
		{"gemini", "GEMINI_API_KEY", &c.Gemini.APIKey, &c.Gemini.Model, nil},
		{"openai", "OPENAI_API_KEY", &c.OpenAI.APIKey, &c.OpenAI.Model, &c.OpenAI.BaseURL},
		{"anthropic", "ANTHROPIC_API_KEY", &c.Anthropic.APIKey, &c.Anthropic.Model, nil},
		{"openrouter", "OPENROUTER_API_KEY", &c.OpenRouter.APIKey, &c.OpenRouter.Model, &c.OpenRouter.BaseURL},
	}
}

func (c *Config) backend(name string) (backend, bool) {
	for _, b := range c.backends() {
		if b.name == name {
			return b, true
		}
	}
	return backend{}, false
}

func setFromEnv(dst *string, name string) {
	if v := os.Getenv(name); v != "" && dst != nil {
		*dst = v
	}
}

// ConfigFromEnv overlays CHEMIZ_* variables on DefaultConfig. Each
// provider reads CHEMIZ_<PROVIDER>_API_KEY, _MODEL and, where it has an
// endpoint, _BASE_URL.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	setFromEnv(&cfg.Provider, "CHEMIZ_LLM_PROVIDER")
	switch strings.ToLower(os.Getenv("CHEMIZ_TUTOR")) {
	case "off", "0", "false", "no":
		cfg.Disabled = true
	}

	for _, b := range cfg.backends() {
		prefix := "CHEMIZ_" + strings.ToUpper(b.name) + "_"
		setFromEnv(b.key, prefix+"API_KEY")
		setFromEnv(b.model, prefix+"MODEL")
		setFromEnv(b.baseURL, prefix+"BASE_URL")
	}
	return cfg
}

// DiscoverConfig selects the first provider whose standard API key
// variable (GEMINI_API_KEY, OPENAI_API_KEY, ...) is set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, b := range cfg.backends() {
		if k := os.Getenv(b.stdKey); k != "" {
			cfg.Provider, *b.key = b.name, k
			return cfg, true
		}
	}
	return Config{}, false
}

// ResolveConfig returns the configuration the tutor should use. An
// explicit CHEMIZ_LLM_PROVIDER wins; otherwise the standard API key
// variables are probed. ok is false when no provider is configured or
// the tutor is switched off.
func ResolveConfig() (cfg Config, ok bool, err error) {
	explicit := ConfigFromEnv()
	if explicit.Disabled {
		return Config{}, false, nil
	}
	if os.Getenv("CHEMIZ_LLM_PROVIDER") != "" {
		if err := explicit.Validate(); err != nil {
			return Config{}, false, err
		}
		return explicit, true, nil
	}

	cfg, ok = DiscoverConfig()
	return cfg, ok, nil
}

// Validate checks that the selected provider is known and has a key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	b, ok := c.backend(c.Provider)
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if *b.key == "" {
		return fmt.Errorf("CHEMIZ_%s_API_KEY is required for the %s provider", strings.ToUpper(b.name), b.name)
	}
	return nil
}

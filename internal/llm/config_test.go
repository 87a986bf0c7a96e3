package llm

import "testing"

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CHEMIZ_LLM_PROVIDER", "CHEMIZ_TUTOR", "CHEMIZ_ANTHROPIC_API_KEY", "CHEMIZ_OPENAI_API_KEY",
		"CHEMIZ_GEMINI_API_KEY", "CHEMIZ_OPENROUTER_API_KEY",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"CHEMIZ_ANTHROPIC_MODEL", "CHEMIZ_OPENAI_MODEL", "CHEMIZ_GEMINI_MODEL", "CHEMIZ_OPENROUTER_MODEL",
		"CHEMIZ_OPENAI_BASE_URL", "CHEMIZ_OPENROUTER_BASE_URL",
	} {
		t.Setenv(k, "")
	}
}

func TestResolveConfig_NothingConfigured(t *testing.T) {
	clearLLMEnv(t)

	_, ok, err := ResolveConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected no provider")
	}
}

func TestResolveConfig_DiscoversStandardKey(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, ok, err := ResolveConfig()
	if err != nil || !ok {
		t.Fatalf("ResolveConfig() = %v, %v", ok, err)
	}
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-test" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestResolveConfig_ExplicitProviderRequiresKey(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("CHEMIZ_LLM_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "ignored")

	if _, _, err := ResolveConfig(); err == nil {
		t.Fatal("expected missing CHEMIZ_ANTHROPIC_API_KEY error")
	}

	t.Setenv("CHEMIZ_ANTHROPIC_API_KEY", "key")
	cfg, ok, err := ResolveConfig()
	if err != nil || !ok || cfg.Provider != "anthropic" {
		t.Fatalf("ResolveConfig() = %+v, %v, %v", cfg, ok, err)
	}
}

func TestResolveConfig_TutorOff(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("CHEMIZ_TUTOR", "off")

	if _, ok, _ := ResolveConfig(); ok {
		t.Fatal("CHEMIZ_TUTOR=off should disable the provider")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "mock"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("mock should validate: %v", err)
	}
	cfg.Provider = "bogus"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected unknown provider error")
	}
}

func TestConfigFromEnv_PerProviderOverrides(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("CHEMIZ_OPENAI_MODEL", "gpt-4.1-mini")
	t.Setenv("CHEMIZ_OPENAI_BASE_URL", "http://localhost:11434/v1")
	t.Setenv("CHEMIZ_OPENROUTER_BASE_URL", "http://proxy/v1")
	t.Setenv("CHEMIZ_GEMINI_API_KEY", "g")

	cfg := ConfigFromEnv()
	if cfg.OpenAI.Model != "gpt-4.1-mini" || cfg.OpenAI.BaseURL != "http://localhost:11434/v1" {
		t.Errorf("openai overrides not applied: %+v", cfg.OpenAI)
	}
	if cfg.OpenRouter.BaseURL != "http://proxy/v1" {
		t.Errorf("openrouter base URL = %q", cfg.OpenRouter.BaseURL)
	}
	if cfg.Gemini.APIKey != "g" || cfg.Gemini.Model != "gemini-flash" {
		t.Errorf("gemini = %+v", cfg.Gemini)
	}
	if cfg.Provider != "anthropic" {
		t.Errorf("default provider = %q", cfg.Provider)
	}
}

func TestDiscoverConfig_Priority(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "or")
	t.Setenv("ANTHROPIC_API_KEY", "an")

	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != "anthropic" || cfg.Anthropic.APIKey != "an" {
		t.Fatalf("DiscoverConfig() = %+v, %v", cfg, ok)
	}
}

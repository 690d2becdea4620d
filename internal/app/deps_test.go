package app

import (
	"context"
	"strings"
	"testing"

	"rephraser/internal/action"
	"rephraser/internal/config"
	"rephraser/internal/errs"
)

func TestNewLLMClientDispatch(t *testing.T) {
	t.Setenv("TEST_API_KEY", "secret")

	tests := []struct {
		name     string
		cfg      config.LLMConfig
		provider string
	}{
		{
			name:     "openai",
			cfg:      config.LLMConfig{Provider: "openai", Model: "gpt-4o-mini", APIKeyEnv: "TEST_API_KEY", Parameters: config.Parameters{Temperature: 0.7, MaxTokens: 500}},
			provider: "openai",
		},
		{
			name:     "anthropic",
			cfg:      config.LLMConfig{Provider: "anthropic", Model: "claude-sonnet-4", APIKeyEnv: "TEST_API_KEY", Parameters: config.Parameters{Temperature: 0.7, MaxTokens: 500}},
			provider: "anthropic",
		},
		{
			name:     "mock needs no key",
			cfg:      config.LLMConfig{Provider: "mock", Model: "anything"},
			provider: "mock",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewLLMClient(tt.cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if client.ProviderName() != tt.provider {
				t.Errorf("expected provider %s, got %s", tt.provider, client.ProviderName())
			}
		})
	}
}

func TestNewLLMClientUnknownProvider(t *testing.T) {
	_, err := NewLLMClient(config.LLMConfig{Provider: "bard", Model: "x"})
	if errs.KindOf(err) != errs.KindConfig {
		t.Errorf("unknown provider should be a config error, got %v", err)
	}
}

func TestNewLLMClientMissingKey(t *testing.T) {
	t.Setenv("DEFINITELY_UNSET_KEY", "")

	_, err := NewLLMClient(config.LLMConfig{Provider: "openai", Model: "gpt-4o-mini", APIKeyEnv: "DEFINITELY_UNSET_KEY"})
	if errs.KindOf(err) != errs.KindConfig {
		t.Fatalf("missing key should be a config error, got %v", err)
	}
	if !strings.Contains(err.Error(), "DEFINITELY_UNSET_KEY") {
		t.Errorf("error should name the env var: %v", err)
	}

	_, err = NewLLMClient(config.LLMConfig{Provider: "anthropic", Model: "claude-sonnet-4"})
	if errs.KindOf(err) != errs.KindConfig {
		t.Errorf("empty api_key_env should be a config error, got %v", err)
	}
}

// The resolver and the mock client compose into a full pipeline without
// network or credentials.
func TestPipelineWithMock(t *testing.T) {
	resolver := action.NewResolver(config.Default().Actions)
	client, err := NewLLMClient(config.LLMConfig{Provider: "mock", Model: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompt, err := resolver.Resolve("polite", "よろしく")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	result, err := client.Complete(context.Background(), prompt)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !strings.Contains(result, "お元気でしょうか") {
		t.Errorf("expected the canned polite response, got %q", result)
	}
}

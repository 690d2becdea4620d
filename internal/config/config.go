// Package config owns the TOML configuration file and its defaults. The
// file lives at ~/.rephraser/config.toml; a handful of environment variables
// override individual fields per invocation.
package config

import (
	"log/slog"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"

	"rephraser/internal/errs"
)

// Config is the full on-disk configuration.
type Config struct {
	LLM     LLMConfig    `toml:"llm"`
	Output  OutputConfig `toml:"output"`
	Actions []Action     `toml:"actions" validate:"min=1,dive"`
}

// LLMConfig selects and parameterizes the provider.
type LLMConfig struct {
	// Provider is one of "openai", "anthropic", "mock".
	Provider string `toml:"provider" validate:"required,oneof=openai anthropic mock"`

	// Model is the provider-specific model identifier.
	Model string `toml:"model" validate:"required"`

	// APIKeyEnv names the environment variable holding the API key. The
	// key itself never appears in the config file.
	APIKeyEnv string `toml:"api_key_env"`

	Parameters Parameters `toml:"parameters"`
}

// Parameters are passed through to the provider unchanged. Temperature is
// deliberately not range-checked; valid ranges differ per vendor and the
// vendor rejects out-of-range values itself.
type Parameters struct {
	Temperature float64 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens" validate:"gt=0"`
}

// OutputConfig selects how the completion is delivered.
type OutputConfig struct {
	// Method is one of "stdout", "clipboard", "notification", "dialog".
	Method string `toml:"method" validate:"required,oneof=stdout clipboard notification dialog"`
}

// Action is one named text transformation. Name uniqueness is not enforced;
// lookup is by first match.
type Action struct {
	Name           string `toml:"name" validate:"required"`
	DisplayName    string `toml:"display_name"`
	PromptTemplate string `toml:"prompt_template" validate:"required"`
}

// Env holds per-invocation environment overrides.
type Env struct {
	ConfigPath string `env:"REPHRASER_CONFIG"`
	Provider   string `env:"REPHRASER_PROVIDER"`
	Model      string `env:"REPHRASER_MODEL"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	Port       int    `env:"PORT" envDefault:"8080"`
}

// LoadEnv reads overrides from environment variables with defaults.
func LoadEnv() Env {
	var e Env
	if err := env.Parse(&e); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return e
}

// Apply merges env overrides into a loaded config.
func (e Env) Apply(cfg *Config) {
	if e.Provider != "" {
		cfg.LLM.Provider = e.Provider
	}
	if e.Model != "" {
		cfg.LLM.Model = e.Model
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks structural invariants. Duplicate action names are not
// rejected here; the resolver takes the first match.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errs.Wrap(errs.KindConfig, err, "invalid configuration")
	}
	return nil
}

// Default returns the built-in configuration: OpenAI with the three stock
// Japanese actions.
func Default() Config {
	return Config{
		LLM: LLMConfig{
			Provider:  "openai",
			Model:     "gpt-4o-mini",
			APIKeyEnv: "OPENAI_API_KEY",
			Parameters: Parameters{
				Temperature: 0.7,
				MaxTokens:   500,
			},
		},
		Output: OutputConfig{Method: "notification"},
		Actions: []Action{
			{
				Name:           "polite",
				DisplayName:    "丁寧に",
				PromptTemplate: "以下のテキストを丁寧な表現に変換してください。元の意味を保ったまま、敬語や丁寧語を適切に使用してください。\n\nテキスト:\n{text}\n\n丁寧な表現:",
			},
			{
				Name:           "organize",
				DisplayName:    "整理する",
				PromptTemplate: "以下のテキストを論理的に整理し、読みやすく構造化してください。\n\nテキスト:\n{text}\n\n整理されたテキスト:",
			},
			{
				Name:           "summarize",
				DisplayName:    "要約",
				PromptTemplate: "以下のテキストを簡潔に要約してください。\n\nテキスト:\n{text}\n\n要約:",
			},
		},
	}
}

// Package app wires the runtime dependencies: env, config, logger, and the
// action resolver. The LLM client and the output sink are built on demand
// because not every command needs a credential or a sink.
package app

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"rephraser/internal/action"
	"rephraser/internal/config"
	"rephraser/internal/errs"
	"rephraser/internal/llm"
	"rephraser/internal/logger"
	"rephraser/internal/output"
)

// Deps bundles common runtime dependencies for commands.
type Deps struct {
	Config   config.Config
	Env      config.Env
	Log      *slog.Logger
	Manager  *config.Manager
	Resolver *action.Resolver
}

// Build loads env, config, and shared components. Everything is rebuilt per
// invocation; no process state outlives a command.
func Build() (Deps, error) {
	// A .env file is optional for a CLI; ignore its absence.
	_ = godotenv.Load()

	env := config.LoadEnv()
	log := logger.New(env.LogLevel)

	mgr, err := config.NewManager(env.ConfigPath)
	if err != nil {
		return Deps{}, err
	}
	cfg, err := mgr.Load()
	if err != nil {
		return Deps{}, err
	}
	env.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return Deps{}, err
	}

	return Deps{
		Config:   cfg,
		Env:      env,
		Log:      log,
		Manager:  mgr,
		Resolver: action.NewResolver(cfg.Actions),
	}, nil
}

// NewLLMClient constructs the provider variant named by the config. The API
// key is read here, from the configured environment variable, and handed to
// the client; nothing below this layer touches the environment.
func NewLLMClient(cfg config.LLMConfig) (llm.Client, error) {
	params := llm.Params{
		Temperature: cfg.Parameters.Temperature,
		MaxTokens:   cfg.Parameters.MaxTokens,
	}

	switch cfg.Provider {
	case "openai":
		key, err := apiKey(cfg)
		if err != nil {
			return nil, err
		}
		return llm.NewOpenAIClient(key, cfg.Model, params)
	case "anthropic":
		key, err := apiKey(cfg)
		if err != nil {
			return nil, err
		}
		return llm.NewAnthropicClient(key, cfg.Model, params)
	case "mock":
		return llm.NewMockClient(), nil
	default:
		return nil, errs.New(errs.KindConfig, "unknown provider: %s", cfg.Provider)
	}
}

// NewSink constructs the configured output sink.
func NewSink(method string) (output.Sink, error) {
	return output.New(method)
}

func apiKey(cfg config.LLMConfig) (string, error) {
	if cfg.APIKeyEnv == "" {
		return "", errs.New(errs.KindConfig, "api_key_env is not set for provider %s", cfg.Provider)
	}
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return "", errs.New(errs.KindConfig, "environment variable %q not found", cfg.APIKeyEnv)
	}
	return key, nil
}

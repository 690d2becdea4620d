// Package llm defines the provider-agnostic completion contract and its
// interchangeable implementations: OpenAI, Anthropic, and a deterministic
// mock. Callers see one operation and the shared error taxonomy; everything
// vendor-specific stays inside the variant files, which share no code.
package llm

import "context"

// Client is the capability contract for one configured provider instance.
// Instances are immutable after construction and safe for concurrent
// Complete calls.
type Client interface {
	// Complete sends one single-turn user prompt and returns the
	// completion text, or a classified error from the errs taxonomy.
	Complete(ctx context.Context, prompt string) (string, error)

	// ProviderName is the stable vendor key, e.g. "openai".
	ProviderName() string

	// ModelName is the model identifier this instance was built with.
	ModelName() string
}

// Params bounds a completion request. Bound once at construction.
// Temperature is passed through unvalidated; ranges are vendor-defined.
type Params struct {
	Temperature float64
	MaxTokens   int
}

// DefaultParams mirrors the stock configuration.
func DefaultParams() Params {
	return Params{Temperature: 0.7, MaxTokens: 500}
}

package driven

import "context"

// LLMService is the abstract language-model client behind the
// assistant features. The core never retries a failed call; retry
// policy, if any, belongs to the implementation or the caller.
//
// Implementations may include:
//   - OpenAI (GPT models)
//   - any chat-completions compatible API
type LLMService interface {
	// Complete produces a single-turn completion from a system and a
	// user prompt. Callers supply a deadline through ctx; a deadline
	// overrun surfaces as a timeout, never as a hang.
	Complete(ctx context.Context, systemPrompt, userPrompt string, opts CompleteOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}

// CompleteOptions configures text generation behaviour.
type CompleteOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}

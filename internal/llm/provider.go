package llm

// Package llm wraps generative text providers behind a single interface so
// the reasoner can run against any of them, or against none at all.

import "context"

// Provider defines the interface for generative reasoning services.
// Implementations make a single attempt per call; retries are the caller's
// decision (the verdict reasoner deliberately makes none).
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate sends a prompt and returns the raw model text. No response
	// schema is assumed; callers recover structure themselves.
	Generate(ctx context.Context, prompt string, temperature float32) (string, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Config holds generative provider configuration
type Config struct {
	// Provider name: "gemini", "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for Gemini/OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama, API-compatible gateways)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // disabled by default
		Timeout:   30,
		MaxTokens: 1000,
	}
}

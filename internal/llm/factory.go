package llm

import (
	"fmt"
	"strings"
)

// NewProvider creates a generative provider based on configuration.
// An empty provider name returns (nil, nil): the reasoner treats a nil
// provider as "run rule-based only".
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "gemini", "google":
		return NewGeminiProvider(config)

	case "openai":
		return NewOpenAIProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown provider: %s (supported: gemini, openai, ollama)", config.Provider)
	}
}

package llm

import (
	"context"
	"fmt"
)

// Client is an abstraction over LLM providers.
// Implementations are thin adapters: no retries, one upstream call per method invocation,
// bounded by the configured timeout. Failures are returned as *CompletionError.
type Client interface {
	// GenerateContent generates free-form text (markdown) for a system instruction and user prompt
	GenerateContent(ctx context.Context, system, prompt string, tier ModelTier) (string, error)
	// GenerateJSON generates a JSON document for a system instruction and user prompt
	GenerateJSON(ctx context.Context, system, prompt string, tier ModelTier) (string, error)
	// GetModel returns the provider model identifier used for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	case ProviderOpenAI:
		return NewOpenAIClient(config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}

// resolveModel returns the model for a tier or a configuration error.
func resolveModel(config *Config, tier ModelTier) (string, error) {
	modelName := config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}
	return modelName, nil
}

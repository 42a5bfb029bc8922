package llm

import (
	"context"
	"fmt"

	"mathmystery/internal/store"
)

// EventSink receives a record of every LLM request for the event log.
// *store.Store satisfies it.
type EventSink interface {
	AppendLLMEvent(ctx context.Context, data store.LLMEventData) error
}

// NewProvider creates a Provider from configuration, wrapped with retry
// and event-logging middleware. sink may be nil to disable logging.
func NewProvider(ctx context.Context, cfg Config, sink EventSink) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Middleware order: caller → retry → logging → base, so every
	// attempt shows up in the event log.
	wrapped := WithLogging(base, sink)
	return WithRetry(wrapped, cfg.Retry), nil
}

// NewProviderFromEnv builds a provider from environment configuration.
func NewProviderFromEnv(ctx context.Context, sink EventSink) (Provider, error) {
	return NewProvider(ctx, ConfigFromEnv(), sink)
}

package llm

import (
	"context"
	"errors"
	"fmt"

	"gemini-rag/internal/config"
)

// ErrMissingAPIKey is returned by NewClient when the selected provider has
// no credential. The service keeps running; requests that need generation
// fail with a service-level detail instead.
var ErrMissingAPIKey = errors.New("no API key configured for LLM provider")

// LLM is the interface every text-generation client implements. The system
// instruction is passed separately so providers that support a dedicated
// system directive can use it.
type LLM interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// NewClient is a factory returning the generation client selected by the
// configuration.
func NewClient(ctx context.Context, cfg config.LLMConfig) (LLM, error) {
	switch cfg.Provider {
	case "gemini":
		if cfg.Gemini.APIKey == "" {
			return nil, ErrMissingAPIKey
		}
		return NewGemini(ctx, cfg.Gemini.Model, cfg.Gemini.APIKey)
	case "openai":
		if cfg.OpenAI.APIKey == "" {
			return nil, ErrMissingAPIKey
		}
		return NewOpenAI(cfg.OpenAI.Model, cfg.OpenAI.APIKey), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

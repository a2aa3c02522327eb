package embedding

import (
	"context"
	"fmt"

	"gemini-rag/internal/config"
)

// New is a factory returning the embedding client selected by the
// configuration. It returns nil (and no error) when the selected provider
// has no credential: the caller then falls back to the store's local
// default and reports the degradation.
func New(ctx context.Context, cfg config.EmbeddingConfig) (Embedding, error) {
	switch cfg.Provider {
	case ProviderGemini:
		if cfg.Gemini.APIKey == "" {
			return nil, nil
		}
		return NewGoogleModel(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	case ProviderOpenAI:
		if cfg.OpenAI.APIKey == "" {
			return nil, nil
		}
		return NewOpenAIModel(cfg.OpenAI.APIKey, cfg.OpenAI.Model), nil
	case ProviderLocal:
		return NewLocalModel(), nil
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}

package embedding

import (
	"context"

	"github.com/philippgille/chromem-go"
)

// Embedding is the interface every embedding provider implements.
type Embedding interface {
	// Embed maps a single text to its vector representation.
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Provider names accepted in the configuration.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderLocal  = "local"
)

// ChromemFunc adapts an Embedding to the function type the vector store
// invokes for both ingestion and querying.
func ChromemFunc(e Embedding) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		return e.Embed(ctx, text)
	}
}

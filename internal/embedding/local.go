package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

const localDim = 256

// LocalModel is the degraded, credential-free fallback: a deterministic
// hashed bag-of-words vector. Retrieval quality is far below a real
// embedding model; the gateway reports its use through health
// introspection so the degradation is never silent.
type LocalModel struct{}

// NewLocalModel returns the fallback embedder.
func NewLocalModel() *LocalModel { return &LocalModel{} }

// Embed hashes the lower-cased tokens of text into a fixed-size vector
// and L2-normalizes it so cosine similarity behaves.
func (m *LocalModel) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, localDim)
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(tok))
		vec[h.Sum32()%localDim]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		// An empty text still needs a valid unit vector.
		vec[0] = 1
		return vec, nil
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec, nil
}

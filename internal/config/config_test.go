package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Server.Addr != ":8000" {
		t.Errorf("addr = %s, expected :8000", cfg.Server.Addr)
	}
	if cfg.Store.CollectionName != "rag_collection" {
		t.Errorf("collection = %s, expected rag_collection", cfg.Store.CollectionName)
	}
	if cfg.Store.TopK != 3 {
		t.Errorf("topK = %d, expected 3", cfg.Store.TopK)
	}
	if cfg.LLM.Provider != "gemini" || cfg.LLM.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("unexpected LLM defaults: %+v", cfg.LLM)
	}
	if cfg.Store.Timeout() != 10*time.Second {
		t.Errorf("retrieval timeout = %v, expected 10s", cfg.Store.Timeout())
	}
	if cfg.LLM.Timeout() != 60*time.Second {
		t.Errorf("generation timeout = %v, expected 60s", cfg.LLM.Timeout())
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("a missing file must not be an error, got %v", err)
	}
	if cfg.Store.CollectionName != "rag_collection" {
		t.Errorf("defaults not applied: %+v", cfg.Store)
	}
}

func TestLoadConfigFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: ":9000"
store:
  collectionName: docs
  topK: 5
  retrievalTimeout: 2s
middleware:
  rateLimiter:
    enabled: true
    rate: 10
    capacity: 20
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("addr = %s, expected :9000", cfg.Server.Addr)
	}
	if cfg.Store.CollectionName != "docs" || cfg.Store.TopK != 5 {
		t.Errorf("store overlay not applied: %+v", cfg.Store)
	}
	if cfg.Store.Timeout() != 2*time.Second {
		t.Errorf("retrieval timeout = %v, expected 2s", cfg.Store.Timeout())
	}
	if !cfg.Middleware.RateLimiter.Enabled || cfg.Middleware.RateLimiter.Capacity != 20 {
		t.Errorf("middleware overlay not applied: %+v", cfg.Middleware)
	}
	// Unset fields keep their defaults.
	if cfg.LLM.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("default model lost: %s", cfg.LLM.Gemini.Model)
	}
}

func TestLoadConfigMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("store: ["), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected an error for a malformed config file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CHROMA_COLLECTION_NAME", "env_collection")
	t.Setenv("CHROMA_PERSIST_PATH", "/data/chroma")
	t.Setenv("GEMINI_RAG_MODEL", "gemini-2.5-pro")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("TOP_K", "7")
	t.Setenv("CHROMA_READ_ONLY", "true")
	t.Setenv("HTTP_ADDR", ":8080")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Store.CollectionName != "env_collection" {
		t.Errorf("collection = %s", cfg.Store.CollectionName)
	}
	if cfg.Store.PersistPath != "/data/chroma" {
		t.Errorf("persist path = %s", cfg.Store.PersistPath)
	}
	if cfg.LLM.Gemini.Model != "gemini-2.5-pro" {
		t.Errorf("model = %s", cfg.LLM.Gemini.Model)
	}
	if cfg.LLM.Gemini.APIKey != "test-key" || cfg.Embedding.Gemini.APIKey != "test-key" {
		t.Error("GEMINI_API_KEY must feed both generation and embedding")
	}
	if cfg.Store.TopK != 7 {
		t.Errorf("topK = %d, expected 7", cfg.Store.TopK)
	}
	if !cfg.Store.ReadOnly {
		t.Error("readOnly not applied from environment")
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %s, expected :8080", cfg.Server.Addr)
	}
}

func TestEnvIgnoresInvalidTopK(t *testing.T) {
	t.Setenv("TOP_K", "zero")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Store.TopK != 3 {
		t.Errorf("topK = %d, expected the default 3", cfg.Store.TopK)
	}
}

func TestTimeoutFallbacks(t *testing.T) {
	cases := []string{"", "not-a-duration", "-5s", "0s"}
	for _, raw := range cases {
		store := StoreConfig{RetrievalTimeout: raw}
		if store.Timeout() != 10*time.Second {
			t.Errorf("retrievalTimeout %q: got %v, expected the 10s fallback", raw, store.Timeout())
		}
		llm := LLMConfig{GenerationTimeout: raw}
		if llm.Timeout() != 60*time.Second {
			t.Errorf("generationTimeout %q: got %v, expected the 60s fallback", raw, llm.Timeout())
		}
	}
}

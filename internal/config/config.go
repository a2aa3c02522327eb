package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// AppInfo holds basic application metadata.
type AppInfo struct {
	Name        string `yaml:"name"`        // Application name
	Environment string `yaml:"environment"` // e.g. "development", "production"
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Addr string `yaml:"addr"` // Listen address, e.g. ":8000"
}

// LoggerConfig holds the logger settings.
type LoggerConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error"
}

// StoreConfig holds the vector store settings.
type StoreConfig struct {
	CollectionName   string `yaml:"collectionName"`   // Collection to open or create
	PersistPath      string `yaml:"persistPath"`      // On-disk location of the store
	ReadOnly         bool   `yaml:"readOnly"`         // Never create collections; substitute an existing one
	TopK             int    `yaml:"topK"`             // Number of chunks retrieved per query
	RetrievalTimeout string `yaml:"retrievalTimeout"` // e.g. "10s"
}

// GeminiConfig holds credentials and model name for the Gemini API.
type GeminiConfig struct {
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`
}

// OpenAIConfig holds credentials and model name for the OpenAI API.
type OpenAIConfig struct {
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`
}

// LLMConfig selects and configures the answer-generation provider.
type LLMConfig struct {
	Provider          string       `yaml:"provider"` // "gemini" or "openai"
	Gemini            GeminiConfig `yaml:"gemini"`
	OpenAI            OpenAIConfig `yaml:"openai"`
	GenerationTimeout string       `yaml:"generationTimeout"` // e.g. "60s"
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	Provider string       `yaml:"provider"` // "gemini", "openai" or "" (store default)
	Gemini   GeminiConfig `yaml:"gemini"`
	OpenAI   OpenAIConfig `yaml:"openai"`
}

// RateLimiterConfig configures the optional token-bucket limiter in front
// of the HTTP handlers.
type RateLimiterConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Rate     float64 `yaml:"rate"` // tokens per second
	Capacity int     `yaml:"capacity"`
}

// MiddlewareConfig groups all HTTP middleware settings.
type MiddlewareConfig struct {
	RateLimiter RateLimiterConfig `yaml:"rateLimiter"`
}

// AppConfig is the root of the YAML configuration file.
type AppConfig struct {
	App        AppInfo          `yaml:"app"`
	Server     ServerConfig     `yaml:"server"`
	Logger     LoggerConfig     `yaml:"logger"`
	Store      StoreConfig      `yaml:"store"`
	LLM        LLMConfig        `yaml:"llm"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Middleware MiddlewareConfig `yaml:"middleware"`
}

// Default returns the configuration used when no file is present. The
// defaults match the knowledge-base layout produced by the offline
// ingestion process.
func Default() *AppConfig {
	return &AppConfig{
		App:    AppInfo{Name: "gemini-rag", Environment: "development"},
		Server: ServerConfig{Addr: ":8000"},
		Logger: LoggerConfig{Level: "info"},
		Store: StoreConfig{
			CollectionName:   "rag_collection",
			PersistPath:      "./chroma_data",
			TopK:             3,
			RetrievalTimeout: "10s",
		},
		LLM: LLMConfig{
			Provider:          "gemini",
			Gemini:            GeminiConfig{Model: "gemini-2.5-flash"},
			OpenAI:            OpenAIConfig{Model: "gpt-4o-mini"},
			GenerationTimeout: "60s",
		},
		Embedding: EmbeddingConfig{
			Provider: "gemini",
			Gemini:   GeminiConfig{Model: "text-embedding-004"},
			OpenAI:   OpenAIConfig{Model: "text-embedding-3-small"},
		},
	}
}

// LoadConfig reads the YAML file at path, overlays it on the defaults and
// then applies environment overrides. A missing file is not an error: the
// service can be configured entirely through the environment.
func LoadConfig(path string) (*AppConfig, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file '%s': %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays the environment variables the service has always
// honored. Environment values win over file values.
func (c *AppConfig) applyEnv() {
	setString(&c.Store.CollectionName, "CHROMA_COLLECTION_NAME")
	setString(&c.Store.PersistPath, "CHROMA_PERSIST_PATH")
	setString(&c.Embedding.Gemini.Model, "CHROMA_EMBED_MODEL")
	setString(&c.LLM.Gemini.Model, "GEMINI_RAG_MODEL")
	setString(&c.LLM.Gemini.APIKey, "GEMINI_API_KEY")
	setString(&c.Embedding.Gemini.APIKey, "GEMINI_API_KEY")
	setString(&c.LLM.OpenAI.APIKey, "OPENAI_API_KEY")
	setString(&c.Embedding.OpenAI.APIKey, "OPENAI_API_KEY")
	setString(&c.Server.Addr, "HTTP_ADDR")

	if v := os.Getenv("TOP_K"); v != "" {
		if k, err := strconv.Atoi(v); err == nil && k > 0 {
			c.Store.TopK = k
		}
	}
	if v := os.Getenv("CHROMA_READ_ONLY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Store.ReadOnly = b
		}
	}
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

// Timeout returns the parsed retrieval budget.
func (c *StoreConfig) Timeout() time.Duration {
	return parseDuration(c.RetrievalTimeout, 10*time.Second)
}

// Timeout returns the parsed generation budget. Generation is allowed a
// materially longer latency than retrieval.
func (c *LLMConfig) Timeout() time.Duration {
	return parseDuration(c.GenerationTimeout, 60*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

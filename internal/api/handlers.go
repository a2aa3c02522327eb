package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"gemini-rag/internal/rag"
	"gemini-rag/internal/vectorstore"
	"gemini-rag/pkg/logger"
)

// Handler exposes the RAG pipeline over HTTP. All dependencies are
// injected once at startup; handlers hold no mutable state of their own.
type Handler struct {
	svc       *rag.Service
	store     *vectorstore.Store
	generator rag.Generator

	llmProvider       string
	llmModel          string
	embeddingProvider string
	log               *logger.Logger
}

// NewHandler wires the HTTP layer with the orchestrator and the two
// gateways it introspects for health reporting.
func NewHandler(svc *rag.Service, store *vectorstore.Store, generator rag.Generator, llmProvider, llmModel, embeddingProvider string, log *logger.Logger) *Handler {
	return &Handler{
		svc:               svc,
		store:             store,
		generator:         generator,
		llmProvider:       llmProvider,
		llmModel:          llmModel,
		embeddingProvider: embeddingProvider,
		log:               log,
	}
}

type queryRequest struct {
	UserQuery string `json:"user_query"`
}

type queryResponse struct {
	Answer   string   `json:"answer"`
	Contexts []string `json:"contexts"`
}

// query handles POST /query.
func (h *Handler) query(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	envelope, err := h.svc.Query(c.Request.Context(), req.UserQuery)
	if err != nil {
		status, detail := statusFor(err)
		c.JSON(status, gin.H{"detail": detail})
		return
	}

	contexts := make([]string, 0, len(envelope.Chunks))
	for _, chunk := range envelope.Chunks {
		contexts = append(contexts, chunk.Text)
	}
	c.JSON(http.StatusOK, queryResponse{Answer: envelope.Answer, Contexts: contexts})
}

// statusFor translates pipeline errors into the wire contract. Every
// external-call failure carries a human-readable cause; raw provider
// output never reaches the client unwrapped.
func statusFor(err error) (int, string) {
	var retrievalErr *rag.RetrievalError
	var generationErr *rag.GenerationError

	switch {
	case errors.Is(err, rag.ErrEmptyQuery):
		return http.StatusBadRequest, "Query cannot be empty."
	case errors.Is(err, rag.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "ChromaDB collection is unavailable."
	case errors.Is(err, rag.ErrGeneratorUnavailable):
		return http.StatusInternalServerError, "Generation client is not initialized."
	case errors.As(err, &retrievalErr):
		return http.StatusInternalServerError, retrievalErr.Error()
	case errors.As(err, &generationErr):
		return http.StatusInternalServerError, generationErr.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

// health handles GET /health. The endpoint itself always answers 200;
// initialization failures and degradations appear only in the detail
// flags, surfaced verbatim from the gateway's tagged startup outcome.
func (h *Handler) health(c *gin.Context) {
	status := h.store.Status()

	details := gin.H{
		"chroma_present":             h.store.Available(),
		"collection_name":            status.CollectionName,
		"chroma_path":                status.PersistPath,
		"store_mode":                 string(status.Mode),
		"store_detail":               status.Detail,
		"collection_resolution":      string(status.Resolution),
		"embedding_function_present": !status.EmbeddingDegraded,
		"embedding_provider":         h.embeddingProvider,
		"gemini_initialized":         h.generator.Ready(),
		"gemini_model":               h.llmModel,
		"llm_provider":               h.llmProvider,
	}

	if count, err := h.store.Count(); err == nil {
		details["collection_count"] = count
	} else {
		details["collection_count"] = nil
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "details": details})
}

// collections handles GET /collections. An unavailable store yields an
// empty list, matching the behavior of a store that holds no collections.
func (h *Handler) collections(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"collections": h.store.Collections()})
}

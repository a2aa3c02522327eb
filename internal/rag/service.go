package rag

import (
	"context"
	"errors"
	"strings"
	"time"

	"gemini-rag/internal/vectorstore"
	"gemini-rag/pkg/logger"
)

// FallbackAnswer is returned, without any generation call, whenever
// retrieval produces zero chunks. Generating from an empty context would
// be ungrounded by definition.
const FallbackAnswer = "I could not find any relevant information in the knowledge base."

// Retriever is the orchestrator's view of the vector store gateway.
type Retriever interface {
	Available() bool
	Query(ctx context.Context, text string, k int) ([]vectorstore.Chunk, error)
}

// Generator is the orchestrator's view of the answer generator.
type Generator interface {
	Ready() bool
	Generate(ctx context.Context, query string, contexts []string) (string, error)
}

// Envelope is the per-request result: the answer plus the full retrieval
// result. It is never partially populated; a failed pipeline returns an
// error instead.
type Envelope struct {
	Answer string
	Chunks []vectorstore.Chunk
}

// Service runs the request pipeline: validate, retrieve, short-circuit on
// empty retrieval, generate, assemble. Each request is sequential; the
// store and generator are shared read-only singletons, so no per-request
// locking is needed.
type Service struct {
	store            Retriever
	generator        Generator
	topK             int
	retrievalTimeout time.Duration
	log              *logger.Logger
}

// NewService wires the orchestrator with its two gateways.
func NewService(store Retriever, generator Generator, topK int, retrievalTimeout time.Duration, log *logger.Logger) *Service {
	return &Service{
		store:            store,
		generator:        generator,
		topK:             topK,
		retrievalTimeout: retrievalTimeout,
		log:              log,
	}
}

// Query runs the full pipeline for one user query.
func (s *Service) Query(ctx context.Context, userQuery string) (*Envelope, error) {
	query := strings.TrimSpace(userQuery)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	if s.store == nil || !s.store.Available() {
		return nil, ErrStoreUnavailable
	}

	rctx, cancel := context.WithTimeout(ctx, s.retrievalTimeout)
	chunks, err := s.store.Query(rctx, query, s.topK)
	cancel()
	if err != nil {
		s.log.WithError(err).Error("vector store query failed")
		return nil, &RetrievalError{Err: err}
	}

	if len(chunks) == 0 {
		s.log.Info("no chunks retrieved; returning fallback answer without generation")
		return &Envelope{Answer: FallbackAnswer, Chunks: []vectorstore.Chunk{}}, nil
	}

	contexts := make([]string, len(chunks))
	for i, c := range chunks {
		contexts[i] = c.Text
	}

	answer, err := s.generator.Generate(ctx, query, contexts)
	if err != nil {
		if errors.Is(err, ErrGeneratorUnavailable) {
			return nil, err
		}
		s.log.WithError(err).Error("answer generation failed")
		return nil, &GenerationError{Err: err}
	}

	return &Envelope{Answer: answer, Chunks: chunks}, nil
}

package rag

import (
	"errors"
	"fmt"
)

// The pipeline distinguishes five outcomes: bad request, store never
// initialized, generator never initialized, retrieval failure and
// generation failure. An empty retrieval is not an error. The HTTP layer
// maps these to status codes; nothing below it deals in status codes.
var (
	// ErrEmptyQuery rejects queries that are empty after trimming.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrStoreUnavailable is returned when the vector store gateway never
	// initialized. Fatal for the endpoint until restart or reconfiguration.
	ErrStoreUnavailable = errors.New("vector store collection is unavailable")

	// ErrGeneratorUnavailable is returned when the generation client was
	// never constructed, e.g. because the API credential was missing at
	// startup. Fatal at request time, never process-crashing.
	ErrGeneratorUnavailable = errors.New("generation client is not initialized")
)

// RetrievalError wraps an error raised by the vector store during a query.
// It is surfaced with the provider-level cause, not retried.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("vector store retrieval failed: %v", e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// GenerationError wraps an error raised by the generation API call.
// It is surfaced with the provider-level cause, not retried.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation API call failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

package domain

import (
	"context"
	"errors"
)

var (
	// ErrInvalidInput signals a tool call that failed input validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrVectorSearchError signals a vector index failure.
	ErrVectorSearchError = errors.New("vector search error")
	// ErrMalformedMatch signals a search hit whose metadata does not fit the perfume schema.
	ErrMalformedMatch = errors.New("malformed match")
	// ErrIndexNotConfigured signals an empty index name.
	ErrIndexNotConfigured = errors.New("index not configured")
)

// Kind is a stable, low-cardinality error classification for logs and metrics.
type Kind string

// Error kinds.
const (
	KindNone              Kind = ""
	KindInvalidInput      Kind = "invalid_input"
	KindEmbeddingProvider Kind = "embedding_provider"
	KindVectorSearch      Kind = "vector_search"
	KindMalformedMatch    Kind = "malformed_match"
	KindCanceled          Kind = "canceled"
	KindInternal          Kind = "internal"
)

// ErrorKind classifies err by its wrapped sentinel.
func ErrorKind(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	case errors.Is(err, ErrEmbeddingProviderError):
		return KindEmbeddingProvider
	case errors.Is(err, ErrVectorSearchError), errors.Is(err, ErrIndexNotConfigured):
		return KindVectorSearch
	case errors.Is(err, ErrMalformedMatch):
		return KindMalformedMatch
	default:
		return KindInternal
	}
}

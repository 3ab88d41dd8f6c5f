package domain

import "errors"

var (
	// ErrEmptyQuestion signals a request without question text.
	ErrEmptyQuestion = errors.New("empty question")
	// ErrStoreUnavailable signals a failed data store operation.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrGenerationProviderError signals a generation provider failure.
	ErrGenerationProviderError = errors.New("generation provider error")
)

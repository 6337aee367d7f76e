package domain

import "errors"

var (
	// ErrEmbeddingUnavailable signals that no embedding provider was initialized.
	ErrEmbeddingUnavailable = errors.New("embedding provider is not available")
	// ErrSearchUnavailable signals that the search index cannot be reached.
	ErrSearchUnavailable = errors.New("search index is not available")
	// ErrGenerationUnavailable signals that no generative model client was initialized.
	ErrGenerationUnavailable = errors.New("generative model is not available")

	// ErrEmbeddingProvider signals an embedding provider failure mid-call.
	ErrEmbeddingProvider = errors.New("embedding provider error")
	// ErrGenerationProvider signals a generative model failure mid-call.
	ErrGenerationProvider = errors.New("generative model error")
	// ErrUpstreamCall signals a generic upstream network/API failure.
	ErrUpstreamCall = errors.New("upstream call failed")

	// ErrValidation signals invalid request input (missing columns, wrong content type).
	ErrValidation = errors.New("validation failed")
	// ErrGenerationFormat signals that model output could not be parsed into the expected schema.
	ErrGenerationFormat = errors.New("could not parse model output")
)

package domain

import "context"

// Embedder is the shared text vectorization contract between layers.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// EmbeddingResult carries the embedding vector and token usage through the decorator chain.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// ImageEmbedder vectorizes raw image bytes with the multimodal model.
// Optional dependency: a nil ImageEmbedder degrades visual lookups to "skip".
type ImageEmbedder interface {
	EmbedImage(ctx context.Context, data []byte, mimeType string) ([]float32, error)
}

// HealthChecker verifies upstream provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// ImagePart is an inline image attached to a generation request.
type ImagePart struct {
	MIMEType string
	Data     []byte
}

// GenerationRequest describes a single call to the generative model.
// When JSON is set the model is asked for structured output
// (response MIME type application/json).
type GenerationRequest struct {
	Prompt string
	Image  *ImagePart
	JSON   bool
}

// Generator is the shared text generation contract between layers.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

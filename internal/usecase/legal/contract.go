package legal

import (
	"context"

	"github.com/umkm-go/umkm-ai-backend/internal/domain"
	"github.com/umkm-go/umkm-ai-backend/internal/usecase/retrieval"
)

// Retriever runs the shared embed-and-search pipeline.
type Retriever interface {
	Retrieve(ctx context.Context, query string, spec retrieval.Spec) ([]domain.SearchHit, string, error)
}

// Generator produces model completions.
type Generator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (string, error)
}

// Params are the retrieval parameters of the legal knowledge base.
type Params struct {
	Index         string
	TextField     string
	K             int
	NumCandidates int
}

// Response is the legal agent's answer with its supporting chunks.
type Response struct {
	Answer          string               `json:"answer"`
	RetrievedChunks []domain.SourceChunk `json:"retrieved_chunks"`
}

package marketing

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

// Params are the retrieval parameters of the marketing knowledge base plus the
// answer-language policy ("id" or "en").
type Params struct {
	Index          string
	TextField      string
	K              int
	NumCandidates  int
	AnswerLanguage string
}

// Response is the marketing agent's advice with its supporting articles.
type Response struct {
	Answer            string                 `json:"answer"`
	RetrievedArticles []domain.SourceArticle `json:"retrieved_articles"`
}

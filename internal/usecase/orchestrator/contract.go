package orchestrator

import (
	"context"

	"github.com/umkm-go/umkm-ai-backend/internal/domain"
	"github.com/umkm-go/umkm-ai-backend/internal/usecase/legal"
	"github.com/umkm-go/umkm-ai-backend/internal/usecase/marketing"
)

// Generator produces model completions; here it serves the intent classifier.
type Generator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (string, error)
}

// LegalAgent answers legal queries.
type LegalAgent interface {
	Answer(ctx context.Context, query string) (legal.Response, error)
}

// MarketingAgent answers marketing queries.
type MarketingAgent interface {
	Advise(ctx context.Context, query string) (marketing.Response, error)
}

// Response is the orchestrator's tagged result: AgentUsed names the variant,
// and only the matching payload fields are set.
type Response struct {
	AgentUsed         domain.Intent          `json:"agent_used"`
	Answer            string                 `json:"answer"`
	RetrievedChunks   []domain.SourceChunk   `json:"retrieved_chunks,omitempty"`
	RetrievedArticles []domain.SourceArticle `json:"retrieved_articles,omitempty"`
}

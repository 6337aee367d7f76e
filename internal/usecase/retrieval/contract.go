package retrieval

import (
	"context"

	"github.com/umkm-go/umkm-ai-backend/internal/domain"
)

// Searcher issues hybrid queries against the search index.
type Searcher interface {
	Hybrid(ctx context.Context, q domain.HybridQuery) ([]domain.SearchHit, error)
}

// Spec names the index and parameters of one domain's retrieval.
type Spec struct {
	Index         string
	TextField     string // lexical match field, also the context body
	SourceField   string // source identifier shown in context headers
	SourceLabel   string // header label, e.g. "Source" or "Source Article"
	K             int
	NumCandidates int
}

// Package retrieval embeds a query, runs one hybrid search, and builds the
// context string handed to the generative model. Ranking fusion happens in the
// engine; results keep index order.
package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/umkm-go/umkm-ai-backend/internal/domain"
)

// Service is the shared retrieval pipeline of the RAG agents.
type Service struct {
	repo  Searcher
	embed domain.Embedder
}

// New creates a retrieval service. embed may be nil when no embedding provider
// was initialized; Retrieve then fails with ErrEmbeddingUnavailable.
func New(repo Searcher, embed domain.Embedder) *Service {
	return &Service{repo: repo, embed: embed}
}

// Retrieve returns the ranked hits (at most spec.K) and the concatenated
// context string, each hit prefixed with its source identifier in index order.
func (s *Service) Retrieve(ctx context.Context, query string, spec Spec) ([]domain.SearchHit, string, error) {
	if s.embed == nil {
		return nil, "", domain.ErrEmbeddingUnavailable
	}

	embResult, err := s.embed.Embed(ctx, query)
	if err != nil {
		return nil, "", fmt.Errorf("vectorize query: %w", err)
	}

	hits, err := s.repo.Hybrid(ctx, domain.HybridQuery{
		Index:         spec.Index,
		TextField:     spec.TextField,
		Query:         query,
		Vector:        embResult.Embedding,
		K:             spec.K,
		NumCandidates: spec.NumCandidates,
	})
	if err != nil {
		return nil, "", fmt.Errorf("hybrid search %s: %w", spec.Index, err)
	}

	// The engine already bounds hits by k; cap again so the invariant never
	// depends on upstream behavior.
	if len(hits) > spec.K {
		hits = hits[:spec.K]
	}

	var b strings.Builder
	for _, hit := range hits {
		fmt.Fprintf(&b, "--- %s: %s ---\n%s\n\n", spec.SourceLabel, hit.Str(spec.SourceField), hit.Str(spec.TextField))
	}

	return hits, b.String(), nil
}

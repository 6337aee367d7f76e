// Package marketing implements the marketing advice agent. Retrieval grounds
// the answer in knowledge-base articles, but unlike the legal agent the model
// may generalize beyond the retrieved context.
package marketing

import (
	"context"
	"fmt"
	"strings"

	"github.com/umkm-go/umkm-ai-backend/internal/domain"
	"github.com/umkm-go/umkm-ai-backend/internal/usecase/prompt"
	"github.com/umkm-go/umkm-ai-backend/internal/usecase/retrieval"
)

// Service handles marketing queries end to end: retrieve, prompt, generate.
type Service struct {
	retr   Retriever
	gen    Generator
	params Params
}

// New creates a marketing agent service.
func New(retr Retriever, gen Generator, params Params) *Service {
	return &Service{retr: retr, gen: gen, params: params}
}

// Advise retrieves marketing articles for the query and generates advice in
// the configured answer language.
func (s *Service) Advise(ctx context.Context, query string) (Response, error) {
	if strings.TrimSpace(query) == "" {
		return Response{}, fmt.Errorf("%w: query must not be empty", domain.ErrValidation)
	}
	if s.gen == nil {
		return Response{}, domain.ErrGenerationUnavailable
	}

	hits, context_, err := s.retr.Retrieve(ctx, query, retrieval.Spec{
		Index:         s.params.Index,
		TextField:     s.params.TextField,
		SourceField:   "title",
		SourceLabel:   "Source Article",
		K:             s.params.K,
		NumCandidates: s.params.NumCandidates,
	})
	if err != nil {
		return Response{}, err
	}

	lang := prompt.Indonesian
	if s.params.AnswerLanguage == "en" {
		lang = prompt.English
	}

	answer, err := s.gen.Generate(ctx, domain.GenerationRequest{
		Prompt: prompt.Marketing(query, context_, lang),
	})
	if err != nil {
		return Response{}, fmt.Errorf("generate marketing advice: %w", err)
	}

	articles := make([]domain.SourceArticle, 0, len(hits))
	for _, hit := range hits {
		articles = append(articles, domain.SourceArticle{
			Title: hit.Str("title"),
			URL:   hit.Str("url"),
			Score: hit.Score,
		})
	}

	return Response{Answer: answer, RetrievedArticles: articles}, nil
}

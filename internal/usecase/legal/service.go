// Package legal implements the closed-world legal question agent. It retrieves
// statute chunks from the legal index and answers strictly from that context.
package legal

import (
	"context"
	"fmt"
	"strings"

	"github.com/umkm-go/umkm-ai-backend/internal/domain"
	"github.com/umkm-go/umkm-ai-backend/internal/usecase/prompt"
	"github.com/umkm-go/umkm-ai-backend/internal/usecase/retrieval"
)

// Service handles legal queries end to end: retrieve, prompt, generate.
type Service struct {
	retr   Retriever
	gen    Generator
	params Params
}

// New creates a legal agent service.
func New(retr Retriever, gen Generator, params Params) *Service {
	return &Service{retr: retr, gen: gen, params: params}
}

// Answer retrieves legal context for the query and generates a grounded answer.
// The retrieved chunks are always returned alongside the answer so the caller
// can surface the sources.
func (s *Service) Answer(ctx context.Context, query string) (Response, error) {
	if strings.TrimSpace(query) == "" {
		return Response{}, fmt.Errorf("%w: query must not be empty", domain.ErrValidation)
	}
	if s.gen == nil {
		return Response{}, domain.ErrGenerationUnavailable
	}

	hits, context_, err := s.retr.Retrieve(ctx, query, retrieval.Spec{
		Index:         s.params.Index,
		TextField:     s.params.TextField,
		SourceField:   "chunk_id",
		SourceLabel:   "Source",
		K:             s.params.K,
		NumCandidates: s.params.NumCandidates,
	})
	if err != nil {
		return Response{}, err
	}

	answer, err := s.gen.Generate(ctx, domain.GenerationRequest{
		Prompt: prompt.Legal(query, context_),
	})
	if err != nil {
		return Response{}, fmt.Errorf("generate legal answer: %w", err)
	}

	chunks := make([]domain.SourceChunk, 0, len(hits))
	for _, hit := range hits {
		chunks = append(chunks, domain.SourceChunk{
			ChunkID:      hit.Str("chunk_id"),
			ChapterTitle: hit.Str("chapter_title"),
			Text:         hit.Str(s.params.TextField),
			Score:        hit.Score,
		})
	}

	return Response{Answer: answer, RetrievedChunks: chunks}, nil
}

// Package orchestrator implements the intent router: one classification call
// decides which specialist agent serves the query.
package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/umkm-go/umkm-ai-backend/internal/domain"
	"github.com/umkm-go/umkm-ai-backend/internal/usecase/prompt"
)

// RefusalMessage is the canned answer for queries no specialist agent covers.
const RefusalMessage = "Sorry, I’m not able to answer that question yet. You can ask about legal or marketing aspects for SMEs."

// Service routes free-text queries to the matching specialist agent.
type Service struct {
	gen       Generator
	legal     LegalAgent
	marketing MarketingAgent
}

// New creates an orchestrator service.
func New(gen Generator, legal LegalAgent, marketing MarketingAgent) *Service {
	return &Service{gen: gen, legal: legal, marketing: marketing}
}

// Route classifies the query's intent and dispatches it. Any classification
// output other than an exact LEGAL or MARKETING label falls through to the
// canned refusal; a failed classification call is a hard error.
func (s *Service) Route(ctx context.Context, query string) (Response, error) {
	if strings.TrimSpace(query) == "" {
		return Response{}, fmt.Errorf("%w: query must not be empty", domain.ErrValidation)
	}

	intent, err := s.classify(ctx, query)
	if err != nil {
		return Response{}, err
	}

	switch intent {
	case domain.IntentLegal:
		resp, err := s.legal.Answer(ctx, query)
		if err != nil {
			return Response{}, err
		}
		return Response{
			AgentUsed:       domain.IntentLegal,
			Answer:          resp.Answer,
			RetrievedChunks: resp.RetrievedChunks,
		}, nil

	case domain.IntentMarketing:
		resp, err := s.marketing.Advise(ctx, query)
		if err != nil {
			return Response{}, err
		}
		return Response{
			AgentUsed:         domain.IntentMarketing,
			Answer:            resp.Answer,
			RetrievedArticles: resp.RetrievedArticles,
		}, nil

	default:
		return Response{AgentUsed: domain.IntentUnknown, Answer: RefusalMessage}, nil
	}
}

// classify runs the single routing call. The label match is exact: trimmed,
// upper-cased output that is not LEGAL or MARKETING is UNKNOWN, malformed
// output included.
func (s *Service) classify(ctx context.Context, query string) (domain.Intent, error) {
	if s.gen == nil {
		return "", domain.ErrGenerationUnavailable
	}

	raw, err := s.gen.Generate(ctx, domain.GenerationRequest{Prompt: prompt.Classification(query)})
	if err != nil {
		return "", fmt.Errorf("classify intent: %w", err)
	}

	switch label := strings.ToUpper(strings.TrimSpace(raw)); domain.Intent(label) {
	case domain.IntentLegal:
		return domain.IntentLegal, nil
	case domain.IntentMarketing:
		return domain.IntentMarketing, nil
	default:
		return domain.IntentUnknown, nil
	}
}

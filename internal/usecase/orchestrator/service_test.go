package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/umkm-go/umkm-ai-backend/internal/domain"
	"github.com/umkm-go/umkm-ai-backend/internal/usecase/legal"
	"github.com/umkm-go/umkm-ai-backend/internal/usecase/marketing"
)

type mockGenerator struct {
	label string
	err   error
}

func (m *mockGenerator) Generate(_ context.Context, _ domain.GenerationRequest) (string, error) {
	return m.label, m.err
}

type mockLegalAgent struct {
	resp   legal.Response
	err    error
	called bool
}

func (m *mockLegalAgent) Answer(_ context.Context, _ string) (legal.Response, error) {
	m.called = true
	return m.resp, m.err
}

type mockMarketingAgent struct {
	resp   marketing.Response
	err    error
	called bool
}

func (m *mockMarketingAgent) Advise(_ context.Context, _ string) (marketing.Response, error) {
	m.called = true
	return m.resp, m.err
}

func TestRoute_Legal(t *testing.T) {
	la := &mockLegalAgent{resp: legal.Response{
		Answer:          "Berdasarkan UU...",
		RetrievedChunks: []domain.SourceChunk{{ChunkID: "uu20-1", Score: 7.5}},
	}}
	ma := &mockMarketingAgent{}
	svc := New(&mockGenerator{label: "LEGAL"}, la, ma)

	resp, err := svc.Route(context.Background(), "apa syarat NIB?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.AgentUsed != domain.IntentLegal {
		t.Errorf("agent_used = %q", resp.AgentUsed)
	}
	if resp.Answer != "Berdasarkan UU..." || len(resp.RetrievedChunks) != 1 {
		t.Errorf("response = %+v", resp)
	}
	if len(resp.RetrievedArticles) != 0 {
		t.Error("legal responses must not carry articles")
	}
	if ma.called {
		t.Error("marketing agent must not be called")
	}
}

func TestRoute_Marketing(t *testing.T) {
	ma := &mockMarketingAgent{resp: marketing.Response{
		Answer:            "Coba konten video...",
		RetrievedArticles: []domain.SourceArticle{{Title: "Tips", Score: 3.1}},
	}}
	la := &mockLegalAgent{}
	svc := New(&mockGenerator{label: "MARKETING"}, la, ma)

	resp, err := svc.Route(context.Background(), "ide promosi?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.AgentUsed != domain.IntentMarketing {
		t.Errorf("agent_used = %q", resp.AgentUsed)
	}
	if resp.Answer != "Coba konten video..." || len(resp.RetrievedArticles) != 1 {
		t.Errorf("response = %+v", resp)
	}
	if len(resp.RetrievedChunks) != 0 {
		t.Error("marketing responses must not carry chunks")
	}
	if la.called {
		t.Error("legal agent must not be called")
	}
}

func TestRoute_LabelNormalization(t *testing.T) {
	la := &mockLegalAgent{resp: legal.Response{Answer: "ok"}}
	svc := New(&mockGenerator{label: "  legal \n"}, la, &mockMarketingAgent{})

	resp, err := svc.Route(context.Background(), "q")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AgentUsed != domain.IntentLegal {
		t.Errorf("agent_used = %q, trimming and upper-casing must apply", resp.AgentUsed)
	}
}

func TestRoute_UnknownGetsCannedRefusal(t *testing.T) {
	for name, label := range map[string]string{
		"explicit unknown": "UNKNOWN",
		"malformed output": "I think this is a LEGAL question",
		"empty output":     "",
	} {
		t.Run(name, func(t *testing.T) {
			la := &mockLegalAgent{}
			ma := &mockMarketingAgent{}
			svc := New(&mockGenerator{label: label}, la, ma)

			resp, err := svc.Route(context.Background(), "siapa presiden?")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if resp.AgentUsed != domain.IntentUnknown {
				t.Errorf("agent_used = %q", resp.AgentUsed)
			}
			if resp.Answer != RefusalMessage {
				t.Errorf("answer = %q, want the canned refusal", resp.Answer)
			}
			if len(resp.RetrievedChunks) != 0 || len(resp.RetrievedArticles) != 0 {
				t.Error("refusals must not carry retrieval payloads")
			}
			if la.called || ma.called {
				t.Error("no agent may be dispatched for UNKNOWN")
			}
		})
	}
}

func TestRoute_ClassificationFailureIsHard(t *testing.T) {
	svc := New(&mockGenerator{err: domain.ErrGenerationProvider}, &mockLegalAgent{}, &mockMarketingAgent{})

	_, err := svc.Route(context.Background(), "q")
	if !errors.Is(err, domain.ErrGenerationProvider) {
		t.Fatalf("err = %v, want ErrGenerationProvider", err)
	}
}

func TestRoute_AgentFailurePropagates(t *testing.T) {
	la := &mockLegalAgent{err: domain.ErrSearchUnavailable}
	svc := New(&mockGenerator{label: "LEGAL"}, la, &mockMarketingAgent{})

	_, err := svc.Route(context.Background(), "q")
	if !errors.Is(err, domain.ErrSearchUnavailable) {
		t.Fatalf("err = %v, want ErrSearchUnavailable", err)
	}
}

func TestRoute_EmptyQuery(t *testing.T) {
	svc := New(&mockGenerator{label: "LEGAL"}, &mockLegalAgent{}, &mockMarketingAgent{})

	_, err := svc.Route(context.Background(), " ")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestRoute_NilGenerator(t *testing.T) {
	svc := New(nil, &mockLegalAgent{}, &mockMarketingAgent{})

	_, err := svc.Route(context.Background(), "q")
	if !errors.Is(err, domain.ErrGenerationUnavailable) {
		t.Fatalf("err = %v, want ErrGenerationUnavailable", err)
	}
}

// Package gemini provides the generative model client.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/umkm-go/umkm-ai-backend/internal/domain"
	"github.com/umkm-go/umkm-ai-backend/internal/metrics"
)

// Generator implements domain.Generator on top of the Gemini API.
type Generator struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// Config holds generative model settings.
type Config struct {
	APIKey string
	Model  string
	Logger *zap.Logger
}

// NewGenerator creates a Gemini-backed generator.
func NewGenerator(ctx context.Context, cfg *Config) (*Generator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Generator{client: client, model: cfg.Model, logger: cfg.Logger}, nil
}

// Close releases the underlying client.
func (g *Generator) Close() error {
	return g.client.Close()
}

// Generate implements domain.Generator. Image bytes (if any) are sent inline
// before the prompt; JSON mode asks the model for application/json output.
func (g *Generator) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	model := g.client.GenerativeModel(g.model)
	if req.JSON {
		model.GenerationConfig.ResponseMIMEType = "application/json"
	}

	parts := make([]genai.Part, 0, 2)
	if req.Image != nil {
		parts = append(parts, genai.Blob{MIMEType: req.Image.MIMEType, Data: req.Image.Data})
	}
	parts = append(parts, genai.Text(req.Prompt))

	start := time.Now()

	resp, err := model.GenerateContent(ctx, parts...)

	duration := time.Since(start)

	if err != nil {
		metrics.GenerationRequestsTotal.WithLabelValues(g.model, "error").Inc()
		return "", fmt.Errorf("generate content: %v: %w", err, domain.ErrGenerationProvider)
	}

	text := responseText(resp)
	if text == "" {
		metrics.GenerationRequestsTotal.WithLabelValues(g.model, "error").Inc()
		return "", fmt.Errorf("empty generation response: %w", domain.ErrGenerationProvider)
	}

	metrics.GenerationRequestsTotal.WithLabelValues(g.model, "success").Inc()
	metrics.GenerationRequestDuration.WithLabelValues(g.model).Observe(duration.Seconds())

	return text, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}

// Package multimodal provides the image embedding client. The hosted
// multimodal model is exposed over a plain JSON endpoint (base64 image in,
// vector out) rather than an OpenAI-compatible API.
package multimodal

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/umkm-go/umkm-ai-backend/internal/domain"
)

// Embedder calls the multimodal embedding endpoint.
type Embedder struct {
	endpoint   string
	apiKey     string
	dimensions int
	httpClient *http.Client
	logger     *zap.Logger
}

// Config holds the multimodal embedding settings.
type Config struct {
	Endpoint   string
	APIKey     string
	Dimensions int
	Timeout    time.Duration
	Logger     *zap.Logger
}

// NewEmbedder creates a multimodal image embedding client.
func NewEmbedder(cfg *Config) *Embedder {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Embedder{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		dimensions: cfg.Dimensions,
		httpClient: &http.Client{Timeout: timeout},
		logger:     cfg.Logger,
	}
}

type embedRequest struct {
	ImageBase64 string `json:"image_base64"`
	MIMEType    string `json:"mime_type"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// EmbedImage implements domain.ImageEmbedder.
func (e *Embedder) EmbedImage(ctx context.Context, data []byte, mimeType string) ([]float32, error) {
	payload, err := json.Marshal(embedRequest{
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		MIMEType:    mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal image embed request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build image embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image embed request failed: %v: %w", err, domain.ErrEmbeddingProvider)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("image embed API error %d: %s: %w",
			resp.StatusCode, string(detail), domain.ErrEmbeddingProvider)
	}

	var parsed embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode image embed response: %v: %w", err, domain.ErrEmbeddingProvider)
	}
	if len(parsed.Embedding) == 0 {
		return nil, fmt.Errorf("empty image embedding: %w", domain.ErrEmbeddingProvider)
	}
	if e.dimensions > 0 && len(parsed.Embedding) != e.dimensions {
		return nil, fmt.Errorf("image embedding dimension mismatch: got %d, want %d: %w",
			len(parsed.Embedding), e.dimensions, domain.ErrEmbeddingProvider)
	}

	return parsed.Embedding, nil
}

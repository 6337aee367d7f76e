package operational

import (
	"context"

	"github.com/umkm-go/umkm-ai-backend/internal/domain"
)

// Generator produces model completions.
type Generator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (string, error)
}

// Response pairs the model's narrated insights with the deterministic
// statistics they were derived from.
type Response struct {
	Insights   string                 `json:"insights"`
	Statistics domain.SalesStatistics `json:"statistics"`
}

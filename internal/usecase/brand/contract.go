package brand

import (
	"context"

	"github.com/umkm-go/umkm-ai-backend/internal/domain"
)

// Generator produces model completions, optionally conditioned on an image.
type Generator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (string, error)
}

// VisualSearcher runs nearest-neighbor lookups against the visual index.
type VisualSearcher interface {
	KNN(ctx context.Context, q domain.KNNQuery) ([]domain.SearchHit, error)
}

// Params are the visual knowledge base lookup settings.
type Params struct {
	VisualIndex   string
	K             int
	NumCandidates int
}

// Degraded step names reported on soft-failed parts of the flow.
const (
	DegradedImageTagging = "image_tagging"
	DegradedVisualSearch = "visual_search"
)

// Response is the brand agent's output. Degraded lists the steps that soft-
// failed while the request as a whole still succeeded.
type Response struct {
	BrandKit domain.BrandKit `json:"brand_kit"`
	Degraded []string        `json:"degraded,omitempty"`
}

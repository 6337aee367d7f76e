package proactive

import (
	"context"

	"github.com/umkm-go/umkm-ai-backend/internal/domain"
)

// Notifier dispatches a push notification. Implementations are optional;
// a nil Notifier disables dispatch entirely.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// Params configure the feed scan.
type Params struct {
	FeedURL    string
	FeedSource string
	Keywords   []string
}

// Response is the proactive agent's scan result.
type Response struct {
	FoundOpportunities []domain.Opportunity `json:"found_opportunities"`
}

package health

import "context"

// SearchChecker checks search cluster availability.
type SearchChecker interface {
	HealthCheck(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}

// CachePinger checks the optional embedding cache.
type CachePinger interface {
	Ping(ctx context.Context) error
}

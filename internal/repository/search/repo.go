// Package search issues hybrid and k-NN queries against the Elasticsearch
// cluster holding the UMKM knowledge bases. Ranking fusion happens inside the
// engine; this repository never re-ranks.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"

	"github.com/umkm-go/umkm-ai-backend/internal/domain"
	"github.com/umkm-go/umkm-ai-backend/internal/metrics"
)

// Config holds search cluster connection settings.
type Config struct {
	Addresses []string
	APIKey    string
	Username  string
	Password  string
}

// Repo wraps the Elasticsearch client.
type Repo struct {
	es     *elasticsearch.Client
	logger *zap.Logger
}

// New creates an Elasticsearch-backed search repository.
func New(cfg Config, logger *zap.Logger) (*Repo, error) {
	esCfg := elasticsearch.Config{
		Addresses: cfg.Addresses,
		APIKey:    cfg.APIKey,
	}
	if cfg.Username != "" {
		esCfg.Username = cfg.Username
		esCfg.Password = cfg.Password
	}

	es, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	return &Repo{es: es, logger: logger}, nil
}

// Hybrid runs a lexical match OR-combined with a knn clause. The engine fuses
// the two ranking signals; hits come back in engine order.
func (r *Repo) Hybrid(ctx context.Context, q domain.HybridQuery) ([]domain.SearchHit, error) {
	body := map[string]any{
		"query": map[string]any{
			"match": map[string]any{
				q.TextField: map[string]any{"query": q.Query},
			},
		},
		"knn": map[string]any{
			"field":          "embedding",
			"query_vector":   q.Vector,
			"k":              q.K,
			"num_candidates": q.NumCandidates,
		},
	}
	return r.search(ctx, q.Index, body)
}

// KNN runs a nearest-neighbor query against the vector field, pre-filtered by
// tags when any are given.
func (r *Repo) KNN(ctx context.Context, q domain.KNNQuery) ([]domain.SearchHit, error) {
	knn := map[string]any{
		"field":          "embedding",
		"query_vector":   q.Vector,
		"k":              q.K,
		"num_candidates": q.NumCandidates,
	}
	if len(q.FilterTags) > 0 {
		knn["filter"] = map[string]any{
			"terms": map[string]any{"tags": q.FilterTags},
		}
	}
	return r.search(ctx, q.Index, map[string]any{"knn": knn})
}

func (r *Repo) search(ctx context.Context, index string, body map[string]any) ([]domain.SearchHit, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	res, err := r.es.Search(
		r.es.Search.WithContext(ctx),
		r.es.Search.WithIndex(index),
		r.es.Search.WithBody(bytes.NewReader(payload)),
	)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(index, "error").Inc()
		return nil, fmt.Errorf("search %s: %v: %w", index, err, domain.ErrSearchUnavailable)
	}
	defer res.Body.Close()

	if res.IsError() {
		metrics.SearchRequestsTotal.WithLabelValues(index, "error").Inc()
		detail, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		return nil, fmt.Errorf("search %s: %s: %s: %w",
			index, res.Status(), string(detail), domain.ErrUpstreamCall)
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Score  float64        `json:"_score"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(index, "error").Inc()
		return nil, fmt.Errorf("decode search response: %v: %w", err, domain.ErrUpstreamCall)
	}

	metrics.SearchRequestsTotal.WithLabelValues(index, "success").Inc()

	hits := make([]domain.SearchHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		hits = append(hits, domain.SearchHit{Score: h.Score, Source: h.Source})
	}
	return hits, nil
}

// HealthCheck pings the cluster.
func (r *Repo) HealthCheck(ctx context.Context) error {
	res, err := r.es.Ping(r.es.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping error: %s", res.Status())
	}
	return nil
}

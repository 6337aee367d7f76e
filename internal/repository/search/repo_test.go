package search

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"

	"github.com/umkm-go/umkm-ai-backend/internal/domain"
)

// fakeTransport serves canned Elasticsearch responses and records the last request.
type fakeTransport struct {
	status   int
	body     string
	err      error
	lastPath string
	lastBody []byte
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastPath = req.URL.Path
	if req.Body != nil {
		f.lastBody, _ = io.ReadAll(req.Body)
	}
	header := http.Header{}
	header.Set("X-Elastic-Product", "Elasticsearch")
	header.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode: f.status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(f.body)),
	}, nil
}

func newTestRepo(t *testing.T, ft *fakeTransport) *Repo {
	t.Helper()
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://elasticsearch.test:9200"},
		Transport: ft,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return &Repo{es: es, logger: zap.NewNop()}
}

const hybridResponse = `{
	"hits": {
		"hits": [
			{"_score": 11.2, "_source": {"chunk_id": "uu20-ch1-3", "chapter_title": "BAB I", "text": "isi pasal"}},
			{"_score": 4.5, "_source": {"chunk_id": "uu20-ch2-1", "chapter_title": "BAB II", "text": "isi lain"}}
		]
	}
}`

func TestHybrid_BuildsMatchAndKNNClauses(t *testing.T) {
	ft := &fakeTransport{status: http.StatusOK, body: hybridResponse}
	repo := newTestRepo(t, ft)

	hits, err := repo.Hybrid(context.Background(), domain.HybridQuery{
		Index:         "umkm_legal_docs",
		TextField:     "text",
		Query:         "syarat izin usaha",
		Vector:        []float32{0.1, 0.2},
		K:             5,
		NumCandidates: 50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ft.lastPath != "/umkm_legal_docs/_search" {
		t.Errorf("path = %q", ft.lastPath)
	}

	var body struct {
		Query struct {
			Match map[string]struct {
				Query string `json:"query"`
			} `json:"match"`
		} `json:"query"`
		KNN struct {
			Field         string    `json:"field"`
			QueryVector   []float32 `json:"query_vector"`
			K             int       `json:"k"`
			NumCandidates int       `json:"num_candidates"`
		} `json:"knn"`
	}
	if err := json.Unmarshal(ft.lastBody, &body); err != nil {
		t.Fatalf("unmarshal request body: %v", err)
	}
	if body.Query.Match["text"].Query != "syarat izin usaha" {
		t.Errorf("match clause = %+v", body.Query.Match)
	}
	if body.KNN.Field != "embedding" || body.KNN.K != 5 || body.KNN.NumCandidates != 50 {
		t.Errorf("knn clause = %+v", body.KNN)
	}

	if len(hits) != 2 {
		t.Fatalf("hits = %d, want 2", len(hits))
	}
	if hits[0].Score != 11.2 || hits[1].Score != 4.5 {
		t.Errorf("scores must be reported verbatim, got %v %v", hits[0].Score, hits[1].Score)
	}
	if hits[0].Str("chunk_id") != "uu20-ch1-3" {
		t.Errorf("chunk_id = %q", hits[0].Str("chunk_id"))
	}
}

func TestKNN_TagFilter(t *testing.T) {
	ft := &fakeTransport{status: http.StatusOK, body: `{"hits":{"hits":[]}}`}
	repo := newTestRepo(t, ft)

	_, err := repo.KNN(context.Background(), domain.KNNQuery{
		Index:         "umkm_visual_kb",
		Vector:        []float32{0.5},
		K:             3,
		NumCandidates: 50,
		FilterTags:    []string{"coffee", "cup"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var body struct {
		KNN struct {
			Filter struct {
				Terms map[string][]string `json:"terms"`
			} `json:"filter"`
		} `json:"knn"`
	}
	if err := json.Unmarshal(ft.lastBody, &body); err != nil {
		t.Fatalf("unmarshal request body: %v", err)
	}
	tags := body.KNN.Filter.Terms["tags"]
	if len(tags) != 2 || tags[0] != "coffee" {
		t.Errorf("filter tags = %v", tags)
	}
}

func TestKNN_NoFilterWhenTagsEmpty(t *testing.T) {
	ft := &fakeTransport{status: http.StatusOK, body: `{"hits":{"hits":[]}}`}
	repo := newTestRepo(t, ft)

	if _, err := repo.KNN(context.Background(), domain.KNNQuery{
		Index: "umkm_visual_kb", Vector: []float32{0.5}, K: 3, NumCandidates: 50,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(ft.lastBody), "filter") {
		t.Errorf("empty tag list must not add a filter clause: %s", ft.lastBody)
	}
}

func TestSearch_ErrorStatus(t *testing.T) {
	ft := &fakeTransport{status: http.StatusBadRequest, body: `{"error":{"reason":"bad query"}}`}
	repo := newTestRepo(t, ft)

	_, err := repo.Hybrid(context.Background(), domain.HybridQuery{Index: "idx", TextField: "text", Query: "q"})
	if !errors.Is(err, domain.ErrUpstreamCall) {
		t.Fatalf("err = %v, want ErrUpstreamCall", err)
	}
}

func TestSearch_NetworkError(t *testing.T) {
	ft := &fakeTransport{err: errors.New("connection refused")}
	repo := newTestRepo(t, ft)

	_, err := repo.Hybrid(context.Background(), domain.HybridQuery{Index: "idx", TextField: "text", Query: "q"})
	if !errors.Is(err, domain.ErrSearchUnavailable) {
		t.Fatalf("err = %v, want ErrSearchUnavailable", err)
	}
}

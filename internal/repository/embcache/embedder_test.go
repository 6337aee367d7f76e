package embcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/umkm-go/umkm-ai-backend/internal/db"
	"github.com/umkm-go/umkm-ai-backend/internal/domain"
)

type fakeStore struct {
	data   map[string][]byte
	getErr error
	setErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string][]byte{}}
}

func (f *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (f *fakeStore) SetWithTTL(_ context.Context, key string, value []byte, _ time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}

type countingEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (c *countingEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	c.calls++
	if c.err != nil {
		return domain.EmbeddingResult{}, c.err
	}
	return domain.EmbeddingResult{Embedding: c.vec, TotalTokens: 7}, nil
}

func TestEmbed_MissThenHit(t *testing.T) {
	store := newFakeStore()
	inner := &countingEmbedder{vec: []float32{0.25, -1.5, 3}}
	cached := New(inner, store, time.Hour, nil, zap.NewNop())

	first, err := cached.Embed(context.Background(), "izin usaha")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("inner calls = %d, want 1", inner.calls)
	}
	if first.TotalTokens != 7 {
		t.Errorf("miss should report inner token usage, got %d", first.TotalTokens)
	}

	second, err := cached.Embed(context.Background(), "izin usaha")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d after hit, want 1", inner.calls)
	}
	if second.TotalTokens != 0 {
		t.Errorf("hit should report zero tokens, got %d", second.TotalTokens)
	}

	if len(second.Embedding) != len(first.Embedding) {
		t.Fatalf("hit vector length = %d, want %d", len(second.Embedding), len(first.Embedding))
	}
	for i := range first.Embedding {
		if first.Embedding[i] != second.Embedding[i] {
			t.Errorf("vector[%d] = %v after round-trip, want %v", i, second.Embedding[i], first.Embedding[i])
		}
	}
}

func TestEmbed_StoreFailureFallsThrough(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("cache down")
	store.setErr = errors.New("cache down")
	inner := &countingEmbedder{vec: []float32{1}}
	cached := New(inner, store, time.Hour, nil, zap.NewNop())

	if _, err := cached.Embed(context.Background(), "q"); err != nil {
		t.Fatalf("store failure must not fail the embed: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
}

func TestEmbed_InnerErrorPropagates(t *testing.T) {
	inner := &countingEmbedder{err: errors.New("provider down")}
	cached := New(inner, newFakeStore(), time.Hour, nil, zap.NewNop())

	if _, err := cached.Embed(context.Background(), "q"); err == nil {
		t.Fatal("expected error from inner embedder")
	}
}

func TestBytesToVector_InvalidLength(t *testing.T) {
	if _, err := bytesToVector([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for truncated cache data")
	}
}

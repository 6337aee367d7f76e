package proactive

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/umkm-go/umkm-ai-backend/internal/domain"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Antara News - Ekonomi Bisnis</title>
    <item>
      <title>Pameran UMKM digelar di Jakarta</title>
      <link>https://example.com/pameran-umkm</link>
      <description>Ratusan pelaku usaha kecil ikut serta.</description>
    </item>
    <item>
      <title>Harga emas naik hari ini</title>
      <link>https://example.com/harga-emas</link>
      <description>Kenaikan dipicu pasar global.</description>
    </item>
    <item>
      <title>Pemerintah buka program kredit usaha rakyat</title>
      <link>https://example.com/kur</link>
      <description>Bunga rendah untuk pelaku usaha.</description>
    </item>
  </channel>
</rss>`

type mockNotifier struct {
	err    error
	called bool
	title  string
	body   string
}

func (m *mockNotifier) Notify(_ context.Context, title, body string) error {
	m.called = true
	m.title = title
	m.body = body
	return m.err
}

func testParams(feedURL string) Params {
	return Params{
		FeedURL:    feedURL,
		FeedSource: "Antara News Bisnis",
		Keywords: []string{
			"umkm", "peluang", "ekspor", "bantuan",
			"pameran", "bazar", "subsidi", "kredit usaha",
		},
	}
}

func feedServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != userAgent {
			t.Errorf("User-Agent = %q, want %q", got, userAgent)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestScan_FiltersByKeywords(t *testing.T) {
	srv := feedServer(t, http.StatusOK, sampleFeed)
	svc := New(srv.Client(), nil, testParams(srv.URL), zap.NewNop())

	resp, err := svc.Scan(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.FoundOpportunities) != 2 {
		t.Fatalf("found = %d, want 2", len(resp.FoundOpportunities))
	}
	first := resp.FoundOpportunities[0]
	if first.Title != "Pameran UMKM digelar di Jakarta" {
		t.Errorf("title = %q", first.Title)
	}
	if first.Source != "Antara News Bisnis" || first.Link != "https://example.com/pameran-umkm" {
		t.Errorf("opportunity = %+v", first)
	}
	for _, opp := range resp.FoundOpportunities {
		if opp.Title == "Harga emas naik hari ini" {
			t.Error("item without keywords must be excluded")
		}
	}
}

func TestScan_KeywordCaseInsensitive(t *testing.T) {
	srv := feedServer(t, http.StatusOK, sampleFeed)
	params := testParams(srv.URL)
	params.Keywords = []string{"UMKM", "Kredit Usaha"}
	svc := New(srv.Client(), nil, params, zap.NewNop())

	resp, err := svc.Scan(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.FoundOpportunities) != 2 {
		t.Fatalf("found = %d, want 2 (keyword case must not matter)", len(resp.FoundOpportunities))
	}
}

func TestScan_NoMatchesReturnsEmptyList(t *testing.T) {
	feed := `<rss><channel><item><title>Harga emas naik hari ini</title></item></channel></rss>`
	srv := feedServer(t, http.StatusOK, feed)
	notifier := &mockNotifier{}
	svc := New(srv.Client(), notifier, testParams(srv.URL), zap.NewNop())

	resp, err := svc.Scan(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.FoundOpportunities) != 0 {
		t.Errorf("found = %+v, want none", resp.FoundOpportunities)
	}
	if notifier.called {
		t.Error("no notification without opportunities")
	}
}

func TestScan_NotifiesOnOpportunities(t *testing.T) {
	srv := feedServer(t, http.StatusOK, sampleFeed)
	notifier := &mockNotifier{}
	svc := New(srv.Client(), notifier, testParams(srv.URL), zap.NewNop())

	if _, err := svc.Scan(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !notifier.called {
		t.Fatal("expected a notification")
	}
	if notifier.title != "Peluang Baru untuk UMKM Anda!" {
		t.Errorf("title = %q", notifier.title)
	}
	if notifier.body != "Pameran UMKM digelar di Jakarta (dan 1 peluang lainnya)" {
		t.Errorf("body = %q", notifier.body)
	}
}

func TestScan_NotificationFailureDoesNotFailScan(t *testing.T) {
	srv := feedServer(t, http.StatusOK, sampleFeed)
	notifier := &mockNotifier{err: errors.New("sns down")}
	svc := New(srv.Client(), notifier, testParams(srv.URL), zap.NewNop())

	resp, err := svc.Scan(context.Background())
	if err != nil {
		t.Fatalf("notification failure must not fail the scan: %v", err)
	}
	if len(resp.FoundOpportunities) != 2 {
		t.Errorf("found = %d, want 2", len(resp.FoundOpportunities))
	}
}

func TestScan_FeedErrors(t *testing.T) {
	t.Run("http status", func(t *testing.T) {
		srv := feedServer(t, http.StatusBadGateway, "oops")
		svc := New(srv.Client(), nil, testParams(srv.URL), zap.NewNop())

		_, err := svc.Scan(context.Background())
		if !errors.Is(err, domain.ErrUpstreamCall) {
			t.Fatalf("err = %v, want ErrUpstreamCall", err)
		}
	})

	t.Run("malformed xml", func(t *testing.T) {
		srv := feedServer(t, http.StatusOK, "<rss><channel><item>")
		svc := New(srv.Client(), nil, testParams(srv.URL), zap.NewNop())

		_, err := svc.Scan(context.Background())
		if !errors.Is(err, domain.ErrUpstreamCall) {
			t.Fatalf("err = %v, want ErrUpstreamCall", err)
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		svc := New(http.DefaultClient, nil, testParams("http://127.0.0.1:1/feed.xml"), zap.NewNop())

		_, err := svc.Scan(context.Background())
		if !errors.Is(err, domain.ErrUpstreamCall) {
			t.Fatalf("err = %v, want ErrUpstreamCall", err)
		}
	})
}

package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLegalQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/agent/legal/query" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["query"] != "syarat NIB" {
			t.Errorf("query = %q", req["query"])
		}
		json.NewEncoder(w).Encode(map[string]any{
			"answer": "Berdasarkan UU...",
			"retrieved_chunks": []map[string]any{
				{"chunk_id": "uu20-1", "text": "isi", "score": 8.2},
			},
		})
	}))
	defer srv.Close()

	client := New(srv.URL)
	resp, err := client.LegalQuery(context.Background(), "syarat NIB")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Answer != "Berdasarkan UU..." {
		t.Errorf("answer = %q", resp.Answer)
	}
	if len(resp.RetrievedChunks) != 1 || resp.RetrievedChunks[0].ChunkID != "uu20-1" {
		t.Errorf("chunks = %+v", resp.RetrievedChunks)
	}
}

func TestQuery_Routed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"agent_used": "UNKNOWN",
			"answer":     "Sorry...",
		})
	}))
	defer srv.Close()

	resp, err := New(srv.URL).Query(context.Background(), "halo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AgentUsed != IntentUnknown {
		t.Errorf("agent_used = %q", resp.AgentUsed)
	}
}

func TestAnalyzeSales_Multipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if ct := header.Header.Get("Content-Type"); ct != "text/csv" {
			t.Errorf("file content type = %q", ct)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"insights":   "ok",
			"statistics": map[string]any{"total_revenue": 35.0},
		})
	}))
	defer srv.Close()

	resp, err := New(srv.URL).AnalyzeSales(context.Background(), []byte("product_name,quantity,price\nA,2,10\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Statistics.TotalRevenue != 35.0 {
		t.Errorf("total_revenue = %v", resp.Statistics.TotalRevenue)
	}
}

func TestGenerateBrandKit_SendsBusinessName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.FormValue("business_name"); got != "Kopi Senja" {
			t.Errorf("business_name = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{"status": "success"})
	}))
	defer srv.Close()

	resp, err := New(srv.URL).GenerateBrandKit(context.Background(), "Kopi Senja", []byte{1, 2}, "image/png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != "success" {
		t.Errorf("status = %q", resp.Status)
	}
}

func TestAPIErrorDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{
			"code":    CodeUpstreamUnavailable,
			"message": "search is unavailable",
		})
	}))
	defer srv.Close()

	_, err := New(srv.URL).LegalQuery(context.Background(), "q")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusServiceUnavailable || apiErr.Code != CodeUpstreamUnavailable {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestAPIError_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).ScanOpportunities(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Code != CodeInternalError {
		t.Errorf("code = %q, want fallback", apiErr.Code)
	}
}

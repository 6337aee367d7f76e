package sdk

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
)

type queryRequest struct {
	Query  string `json:"query"`
	UserID string `json:"user_id,omitempty"`
}

// LegalAnswer is the legal agent's response.
type LegalAnswer struct {
	Answer          string        `json:"answer"`
	RetrievedChunks []SourceChunk `json:"retrieved_chunks"`
}

// LegalQuery asks the legal agent.
func (c *Client) LegalQuery(ctx context.Context, query string) (LegalAnswer, error) {
	var out LegalAnswer
	err := c.postJSON(ctx, "/api/v1/agent/legal/query", queryRequest{Query: query}, &out)
	return out, err
}

// MarketingAdvice is the marketing agent's response.
type MarketingAdvice struct {
	Answer            string          `json:"answer"`
	RetrievedArticles []SourceArticle `json:"retrieved_articles"`
}

// MarketingQuery asks the marketing agent.
func (c *Client) MarketingQuery(ctx context.Context, query string) (MarketingAdvice, error) {
	var out MarketingAdvice
	err := c.postJSON(ctx, "/api/v1/agent/marketing/query", queryRequest{Query: query}, &out)
	return out, err
}

// RoutedAnswer is the orchestrator's response; AgentUsed names the agent that
// served the query and only the matching payload fields are set.
type RoutedAnswer struct {
	AgentUsed         Intent          `json:"agent_used"`
	Answer            string          `json:"answer"`
	RetrievedChunks   []SourceChunk   `json:"retrieved_chunks,omitempty"`
	RetrievedArticles []SourceArticle `json:"retrieved_articles,omitempty"`
}

// Query routes a free-text query through the orchestrator.
func (c *Client) Query(ctx context.Context, query string) (RoutedAnswer, error) {
	var out RoutedAnswer
	err := c.postJSON(ctx, "/api/v1/orchestrator/query", queryRequest{Query: query}, &out)
	return out, err
}

// SalesAnalysis is the operational agent's response.
type SalesAnalysis struct {
	Insights   string          `json:"insights"`
	Statistics SalesStatistics `json:"statistics"`
}

// AnalyzeSales uploads a CSV sales dataset for analysis.
func (c *Client) AnalyzeSales(ctx context.Context, csvData []byte) (SalesAnalysis, error) {
	var out SalesAnalysis
	body, contentType, err := fileForm("sales.csv", "text/csv", csvData, nil)
	if err != nil {
		return out, err
	}
	err = c.do(ctx, "/api/v1/agent/operational/analyze", contentType, body, &out)
	return out, err
}

// BrandKitResult is the brand agent's response.
type BrandKitResult struct {
	Status   string   `json:"status"`
	BrandKit BrandKit `json:"brand_kit"`
	Degraded []string `json:"degraded,omitempty"`
}

// GenerateBrandKit uploads a product image and generates a brand kit.
func (c *Client) GenerateBrandKit(ctx context.Context, businessName string, image []byte, mimeType string) (BrandKitResult, error) {
	var out BrandKitResult
	body, contentType, err := fileForm("product", mimeType, image, map[string]string{
		"business_name": businessName,
	})
	if err != nil {
		return out, err
	}
	err = c.do(ctx, "/api/v1/agent/brand/generate_kit", contentType, body, &out)
	return out, err
}

// OpportunityScan is the proactive agent's response.
type OpportunityScan struct {
	Status             string        `json:"status"`
	FoundOpportunities []Opportunity `json:"found_opportunities"`
}

// ScanOpportunities triggers an RSS opportunity scan.
func (c *Client) ScanOpportunities(ctx context.Context) (OpportunityScan, error) {
	var out OpportunityScan
	err := c.do(ctx, "/api/v1/agent/proactive/scan_opportunities", "", nil, &out)
	return out, err
}

// fileForm builds a multipart body with one file part plus plain fields.
func fileForm(fileName, contentType string, data []byte, fields map[string]string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("write file part: %w", err)
	}

	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}

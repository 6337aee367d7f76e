// Package proactive implements the opportunity scan agent: fetch a business
// news RSS feed, keyword-filter the items, and optionally push a notification
// when something relevant turns up.
package proactive

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/umkm-go/umkm-ai-backend/internal/domain"
)

const userAgent = "UMKM-Go-AI-Bot/1.0"

// Service handles opportunity scans.
type Service struct {
	client   *http.Client
	notifier Notifier
	params   Params
	log      *zap.Logger
}

// New creates a proactive agent service. The client carries the fetch timeout;
// notifier may be nil when push dispatch is not configured.
func New(client *http.Client, notifier Notifier, params Params, log *zap.Logger) *Service {
	return &Service{client: client, notifier: notifier, params: params, log: log}
}

// Scan fetches the configured feed and returns the items whose title or
// description contains any of the scan keywords. A notification failure never
// fails the scan.
func (s *Service) Scan(ctx context.Context) (Response, error) {
	feed, err := s.fetchFeed(ctx)
	if err != nil {
		return Response{}, err
	}

	found := make([]domain.Opportunity, 0)
	for _, item := range feed.Channel.Items {
		if !s.matches(item) {
			continue
		}
		found = append(found, domain.Opportunity{
			Source:      s.params.FeedSource,
			Title:       strings.TrimSpace(item.Title),
			Link:        strings.TrimSpace(item.Link),
			Description: strings.TrimSpace(item.Description),
		})
	}

	s.log.Info("opportunity scan finished",
		zap.String("feed", s.params.FeedURL),
		zap.Int("items", len(feed.Channel.Items)),
		zap.Int("found", len(found)),
	)

	if len(found) > 0 && s.notifier != nil {
		title := "Peluang Baru untuk UMKM Anda!"
		body := fmt.Sprintf("%s (dan %d peluang lainnya)", found[0].Title, len(found)-1)
		if len(found) == 1 {
			body = found[0].Title
		}
		if err := s.notifier.Notify(ctx, title, body); err != nil {
			s.log.Warn("push notification failed", zap.Error(err))
		}
	}

	return Response{FoundOpportunities: found}, nil
}

func (s *Service) fetchFeed(ctx context.Context) (rssFeed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.params.FeedURL, nil)
	if err != nil {
		return rssFeed{}, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return rssFeed{}, fmt.Errorf("%w: fetch feed: %v", domain.ErrUpstreamCall, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return rssFeed{}, fmt.Errorf("%w: feed returned status %d", domain.ErrUpstreamCall, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return rssFeed{}, fmt.Errorf("%w: read feed body: %v", domain.ErrUpstreamCall, err)
	}

	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return rssFeed{}, fmt.Errorf("%w: parse feed XML: %v", domain.ErrUpstreamCall, err)
	}
	return feed, nil
}

// matches is case-insensitive on both sides; keywords may be configured in
// any case.
func (s *Service) matches(item rssItem) bool {
	haystack := strings.ToLower(item.Title) + " " + strings.ToLower(item.Description)
	for _, keyword := range s.params.Keywords {
		if strings.Contains(haystack, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// Package chi implements the HTTP API of the UMKM agent backend.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/umkm-go/umkm-ai-backend/internal/domain"
	branduc "github.com/umkm-go/umkm-ai-backend/internal/usecase/brand"
	healthuc "github.com/umkm-go/umkm-ai-backend/internal/usecase/health"
	legaluc "github.com/umkm-go/umkm-ai-backend/internal/usecase/legal"
	marketinguc "github.com/umkm-go/umkm-ai-backend/internal/usecase/marketing"
	operationaluc "github.com/umkm-go/umkm-ai-backend/internal/usecase/operational"
	orchestratoruc "github.com/umkm-go/umkm-ai-backend/internal/usecase/orchestrator"
	proactiveuc "github.com/umkm-go/umkm-ai-backend/internal/usecase/proactive"
)

// maxUploadBytes bounds multipart uploads (CSV datasets, product images).
const maxUploadBytes = 10 << 20

const defaultBusinessName = "My UMKM"

// Agent contracts consumed by the HTTP layer.
type (
	LegalAgent interface {
		Answer(ctx context.Context, query string) (legaluc.Response, error)
	}
	MarketingAgent interface {
		Advise(ctx context.Context, query string) (marketinguc.Response, error)
	}
	OperationalAgent interface {
		Analyze(ctx context.Context, dataset io.Reader) (operationaluc.Response, error)
	}
	BrandAgent interface {
		GenerateKit(ctx context.Context, businessName string, image []byte, mimeType string) (branduc.Response, error)
	}
	ProactiveAgent interface {
		Scan(ctx context.Context) (proactiveuc.Response, error)
	}
	Orchestrator interface {
		Route(ctx context.Context, query string) (orchestratoruc.Response, error)
	}
	HealthService interface {
		Check(ctx context.Context) healthuc.Report
	}
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server exposes the agent endpoints.
type Server struct {
	legal         LegalAgent
	marketing     MarketingAgent
	operational   OperationalAgent
	brand         BrandAgent
	proactive     ProactiveAgent
	orchestrator  Orchestrator
	health        HealthService
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	legal LegalAgent,
	marketing MarketingAgent,
	operational OperationalAgent,
	brand BrandAgent,
	proactive ProactiveAgent,
	orchestrator Orchestrator,
	health HealthService,
	logger *zap.Logger,
) *Server {
	s := &Server{
		legal:        legal,
		marketing:    marketing,
		operational:  operational,
		brand:        brand,
		proactive:    proactive,
		orchestrator: orchestrator,
		health:       health,
		logger:       logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrEmbeddingUnavailable, http.StatusServiceUnavailable, codeUpstreamUnavailable),
		sentinelHandler(domain.ErrSearchUnavailable, http.StatusServiceUnavailable, codeUpstreamUnavailable),
		sentinelHandler(domain.ErrGenerationUnavailable, http.StatusServiceUnavailable, codeUpstreamUnavailable),
		sentinelHandler(domain.ErrEmbeddingProvider, http.StatusBadGateway, codeUpstreamCallFailed),
		sentinelHandler(domain.ErrGenerationProvider, http.StatusBadGateway, codeUpstreamCallFailed),
		sentinelHandler(domain.ErrUpstreamCall, http.StatusBadGateway, codeUpstreamCallFailed),
		sentinelHandler(domain.ErrGenerationFormat, http.StatusInternalServerError, codeGenerationFormat),
	}
	return s
}

// Routes mounts every endpoint on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/agent/legal/query", s.LegalQuery)
		r.Post("/agent/marketing/query", s.MarketingQuery)
		r.Post("/agent/operational/analyze", s.OperationalAnalyze)
		r.Post("/agent/brand/generate_kit", s.BrandGenerateKit)
		r.Post("/agent/proactive/scan_opportunities", s.ProactiveScan)
		r.Post("/orchestrator/query", s.OrchestratorQuery)
	})
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// LegalQuery handles POST /api/v1/agent/legal/query.
func (s *Server) LegalQuery(w http.ResponseWriter, r *http.Request) {
	query, ok := s.decodeQuery(w, r)
	if !ok {
		return
	}

	resp, err := s.legal.Answer(r.Context(), query.Text)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// MarketingQuery handles POST /api/v1/agent/marketing/query.
func (s *Server) MarketingQuery(w http.ResponseWriter, r *http.Request) {
	query, ok := s.decodeQuery(w, r)
	if !ok {
		return
	}

	resp, err := s.marketing.Advise(r.Context(), query.Text)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// OperationalAnalyze handles POST /api/v1/agent/operational/analyze.
// The sales dataset arrives as a multipart CSV upload under the "file" field.
func (s *Server) OperationalAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	if ct := header.Header.Get("Content-Type"); ct != "" && ct != "text/csv" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "invalid file type, please upload a CSV file")
		return
	}

	resp, err := s.operational.Analyze(r.Context(), file)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// brandResponse adds the status marker of the brand endpoint.
type brandResponse struct {
	Status   string          `json:"status"`
	BrandKit domain.BrandKit `json:"brand_kit"`
	Degraded []string        `json:"degraded,omitempty"`
}

// BrandGenerateKit handles POST /api/v1/agent/brand/generate_kit.
// The product image arrives under the multipart "file" field; the business
// name under "business_name" (optional, a generic default applies).
func (s *Server) BrandGenerateKit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "invalid file type, please upload an image")
		return
	}

	image, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "read image: "+err.Error())
		return
	}

	businessName := r.FormValue("business_name")
	if strings.TrimSpace(businessName) == "" {
		businessName = defaultBusinessName
	}

	resp, err := s.brand.GenerateKit(r.Context(), businessName, image, mimeType)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, brandResponse{
		Status:   "success",
		BrandKit: resp.BrandKit,
		Degraded: resp.Degraded,
	})
}

// proactiveResponse adds the status marker of the scan endpoint.
type proactiveResponse struct {
	Status             string               `json:"status"`
	FoundOpportunities []domain.Opportunity `json:"found_opportunities"`
}

// ProactiveScan handles POST /api/v1/agent/proactive/scan_opportunities.
func (s *Server) ProactiveScan(w http.ResponseWriter, r *http.Request) {
	resp, err := s.proactive.Scan(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proactiveResponse{
		Status:             "success",
		FoundOpportunities: resp.FoundOpportunities,
	})
}

// OrchestratorQuery handles POST /api/v1/orchestrator/query.
func (s *Server) OrchestratorQuery(w http.ResponseWriter, r *http.Request) {
	query, ok := s.decodeQuery(w, r)
	if !ok {
		return
	}

	resp, err := s.orchestrator.Route(r.Context(), query.Text)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) decodeQuery(w http.ResponseWriter, r *http.Request) (domain.Query, bool) {
	var query domain.Query
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return domain.Query{}, false
	}
	if strings.TrimSpace(query.Text) == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query is required")
		return domain.Query{}, false
	}
	return query, true
}

// Error codes of the JSON error envelope.
const (
	codeBadRequest          = "bad_request"
	codeValidationFailed    = "validation_failed"
	codeUpstreamUnavailable = "upstream_unavailable"
	codeUpstreamCallFailed  = "upstream_call_failed"
	codeGenerationFormat    = "generation_format_error"
	codeInternalError       = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel
// error. The upstream message travels to the client verbatim; there are no
// secrets in this pipeline's errors and the original text is the only
// diagnostic the caller gets.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

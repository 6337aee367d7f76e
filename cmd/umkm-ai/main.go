package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/umkm-go/umkm-ai-backend/internal/config"
	"github.com/umkm-go/umkm-ai-backend/internal/db"
	dbRedis "github.com/umkm-go/umkm-ai-backend/internal/db/redis"
	"github.com/umkm-go/umkm-ai-backend/internal/domain"
	logpkg "github.com/umkm-go/umkm-ai-backend/internal/logger"
	"github.com/umkm-go/umkm-ai-backend/internal/metrics"
	"github.com/umkm-go/umkm-ai-backend/internal/repository/embcache"
	searchrepo "github.com/umkm-go/umkm-ai-backend/internal/repository/search"
	chiTransport "github.com/umkm-go/umkm-ai-backend/internal/transport/chi"
	geminiGen "github.com/umkm-go/umkm-ai-backend/internal/transport/gemini"
	multimodalEmb "github.com/umkm-go/umkm-ai-backend/internal/transport/multimodal"
	openaiEmb "github.com/umkm-go/umkm-ai-backend/internal/transport/openai"
	snsNotify "github.com/umkm-go/umkm-ai-backend/internal/transport/sns"
	"github.com/umkm-go/umkm-ai-backend/internal/usecase/brand"
	healthuc "github.com/umkm-go/umkm-ai-backend/internal/usecase/health"
	legaluc "github.com/umkm-go/umkm-ai-backend/internal/usecase/legal"
	marketinguc "github.com/umkm-go/umkm-ai-backend/internal/usecase/marketing"
	operationaluc "github.com/umkm-go/umkm-ai-backend/internal/usecase/operational"
	orchestratoruc "github.com/umkm-go/umkm-ai-backend/internal/usecase/orchestrator"
	proactiveuc "github.com/umkm-go/umkm-ai-backend/internal/usecase/proactive"
	"github.com/umkm-go/umkm-ai-backend/internal/usecase/retrieval"
	"github.com/umkm-go/umkm-ai-backend/internal/version"
)

func main() {
	// Load .env when present (local development convenience).
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting UMKM AI backend",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("search_addrs", cfg.Elasticsearch.Addresses),
	)

	ctx := context.Background()

	// Register pipeline metrics explicitly (no init())
	metrics.RegisterPipelineMetrics()

	// Search cluster client
	searchRepo, err := searchrepo.New(searchrepo.Config{
		Addresses: cfg.Elasticsearch.Addresses,
		APIKey:    cfg.Elasticsearch.APIKey,
		Username:  cfg.Elasticsearch.Username,
		Password:  cfg.Elasticsearch.Password,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create search client", zap.Error(err))
	}

	// Optional Redis cache for query embeddings
	var cacheStore db.Store
	if cfg.Cache.Enabled {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, 30*time.Second); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		cacheStore = store
		logger.Info("Connected to embedding cache", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	// Text embedder (optional — retrieval degrades to EmbeddingUnavailable).
	// Pass nil interface (not typed nil pointer!) when not configured.
	var textEmbedder domain.Embedder
	var embeddingChecker healthuc.EmbeddingChecker
	if cfg.Embedding.BaseURL != "" {
		base := openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Logger:     logger,
		})
		textEmbedder = base
		embeddingChecker = base
		if cacheStore != nil {
			ttl := time.Duration(cfg.Cache.TTLHours) * time.Hour
			textEmbedder = embcache.New(base, cacheStore, ttl, metrics.EmbeddingCacheTotal, logger)
		}
		logger.Info("Text embedder created",
			zap.String("model", cfg.Embedding.Model),
			zap.Int("dimensions", cfg.Embedding.Dimensions),
			zap.Bool("cached", cacheStore != nil),
		)
	} else {
		logger.Warn("No text embedding provider configured, retrieval is unavailable")
	}

	// Image embedder (optional — brand flow skips the visual lookup).
	var imageEmbedder domain.ImageEmbedder
	if cfg.Embedding.ImageEndpoint != "" {
		imageEmbedder = multimodalEmb.NewEmbedder(&multimodalEmb.Config{
			Endpoint:   cfg.Embedding.ImageEndpoint,
			APIKey:     cfg.Embedding.APIKey,
			Dimensions: cfg.Embedding.ImageDimensions,
			Logger:     logger,
		})
		logger.Info("Image embedder created", zap.Int("dimensions", cfg.Embedding.ImageDimensions))
	}

	// Generative model
	generator, err := geminiGen.NewGenerator(ctx, &geminiGen.Config{
		APIKey: cfg.Gemini.APIKey,
		Model:  cfg.Gemini.Model,
		Logger: logger,
	})
	if err != nil {
		logger.Fatal("Failed to create generator", zap.Error(err))
	}
	defer func() { _ = generator.Close() }()
	logger.Info("Generator created", zap.String("model", cfg.Gemini.Model))

	// Optional push notifications for the proactive agent
	var notifier proactiveuc.Notifier
	if cfg.Proactive.TargetARN != "" {
		n, err := snsNotify.NewNotifier(ctx, cfg.Proactive.AWSRegion, cfg.Proactive.TargetARN)
		if err != nil {
			logger.Fatal("Failed to create notifier", zap.Error(err))
		}
		notifier = n
		logger.Info("Push notifier created", zap.String("region", cfg.Proactive.AWSRegion))
	}

	// Use case services
	retrievalSvc := retrieval.New(searchRepo, textEmbedder)
	legalSvc := legaluc.New(retrievalSvc, generator, legaluc.Params{
		Index:         cfg.Agents.Legal.Index,
		TextField:     cfg.Agents.Legal.TextField,
		K:             cfg.Agents.Legal.K,
		NumCandidates: cfg.Agents.Legal.NumCandidates,
	})
	marketingSvc := marketinguc.New(retrievalSvc, generator, marketinguc.Params{
		Index:          cfg.Agents.Marketing.Index,
		TextField:      cfg.Agents.Marketing.TextField,
		K:              cfg.Agents.Marketing.K,
		NumCandidates:  cfg.Agents.Marketing.NumCandidates,
		AnswerLanguage: cfg.Agents.Marketing.AnswerLanguage,
	})
	operationalSvc := operationaluc.New(generator)
	brandSvc := brand.New(generator, imageEmbedder, searchRepo, brand.Params{
		VisualIndex:   cfg.Agents.Brand.VisualIndex,
		K:             cfg.Agents.Brand.K,
		NumCandidates: cfg.Agents.Brand.NumCandidates,
	}, logger)
	proactiveSvc := proactiveuc.New(
		&http.Client{Timeout: time.Duration(cfg.Proactive.FetchTimeoutSec) * time.Second},
		notifier,
		proactiveuc.Params{
			FeedURL:    cfg.Proactive.FeedURL,
			FeedSource: cfg.Proactive.FeedSource,
			Keywords:   cfg.Proactive.Keywords,
		},
		logger,
	)
	orchestratorSvc := orchestratoruc.New(generator, legalSvc, marketingSvc)

	var cachePinger healthuc.CachePinger
	if cacheStore != nil {
		cachePinger = cacheStore
	}
	healthSvc := healthuc.New(searchRepo, embeddingChecker, cachePinger)

	// HTTP server
	server := chiTransport.NewServer(
		legalSvc, marketingSvc, operationalSvc, brandSvc, proactiveSvc, orchestratorSvc, healthSvc, logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}

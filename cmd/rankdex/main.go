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
	"go.uber.org/zap"

	"github.com/meridio/rankdex/internal/analysis"
	"github.com/meridio/rankdex/internal/config"
	"github.com/meridio/rankdex/internal/folding"
	"github.com/meridio/rankdex/internal/index"
	bleveIndex "github.com/meridio/rankdex/internal/index/bleve"
	redisIndex "github.com/meridio/rankdex/internal/index/redis"
	"github.com/meridio/rankdex/internal/language"
	logpkg "github.com/meridio/rankdex/internal/logger"
	"github.com/meridio/rankdex/internal/memo"
	"github.com/meridio/rankdex/internal/metrics"
	"github.com/meridio/rankdex/internal/schema"
	chiTransport "github.com/meridio/rankdex/internal/transport/chi"
	documentuc "github.com/meridio/rankdex/internal/usecase/document"
	searchuc "github.com/meridio/rankdex/internal/usecase/search"
	"github.com/meridio/rankdex/internal/version"
)

func main() {
	// Load configuration based on ENV
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

	logger.Info("Starting rankdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("backend_driver", cfg.Backend.Driver),
	)

	// Language chain: configured code, then fallback, then the default.
	lang := language.Resolve(cfg.Language.Code, cfg.Language.Fallback)
	baseLang := language.Base(lang)
	rerankLang := language.Base(language.ForRerank(cfg.Language.RerankOverride, lang))

	// Folding profile for the site language.
	resolver := folding.NewResolver(cfg.Folding.Default, cfg.Folding.Languages, cfg.Folding.KeepEnye)
	profile := resolver.Resolve(baseLang)
	normalizer := folding.NewNormalizer(profile)

	// Content schema shared by both engines.
	def, err := schema.Build(cfg.Search.IndexName, baseLang, schema.ContentFields())
	if err != nil {
		logger.Fatal("Failed to build schema", zap.Error(err))
	}

	// Create index backend based on driver
	var backend index.Backend
	switch cfg.Backend.Driver {
	case "bleve":
		backend = bleveIndex.New(bleveIndex.Config{Path: cfg.Backend.Path}, profile)
	case "redis":
		backend, err = redisIndex.NewStore(redisIndex.Config{
			Addrs:    cfg.Backend.Addrs,
			Username: cfg.Backend.Username,
			Password: cfg.Backend.Password,
			DB:       cfg.Backend.DB,
		})
	default:
		logger.Fatal("Unknown backend driver", zap.String("driver", cfg.Backend.Driver))
	}
	if err != nil {
		logger.Fatal("Failed to create index backend", zap.Error(err))
	}
	defer backend.Close()

	// Wait for the backend and install the schema.
	ctx := context.Background()
	if err := backend.WaitForReady(ctx, time.Duration(cfg.Backend.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Index backend not ready", zap.Error(err))
	}
	if err := backend.EnsureSchema(ctx, def); err != nil {
		logger.Fatal("Failed to ensure schema", zap.Error(err))
	}
	logger.Info("Index ready",
		zap.String("backend", backend.Name()),
		zap.String("index", def.Name),
		zap.String("language", lang),
	)

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	// Memoized normalization shared by the builder, reranker and indexer.
	cache, err := memo.New(cfg.Search.CacheSize, metrics.MemoCacheHits, metrics.MemoCacheMisses)
	if err != nil {
		logger.Fatal("Failed to create memo cache", zap.Error(err))
	}
	normalize := func(s string) string {
		return cache.Normalized(s, normalizer.Normalize)
	}

	// Comparison tokenizer follows the rerank language, not the index one.
	if ch := analysis.ResolveChain(rerankLang); ch.Fallback {
		logger.Warn("No analyzer chain for language, falling back to English",
			zap.String("language", rerankLang))
	}
	tokenizer := analysis.NewTokenizer(rerankLang, cfg.Search.StopwordsAdd, cfg.Search.StopwordsRemove)
	tokens := func(s string) []string {
		return cache.Tokens(s, tokenizer.Terms)
	}

	withNormalized := cfg.Search.ForceNormalized || backend.UsesNormalizedFields()

	// Create use case services
	searchSvc := searchuc.New(
		backend,
		searchuc.NewBuilder(normalize, withNormalized),
		searchuc.NewReranker(normalize, tokens),
		searchuc.Config{RerankPool: cfg.Search.RerankPool, RerankCeiling: cfg.Search.RerankCeiling},
		metrics.RerankPoolSize,
	)
	docSvc := documentuc.New(backend, normalize, withNormalized)

	// Create chi server
	server := chiTransport.NewServer(searchSvc, docSvc, backend, backend.Name(), logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
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

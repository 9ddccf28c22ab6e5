package main

import (
	"context"
	"encoding/json"
	"errors"
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
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/verity/internal/analyzer"
	"github.com/kailas-cloud/verity/internal/config"
	dbRedis "github.com/kailas-cloud/verity/internal/db/redis"
	logpkg "github.com/kailas-cloud/verity/internal/logger"
	"github.com/kailas-cloud/verity/internal/metrics"
	"github.com/kailas-cloud/verity/internal/model"
	"github.com/kailas-cloud/verity/internal/repository/audit"
	"github.com/kailas-cloud/verity/internal/repository/pagecache"
	chiTransport "github.com/kailas-cloud/verity/internal/transport/chi"
	"github.com/kailas-cloud/verity/internal/transport/fetch"
	openaiNarr "github.com/kailas-cloud/verity/internal/transport/openai"
	explainuc "github.com/kailas-cloud/verity/internal/usecase/explain"
	healthuc "github.com/kailas-cloud/verity/internal/usecase/health"
	predictuc "github.com/kailas-cloud/verity/internal/usecase/predict"
	scanuc "github.com/kailas-cloud/verity/internal/usecase/scan"
	"github.com/kailas-cloud/verity/internal/version"
)

func main() {
	// .env is optional; real environment variables win
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

	logger.Info("Starting verity API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("artifact", cfg.Model.ArtifactPath),
		zap.String("model_load", cfg.Model.Load),
		zap.String("audit_driver", cfg.Audit.Driver),
		zap.String("explain_provider", cfg.Explain.Provider),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterPredictionMetrics()
	metrics.RegisterExternalMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Model source: a missing or corrupt artifact means heuristic serving, never a crash.
	var source model.Source
	if cfg.Model.Load == config.LoadLazy {
		source = model.NewLazy(cfg.Model.ArtifactPath, logger)
	} else {
		source = model.NewStatic(model.Resolve(cfg.Model.ArtifactPath, logger))
	}

	// Redis-protocol store backs the audit stream and the page cache.
	var store *dbRedis.Store
	if cfg.Audit.UsesRedis() {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Audit.Addrs,
			Username: cfg.Audit.Username,
			Password: cfg.Audit.Password,
			DB:       cfg.Audit.DB,
		})
		if err != nil {
			logger.Fatal("Failed to create audit store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Audit.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Audit store not ready", zap.Error(err))
		}
		logger.Info("Connected to audit store", zap.Strings("addrs", cfg.Audit.Addrs))
	}

	// Audit sink. Pass nil interfaces (not typed nil pointers) when disabled.
	var (
		auditRecorder predictuc.AuditRecorder
		auditPinger   healthuc.Pinger
		auditAsync    *audit.Async
	)
	switch cfg.Audit.Driver {
	case config.AuditRedis, config.AuditValkey:
		stream := audit.NewStream(store, cfg.Audit.Stream, cfg.Audit.MaxLen)
		auditAsync = newAsync(stream, cfg, logger)
		auditPinger = stream
	case config.AuditSQLite:
		sqlSink, err := audit.OpenSQLite(ctx, cfg.Audit.DSN, cfg.Audit.Table)
		if err != nil {
			logger.Fatal("Failed to open audit database", zap.Error(err))
		}
		defer func() { _ = sqlSink.Close() }()
		auditAsync = newAsync(sqlSink, cfg, logger)
		auditPinger = sqlSink
	}
	if auditAsync != nil {
		auditRecorder = auditAsync
	}

	predictSvc := predictuc.New(source, analyzer.New(), auditRecorder, logger).
		WithAuditTextLimit(cfg.Audit.TextLimit)

	// URL scanning: fetcher, optional page cache, token bucket.
	var fetcher scanuc.Fetcher = fetch.New(fetch.Config{
		Timeout:   time.Duration(cfg.Fetch.TimeoutSec) * time.Second,
		MaxChars:  cfg.Fetch.MaxChars,
		UserAgent: cfg.Fetch.UserAgent,
	}, nil)
	if cfg.Fetch.CacheTTLSec > 0 && store != nil {
		fetcher = pagecache.New(fetcher, store,
			time.Duration(cfg.Fetch.CacheTTLSec)*time.Second, metrics.PageCacheTotal, logger)
	}
	scanSvc := scanuc.New(fetcher, scanuc.NewLimiter(cfg.Fetch.RatePerSec, cfg.Fetch.Burst), logger)

	var narrator explainuc.Narrator
	if cfg.Explain.Provider == config.ExplainOpenAI {
		narrator = openaiNarr.NewNarrator(&openaiNarr.Config{
			APIKey:    cfg.Explain.APIKey,
			BaseURL:   cfg.Explain.BaseURL,
			Model:     cfg.Explain.Model,
			Provider:  cfg.Explain.Provider,
			Timeout:   time.Duration(cfg.Explain.TimeoutSec) * time.Second,
			MaxTokens: cfg.Explain.MaxTokens,
			Logger:    logger,
		})
		logger.Info("Explanation narrator enabled", zap.String("model", cfg.Explain.Model))
	}
	explainSvc := explainuc.New(predictSvc, narrator)

	healthSvc := healthuc.New(predictSvc, auditPinger)

	server := chiTransport.NewServer(predictSvc, scanSvc, explainSvc, healthSvc, logger)

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

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error during shutdown", zap.Error(err))
		}
		// Drain pending audit entries after the last request finished.
		if auditAsync != nil {
			if err := auditAsync.Close(shutdownCtx); err != nil {
				logger.Warn("Audit queue not fully drained", zap.Error(err))
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server exited with error", zap.Error(err))
		return
	}

	logger.Info("Server stopped gracefully")
}

func newAsync(w audit.Writer, cfg config.Config, logger *zap.Logger) *audit.Async {
	return audit.NewAsync(w, cfg.Audit.Driver, cfg.Audit.Buffer,
		time.Duration(cfg.Audit.TimeoutMS)*time.Millisecond, logger)
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"status":  "failure_serving",
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
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
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

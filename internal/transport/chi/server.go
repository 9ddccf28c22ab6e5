package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/verity/internal/domain"
	"github.com/kailas-cloud/verity/internal/logger"
	explainuc "github.com/kailas-cloud/verity/internal/usecase/explain"
	healthuc "github.com/kailas-cloud/verity/internal/usecase/health"
	"github.com/kailas-cloud/verity/internal/version"
)

const maxBodyBytes = 1 << 20

const bannerMessage = "Verity fake news detector API is running"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Predictor classifies text.
type Predictor interface {
	Predict(ctx context.Context, text string) (domain.Prediction, error)
}

// Scanner extracts article text from a URL.
type Scanner interface {
	Scan(ctx context.Context, rawURL string) (domain.Page, error)
}

// Explainer predicts and explains.
type Explainer interface {
	Explain(ctx context.Context, req explainuc.Request) (explainuc.Result, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server holds the HTTP handlers.
type Server struct {
	predict       Predictor
	scan          Scanner
	explain       Explainer
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	predict Predictor,
	scan Scanner,
	explain Explainer,
	health HealthChecker,
	logger *zap.Logger,
) *Server {
	s := &Server{
		predict: predict,
		scan:    scan,
		explain: explain,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		servingFailureHandler,
		sentinelHandler(domain.ErrInvalidURL, http.StatusBadRequest, codeInvalidURL),
		sentinelHandler(domain.ErrFetchFailed, http.StatusBadRequest, codeFetchFailed),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, codeRateLimited),
		sentinelHandler(domain.ErrInvalidExplainMode, http.StatusBadRequest, codeValidationFailed),
	}
	return s
}

// Routes registers the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.Root)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Post("/predict", s.Predict)
	r.Post("/scan-url", s.ScanURL)
	r.Post("/explain", s.Explain)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	})
}

// Root handles GET /.
func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rootResponse{Message: bannerMessage, Version: version.Version})
}

// Predict handles POST /predict.
func (s *Server) Predict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if !decodeBody(w, r, &req) {
		return
	}

	p, err := s.predict.Predict(r.Context(), string(req.Text))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, predictionToResponse(p))
}

// ScanURL handles POST /scan-url.
func (s *Server) ScanURL(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "url is required")
		return
	}

	page, err := s.scan.Scan(r.Context(), req.URL)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, scanResponse{Text: page.Text, Title: page.Title})
}

// Explain handles POST /explain.
func (s *Server) Explain(w http.ResponseWriter, r *http.Request) {
	var req explainRequest
	if !decodeBody(w, r, &req) {
		return
	}

	mode, err := domain.ParseExplainMode(req.Mode)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	res, err := s.explain.Explain(r.Context(), explainuc.Request{
		Text:     string(req.Text),
		Mode:     mode,
		Question: req.Question,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, explanationToResponse(res))
}

// HealthCheck handles GET /health. Degraded still answers 200: predictions keep flowing.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, codeBadRequest, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrServingFailure,
		domain.ErrInvalidURL,
		domain.ErrFetchFailed,
		domain.ErrRateLimited,
		domain.ErrInvalidExplainMode,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// servingFailureHandler reports an orchestration failure with its diagnostic.
func servingFailureHandler(w http.ResponseWriter, err error, _ string) bool {
	if !errors.Is(err, domain.ErrServingFailure) {
		return false
	}
	writeJSON(w, http.StatusInternalServerError, failureResponse{
		Status:  domain.StatusFailure,
		Code:    codeFailureServing,
		Message: "Prediction failed: " + err.Error(),
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

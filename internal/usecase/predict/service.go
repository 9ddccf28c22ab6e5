package predict

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/verity/internal/analyzer"
	"github.com/kailas-cloud/verity/internal/domain"
	"github.com/kailas-cloud/verity/internal/domain/report"
	"github.com/kailas-cloud/verity/internal/logger"
	"github.com/kailas-cloud/verity/internal/metrics"
	"github.com/kailas-cloud/verity/internal/model"
)

// Service is the prediction orchestrator: it serves the classifier verdict when the model is
// ready and the heuristic fallback when it is not. Every analysis is attached as enrichment.
type Service struct {
	source     ModelSource
	analyzer   Analyzer
	audit      AuditRecorder
	auditLimit int
	logger     *zap.Logger
	now        func() time.Time
}

// New creates a prediction service. audit can be nil.
func New(source ModelSource, an Analyzer, audit AuditRecorder, logger *zap.Logger) *Service {
	return &Service{
		source:     source,
		analyzer:   an,
		audit:      audit,
		auditLimit: domain.AuditTextLimit,
		logger:     logger,
		now:        time.Now,
	}
}

// WithAuditTextLimit sets how many runes of input text are kept in audit entries.
func (s *Service) WithAuditTextLimit(limit int) *Service {
	if limit > 0 {
		s.auditLimit = limit
	}
	return s
}

// Predict classifies text. Degraded paths are absorbed into a valid prediction;
// an error, always wrapping domain.ErrServingFailure, means the orchestration itself failed.
func (s *Service) Predict(ctx context.Context, text string) (p domain.Prediction, err error) {
	start := time.Now()
	log := logger.FromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", domain.ErrServingFailure, r)
			p = domain.Prediction{Status: domain.StatusFailure}
			log.Error("Prediction panicked", zap.Any("panic", r), zap.Int("text_len", len(text)))
		}
		if err != nil {
			metrics.PredictionsTotal.WithLabelValues(string(domain.StatusFailure), "").Inc()
			return
		}
		metrics.PredictionsTotal.WithLabelValues(string(p.Status), string(p.Label)).Inc()
	}()

	state := s.source.Availability()
	if pipeline, ok := state.Pipeline(); ok {
		p = s.predictModel(log, pipeline, text)
		metrics.PredictionDuration.WithLabelValues("model").Observe(time.Since(start).Seconds())
	} else {
		p = s.predictHeuristic(log, text)
		metrics.PredictionDuration.WithLabelValues("heuristic").Observe(time.Since(start).Seconds())
	}

	if !p.Label.IsValid() {
		return domain.Prediction{Status: domain.StatusFailure},
			fmt.Errorf("%w: invalid label %q", domain.ErrServingFailure, p.Label)
	}

	s.record(text, p)
	return p, nil
}

// predictModel serves the classifier verdict. A failed analysis leaves the report empty.
func (s *Service) predictModel(log *zap.Logger, pipeline *model.Pipeline, text string) domain.Prediction {
	label, prob := pipeline.Classify(text)

	r, err := s.analyzer.Analyze(text)
	if err != nil {
		metrics.AnalysisDegradedTotal.Inc()
		log.Warn("Analysis failed, returning verdict without report", zap.Error(err))
		r = report.Report{}
	}

	return domain.Prediction{
		Label:      label,
		Confidence: prob,
		Status:     domain.StatusSuccess,
		Analysis:   r,
	}
}

// predictHeuristic serves the fallback verdict. A failed analysis is replaced by the neutral report.
func (s *Service) predictHeuristic(log *zap.Logger, text string) domain.Prediction {
	r, err := s.analyzer.Analyze(text)
	if err != nil {
		metrics.AnalysisDegradedTotal.Inc()
		log.Warn("Analysis failed, using neutral report", zap.Error(err))
		r = report.Default()
	}

	v := analyzer.Fallback(r)
	return domain.Prediction{
		Label:      v.Label,
		Confidence: v.Confidence,
		Status:     domain.StatusHeuristic,
		Analysis:   r,
	}
}

func (s *Service) record(text string, p domain.Prediction) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.NewAuditEntry(uuid.NewString(), text, p, s.auditLimit, s.now()))
}

// ModelReady reports whether predictions are served by the trained model.
func (s *Service) ModelReady() bool {
	_, ok := s.source.Availability().Pipeline()
	return ok
}

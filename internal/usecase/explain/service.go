package explain

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/verity/internal/domain"
	"github.com/kailas-cloud/verity/internal/logger"
	"github.com/kailas-cloud/verity/internal/metrics"
)

// Explanation sources.
const (
	SourceTemplate = "template"
	SourceLLM      = "llm"
)

// Request asks for a prediction with an explanation.
type Request struct {
	Text     string
	Mode     domain.ExplainMode
	Question string
}

// Result is a prediction with its explanation.
type Result struct {
	Prediction  domain.Prediction
	Summary     string
	Explanation string
	Answer      string
	Source      string
}

// Service explains predictions. Explanations come from templates and,
// when a narrator is configured, are rewritten by it.
type Service struct {
	predictor Predictor
	narrator  Narrator
}

// New creates an explain service. narrator can be nil.
func New(predictor Predictor, narrator Narrator) *Service {
	return &Service{predictor: predictor, narrator: narrator}
}

// Explain predicts req.Text and explains the verdict.
// Narrator failures fall back to the template; only prediction failures are returned.
func (s *Service) Explain(ctx context.Context, req Request) (Result, error) {
	if req.Mode == "" {
		req.Mode = domain.ExplainSimple
	}

	p, err := s.predictor.Predict(ctx, req.Text)
	if err != nil {
		return Result{}, fmt.Errorf("predict: %w", err)
	}

	q := domain.ParseQuestion(req.Question)
	res := Result{
		Prediction:  p,
		Summary:     Summary(p),
		Explanation: Describe(req.Mode, p.Analysis),
		Answer:      Answer(q, p),
		Source:      SourceTemplate,
	}

	if s.narrator != nil {
		s.narrate(ctx, req, &res)
	}

	metrics.ExplanationsTotal.WithLabelValues(res.Source).Inc()
	return res, nil
}

func (s *Service) narrate(ctx context.Context, req Request, res *Result) {
	draft := res.Explanation
	if res.Answer != "" {
		draft += "\n\n" + res.Answer
	}

	text, err := s.narrator.Narrate(ctx, domain.NarrationPrompt{
		Mode:       req.Mode,
		Prediction: res.Prediction,
		Draft:      draft,
		Question:   req.Question,
	})
	if err != nil || text == "" {
		logger.FromContext(ctx).Warn("Narration failed, using template", zap.Error(err))
		return
	}

	res.Explanation = text
	res.Answer = ""
	res.Source = SourceLLM
}

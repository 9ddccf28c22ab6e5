package verity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/verity/internal/analyzer"
	dbRedis "github.com/kailas-cloud/verity/internal/db/redis"
	"github.com/kailas-cloud/verity/internal/domain"
	"github.com/kailas-cloud/verity/internal/model"
	"github.com/kailas-cloud/verity/internal/repository/audit"
	explainuc "github.com/kailas-cloud/verity/internal/usecase/explain"
	healthuc "github.com/kailas-cloud/verity/internal/usecase/health"
	predictuc "github.com/kailas-cloud/verity/internal/usecase/predict"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultAuditBuffer      = 1024
	defaultAuditTimeout     = 2 * time.Second
)

// Internal interfaces, swapped in tests.
type predictUseCase interface {
	Predict(ctx context.Context, text string) (domain.Prediction, error)
	ModelReady() bool
}

type explainUseCase interface {
	Explain(ctx context.Context, req explainuc.Request) (explainuc.Result, error)
}

type analyzeUseCase interface {
	Analyze(text string) (Analysis, error)
}

// Client is the verity SDK entry point.
type Client struct {
	predictSvc predictUseCase
	explainSvc explainUseCase
	healthSvc  healthUseCase
	analyzer   analyzeUseCase
	obs        *observer

	async  *audit.Async
	pinger healthuc.Pinger
	sql    *audit.SQL
	store  *dbRedis.Store
}

// New creates a Client. A missing or unreadable artifact is not an error:
// the client then serves heuristic predictions. The provided context bounds
// the audit store readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		auditBuffer: defaultAuditBuffer,
		textLimit:   domain.AuditTextLimit,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	c := &Client{obs: obs, analyzer: analyzer.New()}
	if err := c.openAudit(ctx, cfg); err != nil {
		return nil, err
	}

	// Pass nil interfaces, not typed nil pointers, when auditing is off.
	var (
		recorder predictuc.AuditRecorder
		pinger   healthuc.Pinger
	)
	if c.async != nil {
		recorder = c.async
		pinger = c.pinger
	}

	predictSvc := predictuc.New(newSource(cfg), analyzer.New(), recorder, zap.NewNop()).
		WithAuditTextLimit(cfg.textLimit)
	c.predictSvc = predictSvc
	c.explainSvc = explainuc.New(predictSvc, nil)
	c.healthSvc = healthuc.New(predictSvc, pinger)
	return c, nil
}

func newSource(cfg *clientConfig) model.Source {
	switch {
	case cfg.artifactPath == "":
		return model.NewStatic(model.Unavailable(errors.New("no artifact configured")))
	case cfg.lazy:
		return model.NewLazy(cfg.artifactPath, zap.NewNop())
	default:
		return model.NewStatic(model.Resolve(cfg.artifactPath, zap.NewNop()))
	}
}

func (c *Client) openAudit(ctx context.Context, cfg *clientConfig) error {
	var w audit.Writer
	switch cfg.auditDriver {
	case "":
		return nil
	case "valkey", "redis":
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.auditAddrs,
			Password: cfg.auditPassword,
		})
		if err != nil {
			return fmt.Errorf("verity: create %s store: %w", cfg.auditDriver, err)
		}
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			store.Close()
			return fmt.Errorf("verity: audit store not ready: %w", err)
		}
		c.store = store
		stream := audit.NewStream(store, "", 0)
		c.pinger = stream
		w = stream
	case "sqlite":
		s, err := audit.OpenSQLite(ctx, cfg.auditDSN, audit.DefaultTable)
		if err != nil {
			return fmt.Errorf("verity: open audit database: %w", err)
		}
		c.sql = s
		c.pinger = s
		w = s
	default:
		return fmt.Errorf("verity: unknown audit driver %q", cfg.auditDriver)
	}
	c.async = audit.NewAsync(w, cfg.auditDriver, cfg.auditBuffer, defaultAuditTimeout, zap.NewNop())
	return nil
}

// Close drains pending audit entries, bounded by ctx, and releases all resources.
func (c *Client) Close(ctx context.Context) error {
	var err error
	if c.async != nil {
		err = c.async.Close(ctx)
	}
	if c.sql != nil {
		if cerr := c.sql.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if c.store != nil {
		c.store.Close()
	}
	return err
}

// Predict classifies text as REAL or FAKE. It only fails when serving itself broke;
// the returned error then wraps ErrServingFailure.
func (c *Client) Predict(ctx context.Context, text string) (_ Prediction, err error) {
	start := time.Now()
	defer func() { c.obs.observe("predict", start, err) }()

	p, err := c.predictSvc.Predict(ctx, text)
	if err != nil {
		return Prediction{Status: string(domain.StatusFailure)}, fmt.Errorf("predict: %w", err)
	}
	return predictionFromDomain(p), nil
}

// Analyze runs the credibility heuristics without classifying.
func (c *Client) Analyze(text string) (_ Analysis, err error) {
	start := time.Now()
	defer func() { c.obs.observe("analyze", start, err) }()

	return c.analyzer.Analyze(text)
}

// Explain classifies text and explains the verdict. mode is "simple" (default) or "professional";
// question optionally asks "why_flagged", "what_checks" or "similar_examples".
func (c *Client) Explain(ctx context.Context, text, mode, question string) (_ Explanation, err error) {
	start := time.Now()
	defer func() { c.obs.observe("explain", start, err) }()

	m, err := domain.ParseExplainMode(mode)
	if err != nil {
		return Explanation{}, err
	}
	res, err := c.explainSvc.Explain(ctx, explainuc.Request{Text: text, Mode: m, Question: question})
	if err != nil {
		return Explanation{}, fmt.Errorf("explain: %w", err)
	}
	return Explanation{
		Prediction:  predictionFromDomain(res.Prediction),
		Summary:     res.Summary,
		Explanation: res.Explanation,
		Answer:      res.Answer,
		Source:      res.Source,
	}, nil
}

// ModelReady reports whether predictions come from the trained model.
func (c *Client) ModelReady() bool {
	return c.predictSvc.ModelReady()
}

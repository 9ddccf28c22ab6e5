package verity

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/verity/internal/repository/audit"
)

func TestNew_NoArtifactServesHeuristics(t *testing.T) {
	ctx := context.Background()
	c, err := New(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = c.Close(ctx) }()

	if c.ModelReady() {
		t.Fatal("expected heuristic mode without an artifact")
	}
	p, err := c.Predict(ctx, "BREAKING: You won't believe this SHOCKING secret!!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != "success_heuristic" {
		t.Errorf("expected success_heuristic, got %q", p.Status)
	}
	if !p.Fake() {
		t.Errorf("expected FAKE, got %s", p.Label)
	}
	if p.Confidence < 0.60 || p.Confidence > 0.95 {
		t.Errorf("confidence out of range: %v", p.Confidence)
	}
	if p.Analysis.ClickbaitScore != 80 {
		t.Errorf("expected clickbait 80, got %d", p.Analysis.ClickbaitScore)
	}
}

func TestNew_MissingArtifactIsNotAnError(t *testing.T) {
	ctx := context.Background()
	for _, opts := range [][]Option{
		{WithArtifact(filepath.Join(t.TempDir(), "missing.vrty"))},
		{WithArtifact(filepath.Join(t.TempDir(), "missing.vrty")), WithLazyLoad()},
	} {
		c, err := New(ctx, opts...)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.ModelReady() {
			t.Error("expected heuristic mode")
		}
		h := c.Health(ctx)
		if h.Status != "degraded" || h.Checks["model"] != "heuristic" {
			t.Errorf("unexpected health: %+v", h)
		}
		if _, ok := h.Checks["audit"]; ok {
			t.Error("audit check reported without an audit sink")
		}
		_ = c.Close(ctx)
	}
}

func TestNew_UnknownAuditDriver(t *testing.T) {
	_, err := New(context.Background(), optionFunc(func(c *clientConfig) { c.auditDriver = "kafka" }))
	if err == nil {
		t.Fatal("expected error for unknown audit driver")
	}
}

func TestNew_SQLiteAuditRequiresDSN(t *testing.T) {
	if _, err := New(context.Background(), WithSQLiteAudit("")); err == nil {
		t.Fatal("expected error for empty dsn")
	}
}

func TestClient_SQLiteAuditDrainedOnClose(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "audit.db")

	c, err := New(ctx, WithSQLiteAudit(dsn), WithAuditTextLimit(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h := c.Health(ctx); h.Checks["audit"] != "ok" {
		t.Errorf("expected audit ok, got %+v", h)
	}
	for _, text := range []string{"first article text", "second article text"} {
		if _, err := c.Predict(ctx, text); err != nil {
			t.Fatalf("predict: %v", err)
		}
	}
	if err := c.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}

	s, err := audit.OpenSQLite(ctx, dsn, "")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = s.Close() }()

	entries, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(entries))
	}
	for _, e := range entries {
		if len([]rune(e.Text)) != 5 {
			t.Errorf("expected text truncated to 5 runes, got %q", e.Text)
		}
	}
}

func TestClient_Explain(t *testing.T) {
	ctx := context.Background()
	c, err := New(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = c.Close(ctx) }()

	e, err := c.Explain(ctx, "The senate passed the bill after a recorded vote", "professional", "why_flagged")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Source != "template" {
		t.Errorf("expected template source, got %q", e.Source)
	}
	if e.Summary == "" || e.Explanation == "" || e.Answer == "" {
		t.Errorf("expected summary, explanation and answer, got %+v", e)
	}
	if e.Prediction.Status != "success_heuristic" {
		t.Errorf("expected success_heuristic, got %q", e.Prediction.Status)
	}

	if _, err := c.Explain(ctx, "text", "poetic", ""); !errors.Is(err, ErrInvalidExplainMode) {
		t.Errorf("expected ErrInvalidExplainMode, got %v", err)
	}
}

func TestClient_Analyze(t *testing.T) {
	c, err := New(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, err := c.Analyze("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.IsEmpty() {
		t.Errorf("expected empty analysis, got %+v", a)
	}
}

func TestClient_ObservesOperations(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(context.Background(), WithPrometheus(reg))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.Predict(context.Background(), "text"); err != nil {
		t.Fatalf("predict: %v", err)
	}
	if _, err := c.Explain(context.Background(), "text", "bogus", ""); err == nil {
		t.Fatal("expected explain error")
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	var samples int
	for _, f := range families {
		if f.GetName() == "verity_sdk_operations_total" {
			samples = len(f.GetMetric())
		}
	}
	if samples != 2 {
		t.Errorf("expected 2 operation samples, got %d", samples)
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}
	reg := prometheus.NewRegistry()
	for _, o := range []Option{
		WithArtifact("models/verity.vrty"),
		WithLazyLoad(),
		WithRedisAudit("localhost:6379", "secret"),
		WithAuditBuffer(16),
		WithAuditTextLimit(100),
		WithLogger(slog.Default()),
		WithPrometheus(reg),
	} {
		o.apply(cfg)
	}

	if cfg.artifactPath != "models/verity.vrty" || !cfg.lazy {
		t.Errorf("unexpected model options: %+v", cfg)
	}
	if cfg.auditDriver != "redis" || len(cfg.auditAddrs) != 1 || cfg.auditPassword != "secret" {
		t.Errorf("unexpected audit options: %+v", cfg)
	}
	if cfg.auditBuffer != 16 || cfg.textLimit != 100 {
		t.Errorf("unexpected audit tuning: %+v", cfg)
	}
	if cfg.logger == nil || cfg.metricsReg == nil {
		t.Error("expected logger and registerer")
	}

	WithValkeyAudit("valkey:6379", "").apply(cfg)
	if cfg.auditDriver != "valkey" || cfg.auditAddrs[0] != "valkey:6379" {
		t.Errorf("expected valkey driver, got %+v", cfg)
	}
	WithSQLiteAudit("audit.db").apply(cfg)
	if cfg.auditDriver != "sqlite" || cfg.auditDSN != "audit.db" {
		t.Errorf("expected sqlite driver, got %+v", cfg)
	}
}

func TestObserver_NilSafe(t *testing.T) {
	// nil observer should not panic.
	var obs *observer
	obs.observe("test", time.Now(), nil)
	obs.observe("test", time.Now(), errors.New("err"))
}

func TestObserver_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observe("predict", time.Now().Add(-10*time.Millisecond), nil)
	obs.observe("predict", time.Now(), errors.New("fail"))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "verity_sdk_operations_total" {
			found = true
			if len(f.GetMetric()) != 2 {
				t.Errorf("expected 2 metric samples, got %d", len(f.GetMetric()))
			}
		}
	}
	if !found {
		t.Error("verity_sdk_operations_total not found")
	}
}

func TestObserver_ReusesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("first observer: %v", err)
	}
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("second observer on the same registry: %v", err)
	}
}

func TestObserver_WithLogger(t *testing.T) {
	obs, err := newObserver(slog.Default(), nil)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	obs.observe("test.op", time.Now(), nil)
	obs.observe("test.op", time.Now(), errors.New("test error"))
}

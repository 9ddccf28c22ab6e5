package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/verity/internal/domain"
	"github.com/kailas-cloud/verity/internal/metrics"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultMaxTokens = 300
)

const (
	simplePrompt = "You explain news credibility verdicts to a general audience. " +
		"Rewrite the draft in two or three short, friendly sentences. " +
		"Do not add facts that are not in the draft or the analysis."
	professionalPrompt = "You explain news credibility verdicts to analysts. " +
		"Rewrite the draft as a concise technical summary that cites the measured signals. " +
		"Do not add facts that are not in the draft or the analysis."
)

// Narrator rewrites templated explanations with an OpenAI-compatible chat model.
type Narrator struct {
	client    *openai.Client
	model     string
	provider  string
	timeout   time.Duration
	maxTokens int
	logger    *zap.Logger
}

// Config holds the chat provider settings.
type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	Provider  string
	Timeout   time.Duration
	MaxTokens int
	Logger    *zap.Logger
}

// NewNarrator creates an OpenAI-compatible explanation narrator.
func NewNarrator(cfg *Config) *Narrator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return &Narrator{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     cfg.Model,
		provider:  cfg.Provider,
		timeout:   timeout,
		maxTokens: maxTokens,
		logger:    cfg.Logger,
	}
}

// Narrate returns the model's rewrite of p.Draft.
func (n *Narrator) Narrate(ctx context.Context, p domain.NarrationPrompt) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:     n.model,
		MaxTokens: n.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(p.Mode)},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(p)},
		},
	}

	start := time.Now()
	resp, err := n.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		metrics.LLMRequestsTotal.WithLabelValues(n.provider, n.model, "error").Inc()
		metrics.LLMErrorsTotal.WithLabelValues(n.provider, n.model, "api_error").Inc()
		return "", parseAPIError(err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		metrics.LLMRequestsTotal.WithLabelValues(n.provider, n.model, "error").Inc()
		metrics.LLMErrorsTotal.WithLabelValues(n.provider, n.model, "empty_response").Inc()
		return "", fmt.Errorf("empty chat response: %w", domain.ErrNarratorFailed)
	}

	metrics.LLMRequestsTotal.WithLabelValues(n.provider, n.model, "success").Inc()
	metrics.LLMRequestDuration.WithLabelValues(n.provider, n.model).Observe(duration.Seconds())
	if resp.Usage.TotalTokens > 0 {
		metrics.LLMTokensTotal.WithLabelValues(n.provider, n.model, "prompt").Add(float64(resp.Usage.PromptTokens))
		metrics.LLMTokensTotal.WithLabelValues(n.provider, n.model, "completion").Add(float64(resp.Usage.CompletionTokens))
	}

	n.logger.Debug("Narration completed",
		zap.String("model", n.model),
		zap.Duration("duration", duration),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (n *Narrator) HealthCheck(ctx context.Context) error {
	if _, err := n.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

func systemPrompt(mode domain.ExplainMode) string {
	if mode == domain.ExplainProfessional {
		return professionalPrompt
	}
	return simplePrompt
}

func userPrompt(p domain.NarrationPrompt) string {
	analysis, err := json.Marshal(p.Prediction.Analysis)
	if err != nil {
		analysis = []byte("{}")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Verdict: %s (%.1f%% confidence, %s)\n",
		p.Prediction.Label, p.Prediction.ConfidencePercent(), p.Prediction.Status)
	fmt.Fprintf(&b, "Analysis: %s\n", analysis)
	fmt.Fprintf(&b, "Draft:\n%s\n", p.Draft)
	if q := strings.TrimSpace(p.Question); q != "" {
		fmt.Fprintf(&b, "Also answer the reader's question: %s\n", q)
	}
	return b.String()
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrNarratorFailed.
func parseAPIError(err error) error {
	wrap := domain.ErrNarratorFailed

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail != "" {
			return fmt.Errorf("chat API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("chat API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("chat API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("chat request failed: %v: %w", err, wrap)
}

// extractDetail extracts the "detail" field from a JSON error body (Nebius error format).
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}

package chi

import (
	"encoding/json"

	"github.com/kailas-cloud/verity/internal/domain"
	"github.com/kailas-cloud/verity/internal/domain/report"
	explainuc "github.com/kailas-cloud/verity/internal/usecase/explain"
)

// Error codes returned in ErrorResponse.Code.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeUnauthorized     = "unauthorized"
	codeNotFound         = "not_found"
	codeMethodNotAllowed = "method_not_allowed"
	codeInvalidURL       = "invalid_url"
	codeFetchFailed      = "fetch_failed"
	codeRateLimited      = "rate_limited"
	codeFailureServing   = "failure_serving"
	codeInternalError    = "internal_error"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// flexibleText decodes a JSON string; any other JSON value decodes to "".
type flexibleText string

func (t *flexibleText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*t = ""
		return nil
	}
	*t = flexibleText(s)
	return nil
}

type predictRequest struct {
	Text flexibleText `json:"text"`
}

type predictResponse struct {
	Label      domain.Label  `json:"label"`
	Confidence float64       `json:"confidence"`
	Status     domain.Status `json:"status"`
	Analysis   report.Report `json:"analysis"`
}

type failureResponse struct {
	Status  domain.Status `json:"status"`
	Code    string        `json:"code"`
	Message string        `json:"message"`
}

type scanRequest struct {
	URL string `json:"url"`
}

type scanResponse struct {
	Text  string `json:"text"`
	Title string `json:"title"`
}

type explainRequest struct {
	Text     flexibleText `json:"text"`
	Mode     string       `json:"mode"`
	Question string       `json:"question"`
}

type explainResponse struct {
	Prediction  predictResponse `json:"prediction"`
	Summary     string          `json:"summary"`
	Explanation string          `json:"explanation"`
	Answer      string          `json:"answer,omitempty"`
	Source      string          `json:"source"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type rootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

func predictionToResponse(p domain.Prediction) predictResponse {
	return predictResponse{
		Label:      p.Label,
		Confidence: p.ConfidencePercent(),
		Status:     p.Status,
		Analysis:   p.Analysis,
	}
}

func explanationToResponse(res explainuc.Result) explainResponse {
	return explainResponse{
		Prediction:  predictionToResponse(res.Prediction),
		Summary:     res.Summary,
		Explanation: res.Explanation,
		Answer:      res.Answer,
		Source:      res.Source,
	}
}

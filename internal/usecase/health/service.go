package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the service answers with reduced quality.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckHeuristic indicates predictions come from the heuristic fallback.
	CheckHeuristic CheckResult = "heuristic"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	model ModelChecker
	audit Pinger
}

// New creates a Service. audit can be nil.
func New(model ModelChecker, audit Pinger) *Service {
	return &Service{model: model, audit: audit}
}

// Check runs health checks against all components.
// The service never reports itself down: without a model it still serves heuristics.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.model.ModelReady() {
		checks["model"] = CheckOK
	} else {
		checks["model"] = CheckHeuristic
	}

	if s.audit != nil {
		if err := s.audit.Ping(ctx); err != nil {
			checks["audit"] = CheckError
		} else {
			checks["audit"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v != CheckOK {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}

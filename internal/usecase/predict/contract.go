package predict

import (
	"github.com/kailas-cloud/verity/internal/domain"
	"github.com/kailas-cloud/verity/internal/domain/report"
	"github.com/kailas-cloud/verity/internal/model"
)

// ModelSource hands out the model state. It must return the same state on every call.
type ModelSource interface {
	Availability() model.Availability
}

// Analyzer produces the heuristic report of raw text.
type Analyzer interface {
	Analyze(text string) (report.Report, error)
}

// AuditRecorder accepts prediction records. Record must not block.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}

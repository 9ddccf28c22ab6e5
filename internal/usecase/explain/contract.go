package explain

import (
	"context"

	"github.com/kailas-cloud/verity/internal/domain"
)

// Predictor classifies text.
type Predictor interface {
	Predict(ctx context.Context, text string) (domain.Prediction, error)
}

// Narrator rewrites a templated explanation into prose.
type Narrator interface {
	Narrate(ctx context.Context, p domain.NarrationPrompt) (string, error)
}

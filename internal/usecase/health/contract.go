package health

import "context"

// ModelChecker reports whether the trained model serves predictions.
type ModelChecker interface {
	ModelReady() bool
}

// Pinger checks a dependency's availability.
type Pinger interface {
	Ping(ctx context.Context) error
}

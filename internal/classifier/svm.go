// Package classifier implements a calibrated linear max-margin binary classifier.
//
// Class 1 is the positive class. Labels passed to training must be 0 or 1.
package classifier

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/kailas-cloud/verity/internal/features/sparse"
)

var (
	// ErrNoSamples is returned when training on an empty set.
	ErrNoSamples = errors.New("classifier: no samples")
	// ErrSingleClass is returned when training data contains only one class.
	ErrSingleClass = errors.New("classifier: training data has a single class")
	// ErrTooFewSamples is returned when a class has fewer samples than calibration folds.
	ErrTooFewSamples = errors.New("classifier: too few samples per class for calibration folds")
)

// Options configure linear SVM training.
type Options struct {
	C        float64 // regularization strength, larger means weaker regularization
	Tol      float64 // stopping tolerance on the projected gradient spread
	MaxIter  int     // epochs over the data
	Balanced bool    // weight classes by n/(2*n_c)
	Seed     uint64  // permutation seed
}

// DefaultOptions are the production training settings.
func DefaultOptions() Options {
	return Options{C: 1, Tol: 1e-4, MaxIter: 1000, Balanced: true, Seed: 42}
}

// Linear is a trained linear decision function w·x + b.
type Linear struct {
	Weights []float64
	Bias    float64
}

// Decision returns the signed margin of v. Positive means class 1.
func (l Linear) Decision(v sparse.Vector) float64 {
	return v.Dot(l.Weights) + l.Bias
}

// TrainLinear fits an L2-regularized squared-hinge SVM by dual coordinate descent.
// The bias is learned as the weight of an implicit constant feature.
func TrainLinear(xs []sparse.Vector, ys []int, opts Options) (Linear, error) {
	n := len(xs)
	if n == 0 {
		return Linear{}, ErrNoSamples
	}
	if len(ys) != n {
		return Linear{}, fmt.Errorf("classifier: %d vectors but %d labels", n, len(ys))
	}
	dim := xs[0].Dim

	var counts [2]int
	for _, y := range ys {
		if y != 0 && y != 1 {
			return Linear{}, fmt.Errorf("classifier: label %d is not 0 or 1", y)
		}
		counts[y]++
	}
	if counts[0] == 0 || counts[1] == 0 {
		return Linear{}, ErrSingleClass
	}

	var classC [2]float64
	for c := range classC {
		classC[c] = opts.C
		if opts.Balanced {
			classC[c] *= float64(n) / (2 * float64(counts[c]))
		}
	}

	sign := make([]float64, n)
	diag := make([]float64, n) // 1/(2C_i)
	qd := make([]float64, n)
	for i, x := range xs {
		sign[i] = -1
		if ys[i] == 1 {
			sign[i] = 1
		}
		diag[i] = 0.5 / classC[ys[i]]
		qd[i] = x.SquaredNorm() + 1 + diag[i]
	}

	w := make([]float64, dim)
	var b float64
	alpha := make([]float64, n)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed))

	for iter := 0; iter < opts.MaxIter; iter++ {
		rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })

		pgMax, pgMin := math.Inf(-1), math.Inf(1)
		for _, i := range order {
			x := xs[i]
			g := sign[i]*(x.Dot(w)+b) - 1 + alpha[i]*diag[i]

			pg := g
			if alpha[i] == 0 && g > 0 {
				pg = 0
			}
			pgMax = max(pgMax, pg)
			pgMin = min(pgMin, pg)

			if math.Abs(pg) < 1e-12 {
				continue
			}
			old := alpha[i]
			alpha[i] = max(old-g/qd[i], 0)
			d := (alpha[i] - old) * sign[i]
			for k, j := range x.Indices {
				if j < dim {
					w[j] += d * x.Values[k]
				}
			}
			b += d
		}
		if pgMax-pgMin <= opts.Tol {
			break
		}
	}

	return Linear{Weights: w, Bias: b}, nil
}

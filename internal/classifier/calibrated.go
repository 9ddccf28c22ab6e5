package classifier

import (
	"fmt"

	"github.com/kailas-cloud/verity/internal/features/sparse"
)

// Member is one fold's classifier with its sigmoid fitted on the held-out part.
type Member struct {
	Linear  Linear
	Sigmoid Sigmoid
}

// Calibrated averages the calibrated probabilities of its members.
// It is immutable after training and safe for concurrent use.
type Calibrated struct {
	Members []Member
}

// TrainCalibrated trains one member per stratified fold: the linear model on the other folds,
// the sigmoid on the held-out fold's margins.
func TrainCalibrated(xs []sparse.Vector, ys []int, folds int, opts Options) (*Calibrated, error) {
	splits, err := StratifiedFolds(ys, folds)
	if err != nil {
		return nil, err
	}

	c := &Calibrated{Members: make([]Member, 0, folds)}
	for f, test := range splits {
		train := complement(len(ys), test)
		trX, trY := subset(xs, ys, train)
		lin, err := TrainLinear(trX, trY, opts)
		if err != nil {
			return nil, fmt.Errorf("fold %d: %w", f, err)
		}

		teX, teY := subset(xs, ys, test)
		margins := make([]float64, len(teX))
		for i, x := range teX {
			margins[i] = lin.Decision(x)
		}
		c.Members = append(c.Members, Member{Linear: lin, Sigmoid: FitSigmoid(margins, teY)})
	}
	return c, nil
}

// ProbaFake returns the mean calibrated probability of class 1.
func (c *Calibrated) ProbaFake(v sparse.Vector) float64 {
	if len(c.Members) == 0 {
		return 0.5
	}
	var sum float64
	for _, m := range c.Members {
		sum += m.Sigmoid.Prob(m.Linear.Decision(v))
	}
	return sum / float64(len(c.Members))
}

// Predict returns class 1 when its probability exceeds 0.5, else class 0,
// together with the probability of the predicted class.
func (c *Calibrated) Predict(v sparse.Vector) (int, float64) {
	p := c.ProbaFake(v)
	if p > 0.5 {
		return 1, p
	}
	return 0, 1 - p
}

// MeanWeights averages member weights, for inspecting indicative features.
func (c *Calibrated) MeanWeights() []float64 {
	if len(c.Members) == 0 {
		return nil
	}
	out := make([]float64, len(c.Members[0].Linear.Weights))
	for _, m := range c.Members {
		for i, w := range m.Linear.Weights {
			out[i] += w
		}
	}
	for i := range out {
		out[i] /= float64(len(c.Members))
	}
	return out
}

func subset(xs []sparse.Vector, ys []int, idx []int) ([]sparse.Vector, []int) {
	outX := make([]sparse.Vector, len(idx))
	outY := make([]int, len(idx))
	for k, i := range idx {
		outX[k] = xs[i]
		outY[k] = ys[i]
	}
	return outX, outY
}

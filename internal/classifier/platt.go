package classifier

import "math"

// Sigmoid maps a margin f to P(class 1) = 1/(1+exp(A·f+B)).
type Sigmoid struct {
	A float64
	B float64
}

// Prob returns the calibrated probability of class 1 for margin f.
func (s Sigmoid) Prob(f float64) float64 {
	z := f*s.A + s.B
	if z >= 0 {
		e := math.Exp(-z)
		return e / (1 + e)
	}
	return 1 / (1 + math.Exp(z))
}

// FitSigmoid fits Platt scaling on held-out margins with Newton's method and backtracking.
// Targets are smoothed to (n1+1)/(n1+2) and 1/(n0+2).
func FitSigmoid(margins []float64, ys []int) Sigmoid {
	const (
		maxIter = 100
		minStep = 1e-10
		sigma   = 1e-12
		eps     = 1e-5
	)

	var prior0, prior1 float64
	for _, y := range ys {
		if y == 1 {
			prior1++
		} else {
			prior0++
		}
	}
	hi := (prior1 + 1) / (prior1 + 2)
	lo := 1 / (prior0 + 2)
	t := make([]float64, len(ys))
	for i, y := range ys {
		t[i] = lo
		if y == 1 {
			t[i] = hi
		}
	}

	objective := func(a, b float64) float64 {
		var f float64
		for i, m := range margins {
			z := m*a + b
			if z >= 0 {
				f += t[i]*z + math.Log1p(math.Exp(-z))
			} else {
				f += (t[i]-1)*z + math.Log1p(math.Exp(z))
			}
		}
		return f
	}

	a, b := 0.0, math.Log((prior0+1)/(prior1+1))
	fval := objective(a, b)

	for iter := 0; iter < maxIter; iter++ {
		h11, h22, h21 := sigma, sigma, 0.0
		g1, g2 := 0.0, 0.0
		for i, m := range margins {
			z := m*a + b
			var p, q float64
			if z >= 0 {
				e := math.Exp(-z)
				p, q = e/(1+e), 1/(1+e)
			} else {
				e := math.Exp(z)
				p, q = 1/(1+e), e/(1+e)
			}
			d2 := p * q
			h11 += m * m * d2
			h22 += d2
			h21 += m * d2
			d1 := t[i] - p
			g1 += m * d1
			g2 += d1
		}
		if math.Abs(g1) < eps && math.Abs(g2) < eps {
			break
		}

		det := h11*h22 - h21*h21
		dA := -(h22*g1 - h21*g2) / det
		dB := -(-h21*g1 + h11*g2) / det
		gd := g1*dA + g2*dB

		step := 1.0
		for step >= minStep {
			na, nb := a+step*dA, b+step*dB
			nf := objective(na, nb)
			if nf < fval+1e-4*step*gd {
				a, b, fval = na, nb, nf
				break
			}
			step /= 2
		}
		if step < minStep {
			break
		}
	}
	return Sigmoid{A: a, B: b}
}

// Package sparse provides the sparse feature vector shared by extractors and the classifier.
package sparse

import "math"

// Vector is a sparse vector of fixed dimension. Indices are strictly increasing.
type Vector struct {
	Dim     int
	Indices []int
	Values  []float64
}

// Zero returns the empty vector of dimension dim.
func Zero(dim int) Vector {
	return Vector{Dim: dim}
}

// FromDense builds a Vector from dense values, skipping zeros.
func FromDense(dense []float64) Vector {
	v := Vector{Dim: len(dense)}
	for i, x := range dense {
		if x != 0 {
			v.Indices = append(v.Indices, i)
			v.Values = append(v.Values, x)
		}
	}
	return v
}

// Len returns the number of stored entries.
func (v Vector) Len() int { return len(v.Indices) }

// Dense expands v to a dense slice.
func (v Vector) Dense() []float64 {
	out := make([]float64, v.Dim)
	for k, i := range v.Indices {
		out[i] = v.Values[k]
	}
	return out
}

// Dot returns the inner product of v with a dense weight slice. Indices beyond len(w) are ignored.
func (v Vector) Dot(w []float64) float64 {
	var s float64
	for k, i := range v.Indices {
		if i < len(w) {
			s += v.Values[k] * w[i]
		}
	}
	return s
}

// SquaredNorm returns the sum of squared values.
func (v Vector) SquaredNorm() float64 {
	var s float64
	for _, x := range v.Values {
		s += x * x
	}
	return s
}

// Normalize scales v to unit L2 norm in place. The zero vector is left unchanged.
func (v Vector) Normalize() {
	n := math.Sqrt(v.SquaredNorm())
	if n == 0 {
		return
	}
	for k := range v.Values {
		v.Values[k] /= n
	}
}

// Concat joins vectors end to end; each vector's indices are shifted by the preceding dimensions.
func Concat(vs ...Vector) Vector {
	var out Vector
	size := 0
	for _, v := range vs {
		size += v.Len()
	}
	out.Indices = make([]int, 0, size)
	out.Values = make([]float64, 0, size)
	for _, v := range vs {
		for k, i := range v.Indices {
			out.Indices = append(out.Indices, out.Dim+i)
			out.Values = append(out.Values, v.Values[k])
		}
		out.Dim += v.Dim
	}
	return out
}

// Package scale implements per-dimension min-max scaling with frozen bounds.
package scale

import (
	"errors"
	"fmt"
)

// ErrEmpty is returned when fitting on no rows.
var ErrEmpty = errors.New("scale: no rows to fit")

// MinMax maps each dimension to (x-min)/(max-min) using bounds fit once on training data.
// A zero range is treated as 1. Values outside the fitted bounds are not clipped.
type MinMax struct {
	Min []float64
	Max []float64
}

// Fit computes bounds over rows. All rows must have the same length.
func Fit(rows [][]float64) (MinMax, error) {
	if len(rows) == 0 {
		return MinMax{}, ErrEmpty
	}
	dim := len(rows[0])
	m := MinMax{Min: append([]float64(nil), rows[0]...), Max: append([]float64(nil), rows[0]...)}
	for r, row := range rows[1:] {
		if len(row) != dim {
			return MinMax{}, fmt.Errorf("scale: row %d has %d values, want %d", r+1, len(row), dim)
		}
		for i, x := range row {
			m.Min[i] = min(m.Min[i], x)
			m.Max[i] = max(m.Max[i], x)
		}
	}
	return m, nil
}

// Dim returns the number of scaled dimensions.
func (m MinMax) Dim() int { return len(m.Min) }

// Transform scales x. Dimensions beyond the fitted bounds are passed through.
func (m MinMax) Transform(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		if i >= len(m.Min) {
			out[i] = v
			continue
		}
		rng := m.Max[i] - m.Min[i]
		if rng == 0 {
			rng = 1
		}
		out[i] = (v - m.Min[i]) / rng
	}
	return out
}

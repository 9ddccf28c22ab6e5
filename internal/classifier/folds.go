package classifier

import (
	"fmt"
	"slices"
)

// StratifiedFolds splits sample indices into k folds preserving class proportions.
// Each class's samples are cut into k contiguous chunks in their original order;
// fold f is the union of every class's chunk f.
func StratifiedFolds(ys []int, k int) ([][]int, error) {
	if k < 2 {
		return nil, fmt.Errorf("classifier: need at least 2 folds, got %d", k)
	}
	if len(ys) == 0 {
		return nil, ErrNoSamples
	}

	byClass := map[int][]int{}
	for i, y := range ys {
		byClass[y] = append(byClass[y], i)
	}
	if len(byClass) < 2 {
		return nil, ErrSingleClass
	}

	folds := make([][]int, k)
	for _, c := range []int{0, 1} {
		idx := byClass[c]
		if len(idx) < k {
			return nil, fmt.Errorf("%w: class %d has %d samples, need %d", ErrTooFewSamples, c, len(idx), k)
		}
		base, extra := len(idx)/k, len(idx)%k
		start := 0
		for f := 0; f < k; f++ {
			size := base
			if f < extra {
				size++
			}
			folds[f] = append(folds[f], idx[start:start+size]...)
			start += size
		}
	}
	for f := range folds {
		slices.Sort(folds[f])
	}
	return folds, nil
}

func complement(n int, idx []int) []int {
	skip := make([]bool, n)
	for _, i := range idx {
		skip[i] = true
	}
	out := make([]int, 0, n-len(idx))
	for i := 0; i < n; i++ {
		if !skip[i] {
			out = append(out, i)
		}
	}
	return out
}

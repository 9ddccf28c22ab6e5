package training

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/kailas-cloud/verity/internal/domain"
)

// Permutation returns a seeded random permutation of [0, n).
func Permutation(n int, seed uint64) []int {
	return rand.New(rand.NewPCG(seed, seed)).Perm(n)
}

// StratifiedSplit holds out testFrac of every class. Both parts keep the class proportions
// and are returned in ascending index order.
func StratifiedSplit(labels []int, testFrac float64, seed uint64) (train, test []int, err error) {
	if testFrac <= 0 || testFrac >= 1 {
		return nil, nil, fmt.Errorf("%w: test fraction must be in (0, 1), got %v", domain.ErrInvalidCorpus, testFrac)
	}

	byClass := map[int][]int{}
	for i, y := range labels {
		byClass[y] = append(byClass[y], i)
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for _, c := range []int{0, 1} {
		idx := byClass[c]
		if len(idx) < 2 {
			return nil, nil, fmt.Errorf("%w: class %d has %d samples, need at least 2",
				domain.ErrInvalidCorpus, c, len(idx))
		}
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

		nTest := int(math.Round(testFrac * float64(len(idx))))
		nTest = min(max(nTest, 1), len(idx)-1)
		test = append(test, idx[:nTest]...)
		train = append(train, idx[nTest:]...)
	}

	slices.Sort(train)
	slices.Sort(test)
	return train, test, nil
}

package dataset

import (
	"math"
	"math/rand"

	"github.com/wbrown/gpt_pairs/types"
)

// SplitSeed seeds the train/validation shuffle so membership is
// reproducible for identical input order.
const SplitSeed int64 = 42

// ValidationSize
// Returns how many of n items go to validation: ceil(n * testFraction).
func ValidationSize(n int, testFraction float64) int {
	// Absorb float error such as 0.7*10 = 7.000000000000001.
	size := int(math.Ceil(float64(n)*testFraction - 1e-9))
	if size < 0 {
		return 0
	} else if size > n {
		return n
	}
	return size
}

// Split
// Shuffles the indices of items with a rand.Source seeded by `seed` and
// cuts the permutation: the first ValidationSize entries are validation,
// the rest train. Both subsets keep the shuffled order. testFraction must
// be in [0, 1).
func Split[T any](items []T, testFraction float64, seed int64) (train,
	valid []T, err error) {
	if math.IsNaN(testFraction) || testFraction < 0 || testFraction >= 1 {
		return nil, nil, types.InvalidOption("test_fraction", testFraction)
	}
	perm := rand.New(rand.NewSource(seed)).Perm(len(items))
	numValid := ValidationSize(len(items), testFraction)
	valid = make([]T, 0, numValid)
	train = make([]T, 0, len(items)-numValid)
	for permIdx, itemIdx := range perm {
		if permIdx < numValid {
			valid = append(valid, items[itemIdx])
		} else {
			train = append(train, items[itemIdx])
		}
	}
	return train, valid, nil
}

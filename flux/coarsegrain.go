package flux

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// CoarseGrain aggregates a flux matrix onto groups of states. Group I of
// the coarse network collects all flux crossing from sets[I] into another
// group:
//
//	C[I][J] = Σ_{i ∈ sets[I]} Σ_{j ∈ sets[J]} f[i][j]   for I ≠ J,
//	C[I][I] = 0.
//
// Flux internal to a group is discarded — after coarse-graining a group is
// a single state and has no self-transitions in the flux picture.
//
// The groups must be pairwise disjoint (ErrOverlappingSets): a state
// contributing to two coarse states would double-count its flux. Groups
// need not cover the whole state space; uncovered states simply do not
// contribute.
//
// Complexity: O(n²) — every fine-grained pair is visited once.
func CoarseGrain(f mat.Matrix, sets [][]int) (*mat.Dense, error) {
	n, err := checkSquare(f)
	if err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		return nil, ErrEmptySet
	}

	// group[i] — coarse index of fine state i, or -1 if uncovered.
	group := make([]int, n)
	for i := range group {
		group[i] = -1
	}
	for gi, set := range sets {
		if err = checkSet(n, set); err != nil {
			return nil, fmt.Errorf("set %d: %w", gi, err)
		}
		for _, s := range set {
			if group[s] != -1 {
				return nil, fmt.Errorf("%w: state %d in sets %d and %d",
					ErrOverlappingSets, s, group[s], gi)
			}
			group[s] = gi
		}
	}

	coarse := mat.NewDense(len(sets), len(sets), nil)
	for i := 0; i < n; i++ {
		gi := group[i]
		if gi == -1 {
			continue
		}
		for j := 0; j < n; j++ {
			gj := group[j]
			if gj == -1 || gj == gi {
				continue
			}
			coarse.Set(gi, gj, coarse.At(gi, gj)+f.At(i, j))
		}
	}

	return coarse, nil
}

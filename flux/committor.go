package flux

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ForwardCommittor computes the forward committor q+ of the A→B reaction
// under the row-stochastic transition matrix T.
//
// q+[i] is the probability that a trajectory started in state i reaches B
// before A. Boundary conditions: q+[a] = 0 for a ∈ A, q+[b] = 1 for b ∈ B.
// For every intermediate state i the committor satisfies
//
//	Σ_j T[i][j]·q+[j] = q+[i],
//
// which, restricted to the intermediate block, is the dense linear system
//
//	(T_II − I)·x = −T_IB·1
//
// solved here with gonum's LU-backed VecDense.SolveVec.
//
// Preconditions and validation (in order):
//  1. T must be non-nil and square (ErrNilMatrix, ErrNonSquare).
//  2. A and B must be non-empty, in range, duplicate-free
//     (ErrEmptySet, ErrStateOutOfRange, ErrDuplicateState).
//  3. A and B must be disjoint (ErrOverlappingSets).
//
// Returns ErrSingularSystem (wrapped) if the intermediate block is
// singular, e.g. when T is not a proper stochastic matrix.
//
// Complexity: O(k³) for k intermediate states (dense solve), O(n²) setup.
func ForwardCommittor(t mat.Matrix, a, b []int) ([]float64, error) {
	n, err := checkSquare(t)
	if err != nil {
		return nil, err
	}
	if err = checkSet(n, a); err != nil {
		return nil, err
	}
	if err = checkSet(n, b); err != nil {
		return nil, err
	}
	if err = checkDisjoint(a, b); err != nil {
		return nil, err
	}

	inA := membership(n, a)
	inB := membership(n, b)

	// Collect the intermediate states in ascending order; their position
	// in this slice is their row/column in the reduced system.
	interior := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if !inA[i] && !inB[i] {
			interior = append(interior, i)
		}
	}

	// Boundary values first; the interior is filled from the solve below.
	q := make([]float64, n)
	for _, s := range b {
		q[s] = 1
	}
	if len(interior) == 0 {
		return q, nil
	}

	// Assemble (T_II − I) and the right-hand side −T_IB·1.
	k := len(interior)
	coeff := mat.NewDense(k, k, nil)
	rhs := mat.NewVecDense(k, nil)
	for ri, i := range interior {
		for ci, j := range interior {
			v := t.At(i, j)
			if ri == ci {
				v -= 1
			}
			coeff.Set(ri, ci, v)
		}
		sumB := 0.0
		for _, j := range b {
			sumB += t.At(i, j)
		}
		rhs.SetVec(ri, -sumB)
	}

	var x mat.VecDense
	if err = x.SolveVec(coeff, rhs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularSystem, err)
	}
	for ri, i := range interior {
		q[i] = x.AtVec(ri)
	}

	return q, nil
}

// BackwardCommittor computes the backward committor q− of the A→B reaction:
// the probability that a trajectory currently in state i last visited A
// rather than B. Boundary conditions: q−[a] = 1 for a ∈ A, q−[b] = 0 for
// b ∈ B.
//
// The backward committor equals the forward committor of the time-reversed
// chain with the roles of A and B exchanged. The reversed transition matrix
// is built from the stationary distribution mu:
//
//	Tᵣ[i][j] = mu[j]·T[j][i] / mu[i]
//
// mu must be strictly positive everywhere (ErrBadStationary) — a state
// with zero stationary weight has no well-defined reversed dynamics.
//
// Complexity: O(n²) reversal + one ForwardCommittor solve.
func BackwardCommittor(t mat.Matrix, a, b []int, mu []float64) ([]float64, error) {
	n, err := checkSquare(t)
	if err != nil {
		return nil, err
	}
	if err = checkVec(n, mu, "mu"); err != nil {
		return nil, err
	}
	for i, m := range mu {
		if m <= 0 {
			return nil, fmt.Errorf("%w: mu[%d]=%g", ErrBadStationary, i, m)
		}
	}

	rev := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			rev.Set(i, j, mu[j]*t.At(j, i)/mu[i])
		}
	}

	// Reaching A before B under reversed dynamics == having come from A.
	return ForwardCommittor(rev, b, a)
}

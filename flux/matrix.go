package flux

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Matrix computes the gross reactive flux of the A→B reaction from the
// transition matrix T, the stationary distribution mu and the two
// committors:
//
//	f[i][j] = mu[i]·q−[i]·T[i][j]·q+[j]   for i ≠ j,
//	f[i][i] = 0.
//
// The result is the raw (un-cancelled) probability current of reactive
// trajectories; pass it through ToNet to remove back-and-forth components.
//
// Complexity: O(n²) time and memory.
func Matrix(t mat.Matrix, mu, qminus, qplus []float64) (*mat.Dense, error) {
	n, err := checkSquare(t)
	if err != nil {
		return nil, err
	}
	if err = checkVec(n, mu, "mu"); err != nil {
		return nil, err
	}
	if err = checkVec(n, qminus, "qminus"); err != nil {
		return nil, err
	}
	if err = checkVec(n, qplus, "qplus"); err != nil {
		return nil, err
	}

	f := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		w := mu[i] * qminus[i]
		if w == 0 {
			continue
		}
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			f.Set(i, j, w*t.At(i, j)*qplus[j])
		}
	}

	return f, nil
}

// ToNet derives the net flux from a gross flux matrix by cancelling
// opposing currents:
//
//	fnet[i][j] = max(0, f[i][j] − f[j][i]).
//
// The net flux carries the same total A→B current as the gross flux but
// contains no 2-cycles.
//
// Complexity: O(n²).
func ToNet(f mat.Matrix) (*mat.Dense, error) {
	n, err := checkSquare(f)
	if err != nil {
		return nil, err
	}

	net := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if d := f.At(i, j) - f.At(j, i); d > 0 {
				net.Set(i, j, d)
			}
		}
	}

	return net, nil
}

// Total computes the total A→B flux: the aggregate flow leaving the source
// set,
//
//	Σ_{a ∈ A} Σ_{j ∉ A} f[a][j].
//
// Flux between two A states is internal to the source set and not counted.
func Total(f mat.Matrix, a []int) (float64, error) {
	n, err := checkSquare(f)
	if err != nil {
		return 0, err
	}
	if err = checkSet(n, a); err != nil {
		return 0, err
	}

	inA := membership(n, a)
	total := 0.0
	for _, i := range a {
		for j := 0; j < n; j++ {
			if !inA[j] {
				total += f.At(i, j)
			}
		}
	}

	return total, nil
}

// Rate computes the A→B reaction rate from the total flux and the
// stationary flux through A:
//
//	k_AB = totalFlux / Σ_i mu[i]·q−[i].
//
// The denominator is the stationary probability of "coming from A"; it
// must be positive (ErrZeroStationaryFlux), which holds whenever A is
// reachable and mu has mass on it.
func Rate(totalFlux float64, mu, qminus []float64) (float64, error) {
	if len(mu) != len(qminus) {
		return 0, fmt.Errorf("%w: len(mu)=%d, len(qminus)=%d",
			ErrDimensionMismatch, len(mu), len(qminus))
	}
	denom := floats.Dot(mu, qminus)
	if denom <= 0 {
		return 0, fmt.Errorf("%w: Σ mu·q− = %g", ErrZeroStationaryFlux, denom)
	}

	return totalFlux / denom, nil
}

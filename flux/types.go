// Package flux: sentinel errors, numeric-policy options and shared input
// validators used by every primitive in this package.
//
// All errors are package-level sentinels prefixed with "flux:" so they can
// be matched with errors.Is and grepped in logs. Primitives never panic on
// user input; panics are reserved for programmer errors in option
// constructors (nonsensical configuration values).
package flux

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Sentinel errors returned by the flux primitives.
var (
	// ErrNilMatrix indicates that a nil matrix was supplied.
	ErrNilMatrix = errors.New("flux: matrix is nil")

	// ErrNonSquare indicates that a square matrix was required but the
	// supplied one has r != c.
	ErrNonSquare = errors.New("flux: matrix is not square")

	// ErrDimensionMismatch indicates that a vector's length does not match
	// the state-space dimension of the accompanying matrix.
	ErrDimensionMismatch = errors.New("flux: dimension mismatch")

	// ErrEmptySet indicates that a state set that must be non-empty
	// (A, B, or a coarse group) contained no states.
	ErrEmptySet = errors.New("flux: state set is empty")

	// ErrStateOutOfRange indicates a state index outside 0..n-1.
	ErrStateOutOfRange = errors.New("flux: state index out of range")

	// ErrDuplicateState indicates a state listed twice within one set.
	ErrDuplicateState = errors.New("flux: duplicate state in set")

	// ErrOverlappingSets indicates that two sets required to be disjoint
	// (A and B, or distinct coarse groups) share a state.
	ErrOverlappingSets = errors.New("flux: state sets overlap")

	// ErrBadStationary indicates a stationary vector with a non-positive
	// entry where strict positivity is required (time reversal).
	ErrBadStationary = errors.New("flux: stationary vector must be strictly positive")

	// ErrZeroStationaryFlux indicates that the stationary flux through A
	// (the rate denominator Σ mu[i]·q−[i]) vanished.
	ErrZeroStationaryFlux = errors.New("flux: stationary flux through A is zero")

	// ErrSingularSystem indicates that the committor linear system could
	// not be solved (singular or ill-conditioned intermediate block).
	ErrSingularSystem = errors.New("flux: committor system is singular")

	// ErrBadFraction indicates a pathway target fraction outside (0, 1].
	ErrBadFraction = errors.New("flux: fraction must be in (0, 1]")

	// ErrBadMaxIter indicates a non-positive pathway iteration cap.
	ErrBadMaxIter = errors.New("flux: maxIter must be positive")
)

// DefaultEpsilon is the default numeric cutoff: flux values ≤ Epsilon are
// treated as absent edges during pathway decomposition.
const DefaultEpsilon = 1e-9

// Options bundles the numeric policy shared by the primitives.
type Options struct {
	// Epsilon is the positive cutoff below which a flux value is treated
	// as zero (edge absent). Default: DefaultEpsilon.
	Epsilon float64
}

// Option mutates Options; build with the With* constructors.
type Option func(*Options)

// DefaultOptions returns the documented default numeric policy.
func DefaultOptions() Options {
	return Options{Epsilon: DefaultEpsilon}
}

// WithEpsilon overrides the zero-flux cutoff.
// Panics if eps ≤ 0 (programmer error: a non-positive cutoff would treat
// every edge, including genuine flux, as absent or keep exact zeros).
func WithEpsilon(eps float64) Option {
	if eps <= 0 {
		panic("flux: WithEpsilon requires eps > 0")
	}

	return func(o *Options) { o.Epsilon = eps }
}

// gatherOptions folds functional options over the defaults.
func gatherOptions(opts []Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// checkSquare validates that m is a non-nil square matrix and returns its
// dimension.
func checkSquare(m mat.Matrix) (int, error) {
	if m == nil {
		return 0, ErrNilMatrix
	}
	r, c := m.Dims()
	if r != c {
		return 0, fmt.Errorf("%w: %dx%d", ErrNonSquare, r, c)
	}

	return r, nil
}

// checkSet validates one state set against the dimension n:
// non-empty, every index in 0..n-1, no duplicates.
func checkSet(n int, set []int) error {
	if len(set) == 0 {
		return ErrEmptySet
	}
	seen := make(map[int]bool, len(set))
	for _, s := range set {
		if s < 0 || s >= n {
			return fmt.Errorf("%w: state %d, n=%d", ErrStateOutOfRange, s, n)
		}
		if seen[s] {
			return fmt.Errorf("%w: state %d", ErrDuplicateState, s)
		}
		seen[s] = true
	}

	return nil
}

// checkDisjoint validates that a and b share no state.
func checkDisjoint(a, b []int) error {
	inA := make(map[int]bool, len(a))
	for _, s := range a {
		inA[s] = true
	}
	for _, s := range b {
		if inA[s] {
			return fmt.Errorf("%w: state %d in both sets", ErrOverlappingSets, s)
		}
	}

	return nil
}

// checkVec validates that v has length n; name labels the offending vector
// in the wrapped error.
func checkVec(n int, v []float64, name string) error {
	if len(v) != n {
		return fmt.Errorf("%w: len(%s)=%d, n=%d", ErrDimensionMismatch, name, len(v), n)
	}

	return nil
}

// membership builds an n-long lookup table for a state set.
func membership(n int, set []int) []bool {
	in := make([]bool, n)
	for _, s := range set {
		in[s] = true
	}

	return in
}

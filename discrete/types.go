// Package discrete: sentinel errors and the functional options consumed
// by New.
//
// All errors are package-level sentinels prefixed with "discrete:" so they
// can be matched with errors.Is. Methods never panic on user input; panics
// are reserved for programmer errors in option constructors.
package discrete

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Sentinel errors returned by the discrete output model.
var (
	// ErrNilMatrix indicates a nil emission or prior matrix.
	ErrNilMatrix = errors.New("discrete: matrix is nil")

	// ErrNotStochastic indicates an emission matrix row not summing to one
	// within the configured tolerance.
	ErrNotStochastic = errors.New("discrete: emission matrix is not row-stochastic")

	// ErrNegativeEntry indicates a negative emission probability or prior
	// count.
	ErrNegativeEntry = errors.New("discrete: negative entry")

	// ErrDimensionMismatch indicates prior/weight/observation shapes that
	// do not match the emission matrix.
	ErrDimensionMismatch = errors.New("discrete: dimension mismatch")

	// ErrBadState indicates a hidden-state index outside 0..N-1.
	ErrBadState = errors.New("discrete: state index out of range")

	// ErrBadSymbol indicates an observed symbol outside 0..M-1.
	ErrBadSymbol = errors.New("discrete: symbol out of range")

	// ErrEmptySelection indicates an empty state subset in SubModel.
	ErrEmptySelection = errors.New("discrete: empty state selection")

	// ErrNoObservations indicates a Fit call that left a state with zero
	// total weight, so its emission row cannot be normalized.
	ErrNoObservations = errors.New("discrete: no observation weight for state")
)

// DefaultEpsilon is the default row-stochasticity tolerance.
const DefaultEpsilon = 1e-9

// Options configures model construction.
type Options struct {
	prior   *mat.Dense
	epsilon float64
}

// Option mutates Options; build with the With* constructors.
type Option func(*Options)

// DefaultOptions returns the documented defaults: zero prior counts and
// DefaultEpsilon tolerance.
func DefaultOptions() Options {
	return Options{epsilon: DefaultEpsilon}
}

// WithPrior supplies the Dirichlet prior count matrix a[i][j] used by
// Sample; the default (all zeros) makes the posterior mean coincide with
// the maximum-likelihood estimate.
func WithPrior(prior *mat.Dense) Option {
	return func(o *Options) { o.prior = prior }
}

// WithEpsilon overrides the row-stochasticity tolerance.
// Panics if eps ≤ 0.
func WithEpsilon(eps float64) Option {
	if eps <= 0 {
		panic("discrete: WithEpsilon requires eps > 0")
	}

	return func(o *Options) { o.epsilon = eps }
}

// Package tpt: sentinel errors, the Backend capability interface and the
// functional options consumed by New.
//
// Error priority (enforced in tests): nil/shape errors → state-set errors
// → vector-dimension errors → invariant violations (overlap, committor
// boundary) → missing-input errors at coarse-graining time.
package tpt

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"github.com/thempel/scikit-time/flux"
)

// Sentinel errors returned by model construction and operations.
var (
	// ErrNilFlux indicates that the required net flux matrix was nil.
	ErrNilFlux = errors.New("tpt: flux matrix is nil")

	// ErrNonSquare indicates a non-square flux matrix.
	ErrNonSquare = errors.New("tpt: flux matrix is not square")

	// ErrDimensionMismatch indicates an optional vector (mu, q+, q−) whose
	// length differs from the flux matrix dimension.
	ErrDimensionMismatch = errors.New("tpt: dimension mismatch")

	// ErrEmptySet indicates an empty A or B set, or an empty user group
	// passed to CoarseGrain.
	ErrEmptySet = errors.New("tpt: state set is empty")

	// ErrStateOutOfRange indicates a state index outside 0..n-1.
	ErrStateOutOfRange = errors.New("tpt: state index out of range")

	// ErrDuplicateState indicates a state listed twice within one set.
	ErrDuplicateState = errors.New("tpt: duplicate state in set")

	// ErrOverlappingAB indicates that the source and sink sets share a
	// state; the reactive flux between them would be meaningless.
	ErrOverlappingAB = errors.New("tpt: A and B overlap")

	// ErrOverlappingSets indicates that two user-supplied coarse groups
	// share a state. Overlapping groups would double-count flux and
	// stationary mass, so they are rejected rather than silently allowed.
	ErrOverlappingSets = errors.New("tpt: user sets overlap")

	// ErrNegativeStationary indicates a negative stationary probability.
	ErrNegativeStationary = errors.New("tpt: stationary probability is negative")

	// ErrCommittorBoundary indicates a committor violating its boundary
	// condition: q+ must vanish on A and equal one on B, q− the reverse.
	ErrCommittorBoundary = errors.New("tpt: committor boundary condition violated")

	// ErrMissingGrossFlux indicates that CoarseGrain was called on a model
	// constructed without a gross flux matrix.
	ErrMissingGrossFlux = errors.New("tpt: gross flux required for coarse-graining")

	// ErrMissingStationary indicates that CoarseGrain was called on a
	// model constructed without a stationary distribution.
	ErrMissingStationary = errors.New("tpt: stationary distribution required for coarse-graining")

	// ErrMissingCommittor indicates that CoarseGrain was called on a model
	// missing the forward or backward committor.
	ErrMissingCommittor = errors.New("tpt: both committors required for coarse-graining")

	// ErrZeroMassGroup indicates a coarse group whose aggregate stationary
	// probability vanished; its committor average would divide by zero.
	ErrZeroMassGroup = errors.New("tpt: coarse group has zero stationary mass")
)

// DefaultMaxIter caps the number of pathways extracted by MajorFlux and by
// Pathways callers that have no tighter bound.
const DefaultMaxIter = 1000

// DefaultEpsilon is the default tolerance for committor boundary checks
// and the zero-flux cutoff handed to the backend.
const DefaultEpsilon = 1e-9

// Backend is the capability interface through which the model consumes the
// five flux primitives. The default implementation delegates to package
// flux; any backend honoring the same contracts (pure functions, shapes as
// documented there) may be injected with WithBackend.
type Backend interface {
	// Total computes the aggregate flux leaving the state set a.
	Total(f mat.Matrix, a []int) (float64, error)

	// Rate computes the A→B rate from total flux, mu and q−.
	Rate(totalFlux float64, mu, qminus []float64) (float64, error)

	// ToNet removes cyclic components from a gross flux matrix.
	ToNet(f mat.Matrix) (*mat.Dense, error)

	// Pathways decomposes f into A→B paths and their fluxes.
	Pathways(f mat.Matrix, a, b []int, fraction float64, maxIter int) ([][]int, []float64, error)

	// CoarseGrain aggregates f onto disjoint groups of states.
	CoarseGrain(f mat.Matrix, sets [][]int) (*mat.Dense, error)
}

// DefaultBackend returns the gonum-based implementation from package flux.
func DefaultBackend() Backend { return fluxBackend{} }

// fluxBackend adapts package flux to the Backend interface.
type fluxBackend struct{}

func (fluxBackend) Total(f mat.Matrix, a []int) (float64, error) {
	return flux.Total(f, a)
}

func (fluxBackend) Rate(totalFlux float64, mu, qminus []float64) (float64, error) {
	return flux.Rate(totalFlux, mu, qminus)
}

func (fluxBackend) ToNet(f mat.Matrix) (*mat.Dense, error) {
	return flux.ToNet(f)
}

func (fluxBackend) Pathways(f mat.Matrix, a, b []int, fraction float64, maxIter int) ([][]int, []float64, error) {
	return flux.Pathways(f, a, b, fraction, maxIter)
}

func (fluxBackend) CoarseGrain(f mat.Matrix, sets [][]int) (*mat.Dense, error) {
	return flux.CoarseGrain(f, sets)
}

// Options bundles the optional construction inputs of New.
type Options struct {
	mu        []float64
	qminus    []float64
	qplus     []float64
	grossFlux mat.Matrix
	dt        float64
	epsilon   float64
	backend   Backend
}

// Option mutates Options; build with the With* constructors.
type Option func(*Options)

// DefaultOptions returns the documented defaults: unit physical time
// ("1 step"), DefaultEpsilon tolerance, the package-flux backend, and no
// optional vectors.
func DefaultOptions() Options {
	return Options{
		dt:      1,
		epsilon: DefaultEpsilon,
		backend: DefaultBackend(),
	}
}

// WithStationaryDistribution supplies the stationary vector mu.
func WithStationaryDistribution(mu []float64) Option {
	return func(o *Options) { o.mu = mu }
}

// WithBackwardCommittor supplies the backward committor q−.
func WithBackwardCommittor(qminus []float64) Option {
	return func(o *Options) { o.qminus = qminus }
}

// WithForwardCommittor supplies the forward committor q+.
func WithForwardCommittor(qplus []float64) Option {
	return func(o *Options) { o.qplus = qplus }
}

// WithGrossFlux supplies the raw un-cancelled flux matrix; required later
// by CoarseGrain.
func WithGrossFlux(f mat.Matrix) Option {
	return func(o *Options) { o.grossFlux = f }
}

// WithPhysicalTime sets the lag time of the originating process. All
// flux-like outputs are divided by it, all time-like outputs multiplied.
// Panics if dt ≤ 0 (programmer error: a non-positive lag time cannot
// scale anything meaningfully).
func WithPhysicalTime(dt float64) Option {
	if dt <= 0 {
		panic("tpt: WithPhysicalTime requires dt > 0")
	}

	return func(o *Options) { o.dt = dt }
}

// WithEpsilon overrides the boundary-condition tolerance and zero-flux
// cutoff. Panics if eps ≤ 0.
func WithEpsilon(eps float64) Option {
	if eps <= 0 {
		panic("tpt: WithEpsilon requires eps > 0")
	}

	return func(o *Options) { o.epsilon = eps }
}

// WithBackend injects an alternative implementation of the flux
// primitives. Panics if b is nil.
func WithBackend(b Backend) Option {
	if b == nil {
		panic("tpt: WithBackend requires a non-nil backend")
	}

	return func(o *Options) { o.backend = b }
}

// gatherOptions folds functional options over the defaults.
func gatherOptions(opts []Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

package tpt

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ReactiveFlux is an A→B reactive flux network from Transition Path
// Theory. It owns the state partition (A, B, derived intermediates), the
// net flux matrix, optionally the gross flux, the stationary distribution
// and both committors.
//
// All matrices and vectors are stored in raw lag-time units; the accessor
// surface applies the physical-time scaling. A model is immutable after
// construction — use ReplaceA / ReplaceB / ReplaceStationaryDistribution
// to derive an updated model with total flux and rate recomputed.
type ReactiveFlux struct {
	a []int // source states, ascending
	b []int // sink states, ascending
	n int   // state count, fixed by the flux matrix dimension

	netFlux   *mat.Dense // raw net flux
	grossFlux *mat.Dense // raw gross flux; nil if not supplied
	mu        []float64  // stationary distribution; nil if not supplied
	qminus    []float64  // backward committor; nil if not supplied
	qplus     []float64  // forward committor; nil if not supplied

	dt      float64 // physical time (lag) of the originating process
	epsilon float64
	backend Backend

	totalFlux float64 // raw; derived at construction
	rate      float64 // raw; NaN when mu or q− was not supplied
}

// New constructs a ReactiveFlux from the source set a, the sink set b and
// the net flux matrix. The stationary distribution, committors, gross flux
// and physical time are supplied through options.
//
// Preconditions and validation (in order):
//  1. netFlux must be non-nil and square (ErrNilFlux, ErrNonSquare).
//  2. a and b must be non-empty, in range and duplicate-free
//     (ErrEmptySet, ErrStateOutOfRange, ErrDuplicateState).
//  3. a and b must be disjoint (ErrOverlappingAB).
//  4. Optional vectors must have length n (ErrDimensionMismatch) and mu
//     must be non-negative (ErrNegativeStationary).
//  5. Supplied committors must satisfy their boundary conditions within
//     the configured epsilon: q+≡0 on A, q+≡1 on B, q−≡1 on A, q−≡0 on B
//     (ErrCommittorBoundary).
//  6. The gross flux, if supplied, must be n×n (ErrDimensionMismatch).
//
// TotalFlux is derived immediately via the backend; the rate additionally
// needs mu and q− and is NaN when either is absent.
func New(a, b []int, netFlux mat.Matrix, opts ...Option) (*ReactiveFlux, error) {
	cfg := gatherOptions(opts)

	if netFlux == nil {
		return nil, ErrNilFlux
	}
	rows, cols := netFlux.Dims()
	if rows != cols {
		return nil, fmt.Errorf("%w: %dx%d", ErrNonSquare, rows, cols)
	}
	n := rows

	if err := checkSet(n, a); err != nil {
		return nil, fmt.Errorf("A: %w", err)
	}
	if err := checkSet(n, b); err != nil {
		return nil, fmt.Errorf("B: %w", err)
	}
	inA := membership(n, a)
	for _, s := range b {
		if inA[s] {
			return nil, fmt.Errorf("%w: state %d", ErrOverlappingAB, s)
		}
	}

	if err := checkOptionalVec(n, cfg.mu, "mu"); err != nil {
		return nil, err
	}
	if err := checkOptionalVec(n, cfg.qminus, "qminus"); err != nil {
		return nil, err
	}
	if err := checkOptionalVec(n, cfg.qplus, "qplus"); err != nil {
		return nil, err
	}
	for i, m := range cfg.mu {
		if m < 0 {
			return nil, fmt.Errorf("%w: mu[%d]=%g", ErrNegativeStationary, i, m)
		}
	}
	if err := checkBoundary(cfg.qplus, "qplus", a, 0, b, 1, cfg.epsilon); err != nil {
		return nil, err
	}
	if err := checkBoundary(cfg.qminus, "qminus", a, 1, b, 0, cfg.epsilon); err != nil {
		return nil, err
	}

	var gross *mat.Dense
	if cfg.grossFlux != nil {
		gr, gc := cfg.grossFlux.Dims()
		if gr != n || gc != n {
			return nil, fmt.Errorf("%w: gross flux %dx%d, n=%d", ErrDimensionMismatch, gr, gc, n)
		}
		gross = mat.DenseCopyOf(cfg.grossFlux)
	}

	r := &ReactiveFlux{
		a:         sortedCopy(a),
		b:         sortedCopy(b),
		n:         n,
		netFlux:   mat.DenseCopyOf(netFlux),
		grossFlux: gross,
		mu:        copyVec(cfg.mu),
		qminus:    copyVec(cfg.qminus),
		qplus:     copyVec(cfg.qplus),
		dt:        cfg.dt,
		epsilon:   cfg.epsilon,
		backend:   cfg.backend,
	}

	total, err := r.backend.Total(r.netFlux, r.a)
	if err != nil {
		return nil, err
	}
	r.totalFlux = total

	// The rate needs the stationary flux through A; without mu and q− it
	// is undefined, not an error (both inputs are optional by contract).
	r.rate = math.NaN()
	if r.mu != nil && r.qminus != nil {
		if r.rate, err = r.backend.Rate(r.totalFlux, r.mu, r.qminus); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// NStates returns the number of states in the flux network.
func (r *ReactiveFlux) NStates() int { return r.n }

// A returns the source states in ascending order.
func (r *ReactiveFlux) A() []int { return append([]int(nil), r.a...) }

// B returns the sink states in ascending order.
func (r *ReactiveFlux) B() []int { return append([]int(nil), r.b...) }

// Intermediates returns the states belonging to neither A nor B, in
// ascending order. The set is derived on demand, never stored.
func (r *ReactiveFlux) Intermediates() []int {
	inA := membership(r.n, r.a)
	inB := membership(r.n, r.b)
	inter := make([]int, 0, r.n-len(r.a)-len(r.b))
	for s := 0; s < r.n; s++ {
		if !inA[s] && !inB[s] {
			inter = append(inter, s)
		}
	}

	return inter
}

// PhysicalTime returns the lag time all outputs are scaled by.
func (r *ReactiveFlux) PhysicalTime() float64 { return r.dt }

// NetFlux returns the net flux matrix in physical-time units (stored flux
// divided by the lag time). The returned matrix is a fresh copy.
func (r *ReactiveFlux) NetFlux() *mat.Dense { return r.scaledMatrix(r.netFlux) }

// GrossFlux returns the gross flux matrix in physical-time units, or nil
// if no gross flux was supplied at construction.
func (r *ReactiveFlux) GrossFlux() *mat.Dense {
	if r.grossFlux == nil {
		return nil
	}

	return r.scaledMatrix(r.grossFlux)
}

// StationaryDistribution returns mu, or nil if not supplied. Stationary
// probabilities are dimensionless and not scaled.
func (r *ReactiveFlux) StationaryDistribution() []float64 { return copyVec(r.mu) }

// ForwardCommittor returns q+, or nil if not supplied.
func (r *ReactiveFlux) ForwardCommittor() []float64 { return copyVec(r.qplus) }

// BackwardCommittor returns q−, or nil if not supplied.
func (r *ReactiveFlux) BackwardCommittor() []float64 { return copyVec(r.qminus) }

// TotalFlux returns the aggregate A→B flux per physical time unit.
func (r *ReactiveFlux) TotalFlux() float64 { return r.totalFlux / r.dt }

// Rate returns the A→B transition rate per physical time unit. NaN when
// the model was built without mu or q−.
func (r *ReactiveFlux) Rate() float64 { return r.rate / r.dt }

// MFPT returns the mean first passage time of the A→B transition, the
// reciprocal of Rate: time-like, so multiplied by the physical time.
func (r *ReactiveFlux) MFPT() float64 { return r.dt / r.rate }

// ReplaceA derives a new model with a different source set. Unlike an
// in-place setter this reconstructs the model, so TotalFlux and Rate are
// recomputed and never stale.
func (r *ReactiveFlux) ReplaceA(a []int) (*ReactiveFlux, error) {
	return New(a, r.b, r.netFlux, r.carryOptions(r.mu)...)
}

// ReplaceB derives a new model with a different sink set.
func (r *ReactiveFlux) ReplaceB(b []int) (*ReactiveFlux, error) {
	return New(r.a, b, r.netFlux, r.carryOptions(r.mu)...)
}

// ReplaceStationaryDistribution derives a new model with a different
// stationary vector; the rate is recomputed against it.
func (r *ReactiveFlux) ReplaceStationaryDistribution(mu []float64) (*ReactiveFlux, error) {
	return New(r.a, r.b, r.netFlux, r.carryOptions(mu)...)
}

// carryOptions reassembles the option list describing this model, with mu
// substituted, for the Replace* rebuilders.
func (r *ReactiveFlux) carryOptions(mu []float64) []Option {
	opts := []Option{
		WithPhysicalTime(r.dt),
		WithEpsilon(r.epsilon),
		WithBackend(r.backend),
	}
	if mu != nil {
		opts = append(opts, WithStationaryDistribution(mu))
	}
	if r.qminus != nil {
		opts = append(opts, WithBackwardCommittor(r.qminus))
	}
	if r.qplus != nil {
		opts = append(opts, WithForwardCommittor(r.qplus))
	}
	if r.grossFlux != nil {
		opts = append(opts, WithGrossFlux(r.grossFlux))
	}

	return opts
}

// scaledMatrix returns m divided by the physical time, as a fresh copy.
func (r *ReactiveFlux) scaledMatrix(m *mat.Dense) *mat.Dense {
	out := mat.DenseCopyOf(m)
	out.Scale(1/r.dt, out)

	return out
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

// checkOptionalVec validates the length of an optional vector (nil is
// allowed and means "absent").
func checkOptionalVec(n int, v []float64, name string) error {
	if v != nil && len(v) != n {
		return fmt.Errorf("%w: len(%s)=%d, n=%d", ErrDimensionMismatch, name, len(v), n)
	}

	return nil
}

// checkBoundary verifies the boundary condition of an optional committor:
// the vector must equal wantA on every state of a and wantB on every state
// of b, within eps.
func checkBoundary(q []float64, name string, a []int, wantA float64, b []int, wantB float64, eps float64) error {
	if q == nil {
		return nil
	}
	for _, s := range a {
		if math.Abs(q[s]-wantA) > eps {
			return fmt.Errorf("%w: %s[%d]=%g, want %g", ErrCommittorBoundary, name, s, q[s], wantA)
		}
	}
	for _, s := range b {
		if math.Abs(q[s]-wantB) > eps {
			return fmt.Errorf("%w: %s[%d]=%g, want %g", ErrCommittorBoundary, name, s, q[s], wantB)
		}
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

// sortedCopy clones a state set into ascending order.
func sortedCopy(set []int) []int {
	out := append([]int(nil), set...)
	sort.Ints(out)

	return out
}

// copyVec clones a vector, preserving nil as "absent".
func copyVec(v []float64) []float64 {
	if v == nil {
		return nil
	}

	return append([]float64(nil), v...)
}

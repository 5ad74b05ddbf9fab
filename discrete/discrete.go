package discrete

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"
)

// OutputModel is a discrete-symbol HMM emission model: a row-stochastic
// (nStates × nSymbols) probability matrix plus a Dirichlet prior count
// matrix of the same shape.
//
// Fit and Sample update the emission matrix in place; the model is not
// safe for concurrent mutation.
type OutputModel struct {
	probs   *mat.Dense // row-stochastic emission matrix
	prior   *mat.Dense // Dirichlet prior counts, same shape
	epsilon float64
}

// New constructs an output model from the row-stochastic emission matrix
// b. Every entry must be non-negative (ErrNegativeEntry) and every row
// must sum to one within the tolerance (ErrNotStochastic). The optional
// prior must have the same shape and non-negative entries.
func New(b mat.Matrix, opts ...Option) (*OutputModel, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if b == nil {
		return nil, ErrNilMatrix
	}
	n, m := b.Dims()
	for i := 0; i < n; i++ {
		rowSum := 0.0
		for j := 0; j < m; j++ {
			v := b.At(i, j)
			if v < 0 {
				return nil, fmt.Errorf("%w: B[%d][%d]=%g", ErrNegativeEntry, i, j, v)
			}
			rowSum += v
		}
		if math.Abs(rowSum-1) > cfg.epsilon {
			return nil, fmt.Errorf("%w: row %d sums to %g", ErrNotStochastic, i, rowSum)
		}
	}

	prior := mat.NewDense(n, m, nil)
	if cfg.prior != nil {
		pr, pc := cfg.prior.Dims()
		if pr != n || pc != m {
			return nil, fmt.Errorf("%w: prior %dx%d, emission %dx%d", ErrDimensionMismatch, pr, pc, n, m)
		}
		for i := 0; i < n; i++ {
			for j := 0; j < m; j++ {
				v := cfg.prior.At(i, j)
				if v < 0 {
					return nil, fmt.Errorf("%w: prior[%d][%d]=%g", ErrNegativeEntry, i, j, v)
				}
				prior.Set(i, j, v)
			}
		}
	}

	return &OutputModel{
		probs:   mat.DenseCopyOf(b),
		prior:   prior,
		epsilon: cfg.epsilon,
	}, nil
}

// NStates returns the number of hidden states.
func (om *OutputModel) NStates() int {
	n, _ := om.probs.Dims()

	return n
}

// NSymbols returns the number of observable symbols.
func (om *OutputModel) NSymbols() int {
	_, m := om.probs.Dims()

	return m
}

// OutputProbabilities returns a copy of the emission matrix.
func (om *OutputModel) OutputProbabilities() *mat.Dense {
	return mat.DenseCopyOf(om.probs)
}

// SubModel restricts the model to a subset of hidden states, preserving
// their order. Emission rows are stochastic independently of each other,
// so the restriction is again a valid model.
func (om *OutputModel) SubModel(states []int) (*OutputModel, error) {
	if len(states) == 0 {
		return nil, ErrEmptySelection
	}
	n, m := om.probs.Dims()
	probs := mat.NewDense(len(states), m, nil)
	prior := mat.NewDense(len(states), m, nil)
	for ri, s := range states {
		if s < 0 || s >= n {
			return nil, fmt.Errorf("%w: state %d, n=%d", ErrBadState, s, n)
		}
		probs.SetRow(ri, om.probs.RawRowView(s))
		prior.SetRow(ri, om.prior.RawRowView(s))
	}

	return &OutputModel{probs: probs, prior: prior, epsilon: om.epsilon}, nil
}

// ObservationProbabilities returns the (T × N) matrix of emission
// probabilities for a symbol trajectory: entry (t, i) is the probability
// of emitting obs[t] from hidden state i. An empty trajectory yields an
// empty matrix.
func (om *OutputModel) ObservationProbabilities(obs []int) (*mat.Dense, error) {
	if len(obs) == 0 {
		return &mat.Dense{}, nil
	}
	n, m := om.probs.Dims()
	out := mat.NewDense(len(obs), n, nil)
	for t, symbol := range obs {
		if symbol < 0 || symbol >= m {
			return nil, fmt.Errorf("%w: obs[%d]=%d, m=%d", ErrBadSymbol, t, symbol, m)
		}
		for i := 0; i < n; i++ {
			out.Set(t, i, om.probs.At(i, symbol))
		}
	}

	return out, nil
}

// Fit re-estimates the emission matrix by weighted multinomial maximum
// likelihood: for each trajectory k, weights[k] is a (T_k × N) matrix of
// state responsibilities, and
//
//	B[i][j] ∝ Σ_k Σ_t weights[k][t][i] · 1{observations[k][t] == j}.
//
// This is the M-step of Baum-Welch for a discrete output model. Every
// state must accumulate positive total weight (ErrNoObservations) — a
// state never visited has no data to normalize against.
func (om *OutputModel) Fit(observations [][]int, weights []*mat.Dense) error {
	n, m := om.probs.Dims()
	if len(observations) != len(weights) {
		return fmt.Errorf("%w: %d trajectories, %d weight matrices",
			ErrDimensionMismatch, len(observations), len(weights))
	}

	counts := mat.NewDense(n, m, nil)
	for k, obs := range observations {
		w := weights[k]
		if w == nil {
			return fmt.Errorf("weights[%d]: %w", k, ErrNilMatrix)
		}
		wr, wc := w.Dims()
		if wr != len(obs) || wc != n {
			return fmt.Errorf("%w: weights[%d] is %dx%d, want %dx%d",
				ErrDimensionMismatch, k, wr, wc, len(obs), n)
		}
		for t, symbol := range obs {
			if symbol < 0 || symbol >= m {
				return fmt.Errorf("%w: observations[%d][%d]=%d, m=%d", ErrBadSymbol, k, t, symbol, m)
			}
			for i := 0; i < n; i++ {
				counts.Set(i, symbol, counts.At(i, symbol)+w.At(t, i))
			}
		}
	}

	// Normalize rows; fail before touching the stored matrix so a bad fit
	// leaves the model intact.
	for i := 0; i < n; i++ {
		if total := floats.Sum(counts.RawRowView(i)); total > 0 {
			row := counts.RawRowView(i)
			floats.Scale(1/total, row)
		} else {
			return fmt.Errorf("%w: state %d", ErrNoObservations, i)
		}
	}
	om.probs.Copy(counts)

	return nil
}

// Sample redraws each emission row from its Dirichlet posterior given the
// per-state observations: row i is sampled from Dirichlet(prior[i] +
// counts(observationsByState[i])), restricted to the symbols with positive
// count-plus-prior (a Dirichlet concentration must be positive).
//
// A state with no positive mass at all keeps its current row — there is
// nothing to sample from (reference behavior). src may be nil, in which
// case the global source of golang.org/x/exp/rand is used.
func (om *OutputModel) Sample(observationsByState [][]int, src rand.Source) error {
	n, m := om.probs.Dims()
	if len(observationsByState) != n {
		return fmt.Errorf("%w: %d observation lists, %d states",
			ErrDimensionMismatch, len(observationsByState), n)
	}

	for i, obs := range observationsByState {
		count := make([]float64, m)
		for t, symbol := range obs {
			if symbol < 0 || symbol >= m {
				return fmt.Errorf("%w: state %d, obs[%d]=%d, m=%d", ErrBadSymbol, i, t, symbol, m)
			}
			count[symbol]++
		}
		floats.Add(count, om.prior.RawRowView(i))

		// Dirichlet support: symbols with positive posterior counts.
		var support []int
		for j, c := range count {
			if c > 0 {
				support = append(support, j)
			}
		}
		if len(support) == 0 {
			continue
		}

		alpha := make([]float64, len(support))
		for si, j := range support {
			alpha[si] = count[j]
		}
		sample := distmv.NewDirichlet(alpha, src).Rand(nil)

		// The sampled simplex covers the support; symbols outside it have
		// zero posterior mass.
		row := om.probs.RawRowView(i)
		for j := range row {
			row[j] = 0
		}
		for si, j := range support {
			row[j] = sample[si]
		}
	}

	return nil
}

// GenerateObservation draws one symbol from the given hidden state's
// emission distribution. src may be nil (global source).
func (om *OutputModel) GenerateObservation(state int, src rand.Source) (int, error) {
	n, _ := om.probs.Dims()
	if state < 0 || state >= n {
		return 0, fmt.Errorf("%w: state %d, n=%d", ErrBadState, state, n)
	}
	dist := distuv.NewCategorical(om.probs.RawRowView(state), src)

	return int(dist.Rand()), nil
}

// GenerateObservations draws nobs symbols from the given hidden state's
// emission distribution.
func (om *OutputModel) GenerateObservations(state, nobs int, src rand.Source) ([]int, error) {
	n, _ := om.probs.Dims()
	if state < 0 || state >= n {
		return nil, fmt.Errorf("%w: state %d, n=%d", ErrBadState, state, n)
	}
	dist := distuv.NewCategorical(om.probs.RawRowView(state), src)
	out := make([]int, nobs)
	for t := range out {
		out[t] = int(dist.Rand())
	}

	return out, nil
}

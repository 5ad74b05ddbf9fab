package tpt_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/thempel/scikit-time/tpt"
)

// The reference scenario used throughout: a three-state chain with
// A = {0}, B = {2} and all flux on the single channel 0→1→2.
var (
	chainA      = []int{0}
	chainB      = []int{2}
	chainMu     = []float64{0.5, 0.3, 0.2}
	chainQminus = []float64{1, 0.5, 0}
	chainQplus  = []float64{0, 0.5, 1}
)

func chainFlux() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		0, 0.5, 0,
		0, 0, 0.5,
		0, 0, 0,
	})
}

func chainModel(t *testing.T, extra ...tpt.Option) *tpt.ReactiveFlux {
	t.Helper()
	opts := append([]tpt.Option{
		tpt.WithStationaryDistribution(chainMu),
		tpt.WithBackwardCommittor(chainQminus),
		tpt.WithForwardCommittor(chainQplus),
		tpt.WithGrossFlux(chainFlux()),
	}, extra...)

	model, err := tpt.New(chainA, chainB, chainFlux(), opts...)
	require.NoError(t, err, "reference chain must construct")

	return model
}

// TestNew_DerivedQuantities checks the quantities derived at construction
// against hand-computed values: total flux 0.5 and rate 0.5/0.65.
func TestNew_DerivedQuantities(t *testing.T) {
	model := chainModel(t)

	assert.Equal(t, 3, model.NStates())
	assert.Equal(t, []int{1}, model.Intermediates(), "I = {0,1,2} \\ A \\ B")
	assert.InDelta(t, 0.5, model.TotalFlux(), 1e-12, "flow leaving A")
	assert.InDelta(t, 0.5/0.65, model.Rate(), 1e-12, "total flux over Σ mu·q−")
	assert.InDelta(t, 0.65/0.5, model.MFPT(), 1e-12, "mfpt is the reciprocal")
	assert.InDelta(t, 1/model.Rate(), model.MFPT(), 1e-12, "reciprocal identity")
}

// TestNew_PhysicalTimeScaling: flux-like quantities divide by the lag
// time, time-like quantities multiply — the reciprocal identity survives.
func TestNew_PhysicalTimeScaling(t *testing.T) {
	unit := chainModel(t)
	lagged := chainModel(t, tpt.WithPhysicalTime(2))

	assert.InDelta(t, unit.TotalFlux()/2, lagged.TotalFlux(), 1e-12, "flux halves")
	assert.InDelta(t, unit.Rate()/2, lagged.Rate(), 1e-12, "rate halves")
	assert.InDelta(t, unit.MFPT()*2, lagged.MFPT(), 1e-12, "mfpt doubles")
	assert.InDelta(t, 1/lagged.Rate(), lagged.MFPT(), 1e-12, "reciprocal identity at dt=2")

	assert.InDelta(t, 0.25, lagged.NetFlux().At(0, 1), 1e-12, "matrix accessor scales too")
	assert.InDelta(t, 0.25, lagged.GrossFlux().At(0, 1), 1e-12)
}

// TestNew_TotalFluxMatchesOutflow: for any valid construction, TotalFlux
// equals the summed net flux leaving A.
func TestNew_TotalFluxMatchesOutflow(t *testing.T) {
	model := chainModel(t)

	net := model.NetFlux()
	outflow := 0.0
	for _, a := range model.A() {
		for j := 0; j < model.NStates(); j++ {
			if j != a {
				outflow += net.At(a, j)
			}
		}
	}
	assert.InDelta(t, model.TotalFlux(), outflow, 1e-12, "declared total equals outflow")
}

// TestNew_OptionalInputsAbsent: mu and the committors are optional; the
// rate (and mfpt) are then undefined, surfacing as NaN rather than a
// bogus number.
func TestNew_OptionalInputsAbsent(t *testing.T) {
	model, err := tpt.New(chainA, chainB, chainFlux())
	require.NoError(t, err, "flux-only construction is legal")

	assert.InDelta(t, 0.5, model.TotalFlux(), 1e-12, "total flux needs no mu")
	assert.True(t, math.IsNaN(model.Rate()), "rate undefined without mu/q−")
	assert.True(t, math.IsNaN(model.MFPT()), "mfpt undefined without mu/q−")
	assert.Nil(t, model.StationaryDistribution())
	assert.Nil(t, model.GrossFlux())
}

// TestNew_Validation walks the documented precondition order.
func TestNew_Validation(t *testing.T) {
	_, err := tpt.New(chainA, chainB, nil)
	assert.ErrorIs(t, err, tpt.ErrNilFlux, "nil flux must error")

	_, err = tpt.New(chainA, chainB, mat.NewDense(2, 3, nil))
	assert.ErrorIs(t, err, tpt.ErrNonSquare, "non-square flux must error")

	_, err = tpt.New(nil, chainB, chainFlux())
	assert.ErrorIs(t, err, tpt.ErrEmptySet, "empty A must error")

	_, err = tpt.New([]int{0, 3}, chainB, chainFlux())
	assert.ErrorIs(t, err, tpt.ErrStateOutOfRange, "out-of-range state must error")

	_, err = tpt.New([]int{0, 0}, chainB, chainFlux())
	assert.ErrorIs(t, err, tpt.ErrDuplicateState, "duplicate state must error")

	_, err = tpt.New([]int{0, 2}, chainB, chainFlux())
	assert.ErrorIs(t, err, tpt.ErrOverlappingAB, "A∩B≠∅ must error")

	_, err = tpt.New(chainA, chainB, chainFlux(),
		tpt.WithStationaryDistribution([]float64{0.5, 0.5}))
	assert.ErrorIs(t, err, tpt.ErrDimensionMismatch, "short mu must error")

	_, err = tpt.New(chainA, chainB, chainFlux(),
		tpt.WithStationaryDistribution([]float64{0.5, -0.1, 0.6}))
	assert.ErrorIs(t, err, tpt.ErrNegativeStationary, "negative mu must error")

	_, err = tpt.New(chainA, chainB, chainFlux(),
		tpt.WithForwardCommittor([]float64{0.2, 0.5, 1}))
	assert.ErrorIs(t, err, tpt.ErrCommittorBoundary, "q+[A]≠0 must error")

	_, err = tpt.New(chainA, chainB, chainFlux(),
		tpt.WithBackwardCommittor([]float64{1, 0.5, 0.3}))
	assert.ErrorIs(t, err, tpt.ErrCommittorBoundary, "q−[B]≠0 must error")

	_, err = tpt.New(chainA, chainB, chainFlux(),
		tpt.WithGrossFlux(mat.NewDense(2, 2, nil)))
	assert.ErrorIs(t, err, tpt.ErrDimensionMismatch, "mis-sized gross flux must error")
}

// TestAccessors_ReturnCopies: mutating an accessor result must not leak
// into the model.
func TestAccessors_ReturnCopies(t *testing.T) {
	model := chainModel(t)

	model.NetFlux().Set(0, 1, 99)
	model.StationaryDistribution()[0] = 99
	model.A()[0] = 99

	assert.InDelta(t, 0.5, model.NetFlux().At(0, 1), 1e-12, "net flux unchanged")
	assert.Equal(t, 0.5, model.StationaryDistribution()[0], "mu unchanged")
	assert.Equal(t, []int{0}, model.A(), "A unchanged")
}

// TestReplace_RecomputesDerived: the rebuilders return fresh models whose
// total flux and rate reflect the replacement — no stale quantities.
func TestReplace_RecomputesDerived(t *testing.T) {
	// Committor-free model: replacing A would invalidate carried
	// committors by construction, which New rightly rejects.
	model, err := tpt.New(chainA, chainB, chainFlux())
	require.NoError(t, err)

	grown, err := model.ReplaceA([]int{0, 1})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, grown.A())
	assert.InDelta(t, 0.5, grown.TotalFlux(), 1e-12, "outflow of {0,1} is the 1→2 edge")
	assert.Empty(t, grown.Intermediates(), "no intermediate states remain")

	// Replacing mu on the full model recomputes the rate denominator.
	full := chainModel(t)
	heavier, err := full.ReplaceStationaryDistribution([]float64{0.8, 0.1, 0.1})
	require.NoError(t, err)
	assert.InDelta(t, 0.5/(0.8+0.05), heavier.Rate(), 1e-12, "rate recomputed")
	assert.InDelta(t, full.TotalFlux(), heavier.TotalFlux(), 1e-12, "total flux unaffected by mu")

	// The original models are untouched.
	assert.Equal(t, []int{0}, model.A())
	assert.InDelta(t, 0.5/0.65, full.Rate(), 1e-12)
}

// TestReplace_StaleCommittorRejected: carrying committors across a
// boundary change violates their boundary conditions — New fails fast
// instead of serving stale kinetics.
func TestReplace_StaleCommittorRejected(t *testing.T) {
	model := chainModel(t)

	_, err := model.ReplaceA([]int{0, 1})
	assert.ErrorIs(t, err, tpt.ErrCommittorBoundary,
		"q+[1]=0.5 cannot hold on the enlarged A")
}

package flux_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/thempel/scikit-time/flux"
)

// TestCoarseGrain_Identity: one state per group reproduces the matrix
// (the diagonal is zero to begin with).
func TestCoarseGrain_Identity(t *testing.T) {
	c, err := flux.CoarseGrain(referenceChain(), [][]int{{0}, {1}, {2}})
	require.NoError(t, err)

	assert.True(t, mat.EqualApprox(referenceChain(), c, 1e-12), "singleton groups change nothing")
}

// TestCoarseGrain_MergeDiscardsInternalFlux: merging two states keeps only
// the flux crossing the new group boundary.
func TestCoarseGrain_MergeDiscardsInternalFlux(t *testing.T) {
	c, err := flux.CoarseGrain(referenceChain(), [][]int{{0, 1}, {2}})
	require.NoError(t, err)

	r, cols := c.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 2, cols)
	// 0→1 (0.5) is internal to group 0 and discarded; 1→2 (0.5) crosses.
	assert.InDelta(t, 0.5, c.At(0, 1), 1e-12, "boundary-crossing flux survives")
	assert.Zero(t, c.At(0, 0), "intra-group flux is discarded")
	assert.Zero(t, c.At(1, 0), "no backward flux")
}

// TestCoarseGrain_PartialCoverage: uncovered states simply contribute
// nothing; the caller chose not to distinguish them.
func TestCoarseGrain_PartialCoverage(t *testing.T) {
	c, err := flux.CoarseGrain(referenceChain(), [][]int{{0}, {2}})
	require.NoError(t, err)

	// State 1 is uncovered: the 0→1 and 1→2 currents vanish with it.
	assert.Zero(t, c.At(0, 1), "flux through an uncovered state is dropped")
}

// TestCoarseGrain_Validation: overlap and malformed groups are rejected.
func TestCoarseGrain_Validation(t *testing.T) {
	_, err := flux.CoarseGrain(referenceChain(), nil)
	assert.ErrorIs(t, err, flux.ErrEmptySet, "no groups at all must error")

	_, err = flux.CoarseGrain(referenceChain(), [][]int{{0, 1}, {1, 2}})
	assert.ErrorIs(t, err, flux.ErrOverlappingSets, "overlapping groups double-count")

	_, err = flux.CoarseGrain(referenceChain(), [][]int{{0}, {3}})
	assert.ErrorIs(t, err, flux.ErrStateOutOfRange, "out-of-range member must error")

	_, err = flux.CoarseGrain(referenceChain(), [][]int{{0}, {}})
	assert.ErrorIs(t, err, flux.ErrEmptySet, "empty group must error")
}

package tpt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thempel/scikit-time/tpt"
)

// TestPathways_SingleChannel: the reference chain has a single pathway
// [0 1 2] carrying the total flux of 0.5.
func TestPathways_SingleChannel(t *testing.T) {
	model := chainModel(t)

	paths, caps, err := model.Pathways(1.0, 1000)
	require.NoError(t, err)

	require.Len(t, paths, 1)
	assert.Equal(t, []int{0, 1, 2}, paths[0])
	assert.InDelta(t, 0.5, caps[0], 1e-12)
}

// TestPathways_ScaledLikeEverythingElse: path fluxes share units with
// TotalFlux, so the coverage check Σ caps == TotalFlux holds at any lag.
func TestPathways_ScaledLikeEverythingElse(t *testing.T) {
	lagged := chainModel(t, tpt.WithPhysicalTime(2))

	paths, caps, err := lagged.Pathways(1.0, 1000)
	require.NoError(t, err)

	require.Len(t, paths, 1)
	assert.InDelta(t, 0.25, caps[0], 1e-12, "path flux in physical-time units")
	assert.InDelta(t, lagged.TotalFlux(), caps[0], 1e-12, "full coverage at fraction 1")
}

// TestMajorFlux_FullFraction: reassembling all pathways reconstructs a
// matrix whose outflow from A equals the total flux.
func TestMajorFlux_FullFraction(t *testing.T) {
	model := chainModel(t)

	f, err := model.MajorFlux(1.0)
	require.NoError(t, err)

	outflow := 0.0
	for j := 0; j < model.NStates(); j++ {
		outflow += f.At(0, j)
	}
	assert.InDelta(t, model.TotalFlux(), outflow, 1e-12, "all channels included")
	assert.InDelta(t, 0.5, f.At(0, 1), 1e-12, "edge reconstructed")
	assert.InDelta(t, 0.5, f.At(1, 2), 1e-12, "edge reconstructed")
}

// TestPathways_BadArguments: argument policing propagates from the
// backend unchanged.
func TestPathways_BadArguments(t *testing.T) {
	model := chainModel(t)

	_, _, err := model.Pathways(0, 1000)
	assert.Error(t, err, "fraction 0 is rejected")

	_, _, err = model.Pathways(1.0, 0)
	assert.Error(t, err, "maxIter 0 is rejected")
}

// Package tpt implements the reactive-flux model of Transition Path
// Theory: an A→B flux network over a discrete state space, with derived
// kinetic quantities, pathway decomposition and boundary-respecting
// coarse-graining.
//
// 🚀 What is a ReactiveFlux?
//
//	A network of probability currents from a set of source states A to a
//	set of sink states B through the intermediate states I. Every state
//	carries a stationary probability mu, a forward committor q+ and a
//	backward committor q−; every ordered state pair carries a net flux
//	(and optionally a gross flux). From these the model derives:
//	  • TotalFlux — aggregate current leaving A
//	  • Rate / MFPT — how fast A→B transitions occur on average
//	  • Pathways — dominant A→B reaction channels and their weights
//	  • CoarseGrain — the same network reduced onto groups of states
//
// ✨ Key features:
//   - fail-fast construction: disjoint A/B, shapes, committor boundary
//     conditions are all validated with named sentinel errors
//   - immutable models: Replace* returns a fresh model with total flux and
//     rate recomputed, so derived quantities are never stale
//   - physical-time scaling: flux-like outputs divided by the lag time,
//     time-like outputs multiplied by it
//   - recursive coarse-graining: the coarse model is a full ReactiveFlux
//   - pluggable numerics: the five flux primitives are consumed through
//     the Backend interface (default: package flux), swappable per model
//
// ⚙️ Usage:
//
//	import "github.com/thempel/scikit-time/tpt"
//
//	model, err := tpt.New(A, B, fnet,
//	    tpt.WithStationaryDistribution(mu),
//	    tpt.WithBackwardCommittor(qminus),
//	    tpt.WithForwardCommittor(qplus),
//	    tpt.WithGrossFlux(f),
//	)
//	paths, caps, err := model.Pathways(0.9, 1000)
//	sets, coarse, err := model.CoarseGrain([][]int{{0, 1}, {2}})
//
// Concurrency: a model is immutable after construction, so any number of
// goroutines may read it concurrently without synchronization.
//
// See flux for the underlying numerical primitives and discrete for the
// companion output model.
package tpt

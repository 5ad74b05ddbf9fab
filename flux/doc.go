// Package flux provides the numerical primitives of Transition Path Theory
// (TPT) for discrete-state Markov processes: committor probabilities,
// gross/net flux matrices, total flux, reaction rate, pathway decomposition
// and coarse-grained flux aggregation.
//
// 🚀 What is TPT?
//
//	Given a Markov process, a set of source states A and a set of sink
//	states B, TPT characterizes the ensemble of reactive A→B trajectories:
//	  • the forward committor q+ (probability of reaching B before A)
//	  • the backward committor q− (probability of having come from A)
//	  • the flux network f[i][j] carrying probability current from A to B
//	  • the total flux, reaction rate and dominant reaction pathways
//
// ✨ Key features:
//   - committors via dense linear solves (gonum.org/v1/gonum/mat)
//   - gross flux from (T, mu, q−, q+); net flux by removing back-fluxes
//   - iterative bottleneck (maximin-path) pathway decomposition
//   - flux aggregation onto arbitrary groups of states
//
// ⚙️ Usage:
//
//	import "github.com/thempel/scikit-time/flux"
//
//	qplus, err  := flux.ForwardCommittor(T, A, B)
//	qminus, err := flux.BackwardCommittor(T, A, B, mu)
//	F, err      := flux.Matrix(T, mu, qminus, qplus)   // gross flux
//	Fnet, err   := flux.ToNet(F)                       // net flux
//	total, err  := flux.Total(Fnet, A)
//	k, err      := flux.Rate(total, mu, qminus)
//	paths, caps, err := flux.Pathways(Fnet, A, B, 1.0, 1000)
//
// All functions are pure and deterministic: they never mutate their inputs
// and allocate fresh outputs on every call. Matrices are accepted through
// the read-only mat.Matrix interface and returned as *mat.Dense.
//
// Errors are package-level sentinels (ErrNonSquare, ErrStateOutOfRange, …)
// matched via errors.Is; no function panics on user input.
//
// Complexity:
//
//   - Committors:     O(n³) dense solve over the intermediate block
//   - Flux matrices:  O(n²)
//   - Pathways:       O(P · E log n) for P extracted paths over E edges
//   - CoarseGrain:    O(n²)
//
// See tpt for the ReactiveFlux model built on top of these primitives.
package flux

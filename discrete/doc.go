// Package discrete implements the discrete-symbol output model of a
// hidden Markov process: a row-stochastic emission matrix B mapping N
// hidden states onto M observable symbols, with maximum-likelihood
// estimation and Dirichlet-posterior sampling.
//
// 🚀 What is an output model?
//
//	The "standard" HMM emission layer: hidden state i emits symbol j with
//	probability B[i][j]. The package covers the full estimation cycle:
//	  • Fit — multinomial maximum-likelihood re-estimation from weighted
//	    observation trajectories (the M-step of Baum-Welch)
//	  • Sample — Bayesian update: draw each row from the Dirichlet
//	    posterior given per-state symbol counts and a prior count matrix
//	  • GenerateObservations — categorical sampling of synthetic symbols
//
// ⚙️ Usage:
//
//	import (
//	    "golang.org/x/exp/rand"
//	    "gonum.org/v1/gonum/mat"
//
//	    "github.com/thempel/scikit-time/discrete"
//	)
//
//	B := mat.NewDense(2, 2, []float64{0.5, 0.5, 0.1, 0.9})
//	m, err := discrete.New(B)
//	obs, err := m.GenerateObservations(0, 1000, rand.NewSource(42))
//
// Randomness is confined to this package (the reactive-flux core is fully
// deterministic); every sampling method takes an explicit rand.Source so
// callers control reproducibility.
//
// Sampling uses gonum.org/v1/gonum/stat/distmv (Dirichlet) and
// gonum.org/v1/gonum/stat/distuv (Categorical).
package discrete

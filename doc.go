// Package scikittime is an in-memory toolkit for analyzing discrete-state
// Markov processes with Transition Path Theory (TPT) — from raw flux
// primitives to coarse-grained reactive-flux networks.
//
// 🚀 What is scikit-time?
//
//	A modern Go library that brings together:
//		• Flux primitives: committors, gross/net flux, total flux & rate
//		• Reactive-flux model: A→B networks with stationary weights and committors
//		• Pathway decomposition: dominant A→B reaction channels by bottleneck removal
//		• Coarse-graining: boundary-respecting reduction onto user-defined state groups
//		• Discrete output model: multinomial ML fit & Dirichlet posterior sampling
//
// ✨ Why choose scikit-time?
//
//   - Fail-fast guarantees – every invariant (disjoint A/B, committor
//     boundaries, positive group mass) is validated with a named sentinel error
//   - Deterministic – pure functions over immutable inputs, no hidden state
//   - gonum-powered – dense linear algebra via gonum.org/v1/gonum
//   - Recursive – a coarse-grained flux network is itself a valid model
//
// Everything is organized under three subpackages:
//
//	flux/     — TPT numerical primitives (committor, netflux, pathways, coarsegrain)
//	tpt/      — the ReactiveFlux model: derived quantities, pathways, coarse-graining
//	discrete/ — discrete-symbol output model (emission matrix estimation & sampling)
//
// Quick ASCII example:
//
//	    A ──0.5──▶ I ──0.5──▶ B
//
//	a three-state chain whose entire reactive flux of 0.5 travels the
//	single pathway A→I→B.
//
// Dive into the per-package doc.go files for algorithm outlines,
// complexity notes and runnable examples.
//
//	go get github.com/thempel/scikit-time
package scikittime

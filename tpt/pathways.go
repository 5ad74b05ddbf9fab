package tpt

import "gonum.org/v1/gonum/mat"

// Pathways decomposes the flux network into dominant A→B reaction
// pathways via the backend's iterative bottleneck decomposition.
//
// fraction is the share of the total flux to assemble, in (0, 1]; maxIter
// caps the number of extracted paths. Returns the paths (ordered state
// sequences from A to B) and the parallel slice of path fluxes in
// physical-time units, ordered by non-increasing contribution.
//
// Hitting maxIter is not an error — the result is silently partial, and
// callers that need full coverage must compare the summed path fluxes
// against TotalFlux.
func (r *ReactiveFlux) Pathways(fraction float64, maxIter int) ([][]int, []float64, error) {
	paths, capacities, err := r.backend.Pathways(r.netFlux, r.a, r.b, fraction, maxIter)
	if err != nil {
		return nil, nil, err
	}

	// Backend capacities are raw; expose them in physical-time units like
	// every other flux-like quantity.
	scaled := make([]float64, len(capacities))
	for i, c := range capacities {
		scaled[i] = c / r.dt
	}

	return paths, scaled, nil
}

// MajorFlux reconstructs the sub-network of the net flux carried by the
// dominant pathways comprising at most the requested fraction of the total
// flux: each path's flux is added onto every edge it traverses, so edges
// shared by several paths accumulate.
//
// With fraction == 1 the reconstruction reproduces the full A→B current
// (its total outflow from A equals TotalFlux).
func (r *ReactiveFlux) MajorFlux(fraction float64) (*mat.Dense, error) {
	paths, capacities, err := r.Pathways(fraction, DefaultMaxIter)
	if err != nil {
		return nil, err
	}

	return pathwaysToFlux(paths, capacities, r.n), nil
}

// pathwaysToFlux sums path fluxes back into an n×n flux matrix: every
// consecutive edge (p[t], p[t+1]) of path i gains capacities[i].
func pathwaysToFlux(paths [][]int, capacities []float64, n int) *mat.Dense {
	f := mat.NewDense(n, n, nil)
	for i, p := range paths {
		for t := 0; t < len(p)-1; t++ {
			u, v := p[t], p[t+1]
			f.Set(u, v, f.At(u, v)+capacities[i])
		}
	}

	return f
}

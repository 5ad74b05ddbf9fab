package tpt

import "fmt"

// CoarseGrain reduces the flux network onto user-defined groups of states
// while preserving the A/I/B boundary.
//
// The user groups need not form a partition: states missing from every
// group are collected into one implicit remainder group, and any group
// straddling the A/intermediate/B boundary is split into up to three
// regional pieces. The resulting groups — returned as the first value, in
// [A-groups][I-groups][B-groups] order — are the states of the coarse
// model, so callers can map coarse indices back to original states.
//
// The coarse model aggregates every quantity consistently:
//
//   - gross flux: summed over all state pairs crossing group boundaries
//     (intra-group flux is discarded); net flux re-derived from it
//   - stationary probability: summed over group members
//   - committors: mu-weighted averages over group members
//
// and carries the same physical time and backend, so it is itself a valid
// ReactiveFlux and may be coarse-grained again.
//
// Preconditions and validation (in order):
//  1. The model must hold a gross flux, a stationary distribution and
//     both committors (ErrMissingGrossFlux, ErrMissingStationary,
//     ErrMissingCommittor).
//  2. Every user group must be non-empty, in range and duplicate-free
//     (ErrEmptySet, ErrStateOutOfRange, ErrDuplicateState).
//  3. User groups must be pairwise disjoint (ErrOverlappingSets) — the
//     policy decision for overlapping input, pinned by tests.
//  4. Every resulting group must carry positive stationary mass
//     (ErrZeroMassGroup).
//
// An empty userSets slice is valid: the remainder mechanism alone yields
// the plain A/I/B split (two groups when I is empty).
func (r *ReactiveFlux) CoarseGrain(userSets [][]int) ([][]int, *ReactiveFlux, error) {
	if r.grossFlux == nil {
		return nil, nil, ErrMissingGrossFlux
	}
	if r.mu == nil {
		return nil, nil, ErrMissingStationary
	}
	if r.qplus == nil || r.qminus == nil {
		return nil, nil, ErrMissingCommittor
	}

	sets, aIdx, bIdx, err := r.computeCoarseSets(userSets)
	if err != nil {
		return nil, nil, err
	}

	// Aggregate the raw gross flux onto the new groups, then re-derive
	// the net flux on the coarse network.
	fCoarse, err := r.backend.CoarseGrain(r.grossFlux, sets)
	if err != nil {
		return nil, nil, err
	}
	fnetCoarse, err := r.backend.ToNet(fCoarse)
	if err != nil {
		return nil, nil, err
	}

	// Aggregate mu by summation and the committors by mu-weighted average
	// (each member weighted by its share of the group's stationary mass).
	nnew := len(sets)
	muCoarse := make([]float64, nnew)
	qplusCoarse := make([]float64, nnew)
	qminusCoarse := make([]float64, nnew)
	for gi, set := range sets {
		mass := 0.0
		for _, s := range set {
			mass += r.mu[s]
		}
		if mass <= 0 {
			return nil, nil, fmt.Errorf("%w: group %d (states %v)", ErrZeroMassGroup, gi, set)
		}
		muCoarse[gi] = mass
		for _, s := range set {
			w := r.mu[s] / mass
			qplusCoarse[gi] += w * r.qplus[s]
			qminusCoarse[gi] += w * r.qminus[s]
		}
	}

	coarse, err := New(aIdx, bIdx, fnetCoarse,
		WithStationaryDistribution(muCoarse),
		WithForwardCommittor(qplusCoarse),
		WithBackwardCommittor(qminusCoarse),
		WithGrossFlux(fCoarse),
		WithPhysicalTime(r.dt),
		WithEpsilon(r.epsilon),
		WithBackend(r.backend),
	)
	if err != nil {
		return nil, nil, err
	}

	return sets, coarse, nil
}

// computeCoarseSets refines the user grouping into a boundary-respecting
// strict partition of all n states:
//
//  1. States covered by no user group are gathered into one remainder
//     group, processed after all user groups.
//  2. Each group is intersected independently with A, with the
//     intermediates and with B; every non-empty intersection becomes one
//     output group, so a straddling group splits into up to three.
//  3. The output concatenates all A-pieces, then all I-pieces, then all
//     B-pieces, preserving the order the originating groups were given in.
//
// Returns the groups plus the coarse-state index ranges forming the new A
// (contiguous prefix) and new B (contiguous suffix). Group members are
// emitted in ascending order for determinism.
func (r *ReactiveFlux) computeCoarseSets(userSets [][]int) (sets [][]int, aIdx, bIdx []int, err error) {
	covered := make([]bool, r.n)
	for gi, set := range userSets {
		if err = checkSet(r.n, set); err != nil {
			return nil, nil, nil, fmt.Errorf("user set %d: %w", gi, err)
		}
		for _, s := range set {
			if covered[s] {
				return nil, nil, nil, fmt.Errorf("%w: state %d", ErrOverlappingSets, s)
			}
			covered[s] = true
		}
	}

	groups := make([][]int, 0, len(userSets)+1)
	for _, set := range userSets {
		groups = append(groups, sortedCopy(set))
	}
	var rest []int
	for s := 0; s < r.n; s++ {
		if !covered[s] {
			rest = append(rest, s)
		}
	}
	if len(rest) > 0 {
		groups = append(groups, rest)
	}

	// Split every group at the A/I/B boundary.
	inA := membership(r.n, r.a)
	inB := membership(r.n, r.b)
	var aSets, iSets, bSets [][]int
	for _, set := range groups {
		var aPart, iPart, bPart []int
		for _, s := range set {
			switch {
			case inA[s]:
				aPart = append(aPart, s)
			case inB[s]:
				bPart = append(bPart, s)
			default:
				iPart = append(iPart, s)
			}
		}
		if len(aPart) > 0 {
			aSets = append(aSets, aPart)
		}
		if len(iPart) > 0 {
			iSets = append(iSets, iPart)
		}
		if len(bPart) > 0 {
			bSets = append(bSets, bPart)
		}
	}

	sets = make([][]int, 0, len(aSets)+len(iSets)+len(bSets))
	sets = append(sets, aSets...)
	sets = append(sets, iSets...)
	sets = append(sets, bSets...)

	// Coarse A is the contiguous prefix of A-pieces, coarse B the
	// contiguous suffix of B-pieces.
	for i := range aSets {
		aIdx = append(aIdx, i)
	}
	for i := len(aSets) + len(iSets); i < len(sets); i++ {
		bIdx = append(bIdx, i)
	}

	return sets, aIdx, bIdx, nil
}

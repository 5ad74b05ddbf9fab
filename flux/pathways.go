package flux

import (
	"container/heap"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Pathways decomposes the net flux matrix f into dominant A→B reaction
// pathways by iterative bottleneck removal (Metzner/Schütte/Vanden-Eijnden):
//
//  1. Find the A→B path whose minimum-flux edge (the bottleneck) is
//     maximal — a maximin "widest path" search.
//  2. The path carries flux equal to its bottleneck capacity; record it and
//     subtract that amount from every edge along the path.
//  3. Repeat on the residual network until the accumulated path flux
//     reaches fraction·Total(f, A), maxIter paths were produced, or no
//     positive-capacity A→B path remains.
//
// Returns the paths (each an ordered state sequence from some a ∈ A to
// some b ∈ B) and the parallel slice of path fluxes, ordered by
// non-increasing contribution. The two slices cover the full flux only if
// fraction == 1 and the loop was not cut short by maxIter — hitting the
// cap silently yields a partial result, so callers interested in coverage
// must compare the summed fluxes against Total (see package doc).
//
// Preconditions and validation (in order):
//  1. f must be non-nil and square (ErrNilMatrix, ErrNonSquare).
//  2. A and B must be valid, disjoint state sets
//     (ErrEmptySet, ErrStateOutOfRange, ErrDuplicateState, ErrOverlappingSets).
//  3. fraction must lie in (0, 1] (ErrBadFraction).
//  4. maxIter must be positive (ErrBadMaxIter).
//
// Options customization:
//
//   - WithEpsilon(eps): residual flux ≤ eps is treated as an absent edge.
//
// Complexity:
//
//   - Time:  O(P · E log n) for P extracted paths over E positive edges —
//     each widest-path search is a lazy-decrease-key heap sweep, and every
//     iteration zeroes at least one edge, so P ≤ E always terminates.
//   - Space: O(n² ) for the residual copy, O(n + E) per search.
func Pathways(f mat.Matrix, a, b []int, fraction float64, maxIter int, opts ...Option) ([][]int, []float64, error) {
	cfg := gatherOptions(opts)

	n, err := checkSquare(f)
	if err != nil {
		return nil, nil, err
	}
	if err = checkSet(n, a); err != nil {
		return nil, nil, err
	}
	if err = checkSet(n, b); err != nil {
		return nil, nil, err
	}
	if err = checkDisjoint(a, b); err != nil {
		return nil, nil, err
	}
	if fraction <= 0 || fraction > 1 {
		return nil, nil, fmt.Errorf("%w: got %g", ErrBadFraction, fraction)
	}
	if maxIter < 1 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrBadMaxIter, maxIter)
	}

	total, err := Total(f, a)
	if err != nil {
		return nil, nil, err
	}

	// Residual flux network, consumed destructively by the loop below.
	residual := mat.DenseCopyOf(f)
	inA := membership(n, a)
	inB := membership(n, b)

	var (
		paths  [][]int
		fluxes []float64
		acc    float64
	)
	target := fraction * total
	for len(paths) < maxIter && acc < target {
		path, capacity := widestPath(residual, inA, inB, cfg.Epsilon)
		if path == nil {
			// Residual network disconnected: partial result, not an error.
			break
		}
		// Drain the bottleneck capacity along the path; the bottleneck
		// edge itself drops to zero, guaranteeing progress.
		for t := 0; t < len(path)-1; t++ {
			u, v := path[t], path[t+1]
			residual.Set(u, v, residual.At(u, v)-capacity)
		}
		paths = append(paths, path)
		fluxes = append(fluxes, capacity)
		acc += capacity
	}

	return paths, fluxes, nil
}

// widestPath finds the A→B path maximizing the minimum edge flux over the
// residual network. It is a maximin variant of Dijkstra with a
// lazy-decrease-key max-heap: instead of summing weights it propagates
// best[v] = max over paths of min edge capacity, seeded with +∞ on every
// A state.
//
// Returns (nil, 0) when no path with capacity > eps exists.
func widestPath(residual *mat.Dense, inA, inB []bool, eps float64) ([]int, float64) {
	n := len(inA)

	// best[v] — largest bottleneck capacity known for reaching v from A.
	best := make([]float64, n)
	prev := make([]int, n)
	visited := make([]bool, n)
	for i := range prev {
		prev[i] = -1
	}

	pq := make(statePQ, 0, n)
	heap.Init(&pq)
	for s := 0; s < n; s++ {
		if inA[s] {
			best[s] = inf
			heap.Push(&pq, &stateItem{state: s, capacity: inf})
		}
	}

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*stateItem)
		u := item.state
		if visited[u] {
			continue // stale heap entry
		}
		visited[u] = true

		if inB[u] {
			// First sink extracted carries the global maximin capacity.
			return unwind(prev, u), item.capacity
		}

		for v := 0; v < n; v++ {
			c := residual.At(u, v)
			if c <= eps || visited[v] {
				continue
			}
			bottleneck := min(item.capacity, c)
			if bottleneck <= best[v] {
				continue
			}
			best[v] = bottleneck
			prev[v] = u
			heap.Push(&pq, &stateItem{state: v, capacity: bottleneck})
		}
	}

	return nil, 0
}

// unwind reconstructs the path ending at sink by walking the predecessor
// chain back into A, then reverses it in place.
func unwind(prev []int, sink int) []int {
	path := []int{sink}
	for u := prev[sink]; u >= 0; u = prev[u] {
		path = append(path, u)
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}

	return path
}

// inf is the seed capacity of source states: any real edge is tighter.
var inf = math.Inf(1)

// stateItem pairs a state with its candidate bottleneck capacity.
type stateItem struct {
	state    int
	capacity float64
}

// statePQ is a max-heap of *stateItem ordered by capacity descending,
// used with the lazy-decrease-key pattern (stale entries are skipped via
// the visited set).
type statePQ []*stateItem

func (pq statePQ) Len() int            { return len(pq) }
func (pq statePQ) Less(i, j int) bool  { return pq[i].capacity > pq[j].capacity }
func (pq statePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *statePQ) Push(x interface{}) { *pq = append(*pq, x.(*stateItem)) }
func (pq *statePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}

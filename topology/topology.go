// Package topology defines which particles' personal bests influence a
// given particle.  A topology maps the swarm's personal-best state to one
// attractor per particle; the velocity update pulls each particle toward
// its attractor.
package topology

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/abougouffa/pyswarms"
)

// Topology computes, for each particle, the best known position and cost
// it should be attracted toward.
type Topology interface {
	// Validate checks the topology's parameters against the swarm size n.
	// It is called once at iterator construction.
	Validate(n int) error

	// Best returns one attractor per particle: cost[i] and row i of
	// bestPos hold the best personal-best cost/position visible to
	// particle i.  pos holds current positions (used by
	// distance-based topologies), pbestPos/pbestCost the personal bests.
	Best(pos, pbestPos *mat.Dense, pbestCost []float64) (cost []float64, bestPos *mat.Dense)
}

// Star connects every particle to every other: all particles share the
// single swarm-wide best personal best.  Ties go to the first particle
// index achieving the minimum.
type Star struct{}

func (Star) Validate(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: star topology needs at least 1 particle, got %v", pyswarms.ErrConfig, n)
	}
	return nil
}

func (Star) Best(pos, pbestPos *mat.Dense, pbestCost []float64) ([]float64, *mat.Dense) {
	n, dims := pbestPos.Dims()

	best := 0
	for i := 1; i < n; i++ {
		if pbestCost[i] < pbestCost[best] {
			best = i
		}
	}

	cost := make([]float64, n)
	attract := mat.NewDense(n, dims, nil)
	row := pbestPos.RawRowView(best)
	for i := 0; i < n; i++ {
		cost[i] = pbestCost[best]
		attract.SetRow(i, row)
	}
	return cost, attract
}

// Ring gives each particle a neighborhood of its K nearest particles
// (Minkowski order P, self included) in position space and attracts it
// toward the lowest personal-best cost in that neighborhood.  With K
// equal to the swarm size, Ring degenerates to Star.
type Ring struct {
	// K is the neighborhood size, 1 <= K <= swarm size.
	K int
	// P is the Minkowski distance order: 1 for L1, 2 for Euclidean.
	P float64
	// RefreshEvery throttles neighbor recomputation to every m-th call
	// to Best.  Between refreshes the neighbor lists go stale, which is
	// an accepted approximation.  Values < 2 refresh every call.
	RefreshEvery int

	nbrs  [][]int
	calls int
}

func NewRing(k int, p float64) *Ring {
	return &Ring{K: k, P: p}
}

func (t *Ring) Validate(n int) error {
	if t.K < 1 || t.K > n {
		return fmt.Errorf("%w: ring neighbor count k=%v must be in [1, %v]", pyswarms.ErrConfig, t.K, n)
	}
	if t.P < 1 {
		return fmt.Errorf("%w: minkowski order p=%v must be >= 1", pyswarms.ErrConfig, t.P)
	}
	return nil
}

func (t *Ring) Best(pos, pbestPos *mat.Dense, pbestCost []float64) ([]float64, *mat.Dense) {
	n, dims := pbestPos.Dims()

	if t.nbrs == nil || t.calls%max(t.RefreshEvery, 1) == 0 {
		t.refresh(pos)
	}
	t.calls++

	cost := make([]float64, n)
	attract := mat.NewDense(n, dims, nil)
	for i := 0; i < n; i++ {
		best := t.nbrs[i][0]
		for _, j := range t.nbrs[i][1:] {
			if pbestCost[j] < pbestCost[best] {
				best = j
			}
		}
		cost[i] = pbestCost[best]
		attract.SetRow(i, pbestPos.RawRowView(best))
	}
	return cost, attract
}

// refresh recomputes each particle's K nearest neighbors from current
// positions.  Neighbor lists stay sorted by particle index so that
// neighborhood argmin tie-breaks are stable across refreshes.
func (t *Ring) refresh(pos *mat.Dense) {
	n, _ := pos.Dims()

	if t.nbrs == nil {
		t.nbrs = make([][]int, n)
	}

	dist := make([]float64, n)
	order := make([]int, n)
	for i := 0; i < n; i++ {
		xi := pos.RawRowView(i)
		for j := 0; j < n; j++ {
			dist[j] = floats.Distance(xi, pos.RawRowView(j), t.P)
			order[j] = j
		}
		// stable on index so equidistant particles resolve deterministically
		sort.SliceStable(order, func(a, b int) bool { return dist[order[a]] < dist[order[b]] })

		nbrs := append([]int{}, order[:t.K]...)
		sort.Ints(nbrs)
		t.nbrs[i] = nbrs
	}
}

// Package swarm implements continuous particle swarm optimization.  The
// attractor rule is pluggable via package topology: a Star topology gives
// global-best PSO, a Ring topology gives local-best PSO.
package swarm

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/abougouffa/pyswarms"
)

// Swarm owns all per-particle state as parallel N x dims matrices plus
// cost vectors of length N.  It is mutated in place once per generation
// and never shared between iterators.
type Swarm struct {
	// Pos and Vel hold current positions and velocities.
	Pos *mat.Dense
	Vel *mat.Dense
	// BestPos and BestCost hold each particle's personal best.  BestCost
	// never increases at any index across generations.
	BestPos  *mat.Dense
	BestCost []float64
	// Cost holds the most recently evaluated costs.
	Cost []float64
}

// NewSwarm builds swarm state from initial position and velocity
// matrices, taking ownership of both.  Personal bests start as copies of
// the initial positions with +Inf cost so the first evaluation claims
// them.
func NewSwarm(pos, vel *mat.Dense) *Swarm {
	n, _ := pos.Dims()
	s := &Swarm{
		Pos:      pos,
		Vel:      vel,
		BestPos:  mat.DenseCopyOf(pos),
		BestCost: make([]float64, n),
		Cost:     make([]float64, n),
	}
	for i := range s.BestCost {
		s.BestCost[i] = math.Inf(1)
		s.Cost[i] = math.Inf(1)
	}
	return s
}

// Len returns the number of particles.
func (s *Swarm) Len() int {
	n, _ := s.Pos.Dims()
	return n
}

// Dims returns the dimensionality of the search space.
func (s *Swarm) Dims() int {
	_, dims := s.Pos.Dims()
	return dims
}

// UpdateBests records the given current-generation costs and claims new
// personal bests where cost[i] strictly improves on BestCost[i].  Ties
// keep the existing personal best.
func (s *Swarm) UpdateBests(costs []float64) {
	copy(s.Cost, costs)
	for i, c := range costs {
		if c < s.BestCost[i] {
			s.BestCost[i] = c
			s.BestPos.SetRow(i, s.Pos.RawRowView(i))
		}
	}
}

// Best returns the swarm-wide minimum personal best.  Ties go to the
// first particle index achieving the minimum.
func (s *Swarm) Best() pyswarms.Point {
	best := 0
	for i := 1; i < len(s.BestCost); i++ {
		if s.BestCost[i] < s.BestCost[best] {
			best = i
		}
	}
	return pyswarms.NewPoint(s.BestPos.RawRowView(best), s.BestCost[best])
}

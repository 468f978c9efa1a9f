// Package binary implements binary particle swarm optimization for
// objectives over bit vectors, such as feature-subset selection.  The
// velocity update is the same real-valued rule as the continuous
// variant; positions are resampled each generation as Bernoulli draws
// with probability sigmoid(velocity).  Bits are inherently bounded, so
// no box clipping applies.
package binary

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/abougouffa/pyswarms"
	"github.com/abougouffa/pyswarms/swarm"
	"github.com/abougouffa/pyswarms/topology"
)

const (
	DefaultCognition = 0.5
	DefaultSocial    = 0.3
	DefaultInertia   = 0.9
)

type Option func(*Iterator)

func LearnFactors(cognition, social float64) Option {
	return func(it *Iterator) {
		it.Cognition = cognition
		it.Social = social
	}
}

func FixedInertia(v float64) Option {
	return func(it *Iterator) {
		it.Inertia = v
	}
}

// VmaxAll limits every velocity component to [-vmax, vmax].  Clamping
// keeps the sigmoid away from saturation so bits can still flip.
func VmaxAll(vmax float64) Option {
	return func(it *Iterator) {
		it.Vmax = vmax
	}
}

// Topo sets the neighborhood structure.  A Ring with explicit k and p
// matches the classic discrete formulation; Star works too.
func Topo(t topology.Topology) Option {
	return func(it *Iterator) {
		it.Topo = t
	}
}

// InitPos supplies the initial bit matrix (entries must be 0 or 1)
// instead of uniform random bits.
func InitPos(pos *mat.Dense) Option {
	return func(it *Iterator) {
		it.initPos = pos
	}
}

// Seed seeds the iterator's random number generator.
func Seed(seed int64) Option {
	return func(it *Iterator) {
		it.Rng = rand.New(rand.NewSource(seed))
	}
}

// RNG supplies the random number generator directly.
func RNG(rng *rand.Rand) Option {
	return func(it *Iterator) {
		it.Rng = rng
	}
}

// Iterator evolves a swarm of bit-vector particles.
type Iterator struct {
	S         *swarm.Swarm
	Cognition float64
	Social    float64
	Inertia   float64
	// Vmax limits velocity magnitude per component.  Zero means
	// unlimited.
	Vmax float64
	Topo topology.Topology
	Rng  *rand.Rand

	count   int
	initPos *mat.Dense
}

func New(n, dims int, opts ...Option) (*Iterator, error) {
	it := &Iterator{
		Cognition: DefaultCognition,
		Social:    DefaultSocial,
		Inertia:   DefaultInertia,
		Topo:      topology.Star{},
		Rng:       rand.New(rand.NewSource(1)),
	}
	for _, opt := range opts {
		opt(it)
	}

	if err := it.validate(n, dims); err != nil {
		return nil, err
	}

	it.S = swarm.NewSwarm(it.genpos(n, dims), it.genvel(n, dims))
	it.initPos = nil
	return it, nil
}

func (it *Iterator) validate(n, dims int) error {
	if n < 1 || dims < 1 {
		return fmt.Errorf("%w: swarm needs n >= 1 and dims >= 1, got n=%v dims=%v", pyswarms.ErrConfig, n, dims)
	}
	if it.Cognition < 0 || it.Social < 0 || it.Inertia < 0 {
		return fmt.Errorf("%w: cognition, social, and inertia weights must be >= 0", pyswarms.ErrConfig)
	}
	if it.Vmax < 0 {
		return fmt.Errorf("%w: vmax must be >= 0", pyswarms.ErrConfig)
	}
	if err := it.Topo.Validate(n); err != nil {
		return err
	}
	if it.initPos != nil {
		r, c := it.initPos.Dims()
		if r != n || c != dims {
			return fmt.Errorf("%w: initial positions are %vx%v, want %vx%v", pyswarms.ErrConfig, r, c, n, dims)
		}
		for i := 0; i < r; i++ {
			for _, v := range it.initPos.RawRowView(i) {
				if v != 0 && v != 1 {
					return fmt.Errorf("%w: initial positions must contain only 0 or 1 bits, got %v", pyswarms.ErrConfig, v)
				}
			}
		}
	}
	return nil
}

func (it *Iterator) genpos(n, dims int) *mat.Dense {
	if it.initPos != nil {
		return mat.DenseCopyOf(it.initPos)
	}
	pos := mat.NewDense(n, dims, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < dims; j++ {
			if it.Rng.Float64() < 0.5 {
				pos.Set(i, j, 1)
			}
		}
	}
	return pos
}

func (it *Iterator) genvel(n, dims int) *mat.Dense {
	vel := mat.NewDense(n, dims, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < dims; j++ {
			vel.Set(i, j, it.Rng.Float64())
		}
	}
	return vel
}

// Niter returns the number of completed generations.
func (it *Iterator) Niter() int { return it.count }

func (it *Iterator) Iterate(obj pyswarms.Objectiver) (best pyswarms.Point, neval int, err error) {
	costs, err := pyswarms.Evaluate(obj, it.S.Pos)
	if err != nil {
		return pyswarms.Point{Val: math.Inf(1)}, 0, err
	}
	it.count++

	it.S.UpdateBests(costs)

	_, attract := it.Topo.Best(it.S.Pos, it.S.BestPos, it.S.BestCost)
	it.move(attract)

	return it.S.Best(), it.S.Len(), nil
}

func (it *Iterator) move(attract *mat.Dense) {
	n := it.S.Len()

	for i := 0; i < n; i++ {
		pos := it.S.Pos.RawRowView(i)
		vel := it.S.Vel.RawRowView(i)
		bpos := it.S.BestPos.RawRowView(i)
		att := attract.RawRowView(i)

		for d, currv := range vel {
			// fresh r1 and r2 per dimension, same as the continuous rule
			r1 := it.Rng.Float64()
			r2 := it.Rng.Float64()
			vel[d] = it.Inertia*currv +
				it.Cognition*r1*(bpos[d]-pos[d]) +
				it.Social*r2*(att[d]-pos[d])
			if it.Vmax > 0 && math.Abs(vel[d]) > it.Vmax {
				vel[d] = math.Copysign(it.Vmax, vel[d])
			}

			// sigmoid transfer decides the new bit
			if it.Rng.Float64() < sigmoid(vel[d]) {
				pos[d] = 1
			} else {
				pos[d] = 0
			}
		}
	}
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

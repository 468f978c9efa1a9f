package swarm

import (
	"database/sql"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/abougouffa/pyswarms"
	"github.com/abougouffa/pyswarms/bounds"
	"github.com/abougouffa/pyswarms/topology"
)

// These params are calculated using a constriction factor originally
// described in:
//
//     Clerc and M.  “The swarm and the queen: towards a deterministic and
//     adaptive particle swarm optimization” Proc. 1999 Congress on
//     Evolutionary Computation, pp. 1951-1957
//
// The cognition and social parameters correspond to c1 and c2 values of 2.05
// that have been multiplied by their constriction coeffient - i.e.
// DefaultSocial = Constriction(2.05, 2.05)*2.05.  DefaultInertia is set equal
// to the constriction coefficient.
const (
	DefaultCognition = 1.496179765663133
	DefaultSocial    = 1.496179765663133
	DefaultInertia   = 0.7298437881283576
)

// Constriction calculates the constriction coefficient for the given c1 and
// c2 for the particle velocity equation:
//
//    v_next = k(v_curr + c1*rand*(p_personal-x) + c2*rand*(p_glob-x))
//
//    or
//
//    v_next = w*v_curr + b1*rand*(p_personal-x) + b2*rand*(p_glob-x)
//
//    (with constriction coefficient multiplied through).
//
// c1+c2 should usually be greater than (but close to) 4.  'w = k' is often
// referred to as the inertia in the traditional swarm equation.
func Constriction(c1, c2 float64) float64 {
	phi := c1 + c2
	return 2 / math.Abs(2-phi-math.Sqrt(phi*phi-4*phi))
}

type Option func(*Iterator)

func Vmax(vmaxes []float64) Option {
	return func(it *Iterator) {
		it.Vmax = vmaxes
	}
}

// VmaxAll sets the same speed limit for every dimension.
func VmaxAll(vmax float64) Option {
	return func(it *Iterator) {
		it.vmaxAll = vmax
	}
}

// VmaxBounds sets the maximum particle speed for each dimension equal to
// the bounded range for the problem - i.e. up[i]-low[i] for each dimension.
// This is a good rule of thumb given in:
//
//     Eberhart, R.C.; Yuhui Shi, "Particle swarm optimization: developments,
//     applications and resources," Evolutionary Computation, 2001. Proceedings of
//     the 2001 Congress on , vol.1, no., pp.81,86 vol. 1, 2001 doi:
//     10.1109/CEC.2001.934374
func VmaxBounds(low, up []float64) Option {
	return func(it *Iterator) {
		it.Vmax = vmaxfrombounds(low, up)
	}
}

func DB(db *sql.DB) Option {
	return func(it *Iterator) {
		it.Db = db
	}
}

func LearnFactors(cognition, social float64) Option {
	return func(it *Iterator) {
		it.Cognition = cognition
		it.Social = social
	}
}

// LinInertia sets particle inertia for velocity updates to vary linearly
// from the start (high) to end (low) values from 0 to maxiter.  Common values
// are start = 0.9 and end = 0.4 - for details see:
//
//     Eberhart, R.C.; Yuhui Shi, "Particle swarm optimization: developments,
//     applications and resources," Evolutionary Computation, 2001. Proceedings of
//     the 2001 Congress on , vol.1, no., pp.81,86 vol. 1, 2001 doi:
//     10.1109/CEC.2001.934374
func LinInertia(start, end float64, maxiter int) Option {
	return func(it *Iterator) {
		it.InertiaFn = func(iter int) float64 {
			return start - (start-end)*float64(iter)/float64(maxiter)
		}
	}
}

func FixedInertia(v float64) Option {
	return func(it *Iterator) {
		it.InertiaFn = func(iter int) float64 { return v }
	}
}

// Topo sets the neighborhood structure used to compute each particle's
// attractor.  The default is topology.Star (global-best PSO).
func Topo(t topology.Topology) Option {
	return func(it *Iterator) {
		it.Topo = t
	}
}

// InBox confines particle positions to b.  Initial positions are sampled
// uniformly inside it and any later excursion is clipped back, silently.
func InBox(b *bounds.Box) Option {
	return func(it *Iterator) {
		it.Box = b
	}
}

// InitPos supplies initial particle positions (one row per particle)
// instead of random placement.
func InitPos(pos *mat.Dense) Option {
	return func(it *Iterator) {
		it.initPos = pos
	}
}

// InitVel supplies initial particle velocities instead of random ones.
func InitVel(vel *mat.Dense) Option {
	return func(it *Iterator) {
		it.initVel = vel
	}
}

// Seed seeds the iterator's random number generator.  Two iterators
// constructed with identical options and seeds produce bit-identical
// trajectories.
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

// Iterator evolves a Swarm one synchronized generation per Iterate call:
// batched evaluation, personal-best bookkeeping, topology attractors,
// then the velocity/position update.
type Iterator struct {
	S         *Swarm
	Cognition float64
	Social    float64
	InertiaFn func(iter int) float64
	// Vmax is the speed limit per dimension for particles.  If nil,
	// infinity is used.
	Vmax []float64
	Topo topology.Topology
	// Box holds optional position box constraints.
	Box *bounds.Box
	Db  *sql.DB
	Rng *rand.Rand

	count   int
	vmaxAll float64
	initPos *mat.Dense
	initVel *mat.Dense
}

// New validates configuration and builds an iterator for n particles in
// a dims-dimensional space.  All validation happens here; Iterate never
// reports configuration problems.
func New(n, dims int, opts ...Option) (*Iterator, error) {
	it := &Iterator{
		Cognition: DefaultCognition,
		Social:    DefaultSocial,
		InertiaFn: func(iter int) float64 { return DefaultInertia },
		Topo:      topology.Star{},
		Rng:       rand.New(rand.NewSource(1)),
	}
	for _, opt := range opts {
		opt(it)
	}
	if it.vmaxAll != 0 && it.Vmax == nil {
		it.Vmax = make([]float64, dims)
		for i := range it.Vmax {
			it.Vmax[i] = it.vmaxAll
		}
	}

	if err := it.validate(n, dims); err != nil {
		return nil, err
	}

	it.S = NewSwarm(it.genpos(n, dims), it.genvel(n, dims))
	it.initPos, it.initVel = nil, nil
	it.initdb()
	return it, nil
}

func (it *Iterator) validate(n, dims int) error {
	if n < 1 || dims < 1 {
		return fmt.Errorf("%w: swarm needs n >= 1 and dims >= 1, got n=%v dims=%v", pyswarms.ErrConfig, n, dims)
	}
	if it.Cognition < 0 || it.Social < 0 || it.InertiaFn(0) < 0 {
		return fmt.Errorf("%w: cognition, social, and inertia weights must be >= 0", pyswarms.ErrConfig)
	}
	if err := it.Topo.Validate(n); err != nil {
		return err
	}
	if it.Box != nil && it.Box.Dims() != dims {
		return fmt.Errorf("%w: bounds have %v dims, swarm has %v", pyswarms.ErrConfig, it.Box.Dims(), dims)
	}
	if it.Vmax != nil {
		if len(it.Vmax) != dims {
			return fmt.Errorf("%w: vmax has %v dims, swarm has %v", pyswarms.ErrConfig, len(it.Vmax), dims)
		}
		for _, v := range it.Vmax {
			if v <= 0 {
				return fmt.Errorf("%w: vmax entries must be > 0", pyswarms.ErrConfig)
			}
		}
	}
	if it.initPos != nil {
		if r, c := it.initPos.Dims(); r != n || c != dims {
			return fmt.Errorf("%w: initial positions are %vx%v, want %vx%v", pyswarms.ErrConfig, r, c, n, dims)
		}
	}
	if it.initVel != nil {
		if r, c := it.initVel.Dims(); r != n || c != dims {
			return fmt.Errorf("%w: initial velocities are %vx%v, want %vx%v", pyswarms.ErrConfig, r, c, n, dims)
		}
	}
	return nil
}

// genpos returns initial positions: caller-supplied, or uniform random
// inside the box (unit hypercube when unbounded).
func (it *Iterator) genpos(n, dims int) *mat.Dense {
	if it.initPos != nil {
		return mat.DenseCopyOf(it.initPos)
	}

	low := make([]float64, dims)
	up := make([]float64, dims)
	for i := range up {
		up[i] = 1
	}
	if it.Box != nil {
		low, up = it.Box.Lower(), it.Box.Upper()
	}

	pos := mat.NewDense(n, dims, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < dims; j++ {
			pos.Set(i, j, low[j]+it.Rng.Float64()*(up[j]-low[j]))
		}
	}
	return pos
}

// genvel returns initial velocities: caller-supplied, uniform in
// [-vmax, vmax] when clamped, else uniform in [0, 1).
func (it *Iterator) genvel(n, dims int) *mat.Dense {
	if it.initVel != nil {
		return mat.DenseCopyOf(it.initVel)
	}

	vel := mat.NewDense(n, dims, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < dims; j++ {
			if it.Vmax != nil {
				vel.Set(i, j, it.Vmax[j]*(1-2*it.Rng.Float64()))
			} else {
				vel.Set(i, j, it.Rng.Float64())
			}
		}
	}
	return vel
}

// Niter returns the number of completed generations.
func (it *Iterator) Niter() int { return it.count }

func (it *Iterator) Iterate(obj pyswarms.Objectiver) (best pyswarms.Point, neval int, err error) {
	// evaluate current positions in a single batched call
	costs, err := pyswarms.Evaluate(obj, it.S.Pos)
	if err != nil {
		return pyswarms.Point{Val: math.Inf(1)}, 0, err
	}
	it.count++

	it.S.UpdateBests(costs)
	it.updateDb()

	// move particles toward their topology-chosen attractors
	_, attract := it.Topo.Best(it.S.Pos, it.S.BestPos, it.S.BestCost)
	it.move(attract)

	return it.S.Best(), it.S.Len(), nil
}

func (it *Iterator) move(attract *mat.Dense) {
	w := it.InertiaFn(it.count)
	n := it.S.Len()

	for i := 0; i < n; i++ {
		pos := it.S.Pos.RawRowView(i)
		vel := it.S.Vel.RawRowView(i)
		bpos := it.S.BestPos.RawRowView(i)
		att := attract.RawRowView(i)

		for d, currv := range vel {
			// random numbers r1 and r2 MUST go inside this loop and be
			// generated uniquely for each dimension of the velocity.
			r1 := it.Rng.Float64()
			r2 := it.Rng.Float64()
			vel[d] = w*currv +
				it.Cognition*r1*(bpos[d]-pos[d]) +
				it.Social*r2*(att[d]-pos[d])
			if it.Vmax != nil && math.Abs(vel[d]) > it.Vmax[d] {
				vel[d] = math.Copysign(it.Vmax[d], vel[d])
			}
			pos[d] += vel[d]
		}

		if it.Box != nil {
			it.Box.Clip(pos)
		}
	}
}

func vmaxfrombounds(low, up []float64) []float64 {
	vmax := make([]float64, len(low))
	for i := range vmax {
		// Eberhart et al. suggest (up-low)/2 - removing the divide by two
		// seems to help the swarm avoid premature convergence in difficult
		// problems.
		vmax[i] = up[i] - low[i]
	}
	return vmax
}

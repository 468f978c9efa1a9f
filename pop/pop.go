// Package pop generates initial particle populations as N x dims
// position matrices.
package pop

import (
	"math/rand"

	"github.com/petar/GoLLRB/llrb"
	"gonum.org/v1/gonum/mat"
)

var Rand Rng = rand.New(rand.NewSource(1))

type Rng interface {
	Float64() float64
}

// New generates n randomly positioned points uniformly distributed in
// the boxed bounds defined by low and up.  The number of dimensions is
// equal to len(low).
func New(n int, low, up []float64) *mat.Dense {
	if len(low) != len(up) {
		panic("low and up vectors are not same length")
	}

	ndims := len(low)

	points := mat.NewDense(n, ndims, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < ndims; j++ {
			points.Set(i, j, low[j]+Rand.Float64()*(up[j]-low[j]))
		}
	}
	return points
}

// Bits generates n uniformly random bit vectors of length dims for
// seeding binary swarms.
func Bits(n, dims int) *mat.Dense {
	points := mat.NewDense(n, dims, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < dims; j++ {
			if Rand.Float64() < 0.5 {
				points.Set(i, j, 1)
			}
		}
	}
	return points
}

type item struct {
	pos    []float64
	howbad float64
}

func (p1 item) Less(than llrb.Item) bool {
	p2 := than.(item)
	return p1.howbad < p2.howbad
}

// NewConstr tries to generate a random population of n feasible points
// satisfying the linear constraints "low <= Ax <= up". lb and ub define
// lower and upper box bounds for the variables.  NewConstr generates
// random points within the box bounds and keeps all feasible points.  It
// queues up the least unfavorable infeasible points in case n feasible
// ones cannot be found within maxiter.
func NewConstr(n, maxiter int, lb, ub []float64, low, A, up *mat.Dense) (points *mat.Dense, nbad, iter int) {
	stackA, b, ranges := stackConstr(low, A, up)

	_, ndims := A.Dims()

	violaters := llrb.New()
	points = mat.NewDense(n, ndims, nil)
	kept := 0
	for i := 0; i < maxiter; i++ {
		// create point
		pos := make([]float64, ndims)
		for j := range pos {
			l, u := lb[j], ub[j]
			pos[j] = l + Rand.Float64()*(u-l)
		}

		// check for constraint violations
		ax := &mat.Dense{}
		ax.Mul(stackA, mat.NewDense(ndims, 1, pos))
		m, _ := ax.Dims()
		howbad := 0.0
		for r := 0; r < m; r++ {
			if diff := ax.At(r, 0) - b.At(r, 0); diff > 0 {
				howbad += diff / ranges[r]
				break
			}
		}

		if howbad == 0 {
			points.SetRow(kept, pos)
			kept++
			if kept == n {
				return points, 0, i
			}
		} else {
			// add to tree
			violaters.InsertNoReplace(item{pos, howbad})
			for violaters.Len() > n-kept {
				violaters.DeleteMax()
			}
		}
	}

	nbad = n - kept
	for kept < n {
		p := violaters.DeleteMin().(item)
		points.SetRow(kept, p.pos)
		kept++
	}

	return points, nbad, maxiter
}

// stackConstr converts the two-sided system "low <= Ax <= up" into the
// one-sided "stackA x <= b" by stacking A over -A.  ranges holds up-low
// for each stacked row and is used to normalize violation magnitudes.
func stackConstr(low, A, up *mat.Dense) (stackA, b *mat.Dense, ranges []float64) {
	neglow := &mat.Dense{}
	neglow.Scale(-1, low)
	b = &mat.Dense{}
	b.Stack(up, neglow)

	negA := &mat.Dense{}
	negA.Scale(-1, A)
	stackA = &mat.Dense{}
	stackA.Stack(A, negA)

	m, _ := A.Dims()
	ranges = make([]float64, 2*m)
	for i := 0; i < m; i++ {
		ranges[i] = up.At(i, 0) - low.At(i, 0)
		if ranges[i] == 0 {
			ranges[i] = 1
		}
		ranges[m+i] = ranges[i]
	}
	return stackA, b, ranges
}

package pyswarms

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

type Point struct {
	pos []float64
	Val float64
}

func NewPoint(pos []float64, val float64) Point {
	cpos := make([]float64, len(pos))
	copy(cpos, pos)
	return Point{pos: cpos, Val: val}
}

func (p Point) At(i int) float64 { return p.pos[i] }

func (p Point) Len() int { return len(p.pos) }

func (p Point) Pos() []float64 {
	pos := make([]float64, len(p.pos))
	copy(pos, p.pos)
	return pos
}

func hashRow(row []float64) [sha1.Size]byte {
	data := make([]byte, len(row)*8)
	for i, v := range row {
		binary.BigEndian.PutUint64(data[i*8:], math.Float64bits(v))
	}
	return sha1.Sum(data)
}

type Iterator interface {
	// Iterate runs a single generation of a solver and reports the number
	// of function evaluations n and the best point seen by the swarm so
	// far.
	Iterate(obj Objectiver) (best Point, n int, err error)
}

type Objectiver interface {
	// Objective evaluates every row of pos in one batched call and
	// returns one cost per row, in row order.  The objective must be
	// framed so that lower values are better.
	Objective(pos *mat.Dense) ([]float64, error)
}

// Evaluate calls obj on pos and checks the result shape.  Any failure is
// reported as an ErrObjective.
func Evaluate(obj Objectiver, pos *mat.Dense) ([]float64, error) {
	n, _ := pos.Dims()
	costs, err := obj.Objective(pos)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrObjective, err)
	} else if len(costs) != n {
		return nil, fmt.Errorf("%w: got %v costs for %v particles", ErrObjective, len(costs), n)
	}
	return costs, nil
}

// BatchObjectiver adapts an already-batched function to the Objectiver
// interface.
type BatchObjectiver func(pos *mat.Dense) ([]float64, error)

func (f BatchObjectiver) Objective(pos *mat.Dense) ([]float64, error) { return f(pos) }

// Func adapts an infallible per-point objective to the batched contract
// by evaluating rows serially.
type Func func(x []float64) float64

func (f Func) Objective(pos *mat.Dense) ([]float64, error) {
	n, _ := pos.Dims()
	costs := make([]float64, n)
	for i := 0; i < n; i++ {
		costs[i] = f(pos.RawRowView(i))
	}
	return costs, nil
}

// ErrFunc adapts a fallible per-point objective.  Evaluation stops at
// the first error.
type ErrFunc func(x []float64) (float64, error)

func (f ErrFunc) Objective(pos *mat.Dense) ([]float64, error) {
	n, _ := pos.Dims()
	costs := make([]float64, n)
	for i := 0; i < n; i++ {
		val, err := f(pos.RawRowView(i))
		if err != nil {
			return nil, err
		}
		costs[i] = val
	}
	return costs, nil
}

// ParallelFunc evaluates a per-point objective across NConcurrent
// goroutines (GOMAXPROCS if zero).  Costs land by row index, so the
// returned vector is identical to a serial evaluation regardless of
// scheduling.
type ParallelFunc struct {
	F           func(x []float64) (float64, error)
	NConcurrent int
}

func (pf ParallelFunc) Objective(pos *mat.Dense) ([]float64, error) {
	n, _ := pos.Dims()
	costs := make([]float64, n)

	nc := pf.NConcurrent
	if nc <= 0 {
		nc = runtime.GOMAXPROCS(0)
	}

	var g errgroup.Group
	g.SetLimit(nc)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			val, err := pf.F(pos.RawRowView(i))
			costs[i] = val
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return costs, nil
}

// CacheObjectiver wraps another objective and memoizes costs keyed on
// the exact float64 bits of each position row.
type CacheObjectiver struct {
	obj   Objectiver
	cache map[[sha1.Size]byte]float64
	// UseCount reports how many evaluations were answered from cache.
	UseCount int
}

func NewCacheObjectiver(obj Objectiver) *CacheObjectiver {
	return &CacheObjectiver{
		obj:   obj,
		cache: map[[sha1.Size]byte]float64{},
	}
}

func (c *CacheObjectiver) Objective(pos *mat.Dense) ([]float64, error) {
	n, dims := pos.Dims()
	costs := make([]float64, n)

	fromnew := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if val, ok := c.cache[hashRow(pos.RawRowView(i))]; ok {
			costs[i] = val
			c.UseCount++
		} else {
			fromnew = append(fromnew, i)
		}
	}
	if len(fromnew) == 0 {
		return costs, nil
	}

	newpos := mat.NewDense(len(fromnew), dims, nil)
	for k, i := range fromnew {
		newpos.SetRow(k, pos.RawRowView(i))
	}

	newcosts, err := c.obj.Objective(newpos)
	if err != nil {
		return nil, err
	} else if len(newcosts) != len(fromnew) {
		return nil, fmt.Errorf("got %v costs for %v particles", len(newcosts), len(fromnew))
	}

	for k, i := range fromnew {
		costs[i] = newcosts[k]
		c.cache[hashRow(pos.RawRowView(i))] = newcosts[k]
	}
	return costs, nil
}

// ObjectivePrinter prints every evaluated row and its cost.  Useful for
// eyeballing small runs.
type ObjectivePrinter struct {
	Objectiver
	Count int
}

func NewObjectivePrinter(obj Objectiver) *ObjectivePrinter {
	return &ObjectivePrinter{Objectiver: obj}
}

func (op *ObjectivePrinter) Objective(pos *mat.Dense) ([]float64, error) {
	costs, err := op.Objectiver.Objective(pos)

	n, _ := pos.Dims()
	for i := 0; i < n && i < len(costs); i++ {
		op.Count++
		fmt.Print(op.Count, " ")
		for _, x := range pos.RawRowView(i) {
			fmt.Print(x, " ")
		}
		fmt.Println("    ", costs[i])
	}

	return costs, err
}

package bench_test

import (
	"testing"

	"github.com/abougouffa/pyswarms"
	"github.com/abougouffa/pyswarms/bench"
	"github.com/abougouffa/pyswarms/bounds"
	"github.com/abougouffa/pyswarms/swarm"
	"github.com/abougouffa/pyswarms/topology"
)

const (
	maxeval      = 50000
	maxiter      = 5000
	maxnoimprove = 500
)

const seed = 7

func TestSwarmStar(t *testing.T) {
	for _, fn := range bench.AllFuncs {
		solv := swarmsolver(t, fn, nil)
		best, ok, err := bench.Benchmark(solv, fn, .01)
		if err != nil {
			t.Errorf("[ERROR:%v] %v", fn.Name(), err)
		} else if ok {
			t.Logf("[pass:%v] %v evals (%v iter): optimum is %v, got %v", fn.Name(), solv.Neval(), solv.Niter(), fn.Optima()[0].Val, best.Val)
		} else {
			t.Logf("[miss:%v] %v evals (%v iter): optimum is %v, got %v", fn.Name(), solv.Neval(), solv.Niter(), fn.Optima()[0].Val, best.Val)
		}
	}
}

func TestSwarmRing(t *testing.T) {
	for _, fn := range bench.AllFuncs {
		topo := topology.NewRing(3, 2)
		solv := swarmsolver(t, fn, topo)
		best, ok, err := bench.Benchmark(solv, fn, .01)
		if err != nil {
			t.Errorf("[ERROR:%v] %v", fn.Name(), err)
		} else if ok {
			t.Logf("[pass:%v] %v evals (%v iter): optimum is %v, got %v", fn.Name(), solv.Neval(), solv.Niter(), fn.Optima()[0].Val, best.Val)
		} else {
			t.Logf("[miss:%v] %v evals (%v iter): optimum is %v, got %v", fn.Name(), solv.Neval(), solv.Niter(), fn.Optima()[0].Val, best.Val)
		}
	}
}

func swarmsolver(t *testing.T, fn bench.Func, topo topology.Topology) *pyswarms.Solver {
	t.Helper()

	low, up := fn.Bounds()

	n := 30
	if len(low) > n {
		n = len(low)
	}
	if n > maxeval/150 {
		n = maxeval / 150
	}

	box, err := bounds.New(low, up)
	if err != nil {
		t.Fatal(err)
	}

	opts := []swarm.Option{
		swarm.InBox(box),
		swarm.VmaxBounds(low, up),
		swarm.Seed(seed),
	}
	if topo != nil {
		opts = append(opts, swarm.Topo(topo))
	}

	it, err := swarm.New(n, len(low), opts...)
	if err != nil {
		t.Fatal(err)
	}

	return &pyswarms.Solver{
		Iter:         it,
		Obj:          pyswarms.Func(fn.Eval),
		MaxIter:      maxiter,
		MaxEval:      maxeval,
		MaxNoImprove: maxnoimprove,
	}
}

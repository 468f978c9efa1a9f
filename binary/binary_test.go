package binary

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/abougouffa/pyswarms"
	"github.com/abougouffa/pyswarms/bench"
	"github.com/abougouffa/pyswarms/topology"
)

const seed = 7

func TestOneMaxConvergence(t *testing.T) {
	fn := bench.OneMax{NDim: 10}

	it, err := New(30, 10, VmaxAll(4), Seed(seed))
	if err != nil {
		t.Fatal(err)
	}

	solv := &pyswarms.Solver{
		Iter:    it,
		Obj:     pyswarms.Func(fn.Eval),
		MaxIter: 300,
	}
	best, err := solv.Run()
	if err != nil {
		t.Fatal(err)
	}

	t.Logf("best %v after %v iters", best.Val, solv.Niter())
	if best.Val != 0 {
		t.Errorf("expected the all-ones optimum (cost 0), got %v", best.Val)
	}
	for i := 0; i < best.Len(); i++ {
		if best.At(i) != 1 {
			t.Errorf("best position bit %v = %v, want 1", i, best.At(i))
		}
	}
}

func TestPositionsStayBits(t *testing.T) {
	it, err := New(12, 6, Topo(topology.NewRing(3, 2)), Seed(seed))
	if err != nil {
		t.Fatal(err)
	}
	obj := pyswarms.Func(bench.OneMax{NDim: 6}.Eval)

	for iter := 0; iter < 40; iter++ {
		if _, _, err := it.Iterate(obj); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < it.S.Len(); i++ {
			for d, v := range it.S.Pos.RawRowView(i) {
				if v != 0 && v != 1 {
					t.Fatalf("iter %v: particle %v dim %v is %v, not a bit", iter, i, d, v)
				}
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	build := func() *Iterator {
		it, err := New(10, 8, VmaxAll(6), Seed(42))
		if err != nil {
			t.Fatal(err)
		}
		return it
	}

	a, b := build(), build()
	obj := pyswarms.Func(bench.OneMax{NDim: 8}.Eval)

	for iter := 0; iter < 30; iter++ {
		abest, _, err := a.Iterate(obj)
		if err != nil {
			t.Fatal(err)
		}
		bbest, _, err := b.Iterate(obj)
		if err != nil {
			t.Fatal(err)
		}
		if abest.Val != bbest.Val || !mat.Equal(a.S.Pos, b.S.Pos) {
			t.Fatalf("iter %v: trajectories diverged under identical seeds", iter)
		}
	}
}

func TestConfigErrors(t *testing.T) {
	cases := []struct {
		name string
		n    int
		dims int
		opts []Option
	}{
		{"zero particles", 0, 4, nil},
		{"zero dims", 5, 0, nil},
		{"negative weights", 5, 4, []Option{LearnFactors(0.5, -1)}},
		{"ring k too large", 5, 4, []Option{Topo(topology.NewRing(9, 2))}},
		{"bad minkowski order", 5, 4, []Option{Topo(topology.NewRing(3, 0))}},
		{"init shape", 5, 4, []Option{InitPos(mat.NewDense(5, 3, nil))}},
		{"non-bit init", 5, 4, []Option{InitPos(mat.NewDense(5, 4, []float64{
			0, 1, 0, 1,
			1, 1, 1, 1,
			0, 0, 0.5, 0,
			0, 0, 0, 0,
			1, 0, 1, 0,
		}))}},
	}

	for _, c := range cases {
		if _, err := New(c.n, c.dims, c.opts...); !errors.Is(err, pyswarms.ErrConfig) {
			t.Errorf("%v: expected ErrConfig, got %v", c.name, err)
		}
	}
}

package pyswarms

import (
	"errors"
	"testing"
)

// scriptIter returns a fixed series of best values, one per generation.
type scriptIter struct {
	vals []float64
	i    int
	err  error
}

func (it *scriptIter) Iterate(obj Objectiver) (Point, int, error) {
	if it.err != nil {
		return Point{}, 0, it.err
	}
	v := it.vals[it.i]
	if it.i < len(it.vals)-1 {
		it.i++
	}
	return NewPoint([]float64{v}, v), 10, nil
}

func TestSolverIterLimit(t *testing.T) {
	it := &scriptIter{vals: []float64{5, 4, 3, 2, 1}}
	s := &Solver{Iter: it, MaxIter: 3}

	ncalls := 0
	s.Callback = func(iter int, best Point) {
		ncalls++
		if iter != ncalls {
			t.Errorf("callback iter %v on call %v", iter, ncalls)
		}
	}

	best, err := s.Run()
	if err != nil {
		t.Fatal(err)
	}
	if s.Status() != IterLimit {
		t.Errorf("expected status %v, got %v", IterLimit, s.Status())
	}
	if s.Niter() != 3 {
		t.Errorf("expected 3 iterations, got %v", s.Niter())
	}
	if s.Neval() != 30 {
		t.Errorf("expected 30 evals, got %v", s.Neval())
	}
	if ncalls != 3 {
		t.Errorf("callback invoked %v times, expected 3", ncalls)
	}
	if best.Val != 3 {
		t.Errorf("expected best 3, got %v", best.Val)
	}
}

func TestSolverConverged(t *testing.T) {
	// improves, then stalls under tolerance
	it := &scriptIter{vals: []float64{5, 4, 3.9999, 3.9999, 3.9999, 3.9999, 1}}
	s := &Solver{Iter: it, MaxIter: 100, MaxNoImprove: 3, Tol: 0.001}

	best, err := s.Run()
	if err != nil {
		t.Fatal(err)
	}
	if s.Status() != Converged {
		t.Errorf("expected status %v, got %v", Converged, s.Status())
	}
	// 2 improving iterations plus 3 stalled ones
	if s.Niter() != 5 {
		t.Errorf("expected 5 iterations, got %v", s.Niter())
	}
	if best.Val != 3.9999 {
		t.Errorf("expected best 3.9999, got %v", best.Val)
	}
}

func TestSolverEvalLimit(t *testing.T) {
	it := &scriptIter{vals: []float64{5, 4, 3, 2, 1}}
	s := &Solver{Iter: it, MaxIter: 100, MaxEval: 25}

	if _, err := s.Run(); err != nil {
		t.Fatal(err)
	}
	if s.Status() != EvalLimit {
		t.Errorf("expected status %v, got %v", EvalLimit, s.Status())
	}
	if s.Niter() != 3 {
		t.Errorf("expected 3 iterations, got %v", s.Niter())
	}
}

func TestSolverBestMonotone(t *testing.T) {
	it := &scriptIter{vals: []float64{3, 1, 2, 5, 4}}
	s := &Solver{Iter: it, MaxIter: 5}

	prev := Point{Val: 1e300}
	for s.Next() {
		if s.Best().Val > prev.Val {
			t.Errorf("best regressed from %v to %v at iteration %v", prev.Val, s.Best().Val, s.Niter())
		}
		prev = s.Best()
	}
	if s.Best().Val != 1 {
		t.Errorf("expected final best 1, got %v", s.Best().Val)
	}
}

func TestSolverFailed(t *testing.T) {
	fake := errors.New("boom")
	it := &scriptIter{err: fake}
	s := &Solver{Iter: it, MaxIter: 5}

	_, err := s.Run()
	if !errors.Is(err, fake) {
		t.Errorf("expected the iterator error, got %v", err)
	}
	if s.Status() != Failed {
		t.Errorf("expected status %v, got %v", Failed, s.Status())
	}
	if s.Next() {
		t.Errorf("Next() returned true after failure")
	}
}

package pyswarms

import (
	"math"
)

// Status reports why a Solver stopped iterating.
type Status int

const (
	// Running means the solver has not hit any stopping condition.
	Running Status = iota
	// Converged means best-cost improvement stayed below Tol for
	// MaxNoImprove consecutive generations.
	Converged
	// IterLimit means MaxIter generations completed.
	IterLimit
	// EvalLimit means MaxEval objective evaluations were spent.
	EvalLimit
	// Failed means the objective function failed; Err holds the cause.
	Failed
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Converged:
		return "converged"
	case IterLimit:
		return "iteration limit reached"
	case EvalLimit:
		return "evaluation limit reached"
	case Failed:
		return "objective evaluation failed"
	}
	return "unknown"
}

// Solver drives an Iterator through generations until a stopping
// condition fires.  The zero limits mean "unlimited" except MaxIter
// which defaults to DefaultMaxIter.  A typical run looks like:
//
//	s := &pyswarms.Solver{Iter: it, Obj: obj, MaxIter: 100}
//	for s.Next() {
//	}
//	best, err := s.Best(), s.Err()
//
// or equivalently best, err := s.Run().
type Solver struct {
	Iter Iterator
	Obj  Objectiver

	// MaxIter is the maximum number of generations.
	MaxIter int
	// MaxEval bounds the total number of objective evaluations.  The
	// check happens between generations, so the last generation may
	// overshoot it.
	MaxEval int
	// MaxNoImprove stops the run early after this many consecutive
	// generations without the best cost improving by more than Tol.
	// Zero disables early stopping.
	MaxNoImprove int
	// Tol is the minimum best-cost improvement that resets the
	// no-improvement counter.
	Tol float64

	// Callback, if set, is invoked after every completed generation with
	// the generation index (starting at 1) and the best point found so
	// far.  The solver never depends on its presence.
	Callback func(iter int, best Point)

	neval      int
	niter      int
	noimprove  int
	best       Point
	status     Status
	err        error
	initialized bool
}

const DefaultMaxIter = 1000

func (s *Solver) init() {
	if s.initialized {
		return
	}
	s.initialized = true
	s.best = Point{Val: math.Inf(1)}
	if s.MaxIter == 0 {
		s.MaxIter = DefaultMaxIter
	}
}

// Best returns the lowest-cost personal best observed across all
// completed generations.  This is tracked monotonically in the solver,
// so it never regresses even if the swarm's own best does.
func (s *Solver) Best() Point { return s.best }

// Niter returns the number of completed generations.
func (s *Solver) Niter() int { return s.niter }

// Neval returns the total number of objective evaluations spent.
func (s *Solver) Neval() int { return s.neval }

// Status reports the solver's current state.
func (s *Solver) Status() Status { return s.status }

// Err returns the objective error that stopped the run, if any.
func (s *Solver) Err() error { return s.err }

// Next runs one generation and reports whether the solver can continue.
// It returns false once any stopping condition has fired; calling it
// again after that is a no-op.
func (s *Solver) Next() bool {
	s.init()
	if s.status != Running {
		return false
	}

	best, n, err := s.Iter.Iterate(s.Obj)
	if err != nil {
		s.status = Failed
		s.err = err
		return false
	}
	s.neval += n
	s.niter++

	if best.Val < s.best.Val-s.Tol {
		s.noimprove = 0
	} else {
		s.noimprove++
	}
	if best.Val < s.best.Val {
		s.best = best
	}

	switch {
	case s.MaxNoImprove > 0 && s.noimprove >= s.MaxNoImprove:
		s.status = Converged
	case s.niter >= s.MaxIter:
		s.status = IterLimit
	case s.MaxEval > 0 && s.neval >= s.MaxEval:
		s.status = EvalLimit
	}

	if s.Callback != nil {
		s.Callback(s.niter, s.best)
	}
	return s.status == Running
}

// Run iterates until a stopping condition fires and returns the best
// point found.  On objective failure the best point seen before the
// failure is still returned alongside the error.
func (s *Solver) Run() (best Point, err error) {
	for s.Next() {
	}
	return s.best, s.err
}

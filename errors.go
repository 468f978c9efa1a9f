package pyswarms

import "errors"

// Sentinel errors for the two failure classes.  Callers match them with
// errors.Is; wrapped messages carry the offending detail.
var (
	// ErrConfig indicates invalid construction parameters: dimension
	// mismatches, malformed bounds, bad topology parameters, negative
	// weights.  It is only ever returned from constructors, never from a
	// running solver.
	ErrConfig = errors.New("pyswarms: invalid configuration")

	// ErrObjective indicates that the objective function failed or
	// returned a cost vector whose length does not match the number of
	// particles.  It aborts the current run; swarm state up to the last
	// completed iteration remains inspectable.
	ErrObjective = errors.New("pyswarms: objective evaluation failed")
)

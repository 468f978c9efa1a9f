// Package pyswarms implements particle swarm optimization over batched,
// matrix-valued objective functions.  The root package holds the pieces
// shared by every variant: the Point result type, the batched Objectiver
// contract with its evaluation wrappers, the error taxonomy, and the
// Solver that drives an Iterator through synchronized generations until a
// stopping condition fires.
//
// The variants live in subpackages: swarm implements continuous
// global-best and local-best PSO (the attractor choice is delegated to
// package topology), and binary implements the discrete sigmoid-transfer
// variant.  Package bench carries standard test functions and pop builds
// initial populations.
package pyswarms
